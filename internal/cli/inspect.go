package cli

import (
	"fmt"

	"github.com/aalvaropc/neuroreport/internal/usecase/inspect"
	"github.com/spf13/cobra"
)

func inspectCmd() *cobra.Command {
	var workspace string
	var report string
	var path string

	c := &cobra.Command{
		Use:   "inspect",
		Short: "Query a saved render manifest with JSONPath",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			m, err := ws.store.LoadManifest(report)
			if err != nil {
				return err
			}

			out, err := inspect.Query(m, path)
			if err != nil {
				return err
			}

			fmt.Println(out)
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&report, "report", "r", "", "Manifest id or path (required)")
	c.Flags().StringVarP(&path, "path", "p", "", "JSONPath expression (required)")

	_ = c.MarkFlagRequired("report")
	_ = c.MarkFlagRequired("path")
	return c
}
