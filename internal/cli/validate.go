package cli

import (
	"fmt"

	"github.com/aalvaropc/neuroreport/internal/usecase"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	var workspace string
	var layout string
	var artifacts string
	var skipArtifacts bool

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate a report layout (text references and selector uniqueness)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			layoutPath, err := resolveLayoutPath(ws, layout)
			if err != nil {
				return err
			}

			artifactsDir := ""
			if !skipArtifacts {
				artifactsDir = resolveArtifactsDir(ws, artifacts)
			}

			uc := usecase.NewValidateLayout(ws.layouts, ws.artifacts)
			rep, err := uc.Execute(cmd.Context(), layoutPath, artifactsDir)
			if err != nil {
				for _, a := range rep.Ambiguous {
					fmt.Printf("ambiguous: section %q selector %s matches %v\n", a.Section, a.Selector, a.Candidates)
				}
				return err
			}

			fmt.Printf("OK: %d section(s), %d reportlet(s)\n", rep.Sections, rep.Reportlets)
			for _, m := range rep.Missing {
				fmt.Printf("note: no artifact yet for selector %s\n", m)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&layout, "layout", "l", "", "Layout name or path (optional; defaults to workspace default layout)")
	c.Flags().StringVarP(&artifacts, "artifacts", "a", "", "Artifacts dir (optional; defaults to workspace artifacts dir)")
	c.Flags().BoolVar(&skipArtifacts, "no-artifacts", false, "Skip selector checks against the artifacts dir")

	return c
}
