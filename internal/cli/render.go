package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aalvaropc/neuroreport/internal/domain"
	"github.com/aalvaropc/neuroreport/internal/infra/logger"
	"github.com/aalvaropc/neuroreport/internal/infra/watch"
	"github.com/aalvaropc/neuroreport/internal/usecase"
	"github.com/spf13/cobra"
)

func renderCmd() *cobra.Command {
	var workspace string
	var layout string
	var artifacts string
	var out string
	var noSave bool
	var format string
	var watchMode bool

	c := &cobra.Command{
		Use:   "render",
		Short: "Render a report layout against pipeline artifacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			layoutPath, err := resolveLayoutPath(ws, layout)
			if err != nil {
				return err
			}

			artifactsDir := resolveArtifactsDir(ws, artifacts)

			outDir := out
			if outDir == "" {
				outDir = filepath.Join(ws.root, ws.cfg.Paths.ReportsDir)
			} else if !filepath.IsAbs(outDir) {
				outDir = filepath.Join(ws.root, outDir)
			}

			var store = ws.store
			if noSave {
				store = nil
			}

			uc := usecase.NewRenderReport(ws.layouts, ws.artifacts, ws.renderer, store)

			render := func(ctx context.Context) error {
				m, id, err := uc.Execute(ctx, layoutPath, artifactsDir, outDir)
				if err != nil {
					return err
				}
				return printManifest(os.Stdout, m, id, format)
			}

			if err := render(cmd.Context()); err != nil {
				return err
			}

			if !watchMode {
				return nil
			}

			fmt.Printf("watching %s (ctrl+c to stop)\n", artifactsDir)
			w := watch.New(watch.WithLogger(logger.L()))
			err = w.Watch(cmd.Context(), []string{artifactsDir}, render)
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&layout, "layout", "l", "", "Layout name or path (optional; defaults to workspace default layout)")
	c.Flags().StringVarP(&artifacts, "artifacts", "a", "", "Artifacts dir (optional; defaults to workspace artifacts dir)")
	c.Flags().StringVarP(&out, "out", "o", "", "Output dir (optional; defaults to workspace reports dir)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save a render manifest under reports/")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().BoolVar(&watchMode, "watch", false, "Re-render when the artifacts dir changes")

	return c
}

func printManifest(w io.Writer, m domain.RenderManifest, id string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case "pretty", "":
		printPrettyManifest(w, m, id)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyManifest(w io.Writer, m domain.RenderManifest, id string) {
	total := m.FinishedAt.Sub(m.StartedAt)
	if m.StartedAt.IsZero() || m.FinishedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "Layout:    %s\n", m.LayoutName)
	fmt.Fprintf(w, "Package:   %s\n", m.Package)
	fmt.Fprintf(w, "Output:    %s\n", m.OutputPath)
	fmt.Fprintf(w, "Started:   %s\n", m.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration:  %s\n", total)
	if id != "" {
		fmt.Fprintf(w, "Manifest:  %s\n", id)
	}
	fmt.Fprintln(w)

	for _, r := range m.Reportlets {
		mark := "✓"
		if r.Status != domain.StatusResolved {
			mark = "✗"
		}
		fmt.Fprintf(w, "- %s [%s] %s", mark, r.Section, r.Selector)
		if r.Artifact != "" {
			fmt.Fprintf(w, " -> %s", r.Artifact)
		}
		fmt.Fprintln(w)
	}

	if missing := m.Missing(); len(missing) > 0 {
		fmt.Fprintf(w, "\n%d reportlet(s) had no matching artifact\n", len(missing))
	}
}
