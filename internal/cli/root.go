package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/neuroreport/internal/buildinfo"
	"github.com/aalvaropc/neuroreport/internal/infra/fsworkspace"
	"github.com/aalvaropc/neuroreport/internal/infra/logger"
	"github.com/aalvaropc/neuroreport/internal/infra/workspacefinder"
	"github.com/aalvaropc/neuroreport/internal/ui/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "neuroreport",
		Short:        "neuroreport — meta-analysis report generator",
		Version:      buildinfo.String(),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}
			wd, _ = filepath.Abs(wd)

			finder := workspacefinder.NewFinder()

			logRoot := wd
			if root, ferr := finder.FindRoot(wd); ferr == nil && root != "" {
				logRoot = root
			}

			cleanup, _ := logger.Setup(logger.Config{
				Root:  logRoot,
				Debug: debug,
			})
			if cleanup != nil {
				defer func() { _ = cleanup() }()
			}

			deps := tui.Deps{
				WorkspaceLocator:     finder,
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				Logger:               logger.L(),
				Debug:                debug,
			}

			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .neuroreport/logs/neuroreport.log")

	cmd.AddCommand(
		initCmd(),
		validateCmd(),
		renderCmd(),
		layoutsCmd(),
		inspectCmd(),
	)
	return cmd
}
