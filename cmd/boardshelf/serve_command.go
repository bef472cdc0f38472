package main

import (
	"github.com/spf13/cobra"

	"boardshelf/internal/site"
)

func newServeCommand(cctx *commandContext) *cobra.Command {
	var bindFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workspace over HTTP",
		Long: "Serves the collection CSV and downloaded box art from the workspace\n" +
			"directory so they can be browsed locally. Caching is disabled because\n" +
			"pipeline runs rewrite the files in place.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cctx.newLogger(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			bind := cfg.Server.Bind
			if bindFlag != "" {
				bind = bindFlag
			}
			return site.New(bind, cfg.Paths.WorkspaceDir, logger).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&bindFlag, "bind", "b", "", "Listen address (overrides the configured one)")
	return cmd
}
