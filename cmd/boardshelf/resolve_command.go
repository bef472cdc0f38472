package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"boardshelf/internal/collection"
	"boardshelf/internal/pipeline"
	"boardshelf/internal/resolve"
	"boardshelf/internal/resolvecache"
)

func newResolveCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Match list entries to BGG ids",
		Long: "Reads the game list, matches every entry to a BoardGameGeek id, and\n" +
			"writes the id table. Entries resolved on a previous run are skipped.",
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

			api, err := newAPIClient(cfg)
			if err != nil {
				return err
			}
			cache, err := resolvecache.Open(cfg.Paths.CacheDB)
			if err != nil {
				return err
			}
			defer cache.Close()

			table, err := loadTable(cfg.Paths.ListFile, cfg.Paths.IDsFile)
			if err != nil {
				return err
			}

			writer := collection.NewIncrementalWriter(cfg.Paths.IDsFile, cfg.Pipeline.CheckpointInterval, logger)
			resolver := resolve.NewResolver(api, cache, logger)
			stage := resolve.NewStage(resolver, writer, cfg.BGG.SearchDelayDuration(), logger)
			runner := pipeline.NewRunner(cfg.Paths.WorkspaceDir, writer, logger, stage)

			if err := runner.Run(ctx, table); err != nil {
				return err
			}

			resolved := len(table.ResolvedRows().Rows)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Resolved %d of %d entries\n", resolved, len(table.Rows))
			fmt.Fprintf(out, "Wrote %s\n", cfg.Paths.IDsFile)
			return nil
		},
	}
}
