package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"boardshelf/internal/collection"
	"boardshelf/internal/enrich"
	"boardshelf/internal/fileutil"
	"boardshelf/internal/images"
	"boardshelf/internal/pipeline"
	"boardshelf/internal/rank"
	"boardshelf/internal/resolve"
	"boardshelf/internal/resolvecache"
)

func newBuildCommand(cctx *commandContext) *cobra.Command {
	var skipImages bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the full collection pipeline",
		Long: "Resolves list entries, joins the bulk ranking export, enriches every\n" +
			"game with detail data, and downloads box art. Each phase skips rows it\n" +
			"completed on a previous run.",
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

			// Resume from the richest state available: a previous build,
			// falling back to a standalone resolve run.
			seed := cfg.Paths.CollectionFile
			if !fileutil.FileExists(seed) {
				seed = cfg.Paths.IDsFile
			}
			table, err := loadTable(cfg.Paths.ListFile, seed)
			if err != nil {
				return err
			}

			writer := collection.NewIncrementalWriter(cfg.Paths.CollectionFile, cfg.Pipeline.CheckpointInterval, logger)
			resolver := resolve.NewResolver(api, cache, logger)

			stages := []pipeline.Stage{
				resolve.NewStage(resolver, writer, cfg.BGG.SearchDelayDuration(), logger),
				rank.NewStage(cfg.Paths.RanksFile, logger),
				enrich.NewStage(api, writer, cfg.BGG.DetailDelayDuration(), logger),
			}
			if !skipImages {
				stages = append(stages, images.NewStage(api, cfg.Paths.ImagesDir, writer, cfg.BGG.DetailDelayDuration(), logger))
			}

			runner := pipeline.NewRunner(cfg.Paths.WorkspaceDir, writer, logger, stages...)
			if err := runner.Run(ctx, table); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderCollectionSummary(table))
			fmt.Fprintf(out, "\nWrote %s\n", cfg.Paths.CollectionFile)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipImages, "skip-images", false, "Skip the box art download phase")
	return cmd
}
