package config

const (
	defaultWorkspaceDir   = "~/boardshelf"
	defaultListFile       = "list.txt"
	defaultRanksFile      = "boardgames_ranks.csv"
	defaultIDsFile        = "boardgame_ids.csv"
	defaultCollectionFile = "collection.csv"
	defaultImagesDir      = "images"
	defaultCacheDB        = "~/.cache/boardshelf/resolutions.db"
	defaultLogDir         = "~/.local/share/boardshelf/logs"

	defaultBGGBaseURL     = "https://boardgamegeek.com/xmlapi2"
	defaultRequestTimeout = 10

	// Request pacing mirrors BGG's published fair-use guidance: one search
	// every 2 seconds, detail fetches slightly slower.
	defaultSearchDelay = 2.0
	defaultDetailDelay = 2.5
	defaultMaxRetries  = 3
	defaultBackoffBase = 2.0

	defaultCheckpointInterval = 10

	defaultServerBind = "127.0.0.1:8000"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir:   defaultWorkspaceDir,
			ListFile:       defaultListFile,
			RanksFile:      defaultRanksFile,
			IDsFile:        defaultIDsFile,
			CollectionFile: defaultCollectionFile,
			ImagesDir:      defaultImagesDir,
			CacheDB:        defaultCacheDB,
			LogDir:         defaultLogDir,
		},
		BGG: BGG{
			BaseURL:        defaultBGGBaseURL,
			RequestTimeout: defaultRequestTimeout,
			SearchDelay:    defaultSearchDelay,
			DetailDelay:    defaultDetailDelay,
			MaxRetries:     defaultMaxRetries,
			BackoffBase:    defaultBackoffBase,
		},
		Pipeline: Pipeline{
			CheckpointInterval: defaultCheckpointInterval,
		},
		Server: Server{
			Bind: defaultServerBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
