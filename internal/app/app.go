// Package app wires configuration, the board scraper and the train use case
// into one batch run shared by the commands.
package app

import (
	"context"
	"fmt"

	"github.com/abelzeko/train-board/internal/config"
	"github.com/abelzeko/train-board/internal/entities"
	"github.com/abelzeko/train-board/internal/integration"
	"github.com/abelzeko/train-board/internal/logger"
	"github.com/abelzeko/train-board/internal/repository"
	"github.com/abelzeko/train-board/internal/usecases"
	"github.com/spf13/cobra"
)

// Options are command-line overrides of the environment configuration
type Options struct {
	Paths     []string
	BoardURL  string
	ChunkSize int
	Marker    string
}

// AddRunFlags registers the flags shared by every command
func AddRunFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringArrayVarP(&opts.Paths, "path", "p", nil, "train path as departure:arrival station codes (repeatable, default TRAIN_PATHS)")
	cmd.Flags().StringVar(&opts.BoardURL, "url", "", "station board URL (default BOARD_URL)")
	cmd.Flags().IntVar(&opts.ChunkSize, "chunk-size", 0, "bytes fed to the parser per read (default CHUNK_SIZE)")
	cmd.Flags().StringVar(&opts.Marker, "marker", "", "class marker of rows to skip (default SKIP_ROW_MARKER)")
}

// LoadConfig reads .env files and the environment, then applies opts
func LoadConfig(opts Options) (*config.Config, error) {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(opts.Paths) > 0 {
		paths := make([]entities.TrainPath, 0, len(opts.Paths))
		for _, p := range opts.Paths {
			path, err := config.ParseTrainPath(p)
			if err != nil {
				return nil, err
			}
			paths = append(paths, path)
		}
		cfg.TrainPaths = paths
	}
	if opts.BoardURL != "" {
		cfg.BoardURL = opts.BoardURL
	}
	if opts.ChunkSize > 0 {
		cfg.ChunkSize = opts.ChunkSize
	}
	if opts.Marker != "" {
		cfg.SkipRowMarker = opts.Marker
	}

	logger.Init(cfg.LogLevel)
	return cfg, nil
}

// ReconstructJourneys runs one batch against the configured board source
func ReconstructJourneys(ctx context.Context, cfg *config.Config) ([]entities.JourneyRecord, error) {
	timeout := cfg.RunTimeout
	if timeout <= 0 {
		timeout = config.DefaultRunTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	scraper := integration.NewTimetableScraper(cfg.ScraperConfig())
	repo := repository.NewMemoryStationRepository()
	useCase := usecases.NewTrainUseCase(repo, scraper)

	journeys, err := useCase.ReconstructJourneys(ctx, cfg.TrainPaths)
	if err != nil {
		return nil, err
	}
	if journeys == nil {
		journeys = []entities.JourneyRecord{}
	}
	return journeys, nil
}
