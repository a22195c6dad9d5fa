package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/abelzeko/train-board/internal/app"
	"github.com/abelzeko/train-board/internal/logger"
	"github.com/abelzeko/train-board/internal/usecases"
	"github.com/spf13/cobra"
)

func main() {
	defer logger.Sync()
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		opts   app.Options
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:          "board",
		Short:        "Reconstruct train journeys from station timetable boards",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(opts)
			if err != nil {
				return err
			}
			log := logger.Get()
			log.Infof("Starting train board for %d paths", len(cfg.TrainPaths))

			journeys, err := app.ReconstructJourneys(cmd.Context(), cfg)
			if err != nil {
				log.Errorf("Journey reconstruction failed: %v", err)
				return err
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(journeys)
			}
			_, err = fmt.Fprint(out, usecases.FormatJourneys(journeys))
			return err
		},
	}

	app.AddRunFlags(cmd, &opts)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print journeys as a JSON array")
	return cmd
}
