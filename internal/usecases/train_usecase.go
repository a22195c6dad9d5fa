// Package usecases contains the application's business logic
package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/abelzeko/train-board/internal/entities"
	"github.com/abelzeko/train-board/internal/logger"
	"github.com/abelzeko/train-board/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BoardSource fetches and extracts the two boards of a station
type BoardSource interface {
	FetchArrivals(ctx context.Context, code entities.StationCode) ([]entities.ArrivalRecord, error)
	FetchDepartures(ctx context.Context, code entities.StationCode) ([]entities.DepartureRecord, error)
}

// TrainUseCase runs one batch: load every station of the configured paths,
// then reconstruct journeys
type TrainUseCase struct {
	repo   repository.StationRepository
	source BoardSource
	log    *zap.SugaredLogger
}

// NewTrainUseCase creates a new train use case
func NewTrainUseCase(repo repository.StationRepository, source BoardSource) *TrainUseCase {
	return &TrainUseCase{
		repo:   repo,
		source: source,
		log:    logger.Get(),
	}
}

// ReconstructJourneys loads the boards of all stations named by paths and
// returns the matched journeys sorted by midtime
func (uc *TrainUseCase) ReconstructJourneys(ctx context.Context, paths []entities.TrainPath) ([]entities.JourneyRecord, error) {
	log := uc.log.With("run", uuid.NewString())
	log.Infof("Starting journey reconstruction for %d train paths", len(paths))

	if err := uc.loadStations(ctx, log, StationsOf(paths)); err != nil {
		return nil, err
	}

	journeys, err := MatchTrains(uc.repo, paths)
	if err != nil {
		return nil, err
	}
	log.Infof("Matched %d journeys", len(journeys))
	return journeys, nil
}

// LoadStations fetches both boards of every station named by paths
func (uc *TrainUseCase) LoadStations(ctx context.Context, paths []entities.TrainPath) error {
	return uc.loadStations(ctx, uc.log, StationsOf(paths))
}

func (uc *TrainUseCase) loadStations(ctx context.Context, log *zap.SugaredLogger, stations []entities.StationCode) error {
	for _, code := range stations {
		if err := ctx.Err(); err != nil {
			return err
		}

		arrivals, err := uc.source.FetchArrivals(ctx, code)
		if err != nil {
			return fmt.Errorf("failed to load arrivals for station %s: %w", code, err)
		}
		departures, err := uc.source.FetchDepartures(ctx, code)
		if err != nil {
			return fmt.Errorf("failed to load departures for station %s: %w", code, err)
		}
		log.Infof("Station %s: %d arrivals, %d departures", code, len(arrivals), len(departures))

		if err := uc.repo.SaveStation(code, arrivals, departures); err != nil {
			return err
		}
	}
	return nil
}

// StationsOf returns every station named by paths, in first-seen order
func StationsOf(paths []entities.TrainPath) []entities.StationCode {
	seen := make(map[entities.StationCode]bool)
	var stations []entities.StationCode
	for _, path := range paths {
		for _, code := range []entities.StationCode{path.Departure, path.Arrival} {
			if !seen[code] {
				seen[code] = true
				stations = append(stations, code)
			}
		}
	}
	return stations
}

// FormatJourneys renders one flat field mapping per journey
func FormatJourneys(journeys []entities.JourneyRecord) string {
	var result strings.Builder
	for _, j := range journeys {
		fmt.Fprintf(&result, "{from: %s, line: %s, arrival: %s, no: %s, carrier: %s, departure: %s, to: %s, midtime: %s}\n",
			j.From, j.Line, j.Arrival, j.No, j.Carrier, j.Departure, j.To, j.Midtime)
	}
	return result.String()
}
