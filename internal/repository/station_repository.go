// Package repository provides data access implementations
package repository

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abelzeko/train-board/internal/entities"
)

// ErrStationPopulated is returned when a station is saved twice in one run
var ErrStationPopulated = errors.New("station already populated")

// StationRepository defines the per-run storage of station boards
type StationRepository interface {
	SaveStation(code entities.StationCode, arrivals []entities.ArrivalRecord, departures []entities.DepartureRecord) error
	Arrivals(code entities.StationCode) []entities.ArrivalRecord
	Departures(code entities.StationCode) []entities.DepartureRecord
	Stations() []entities.StationCode
}

type stationBoards struct {
	arrivals   []entities.ArrivalRecord
	departures []entities.DepartureRecord
}

// MemoryStationRepository keeps both boards of every station in memory.
// Each station is written once and read-only afterwards; a run is sequential
// so the repository is not safe for concurrent writers.
type MemoryStationRepository struct {
	stations map[entities.StationCode]stationBoards
	order    []entities.StationCode
}

// NewMemoryStationRepository creates an empty repository
func NewMemoryStationRepository() *MemoryStationRepository {
	return &MemoryStationRepository{
		stations: make(map[entities.StationCode]stationBoards),
	}
}

// SaveStation stores the arrivals and departures boards of a station
func (r *MemoryStationRepository) SaveStation(code entities.StationCode, arrivals []entities.ArrivalRecord, departures []entities.DepartureRecord) error {
	if _, ok := r.stations[code]; ok {
		return fmt.Errorf("failed to save station %s: %w", code, ErrStationPopulated)
	}
	r.stations[code] = stationBoards{
		arrivals:   slices.Clone(arrivals),
		departures: slices.Clone(departures),
	}
	r.order = append(r.order, code)
	return nil
}

// Arrivals returns the arrivals board of a station, empty if none was stored
func (r *MemoryStationRepository) Arrivals(code entities.StationCode) []entities.ArrivalRecord {
	return slices.Clone(r.stations[code].arrivals)
}

// Departures returns the departures board of a station, empty if none was stored
func (r *MemoryStationRepository) Departures(code entities.StationCode) []entities.DepartureRecord {
	return slices.Clone(r.stations[code].departures)
}

// Stations lists stored station codes in the order they were saved
func (r *MemoryStationRepository) Stations() []entities.StationCode {
	return slices.Clone(r.order)
}
