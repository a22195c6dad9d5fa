package usecases

import (
	"fmt"
	"sort"
	"time"

	"github.com/abelzeko/train-board/internal/entities"
	"github.com/abelzeko/train-board/internal/repository"
)

// TimeFormat is the wall-clock layout used on the boards
const TimeFormat = "15:04"

// TimeParseError reports a board time that is not HH:MM
type TimeParseError struct {
	Train string
	Value string
	Err   error
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("train %s: invalid time %q: %v", e.Train, e.Value, e.Err)
}

func (e *TimeParseError) Unwrap() error { return e.Err }

// MatchTrains joins the departures of each path's first station with the
// arrivals of its second station by train number. The result is sorted by
// midtime; ties keep path order, then arrival order.
func MatchTrains(repo repository.StationRepository, paths []entities.TrainPath) ([]entities.JourneyRecord, error) {
	var trains []entities.JourneyRecord
	for _, path := range paths {
		matched, err := matchDeparturesArrivals(repo.Departures(path.Departure), repo.Arrivals(path.Arrival))
		if err != nil {
			return nil, fmt.Errorf("failed to match trains on %s: %w", path, err)
		}
		trains = append(trains, matched...)
	}

	sort.SliceStable(trains, func(i, j int) bool {
		return trains[i].Midtime < trains[j].Midtime
	})
	return trains, nil
}

func matchDeparturesArrivals(departures []entities.DepartureRecord, arrivals []entities.ArrivalRecord) ([]entities.JourneyRecord, error) {
	// Later duplicates of a train number replace earlier ones
	byNo := make(map[string]entities.DepartureRecord, len(departures))
	for _, dep := range departures {
		byNo[dep.No] = dep
	}

	var journeys []entities.JourneyRecord
	for _, arr := range arrivals {
		dep, ok := byNo[arr.No]
		if !ok {
			continue
		}
		midtime, err := trainMidtime(arr.No, dep.Departure, arr.Arrival)
		if err != nil {
			return nil, err
		}
		journeys = append(journeys, entities.JourneyRecord{
			From:      arr.From,
			Line:      arr.Line,
			Arrival:   arr.Arrival,
			No:        arr.No,
			Carrier:   arr.Carrier,
			Departure: dep.Departure,
			To:        dep.To,
			Midtime:   midtime,
		})
	}
	return journeys, nil
}

func trainMidtime(no, departure, arrival string) (string, error) {
	dep, err := time.Parse(TimeFormat, departure)
	if err != nil {
		return "", &TimeParseError{Train: no, Value: departure, Err: err}
	}
	arr, err := time.Parse(TimeFormat, arrival)
	if err != nil {
		return "", &TimeParseError{Train: no, Value: arrival, Err: err}
	}
	return dep.Add(arr.Sub(dep) / 2).Format(TimeFormat), nil
}

// Midtime returns the clock time halfway between departure and arrival.
// Both are same-day HH:MM values; an arrival earlier than the departure is
// not treated as crossing midnight.
func Midtime(departure, arrival string) (string, error) {
	return trainMidtime("", departure, arrival)
}
