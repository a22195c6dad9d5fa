package usecases

import (
	"testing"

	"github.com/abelzeko/train-board/internal/entities"
	"github.com/abelzeko/train-board/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMidtime(t *testing.T) {
	tests := []struct {
		departure, arrival, want string
	}{
		{"13:50", "14:05", "13:57"},
		{"13:50", "14:10", "14:00"},
		{"08:00", "08:00", "08:00"},
		{"9:58", "10:03", "10:00"},
		// no midnight correction: the midpoint of the two clock values
		{"23:50", "00:10", "12:00"},
		{"14:05", "13:50", "13:57"},
	}

	for _, tt := range tests {
		got, err := Midtime(tt.departure, tt.arrival)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.departure, tt.arrival)
	}
}

func TestMidtimeInvalidTime(t *testing.T) {
	for _, value := range []string{"", "14.05", "25:00", "zrušen"} {
		_, err := Midtime("13:50", value)
		var pe *TimeParseError
		require.ErrorAs(t, err, &pe, value)
		assert.Equal(t, value, pe.Value)
	}
}

type boardPair struct {
	arr []entities.ArrivalRecord
	dep []entities.DepartureRecord
}

func newRepo(t *testing.T, boards map[entities.StationCode]boardPair, order ...entities.StationCode) repository.StationRepository {
	t.Helper()
	repo := repository.NewMemoryStationRepository()
	for _, code := range order {
		b := boards[code]
		require.NoError(t, repo.SaveStation(code, b.arr, b.dep))
	}
	return repo
}

func TestMatchTrains(t *testing.T) {
	repo := newRepo(t, map[entities.StationCode]boardPair{
		"3471": {dep: []entities.DepartureRecord{
			{Departure: "13:50", No: "123", Carrier: "ČD", Line: "R21", To: "Brno"},
		}},
		"3444": {arr: []entities.ArrivalRecord{
			{From: "Praha", Line: "R21", Arrival: "14:05", No: "123", Carrier: "ČD"},
		}},
	}, "3471", "3444")

	journeys, err := MatchTrains(repo, []entities.TrainPath{{Departure: "3471", Arrival: "3444"}})
	require.NoError(t, err)

	assert.Equal(t, []entities.JourneyRecord{{
		From:      "Praha",
		Line:      "R21",
		Arrival:   "14:05",
		No:        "123",
		Carrier:   "ČD",
		Departure: "13:50",
		To:        "Brno",
		Midtime:   "13:57",
	}}, journeys)
}

func TestMatchTrainsDropsUnmatched(t *testing.T) {
	repo := newRepo(t, map[entities.StationCode]boardPair{
		"1": {dep: []entities.DepartureRecord{{Departure: "10:00", No: "500"}}},
		"2": {arr: []entities.ArrivalRecord{{Arrival: "10:20", No: "501"}}},
	}, "1", "2")

	journeys, err := MatchTrains(repo, []entities.TrainPath{{Departure: "1", Arrival: "2"}})
	require.NoError(t, err)
	assert.Empty(t, journeys)
}

func TestMatchTrainsUnknownStation(t *testing.T) {
	repo := repository.NewMemoryStationRepository()

	journeys, err := MatchTrains(repo, []entities.TrainPath{{Departure: "1", Arrival: "2"}})
	require.NoError(t, err)
	assert.Empty(t, journeys)
}

func TestMatchTrainsLastDepartureWins(t *testing.T) {
	repo := newRepo(t, map[entities.StationCode]boardPair{
		"1": {dep: []entities.DepartureRecord{
			{Departure: "10:00", No: "500", To: "first"},
			{Departure: "10:10", No: "500", To: "second"},
		}},
		"2": {arr: []entities.ArrivalRecord{{Arrival: "10:30", No: "500"}}},
	}, "1", "2")

	journeys, err := MatchTrains(repo, []entities.TrainPath{{Departure: "1", Arrival: "2"}})
	require.NoError(t, err)
	require.Len(t, journeys, 1)
	assert.Equal(t, "second", journeys[0].To)
	assert.Equal(t, "10:20", journeys[0].Midtime)
}

func TestMatchTrainsSortsAcrossPathsStably(t *testing.T) {
	repo := newRepo(t, map[entities.StationCode]boardPair{
		"3471": {dep: []entities.DepartureRecord{
			{Departure: "10:00", No: "A"},
			{Departure: "09:00", No: "B"},
			{Departure: "10:00", No: "C"},
		}},
		"3489": {dep: []entities.DepartureRecord{
			{Departure: "09:50", No: "D"},
		}},
		"3444": {arr: []entities.ArrivalRecord{
			{Arrival: "10:20", No: "A"},
			{Arrival: "09:20", No: "B"},
		}},
		"3449": {arr: []entities.ArrivalRecord{
			{Arrival: "10:20", No: "C"},
			{Arrival: "10:30", No: "D"},
		}},
	}, "3471", "3489", "3444", "3449")

	paths := []entities.TrainPath{
		{Departure: "3471", Arrival: "3444"},
		{Departure: "3471", Arrival: "3449"},
		{Departure: "3489", Arrival: "3449"},
	}
	journeys, err := MatchTrains(repo, paths)
	require.NoError(t, err)

	var order []string
	for _, j := range journeys {
		order = append(order, j.No+"@"+j.Midtime)
	}
	// A, C and D share 10:10 and keep path order
	assert.Equal(t, []string{"B@09:10", "A@10:10", "C@10:10", "D@10:10"}, order)

	again, err := MatchTrains(repo, paths)
	require.NoError(t, err)
	assert.Equal(t, journeys, again)
}

func TestMatchTrainsInvalidTime(t *testing.T) {
	repo := newRepo(t, map[entities.StationCode]boardPair{
		"1": {dep: []entities.DepartureRecord{{Departure: "10:00", No: "500"}}},
		"2": {arr: []entities.ArrivalRecord{{Arrival: "+5 min", No: "500"}}},
	}, "1", "2")

	_, err := MatchTrains(repo, []entities.TrainPath{{Departure: "1", Arrival: "2"}})
	var pe *TimeParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "500", pe.Train)
}
