package repository

import (
	"testing"

	"github.com/abelzeko/train-board/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStationRepository(t *testing.T) {
	repo := NewMemoryStationRepository()

	arrivals := []entities.ArrivalRecord{{From: "Praha", Arrival: "14:05", No: "123"}}
	departures := []entities.DepartureRecord{{Departure: "13:50", No: "123", To: "Brno"}}

	require.NoError(t, repo.SaveStation("3471", arrivals, departures))
	require.NoError(t, repo.SaveStation("3444", nil, nil))

	assert.Equal(t, arrivals, repo.Arrivals("3471"))
	assert.Equal(t, departures, repo.Departures("3471"))
	assert.Equal(t, []entities.StationCode{"3471", "3444"}, repo.Stations())

	// Empty board is not an error
	assert.Empty(t, repo.Arrivals("3444"))
	assert.Empty(t, repo.Departures("3444"))
}

func TestMemoryStationRepositoryUnknownStation(t *testing.T) {
	repo := NewMemoryStationRepository()

	assert.Empty(t, repo.Arrivals("9999"))
	assert.Empty(t, repo.Departures("9999"))
	assert.Empty(t, repo.Stations())
}

func TestMemoryStationRepositoryWritesOnce(t *testing.T) {
	repo := NewMemoryStationRepository()
	require.NoError(t, repo.SaveStation("3449", nil, nil))

	err := repo.SaveStation("3449", []entities.ArrivalRecord{{No: "1"}}, nil)
	require.ErrorIs(t, err, ErrStationPopulated)
	assert.Empty(t, repo.Arrivals("3449"))
}

func TestMemoryStationRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryStationRepository()
	arrivals := []entities.ArrivalRecord{{No: "123"}}
	require.NoError(t, repo.SaveStation("3471", arrivals, nil))

	arrivals[0].No = "changed"
	got := repo.Arrivals("3471")
	got[0].No = "changed again"

	assert.Equal(t, "123", repo.Arrivals("3471")[0].No)
}
