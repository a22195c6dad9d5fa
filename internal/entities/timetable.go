// Package entities contains the core domain objects for the train-board application
package entities

import "fmt"

// StationCode identifies a station on the timetable board (the Key query parameter)
type StationCode string

// TrainPath is one configured leg: trains leaving Departure and reaching Arrival
type TrainPath struct {
	Departure StationCode
	Arrival   StationCode
}

func (p TrainPath) String() string {
	return fmt.Sprintf("%s->%s", p.Departure, p.Arrival)
}

// Cell holds the trimmed text fragments collected inside one table cell
type Cell []string

// RawRow is one extracted table row before projection
type RawRow []Cell

// Fragment returns the fragment at index frag of cell col
func (r RawRow) Fragment(col, frag int) (string, bool) {
	if col < 0 || col >= len(r) {
		return "", false
	}
	cell := r[col]
	if frag < 0 || frag >= len(cell) {
		return "", false
	}
	return cell[frag], true
}

// ArrivalRecord is one row of a station's arrivals board
type ArrivalRecord struct {
	From    string `json:"from"`    // Origin station
	Line    string `json:"line"`    // Line designation, e.g. S1
	Arrival string `json:"arrival"` // HH:MM
	No      string `json:"no"`      // Train number
	Carrier string `json:"carrier"` // Operator
}

// DepartureRecord is one row of a station's departures board
type DepartureRecord struct {
	Departure string `json:"departure"` // HH:MM
	No        string `json:"no"`
	Carrier   string `json:"carrier"`
	Line      string `json:"line"`
	To        string `json:"to"` // Destination station
}

// JourneyRecord merges an arrival and a departure of the same train number
type JourneyRecord struct {
	From      string `json:"from"`
	Line      string `json:"line"`
	Arrival   string `json:"arrival"`
	No        string `json:"no"`
	Carrier   string `json:"carrier"`
	Departure string `json:"departure"`
	To        string `json:"to"`
	Midtime   string `json:"midtime"`
}
