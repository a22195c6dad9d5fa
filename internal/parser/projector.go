package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/abelzeko/train-board/internal/entities"
)

// ErrShortRow means a row lacks a cell or fragment that a projection reads.
// It usually signals that the board layout changed.
var ErrShortRow = errors.New("row has fewer cells than the projection requires")

// ProjectionError describes the first missing cell or fragment of a row
type ProjectionError struct {
	Row      int // 1-based position among extracted rows, 0 if unknown
	Cell     int
	Fragment int
	Cells    int // cells actually present
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("row %d: missing fragment %d of cell %d (row has %d cells): %v",
		e.Row, e.Fragment, e.Cell, e.Cells, ErrShortRow)
}

func (e *ProjectionError) Unwrap() error { return ErrShortRow }

// Projector maps a RawRow onto a typed record using fixed column indices
type Projector[T any] interface {
	Project(row entities.RawRow) (T, error)
}

// ArrivalProjector reads an arrivals board row: origin, line, time, number and carrier
type ArrivalProjector struct{}

func (ArrivalProjector) Project(row entities.RawRow) (entities.ArrivalRecord, error) {
	f := fragmentReader{row: row}
	rec := entities.ArrivalRecord{
		From:    f.get(0, 0),
		Line:    f.get(1, 0),
		Arrival: f.get(4, 0),
		No:      f.get(5, 0),
		Carrier: f.get(5, 1),
	}
	if f.err != nil {
		return entities.ArrivalRecord{}, f.err
	}
	return rec, nil
}

// DepartureProjector reads a departures board row: time, number, carrier, line and destination
type DepartureProjector struct{}

func (DepartureProjector) Project(row entities.RawRow) (entities.DepartureRecord, error) {
	f := fragmentReader{row: row}
	rec := entities.DepartureRecord{
		Departure: f.get(2, 0),
		No:        f.get(3, 0),
		Carrier:   f.get(3, 1),
		Line:      f.get(4, 0),
		To:        f.get(6, 0),
	}
	if f.err != nil {
		return entities.DepartureRecord{}, f.err
	}
	return rec, nil
}

// fragmentReader keeps the first lookup failure so projections read linearly
type fragmentReader struct {
	row entities.RawRow
	err error
}

func (f *fragmentReader) get(col, frag int) string {
	if f.err != nil {
		return ""
	}
	text, ok := f.row.Fragment(col, frag)
	if !ok {
		f.err = &ProjectionError{Cell: col, Fragment: frag, Cells: len(f.row)}
	}
	return text
}

// RecordExtractor pairs the row state machine with a projector
type RecordExtractor[T any] struct {
	rows      *TableRowExtractor
	projector Projector[T]
	count     int
}

// NewRecordExtractor creates a RecordExtractor reading markup from r
func NewRecordExtractor[T any](r io.Reader, p Projector[T], opts ...Option) *RecordExtractor[T] {
	return &RecordExtractor[T]{
		rows:      NewTableRowExtractor(r, opts...),
		projector: p,
	}
}

// Next returns the next projected record, or io.EOF at the end of input
func (x *RecordExtractor[T]) Next() (T, error) {
	var zero T
	row, err := x.rows.Next()
	if err != nil {
		return zero, err
	}
	x.count++

	rec, err := x.projector.Project(row)
	if err != nil {
		var pe *ProjectionError
		if errors.As(err, &pe) {
			pe.Row = x.count
		}
		return zero, err
	}
	return rec, nil
}

// ExtractRecords projects every qualifying row read from r. The first
// projection failure aborts extraction.
func ExtractRecords[T any](r io.Reader, p Projector[T], opts ...Option) ([]T, error) {
	x := NewRecordExtractor(r, p, opts...)
	var records []T
	for {
		rec, err := x.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// ExtractArrivals reads an arrivals board
func ExtractArrivals(r io.Reader, opts ...Option) ([]entities.ArrivalRecord, error) {
	return ExtractRecords[entities.ArrivalRecord](r, ArrivalProjector{}, opts...)
}

// ExtractDepartures reads a departures board
func ExtractDepartures(r io.Reader, opts ...Option) ([]entities.DepartureRecord, error) {
	return ExtractRecords[entities.DepartureRecord](r, DepartureProjector{}, opts...)
}
