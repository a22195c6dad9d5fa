// Package parser turns timetable board markup into table rows and typed records
// without building a document tree.
package parser

import (
	"errors"
	"io"
	"strings"

	"github.com/abelzeko/train-board/internal/entities"
	"golang.org/x/net/html"
)

// DefaultSkipRowMarker is the class substring carried by header and separator rows
const DefaultSkipRowMarker = "tableTextRow"

type extractorState int

const (
	stateSearching extractorState = iota
	stateInTable
	stateInRow
	stateInCell
)

// Option configures a TableRowExtractor
type Option func(*TableRowExtractor)

// WithSkipRowMarker sets the class substring that marks rows to skip
func WithSkipRowMarker(marker string) Option {
	return func(e *TableRowExtractor) {
		if marker != "" {
			e.skipMarker = marker
		}
	}
}

// TableRowExtractor is a streaming state machine over HTML tokens that yields
// one RawRow per qualifying <tr> inside a <tbody>.
//
// The tokenizer keeps partial tags and text across reads, so the rows produced
// do not depend on how the underlying reader splits its input.
type TableRowExtractor struct {
	tokenizer  *html.Tokenizer
	skipMarker string

	state extractorState
	row   entities.RawRow
	cell  entities.Cell
	text  strings.Builder

	err error
}

// NewTableRowExtractor creates an extractor reading markup from r
func NewTableRowExtractor(r io.Reader, opts ...Option) *TableRowExtractor {
	e := &TableRowExtractor{
		tokenizer:  html.NewTokenizer(r),
		skipMarker: DefaultSkipRowMarker,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Next returns the next completed row. It returns io.EOF once the input is
// exhausted; a row still open at that point is discarded.
func (e *TableRowExtractor) Next() (entities.RawRow, error) {
	for e.err == nil {
		if row, ok := e.step(); ok {
			return row, nil
		}
	}
	return nil, e.err
}

func (e *TableRowExtractor) step() (entities.RawRow, bool) {
	switch e.tokenizer.Next() {
	case html.ErrorToken:
		e.err = e.tokenizer.Err()
		if e.err == nil {
			e.err = io.EOF
		}
	case html.TextToken:
		if e.state == stateInCell {
			e.text.Write(e.tokenizer.Text())
		}
	case html.StartTagToken:
		e.startTag()
	case html.EndTagToken:
		name, _ := e.tokenizer.TagName()
		return e.endTag(string(name))
	case html.SelfClosingTagToken:
		return e.endTag(e.startTag())
	}
	return nil, false
}

func (e *TableRowExtractor) startTag() string {
	name, hasAttr := e.tokenizer.TagName()
	tag := string(name)

	switch e.state {
	case stateSearching:
		if tag == "tbody" {
			e.state = stateInTable
		}
	case stateInTable:
		if tag == "tr" && !e.isSkippedRow(hasAttr) {
			e.state = stateInRow
		}
	case stateInRow, stateInCell:
		if tag == "td" {
			e.state = stateInCell
		}
	}
	return tag
}

func (e *TableRowExtractor) isSkippedRow(hasAttr bool) bool {
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = e.tokenizer.TagAttr()
		if string(key) == "class" && strings.Contains(string(val), e.skipMarker) {
			return true
		}
	}
	return false
}

func (e *TableRowExtractor) endTag(tag string) (entities.RawRow, bool) {
	switch e.state {
	case stateInCell:
		// Text trailing the last inline tag belongs to this cell. The old
		// parser kept it buffered into the next cell's first fragment.
		e.flushText()
		if tag == "td" {
			cell := e.cell
			if cell == nil {
				cell = entities.Cell{}
			}
			e.row = append(e.row, cell)
			e.cell = nil
			e.state = stateInRow
		}
	case stateInRow:
		if tag == "tr" {
			row := e.row
			if row == nil {
				row = entities.RawRow{}
			}
			e.row = nil
			e.state = stateInTable
			return row, true
		}
	case stateInTable:
		if tag == "tbody" {
			e.state = stateSearching
		}
	}
	return nil, false
}

// flushText closes the current text run as a fragment of the open cell
func (e *TableRowExtractor) flushText() {
	if e.text.Len() == 0 {
		return
	}
	fragment := strings.TrimSpace(e.text.String())
	e.text.Reset()
	if fragment != "" {
		e.cell = append(e.cell, fragment)
	}
}

// ExtractRows reads all qualifying rows from r
func ExtractRows(r io.Reader, opts ...Option) ([]entities.RawRow, error) {
	e := NewTableRowExtractor(r, opts...)
	var rows []entities.RawRow
	for {
		row, err := e.Next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}
