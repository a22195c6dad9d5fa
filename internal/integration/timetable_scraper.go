// Package integration handles external service interactions
package integration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abelzeko/train-board/internal/entities"
	"github.com/abelzeko/train-board/internal/logger"
	"github.com/abelzeko/train-board/internal/parser"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	resty "gopkg.in/resty.v1"
)

// DefaultBoardURL is the station board page of the Czech railway infrastructure manager
const DefaultBoardURL = "https://provoz.spravazeleznic.cz/tabule/Pages/StationTable.aspx"

// ScraperConfig configures a TimetableScraper; zero values fall back to defaults
type ScraperConfig struct {
	BoardURL      string
	Timeout       time.Duration
	ChunkSize     int
	SkipRowMarker string
}

// TimetableScraper fetches station boards and extracts their records
type TimetableScraper struct {
	boardURL   string
	client     *resty.Client
	chunkSize  int
	skipMarker string
	log        *zap.SugaredLogger
}

// NewTimetableScraper creates a new timetable scraper
func NewTimetableScraper(cfg ScraperConfig) *TimetableScraper {
	if cfg.BoardURL == "" {
		cfg.BoardURL = DefaultBoardURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = parser.DefaultChunkSize
	}
	if cfg.SkipRowMarker == "" {
		cfg.SkipRowMarker = parser.DefaultSkipRowMarker
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "text/html")

	return &TimetableScraper{
		boardURL:   cfg.BoardURL,
		client:     client,
		chunkSize:  cfg.ChunkSize,
		skipMarker: cfg.SkipRowMarker,
		log:        logger.Get(),
	}
}

type boardBody struct {
	io.Reader
	io.Closer
}

// FetchBoard requests one view of a station board and returns its body
// decoded to UTF-8. The caller closes the body.
func (ts *TimetableScraper) FetchBoard(ctx context.Context, code entities.StationCode, arrivals bool) (io.ReadCloser, error) {
	req := ts.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetQueryParam("Key", string(code))
	if arrivals {
		req.SetQueryParam("Arr", "1")
	}

	res, err := req.Get(ts.boardURL)
	if err != nil {
		ts.log.Errorf("Error fetching board for station %s: %v", code, err)
		return nil, fmt.Errorf("failed to fetch board for station %s: %w", code, err)
	}

	body := res.RawBody()
	if res.StatusCode() != http.StatusOK {
		body.Close()
		ts.log.Errorf("Received unexpected status code for station %s: %s", code, res.Status())
		return nil, fmt.Errorf("unexpected status code for station %s: %d %s", code, res.StatusCode(), res.Status())
	}

	decoded, err := charset.NewReader(body, res.Header().Get("Content-Type"))
	if errors.Is(err, io.EOF) {
		ts.log.Debugf("Empty board for station %s", code)
		return boardBody{Reader: strings.NewReader(""), Closer: body}, nil
	}
	if err != nil {
		body.Close()
		return nil, fmt.Errorf("failed to decode board for station %s: %w", code, err)
	}
	return boardBody{Reader: decoded, Closer: body}, nil
}

// FetchArrivals retrieves and parses the arrivals board of a station
func (ts *TimetableScraper) FetchArrivals(ctx context.Context, code entities.StationCode) ([]entities.ArrivalRecord, error) {
	ts.log.Debugf("Fetching arrivals board for station %s", code)
	body, err := ts.FetchBoard(ctx, code, true)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	records, err := parser.ExtractArrivals(parser.NewChunkReader(body, ts.chunkSize), parser.WithSkipRowMarker(ts.skipMarker))
	if err != nil {
		return nil, fmt.Errorf("failed to parse arrivals board for station %s: %w", code, err)
	}
	ts.log.Debugf("Parsed %d arrivals for station %s", len(records), code)
	return records, nil
}

// FetchDepartures retrieves and parses the departures board of a station
func (ts *TimetableScraper) FetchDepartures(ctx context.Context, code entities.StationCode) ([]entities.DepartureRecord, error) {
	ts.log.Debugf("Fetching departures board for station %s", code)
	body, err := ts.FetchBoard(ctx, code, false)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	records, err := parser.ExtractDepartures(parser.NewChunkReader(body, ts.chunkSize), parser.WithSkipRowMarker(ts.skipMarker))
	if err != nil {
		return nil, fmt.Errorf("failed to parse departures board for station %s: %w", code, err)
	}
	ts.log.Debugf("Parsed %d departures for station %s", len(records), code)
	return records, nil
}
