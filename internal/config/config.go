// Package config loads runtime configuration from the environment
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abelzeko/train-board/internal/entities"
	"github.com/abelzeko/train-board/internal/integration"
	"github.com/abelzeko/train-board/internal/parser"
	"github.com/joho/godotenv"
)

// DefaultTrainPaths covers Libeň -> hl.n., Libeň -> Masarykovo and Vysočany -> Masarykovo
const DefaultTrainPaths = "3471:3444,3471:3449,3489:3449"

// DefaultRunTimeout bounds one batch run when RUN_TIMEOUT_SECONDS is unset or not positive
const DefaultRunTimeout = 120 * time.Second

// ErrInvalidTrainPath is returned for a train path that is not "dep:arr"
var ErrInvalidTrainPath = errors.New("invalid train path")

// Config holds all configuration for a batch run
type Config struct {
	// Board source
	BoardURL       string
	RequestTimeout time.Duration
	ChunkSize      int
	SkipRowMarker  string

	// Run
	TrainPaths []entities.TrainPath
	RunTimeout time.Duration
	LogLevel   string

	// Telegram
	TelegramBotToken string
	TelegramChatID   int64
}

// LoadDotEnv reads .env and then .env.local into the environment if present
func LoadDotEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local") // Overload forces override of existing values
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	paths, err := ParseTrainPaths(getEnv("TRAIN_PATHS", DefaultTrainPaths))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BoardURL:       getEnv("BOARD_URL", integration.DefaultBoardURL),
		RequestTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		ChunkSize:      getEnvInt("CHUNK_SIZE", parser.DefaultChunkSize),
		SkipRowMarker:  getEnv("SKIP_ROW_MARKER", parser.DefaultSkipRowMarker),

		TrainPaths: paths,
		RunTimeout: time.Duration(getEnvInt("RUN_TIMEOUT_SECONDS", 0)) * time.Second,
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
	}

	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = DefaultRunTimeout
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", chatID, err)
		}
		cfg.TelegramChatID = id
	}

	return cfg, nil
}

// ScraperConfig returns the board source part of the configuration
func (c *Config) ScraperConfig() integration.ScraperConfig {
	return integration.ScraperConfig{
		BoardURL:      c.BoardURL,
		Timeout:       c.RequestTimeout,
		ChunkSize:     c.ChunkSize,
		SkipRowMarker: c.SkipRowMarker,
	}
}

// ParseTrainPaths parses a comma separated list of "dep:arr" station pairs
func ParseTrainPaths(value string) ([]entities.TrainPath, error) {
	var paths []entities.TrainPath
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		path, err := ParseTrainPath(item)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no train paths in %q", ErrInvalidTrainPath, value)
	}
	return paths, nil
}

// ParseTrainPath parses one "dep:arr" station pair
func ParseTrainPath(value string) (entities.TrainPath, error) {
	dep, arr, ok := strings.Cut(value, ":")
	dep, arr = strings.TrimSpace(dep), strings.TrimSpace(arr)
	if !ok || dep == "" || arr == "" {
		return entities.TrainPath{}, fmt.Errorf("%w: %q", ErrInvalidTrainPath, value)
	}
	return entities.TrainPath{
		Departure: entities.StationCode(dep),
		Arrival:   entities.StationCode(arr),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
