// Package config loads runtime settings from the environment.
//
// A .env file in the working directory is read first if present. Recognized
// variables:
//
//	PORT                  HTTP port of the API server (default 8080)
//	PDFBINDER_OUTPUT_DIR  default output folder (default ~/Desktop/PDF_Out)
//	PDFBINDER_BOOKMARKS   bookmark preset file (.toml, .yaml, .yml)
//	PDFBINDER_LOG_LIMIT   log lines kept per session (default 2000)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"go-pdfbinder/internal/bookmark"
	"go-pdfbinder/internal/logsink"
)

const DefaultPort = 8080

type Config struct {
	Port          int
	OutputDir     string
	BookmarksFile string
	LogLimit      int
}

// Load reads .env (if any) and the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Port:          DefaultPort,
		OutputDir:     DefaultOutputDir(),
		BookmarksFile: strings.TrimSpace(os.Getenv("PDFBINDER_BOOKMARKS")),
		LogLimit:      logsink.DefaultLimit,
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}
	if v := strings.TrimSpace(os.Getenv("PDFBINDER_OUTPUT_DIR")); v != "" {
		cfg.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv("PDFBINDER_LOG_LIMIT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid PDFBINDER_LOG_LIMIT %q", v)
		}
		cfg.LogLimit = n
	}
	return cfg, nil
}

// DefaultOutputDir is PDF_Out on the current user's desktop.
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "Desktop", "PDF_Out")
}

// BookmarkRows returns the preset rows from BookmarksFile, or the built-in
// defaults when no file is configured.
func (c Config) BookmarkRows() ([]bookmark.Row, error) {
	return LoadBookmarkRows(c.BookmarksFile)
}

func LoadBookmarkRows(path string) ([]bookmark.Row, error) {
	if path == "" {
		return bookmark.Defaults(), nil
	}
	t, err := bookmark.LoadPreset(path)
	if err != nil {
		return nil, err
	}
	return t.Rows(), nil
}
