package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	SaveDirectory string
	Cols          int
	Rows          int
	CellSize      int
	Gridlines     bool
	PNGGridlines  bool
	PNGCaption    bool
	ShareBase     string
	Confirmations bool
	LogFile       string
	LogLevel      string
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		Cols:          DefaultCols,
		Rows:          DefaultRows,
		CellSize:      DefaultCellSize,
		Gridlines:     true,
		PNGGridlines:  false,
		PNGCaption:    false,
		ShareBase:     "",
		Confirmations: true,
		LogLevel:      "info",
	}
}

// loadConfig reads ~/.pixlrc. A missing or unreadable file yields defaults.
func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}

	file, err := os.Open(filepath.Join(homeDir, ".pixlrc"))
	if err != nil {
		return defaultConfig()
	}
	defer file.Close()

	return parseConfig(file, homeDir)
}

func parseConfig(r io.Reader, homeDir string) *Config {
	config := defaultConfig()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "cols", "width", "w":
			if n, ok := parseGridSize(value); ok {
				config.Cols = n
			}
		case "rows", "height", "h":
			if n, ok := parseGridSize(value); ok {
				config.Rows = n
			}
		case "cellsize", "cell_size", "zoom":
			if n, err := strconv.Atoi(value); err == nil {
				config.CellSize = clampCellSize(n)
			}
		case "gridlines", "grid":
			config.Gridlines = strings.ToLower(value) == "true"
		case "png_gridlines", "pnggridlines":
			config.PNGGridlines = strings.ToLower(value) == "true"
		case "png_caption", "pngcaption", "caption":
			config.PNGCaption = strings.ToLower(value) == "true"
		case "share_base", "sharebase", "base_url":
			config.ShareBase = value
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "log_file", "logfile":
			config.LogFile = expandPath(value, homeDir)
		case "log_level", "loglevel":
			config.LogLevel = value
		}
	}

	return config
}

func parseGridSize(value string) (int, bool) {
	n, err := strconv.Atoi(value)
	if err != nil || n < MinGridSize || n > MaxGridSize {
		return 0, false
	}
	return n, true
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// GetSavePath places filename in the save directory, creating the directory
// if needed.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.SaveDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		return "", fmt.Errorf("save directory: %w", err)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}

func (c *Config) renderOptions(cellSize int) RenderOptions {
	return RenderOptions{
		CellSize:  cellSize,
		Gridlines: c.PNGGridlines,
		Caption:   c.PNGCaption,
	}
}
