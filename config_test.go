package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfig(t *testing.T) {
	home := t.TempDir()
	rc := `
# pixl settings
save_directory = ~/drawings
cols = 64
rows=16
cell_size = 200
gridlines = false
png_gridlines = true
png_caption = TRUE
share_base = https://example.com/pixl/
confirm = false
log_file = ~/pixl.log
log_level = debug
unknown = ignored
not a setting
`
	config := parseConfig(strings.NewReader(rc), home)

	if config.SaveDirectory != filepath.Join(home, "drawings") {
		t.Errorf("SaveDirectory = %q", config.SaveDirectory)
	}
	if config.Cols != 64 || config.Rows != 16 {
		t.Errorf("size = %dx%d, want 64x16", config.Cols, config.Rows)
	}
	if config.CellSize != MaxCellSize {
		t.Errorf("CellSize = %d, want clamped %d", config.CellSize, MaxCellSize)
	}
	if config.Gridlines || !config.PNGGridlines || !config.PNGCaption {
		t.Errorf("gridlines=%v png_gridlines=%v png_caption=%v", config.Gridlines, config.PNGGridlines, config.PNGCaption)
	}
	if config.ShareBase != "https://example.com/pixl/" {
		t.Errorf("ShareBase = %q", config.ShareBase)
	}
	if config.Confirmations {
		t.Error("Confirmations = true, want false")
	}
	if config.LogFile != filepath.Join(home, "pixl.log") || config.LogLevel != "debug" {
		t.Errorf("log = %q %q", config.LogFile, config.LogLevel)
	}
}

func TestParseConfigRejectsBadSizes(t *testing.T) {
	config := parseConfig(strings.NewReader("cols = 0\nrows = 999\ncell_size = big\n"), "")
	if config.Cols != DefaultCols || config.Rows != DefaultRows || config.CellSize != DefaultCellSize {
		t.Errorf("bad values were applied: %dx%d cell %d", config.Cols, config.Rows, config.CellSize)
	}
}

func TestGetSavePath(t *testing.T) {
	config := defaultConfig()
	if got, err := config.GetSavePath("a.png"); err != nil || got != "a.png" {
		t.Errorf("GetSavePath without directory = %q, %v", got, err)
	}

	config.SaveDirectory = filepath.Join(t.TempDir(), "out", "nested")
	got, err := config.GetSavePath("a.png")
	if err != nil {
		t.Fatalf("GetSavePath: %v", err)
	}
	if got != filepath.Join(config.SaveDirectory, "a.png") {
		t.Errorf("GetSavePath = %q", got)
	}
	if info, err := os.Stat(config.SaveDirectory); err != nil || !info.IsDir() {
		t.Errorf("save directory not created: %v", err)
	}
}

func TestGetSavePathReportsDirectoryError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	config := defaultConfig()
	config.SaveDirectory = filepath.Join(blocker, "out")
	if _, err := config.GetSavePath("a.png"); err == nil {
		t.Error("GetSavePath under a regular file returned no error")
	}
}

func TestRenderOptionsFromConfig(t *testing.T) {
	config := defaultConfig()
	config.PNGCaption = true
	opts := config.renderOptions(24)
	if opts.CellSize != 24 || opts.Gridlines || !opts.Caption {
		t.Errorf("renderOptions = %+v", opts)
	}
}
