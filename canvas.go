package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	onCellStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#ffffff"))
	offCellStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0e0e0")).Background(lipgloss.Color("#ffffff"))
	cursorCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f00")).Background(lipgloss.Color("#ffd7af"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#d0d0d0"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	successStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd75f"))

	drawingIndicator = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#87d787")).Padding(0, 1)
	erasingIndicator = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#ff8787")).Padding(0, 1)
	fillingIndicator = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#87afff")).Padding(0, 1)
)

const (
	onGlyph       = "██"
	offGlyph      = "  "
	offGridGlyph  = "· "
	cursorOnGlyph = "▓▓"
	cursorGlyph   = "[]"
)

// renderCanvas draws the visible part of the grid, two terminal columns per
// cell, starting at the pan offset.
func renderCanvas(s *Session, width, height, panX, panY, cursorX, cursorY int, showCursor bool) []string {
	viewCols := max(width/termCellWidth, 1)
	lines := make([]string, 0, height)

	for row := 0; row < height; row++ {
		y := row + panY
		if y >= s.Rows() {
			lines = append(lines, "")
			continue
		}

		var line strings.Builder
		for col := 0; col < viewCols; col++ {
			x := col + panX
			if x >= s.Cols() {
				break
			}
			line.WriteString(renderCell(s, x, y, showCursor && x == cursorX && y == cursorY))
		}
		lines = append(lines, line.String())
	}

	return lines
}

func renderCell(s *Session, x, y int, cursor bool) string {
	on := s.At(x, y)
	switch {
	case cursor && on:
		return cursorCellStyle.Render(cursorOnGlyph)
	case cursor:
		return cursorCellStyle.Render(cursorGlyph)
	case on:
		return onCellStyle.Render(onGlyph)
	case s.Gridlines():
		return offCellStyle.Render(offGridGlyph)
	default:
		return offCellStyle.Render(offGlyph)
	}
}

func modeIndicator(s *Session) string {
	switch {
	case s.Tool() == ToolFill:
		return fillingIndicator.Render("FILL")
	case s.Stroking() && s.PaintMode() == PaintOff:
		return erasingIndicator.Render("ERASE")
	default:
		return drawingIndicator.Render("DRAW")
	}
}
