package main

import (
	"fmt"
	"strings"
)

// Grid is a cols x rows matrix of on/off cells stored row-major.
type Grid struct {
	cols  int
	rows  int
	cells []bool
}

// NewGrid returns an all-off grid.
func NewGrid(cols, rows int) (*Grid, error) {
	if err := checkDimensions(cols, rows); err != nil {
		return nil, err
	}
	return &Grid{
		cols:  cols,
		rows:  rows,
		cells: make([]bool, cols*rows),
	}, nil
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

func (g *Grid) index(x, y int) int {
	return y*g.cols + x
}

// at reads a cell without bounds checking; callers must have checked.
func (g *Grid) at(x, y int) bool {
	return g.cells[g.index(x, y)]
}

func (g *Grid) put(x, y int, on bool) {
	g.cells[g.index(x, y)] = on
}

func (g *Grid) Get(x, y int) (bool, error) {
	if !g.inBounds(x, y) {
		return false, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, g.cols, g.rows)
	}
	return g.at(x, y), nil
}

func (g *Grid) Set(x, y int, on bool) error {
	if !g.inBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, g.cols, g.rows)
	}
	g.put(x, y, on)
	return nil
}

// Resize returns a new grid of the requested size. Cells inside the overlap
// of the old and new bounds keep their value, the rest are off.
func (g *Grid) Resize(cols, rows int) (*Grid, error) {
	resized, err := NewGrid(cols, rows)
	if err != nil {
		return nil, err
	}
	w := min(cols, g.cols)
	h := min(rows, g.rows)
	for y := 0; y < h; y++ {
		copy(resized.cells[y*cols:y*cols+w], g.cells[y*g.cols:y*g.cols+w])
	}
	return resized, nil
}

func (g *Grid) Clone() *Grid {
	cells := make([]bool, len(g.cells))
	copy(cells, g.cells)
	return &Grid{cols: g.cols, rows: g.rows, cells: cells}
}

func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.cols != other.cols || g.rows != other.rows {
		return false
	}
	for i, v := range g.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// Count returns the number of on cells.
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

// String renders the grid as rows of '#' and '.', mostly for tests and logs.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.cols + 1) * g.rows)
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			if g.at(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		if y < g.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
