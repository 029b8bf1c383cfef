package main

import "fmt"

func (g *Grid) Clear() {
	clear(g.cells)
}

func (g *Grid) Invert() {
	for i, v := range g.cells {
		g.cells[i] = !v
	}
}

// TranslateUp shifts every row up by one; the top row wraps to the bottom.
func (g *Grid) TranslateUp() {
	if g.rows <= 1 {
		return
	}
	top := make([]bool, g.cols)
	copy(top, g.cells[:g.cols])
	copy(g.cells, g.cells[g.cols:])
	copy(g.cells[(g.rows-1)*g.cols:], top)
}

// TranslateDown shifts every row down by one; the bottom row wraps to the top.
func (g *Grid) TranslateDown() {
	if g.rows <= 1 {
		return
	}
	last := (g.rows - 1) * g.cols
	bottom := make([]bool, g.cols)
	copy(bottom, g.cells[last:])
	copy(g.cells[g.cols:], g.cells[:last])
	copy(g.cells[:g.cols], bottom)
}

func (g *Grid) TranslateLeft() {
	if g.cols <= 1 {
		return
	}
	for y := 0; y < g.rows; y++ {
		row := g.cells[y*g.cols : (y+1)*g.cols]
		first := row[0]
		copy(row, row[1:])
		row[g.cols-1] = first
	}
}

func (g *Grid) TranslateRight() {
	if g.cols <= 1 {
		return
	}
	for y := 0; y < g.rows; y++ {
		row := g.cells[y*g.cols : (y+1)*g.cols]
		last := row[g.cols-1]
		copy(row[1:], row[:g.cols-1])
		row[0] = last
	}
}

// Rotate90Clockwise returns a new grid with the dimensions swapped.
// Source cell (x, y) lands on (rows-1-y, x).
func (g *Grid) Rotate90Clockwise() *Grid {
	rotated := &Grid{
		cols:  g.rows,
		rows:  g.cols,
		cells: make([]bool, len(g.cells)),
	}
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			rotated.put(g.rows-1-y, x, g.at(x, y))
		}
	}
	return rotated
}

// FloodFill flips the 4-connected region of cells sharing the value of
// (x, y) and returns how many cells changed.
func (g *Grid) FloodFill(x, y int) (int, error) {
	if !g.inBounds(x, y) {
		return 0, fmt.Errorf("%w: fill at (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, g.cols, g.rows)
	}

	target := g.at(x, y)
	fill := !target

	visited := make([]bool, len(g.cells))
	stack := []point{{x, y}}
	changed := 0

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !g.inBounds(current.X, current.Y) {
			continue
		}
		idx := g.index(current.X, current.Y)
		if visited[idx] || g.cells[idx] != target {
			continue
		}

		visited[idx] = true
		g.cells[idx] = fill
		changed++

		stack = append(stack,
			point{current.X + 1, current.Y},
			point{current.X - 1, current.Y},
			point{current.X, current.Y + 1},
			point{current.X, current.Y - 1},
		)
	}

	return changed, nil
}
