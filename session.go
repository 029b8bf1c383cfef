package main

import (
	"fmt"
	"log/slog"
)

// Session is the editor state: the live grid, its history, the active tool
// and the in-progress paint stroke. It is owned by a single event loop and
// is not safe for concurrent use.
type Session struct {
	grid      *Grid
	history   *History
	tool      Tool
	paintMode PaintMode
	cellSize  int
	gridlines bool
	stroking  bool
	lastCell  point
	log       *slog.Logger
}

type SessionOption func(*Session)

func WithCellSize(size int) SessionOption {
	return func(s *Session) { s.cellSize = clampCellSize(size) }
}

func WithGridlines(show bool) SessionOption {
	return func(s *Session) { s.gridlines = show }
}

func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSession creates an all-off grid and commits it as the first snapshot.
func NewSession(cols, rows int, opts ...SessionOption) (*Session, error) {
	grid, err := NewGrid(cols, rows)
	if err != nil {
		return nil, err
	}
	s := &Session{
		grid:      grid,
		tool:      ToolDraw,
		paintMode: PaintOn,
		cellSize:  DefaultCellSize,
		gridlines: true,
		log:       newNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.history = NewHistory(grid.Snapshot(), MaxHistory)
	return s, nil
}

func (s *Session) commit(op string) {
	s.history.Commit(s.grid.Snapshot())
	s.log.Debug("commit", "op", op, "cols", s.grid.cols, "rows", s.grid.rows,
		"history", s.history.Len(), "cursor", s.history.Cursor())
}

// flushStroke commits a stroke that is still open so that the next history
// operation starts from a recorded state.
func (s *Session) flushStroke() {
	if s.stroking {
		s.EndStroke()
	}
}

// Grid returns a copy of the live grid.
func (s *Session) Grid() *Grid { return s.grid.Clone() }

func (s *Session) Cols() int { return s.grid.cols }
func (s *Session) Rows() int { return s.grid.rows }

// At reports whether (x, y) is on. Out of range cells read as off.
func (s *Session) At(x, y int) bool {
	return s.grid.inBounds(x, y) && s.grid.at(x, y)
}

func (s *Session) Tool() Tool           { return s.tool }
func (s *Session) PaintMode() PaintMode { return s.paintMode }
func (s *Session) CellSize() int        { return s.cellSize }
func (s *Session) Gridlines() bool      { return s.gridlines }
func (s *Session) Stroking() bool       { return s.stroking }
func (s *Session) CanUndo() bool        { return s.history.CanUndo() }
func (s *Session) CanRedo() bool        { return s.history.CanRedo() }
func (s *Session) History() *History    { return s.history }

func (s *Session) Resize(cols, rows int) error {
	s.flushStroke()
	resized, err := s.grid.Resize(cols, rows)
	if err != nil {
		s.log.Warn("resize rejected", "cols", cols, "rows", rows, "err", err)
		return err
	}
	s.grid = resized
	s.commit("resize")
	return nil
}

func (s *Session) Clear() {
	s.flushStroke()
	s.grid.Clear()
	s.commit("clear")
}

func (s *Session) Invert() {
	s.flushStroke()
	s.grid.Invert()
	s.commit("invert")
}

func (s *Session) TranslateUp()    { s.translate("up", s.grid.TranslateUp) }
func (s *Session) TranslateDown()  { s.translate("down", s.grid.TranslateDown) }
func (s *Session) TranslateLeft()  { s.translate("left", s.grid.TranslateLeft) }
func (s *Session) TranslateRight() { s.translate("right", s.grid.TranslateRight) }

func (s *Session) translate(dir string, shift func()) {
	s.flushStroke()
	shift()
	s.commit("translate " + dir)
}

func (s *Session) Rotate90Clockwise() {
	s.flushStroke()
	s.grid = s.grid.Rotate90Clockwise()
	s.commit("rotate")
}

func (s *Session) FloodFill(x, y int) error {
	s.flushStroke()
	changed, err := s.grid.FloodFill(x, y)
	if err != nil {
		s.log.Warn("fill rejected", "x", x, "y", y, "err", err)
		return err
	}
	s.log.Debug("fill", "x", x, "y", y, "changed", changed)
	s.commit("fill")
	return nil
}

// LoadEncoded replaces the grid with text decoded against the current
// dimensions.
func (s *Session) LoadEncoded(text string) error {
	s.flushStroke()
	loaded, err := Decode(text, s.grid.cols, s.grid.rows)
	if err != nil {
		s.log.Warn("load rejected", "err", err)
		return err
	}
	s.grid = loaded
	s.commit("load")
	return nil
}

// LoadLocator adopts the locator's dimensions, when given, and decodes its
// data into a grid of that size. Nothing changes if any part is invalid.
func (s *Session) LoadLocator(raw string) error {
	s.flushStroke()
	loc, err := ParseLocator(raw)
	if err != nil {
		s.log.Warn("locator rejected", "err", err)
		return err
	}
	if loc.Cols == 0 {
		loc.Cols = s.grid.cols
	}
	if loc.Rows == 0 {
		loc.Rows = s.grid.rows
	}
	loaded, err := loc.Grid()
	if err != nil {
		s.log.Warn("locator rejected", "err", err)
		return err
	}
	s.grid = loaded
	s.commit("load locator")
	return nil
}

func (s *Session) Export() string { return Encode(s.grid) }

func (s *Session) Locator() Locator { return LocatorFor(s.grid) }

func (s *Session) Undo() bool {
	s.flushStroke()
	snap, ok := s.history.Undo()
	if ok {
		s.grid = snap.Grid()
	}
	return ok
}

func (s *Session) Redo() bool {
	s.flushStroke()
	snap, ok := s.history.Redo()
	if ok {
		s.grid = snap.Grid()
	}
	return ok
}

func clampCellSize(size int) int {
	return max(MinCellSize, min(MaxCellSize, size))
}

func (s *Session) SetCellSize(size int) { s.cellSize = clampCellSize(size) }
func (s *Session) ZoomIn()              { s.SetCellSize(s.cellSize + CellSizeStep) }
func (s *Session) ZoomOut()             { s.SetCellSize(s.cellSize - CellSizeStep) }

func (s *Session) SetTool(t Tool) { s.tool = t }

// TogglePaintMode flips an open stroke between painting and erasing. The
// next BeginStroke picks its mode from the pressed cell, so outside a
// stroke there is nothing to flip and it reports false.
func (s *Session) TogglePaintMode() bool {
	if !s.stroking {
		return false
	}
	if s.paintMode == PaintOn {
		s.paintMode = PaintOff
	} else {
		s.paintMode = PaintOn
	}
	return true
}

func (s *Session) ToggleGridlines() { s.gridlines = !s.gridlines }

// Press handles a pointer press at (x, y) with the active tool. Fill commits
// immediately; draw opens a stroke that EndStroke commits.
func (s *Session) Press(x, y int) error {
	switch s.tool {
	case ToolFill:
		return s.FloodFill(x, y)
	case ToolDraw:
		return s.BeginStroke(x, y)
	default:
		return fmt.Errorf("unknown tool %d", s.tool)
	}
}

// BeginStroke toggles (x, y) and fixes the stroke's paint mode: erase if the
// cell was on, paint otherwise.
func (s *Session) BeginStroke(x, y int) error {
	s.flushStroke()
	was, err := s.grid.Get(x, y)
	if err != nil {
		return err
	}
	if was {
		s.paintMode = PaintOff
	} else {
		s.paintMode = PaintOn
	}
	s.grid.put(x, y, s.paintMode.value())
	s.stroking = true
	s.lastCell = point{x, y}
	return nil
}

// ContinueStroke sets (x, y) to the stroke's paint mode. It reports whether
// the cell changed; points off the grid or outside a stroke are ignored.
func (s *Session) ContinueStroke(x, y int) bool {
	if !s.stroking || !s.grid.inBounds(x, y) {
		return false
	}
	if s.lastCell == (point{x, y}) || s.grid.at(x, y) == s.paintMode.value() {
		return false
	}
	s.grid.put(x, y, s.paintMode.value())
	s.lastCell = point{x, y}
	return true
}

// EndStroke closes the stroke with a single commit.
func (s *Session) EndStroke() {
	if !s.stroking {
		return
	}
	s.stroking = false
	s.commit("stroke")
}
