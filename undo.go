package main

// Snapshot is an immutable copy of a grid. Two snapshots are equal with ==
// when their dimensions and cells match.
type Snapshot struct {
	cols  int
	rows  int
	cells string
}

func (s Snapshot) Cols() int { return s.cols }
func (s Snapshot) Rows() int { return s.rows }

// Snapshot copies the grid into a value that later mutation cannot reach.
func (g *Grid) Snapshot() Snapshot {
	buf := make([]byte, len(g.cells))
	for i, v := range g.cells {
		if v {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return Snapshot{cols: g.cols, rows: g.rows, cells: string(buf)}
}

// Grid rebuilds a fresh, independently mutable grid from the snapshot.
func (s Snapshot) Grid() *Grid {
	cells := make([]bool, len(s.cells))
	for i := 0; i < len(s.cells); i++ {
		cells[i] = s.cells[i] == '1'
	}
	return &Grid{cols: s.cols, rows: s.rows, cells: cells}
}

// History is a bounded linear undo/redo list of snapshots with a cursor
// pointing at the snapshot that matches the live grid.
type History struct {
	snapshots []Snapshot
	cursor    int
	limit     int
}

func NewHistory(initial Snapshot, limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{
		snapshots: []Snapshot{initial},
		cursor:    0,
		limit:     limit,
	}
}

// Commit drops any redo branch and appends s. Past the limit the oldest
// snapshot is evicted and the cursor stays on the last index.
func (h *History) Commit(s Snapshot) {
	if h.cursor < len(h.snapshots)-1 {
		h.snapshots = h.snapshots[:h.cursor+1]
	}

	h.snapshots = append(h.snapshots, s)

	if len(h.snapshots) > h.limit {
		h.snapshots = append(h.snapshots[:0], h.snapshots[1:]...)
	} else {
		h.cursor++
	}
}

// Undo steps back one snapshot. The bool is false when there was nothing
// to undo; the current snapshot is returned either way.
func (h *History) Undo() (Snapshot, bool) {
	if !h.CanUndo() {
		return h.Current(), false
	}
	h.cursor--
	return h.snapshots[h.cursor], true
}

func (h *History) Redo() (Snapshot, bool) {
	if !h.CanRedo() {
		return h.Current(), false
	}
	h.cursor++
	return h.snapshots[h.cursor], true
}

func (h *History) CanUndo() bool { return h.cursor > 0 }

func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

func (h *History) Current() Snapshot { return h.snapshots[h.cursor] }

func (h *History) Len() int { return len(h.snapshots) }

func (h *History) Cursor() int { return h.cursor }
