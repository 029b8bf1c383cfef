package main

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newTestSession(t *testing.T, cols, rows int, opts ...SessionOption) *Session {
	t.Helper()
	s, err := NewSession(cols, rows, opts...)
	if err != nil {
		t.Fatalf("NewSession(%d, %d): %v", cols, rows, err)
	}
	return s
}

func TestNewSessionDefaults(t *testing.T) {
	s := newTestSession(t, DefaultCols, DefaultRows)
	if s.Tool() != ToolDraw || s.PaintMode() != PaintOn {
		t.Errorf("tool=%v mode=%v, want draw paint", s.Tool(), s.PaintMode())
	}
	if s.CellSize() != DefaultCellSize || !s.Gridlines() {
		t.Errorf("cellSize=%d gridlines=%v, want %d true", s.CellSize(), s.Gridlines(), DefaultCellSize)
	}
	if s.History().Len() != 1 || s.CanUndo() || s.CanRedo() {
		t.Error("new session should hold exactly the initial snapshot")
	}

	if _, err := NewSession(0, 5); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("NewSession(0, 5) error = %v, want ErrInvalidDimension", err)
	}
}

func TestSessionUndoRedoScenario(t *testing.T) {
	s := newTestSession(t, 3, 3)
	if err := s.BeginStroke(1, 1); err != nil {
		t.Fatalf("BeginStroke: %v", err)
	}
	s.EndStroke()
	if !s.At(1, 1) {
		t.Fatal("(1,1) not set after stroke")
	}

	if !s.Undo() {
		t.Fatal("Undo() = false")
	}
	if s.Grid().Count() != 0 {
		t.Errorf("after undo grid is\n%s\nwant all off", s.Grid())
	}

	if !s.Redo() {
		t.Fatal("Redo() = false")
	}
	if !s.At(1, 1) || s.Grid().Count() != 1 {
		t.Errorf("after redo grid is\n%s\nwant only (1,1) on", s.Grid())
	}
}

func TestSessionFloodFillScenario(t *testing.T) {
	s := newTestSession(t, 4, 4)
	s.SetTool(ToolFill)
	if err := s.Press(0, 0); err != nil {
		t.Fatalf("Press: %v", err)
	}
	if s.Grid().Count() != 16 {
		t.Errorf("fill turned on %d cells, want 16", s.Grid().Count())
	}
	if s.History().Len() != 2 {
		t.Errorf("history length = %d, want 2 (one commit)", s.History().Len())
	}
	if s.Stroking() {
		t.Error("fill left a stroke open")
	}
}

func TestSessionMutationsCommitOnce(t *testing.T) {
	ops := []struct {
		name string
		op   func(*Session) error
	}{
		{"clear", func(s *Session) error { s.Clear(); return nil }},
		{"invert", func(s *Session) error { s.Invert(); return nil }},
		{"up", func(s *Session) error { s.TranslateUp(); return nil }},
		{"down", func(s *Session) error { s.TranslateDown(); return nil }},
		{"left", func(s *Session) error { s.TranslateLeft(); return nil }},
		{"right", func(s *Session) error { s.TranslateRight(); return nil }},
		{"rotate", func(s *Session) error { s.Rotate90Clockwise(); return nil }},
		{"resize", func(s *Session) error { return s.Resize(5, 2) }},
		{"fill", func(s *Session) error { return s.FloodFill(2, 2) }},
		{"load", func(s *Session) error { return s.LoadEncoded("gA==") }},
		{"locator", func(s *Session) error { return s.LoadLocator("data=gA%3D%3D&w=2&h=2") }},
	}
	for _, tt := range ops {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 4, 3)
			before := s.History().Len()
			if err := tt.op(s); err != nil {
				t.Fatalf("%s: %v", tt.name, err)
			}
			if got := s.History().Len(); got != before+1 {
				t.Errorf("history length = %d, want %d", got, before+1)
			}
			if s.History().Current() != s.Grid().Snapshot() {
				t.Error("current snapshot does not match the live grid")
			}
		})
	}
}

func TestSessionFailuresLeaveStateUntouched(t *testing.T) {
	ops := []struct {
		name string
		op   func(*Session) error
		want error
	}{
		{"resize", func(s *Session) error { return s.Resize(0, 3) }, ErrInvalidDimension},
		{"fill", func(s *Session) error { return s.FloodFill(9, 0) }, ErrOutOfBounds},
		{"press", func(s *Session) error { return s.Press(-1, 0) }, ErrOutOfBounds},
		{"load", func(s *Session) error { return s.LoadEncoded("not base64!") }, ErrInvalidEncoding},
		{"locator size", func(s *Session) error { return s.LoadLocator("data=AA%3D%3D&w=500&h=2") }, ErrInvalidDimension},
		{"locator data", func(s *Session) error { return s.LoadLocator("data=%21%21&w=8&h=8") }, ErrInvalidEncoding},
	}
	for _, tt := range ops {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 4, 3)
			s.Invert()
			before := s.Grid()
			historyLen := s.History().Len()

			if err := tt.op(s); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if !s.Grid().Equal(before) {
				t.Errorf("grid changed after failure:\n%s", s.Grid())
			}
			if s.History().Len() != historyLen {
				t.Errorf("history length = %d, want %d", s.History().Len(), historyLen)
			}
		})
	}
}

func TestSessionUndoRestoresDimensions(t *testing.T) {
	s := newTestSession(t, 5, 2)
	s.BeginStroke(4, 1)
	s.EndStroke()
	s.Rotate90Clockwise()
	if s.Cols() != 2 || s.Rows() != 5 {
		t.Fatalf("rotated size = %dx%d, want 2x5", s.Cols(), s.Rows())
	}
	if err := s.Resize(10, 10); err != nil {
		t.Fatal(err)
	}

	s.Undo()
	if s.Cols() != 2 || s.Rows() != 5 {
		t.Errorf("after first undo size = %dx%d, want 2x5", s.Cols(), s.Rows())
	}
	s.Undo()
	if s.Cols() != 5 || s.Rows() != 2 || !s.At(4, 1) {
		t.Errorf("after second undo size = %dx%d, want 5x2 with (4,1) on", s.Cols(), s.Rows())
	}
}

func TestSessionLiveGridDoesNotAliasHistory(t *testing.T) {
	s := newTestSession(t, 3, 3)
	s.Invert()
	s.Undo()
	s.Invert()
	s.Undo()
	if s.Grid().Count() != 0 {
		t.Error("undo returned a grid that was mutated through the live reference")
	}
	if !s.Redo() || s.Grid().Count() != 9 {
		t.Error("redo snapshot was corrupted")
	}

	g := s.Grid()
	g.Clear()
	if s.Grid().Count() != 9 {
		t.Error("Grid() exposed the live grid")
	}
}

func TestSessionStrokeCommitsOnRelease(t *testing.T) {
	s := newTestSession(t, 5, 5)
	if err := s.BeginStroke(0, 0); err != nil {
		t.Fatal(err)
	}
	if s.PaintMode() != PaintOn {
		t.Errorf("stroke from an off cell should paint, got %v", s.PaintMode())
	}
	for x := 1; x < 5; x++ {
		s.ContinueStroke(x, 0)
	}
	s.ContinueStroke(4, 1)
	s.ContinueStroke(7, 7)

	if s.History().Len() != 1 {
		t.Fatalf("history grew to %d during the stroke", s.History().Len())
	}
	s.EndStroke()
	if s.History().Len() != 2 {
		t.Fatalf("history length = %d after release, want 2", s.History().Len())
	}
	if got := s.Grid().String(); !strings.HasPrefix(got, "#####\n....#\n") {
		t.Errorf("stroke drew\n%s", got)
	}

	s.EndStroke()
	if s.History().Len() != 2 {
		t.Error("second EndStroke committed again")
	}
}

func TestSessionStrokeErasesFromOnCell(t *testing.T) {
	s := newTestSession(t, 3, 1)
	s.Invert()
	s.BeginStroke(0, 0)
	if s.PaintMode() != PaintOff {
		t.Errorf("stroke from an on cell should erase, got %v", s.PaintMode())
	}
	s.ContinueStroke(1, 0)
	s.ContinueStroke(2, 0)
	s.EndStroke()
	if s.Grid().Count() != 0 {
		t.Errorf("erase stroke left\n%s", s.Grid())
	}
}

func TestSessionContinueStrokeSetsNotToggles(t *testing.T) {
	s := newTestSession(t, 3, 1)
	s.BeginStroke(0, 0)
	if !s.ContinueStroke(1, 0) {
		t.Error("ContinueStroke on a new off cell reported no change")
	}
	s.ContinueStroke(0, 0)
	if s.ContinueStroke(1, 0) {
		t.Error("re-entering a painted cell changed it")
	}
	s.EndStroke()
	if s.Grid().String() != "##." {
		t.Errorf("got %s, want ##.", s.Grid())
	}
	if s.ContinueStroke(2, 0) {
		t.Error("ContinueStroke outside a stroke changed the grid")
	}
}

func TestSessionTogglePaintModeOnlyInStroke(t *testing.T) {
	s := newTestSession(t, 3, 1)
	if s.TogglePaintMode() {
		t.Error("toggle outside a stroke reported a change")
	}
	if s.PaintMode() != PaintOn {
		t.Errorf("paint mode changed outside a stroke: %v", s.PaintMode())
	}

	s.BeginStroke(0, 0)
	s.ContinueStroke(1, 0)
	if !s.TogglePaintMode() || s.PaintMode() != PaintOff {
		t.Fatalf("toggle in a stroke gave %v", s.PaintMode())
	}
	s.ContinueStroke(0, 0)
	s.ContinueStroke(1, 0)
	s.EndStroke()
	if got := s.Grid().String(); got != "..." {
		t.Errorf("erasing stroke left %q", got)
	}
	if s.History().Len() != 2 {
		t.Errorf("history length = %d, want 2", s.History().Len())
	}
}

func TestSessionOperationMidStrokeFlushesStroke(t *testing.T) {
	s := newTestSession(t, 3, 3)
	s.BeginStroke(0, 0)
	s.Invert()
	if s.Stroking() {
		t.Error("stroke still open after invert")
	}
	if s.History().Len() != 3 {
		t.Fatalf("history length = %d, want 3 (stroke + invert)", s.History().Len())
	}
	s.Undo()
	if s.Grid().String() != "#..\n...\n..." {
		t.Errorf("undo of invert gave\n%s", s.Grid())
	}
}

func TestSessionPresentationState(t *testing.T) {
	s := newTestSession(t, 2, 2)
	historyLen := s.History().Len()

	s.SetCellSize(100)
	if s.CellSize() != MaxCellSize {
		t.Errorf("SetCellSize(100) = %d, want %d", s.CellSize(), MaxCellSize)
	}
	s.SetCellSize(1)
	if s.CellSize() != MinCellSize {
		t.Errorf("SetCellSize(1) = %d, want %d", s.CellSize(), MinCellSize)
	}
	s.ZoomIn()
	s.ZoomIn()
	if s.CellSize() != MinCellSize+2*CellSizeStep {
		t.Errorf("after two zoom-ins cell size = %d", s.CellSize())
	}
	s.ZoomOut()
	s.ZoomOut()
	s.ZoomOut()
	if s.CellSize() != MinCellSize {
		t.Errorf("zoom out went below the minimum: %d", s.CellSize())
	}

	s.SetTool(ToolFill)
	s.ToggleGridlines()
	if s.Tool() != ToolFill || s.Gridlines() {
		t.Error("presentation setters did not apply")
	}
	if s.History().Len() != historyLen {
		t.Error("presentation changes were recorded in history")
	}
}

func TestSessionLoadLocatorAdoptsDimensions(t *testing.T) {
	src := mustGrid(t,
		"#...#",
		".#.#.",
		"..#..",
	)
	s := newTestSession(t, 8, 8)
	if err := s.LoadLocator("https://example.com/?" + LocatorFor(src).Encode()); err != nil {
		t.Fatal(err)
	}
	if !s.Grid().Equal(src) {
		t.Errorf("loaded\n%s\nwant\n%s", s.Grid(), src)
	}
	if s.Locator() != LocatorFor(src) {
		t.Error("session locator does not match the loaded one")
	}

	s.Undo()
	if s.Cols() != 8 || s.Rows() != 8 {
		t.Errorf("undo did not restore 8x8, got %dx%d", s.Cols(), s.Rows())
	}
}

func TestSessionLoadLocatorKeepsSizeWithoutDimensions(t *testing.T) {
	s := newTestSession(t, 2, 2)
	if err := s.LoadLocator("?data=8A%3D%3D"); err != nil {
		t.Fatal(err)
	}
	if s.Cols() != 2 || s.Rows() != 2 || s.Grid().Count() != 4 {
		t.Errorf("got %dx%d\n%s", s.Cols(), s.Rows(), s.Grid())
	}
}

func TestSessionExportRoundTrip(t *testing.T) {
	s := newTestSession(t, 7, 3)
	s.BeginStroke(3, 1)
	s.EndStroke()
	code := s.Export()

	other := newTestSession(t, 7, 3)
	if err := other.LoadEncoded(code); err != nil {
		t.Fatal(err)
	}
	if !other.Grid().Equal(s.Grid()) {
		t.Error("exported code did not load back to the same grid")
	}
}

func TestSessionLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := newTestSession(t, 2, 2, WithLogger(logger))

	s.Invert()
	_ = s.Resize(0, 0)

	out := buf.String()
	if !strings.Contains(out, "op=invert") {
		t.Errorf("missing commit log in %q", out)
	}
	if !strings.Contains(out, "resize rejected") {
		t.Errorf("missing failure log in %q", out)
	}
}
