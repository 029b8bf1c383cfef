package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeResizeInput
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSavePNG FileOperation = iota
	FileOpSaveText
)

type ConfirmAction int

const (
	ConfirmClear ConfirmAction = iota
	ConfirmQuit
	ConfirmOverwriteFile
)

// Tool selects what a press on the grid does.
type Tool int

const (
	ToolDraw Tool = iota
	ToolFill
)

func (t Tool) String() string {
	switch t {
	case ToolDraw:
		return "draw"
	case ToolFill:
		return "fill"
	default:
		return "unknown"
	}
}

// PaintMode is the value a draw stroke writes into the cells it crosses.
type PaintMode int

const (
	PaintOn PaintMode = iota
	PaintOff
)

func (p PaintMode) String() string {
	if p == PaintOff {
		return "erase"
	}
	return "paint"
}

func (p PaintMode) value() bool {
	return p == PaintOn
}

const (
	DefaultCols     = 32
	DefaultRows     = 32
	DefaultCellSize = 16
	MinCellSize     = 4
	MaxCellSize     = 64
	CellSizeStep    = 4
	MinGridSize     = 1
	MaxGridSize     = 256
	MaxHistory      = 50
)

// Terminal columns used to draw one grid cell.
const termCellWidth = 2
