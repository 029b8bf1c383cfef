package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type cliOptions struct {
	cols     int
	rows     int
	cellSize int
	data     string
	link     string
	pngOut   string
	txtOut   string
	print    bool
	logFile  string
}

func main() {
	var opts cliOptions
	flag.IntVar(&opts.cols, "cols", 0, "grid width in cells (1-256)")
	flag.IntVar(&opts.rows, "rows", 0, "grid height in cells (1-256)")
	flag.IntVar(&opts.cellSize, "cell", 0, "PNG cell size in pixels (4-64)")
	flag.StringVar(&opts.data, "data", "", "encoded drawing to load")
	flag.StringVar(&opts.link, "url", "", "share link or query string (data, w, h) to load")
	flag.StringVar(&opts.pngOut, "png", "", "write the drawing as PNG to this file and exit")
	flag.StringVar(&opts.txtOut, "txt", "", "write the encoded drawing to this file and exit")
	flag.BoolVar(&opts.print, "print", false, "print the encoded drawing and share link, then exit")
	flag.StringVar(&opts.logFile, "log", "", "write debug log to this file")
	flag.Parse()

	if err := run(loadConfig(), opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "pixl:", err)
		os.Exit(1)
	}
}

func run(config *Config, opts cliOptions, stdout io.Writer) error {
	if opts.logFile != "" {
		config.LogFile = opts.logFile
		config.LogLevel = "debug"
	}
	logger, closer, err := openLogger(config.LogFile, config.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	headless := opts.pngOut != "" || opts.txtOut != "" || opts.print

	session, loadErr := newSessionFromOptions(config, opts, logger)
	if session == nil {
		return loadErr
	}
	if loadErr != nil && headless {
		return loadErr
	}

	if headless {
		return runHeadless(session, config, opts, stdout)
	}

	m := initialModel(session, config)
	if loadErr != nil {
		m.errorMessage = loadErr.Error()
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}

// newSessionFromOptions builds the starting session. A bad -data or -url
// still returns a usable empty session alongside the error.
func newSessionFromOptions(config *Config, opts cliOptions, logger *slog.Logger) (*Session, error) {
	cols, rows := config.Cols, config.Rows
	if opts.cols != 0 {
		cols = opts.cols
	}
	if opts.rows != 0 {
		rows = opts.rows
	}
	cellSize := config.CellSize
	if opts.cellSize != 0 {
		if err := checkCellSize(opts.cellSize); err != nil {
			return nil, err
		}
		cellSize = opts.cellSize
	}

	session, err := NewSession(cols, rows,
		WithCellSize(cellSize),
		WithGridlines(config.Gridlines),
		WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	if opts.link != "" {
		if err := session.LoadLocator(opts.link); err != nil {
			return session, fmt.Errorf("load link: %w", err)
		}
	}
	if opts.data != "" {
		if err := session.LoadEncoded(opts.data); err != nil {
			return session, fmt.Errorf("load data: %w", err)
		}
	}
	return session, nil
}

func runHeadless(session *Session, config *Config, opts cliOptions, stdout io.Writer) error {
	grid := session.Grid()
	if opts.pngOut != "" {
		if err := ExportPNG(opts.pngOut, grid, config.renderOptions(session.CellSize())); err != nil {
			return fmt.Errorf("export png: %w", err)
		}
	}
	if opts.txtOut != "" {
		if err := ExportText(opts.txtOut, grid); err != nil {
			return fmt.Errorf("export text: %w", err)
		}
	}
	if opts.print {
		loc := session.Locator()
		fmt.Fprintln(stdout, loc.Data)
		fmt.Fprintln(stdout, loc.ShareLink(config.ShareBase))
	}
	return nil
}

func initialModel(session *Session, config *Config) model {
	return model{
		session: session,
		mode:    ModeNormal,
		config:  config,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.help {
			m.handleHelpKey(msg.String())
			return m, nil
		}
		m.errorMessage = ""
		m.successMessage = ""

		switch m.mode {
		case ModeResizeInput:
			m.handleResizeInput(msg)
		case ModeFileInput:
			m.handleFileInput(msg)
		case ModeConfirm:
			m.handleConfirm(msg.String())
		default:
			m.handleNormalKey(msg.String())
		}
		if m.quitting {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.mode != ModeNormal || m.help {
		return
	}
	x, y, onGrid := m.cellAt(msg.X, msg.Y)

	// A left drag arrives as MouseLeft with a motion action; only the
	// press itself applies the tool.
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Type != tea.MouseLeft || !onGrid {
			return
		}
		m.cursorX, m.cursorY = x, y
		if err := m.session.Press(x, y); err != nil {
			m.errorMessage = err.Error()
		}
	case tea.MouseActionMotion:
		if m.session.Stroking() && onGrid {
			m.session.ContinueStroke(x, y)
			m.cursorX, m.cursorY = x, y
		}
	case tea.MouseActionRelease:
		m.session.EndStroke()
	}
}

func (m *model) handleNormalKey(key string) {
	switch key {
	case "ctrl+c", "q":
		m.session.EndStroke()
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
		} else {
			m.quitting = true
		}
	case "?":
		m.help = true
		m.helpScroll = 0
	case "h", "j", "k", "l", "H", "J", "K", "L":
		m.handleCursorMove(key, m.getMoveSpeed(key))
	case " ", "space", "enter":
		if err := m.session.Press(m.cursorX, m.cursorY); err != nil {
			m.errorMessage = err.Error()
		}
		m.session.EndStroke()
	case "v":
		if m.session.Stroking() {
			m.session.EndStroke()
		} else if err := m.session.BeginStroke(m.cursorX, m.cursorY); err != nil {
			m.errorMessage = err.Error()
		}
	case "esc":
		m.session.EndStroke()
	case "up":
		m.session.TranslateUp()
	case "down":
		m.session.TranslateDown()
	case "left":
		m.session.TranslateLeft()
	case "right":
		m.session.TranslateRight()
	case "r":
		m.session.Rotate90Clockwise()
		m.ensureCursorInBounds()
	case "i":
		m.session.Invert()
	case "c":
		if m.config.Confirmations {
			m.session.EndStroke()
			m.mode = ModeConfirm
			m.confirmAction = ConfirmClear
		} else {
			m.session.Clear()
		}
	case "u", "ctrl+z":
		if !m.session.Undo() {
			m.errorMessage = "Nothing to undo"
		}
		m.ensureCursorInBounds()
	case "U", "ctrl+y", "ctrl+shift+z":
		if !m.session.Redo() {
			m.errorMessage = "Nothing to redo"
		}
		m.ensureCursorInBounds()
	case "d":
		m.session.SetTool(ToolDraw)
	case "f":
		m.session.SetTool(ToolFill)
	case "x":
		if !m.session.TogglePaintMode() {
			m.errorMessage = "No open stroke (v starts one)"
		}
	case "g":
		m.session.ToggleGridlines()
	case "+", "=":
		m.session.ZoomIn()
		m.successMessage = fmt.Sprintf("Cell size %dpx", m.session.CellSize())
	case "-", "_":
		m.session.ZoomOut()
		m.successMessage = fmt.Sprintf("Cell size %dpx", m.session.CellSize())
	case "R":
		m.session.EndStroke()
		m.mode = ModeResizeInput
		m.input = fmt.Sprintf("%dx%d", m.session.Cols(), m.session.Rows())
	case "y":
		m.copyToClipboard(m.session.Export(), "Code copied to clipboard")
	case "Y":
		m.copyToClipboard(m.session.Locator().ShareLink(m.config.ShareBase), "Link copied to clipboard")
	case "p":
		m.pasteFromClipboard()
	case "s":
		m.startFileInput(FileOpSavePNG)
	case "S":
		m.startFileInput(FileOpSaveText)
	}
}

func (m *model) copyToClipboard(text, message string) {
	if err := clipboardWrite(text); err != nil {
		m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
		return
	}
	m.successMessage = message
}

// pasteFromClipboard loads either a share link or a bare code. A bare code
// is decoded against the current grid size.
func (m *model) pasteFromClipboard() {
	text, err := clipboardRead()
	if err != nil {
		m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
		return
	}
	text = cleanPastedText(text)
	if text == "" {
		m.errorMessage = "Clipboard is empty"
		return
	}

	if looksLikeLocator(text) {
		err = m.session.LoadLocator(text)
	} else {
		err = m.session.LoadEncoded(text)
	}
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.ensureCursorInBounds()
	m.successMessage = fmt.Sprintf("Loaded %dx%d drawing", m.session.Cols(), m.session.Rows())
}

func (m *model) startFileInput(op FileOperation) {
	m.session.EndStroke()
	m.mode = ModeFileInput
	m.fileOp = op
	grid := m.session.Grid()
	if op == FileOpSavePNG {
		m.input = defaultFileName(grid, "png")
	} else {
		m.input = defaultFileName(grid, "txt")
	}
}

// parseSize accepts "WxH" or a single number for a square grid.
func parseSize(text string) (int, int, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	parts := strings.SplitN(text, "x", 2)
	cols, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q is not WxH", ErrInvalidDimension, text)
	}
	rows := cols
	if len(parts) == 2 {
		if rows, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
			return 0, 0, fmt.Errorf("%w: %q is not WxH", ErrInvalidDimension, text)
		}
	}
	return cols, rows, nil
}

func (m *model) handleResizeInput(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.input = ""
	case "enter":
		cols, rows, err := parseSize(m.input)
		if err == nil {
			err = m.session.Resize(cols, rows)
		}
		if err != nil {
			m.errorMessage = err.Error()
			return
		}
		m.mode = ModeNormal
		m.input = ""
		m.ensureCursorInBounds()
		m.successMessage = fmt.Sprintf("Resized to %dx%d", cols, rows)
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				if (r >= '0' && r <= '9') || r == 'x' || r == 'X' {
					m.input += string(r)
				}
			}
		}
	}
}

func (m *model) handleFileInput(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.input = ""
	case "enter":
		name := strings.TrimSpace(m.input)
		if name == "" {
			m.errorMessage = "Filename required"
			return
		}
		path, err := m.config.GetSavePath(name)
		if err != nil {
			m.errorMessage = err.Error()
			return
		}
		if _, err := os.Stat(path); err == nil && m.config.Confirmations {
			m.pendingFile = path
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return
		}
		m.writeFile(path)
	case "backspace":
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.input += string(msg.Runes)
		}
	}
}

func (m *model) writeFile(path string) {
	grid := m.session.Grid()
	var err error
	if m.fileOp == FileOpSavePNG {
		err = ExportPNG(path, grid, m.config.renderOptions(m.session.CellSize()))
	} else {
		err = ExportText(path, grid)
	}
	if err != nil {
		m.mode = ModeFileInput
		m.errorMessage = err.Error()
		return
	}
	m.mode = ModeNormal
	m.input = ""
	m.pendingFile = ""
	m.successMessage = "Saved " + path
}

func (m *model) handleConfirm(key string) {
	switch key {
	case "y", "Y":
		switch m.confirmAction {
		case ConfirmClear:
			m.session.Clear()
			m.mode = ModeNormal
		case ConfirmQuit:
			m.quitting = true
		case ConfirmOverwriteFile:
			m.writeFile(m.pendingFile)
		}
	case "n", "N", "esc":
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
			m.pendingFile = ""
			return
		}
		m.mode = ModeNormal
	}
}

func (m *model) handleHelpKey(key string) {
	switch key {
	case "j", "down":
		maxScroll := max(len(helpLines)-max(m.height-1, 1), 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.help {
		return m.helpView()
	}

	renderWidth := max(m.width, termCellWidth)
	renderHeight := max(m.height-1, 1)
	canvas := renderCanvas(m.session, renderWidth, renderHeight, m.panX, m.panY, m.cursorX, m.cursorY, m.mode == ModeNormal)

	var result strings.Builder
	for _, line := range canvas {
		result.WriteString(line)
		result.WriteString("\n")
	}
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) statusLine() string {
	var status string
	switch m.mode {
	case ModeResizeInput:
		status = fmt.Sprintf("RESIZE | Size (WxH, %d-%d): %s█ | Enter=apply, Esc=cancel", MinGridSize, MaxGridSize, m.input)
	case ModeFileInput:
		op := "Export PNG"
		if m.fileOp == FileOpSaveText {
			op = "Export text"
		}
		status = fmt.Sprintf("FILE | %s filename: %s█ | Enter=confirm, Esc=cancel", op, m.input)
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmClear:
			message = "Clear the entire canvas? (y/n)"
		case ConfirmQuit:
			message = "Quit pixl? (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingFile)
		}
		status = "CONFIRM | " + message
	default:
		undo, redo := "-", "-"
		if m.session.CanUndo() {
			undo = "u"
		}
		if m.session.CanRedo() {
			redo = "U"
		}
		status = fmt.Sprintf("%dx%d | (%d,%d) | %dpx | undo:%s redo:%s",
			m.session.Cols(), m.session.Rows(), m.cursorX, m.cursorY, m.session.CellSize(), undo, redo)
		if m.errorMessage == "" && m.successMessage == "" {
			status += " | ? for help | q to quit"
		}
	}

	line := modeIndicator(m.session) + " " + statusStyle.Render(status)
	if m.errorMessage != "" {
		line += " " + errorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.successMessage != "" {
		line += " " + successStyle.Render(m.successMessage)
	}
	return line
}

var helpLines = []string{
	"pixl Help",
	"=========",
	"",
	"Cursor:",
	"-------",
	"  h/j/k/l          Move cursor",
	"  H/J/K/L          Move cursor 2x faster",
	"",
	"Drawing:",
	"--------",
	"  Space/Enter      Use the active tool on the cell under the cursor",
	"  v                Start/finish a keyboard stroke (cursor moves paint)",
	"  Mouse drag       Paint or erase, depending on the first cell pressed",
	"  d                Draw tool",
	"  f                Fill tool (flips the connected region)",
	"  x                Toggle paint/erase",
	"",
	"Transform:",
	"----------",
	"  ←/↑/→/↓          Shift the drawing one cell (wraps around)",
	"  r                Rotate 90° clockwise",
	"  i                Invert",
	"  c                Clear",
	"  R                Resize grid (WxH)",
	"",
	"History:",
	"--------",
	"  u/Ctrl+Z         Undo",
	"  U/Ctrl+Y         Redo",
	"",
	"Share & export:",
	"---------------",
	"  y                Copy code to clipboard",
	"  Y                Copy share link to clipboard",
	"  p                Paste a code or share link",
	"  s                Export PNG",
	"  S                Export code as text file",
	"  +/-              Change PNG cell size",
	"  g                Toggle gridlines",
	"",
	"General:",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)
	startLine := min(m.helpScroll, max(len(helpLines)-visibleHeight, 0))
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}
