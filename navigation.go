package main

// handleCursorMove moves the cursor and, while a keyboard stroke is open,
// paints the cell it lands on.
func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "H":
		m.cursorX -= speed
	case "l", "L":
		m.cursorX += speed
	case "k", "K":
		m.cursorY -= speed
	case "j", "J":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
	if m.session.Stroking() {
		m.session.ContinueStroke(m.cursorX, m.cursorY)
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J":
		return 2
	default:
		return 1
	}
}

// viewportSize is the number of grid cells that fit on screen, leaving
// room for the status line.
func (m *model) viewportSize() (int, int) {
	cols := m.width / termCellWidth
	rows := m.height - 1
	return max(cols, 1), max(rows, 1)
}

// ensureCursorInBounds keeps the cursor on the grid and scrolls the
// viewport so the cursor stays visible.
func (m *model) ensureCursorInBounds() {
	cols, rows := m.session.Cols(), m.session.Rows()
	m.cursorX = max(0, min(m.cursorX, cols-1))
	m.cursorY = max(0, min(m.cursorY, rows-1))

	viewCols, viewRows := m.viewportSize()
	if m.cursorX < m.panX {
		m.panX = m.cursorX
	}
	if m.cursorX >= m.panX+viewCols {
		m.panX = m.cursorX - viewCols + 1
	}
	if m.cursorY < m.panY {
		m.panY = m.cursorY
	}
	if m.cursorY >= m.panY+viewRows {
		m.panY = m.cursorY - viewRows + 1
	}
	m.panX = max(0, min(m.panX, cols-viewCols))
	m.panY = max(0, min(m.panY, rows-viewRows))
}

// cellAt maps a terminal position to grid coordinates. The bool is false
// when the position is not over the grid.
func (m *model) cellAt(screenX, screenY int) (int, int, bool) {
	viewCols, viewRows := m.viewportSize()
	if screenX < 0 || screenY < 0 || screenX/termCellWidth >= viewCols || screenY >= viewRows {
		return 0, 0, false
	}
	x := screenX/termCellWidth + m.panX
	y := screenY + m.panY
	if x >= m.session.Cols() || y >= m.session.Rows() {
		return 0, 0, false
	}
	return x, y, true
}
