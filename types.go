package main

type point struct {
	X, Y int
}

type model struct {
	width          int
	height         int
	cursorX        int
	cursorY        int
	panX           int
	panY           int
	session        *Session
	mode           Mode
	help           bool
	helpScroll     int
	input          string
	fileOp         FileOperation
	confirmAction  ConfirmAction
	pendingFile    string
	errorMessage   string
	successMessage string
	config         *Config
	quitting       bool
}
