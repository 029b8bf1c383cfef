package main

import (
	"html"
	"os/exec"
	"runtime"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/microcosm-cc/bluemonday"
)

// Swappable in tests, where no system clipboard is available.
var (
	clipboardRead  = readClipboardText
	clipboardWrite = clipboard.WriteAll
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func isHTML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<") &&
		(strings.Contains(text, "<html") || strings.Contains(text, "<body") ||
			strings.Contains(text, "<div") || strings.Contains(text, "<span"))
}

var htmlText = bluemonday.StrictPolicy()

// extractTextFromHTML drops every tag and decodes the entities browsers
// put around copied links.
func extractTextFromHTML(markup string) string {
	return html.UnescapeString(htmlText.Sanitize(markup))
}

// cleanPastedText reduces clipboard content to a single code or link:
// markup is dropped along with all whitespace and control characters,
// which never occur in base64 or in a query string.
func cleanPastedText(text string) string {
	if isHTML(text) {
		text = extractTextFromHTML(text)
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}
