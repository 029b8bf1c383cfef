package main

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Locator is the shareable form of a drawing: the encoded bitmap plus the
// dimensions needed to decode it.
type Locator struct {
	Data string
	Cols int
	Rows int
}

func LocatorFor(g *Grid) Locator {
	return Locator{Data: Encode(g), Cols: g.cols, Rows: g.rows}
}

// Encode returns the query string form, e.g. "data=AA%3D%3D&h=2&w=2".
func (l Locator) Encode() string {
	v := url.Values{}
	v.Set("data", l.Data)
	v.Set("w", strconv.Itoa(l.Cols))
	v.Set("h", strconv.Itoa(l.Rows))
	return v.Encode()
}

// ShareLink joins the query onto base. An empty base yields "?query".
func (l Locator) ShareLink(base string) string {
	base = strings.TrimRight(base, "?&")
	if strings.Contains(base, "?") {
		return base + "&" + l.Encode()
	}
	return base + "?" + l.Encode()
}

// Grid decodes the locator's data against its dimensions.
func (l Locator) Grid() (*Grid, error) {
	return Decode(l.Data, l.Cols, l.Rows)
}

// ParseLocator accepts a bare query string, one with a leading '?', or a
// full URL. Missing w/h are left zero so the caller can keep its own size.
func ParseLocator(raw string) (Locator, error) {
	raw = strings.TrimSpace(raw)
	query := raw
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
	}
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return Locator{}, fmt.Errorf("%w: locator query: %v", ErrInvalidEncoding, err)
	}

	var loc Locator
	// A '+' left unescaped in a pasted link arrives here as a space.
	loc.Data = strings.ReplaceAll(values.Get("data"), " ", "+")
	if loc.Cols, err = parseDimension(values, "w"); err != nil {
		return Locator{}, err
	}
	if loc.Rows, err = parseDimension(values, "h"); err != nil {
		return Locator{}, err
	}
	return loc, nil
}

func parseDimension(values url.Values, key string) (int, error) {
	if !values.Has(key) {
		return 0, nil
	}
	s := values.Get(key)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < MinGridSize || n > MaxGridSize {
		return 0, fmt.Errorf("%w: %s=%q, must be between %d and %d",
			ErrInvalidDimension, key, s, MinGridSize, MaxGridSize)
	}
	return n, nil
}

// looksLikeLocator reports whether pasted text is a share link rather than
// a bare code.
func looksLikeLocator(text string) bool {
	return strings.Contains(text, "data=") || (strings.Contains(text, "w=") && strings.Contains(text, "h="))
}
