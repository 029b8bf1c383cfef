package main

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Encode packs the grid row-major, most significant bit first, pads the last
// byte with zero bits and returns standard padded base64.
func Encode(g *Grid) string {
	packed := make([]byte, (len(g.cells)+7)/8)
	for i, on := range g.cells {
		if on {
			packed[i/8] |= 1 << (7 - uint(i%8))
		}
	}
	return base64.StdEncoding.EncodeToString(packed)
}

// Decode unpacks text produced by Encode into a cols x rows grid. Missing
// trailing bits leave cells off and surplus bits are ignored.
func Decode(text string, cols, rows int) (*Grid, error) {
	g, err := NewGrid(cols, rows)
	if err != nil {
		return nil, err
	}

	packed, err := decodeBase64(text)
	if err != nil {
		return nil, err
	}

	n := min(len(g.cells), len(packed)*8)
	for i := 0; i < n; i++ {
		g.cells[i] = packed[i/8]&(1<<(7-uint(i%8))) != 0
	}
	return g, nil
}

func decodeBase64(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	packed, err := base64.StdEncoding.DecodeString(text)
	if err == nil {
		return packed, nil
	}
	if !strings.HasSuffix(text, "=") {
		if raw, rawErr := base64.RawStdEncoding.DecodeString(text); rawErr == nil {
			return raw, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
}
