package main

import (
	"errors"
	"math/rand"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want string
	}{
		{"2x2 empty", []string{"..", ".."}, "AA=="},
		{"first bit is MSB", []string{"#.", ".."}, "gA=="},
		{"padding after last cell", []string{"##", "##"}, "8A=="},
		{"full byte", []string{"####", "####"}, "/w=="},
		{"two bytes", []string{"#........"}, "gAA="},
		{"row major", []string{"...", "..#", "..."}, "BAA="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(mustGrid(t, tt.rows...)); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeAllZero(t *testing.T) {
	g, err := Decode("AA==", 2, 2)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if g.Cols() != 2 || g.Rows() != 2 || g.Count() != 0 {
		t.Errorf("Decode(AA==) = %dx%d with %d on cells, want empty 2x2", g.Cols(), g.Rows(), g.Count())
	}
}

func TestDecodeShortInputLeavesCellsOff(t *testing.T) {
	// One byte of ones, grid needs 16 bits.
	g, err := Decode("/w==", 4, 4)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got, want := g.String(), "####\n####\n....\n...."; got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestDecodeIgnoresSurplusBits(t *testing.T) {
	g, err := Decode("//8=", 3, 1)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if g.String() != "###" {
		t.Errorf("got %s, want ###", g)
	}
}

func TestDecodeEmptyText(t *testing.T) {
	g, err := Decode("", 3, 3)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if g.Count() != 0 {
		t.Errorf("empty text produced %d on cells", g.Count())
	}
}

func TestDecodeAcceptsMissingPaddingAndWhitespace(t *testing.T) {
	for _, text := range []string{"gA", "  gA==\n", "gA==\r\n"} {
		g, err := Decode(text, 2, 2)
		if err != nil {
			t.Fatalf("Decode(%q): %v", text, err)
		}
		if g.String() != "#.\n.." {
			t.Errorf("Decode(%q) =\n%s", text, g)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cols, rows int
		want       error
	}{
		{"bad character", "A*==", 2, 2, ErrInvalidEncoding},
		{"bad padding", "A===", 2, 2, ErrInvalidEncoding},
		{"lone char", "A", 2, 2, ErrInvalidEncoding},
		{"url alphabet", "-_8=", 2, 2, ErrInvalidEncoding},
		{"zero width", "AA==", 0, 2, ErrInvalidDimension},
		{"too tall", "AA==", 2, 257, ErrInvalidDimension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.text, tt.cols, tt.rows)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode(%q, %d, %d) error = %v, want %v", tt.text, tt.cols, tt.rows, err, tt.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		g := randomGrid(t, rng, 1+rng.Intn(40), 1+rng.Intn(40))
		back, err := Decode(Encode(g), g.Cols(), g.Rows())
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !back.Equal(g) {
			t.Fatalf("round trip of %dx%d changed the grid", g.Cols(), g.Rows())
		}
	}

	big := randomGrid(t, rng, MaxGridSize, MaxGridSize)
	back, err := Decode(Encode(big), MaxGridSize, MaxGridSize)
	if err != nil || !back.Equal(big) {
		t.Fatalf("round trip of the largest grid failed: %v", err)
	}
}
