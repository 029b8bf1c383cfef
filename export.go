package main

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	gridlineColor  = "#e0e0e0"
	captionHeight  = 20
	captionPadding = 4
)

// RenderOptions controls how a grid is rasterized.
type RenderOptions struct {
	CellSize  int
	Gridlines bool
	Caption   bool
}

func defaultFileName(g *Grid, ext string) string {
	return fmt.Sprintf("drawing_%dx%d.%s", g.cols, g.rows, ext)
}

// RenderImage draws every on cell as a black CellSize square on white,
// optionally with 1px gridlines and a caption band holding the dimensions.
func RenderImage(g *Grid, opts RenderOptions) (image.Image, error) {
	if err := checkCellSize(opts.CellSize); err != nil {
		return nil, err
	}

	// One pixel per cell, then scale up so every cell is a crisp square.
	bitmap := image.NewGray(image.Rect(0, 0, g.cols, g.rows))
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			if g.at(x, y) {
				bitmap.SetGray(x, y, color.Gray{Y: 0})
			} else {
				bitmap.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	imageWidth := g.cols * opts.CellSize
	gridHeight := g.rows * opts.CellSize
	imageHeight := gridHeight
	if opts.Caption {
		imageHeight += captionHeight
	}

	canvas := image.NewRGBA(image.Rect(0, 0, imageWidth, imageHeight))
	xdraw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, xdraw.Src)
	xdraw.NearestNeighbor.Scale(canvas, image.Rect(0, 0, imageWidth, gridHeight), bitmap, bitmap.Bounds(), xdraw.Src, nil)

	if !opts.Gridlines && !opts.Caption {
		return canvas, nil
	}

	dc := gg.NewContextForRGBA(canvas)

	if opts.Gridlines {
		drawGridlines(dc, g.cols, g.rows, opts.CellSize)
	}

	if opts.Caption {
		if err := drawCaption(dc, g, gridHeight, imageWidth); err != nil {
			return nil, err
		}
	}

	return dc.Image(), nil
}

// drawGridlines fills 1px bands at every cell boundary. The closing line on
// the right and bottom edges is pulled inside the image.
func drawGridlines(dc *gg.Context, cols, rows, cellSize int) {
	width := float64(cols * cellSize)
	height := float64(rows * cellSize)

	dc.SetHexColor(gridlineColor)
	for i := 0; i <= cols; i++ {
		x := min(i*cellSize, cols*cellSize-1)
		dc.DrawRectangle(float64(x), 0, 1, height)
	}
	for i := 0; i <= rows; i++ {
		y := min(i*cellSize, rows*cellSize-1)
		dc.DrawRectangle(0, float64(y), width, 1)
	}
	dc.Fill()
}

func drawCaption(dc *gg.Context, g *Grid, top, width int) error {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	label := fmt.Sprintf("%dx%d", g.cols, g.rows)
	dc.DrawStringAnchored(label, float64(captionPadding), float64(top)+captionHeight/2, 0, 0.5)
	return nil
}

// WritePNG encodes the rendered grid as PNG.
func WritePNG(w io.Writer, g *Grid, opts RenderOptions) error {
	img, err := RenderImage(g, opts)
	if err != nil {
		return err
	}
	return gg.NewContextForImage(img).EncodePNG(w)
}

func ExportPNG(filename string, g *Grid, opts RenderOptions) error {
	img, err := RenderImage(g, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(filename, img)
}

// ExportText writes the encoded drawing so it can be loaded again with the
// same dimensions.
func ExportText(filename string, g *Grid) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, Encode(g)); err != nil {
		return err
	}
	return file.Close()
}
