package main

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimension = errors.New("invalid dimension")
	ErrOutOfBounds      = errors.New("out of bounds")
	ErrInvalidEncoding  = errors.New("invalid encoding")
)

func checkDimensions(cols, rows int) error {
	if cols < MinGridSize || cols > MaxGridSize || rows < MinGridSize || rows > MaxGridSize {
		return fmt.Errorf("%w: %dx%d, grid size must be between %d and %d",
			ErrInvalidDimension, cols, rows, MinGridSize, MaxGridSize)
	}
	return nil
}

func checkCellSize(size int) error {
	if size < MinCellSize || size > MaxCellSize {
		return fmt.Errorf("%w: cell size %d, must be between %d and %d",
			ErrInvalidDimension, size, MinCellSize, MaxCellSize)
	}
	return nil
}
