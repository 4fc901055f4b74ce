package matrix

import (
	"fmt"
	"image/color"
)

// Black is the "off" colour of a key
var Black = color.RGBA{A: 255}

// Dimensions is the size of a device's addressable LED matrix
type Dimensions struct {
	Rows int
	Cols int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Rows, d.Cols)
}

// Contains reports whether pos addresses a cell inside the matrix
func (d Dimensions) Contains(pos Position) bool {
	return pos.Row >= 0 && pos.Row < d.Rows && pos.Col >= 0 && pos.Col < d.Cols
}

// Position addresses a single key/zone as (row, col)
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("%d_%d", p.Row, p.Col)
}

// Grid holds one colour per matrix cell, stored [row][col]
type Grid struct {
	dims  Dimensions
	cells [][]color.RGBA
}

// NewGrid allocates a grid with every cell set to Black
func NewGrid(dims Dimensions) *Grid {
	g := &Grid{dims: dims}
	g.cells = make([][]color.RGBA, dims.Rows)
	for r := range g.cells {
		g.cells[r] = make([]color.RGBA, dims.Cols)
	}
	g.Reset()
	return g
}

// Dimensions returns the grid size
func (g *Grid) Dimensions() Dimensions {
	return g.dims
}

// At returns the colour stored at pos
func (g *Grid) At(pos Position) (color.RGBA, error) {
	if !g.dims.Contains(pos) {
		return color.RGBA{}, fmt.Errorf("position %s outside %s matrix", pos, g.dims)
	}
	return g.cells[pos.Row][pos.Col], nil
}

// Set stores c at pos
func (g *Grid) Set(pos Position, c color.RGBA) error {
	if !g.dims.Contains(pos) {
		return fmt.Errorf("position %s outside %s matrix", pos, g.dims)
	}
	g.cells[pos.Row][pos.Col] = c
	return nil
}

// Row returns a copy of a full row, columns 0..cols-1
func (g *Grid) Row(row int) ([]color.RGBA, error) {
	if row < 0 || row >= g.dims.Rows {
		return nil, fmt.Errorf("row %d outside %s matrix", row, g.dims)
	}
	out := make([]color.RGBA, g.dims.Cols)
	copy(out, g.cells[row])
	return out, nil
}

// Reset turns every cell off
func (g *Grid) Reset() {
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c] = Black
		}
	}
}

// BlackRow returns a row of cols Black cells
func BlackRow(cols int) []color.RGBA {
	row := make([]color.RGBA, cols)
	for i := range row {
		row[i] = Black
	}
	return row
}
