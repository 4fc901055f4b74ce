package layout

import (
	"strconv"

	"github.com/PixPMusic/gopher-chroma/internal/matrix"
)

// Keyboard key geometry, in device-independent pixels
const (
	DefaultKeyWidth = 60
	KeyHeight       = 63
	SpacerWidth     = 66
	SpacerHeight    = 69
)

// NodeKind tells a renderer what to draw for a node
type NodeKind int

const (
	NodeButton NodeKind = iota
	NodeSpacer
)

// Node is a key button or a fixed-size gap.
// Width and Height of 0 leave the size to the renderer.
type Node struct {
	Kind     NodeKind
	Label    string
	Width    int
	Height   int
	Pos      *matrix.Position
	Disabled bool
}

// Tree is a layout of rows of nodes, top to bottom
type Tree struct {
	Rows [][]Node
}

// Buttons returns every button node in row order
func (t Tree) Buttons() []Node {
	var out []Node
	for _, row := range t.Rows {
		for _, n := range row {
			if n.Kind == NodeButton {
				out = append(out, n)
			}
		}
	}
	return out
}

func position(row, col int) *matrix.Position {
	return &matrix.Position{Row: row, Col: col}
}

// Keyboard builds the tree for resolved keyboard rows
func Keyboard(rows Locale) Tree {
	tree := Tree{Rows: make([][]Node, 0, len(rows))}
	for _, row := range rows {
		nodes := make([]Node, 0, len(row))
		for _, key := range row {
			if key.Label == nil {
				// Keeps the following keys aligned with the rows above
				nodes = append(nodes, Node{Kind: NodeSpacer, Width: SpacerWidth, Height: SpacerHeight})
				continue
			}
			width := key.Width
			if width <= 0 {
				width = DefaultKeyWidth
			}
			n := Node{
				Kind:     NodeButton,
				Label:    *key.Label,
				Width:    width,
				Height:   KeyHeight,
				Disabled: key.Disabled,
			}
			if key.Matrix != nil {
				n.Pos = position(key.Matrix.Row, key.Matrix.Col)
			}
			nodes = append(nodes, n)
		}
		tree.Rows = append(tree.Rows, nodes)
	}
	return tree
}

// Mousemat builds a single strip with one button per column
func Mousemat(dims matrix.Dimensions) Tree {
	row := make([]Node, 0, dims.Cols)
	for col := 0; col < dims.Cols; col++ {
		row = append(row, Node{Kind: NodeButton, Label: strconv.Itoa(col), Pos: position(0, col)})
	}
	return Tree{Rows: [][]Node{row}}
}

// Discovery builds a button for every cell labelled "row_col", for probing
// the matrix of unknown hardware
func Discovery(dims matrix.Dimensions) Tree {
	tree := Tree{Rows: make([][]Node, 0, dims.Rows)}
	for r := 0; r < dims.Rows; r++ {
		row := make([]Node, 0, dims.Cols)
		for c := 0; c < dims.Cols; c++ {
			pos := position(r, c)
			row = append(row, Node{Kind: NodeButton, Label: pos.String(), Pos: pos})
		}
		tree.Rows = append(tree.Rows, row)
	}
	return tree
}

// Mouse is not supported yet and builds an empty tree
func Mouse() Tree {
	return Tree{}
}
