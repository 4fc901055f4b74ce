package editor

import (
	"image/color"

	"github.com/PixPMusic/gopher-chroma/internal/layout"
	"github.com/PixPMusic/gopher-chroma/internal/matrix"
)

// Key is a registered key button. Its displayed colour follows the model;
// OnChange lets a renderer repaint when it does.
type Key struct {
	node    layout.Node
	color   color.RGBA
	painted bool

	// OnChange is called after the key's displayed colour changes
	OnChange func(k *Key)
}

func newKey(node layout.Node) *Key {
	return &Key{node: node}
}

func (k *Key) Label() string {
	return k.node.Label
}

// Size returns the requested width and height; 0 leaves it to the renderer
func (k *Key) Size() (width, height int) {
	return k.node.Width, k.node.Height
}

// Position returns the matrix cell the key is tagged with
func (k *Key) Position() (matrix.Position, bool) {
	if k.node.Pos == nil {
		return matrix.Position{}, false
	}
	return *k.node.Pos, true
}

func (k *Key) Disabled() bool {
	return k.node.Disabled
}

// Color returns the painted colour, or false when the key shows its default look
func (k *Key) Color() (color.RGBA, bool) {
	return k.color, k.painted
}

func (k *Key) setColor(c color.RGBA) {
	k.color = c
	k.painted = true
	k.changed()
}

func (k *Key) reset() {
	k.color = color.RGBA{}
	k.painted = false
	k.changed()
}

func (k *Key) changed() {
	if k.OnChange != nil {
		k.OnChange(k)
	}
}
