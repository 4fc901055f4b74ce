package window

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/PixPMusic/gopher-chroma/internal/editor"
)

// Size of buttons whose layout leaves it to the renderer
const defaultKeySize = 48

// ============ TAPPABLE RECTANGLE WIDGET ============

type tappableRect struct {
	widget.BaseWidget
	rect  *canvas.Rectangle
	onTap func()
}

func newTappableRect(rect *canvas.Rectangle, onTap func()) *tappableRect {
	t := &tappableRect{rect: rect, onTap: onTap}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tappableRect) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.rect)
}

func (t *tappableRect) Tapped(_ *fyne.PointEvent) {
	if t.onTap != nil {
		t.onTap()
	}
}

func (t *tappableRect) TappedSecondary(_ *fyne.PointEvent) {}

// ============ KEY BUTTON WIDGET ============

// keyButton renders one editor key: a rounded rectangle filled with the
// key's colour and its label on top
type keyButton struct {
	widget.BaseWidget
	key   *editor.Key
	rect  *canvas.Rectangle
	text  *canvas.Text
	onTap func(k *editor.Key)
}

func newKeyButton(k *editor.Key, onTap func(k *editor.Key)) *keyButton {
	w, h := k.Size()
	if w <= 0 {
		w = defaultKeySize
	}
	if h <= 0 {
		h = defaultKeySize
	}

	b := &keyButton{key: k, onTap: onTap}
	b.rect = canvas.NewRectangle(color.Transparent)
	b.rect.SetMinSize(fyne.NewSize(float32(w), float32(h)))
	b.rect.CornerRadius = 4
	b.text = canvas.NewText(k.Label(), theme.Color(theme.ColorNameForeground))
	b.text.TextSize = theme.CaptionTextSize()
	b.text.Alignment = fyne.TextAlignCenter

	b.ExtendBaseWidget(b)
	b.paint()
	k.OnChange = func(*editor.Key) { b.repaint() }
	return b
}

func (b *keyButton) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(b.rect, container.NewCenter(b.text)))
}

func (b *keyButton) Tapped(_ *fyne.PointEvent) {
	if b.key.Disabled() || b.onTap == nil {
		return
	}
	b.onTap(b.key)
}

func (b *keyButton) TappedSecondary(_ *fyne.PointEvent) {}

// fill returns the rectangle colour for the key's current state
func (b *keyButton) fill() color.Color {
	if b.key.Disabled() {
		return theme.Color(theme.ColorNameDisabledButton)
	}
	if c, painted := b.key.Color(); painted {
		return c
	}
	return theme.Color(theme.ColorNameButton)
}

func (b *keyButton) paint() {
	fill := b.fill()
	b.rect.FillColor = fill
	b.text.Color = labelColor(fill, b.key.Disabled())
}

func (b *keyButton) repaint() {
	b.paint()
	b.rect.Refresh()
	b.text.Refresh()
}

// labelColor keeps labels readable on light and dark key colours
func labelColor(bg color.Color, disabled bool) color.Color {
	if disabled {
		return theme.Color(theme.ColorNameDisabled)
	}
	r, g, b, _ := bg.RGBA()
	// Rec. 601 luma on 16-bit channels
	if (299*r+587*g+114*b)/1000 > 0x8000 {
		return color.Black
	}
	return color.White
}

// spacer keeps the following keys of a row aligned
func spacer(width, height int) fyne.CanvasObject {
	rect := canvas.NewRectangle(color.Transparent)
	rect.SetMinSize(fyne.NewSize(float32(width), float32(height)))
	return rect
}
