// Package editor holds the state of a custom lighting editor: the colour
// model of a device's key matrix, the draw mode, the registered key buttons
// and the scheme persistence around them. It does not depend on a GUI
// toolkit; internal/window renders it.
package editor

import (
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/PixPMusic/gopher-chroma/internal/device"
	"github.com/PixPMusic/gopher-chroma/internal/layout"
	"github.com/PixPMusic/gopher-chroma/internal/matrix"
	"github.com/PixPMusic/gopher-chroma/internal/scheme"
)

// DrawMode is the tool applied by the next key click
type DrawMode int

const (
	DrawSet   DrawMode = iota // Paint the selected colour
	DrawClear                 // Turn the key off
)

func (m DrawMode) String() string {
	switch m {
	case DrawSet:
		return "set"
	case DrawClear:
		return "clear"
	default:
		return fmt.Sprintf("DrawMode(%d)", int(m))
	}
}

// DefaultColor is the selected colour of a new editor
var DefaultColor = color.RGBA{G: 255, A: 255}

// Config is provided by the host application
type Config struct {
	// ExportToJSON loads the saved scheme when a keyboard editor opens and
	// exports it again on Close
	ExportToJSON bool

	// SchemePath is the scheme file read and written by the editor
	SchemePath string

	// LayoutDirs are searched in order for keyboard layout assets
	LayoutDirs []string
}

// Notifier shows a modal message to the user
type Notifier interface {
	Notify(title, message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(title, message string)

func (f NotifierFunc) Notify(title, message string) {
	f(title, message)
}

// Editor is one open custom editor
type Editor struct {
	dev    device.Device
	cfg    Config
	notify Notifier
	log    *zap.Logger

	name       string
	deviceType string
	discovery  bool

	dims     matrix.Dimensions
	grid     *matrix.Grid
	selected color.RGBA
	mode     DrawMode

	tree   layout.Tree
	keys   []*Key
	scheme *scheme.Document
}

// New queries the device, builds the key layout for its type and brings the
// device to its initial state. With discovery set every matrix cell gets a
// button regardless of the device type.
//
// An error means the device cannot be edited; Notice turns it into the
// message to show.
func New(dev device.Device, discovery bool, cfg Config, notify Notifier, log *zap.Logger) (*Editor, error) {
	if notify == nil {
		notify = NotifierFunc(func(string, string) {})
	}
	if log == nil {
		log = zap.NewNop()
	}

	e := &Editor{
		dev:       dev,
		cfg:       cfg,
		notify:    notify,
		discovery: discovery,
		selected:  DefaultColor,
		mode:      DrawSet,
	}

	var err error
	if e.dims, err = dev.MatrixDimensions(); err != nil {
		return nil, fmt.Errorf("failed to read matrix dimensions: %w", err)
	}
	if e.name, err = dev.Name(); err != nil {
		return nil, fmt.Errorf("failed to read device name: %w", err)
	}
	if e.deviceType, err = dev.DeviceType(); err != nil {
		return nil, fmt.Errorf("failed to read device type: %w", err)
	}
	e.log = log.With(zap.String("device", e.name), zap.String("type", e.deviceType))
	e.log.Debug("Opening custom editor",
		zap.Stringer("dims", e.dims), zap.Bool("discovery", discovery))

	e.grid = matrix.NewGrid(e.dims)

	if e.tree, err = e.buildTree(); err != nil {
		return nil, err
	}
	e.registerKeys()

	applied := false
	if cfg.ExportToJSON && e.deviceType == device.TypeKeyboard {
		applied, err = e.LoadScheme()
		switch {
		case errors.Is(err, scheme.ErrNotFound), errors.Is(err, scheme.ErrMalformed):
			e.notify.Notify(Notice(err))
		case err != nil:
			e.log.Warn("Failed to apply saved scheme", zap.Error(err))
		}
	}
	if !applied {
		if err := e.ClearAll(); err != nil {
			e.log.Warn("Failed to clear device", zap.Error(err))
		}
	}

	return e, nil
}

func (e *Editor) buildTree() (layout.Tree, error) {
	if e.discovery {
		return layout.Discovery(e.dims), nil
	}

	switch e.deviceType {
	case device.TypeKeyboard:
		name, ok := layout.ForDimensions(e.dims)
		if !ok {
			return layout.Tree{}, e.unknownDimensions()
		}
		return e.buildKeyboard(name)
	case device.TypeMousemat:
		if e.dims != (matrix.Dimensions{Rows: 1, Cols: 15}) {
			return layout.Tree{}, e.unknownDimensions()
		}
		return layout.Mousemat(e.dims), nil
	default:
		return layout.Tree{}, fmt.Errorf("%w: device type: %s", ErrUnsupportedDevice, e.deviceType)
	}
}

func (e *Editor) unknownDimensions() error {
	return fmt.Errorf("%w: device name: %s - matrix dimens: %d %d",
		ErrUnknownDimensions, e.name, e.dims.Rows, e.dims.Cols)
}

func (e *Editor) buildKeyboard(assetName string) (layout.Tree, error) {
	desc, err := layout.NewLoader(e.log, e.cfg.LayoutDirs...).Load(assetName)
	if err != nil {
		return layout.Tree{}, err
	}

	reported, err := e.dev.KeyboardLayout()
	if err != nil {
		return layout.Tree{}, fmt.Errorf("failed to read keyboard layout: %w", err)
	}

	res, err := layout.ResolveLocale(desc, reported)
	if err != nil {
		return layout.Tree{}, err
	}
	if res.Notice != "" {
		e.notify.Notify("Unknown keyboard layout", res.Notice)
	}
	e.log.Debug("Using keyboard layout",
		zap.String("asset", assetName), zap.String("reported", reported), zap.String("locale", res.Name))

	return layout.Keyboard(res.Rows), nil
}

// registerKeys creates a Key for every button of the tree. Positions outside
// the matrix would address cells the device does not have, so those keys are
// disabled.
func (e *Editor) registerKeys() {
	for ri := range e.tree.Rows {
		for ni := range e.tree.Rows[ri] {
			node := &e.tree.Rows[ri][ni]
			if node.Kind != layout.NodeButton {
				continue
			}
			if node.Pos != nil && !e.dims.Contains(*node.Pos) {
				e.log.Warn("Key position outside matrix, disabling",
					zap.String("label", node.Label), zap.Stringer("pos", *node.Pos))
				node.Disabled = true
			}
			e.keys = append(e.keys, newKey(*node))
		}
	}
}

func (e *Editor) DeviceName() string {
	return e.name
}

func (e *Editor) DeviceType() string {
	return e.deviceType
}

func (e *Editor) Dimensions() matrix.Dimensions {
	return e.dims
}

// Tree returns the layout the keys were built from
func (e *Editor) Tree() layout.Tree {
	return e.tree
}

// Keys returns the registered keys in layout order
func (e *Editor) Keys() []*Key {
	return e.keys
}

// ColorAt returns the model colour of a cell
func (e *Editor) ColorAt(pos matrix.Position) (color.RGBA, error) {
	return e.grid.At(pos)
}

func (e *Editor) DrawMode() DrawMode {
	return e.mode
}

// SetDrawMode switches the tool used by Click
func (e *Editor) SetDrawMode(mode DrawMode) {
	e.mode = mode
}

func (e *Editor) SelectedColor() color.RGBA {
	return e.selected
}

// SelectColor sets the colour painted by the next Set click
func (e *Editor) SelectColor(c color.Color) {
	e.selected = matrix.ToRGBA(c)
}

// Click applies the draw mode to k and pushes its row to the device.
// Disabled keys and keys without a matrix position are ignored.
func (e *Editor) Click(k *Key) error {
	pos, ok := k.Position()
	if !ok || k.Disabled() {
		return nil
	}

	switch e.mode {
	case DrawSet:
		if err := e.grid.Set(pos, e.selected); err != nil {
			return err
		}
		k.setColor(e.selected)
	case DrawClear:
		if err := e.grid.Set(pos, matrix.Black); err != nil {
			return err
		}
		k.reset()
	default:
		e.log.Warn("Unhandled draw mode", zap.Stringer("mode", e.mode))
		return nil
	}

	return e.UpdateKeyRow(pos.Row)
}

// UpdateKeyRow sends the model's colours for row to the device and commits them
func (e *Editor) UpdateKeyRow(row int) error {
	colors, err := e.grid.Row(row)
	if err != nil {
		return err
	}
	if err := e.dev.SetKeyRow(row, 0, e.dims.Cols-1, colors); err != nil {
		return e.deviceFailed(&DeviceError{Op: "setKeyRow", Row: row, Err: err})
	}
	if err := e.dev.SetCustom(); err != nil {
		return e.deviceFailed(&DeviceError{Op: "setCustom", Row: -1, Err: err})
	}
	return nil
}

func (e *Editor) deviceFailed(err *DeviceError) error {
	e.log.Error("Device command failed", zap.Error(err))
	return err
}

// ClearAll turns every key off on the device, in the view and in the model.
// Every row is attempted; the first device error is returned.
func (e *Editor) ClearAll() error {
	var first error
	blank := matrix.BlackRow(e.dims.Cols)
	for row := 0; row < e.dims.Rows; row++ {
		if err := e.dev.SetKeyRow(row, 0, e.dims.Cols-1, blank); err != nil && first == nil {
			first = e.deviceFailed(&DeviceError{Op: "setKeyRow", Row: row, Err: err})
		}
	}
	if err := e.dev.SetCustom(); err != nil && first == nil {
		first = e.deviceFailed(&DeviceError{Op: "setCustom", Row: -1, Err: err})
	}

	for _, k := range e.keys {
		k.reset()
	}
	e.grid.Reset()

	return first
}

// pushAll sends every row of the model and commits once
func (e *Editor) pushAll() error {
	for row := 0; row < e.dims.Rows; row++ {
		colors, _ := e.grid.Row(row)
		if err := e.dev.SetKeyRow(row, 0, e.dims.Cols-1, colors); err != nil {
			return e.deviceFailed(&DeviceError{Op: "setKeyRow", Row: row, Err: err})
		}
	}
	if err := e.dev.SetCustom(); err != nil {
		return e.deviceFailed(&DeviceError{Op: "setCustom", Row: -1, Err: err})
	}
	return nil
}

// Close exports the scheme when the host enabled it. The editor must not be
// used afterwards.
func (e *Editor) Close() error {
	if !e.cfg.ExportToJSON {
		return nil
	}
	_, err := e.ExportScheme()
	return err
}
