package editor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/PixPMusic/gopher-chroma/internal/device"
	"github.com/PixPMusic/gopher-chroma/internal/matrix"
	"github.com/PixPMusic/gopher-chroma/internal/scheme"
)

// ============ Scheme Load ============

// LoadScheme reads the scheme file and applies the entry saved for this
// device to the model, the keys and the device. It reports false without an
// error when the file has no entry for the device.
func (e *Editor) LoadScheme() (bool, error) {
	doc, err := scheme.Load(e.cfg.SchemePath)
	if err != nil {
		return false, err
	}
	e.scheme = doc

	entry, ok := doc.Device(e.name)
	if !ok {
		e.log.Debug("No saved scheme for device", zap.String("path", e.cfg.SchemePath))
		return false, nil
	}

	if err := e.applyEntry(entry); err != nil {
		return false, err
	}
	e.log.Info("Applied saved scheme", zap.String("path", e.cfg.SchemePath))

	return true, e.pushAll()
}

// applyEntry copies a saved matrix into the model. Cells beyond the current
// dimensions are ignored and empty cells stay black.
func (e *Editor) applyEntry(entry scheme.Entry) error {
	grid := matrix.NewGrid(e.dims)
	for r, row := range entry.Matrix {
		for c, hex := range row {
			pos := matrix.Position{Row: r, Col: c}
			if hex == "" || !e.dims.Contains(pos) {
				continue
			}
			col, err := matrix.ParseHex(hex)
			if err != nil {
				return fmt.Errorf("%w: %s: cell %s: %v", scheme.ErrMalformed, e.name, pos, err)
			}
			_ = grid.Set(pos, col)
		}
	}

	e.grid = grid
	for _, k := range e.keys {
		pos, ok := k.Position()
		if !ok || !e.dims.Contains(pos) {
			continue
		}
		col, _ := grid.At(pos)
		if col == matrix.Black {
			k.reset()
		} else {
			k.setColor(col)
		}
	}
	return nil
}

// ============ Scheme Export ============

// ExportScheme writes the model under the device's name into the scheme file
// and returns the path written. Only keyboards are exported; for anything
// else it returns "" and touches no file.
func (e *Editor) ExportScheme() (string, error) {
	if e.deviceType != device.TypeKeyboard {
		e.log.Debug("Skipping export for non-keyboard device")
		return "", nil
	}

	dims, err := e.dev.MatrixDimensions()
	if err != nil {
		return "", fmt.Errorf("failed to read matrix dimensions: %w", err)
	}

	cells := make([][]string, dims.Rows)
	for r := range cells {
		cells[r] = make([]string, dims.Cols)
	}
	for _, k := range e.keys {
		pos, ok := k.Position()
		if !ok || !dims.Contains(pos) {
			continue
		}
		col, err := e.grid.At(pos)
		if err != nil {
			continue
		}
		cells[pos.Row][pos.Col] = matrix.FormatHex(col)
	}

	doc := e.scheme
	if doc == nil {
		doc, err = scheme.Load(e.cfg.SchemePath)
		switch {
		case errors.Is(err, scheme.ErrNotFound):
			doc, err = scheme.New(), nil
		case errors.Is(err, scheme.ErrMalformed):
			e.log.Warn("Replacing unreadable scheme file", zap.Error(err))
			doc, err = scheme.New(), nil
		}
		if err != nil {
			return "", err
		}
		e.scheme = doc
	}
	doc.SetDevice(e.name, scheme.Entry{Type: e.deviceType, Matrix: cells})

	if err := scheme.Save(e.cfg.SchemePath, doc); err != nil {
		return "", fmt.Errorf("failed to save scheme: %w", err)
	}
	e.log.Info("Exported scheme", zap.String("path", e.cfg.SchemePath))

	e.notify.Notify("Colormap exported!", fmt.Sprintf(
		"Your colormap has been written to %s\n\nPlease copy and rename this file if you do not want it to be overwritten!",
		e.cfg.SchemePath))

	return e.cfg.SchemePath, nil
}
