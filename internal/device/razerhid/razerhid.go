// Package razerhid drives Razer devices directly over USB HID feature reports,
// for systems without the OpenRazer daemon.
package razerhid

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/dizzyd/hid"
	"github.com/pkg/errors"

	"github.com/PixPMusic/gopher-chroma/internal/device"
	"github.com/PixPMusic/gopher-chroma/internal/logging"
	"github.com/PixPMusic/gopher-chroma/internal/matrix"
)

// VendorRazer is Razer's USB vendor ID
const VendorRazer = 0x1532

var ErrNoDevices = errors.New("no matching HID device found")

// Model describes a configured device; HID does not report these properties
type Model struct {
	ID        string
	Name      string
	ProductID uint16
	Type      string
	Layout    string
	Dims      matrix.Dimensions
	Extended  bool // Uses the extended matrix command class
}

type featureWriter interface {
	WriteFeature(data []byte) error
}

// Device writes frames to one HID device
type Device struct {
	model Model
	open  func(productID uint16) (featureWriter, error)

	mu  sync.Mutex
	dev featureWriter
}

// NewDevice creates a device; the HID handle is opened on first write
func NewDevice(model Model) *Device {
	return &Device{model: model, open: openHID}
}

func openHID(productID uint16) (featureWriter, error) {
	for _, info := range hid.Enumerate(VendorRazer, productID) {
		dev, err := info.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open device %d-%d", info.VendorID, info.ProductID)
		}
		return dev, nil
	}
	return nil, ErrNoDevices
}

func (d *Device) MatrixDimensions() (matrix.Dimensions, error) {
	return d.model.Dims, nil
}

func (d *Device) DeviceType() (string, error) {
	return d.model.Type, nil
}

func (d *Device) KeyboardLayout() (string, error) {
	if d.model.Layout == "" {
		return device.LayoutUnknown, nil
	}
	return d.model.Layout, nil
}

func (d *Device) Name() (string, error) {
	return d.model.Name, nil
}

func (d *Device) write(r *report) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dev == nil {
		dev, err := d.open(d.model.ProductID)
		if err != nil {
			return err
		}
		d.dev = dev
	}
	// Report ID 0 precedes the payload
	buf := append([]byte{0x00}, r.bytes()...)
	logging.LogRawBytes("HID feature report", buf)
	return errors.WithStack(d.dev.WriteFeature(buf))
}

func (d *Device) SetKeyRow(row, colStart, colEnd int, colors []color.RGBA) error {
	count := colEnd - colStart + 1
	if count <= 0 || len(colors) < count {
		return errors.New(fmt.Sprintf("%d colours for columns %d..%d", len(colors), colStart, colEnd))
	}
	if count > maxRowColumns(d.model.Extended) {
		return errors.New(fmt.Sprintf("row of %d columns does not fit in one report", count))
	}
	rgb := make([]byte, 0, count*3)
	for _, c := range colors[:count] {
		rgb = append(rgb, c.R, c.G, c.B)
	}
	return errors.Wrapf(d.write(setRowReport(d.model.Extended, row, colStart, colEnd, rgb)), "set row %d", row)
}

func (d *Device) SetCustom() error {
	return errors.Wrap(d.write(customEffectReport(d.model.Extended)), "set custom effect")
}

// Backend offers the configured models that are currently plugged in
type Backend struct {
	models    []Model
	devices   map[string]*Device
	enumerate func(vendorID, productID uint16) bool
}

// NewBackend creates a backend over models
func NewBackend(models []Model) *Backend {
	b := &Backend{models: models, devices: make(map[string]*Device)}
	for _, m := range models {
		b.devices[m.ID] = NewDevice(m)
	}
	b.enumerate = func(vendorID, productID uint16) bool {
		return len(hid.Enumerate(vendorID, productID)) > 0
	}
	return b
}

func (b *Backend) Name() string {
	return "hid"
}

func (b *Backend) Devices() ([]device.Info, error) {
	var infos []device.Info
	for _, m := range b.models {
		if !b.enumerate(VendorRazer, m.ProductID) {
			continue
		}
		info, err := device.Describe(m.ID, b.Name(), b.devices[m.ID])
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (b *Backend) Close() error {
	for _, d := range b.devices {
		d.mu.Lock()
		switch c := d.dev.(type) {
		case interface{ Close() error }:
			_ = c.Close()
		case interface{ Close() }:
			c.Close()
		}
		d.dev = nil
		d.mu.Unlock()
	}
	return nil
}
