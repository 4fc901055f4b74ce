package device

import (
	"image/color"

	"github.com/PixPMusic/gopher-chroma/internal/matrix"
)

// Device types reported by lighting devices
const (
	TypeKeyboard  = "keyboard"
	TypeMousemat  = "mousemat"
	TypeMouse     = "mouse"
	TypeLaunchpad = "launchpad"
)

// LayoutUnknown is reported when the driver does not know the keyboard's locale
const LayoutUnknown = "unknown"

// Device is a lighting-capable device with an addressable key matrix
type Device interface {
	// MatrixDimensions returns the size of the LED matrix
	MatrixDimensions() (matrix.Dimensions, error)

	// DeviceType returns the driver's device class, e.g. "keyboard"
	DeviceType() (string, error)

	// KeyboardLayout returns the keyboard locale, e.g. "en_US", or LayoutUnknown
	KeyboardLayout() (string, error)

	// Name returns the device's display name
	Name() (string, error)

	// SetKeyRow writes colors to columns colStart..colEnd (inclusive) of row.
	// The change is not visible until SetCustom is called.
	SetKeyRow(row, colStart, colEnd int, colors []color.RGBA) error

	// SetCustom switches the device to the custom frame written by SetKeyRow
	SetCustom() error
}

// Info describes a discovered device for listing in the host UI
type Info struct {
	ID      string // Stable identifier within its backend
	Backend string // Backend name, e.g. "openrazer"
	Name    string
	Type    string
	Dims    matrix.Dimensions
	Device  Device
}

// Describe queries the static properties of d
func Describe(id, backend string, d Device) (Info, error) {
	info := Info{ID: id, Backend: backend, Device: d}
	var err error
	if info.Name, err = d.Name(); err != nil {
		return info, err
	}
	if info.Type, err = d.DeviceType(); err != nil {
		return info, err
	}
	if info.Dims, err = d.MatrixDimensions(); err != nil {
		return info, err
	}
	return info, nil
}
