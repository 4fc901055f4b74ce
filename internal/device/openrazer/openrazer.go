// Package openrazer talks to the OpenRazer daemon over the D-Bus session bus.
package openrazer

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/PixPMusic/gopher-chroma/internal/device"
	"github.com/PixPMusic/gopher-chroma/internal/matrix"
)

const (
	service    = "org.razer"
	rootPath   = dbus.ObjectPath("/org/razer")
	devicePath = "/org/razer/device/"

	ifaceDevices = "razer.devices"
	ifaceMisc    = "razer.device.misc"
	ifaceChroma  = "razer.device.lighting.chroma"
)

// caller is the subset of dbus.BusObject used here
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Device is one daemon-managed device, addressed by its serial
type Device struct {
	serial string
	obj    caller
	mu     *sync.Mutex
}

func (d *Device) call(iface, method string, args ...interface{}) *dbus.Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.obj.Call(iface+"."+method, 0, args...)
}

func (d *Device) getString(iface, method string) (string, error) {
	var s string
	if err := d.call(iface, method).Store(&s); err != nil {
		return "", fmt.Errorf("%s on %s: %w", method, d.serial, err)
	}
	return s, nil
}

// Serial returns the device serial used in its object path
func (d *Device) Serial() string {
	return d.serial
}

func (d *Device) MatrixDimensions() (matrix.Dimensions, error) {
	var dims []int32
	if err := d.call(ifaceMisc, "getMatrixDimensions").Store(&dims); err != nil {
		return matrix.Dimensions{}, fmt.Errorf("getMatrixDimensions on %s: %w", d.serial, err)
	}
	if len(dims) != 2 {
		return matrix.Dimensions{}, fmt.Errorf("getMatrixDimensions on %s: got %d values", d.serial, len(dims))
	}
	return matrix.Dimensions{Rows: int(dims[0]), Cols: int(dims[1])}, nil
}

func (d *Device) DeviceType() (string, error) {
	return d.getString(ifaceMisc, "getDeviceType")
}

func (d *Device) KeyboardLayout() (string, error) {
	return d.getString(ifaceMisc, "getKeyboardLayout")
}

func (d *Device) Name() (string, error) {
	return d.getString(ifaceMisc, "getDeviceName")
}

// SetKeyRow sends the daemon's row payload: row, start column, end column,
// then one RGB triplet per column
func (d *Device) SetKeyRow(row, colStart, colEnd int, colors []color.RGBA) error {
	count := colEnd - colStart + 1
	if count <= 0 || len(colors) < count {
		return fmt.Errorf("setKeyRow on %s: %d colours for columns %d..%d", d.serial, len(colors), colStart, colEnd)
	}
	payload := make([]byte, 0, 3+count*3)
	payload = append(payload, byte(row), byte(colStart), byte(colEnd))
	for _, c := range colors[:count] {
		payload = append(payload, c.R, c.G, c.B)
	}
	if err := d.call(ifaceChroma, "setKeyRow", payload).Err; err != nil {
		return fmt.Errorf("setKeyRow on %s: %w", d.serial, err)
	}
	return nil
}

func (d *Device) SetCustom() error {
	if err := d.call(ifaceChroma, "setCustom").Err; err != nil {
		return fmt.Errorf("setCustom on %s: %w", d.serial, err)
	}
	return nil
}

// Backend lists daemon devices
type Backend struct {
	conn   *dbus.Conn
	object func(path dbus.ObjectPath) caller
	mu     sync.Mutex
}

// Connect opens the session bus (or the system bus when system is true)
func Connect(system bool) (*Backend, error) {
	var (
		conn *dbus.Conn
		err  error
	)
	if system {
		conn, err = dbus.ConnectSystemBus()
	} else {
		conn, err = dbus.ConnectSessionBus()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to D-Bus: %w", err)
	}
	b := &Backend{conn: conn}
	b.object = func(path dbus.ObjectPath) caller {
		return conn.Object(service, path)
	}
	return b, nil
}

func (b *Backend) Name() string {
	return "openrazer"
}

// Serials returns the serials of every device the daemon manages
func (b *Backend) Serials() ([]string, error) {
	b.mu.Lock()
	call := b.object(rootPath).Call(ifaceDevices+".getDevices", 0)
	b.mu.Unlock()

	var serials []string
	if err := call.Store(&serials); err != nil {
		return nil, fmt.Errorf("getDevices: %w", err)
	}
	return serials, nil
}

// Device returns the handle for serial without contacting the daemon
func (b *Backend) Device(serial string) *Device {
	return &Device{
		serial: serial,
		obj:    b.object(dbus.ObjectPath(devicePath + serial)),
		mu:     &b.mu,
	}
}

func (b *Backend) Devices() ([]device.Info, error) {
	serials, err := b.Serials()
	if err != nil {
		return nil, err
	}
	infos := make([]device.Info, 0, len(serials))
	for _, serial := range serials {
		info, err := device.Describe(serial, b.Name(), b.Device(serial))
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (b *Backend) Close() error {
	if b.conn == nil {
		return nil
	}
	return b.conn.Close()
}
