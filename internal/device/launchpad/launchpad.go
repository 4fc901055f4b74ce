// Package launchpad exposes a Novation Launchpad's pad grid as a lighting matrix.
package launchpad

import (
	"fmt"
	"image/color"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver

	"github.com/PixPMusic/gopher-chroma/internal/device"
	"github.com/PixPMusic/gopher-chroma/internal/logging"
	"github.com/PixPMusic/gopher-chroma/internal/matrix"
)

// Port describes one configured Launchpad
type Port struct {
	ID      string
	Name    string
	OutPort string
	Model   Model
}

// Device drives one Launchpad output port. Pad colours are buffered by
// SetKeyRow and sent on SetCustom.
type Device struct {
	port     Port
	protocol protocol
	open     func(name string) (func(midi.Message) error, error)

	mu        sync.Mutex
	send      func(midi.Message) error
	activated bool
	frame     [GridSize][GridSize]padColor
	dirty     [GridSize][GridSize]bool
}

// NewDevice creates a device for port using the system MIDI driver
func NewDevice(port Port) *Device {
	return &Device{port: port, protocol: protocolFor(port.Model), open: openOutPort}
}

func openOutPort(name string) (func(midi.Message) error, error) {
	for _, out := range midi.GetOutPorts() {
		if out.String() == name {
			send, err := midi.SendTo(out)
			if err != nil {
				return nil, fmt.Errorf("failed to create sender: %w", err)
			}
			return send, nil
		}
	}
	return nil, fmt.Errorf("output port not found: %s", name)
}

func (d *Device) MatrixDimensions() (matrix.Dimensions, error) {
	return matrix.Dimensions{Rows: GridSize, Cols: GridSize}, nil
}

func (d *Device) DeviceType() (string, error) {
	return device.TypeLaunchpad, nil
}

func (d *Device) KeyboardLayout() (string, error) {
	return device.LayoutUnknown, nil
}

func (d *Device) Name() (string, error) {
	return d.port.Name, nil
}

func (d *Device) SetKeyRow(row, colStart, colEnd int, colors []color.RGBA) error {
	if row < 0 || row >= GridSize || colStart < 0 || colEnd >= GridSize || colStart > colEnd {
		return fmt.Errorf("pad row %d cols %d..%d outside %dx%d grid", row, colStart, colEnd, GridSize, GridSize)
	}
	if len(colors) < colEnd-colStart+1 {
		return fmt.Errorf("%d colours for %d pads", len(colors), colEnd-colStart+1)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for col := colStart; col <= colEnd; col++ {
		c := colors[col-colStart]
		pc := padColor{R: c.R >> 1, G: c.G >> 1, B: c.B >> 1}
		if d.frame[row][col] != pc {
			d.frame[row][col] = pc
			d.dirty[row][col] = true
		}
	}
	return nil
}

// SetCustom activates programmer mode on first use and sends every changed pad
func (d *Device) SetCustom() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.send == nil {
		send, err := d.open(d.port.OutPort)
		if err != nil {
			return err
		}
		d.send = send
	}
	if !d.activated {
		err := d.protocol.activate(d.send)
		logging.LogDeviceCommand("launchpad", d.port.Name, "activate", err)
		if err != nil {
			return fmt.Errorf("failed to activate programmer mode for %s: %w", d.port.Name, err)
		}
		d.activated = true
		// Activation resets the pads, so resend the whole frame
		for row := range d.dirty {
			for col := range d.dirty[row] {
				d.dirty[row][col] = true
			}
		}
	}

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if !d.dirty[row][col] {
				continue
			}
			if err := d.protocol.setPad(d.send, row, col, d.frame[row][col]); err != nil {
				return fmt.Errorf("failed to set pad color: %w", err)
			}
			d.dirty[row][col] = false
		}
	}
	return nil
}

// Backend offers the configured Launchpads
type Backend struct {
	devices map[string]*Device
	order   []string
}

// NewBackend creates devices for ports; ports without an output are skipped
func NewBackend(ports []Port) *Backend {
	b := &Backend{devices: make(map[string]*Device)}
	for _, p := range ports {
		if p.OutPort == "" {
			continue
		}
		b.devices[p.ID] = NewDevice(p)
		b.order = append(b.order, p.ID)
	}
	return b
}

func (b *Backend) Name() string {
	return "launchpad"
}

// OutPorts lists the MIDI output ports available for configuration
func (b *Backend) OutPorts() []string {
	outs := midi.GetOutPorts()
	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names
}

func (b *Backend) Devices() ([]device.Info, error) {
	infos := make([]device.Info, 0, len(b.order))
	for _, id := range b.order {
		info, err := device.Describe(id, b.Name(), b.devices[id])
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (b *Backend) Close() error {
	midi.CloseDriver()
	return nil
}
