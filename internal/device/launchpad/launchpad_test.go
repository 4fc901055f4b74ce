package launchpad

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"

	"github.com/PixPMusic/gopher-chroma/internal/device"
	"github.com/PixPMusic/gopher-chroma/internal/matrix"
)

type recorder struct {
	sent []midi.Message
}

func (r *recorder) send(msg midi.Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

func newTestDevice(model Model) (*Device, *recorder) {
	rec := &recorder{}
	d := NewDevice(Port{ID: "lp1", Name: "Launchpad", OutPort: "out", Model: model})
	d.open = func(string) (func(midi.Message) error, error) {
		return rec.send, nil
	}
	return d, rec
}

func TestDeviceProperties(t *testing.T) {
	d, _ := newTestDevice(ModelColorful)

	dims, err := d.MatrixDimensions()
	require.NoError(t, err)
	assert.Equal(t, matrix.Dimensions{Rows: 9, Cols: 9}, dims)

	typ, _ := d.DeviceType()
	assert.Equal(t, device.TypeLaunchpad, typ)

	layout, _ := d.KeyboardLayout()
	assert.Equal(t, device.LayoutUnknown, layout)
}

func TestFirstSetCustomActivatesAndSendsFrame(t *testing.T) {
	d, rec := newTestDevice(ModelColorful)

	require.NoError(t, d.SetCustom())

	// Programmer mode followed by all 81 pads
	require.Len(t, rec.sent, 1+GridSize*GridSize)
	assert.Equal(t, midi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0D, 0x0E, 0x01}), rec.sent[0])
}

func TestSetCustomSendsOnlyChangedPads(t *testing.T) {
	d, rec := newTestDevice(ModelColorful)
	require.NoError(t, d.SetCustom())
	rec.sent = nil

	row := matrix.BlackRow(GridSize)
	row[3] = color.RGBA{R: 254, A: 255}
	require.NoError(t, d.SetKeyRow(8, 0, GridSize-1, row))
	require.NoError(t, d.SetCustom())

	require.Len(t, rec.sent, 1)
	// Bottom row, column 3 is LED 14; 254>>1 = 127 stays 127 after scaling
	assert.Equal(t, midi.SysEx([]byte{0x00, 0x20, 0x29, 0x02, 0x0D, 0x03, 0x03, 14, 127, 0, 0}), rec.sent[0])

	rec.sent = nil
	require.NoError(t, d.SetCustom())
	assert.Empty(t, rec.sent)
}

func TestClassicAddressing(t *testing.T) {
	send := func(msgs *[]midi.Message) func(midi.Message) error {
		return func(m midi.Message) error {
			*msgs = append(*msgs, m)
			return nil
		}
	}
	var msgs []midi.Message
	p := classic{}

	require.NoError(t, p.setPad(send(&msgs), 0, 2, padColor{R: 127}))
	require.NoError(t, p.setPad(send(&msgs), 2, 1, padColor{}))
	require.NoError(t, p.setPad(send(&msgs), 0, 8, padColor{R: 127}))

	require.Len(t, msgs, 2)
	assert.Equal(t, midi.ControlChange(0, 106, 0x0F), msgs[0])
	assert.Equal(t, midi.NoteOn(0, 17, 0x0C), msgs[1])
}

func TestClassicVelocity(t *testing.T) {
	tests := []struct {
		name  string
		color padColor
		want  uint8
	}{
		{"off", padColor{R: 2, G: 2, B: 2}, 0x0C},
		{"full red", padColor{R: 127}, 0x0F},
		{"full green", padColor{G: 127}, 0x3C},
		{"amber", padColor{R: 127, G: 127}, 0x3F},
		{"blue leans green", padColor{B: 127}, 0x2C},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classicVelocity(tt.color))
		})
	}
}

func TestSetKeyRowValidates(t *testing.T) {
	d, _ := newTestDevice(ModelClassic)

	assert.Error(t, d.SetKeyRow(9, 0, 8, matrix.BlackRow(9)))
	assert.Error(t, d.SetKeyRow(0, 0, 9, matrix.BlackRow(10)))
	assert.Error(t, d.SetKeyRow(0, 0, 8, matrix.BlackRow(3)))
}

func TestSetCustomReportsMissingPort(t *testing.T) {
	d := NewDevice(Port{Name: "Launchpad", OutPort: "out"})
	d.open = func(name string) (func(midi.Message) error, error) {
		return nil, errors.New("output port not found: " + name)
	}

	assert.EqualError(t, d.SetCustom(), "output port not found: out")
}

func TestBackendSkipsUnroutedPorts(t *testing.T) {
	b := NewBackend([]Port{
		{ID: "a", Name: "Routed", OutPort: "LPMiniMK3 MIDI", Model: ModelColorful},
		{ID: "b", Name: "Unrouted"},
	})

	infos, err := b.Devices()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "Routed", infos[0].Name)
	assert.Equal(t, device.TypeLaunchpad, infos[0].Type)
}
