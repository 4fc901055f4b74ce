package launchpad

import (
	"gitlab.com/gomidi/midi/v2"
)

// Model selects the Launchpad protocol variant
type Model string

const (
	ModelClassic  Model = "classic"  // Launchpad S
	ModelColorful Model = "colorful" // Launchpad Mini Mk3
)

// GridSize is the pad matrix of both models: 8x8 plus the top row and right column
const GridSize = 9

// padColor is a 7-bit-per-channel colour as the Launchpads expect it
type padColor struct {
	R, G, B uint8 // 0-127 for each channel
}

// protocol encodes pad updates for one model
type protocol interface {
	// activate puts the device into the mode that accepts pad colours
	activate(send func(midi.Message) error) error

	// setPad sets the colour of the pad at row, col
	setPad(send func(midi.Message) error, row, col int, color padColor) error
}

func protocolFor(model Model) protocol {
	switch model {
	case ModelClassic:
		return classic{}
	default:
		return colorful{}
	}
}

// ============ LAUNCHPAD S ============

type classic struct{}

func (classic) activate(send func(midi.Message) error) error {
	// Reset: B0 00 00
	return send(midi.ControlChange(0, 0, 0))
}

func (classic) setPad(send func(midi.Message) error, row, col int, color padColor) error {
	// The top-right corner has no pad
	if row == 0 && col == 8 {
		return nil
	}

	velocity := classicVelocity(color)

	if row == 0 {
		// Top row: Control Change 104 + col
		return send(midi.ControlChange(0, uint8(104+col), velocity))
	}
	// Row 1 = notes 0-8, Row 2 = notes 16-24, etc.
	return send(midi.NoteOn(0, uint8((row-1)*16+col), velocity))
}

// classicVelocity packs red/green intensity into the Launchpad S velocity byte.
// Bits 5-4 green, 3-2 copy+clear flags, 1-0 red.
func classicVelocity(color padColor) uint8 {
	if color.R < 5 && color.G < 5 && color.B < 5 {
		return 0x0C
	}

	// No blue LED: blue leans toward green
	effectiveR := int(color.R) + int(color.B)/4
	effectiveG := int(color.G) + (int(color.B)*3)/4
	if effectiveR > 127 {
		effectiveR = 127
	}
	if effectiveG > 127 {
		effectiveG = 127
	}

	return (colorTo4Level(uint8(effectiveG)) << 4) | 0x0C | colorTo4Level(uint8(effectiveR))
}

func colorTo4Level(value uint8) uint8 {
	if value < 32 {
		return 0
	} else if value < 64 {
		return 1
	} else if value < 96 {
		return 2
	}
	return 3
}

// ============ LAUNCHPAD MINI MK3 ============

type colorful struct{}

var sysexHeader = []byte{0x00, 0x20, 0x29, 0x02, 0x0D}

func (colorful) activate(send func(midi.Message) error) error {
	// Programmer mode: 00 20 29 02 0D 0E 01
	return send(midi.SysEx(append(append([]byte{}, sysexHeader...), 0x0E, 0x01)))
}

func (colorful) setPad(send func(midi.Message) error, row, col int, color padColor) error {
	// Programmer layout: bottom-left is 11, top-right is 99
	ledIndex := uint8((8-row)*10 + col + 11)

	msg := append(append([]byte{}, sysexHeader...),
		0x03,     // LED lighting
		0x03,     // RGB colour type
		ledIndex, // LED index
		scaleColor(color.R)&0x7F,
		scaleColor(color.G)&0x7F,
		scaleColor(color.B)&0x7F,
	)
	return send(midi.SysEx(msg))
}

// scaleColor applies a power curve so mid-range colours stay distinct
func scaleColor(value uint8) uint8 {
	if value == 0 {
		return 0
	}
	f := float64(value) / 127.0
	scaled := f * f * 127.0
	if scaled < 1 {
		scaled = 1
	}
	return uint8(scaled)
}
