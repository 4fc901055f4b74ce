package device

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/PixPMusic/gopher-chroma/internal/matrix"
)

// Memory is an in-process Device that keeps the last frame it was sent.
// It backs the demo backend and the editor tests.
type Memory struct {
	mu sync.Mutex

	DeviceName string
	Type       string
	Layout     string
	Dims       matrix.Dimensions

	// FailSetKeyRow / FailSetCustom make the corresponding call return an error
	FailSetKeyRow bool
	FailSetCustom bool

	frame       [][]color.RGBA
	committed   [][]color.RGBA
	rowWrites   int
	customCalls int
}

// NewMemory creates an all-black in-memory device
func NewMemory(name, deviceType, layout string, dims matrix.Dimensions) *Memory {
	m := &Memory{DeviceName: name, Type: deviceType, Layout: layout, Dims: dims}
	m.frame = make([][]color.RGBA, dims.Rows)
	for r := range m.frame {
		m.frame[r] = matrix.BlackRow(dims.Cols)
	}
	m.committed = cloneFrame(m.frame)
	return m
}

func (m *Memory) MatrixDimensions() (matrix.Dimensions, error) {
	return m.Dims, nil
}

func (m *Memory) DeviceType() (string, error) {
	return m.Type, nil
}

func (m *Memory) KeyboardLayout() (string, error) {
	return m.Layout, nil
}

func (m *Memory) Name() (string, error) {
	return m.DeviceName, nil
}

func (m *Memory) SetKeyRow(row, colStart, colEnd int, colors []color.RGBA) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSetKeyRow {
		return fmt.Errorf("setKeyRow rejected by device")
	}
	if row < 0 || row >= m.Dims.Rows || colStart < 0 || colEnd >= m.Dims.Cols || colStart > colEnd {
		return fmt.Errorf("setKeyRow out of range: row %d cols %d..%d", row, colStart, colEnd)
	}
	if len(colors) < colEnd-colStart+1 {
		return fmt.Errorf("setKeyRow: %d colours for %d columns", len(colors), colEnd-colStart+1)
	}
	copy(m.frame[row][colStart:colEnd+1], colors)
	m.rowWrites++
	return nil
}

func (m *Memory) SetCustom() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSetCustom {
		return fmt.Errorf("setCustom rejected by device")
	}
	m.committed = cloneFrame(m.frame)
	m.customCalls++
	return nil
}

// Committed returns the colour shown at pos after the last SetCustom
func (m *Memory) Committed(pos matrix.Position) color.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.committed[pos.Row][pos.Col]
}

// Writes returns the number of successful SetKeyRow and SetCustom calls
func (m *Memory) Writes() (rows, customs int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rowWrites, m.customCalls
}

func cloneFrame(src [][]color.RGBA) [][]color.RGBA {
	out := make([][]color.RGBA, len(src))
	for i := range src {
		out[i] = append([]color.RGBA(nil), src[i]...)
	}
	return out
}

// DemoBackend offers a fixed set of in-memory devices, one per supported layout
type DemoBackend struct {
	devices []*Memory
}

// NewDemoBackend creates the demo devices
func NewDemoBackend() *DemoBackend {
	return &DemoBackend{devices: []*Memory{
		NewMemory("Demo BlackWidow Chroma", TypeKeyboard, "en_US", matrix.Dimensions{Rows: 6, Cols: 22}),
		NewMemory("Demo Blade Stealth", TypeKeyboard, LayoutUnknown, matrix.Dimensions{Rows: 6, Cols: 16}),
		NewMemory("Demo Firefly", TypeMousemat, LayoutUnknown, matrix.Dimensions{Rows: 1, Cols: 15}),
	}}
}

func (b *DemoBackend) Name() string { return "demo" }

func (b *DemoBackend) Devices() ([]Info, error) {
	infos := make([]Info, 0, len(b.devices))
	for i, d := range b.devices {
		info, err := Describe(fmt.Sprintf("demo%d", i), b.Name(), d)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (b *DemoBackend) Close() error { return nil }
