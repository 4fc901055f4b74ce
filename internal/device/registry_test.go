package device

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixPMusic/gopher-chroma/internal/matrix"
)

type failingBackend struct{}

func (failingBackend) Name() string             { return "broken" }
func (failingBackend) Devices() ([]Info, error) { return nil, errors.New("bus down") }
func (failingBackend) Close() error             { return errors.New("close failed") }

func TestRegistrySkipsFailingBackend(t *testing.T) {
	reg := NewRegistry(nil, failingBackend{}, NewDemoBackend())

	devices := reg.Devices()
	require.Len(t, devices, 3)
	assert.Equal(t, "Demo BlackWidow Chroma", devices[0].Name)
	assert.Equal(t, "demo", devices[0].Backend)
}

func TestRegistryFind(t *testing.T) {
	reg := NewRegistry(nil, NewDemoBackend())

	info, err := reg.Find("demo:demo2")
	require.NoError(t, err)
	assert.Equal(t, TypeMousemat, info.Type)
	assert.Equal(t, matrix.Dimensions{Rows: 1, Cols: 15}, info.Dims)

	info, err = reg.Find("demo0")
	require.NoError(t, err)
	assert.Equal(t, TypeKeyboard, info.Type)

	_, err = reg.Find("nope")
	assert.Error(t, err)
}

func TestRegistryCloseReturnsFirstError(t *testing.T) {
	reg := NewRegistry(nil, NewDemoBackend(), failingBackend{})
	assert.EqualError(t, reg.Close(), "close failed")
}

func TestMemoryCommitsOnSetCustom(t *testing.T) {
	m := NewMemory("kbd", TypeKeyboard, "en_US", matrix.Dimensions{Rows: 2, Cols: 3})
	red := color.RGBA{R: 255, A: 255}

	require.NoError(t, m.SetKeyRow(1, 0, 2, []color.RGBA{red, red, red}))
	assert.Equal(t, matrix.Black, m.Committed(matrix.Position{Row: 1, Col: 1}))

	require.NoError(t, m.SetCustom())
	assert.Equal(t, red, m.Committed(matrix.Position{Row: 1, Col: 1}))

	rows, customs := m.Writes()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 1, customs)
}

func TestMemoryRejectsBadRow(t *testing.T) {
	m := NewMemory("kbd", TypeKeyboard, "en_US", matrix.Dimensions{Rows: 2, Cols: 3})

	assert.Error(t, m.SetKeyRow(2, 0, 2, matrix.BlackRow(3)))
	assert.Error(t, m.SetKeyRow(0, 0, 3, matrix.BlackRow(4)))
	assert.Error(t, m.SetKeyRow(0, 0, 2, matrix.BlackRow(2)))

	m.FailSetKeyRow = true
	assert.Error(t, m.SetKeyRow(0, 0, 2, matrix.BlackRow(3)))
}
