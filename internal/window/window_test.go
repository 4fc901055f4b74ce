package window

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixPMusic/gopher-chroma/internal/config"
	"github.com/PixPMusic/gopher-chroma/internal/device"
	"github.com/PixPMusic/gopher-chroma/internal/editor"
	"github.com/PixPMusic/gopher-chroma/internal/matrix"
)

const bundledLayouts = "../../data/matrix_layouts"

func demoInfo(t *testing.T, id string) device.Info {
	t.Helper()
	info, err := device.NewRegistry(nil, device.NewDemoBackend()).Find(id)
	require.NoError(t, err)
	return info
}

func openDemoEditor(t *testing.T, app fyne.App, id string, cfg editor.Config) *EditorWindow {
	t.Helper()
	cfg.LayoutDirs = []string{bundledLayouts}
	ew, err := OpenEditor(app, nil, demoInfo(t, id), false, cfg, nil)
	require.NoError(t, err)
	return ew
}

func buttonFor(t *testing.T, ew *EditorWindow, label string) *keyButton {
	t.Helper()
	for _, b := range ew.buttons {
		if b.key.Label() == label {
			return b
		}
	}
	t.Fatalf("no button labelled %q", label)
	return nil
}

func TestEditorWindowRendersEveryKey(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	ew := openDemoEditor(t, app, "demo:demo0", editor.Config{})
	assert.Len(t, ew.buttons, len(ew.Editor().Keys()))
	assert.Equal(t, "Demo BlackWidow Chroma - Custom Editor", ew.Window().Title())

	esc := buttonFor(t, ew, "Esc")
	assert.Equal(t, fyne.NewSize(60, 63), esc.rect.MinSize())
}

func TestTapPaintsKey(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	ew := openDemoEditor(t, app, "demo:demo0", editor.Config{})
	red := color.RGBA{R: 255, A: 255}
	ew.Editor().SelectColor(red)

	esc := buttonFor(t, ew, "Esc")
	test.Tap(esc)

	pos, _ := esc.key.Position()
	got, err := ew.Editor().ColorAt(pos)
	require.NoError(t, err)
	assert.Equal(t, red, got)
	assert.Equal(t, red, esc.rect.FillColor)
	assert.Empty(t, ew.status.Text)

	test.Tap(ew.clearBtn)
	assert.Equal(t, editor.DrawClear, ew.Editor().DrawMode())
	test.Tap(esc)
	got, _ = ew.Editor().ColorAt(pos)
	assert.Equal(t, matrix.Black, got)
	assert.Equal(t, theme.Color(theme.ColorNameButton), esc.rect.FillColor)

	test.Tap(ew.setBtn)
	assert.Equal(t, editor.DrawSet, ew.Editor().DrawMode())
}

func TestTapDisabledKeyDoesNothing(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	ew := openDemoEditor(t, app, "demo:demo0", editor.Config{})
	fn := buttonFor(t, ew, "Fn")
	test.Tap(fn)

	_, painted := fn.key.Color()
	assert.False(t, painted)
	assert.Equal(t, theme.Color(theme.ColorNameDisabledButton), fn.rect.FillColor)
}

func TestDeviceErrorShownInStatus(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	mem := device.NewMemory("Flaky", device.TypeMousemat, device.LayoutUnknown, matrix.Dimensions{Rows: 1, Cols: 15})
	info, err := device.Describe("flaky", "test", mem)
	require.NoError(t, err)

	ew, err := OpenEditor(app, nil, info, false, editor.Config{}, nil)
	require.NoError(t, err)
	require.Len(t, ew.buttons, 15)

	mem.FailSetCustom = true
	test.Tap(ew.buttons[3])
	assert.Contains(t, ew.status.Text, "setCustom")

	mem.FailSetCustom = false
	test.Tap(ew.buttons[3])
	assert.Empty(t, ew.status.Text)
}

func TestOpenEditorRejectsUnsupportedDevice(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	parent := test.NewWindow(nil)
	defer parent.Close()

	mem := device.NewMemory("Mouse", device.TypeMouse, device.LayoutUnknown, matrix.Dimensions{Rows: 1, Cols: 3})
	info, err := device.Describe("mouse", "test", mem)
	require.NoError(t, err)

	ew, err := OpenEditor(app, parent, info, false, editor.Config{}, nil)
	assert.ErrorIs(t, err, editor.ErrUnsupportedDevice)
	assert.Nil(t, ew)
}

func TestDiscoveryWindow(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	ew, err := OpenEditor(app, nil, demoInfo(t, "demo:demo1"), true, editor.Config{}, nil)
	require.NoError(t, err)
	assert.Len(t, ew.buttons, 6*16)
	assert.Equal(t, "Demo Blade Stealth - Matrix Discovery", ew.Window().Title())
	assert.Equal(t, fyne.NewSize(defaultKeySize, defaultKeySize), ew.buttons[0].rect.MinSize())
}

func TestCloseExportsScheme(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	path := filepath.Join(t.TempDir(), "colours", "default.json")
	ew := openDemoEditor(t, app, "demo:demo0", editor.Config{ExportToJSON: true, SchemePath: path})

	closed := false
	ew.OnClosed = func() { closed = true }
	ew.Close()
	ew.Close()

	assert.True(t, closed)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestMainWindowListsAndOpensEditors(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.SchemePath = filepath.Join(dir, "default.json")
	cfg.LayoutDirs = []string{bundledLayouts}

	saves := 0
	mw := NewMainWindow(app, cfg, Options{
		Registry: device.NewRegistry(nil, device.NewDemoBackend()),
		Save:     func() error { saves++; return nil },
	})

	require.Len(t, mw.devices, 3)
	assert.Len(t, mw.deviceList.Objects, 3)

	first, err := mw.OpenEditor("demo:demo0", false)
	require.NoError(t, err)
	again, err := mw.OpenEditor("demo:demo0", false)
	require.NoError(t, err)
	assert.Same(t, first, again)

	mw.CloseEditors()
	assert.Empty(t, mw.editors)

	_, err = mw.OpenEditor("demo:missing", false)
	assert.Error(t, err)
	assert.Zero(t, saves)
}

func TestMainWindowEmptyRegistry(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	mw := NewMainWindow(app, config.Default(), Options{Save: func() error { return nil }})
	assert.Empty(t, mw.devices)
	assert.Len(t, mw.deviceList.Objects, 1)
}

func TestLaunchpadRows(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	cfg := config.Default()
	mw := NewMainWindow(app, cfg, Options{
		OutPorts: func() []string { return []string{"Launchpad S"} },
		Save:     func() error { return nil },
	})
	assert.Empty(t, mw.launchpadList.Objects)

	mw.addLaunchpad()
	require.Len(t, cfg.Launchpads, 1)
	assert.Len(t, mw.launchpadList.Objects, 1)

	mw.removeLaunchpad(cfg.Launchpads[0].ID)
	assert.Empty(t, cfg.Launchpads)
	assert.Empty(t, mw.launchpadList.Objects)
}

func TestLabelColorContrast(t *testing.T) {
	assert.Equal(t, color.Black, labelColor(color.White, false))
	assert.Equal(t, color.White, labelColor(color.RGBA{B: 255, A: 255}, false))
}
