package window

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"go.uber.org/zap"

	"github.com/PixPMusic/gopher-chroma/internal/config"
	"github.com/PixPMusic/gopher-chroma/internal/device"
)

// Options are the collaborators of the main window
type Options struct {
	// Registry lists the devices shown in the Devices tab
	Registry *device.Registry

	// OutPorts lists MIDI output ports for the Launchpads tab
	OutPorts func() []string

	// Save persists the config; defaults to cfg.Save
	Save func() error

	Logger *zap.Logger
}

// MainWindow manages the main application window
type MainWindow struct {
	window   fyne.Window
	app      fyne.App
	cfg      *config.Config
	registry *device.Registry
	outPorts func() []string
	save     func() error
	log      *zap.Logger

	devices       []device.Info
	deviceList    *fyne.Container
	launchpadList *fyne.Container

	// Open editors by qualified device ID
	editors map[string]*EditorWindow
}

// NewMainWindow creates the main application window
func NewMainWindow(app fyne.App, cfg *config.Config, opts Options) *MainWindow {
	win := app.NewWindow("gopher-chroma")

	mw := &MainWindow{
		window:   win,
		app:      app,
		cfg:      cfg,
		registry: opts.Registry,
		outPorts: opts.OutPorts,
		save:     opts.Save,
		log:      opts.Logger,
		editors:  make(map[string]*EditorWindow),
	}
	if mw.log == nil {
		mw.log = zap.NewNop()
	}
	if mw.registry == nil {
		mw.registry = device.NewRegistry(mw.log)
	}
	if mw.outPorts == nil {
		mw.outPorts = func() []string { return nil }
	}
	if mw.save == nil {
		mw.save = cfg.Save
	}

	mw.setupUI()

	win.Resize(fyne.NewSize(820, 480))
	win.CenterOnScreen()

	win.SetCloseIntercept(func() {
		win.Hide()
	})

	return mw
}

func (mw *MainWindow) setupUI() {
	devicesTab := container.NewTabItem("Devices", mw.createDevicesTab())
	launchpadsTab := container.NewTabItem("Launchpads", mw.createLaunchpadsTab())

	tabs := container.NewAppTabs(devicesTab, launchpadsTab)
	tabs.SetTabLocation(container.TabLocationTop)

	mw.window.SetContent(tabs)
}

// Show displays the main window
func (mw *MainWindow) Show() {
	mw.window.Show()
}

// Window returns the underlying Fyne window
func (mw *MainWindow) Window() fyne.Window {
	return mw.window
}

// OpenEditor opens the custom editor (or the matrix discovery view) for the
// device with the given ID. An editor already open for it is focused instead.
func (mw *MainWindow) OpenEditor(id string, discovery bool) (*EditorWindow, error) {
	info, err := mw.registry.Find(id)
	if err != nil {
		dialog.ShowError(err, mw.window)
		return nil, err
	}

	key := device.QualifiedID(info)
	if ew, ok := mw.editors[key]; ok {
		ew.Window().RequestFocus()
		return ew, nil
	}

	cfg, err := mw.cfg.EditorConfig()
	if err != nil {
		mw.log.Error("Failed to resolve editor paths", zap.Error(err))
		dialog.ShowError(err, mw.window)
		return nil, err
	}

	ew, err := OpenEditor(mw.app, mw.window, info, discovery, cfg, mw.log)
	if err != nil {
		return nil, err
	}
	mw.editors[key] = ew
	ew.OnClosed = func() {
		delete(mw.editors, key)
	}
	return ew, nil
}

// CloseEditors closes every open editor, running their export step
func (mw *MainWindow) CloseEditors() {
	for _, ew := range mw.editors {
		ew.Close()
	}
}

func (mw *MainWindow) saveConfig() {
	if err := mw.save(); err != nil {
		mw.log.Error("Failed to save config", zap.Error(err))
		dialog.ShowError(err, mw.window)
	}
}
