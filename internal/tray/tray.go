package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

// Callbacks for tray menu actions
type Callbacks struct {
	OnOpen func()
	OnQuit func()
}

// Menu builds the tray menu
func Menu(callbacks Callbacks) *fyne.Menu {
	openItem := fyne.NewMenuItem("Open gopher-chroma", func() {
		if callbacks.OnOpen != nil {
			callbacks.OnOpen()
		}
	})

	quitItem := fyne.NewMenuItem("Quit", func() {
		if callbacks.OnQuit != nil {
			callbacks.OnQuit()
		}
	})

	return fyne.NewMenu("gopher-chroma",
		openItem,
		fyne.NewMenuItemSeparator(),
		quitItem,
	)
}

// Setup initializes the system tray using Fyne's built-in support.
// It reports false when the app does not run on a desktop driver.
func Setup(app fyne.App, callbacks Callbacks) bool {
	desk, ok := app.(desktop.App)
	if !ok {
		return false
	}
	desk.SetSystemTrayMenu(Menu(callbacks))
	desk.SetSystemTrayIcon(theme.ColorPaletteIcon())
	return true
}
