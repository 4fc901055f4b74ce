package window

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/PixPMusic/gopher-chroma/internal/device"
)

// ============ DEVICES TAB ============

func (mw *MainWindow) createDevicesTab() fyne.CanvasObject {
	devicesHeader := widget.NewLabel("Lighting Devices")
	devicesHeader.TextStyle = fyne.TextStyle{Bold: true}

	refreshBtn := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() {
		mw.refreshDevices()
	})

	devicesToolbar := container.NewBorder(nil, nil, devicesHeader, refreshBtn)

	headerName := widget.NewLabel("Name")
	headerName.TextStyle = fyne.TextStyle{Bold: true}
	headerType := widget.NewLabel("Type")
	headerType.TextStyle = fyne.TextStyle{Bold: true}
	headerMatrix := widget.NewLabel("Matrix")
	headerMatrix.TextStyle = fyne.TextStyle{Bold: true}
	headerBackend := widget.NewLabel("Backend")
	headerBackend.TextStyle = fyne.TextStyle{Bold: true}
	headerActions := widget.NewLabel("")

	columnHeaders := container.NewGridWithColumns(5,
		headerName, headerType, headerMatrix, headerBackend, headerActions,
	)

	mw.deviceList = container.NewVBox()
	mw.refreshDevices()

	exportCheck := widget.NewCheck("Load and export custom editor colours (JSON scheme)", func(checked bool) {
		if mw.cfg.ExportToJSON == checked {
			return
		}
		mw.cfg.ExportToJSON = checked
		mw.saveConfig()
	})
	exportCheck.SetChecked(mw.cfg.ExportToJSON)

	schemePath, err := mw.cfg.ResolvedSchemePath()
	if err != nil {
		schemePath = err.Error()
	}
	pathLabel := widget.NewLabel("Scheme file: " + schemePath)
	pathLabel.Truncation = fyne.TextTruncateEllipsis

	settingsSection := container.NewVBox(
		widget.NewSeparator(),
		exportCheck,
		pathLabel,
	)

	return container.NewBorder(
		container.NewVBox(devicesToolbar, widget.NewSeparator(), columnHeaders),
		settingsSection,
		nil, nil,
		container.NewVScroll(mw.deviceList),
	)
}

// refreshDevices rescans every backend and rebuilds the device rows
func (mw *MainWindow) refreshDevices() {
	mw.devices = mw.registry.Devices()
	mw.log.Debug("Devices refreshed", zap.Int("count", len(mw.devices)))

	mw.deviceList.RemoveAll()
	if len(mw.devices) == 0 {
		mw.deviceList.Add(widget.NewLabel("No lighting devices found."))
		return
	}
	for _, info := range mw.devices {
		mw.deviceList.Add(mw.createDeviceRow(info))
	}
}

func (mw *MainWindow) createDeviceRow(info device.Info) fyne.CanvasObject {
	id := device.QualifiedID(info)

	editBtn := widget.NewButtonWithIcon("Custom Editor", theme.DocumentCreateIcon(), func() {
		_, _ = mw.OpenEditor(id, false)
	})
	discoverBtn := widget.NewButtonWithIcon("Matrix Discovery", theme.GridIcon(), func() {
		_, _ = mw.OpenEditor(id, true)
	})

	return container.NewGridWithColumns(5,
		widget.NewLabel(info.Name),
		widget.NewLabel(info.Type),
		widget.NewLabel(info.Dims.String()),
		widget.NewLabel(info.Backend),
		container.NewHBox(editBtn, discoverBtn),
	)
}
