package window

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/PixPMusic/gopher-chroma/internal/config"
	"github.com/PixPMusic/gopher-chroma/internal/device/launchpad"
)

const noPort = "(None)"

// ============ LAUNCHPADS TAB ============

func (mw *MainWindow) createLaunchpadsTab() fyne.CanvasObject {
	header := widget.NewLabel("Launchpads")
	header.TextStyle = fyne.TextStyle{Bold: true}

	addBtn := widget.NewButtonWithIcon("Add Launchpad", theme.ContentAddIcon(), func() {
		mw.addLaunchpad()
	})

	toolbar := container.NewBorder(nil, nil, header, addBtn)

	headerName := widget.NewLabel("Name")
	headerName.TextStyle = fyne.TextStyle{Bold: true}
	headerOut := widget.NewLabel("Output Port")
	headerOut.TextStyle = fyne.TextStyle{Bold: true}
	headerModel := widget.NewLabel("Model")
	headerModel.TextStyle = fyne.TextStyle{Bold: true}
	headerActions := widget.NewLabel("")

	columnHeaders := container.NewGridWithColumns(4,
		headerName, headerOut, headerModel, headerActions,
	)

	mw.launchpadList = container.NewVBox()
	mw.refreshLaunchpads()

	saveBtn := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		mw.saveConfig()
		dialog.ShowInformation("Saved", "Launchpad changes apply the next time gopher-chroma starts.", mw.window)
	})
	saveBtn.Importance = widget.HighImportance

	actionsSection := container.NewVBox(
		widget.NewSeparator(),
		container.NewHBox(saveBtn),
	)

	return container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator(), columnHeaders),
		actionsSection,
		nil, nil,
		container.NewVScroll(mw.launchpadList),
	)
}

func (mw *MainWindow) refreshLaunchpads() {
	mw.launchpadList.RemoveAll()
	ports := mw.outPorts()
	for i := range mw.cfg.Launchpads {
		mw.launchpadList.Add(mw.createLaunchpadRow(&mw.cfg.Launchpads[i], ports))
	}
}

func (mw *MainWindow) createLaunchpadRow(pad *config.LaunchpadConfig, ports []string) fyne.CanvasObject {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Launchpad Name")
	nameEntry.SetText(pad.Name)
	nameEntry.OnChanged = func(s string) { pad.Name = s }

	outPortSelect := widget.NewSelect(append([]string{noPort}, ports...), nil)
	outPortSelect.PlaceHolder = "Select..."
	if pad.OutPort == "" {
		outPortSelect.SetSelected(noPort)
	} else {
		outPortSelect.SetSelected(pad.OutPort)
	}
	outPortSelect.OnChanged = func(s string) {
		if s == noPort {
			pad.OutPort = ""
		} else {
			pad.OutPort = s
		}
	}

	modelSelect := widget.NewSelect([]string{"Classic", "Colorful"}, nil)
	modelSelect.PlaceHolder = "Model"
	switch pad.Model {
	case launchpad.ModelColorful:
		modelSelect.SetSelected("Colorful")
	default:
		modelSelect.SetSelected("Classic")
	}
	modelSelect.OnChanged = func(s string) {
		switch s {
		case "Classic":
			pad.Model = launchpad.ModelClassic
		case "Colorful":
			pad.Model = launchpad.ModelColorful
		}
	}

	id := pad.ID
	removeBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		mw.removeLaunchpad(id)
	})

	return container.NewGridWithColumns(4,
		nameEntry, outPortSelect, modelSelect,
		container.NewCenter(removeBtn),
	)
}

func (mw *MainWindow) addLaunchpad() {
	mw.cfg.AddLaunchpad(config.NewLaunchpadConfig())
	mw.refreshLaunchpads()
}

func (mw *MainWindow) removeLaunchpad(id string) {
	mw.cfg.RemoveLaunchpad(id)
	mw.refreshLaunchpads()
}
