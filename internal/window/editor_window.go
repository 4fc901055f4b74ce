package window

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/PixPMusic/gopher-chroma/internal/device"
	"github.com/PixPMusic/gopher-chroma/internal/editor"
	"github.com/PixPMusic/gopher-chroma/internal/layout"
)

// windowNotifier shows editor notices as information dialogs. While the
// editor window closes, notices go to the fallback window instead.
type windowNotifier struct {
	target   func() fyne.Window
	fallback fyne.Window
}

func (n *windowNotifier) Notify(title, message string) {
	win := n.target()
	if win == nil {
		win = n.fallback
	}
	if win == nil {
		return
	}
	dialog.ShowInformation(title, message, win)
}

// EditorWindow is the custom editor of one device
type EditorWindow struct {
	window fyne.Window
	parent fyne.Window
	editor *editor.Editor
	log    *zap.Logger

	swatch   *canvas.Rectangle
	setBtn   *widget.Button
	clearBtn *widget.Button
	status   *widget.Label
	buttons  []*keyButton
	closing  bool

	// OnClosed is called after the window has been closed
	OnClosed func()
}

// OpenEditor creates the editor for info and shows it. When the device
// cannot be edited the reason is shown on parent and the error returned.
func OpenEditor(app fyne.App, parent fyne.Window, info device.Info, discovery bool, cfg editor.Config, log *zap.Logger) (*EditorWindow, error) {
	if log == nil {
		log = zap.NewNop()
	}

	title := fmt.Sprintf("%s - Custom Editor", info.Name)
	if discovery {
		title = fmt.Sprintf("%s - Matrix Discovery", info.Name)
	}

	ew := &EditorWindow{
		window: app.NewWindow(title),
		parent: parent,
		log:    log.Named("editor"),
	}
	notifier := &windowNotifier{fallback: parent, target: func() fyne.Window {
		if ew.closing {
			return nil
		}
		return ew.window
	}}

	ed, err := editor.New(info.Device, discovery, cfg, notifier, ew.log)
	if err != nil {
		ew.log.Warn("Custom editor not available", zap.String("device", info.Name), zap.Error(err))
		ew.window.Close()
		if parent != nil {
			t, msg := editor.Notice(err)
			dialog.ShowInformation(t, msg, parent)
		}
		return nil, err
	}
	ew.editor = ed

	ew.setupUI()
	ew.window.SetCloseIntercept(ew.Close)
	ew.window.Show()

	return ew, nil
}

// Editor returns the editor shown by the window
func (ew *EditorWindow) Editor() *editor.Editor {
	return ew.editor
}

// Window returns the underlying Fyne window
func (ew *EditorWindow) Window() fyne.Window {
	return ew.window
}

func (ew *EditorWindow) setupUI() {
	ew.status = widget.NewLabel("")
	ew.status.Wrapping = fyne.TextWrapWord

	content := container.NewBorder(
		container.NewVBox(ew.createToolbar(), widget.NewSeparator()),
		ew.status,
		nil, nil,
		container.NewScroll(ew.createKeyGrid()),
	)
	ew.window.SetContent(content)
	ew.window.Resize(content.MinSize().Max(fyne.NewSize(480, 320)))
}

// ============ TOOLBAR ============

func (ew *EditorWindow) createToolbar() fyne.CanvasObject {
	ew.swatch = canvas.NewRectangle(ew.editor.SelectedColor())
	ew.swatch.SetMinSize(fyne.NewSize(36, 36))
	ew.swatch.CornerRadius = 4
	ew.swatch.StrokeColor = theme.Color(theme.ColorNameForeground)
	ew.swatch.StrokeWidth = 1
	picker := newTappableRect(ew.swatch, ew.pickColor)

	ew.setBtn = widget.NewButtonWithIcon("Set", theme.ColorPaletteIcon(), func() {
		ew.setDrawMode(editor.DrawSet)
	})
	ew.clearBtn = widget.NewButtonWithIcon("Clear", theme.ContentRemoveIcon(), func() {
		ew.setDrawMode(editor.DrawClear)
	})
	clearAllBtn := widget.NewButtonWithIcon("Clear All", theme.DeleteIcon(), func() {
		ew.report(ew.editor.ClearAll())
	})
	ew.setDrawMode(ew.editor.DrawMode())

	tools := container.NewHBox(picker, ew.setBtn, ew.clearBtn, clearAllBtn)

	if ew.editor.DeviceType() == device.TypeKeyboard {
		exportBtn := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() {
			if _, err := ew.editor.ExportScheme(); err != nil {
				dialog.ShowError(err, ew.window)
			}
		})
		tools.Add(widget.NewSeparator())
		tools.Add(exportBtn)
	}
	return tools
}

func (ew *EditorWindow) pickColor() {
	picker := dialog.NewColorPicker("Choose key colour", "Colour painted by Set", func(c color.Color) {
		ew.editor.SelectColor(c)
		ew.swatch.FillColor = ew.editor.SelectedColor()
		ew.swatch.Refresh()
	}, ew.window)
	picker.Advanced = true
	picker.SetColor(ew.editor.SelectedColor())
	picker.Show()
}

func (ew *EditorWindow) setDrawMode(mode editor.DrawMode) {
	ew.editor.SetDrawMode(mode)
	ew.setBtn.Importance = widget.MediumImportance
	ew.clearBtn.Importance = widget.MediumImportance
	switch mode {
	case editor.DrawSet:
		ew.setBtn.Importance = widget.HighImportance
	case editor.DrawClear:
		ew.clearBtn.Importance = widget.HighImportance
	}
	ew.setBtn.Refresh()
	ew.clearBtn.Refresh()
}

// ============ KEY GRID ============

// createKeyGrid renders the editor's layout tree. Keys() holds the buttons
// of the tree in row order, so they are consumed alongside it.
func (ew *EditorWindow) createKeyGrid() fyne.CanvasObject {
	keys := ew.editor.Keys()
	next := 0

	rows := container.NewVBox()
	for _, row := range ew.editor.Tree().Rows {
		line := container.NewHBox()
		for _, node := range row {
			switch node.Kind {
			case layout.NodeSpacer:
				line.Add(spacer(node.Width, node.Height))
			case layout.NodeButton:
				b := newKeyButton(keys[next], ew.keyTapped)
				next++
				ew.buttons = append(ew.buttons, b)
				line.Add(b)
			}
		}
		rows.Add(line)
	}
	return rows
}

func (ew *EditorWindow) keyTapped(k *editor.Key) {
	ew.report(ew.editor.Click(k))
}

// report shows device failures in the status line
func (ew *EditorWindow) report(err error) {
	if err == nil {
		ew.status.SetText("")
		return
	}
	_, msg := editor.Notice(err)
	ew.status.SetText(msg)
}

// ============ CLOSE ============

// Close runs the editor's close step and closes the window. Notices raised
// while closing are shown on the parent window.
func (ew *EditorWindow) Close() {
	if ew.closing {
		return
	}
	ew.closing = true

	if err := ew.editor.Close(); err != nil {
		ew.log.Error("Failed to export scheme on close", zap.Error(err))
		if ew.parent != nil {
			dialog.ShowError(err, ew.parent)
		}
	}
	ew.window.Close()

	if ew.OnClosed != nil {
		ew.OnClosed()
	}
}
