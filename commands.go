package main

import (
	"fmt"
	"text/tabwriter"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PixPMusic/gopher-chroma/internal/config"
	"github.com/PixPMusic/gopher-chroma/internal/device"
	"github.com/PixPMusic/gopher-chroma/internal/device/launchpad"
	"github.com/PixPMusic/gopher-chroma/internal/device/openrazer"
	"github.com/PixPMusic/gopher-chroma/internal/device/razerhid"
	"github.com/PixPMusic/gopher-chroma/internal/logging"
	"github.com/PixPMusic/gopher-chroma/internal/tray"
	"github.com/PixPMusic/gopher-chroma/internal/window"
)

const appID = "com.pixpmusic.gopherchroma"

var cfg *config.Config

// setup loads the config and initializes logging for every command
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	return logging.Initialize(level)
}

func saveConfig() error {
	if configPath != "" {
		return cfg.SaveFile(configPath)
	}
	return cfg.Save()
}

// backends holds the device backends built from the config
type backends struct {
	registry  *device.Registry
	launchpad *launchpad.Backend
}

func openBackends() *backends {
	log := logging.Named("devices")

	var list []device.Backend
	if cfg.OpenRazer.Enabled {
		or, err := openrazer.Connect(cfg.OpenRazer.SystemBus)
		if err != nil {
			log.Warn("OpenRazer daemon not reachable", zap.Error(err))
		} else {
			list = append(list, or)
		}
	}

	lp := launchpad.NewBackend(cfg.LaunchpadPorts())
	list = append(list, lp)

	if models := cfg.HIDModels(); len(models) > 0 {
		list = append(list, razerhid.NewBackend(models))
	}
	if demo {
		list = append(list, device.NewDemoBackend())
	}

	return &backends{registry: device.NewRegistry(log, list...), launchpad: lp}
}

func (b *backends) close() {
	if err := b.registry.Close(); err != nil {
		logging.Warn("Failed to close device backends", zap.Error(err))
	}
}

// ============ GUI ============

func runGUI(cmd *cobra.Command, args []string) error {
	defer logging.Sync()

	b := openBackends()
	defer b.close()

	fyneApp := app.NewWithID(appID)

	mainWindow := window.NewMainWindow(fyneApp, cfg, window.Options{
		Registry: b.registry,
		OutPorts: b.launchpad.OutPorts,
		Save:     saveConfig,
		Logger:   logging.Named("window"),
	})

	quit := func() {
		mainWindow.CloseEditors()
		fyneApp.Quit()
	}

	hasTray := tray.Setup(fyneApp, tray.Callbacks{
		OnOpen: mainWindow.Show,
		OnQuit: quit,
	})
	if !hasTray {
		// Nothing could bring a hidden window back
		mainWindow.Window().SetCloseIntercept(quit)
	}

	mainWindow.Show()
	fyneApp.Run()
	return nil
}

// ============ DEVICES ============

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List lighting devices",
	Long:  `List the devices found by every enabled backend with the ID accepted by 'edit --device'.`,
	RunE:  runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	defer logging.Sync()

	b := openBackends()
	defer b.close()

	infos := b.registry.Devices()
	if len(infos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No lighting devices found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tMATRIX")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", device.QualifiedID(info), info.Name, info.Type, info.Dims)
	}
	return w.Flush()
}

// ============ EDIT ============

var (
	editDevice   string
	editDiscover bool
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the custom editor for one device",
	Example: `  # Paint a keyboard found through the OpenRazer daemon
  gopher-chroma edit --device openrazer:XX0000000000

  # Probe the matrix of an unsupported device
  gopher-chroma edit --device hid:5f2c... --discover --log-level debug`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editDevice, "device", "", "Device ID as listed by 'gopher-chroma devices'")
	editCmd.Flags().BoolVar(&editDiscover, "discover", false, "Show every matrix cell instead of the device layout")
	_ = editCmd.MarkFlagRequired("device")
}

func runEdit(cmd *cobra.Command, args []string) error {
	defer logging.Sync()

	b := openBackends()
	defer b.close()

	info, err := b.registry.Find(editDevice)
	if err != nil {
		return err
	}
	edCfg, err := cfg.EditorConfig()
	if err != nil {
		return err
	}

	fyneApp := app.NewWithID(appID)
	ew, err := window.OpenEditor(fyneApp, nil, info, editDiscover, edCfg, logging.GetLogger())
	if err != nil {
		return err
	}
	ew.OnClosed = fyneApp.Quit

	fyneApp.Run()
	return nil
}
