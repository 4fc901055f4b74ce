// Gopher-chroma paints per-key colours onto lighting devices.
//
// Without a subcommand it starts the desktop application: a device list with
// a custom editor per device and a tray menu. The subcommands list devices or
// open a single editor directly.
//
// Usage:
//
//	gopher-chroma [flags]
//	gopher-chroma devices
//	gopher-chroma edit --device openrazer:XX0000000000 [--discover]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	logLevel   string
	configPath string
	demo       bool
)

var rootCmd = &cobra.Command{
	Use:   "gopher-chroma",
	Short: "Per-key lighting editor",
	Long: `Paint per-key colours onto Razer keyboards, mousemats and Novation Launchpads.

Devices are reached through the OpenRazer daemon, raw USB HID for configured
Razer devices, or MIDI for configured Launchpads. Without a subcommand the
desktop application starts.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runGUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when empty")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: user config directory)")
	rootCmd.PersistentFlags().BoolVar(&demo, "demo", false, "Add in-memory demo devices")

	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(editCmd)
}
