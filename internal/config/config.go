package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	"github.com/PixPMusic/gopher-chroma/internal/device"
	"github.com/PixPMusic/gopher-chroma/internal/device/launchpad"
	"github.com/PixPMusic/gopher-chroma/internal/device/razerhid"
	"github.com/PixPMusic/gopher-chroma/internal/editor"
	"github.com/PixPMusic/gopher-chroma/internal/layout"
	"github.com/PixPMusic/gopher-chroma/internal/matrix"
	"github.com/PixPMusic/gopher-chroma/internal/scheme"
)

const appName = "gopher-chroma"

// OpenRazerConfig controls the OpenRazer daemon backend
type OpenRazerConfig struct {
	Enabled   bool `json:"enabled"`
	SystemBus bool `json:"system_bus"` // Daemon registered on the system bus instead of the session bus
}

// LaunchpadConfig holds configuration for a single Launchpad
type LaunchpadConfig struct {
	ID      string          `json:"id"`       // Unique identifier
	Name    string          `json:"name"`     // User-friendly name
	OutPort string          `json:"out_port"` // MIDI output port name
	Model   launchpad.Model `json:"model"`    // Classic or Colorful
}

// NewLaunchpadConfig creates a new Launchpad config with a generated ID
func NewLaunchpadConfig() LaunchpadConfig {
	return LaunchpadConfig{
		ID:    uuid.New().String(),
		Name:  "New Launchpad",
		Model: launchpad.ModelClassic,
	}
}

// Port converts the config to the backend's port description
func (l LaunchpadConfig) Port() launchpad.Port {
	return launchpad.Port{ID: l.ID, Name: l.Name, OutPort: l.OutPort, Model: l.Model}
}

// HIDDeviceConfig describes a Razer device driven over raw HID.
// HID reports none of these properties so they are configured.
type HIDDeviceConfig struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ProductID uint16 `json:"product_id"`
	Type      string `json:"type"`   // keyboard, mousemat, ...
	Rows      int    `json:"rows"`   // Matrix rows
	Cols      int    `json:"cols"`   // Matrix columns
	Layout    string `json:"layout"` // Keyboard locale, e.g. en_US
	Extended  bool   `json:"extended"`
}

// NewHIDDeviceConfig creates a new HID device config with a generated ID
func NewHIDDeviceConfig() HIDDeviceConfig {
	return HIDDeviceConfig{
		ID:     uuid.New().String(),
		Name:   "New Razer Device",
		Type:   device.TypeKeyboard,
		Rows:   6,
		Cols:   22,
		Layout: device.LayoutUnknown,
	}
}

// Model converts the config to the backend's model description
func (h HIDDeviceConfig) Model() razerhid.Model {
	return razerhid.Model{
		ID:        h.ID,
		Name:      h.Name,
		ProductID: h.ProductID,
		Type:      h.Type,
		Layout:    h.Layout,
		Dims:      matrix.Dimensions{Rows: h.Rows, Cols: h.Cols},
		Extended:  h.Extended,
	}
}

// Config holds application configuration
type Config struct {
	ExportToJSON bool              `json:"export_to_json"` // Load the scheme on open, export it on close
	SchemePath   string            `json:"scheme_path,omitempty"`
	LayoutDirs   []string          `json:"layout_dirs,omitempty"` // Searched before the default locations
	LogLevel     string            `json:"log_level,omitempty"`
	OpenRazer    OpenRazerConfig   `json:"openrazer"`
	Launchpads   []LaunchpadConfig `json:"launchpads"`
	HIDDevices   []HIDDeviceConfig `json:"hid_devices"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		OpenRazer:  OpenRazerConfig{Enabled: true},
		Launchpads: []LaunchpadConfig{},
		HIDDevices: []HIDDeviceConfig{},
	}
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, appName), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DataDir returns the per-user data directory shared with other lighting
// tools: $XDG_DATA_HOME or ~/.local/share on Linux.
func DataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return dir, nil
		}
		return os.UserConfigDir()
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

// Load reads the config from disk, returning defaults if not found
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile reads the config at path, returning defaults if not found
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Ensure slices are not nil
	if cfg.Launchpads == nil {
		cfg.Launchpads = []LaunchpadConfig{}
	}
	if cfg.HIDDevices == nil {
		cfg.HIDDevices = []HIDDeviceConfig{}
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(configPath)
}

// SaveFile writes the config to path
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ResolvedSchemePath returns SchemePath, or the shared default scheme file
func (c *Config) ResolvedSchemePath() (string, error) {
	if c.SchemePath != "" {
		return c.SchemePath, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return scheme.DefaultPath(dataDir), nil
}

// ResolvedLayoutDirs returns LayoutDirs followed by the default search
// locations: the development checkout, the working directory and the
// installed data directory.
func (c *Config) ResolvedLayoutDirs() []string {
	dirs := append([]string(nil), c.LayoutDirs...)
	dirs = append(dirs, layout.DevelopmentDir, filepath.Join("data", "matrix_layouts"))
	if dataDir, err := DataDir(); err == nil {
		dirs = append(dirs, filepath.Join(dataDir, appName, "matrix_layouts"))
	}
	return dirs
}

// EditorConfig builds the settings handed to every editor
func (c *Config) EditorConfig() (editor.Config, error) {
	path, err := c.ResolvedSchemePath()
	if err != nil {
		return editor.Config{}, err
	}
	return editor.Config{
		ExportToJSON: c.ExportToJSON,
		SchemePath:   path,
		LayoutDirs:   c.ResolvedLayoutDirs(),
	}, nil
}

// LaunchpadPorts returns the configured Launchpads as backend ports
func (c *Config) LaunchpadPorts() []launchpad.Port {
	ports := make([]launchpad.Port, 0, len(c.Launchpads))
	for _, l := range c.Launchpads {
		ports = append(ports, l.Port())
	}
	return ports
}

// HIDModels returns the configured HID devices as backend models
func (c *Config) HIDModels() []razerhid.Model {
	models := make([]razerhid.Model, 0, len(c.HIDDevices))
	for _, h := range c.HIDDevices {
		models = append(models, h.Model())
	}
	return models
}

// AddLaunchpad adds a new Launchpad to the config
func (c *Config) AddLaunchpad(l LaunchpadConfig) {
	c.Launchpads = append(c.Launchpads, l)
}

// RemoveLaunchpad removes a Launchpad by ID
func (c *Config) RemoveLaunchpad(id string) {
	for i, l := range c.Launchpads {
		if l.ID == id {
			c.Launchpads = append(c.Launchpads[:i], c.Launchpads[i+1:]...)
			return
		}
	}
}

// AddHIDDevice adds a new HID device to the config
func (c *Config) AddHIDDevice(h HIDDeviceConfig) {
	c.HIDDevices = append(c.HIDDevices, h)
}

// RemoveHIDDevice removes a HID device by ID
func (c *Config) RemoveHIDDevice(id string) {
	for i, h := range c.HIDDevices {
		if h.ID == id {
			c.HIDDevices = append(c.HIDDevices[:i], c.HIDDevices[i+1:]...)
			return
		}
	}
}
