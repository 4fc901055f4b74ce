// Package scheme reads and writes colour scheme files: one JSON document
// holding a saved colour matrix per device name.
package scheme

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrNotFound  = errors.New("scheme file not found")
	ErrMalformed = errors.New("scheme file could not be parsed")
)

const (
	DefaultName   = "Default Profile"
	DefaultAuthor = "gopher-chroma"
)

// DefaultPath returns <dataDir>/razergenie/colours/default.json
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, "razergenie", "colours", "default.json")
}

// Entry is the saved state of one device
type Entry struct {
	Type   string     `json:"Type"`
	Matrix [][]string `json:"Matrix"` // [row][col] of "#rrggbb", "" for cells without a key
}

// Document is a scheme file. Top-level members other than Name, Author and
// device entries are kept as-is and written back on Save.
type Document struct {
	Name    string
	Author  string
	Devices map[string]Entry

	extra map[string]json.RawMessage
}

// New creates an empty document with the default name and author
func New() *Document {
	return &Document{Name: DefaultName, Author: DefaultAuthor, Devices: make(map[string]Entry)}
}

// Device returns the entry saved for name
func (d *Document) Device(name string) (Entry, bool) {
	e, ok := d.Devices[name]
	return e, ok
}

// SetDevice stores entry under name, replacing any previous one
func (d *Document) SetDevice(name string, entry Entry) {
	if d.Devices == nil {
		d.Devices = make(map[string]Entry)
	}
	d.Devices[name] = entry
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	if members == nil {
		return fmt.Errorf("scheme document is not an object")
	}

	*d = Document{Devices: make(map[string]Entry)}
	for key, raw := range members {
		switch key {
		case "Name":
			if err := json.Unmarshal(raw, &d.Name); err != nil {
				return fmt.Errorf("Name: %w", err)
			}
		case "Author":
			if err := json.Unmarshal(raw, &d.Author); err != nil {
				return fmt.Errorf("Author: %w", err)
			}
		default:
			var entry Entry
			if err := json.Unmarshal(raw, &entry); err != nil || entry.Matrix == nil {
				if d.extra == nil {
					d.extra = make(map[string]json.RawMessage)
				}
				d.extra[key] = raw
				continue
			}
			d.Devices[key] = entry
		}
	}
	return nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	members := make(map[string]interface{}, len(d.Devices)+len(d.extra)+2)
	for key, raw := range d.extra {
		members[key] = raw
	}
	for name, entry := range d.Devices {
		members[name] = entry
	}
	if d.Name != "" {
		members["Name"] = d.Name
	}
	if d.Author != "" {
		members["Author"] = d.Author
	}
	return json.Marshal(members)
}

// Load reads the scheme file at path
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return &doc, nil
}

// Save overwrites path with doc, creating the directory when needed
func Save(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
