// Package layout turns keyboard key-map descriptions into toolkit-independent
// trees of key buttons and spacers.
package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/PixPMusic/gopher-chroma/internal/matrix"
)

// Key is one entry of a key row. A nil Label marks a gap in the row.
type Key struct {
	Label    *string
	Width    int              // 0 means DefaultKeyWidth
	Matrix   *matrix.Position // nil when the key has no LED
	Disabled bool
}

type keyJSON struct {
	Label    *string `json:"label"`
	Width    *int    `json:"width,omitempty"`
	Matrix   []int   `json:"matrix,omitempty"`
	Disabled bool    `json:"disabled,omitempty"`
}

func (k *Key) UnmarshalJSON(data []byte) error {
	var raw keyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*k = Key{Label: raw.Label, Disabled: raw.Disabled}
	if raw.Width != nil {
		k.Width = *raw.Width
	}
	if raw.Matrix != nil {
		if len(raw.Matrix) != 2 {
			return fmt.Errorf("key matrix position must be [row, col], got %v", raw.Matrix)
		}
		k.Matrix = &matrix.Position{Row: raw.Matrix[0], Col: raw.Matrix[1]}
	}
	return nil
}

func (k Key) MarshalJSON() ([]byte, error) {
	raw := keyJSON{Label: k.Label, Disabled: k.Disabled}
	if k.Width != 0 {
		raw.Width = &k.Width
	}
	if k.Matrix != nil {
		raw.Matrix = []int{k.Matrix.Row, k.Matrix.Col}
	}
	return json.Marshal(raw)
}

// Row is an ordered run of keys
type Row []Key

// Locale is the key rows of one keyboard locale, top to bottom
type Locale []Row

// UnmarshalJSON accepts either an array of rows or an object of named rows.
// Named rows are ordered by name, so "row0".."row5" come out top to bottom.
func (l *Locale) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var rows []Row
		if err := json.Unmarshal(data, &rows); err != nil {
			return err
		}
		*l = rows
		return nil
	}

	var named map[string]Row
	if err := json.Unmarshal(data, &named); err != nil {
		return err
	}
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]Row, 0, len(names))
	for _, name := range names {
		rows = append(rows, named[name])
	}
	*l = rows
	return nil
}

// Description maps locale names (e.g. "en_US") to their key rows
type Description map[string]Locale

// Parse decodes a layout asset
func Parse(data []byte) (Description, error) {
	var desc Description
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayoutMalformed, err)
	}
	if desc == nil {
		return nil, fmt.Errorf("%w: document is not an object", ErrLayoutMalformed)
	}
	return desc, nil
}

// Locales lists the locale names in the description, sorted
func (d Description) Locales() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
