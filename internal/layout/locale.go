package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PixPMusic/gopher-chroma/internal/device"
)

var (
	ErrLocaleUnsupported = errors.New("keyboard layout not supported for this keyboard")
	ErrNoFallbackLocale  = errors.New("no fallback layout found")
)

// FallbackLocales are tried in order when the device layout is unknown
var FallbackLocales = []string{"de_DE", "en_US", "en_GB"}

// Resolution is the locale picked for a keyboard
type Resolution struct {
	Name   string
	Rows   Locale
	Notice string // Informational message for the user, empty when none
}

// ResolveLocale picks the key rows for the layout reported by the device.
// A known layout missing from the description is an error; an unknown one
// falls back to the first of FallbackLocales that the description has.
func ResolveLocale(desc Description, reported string) (Resolution, error) {
	if reported != "" && reported != device.LayoutUnknown {
		if rows, ok := desc[reported]; ok {
			return Resolution{Name: reported, Rows: rows}, nil
		}
		return Resolution{}, fmt.Errorf("%w: %s", ErrLocaleUnsupported, reported)
	}

	res := Resolution{
		Notice: "You are using a keyboard with a layout which is not known to the daemon. " +
			"Please help us by visiting https://github.com/openrazer/openrazer/wiki/Keyboard-layouts. " +
			"Using a fallback layout for now.",
	}
	for _, name := range FallbackLocales {
		if rows, ok := desc[name]; ok {
			res.Name = name
			res.Rows = rows
			return res, nil
		}
	}
	return Resolution{}, fmt.Errorf("%w: neither one of %s is in the layout file",
		ErrNoFallbackLocale, strings.Join(FallbackLocales, ", "))
}
