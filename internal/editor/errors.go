package editor

import (
	"errors"
	"fmt"

	"github.com/PixPMusic/gopher-chroma/internal/layout"
	"github.com/PixPMusic/gopher-chroma/internal/scheme"
)

var (
	ErrUnknownDimensions = errors.New("unknown matrix dimensions")
	ErrUnsupportedDevice = errors.New("device type not implemented")
)

// DeviceError is a failed device command
type DeviceError struct {
	Op  string // "setKeyRow" or "setCustom"
	Row int    // -1 when the command is not row-specific
	Err error
}

func (e *DeviceError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("%s row %d: %v", e.Op, e.Row, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

const issueHint = "Please open an issue in the gopher-chroma repository."

// Notice returns the title and message shown to the user for err
func Notice(err error) (title, message string) {
	var devErr *DeviceError
	switch {
	case errors.Is(err, ErrUnknownDimensions):
		return "Unknown matrix dimensions", issueHint + " " + err.Error()
	case errors.Is(err, ErrUnsupportedDevice):
		return "Device type not implemented!", issueHint + " " + err.Error()
	case errors.Is(err, layout.ErrLayoutNotFound), errors.Is(err, layout.ErrLayoutMalformed):
		return "Error loading layout!", fmt.Sprintf("The layout file used for the custom editor failed to load: %v\nThe editor won't open now.", err)
	case errors.Is(err, layout.ErrLocaleUnsupported):
		return "Keyboard layout not supported", fmt.Sprintf("Your keyboard layout is not yet supported by the custom editor for this keyboard (%v). %s", err, issueHint)
	case errors.Is(err, layout.ErrNoFallbackLocale):
		return "Keyboard layout not found", fmt.Sprintf("%v. The editor won't open now.", err)
	case errors.Is(err, scheme.ErrNotFound):
		return "Could not find scheme!", fmt.Sprintf("%v\n\nA new configuration will be generated.", err)
	case errors.Is(err, scheme.ErrMalformed):
		return "Could not parse!", fmt.Sprintf("%v\n\nPlease check the document for errors.", err)
	case errors.As(err, &devErr):
		return "Device error", fmt.Sprintf("The device rejected the update: %v", devErr)
	default:
		return "Error", err.Error()
	}
}
