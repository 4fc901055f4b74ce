package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/PixPMusic/gopher-chroma/internal/matrix"
)

var (
	ErrLayoutNotFound  = errors.New("layout file not found")
	ErrLayoutMalformed = errors.New("layout file is not valid JSON")
)

// DevelopmentDir is tried first so a checkout can run without installing data
const DevelopmentDir = "../../data/matrix_layouts"

// Keyboard layout assets per matrix size
var byDimensions = map[matrix.Dimensions]string{
	{Rows: 6, Cols: 16}: "razerblade16",   // Razer Blade Stealth (Late 2017)
	{Rows: 6, Cols: 22}: "razerdefault22", // BlackWidow Chroma and most full-size keyboards
	{Rows: 6, Cols: 25}: "razerblade25",   // Razer Blade Pro 2017
}

// ForDimensions returns the keyboard layout asset for a matrix size
func ForDimensions(dims matrix.Dimensions) (string, bool) {
	name, ok := byDimensions[dims]
	return name, ok
}

// Loader reads layout assets from an ordered list of directories
type Loader struct {
	Dirs []string
	log  *zap.Logger
}

// NewLoader creates a loader searching dirs in order
func NewLoader(log *zap.Logger, dirs ...string) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{Dirs: dirs, log: log}
}

// Load reads and parses <dir>/<name>.json from the first directory that has it
func (l *Loader) Load(name string) (Description, error) {
	file := name + ".json"
	lastErr := fmt.Errorf("no layout directories configured")

	for _, dir := range l.Dirs {
		path := filepath.Join(dir, file)
		data, err := os.ReadFile(path)
		if err != nil {
			l.log.Debug("Layout file not usable, trying next location",
				zap.String("path", path), zap.Error(err))
			lastErr = err
			continue
		}

		l.log.Debug("Using layout file", zap.String("path", path))
		desc, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return desc, nil
	}

	return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, file, lastErr)
}
