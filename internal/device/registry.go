package device

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Backend discovers devices of one transport
type Backend interface {
	// Name identifies the backend in device IDs, e.g. "openrazer"
	Name() string

	// Devices lists the devices currently reachable
	Devices() ([]Info, error)

	// Close releases the backend's transport
	Close() error
}

// Registry aggregates every enabled backend
type Registry struct {
	backends []Backend
	log      *zap.Logger
}

// NewRegistry creates a registry over backends
func NewRegistry(log *zap.Logger, backends ...Backend) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{backends: backends, log: log}
}

// Devices lists devices from all backends. A failing backend is logged and
// skipped so the others still show up.
func (r *Registry) Devices() []Info {
	var all []Info
	for _, b := range r.backends {
		infos, err := b.Devices()
		if err != nil {
			r.log.Warn("Backend unavailable", zap.String("backend", b.Name()), zap.Error(err))
			continue
		}
		all = append(all, infos...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
	})
	return all
}

// Find returns the device whose qualified ID ("backend:id") or bare ID matches
func (r *Registry) Find(id string) (Info, error) {
	for _, info := range r.Devices() {
		if QualifiedID(info) == id || info.ID == id {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("device not found: %s", id)
}

// Close closes every backend and returns the first error
func (r *Registry) Close() error {
	var first error
	for _, b := range r.backends {
		if err := b.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// QualifiedID returns "backend:id"
func QualifiedID(info Info) string {
	return info.Backend + ":" + info.ID
}
