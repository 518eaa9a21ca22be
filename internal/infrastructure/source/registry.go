package source

import (
	"fmt"

	"SignalScanner/internal/ports"
)

// Registry keeps a mapping from adapter names to per-query signal sources.
// Which registered sources actually run is decided by configuration, keeping
// activation explicit and auditable.
type Registry struct {
	sources map[string]ports.SignalSource
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]ports.SignalSource{}}
}

// Register adds or replaces a signal source.
func (r *Registry) Register(src ports.SignalSource) {
	if r.sources == nil {
		r.sources = map[string]ports.SignalSource{}
	}
	r.sources[src.Name()] = src
}

// Resolve returns a source by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.SignalSource, error) {
	if src, ok := r.sources[name]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("signal source %s is not registered", name)
}
