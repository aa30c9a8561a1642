package transforms

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
)

// BuilderFunc creates a transformer from generic options.
type BuilderFunc func(cfg map[string]any) (driven.MelodyTransformer, error)

// Registry maps transformer names to their builders.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]BuilderFunc)}
}

// Register adds a builder. name must match the transformer's Name.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a transformer by name.
func (r *Registry) Build(name string, cfg map[string]any) (driven.MelodyTransformer, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown melody transform %q", domain.ErrInvalidInput, name)
	}
	return builder(cfg)
}

// BuildPipeline creates a pipeline of the named transformers with default
// options, in the given order.
func (r *Registry) BuildPipeline(names ...string) (*Pipeline, error) {
	p := NewPipeline()
	for _, name := range names {
		t, err := r.Build(name, nil)
		if err != nil {
			return nil, err
		}
		p.Add(t)
	}
	return p, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
