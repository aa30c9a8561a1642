// Package transforms chains melody notation transformers.
package transforms

import (
	"context"
	"fmt"

	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.MelodyPipeline = (*Pipeline)(nil)

// Pipeline runs transformers in the order they were added.
type Pipeline struct {
	transformers []driven.MelodyTransformer
}

// NewPipeline creates a pipeline over transformers.
func NewPipeline(transformers ...driven.MelodyTransformer) *Pipeline {
	return &Pipeline{transformers: transformers}
}

// Apply runs volpiano through every transformer. The first failure stops
// the pipeline.
func (p *Pipeline) Apply(ctx context.Context, volpiano string) (string, error) {
	out := volpiano
	for _, t := range p.transformers {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		var err error
		out, err = t.Transform(ctx, out)
		if err != nil {
			return "", fmt.Errorf("transform %s: %w", t.Name(), err)
		}
	}
	return out, nil
}

// Names lists the transformers in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.transformers))
	for i, t := range p.transformers {
		names[i] = t.Name()
	}
	return names
}

// Add appends a transformer.
func (p *Pipeline) Add(t driven.MelodyTransformer) {
	p.transformers = append(p.transformers, t)
}

// Len returns the number of transformers.
func (p *Pipeline) Len() int {
	return len(p.transformers)
}
