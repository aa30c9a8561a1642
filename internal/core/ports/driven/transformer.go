package driven

import "context"

// MelodyTransformer rewrites volpiano notation.
// Transformers are pure string functions chained in a pipeline
// (e.g., cleaning, liquescent normalisation).
type MelodyTransformer interface {
	// Name returns the transformer name for logging and configuration.
	Name() string

	// Transform returns the rewritten notation.
	Transform(ctx context.Context, volpiano string) (string, error)
}

// MelodyPipeline chains multiple MelodyTransformers.
type MelodyPipeline interface {
	// Names lists the transformers in execution order.
	Names() []string

	// Apply runs the notation through all transformers in order.
	Apply(ctx context.Context, volpiano string) (string, error)
}
