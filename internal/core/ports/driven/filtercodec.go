package driven

import (
	"io"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
)

// FilterCodec encodes and decodes filter configuration documents.
type FilterCodec interface {
	// Format names the encoding, e.g. "yaml" or "toml".
	Format() string

	// Encode writes the filter's full configuration.
	Encode(w io.Writer, filter *domain.Filter) error

	// Decode reads a document and replaces the filter's name and value maps.
	// A document missing a required top-level key fails with
	// domain.ErrConfiguration and leaves the filter unchanged.
	Decode(r io.Reader, filter *domain.Filter) error
}
