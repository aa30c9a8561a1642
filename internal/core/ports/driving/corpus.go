package driving

import (
	"context"
	"errors"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
)

// Corpus is a loaded collection of chants, sources and melodies with
// curation operations. Every curation operation is recorded in the history.
type Corpus interface {
	// Chants returns the live chant collection.
	Chants() []*domain.Chant

	// SetChants replaces the chant collection. Fails with
	// domain.ErrPermission when the corpus is not editable.
	SetChants(chants []*domain.Chant) error

	// Sources returns the live source collection.
	Sources() []*domain.Source

	// SetSources replaces the source collection. Fails with
	// domain.ErrPermission when the corpus is not editable.
	SetSources(sources []*domain.Source) error

	// Melodies returns the melodies of chants that carry one.
	Melodies() []*domain.Melody

	// MelodyFor looks up the melody of the chant with chantLink.
	MelodyFor(chantLink string) (*domain.Melody, bool)

	// Editable reports whether entities stay unlocked after load.
	Editable() bool

	// DropDuplicateChants keeps one chant per chantlink.
	DropDuplicateChants() error

	// DropDuplicateSources keeps one source per srclink.
	DropDuplicateSources() error

	// KeepMelodicChants keeps only chants with a melody.
	KeepMelodicChants() error

	// DropEmptySources keeps only sources referenced by a chant.
	DropEmptySources() error

	// DropSmallSourcesData keeps sources with at least minChants chants
	// and only the chants of kept sources.
	DropSmallSourcesData(minChants int) error

	// ApplyFilter filters the collections in place.
	ApplyFilter(filter *domain.Filter) error

	// TransformMelodies rewrites every melody through pipeline.
	TransformMelodies(ctx context.Context, pipeline driven.MelodyPipeline) error

	// History returns the recorded operations in order.
	History() []domain.HistoryEntry

	// HistoryString renders the history one operation after another.
	HistoryString() string

	// Export writes chants, then sources if any, reporting failures of
	// each independently.
	Export(ctx context.Context, chantsPath, sourcesPath string) ExportReport
}

// ExportReport carries the independent outcomes of an export.
type ExportReport struct {
	ChantsWritten  int
	SourcesWritten int
	ChantsErr      error
	SourcesErr     error
}

// Err joins both export errors, or returns nil when both succeeded.
func (r ExportReport) Err() error {
	return errors.Join(r.ChantsErr, r.SourcesErr)
}

// CorpusOpener loads corpora.
type CorpusOpener interface {
	// Open loads a corpus. Loader failures are returned unwrapped.
	Open(ctx context.Context, opts domain.CorpusOptions) (Corpus, error)
}
