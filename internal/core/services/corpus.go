package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driving"
	"github.com/custodia-labs/cantus-corpus/internal/logger"
)

// Ensure Corpus implements the interface.
var _ driving.Corpus = (*Corpus)(nil)

// CorpusConfig holds the collaborators and mode of a corpus.
type CorpusConfig struct {
	// Editable leaves entities unlocked and allows collection replacement.
	Editable bool

	// Writer receives exported tables. Optional.
	Writer driven.TableWriter

	// FilterCodec renders filters in history. Optional.
	FilterCodec driven.FilterCodec
}

// Corpus owns chants, sources and the melodies of its chants, and records
// every curation operation run on them.
//
// A Corpus is not safe for concurrent use.
type Corpus struct {
	editable bool
	chants   []*domain.Chant
	sources  []*domain.Source
	melodies map[string]*domain.Melody
	history  []domain.HistoryEntry

	writer driven.TableWriter
	codec  driven.FilterCodec

	now   func() time.Time
	newID func() string
}

// NewCorpus runs loader to completion and takes ownership of the records.
// Loader failures are returned as they are.
func NewCorpus(ctx context.Context, loader *Loader, cfg CorpusConfig) (*Corpus, error) {
	chants, sources, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewCorpusFromRecords(chants, sources, cfg), nil
}

// NewCorpusFromRecords builds a corpus over already constructed records.
// When the corpus is not editable every chant and source is locked.
func NewCorpusFromRecords(chants []*domain.Chant, sources []*domain.Source, cfg CorpusConfig) *Corpus {
	if sources == nil {
		sources = []*domain.Source{}
	}
	c := &Corpus{
		editable: cfg.Editable,
		chants:   chants,
		sources:  sources,
		writer:   cfg.Writer,
		codec:    cfg.FilterCodec,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	if !c.editable {
		for _, ch := range c.chants {
			ch.Lock()
		}
		for _, s := range c.sources {
			s.Lock()
		}
	}
	c.reindex()
	return c
}

// reindex rebuilds the chantlink to melody lookup.
func (c *Corpus) reindex() {
	c.melodies = make(map[string]*domain.Melody)
	for _, ch := range c.chants {
		if ch.HasMelody() {
			c.melodies[ch.ChantLink()] = ch.Melody()
		}
	}
}

// Editable reports whether entities stay unlocked.
func (c *Corpus) Editable() bool { return c.editable }

// Chants returns the live chant collection.
func (c *Corpus) Chants() []*domain.Chant { return c.chants }

// SetChants replaces the chant collection.
func (c *Corpus) SetChants(chants []*domain.Chant) error {
	if !c.editable {
		return fmt.Errorf("%w: corpus is not editable, cannot replace chant list", domain.ErrPermission)
	}
	c.chants = chants
	c.reindex()
	return nil
}

// Sources returns the live source collection.
func (c *Corpus) Sources() []*domain.Source { return c.sources }

// SetSources replaces the source collection.
func (c *Corpus) SetSources(sources []*domain.Source) error {
	if !c.editable {
		return fmt.Errorf("%w: corpus is not editable, cannot replace sources list", domain.ErrPermission)
	}
	c.sources = sources
	return nil
}

// Melodies returns the melodies of the current chants in chant order.
// A melody is locked together with its chant.
func (c *Corpus) Melodies() []*domain.Melody {
	out := make([]*domain.Melody, 0, len(c.melodies))
	for _, ch := range c.chants {
		if ch.HasMelody() {
			out = append(out, ch.Melody())
		}
	}
	return out
}

// MelodyFor looks up the melody of the chant with chantLink.
func (c *Corpus) MelodyFor(chantLink string) (*domain.Melody, bool) {
	m, ok := c.melodies[chantLink]
	return m, ok
}

// Run executes op against the corpus and records it in the history.
// Operations work on the owned collections and are allowed on
// non-editable corpora.
func (c *Corpus) Run(ctx context.Context, op Operation) error {
	params := op.parameters(c)
	logger.Info("Running %s", op.Name())
	logger.Debug("Parameters: %s", params)

	if err := op.apply(ctx, c); err != nil {
		return fmt.Errorf("%s: %w", op.Name(), err)
	}
	c.reindex()
	c.history = append(c.history, domain.NewHistoryEntry(c.newID(), op.Name(), params, c.now()))
	logger.Debug("%s done: %d chants, %d sources", op.Name(), len(c.chants), len(c.sources))
	return nil
}

// DropDuplicateChants keeps one chant per chantlink.
func (c *Corpus) DropDuplicateChants() error {
	return c.Run(context.Background(), DropDuplicateChants{})
}

// DropDuplicateSources keeps one source per srclink.
func (c *Corpus) DropDuplicateSources() error {
	return c.Run(context.Background(), DropDuplicateSources{})
}

// KeepMelodicChants keeps only chants with a melody.
func (c *Corpus) KeepMelodicChants() error {
	return c.Run(context.Background(), KeepMelodicChants{})
}

// DropEmptySources keeps only sources referenced by a chant.
func (c *Corpus) DropEmptySources() error {
	return c.Run(context.Background(), DropEmptySources{})
}

// DropSmallSourcesData keeps sources with at least minChants chants and
// only the chants of kept sources.
func (c *Corpus) DropSmallSourcesData(minChants int) error {
	return c.Run(context.Background(), DropSmallSourcesData{MinChants: minChants})
}

// ApplyFilter filters the collections in place.
func (c *Corpus) ApplyFilter(filter *domain.Filter) error {
	return c.Run(context.Background(), ApplyFilterOp{Filter: filter})
}

// TransformMelodies rewrites every melody through pipeline.
func (c *Corpus) TransformMelodies(ctx context.Context, pipeline driven.MelodyPipeline) error {
	return c.Run(ctx, TransformMelodies{Pipeline: pipeline})
}

// History returns a copy of the recorded operations.
func (c *Corpus) History() []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(c.history))
	copy(out, c.history)
	return out
}

// HistoryString renders every entry as its operation name followed by its
// parameters.
func (c *Corpus) HistoryString() string {
	parts := make([]string, len(c.history))
	for i, h := range c.history {
		parts[i] = h.String()
	}
	return strings.Join(parts, "\n")
}

// renderFilter serialises filter for history, preferring the codec format.
func (c *Corpus) renderFilter(filter *domain.Filter) string {
	if filter == nil {
		return domain.NoParameters
	}
	if c.codec != nil {
		var buf bytes.Buffer
		if err := c.codec.Encode(&buf, filter); err == nil {
			return strings.TrimRight(buf.String(), "\n")
		}
		logger.Debug("Encoding filter %q as %s failed, using plain rendering", filter.Name(), c.codec.Format())
	}
	return filter.String()
}

// Export writes chants, then sources when there are any and sourcesPath is
// set. A failure on one does not prevent the other.
func (c *Corpus) Export(ctx context.Context, chantsPath, sourcesPath string) driving.ExportReport {
	var report driving.ExportReport
	if c.writer == nil {
		err := fmt.Errorf("%w: no table writer configured", domain.ErrConfiguration)
		report.ChantsErr = err
		if len(c.sources) > 0 && sourcesPath != "" {
			report.SourcesErr = err
		}
		return report
	}

	chants := domain.NewTable(domain.ChantSchema.Export)
	for _, ch := range c.chants {
		chants.Append(ch.ExportRow())
	}
	if err := c.writer.WriteTable(ctx, chantsPath, chants); err != nil {
		report.ChantsErr = fmt.Errorf("exporting chants file: %w", err)
		logger.Warn("Error exporting chants file: %v", err)
	} else {
		report.ChantsWritten = chants.Len()
	}

	if len(c.sources) == 0 || sourcesPath == "" {
		return report
	}
	sources := domain.NewTable(domain.SourceSchema.Export)
	for _, s := range c.sources {
		sources.Append(s.ExportRow())
	}
	if err := c.writer.WriteTable(ctx, sourcesPath, sources); err != nil {
		report.SourcesErr = fmt.Errorf("exporting sources file: %w", err)
		logger.Warn("Error exporting sources file: %v", err)
	} else {
		report.SourcesWritten = sources.Len()
	}
	return report
}
