package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
)

// Operation is a curation step run through Corpus.Run.
// Each run is recorded in the corpus history under Name.
type Operation interface {
	// Name is the operation name recorded in history.
	Name() string

	parameters(c *Corpus) string
	apply(ctx context.Context, c *Corpus) error
}

// DropDuplicateChants keeps exactly one chant per chantlink, the last one
// in collection order.
type DropDuplicateChants struct{}

// Name implements Operation.
func (DropDuplicateChants) Name() string { return "drop_duplicate_chants" }

func (DropDuplicateChants) parameters(*Corpus) string { return domain.NoParameters }

func (DropDuplicateChants) apply(_ context.Context, c *Corpus) error {
	c.chants = keepLastByKey(c.chants, (*domain.Chant).ChantLink)
	return nil
}

// DropDuplicateSources keeps exactly one source per srclink, the last one
// in collection order.
type DropDuplicateSources struct{}

// Name implements Operation.
func (DropDuplicateSources) Name() string { return "drop_duplicate_sources" }

func (DropDuplicateSources) parameters(*Corpus) string { return domain.NoParameters }

func (DropDuplicateSources) apply(_ context.Context, c *Corpus) error {
	c.sources = keepLastByKey(c.sources, (*domain.Source).SrcLink)
	return nil
}

// KeepMelodicChants drops chants without a melody.
type KeepMelodicChants struct{}

// Name implements Operation.
func (KeepMelodicChants) Name() string { return "keep_melodic_chants" }

func (KeepMelodicChants) parameters(*Corpus) string { return domain.NoParameters }

func (KeepMelodicChants) apply(_ context.Context, c *Corpus) error {
	kept := make([]*domain.Chant, 0, len(c.chants))
	for _, ch := range c.chants {
		if ch.HasMelody() {
			kept = append(kept, ch)
		}
	}
	c.chants = kept
	return nil
}

// DropEmptySources drops sources no chant refers to.
type DropEmptySources struct{}

// Name implements Operation.
func (DropEmptySources) Name() string { return "drop_empty_sources" }

func (DropEmptySources) parameters(*Corpus) string { return domain.NoParameters }

func (DropEmptySources) apply(_ context.Context, c *Corpus) error {
	used := make(map[string]struct{}, len(c.sources))
	for _, ch := range c.chants {
		used[ch.SrcLink()] = struct{}{}
	}
	kept := make([]*domain.Source, 0, len(c.sources))
	for _, s := range c.sources {
		if _, ok := used[s.SrcLink()]; ok {
			kept = append(kept, s)
		}
	}
	c.sources = kept
	return nil
}

// DropSmallSourcesData drops sources with fewer than MinChants chants,
// together with their chants.
type DropSmallSourcesData struct {
	MinChants int
}

// Name implements Operation.
func (DropSmallSourcesData) Name() string { return "drop_small_sources_data" }

func (o DropSmallSourcesData) parameters(*Corpus) string {
	return fmt.Sprintf("min_chants: %d", o.MinChants)
}

func (o DropSmallSourcesData) apply(_ context.Context, c *Corpus) error {
	counts := make(map[string]int)
	for _, ch := range c.chants {
		counts[ch.SrcLink()]++
	}
	keep := make(map[string]struct{}, len(counts))
	for link, n := range counts {
		if n >= o.MinChants {
			keep[link] = struct{}{}
		}
	}

	sources := make([]*domain.Source, 0, len(c.sources))
	for _, s := range c.sources {
		if _, ok := keep[s.SrcLink()]; ok {
			sources = append(sources, s)
		}
	}
	chants := make([]*domain.Chant, 0, len(c.chants))
	for _, ch := range c.chants {
		if _, ok := keep[ch.SrcLink()]; ok {
			chants = append(chants, ch)
		}
	}
	c.sources, c.chants = sources, chants
	return nil
}

// ApplyFilterOp filters the corpus collections in place.
type ApplyFilterOp struct {
	Filter *domain.Filter
}

// Name implements Operation.
func (ApplyFilterOp) Name() string { return "apply_filter" }

func (o ApplyFilterOp) parameters(c *Corpus) string {
	return c.renderFilter(o.Filter)
}

func (o ApplyFilterOp) apply(_ context.Context, c *Corpus) error {
	if o.Filter == nil {
		return fmt.Errorf("%w: nil filter", domain.ErrInvalidInput)
	}
	result := ApplyFilter(o.Filter, c.chants, c.sources, nil)
	c.chants, c.sources = result.Chants, result.Sources
	return nil
}

// TransformMelodies rewrites the working notation of every melody. The
// pipeline sees the chant's full text through domain.ChantTextFrom.
// Melodies of a non-editable corpus are locked, so it needs an editable one.
type TransformMelodies struct {
	Pipeline driven.MelodyPipeline
}

// Name implements Operation.
func (TransformMelodies) Name() string { return "transform_melodies" }

func (o TransformMelodies) parameters(*Corpus) string {
	if o.Pipeline == nil {
		return domain.NoParameters
	}
	return "transforms: " + strings.Join(o.Pipeline.Names(), ", ")
}

func (o TransformMelodies) apply(ctx context.Context, c *Corpus) error {
	if o.Pipeline == nil {
		return fmt.Errorf("%w: nil melody pipeline", domain.ErrInvalidInput)
	}
	if !c.editable {
		return fmt.Errorf("%w: corpus is not editable, cannot rewrite melodies", domain.ErrPermission)
	}
	for _, ch := range c.chants {
		m := ch.Melody()
		if m == nil {
			continue
		}
		chantCtx := domain.WithChantText(ctx, ch.Fields().FullText)
		err := m.Rewrite(func(v string) (string, error) {
			return o.Pipeline.Apply(chantCtx, v)
		})
		if err != nil {
			return fmt.Errorf("melody of %s: %w", m.ChantLink(), err)
		}
	}
	return nil
}

// keepLastByKey keeps the last item for every key, preserving order.
func keepLastByKey[T any](items []T, key func(T) string) []T {
	last := make(map[string]int, len(items))
	for i, it := range items {
		last[key(it)] = i
	}
	kept := make([]T, 0, len(last))
	for i, it := range items {
		if last[key(it)] == i {
			kept = append(kept, it)
		}
	}
	return kept
}
