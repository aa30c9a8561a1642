package services

import (
	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
	"github.com/custodia-labs/cantus-corpus/internal/logger"
)

// FilterResult holds the records that survived a filter.
type FilterResult struct {
	Chants   []*domain.Chant
	Sources  []*domain.Source
	Melodies []*domain.Melody

	// Applied is false when the filter was empty and the inputs were
	// returned unchanged.
	Applied bool

	// DiscardedSources lists the srclinks of sources the filter rejected.
	DiscardedSources []string
}

// ApplyFilter partitions the collections by filter. Sources are filtered
// first; chants of discarded sources are dropped regardless of chant
// constraints, and melodies follow their chants. melodies may be nil, in
// which case the result carries nil melodies. Input order is preserved.
func ApplyFilter(
	filter *domain.Filter,
	chants []*domain.Chant,
	sources []*domain.Source,
	melodies []*domain.Melody,
) FilterResult {
	if filter == nil || filter.IsEmpty() {
		logger.Info("No filtering applied because no filtration values were present")
		return FilterResult{Chants: chants, Sources: sources, Melodies: melodies}
	}

	result := FilterResult{Applied: true}

	discarded := make(map[string]struct{})
	sourceFields := filter.ConstrainedFields(domain.IsSourceFilterField)
	if len(sourceFields) > 0 {
		result.Sources = make([]*domain.Source, 0, len(sources))
		for _, s := range sources {
			if filter.Accepts(sourceFields, s.Get) {
				result.Sources = append(result.Sources, s)
				continue
			}
			if _, ok := discarded[s.SrcLink()]; !ok {
				discarded[s.SrcLink()] = struct{}{}
				result.DiscardedSources = append(result.DiscardedSources, s.SrcLink())
			}
		}
	} else {
		result.Sources = sources
	}

	chantFields := filter.ConstrainedFields(domain.IsChantFilterField)
	if len(chantFields) > 0 || len(discarded) > 0 {
		result.Chants = make([]*domain.Chant, 0, len(chants))
		for _, c := range chants {
			if _, gone := discarded[c.SrcLink()]; gone {
				continue
			}
			if filter.Accepts(chantFields, c.Get) {
				result.Chants = append(result.Chants, c)
			}
		}
	} else {
		result.Chants = chants
	}

	if melodies != nil {
		melodic := make(map[string]struct{})
		for _, c := range result.Chants {
			if c.HasMelody() {
				melodic[c.ChantLink()] = struct{}{}
			}
		}
		result.Melodies = make([]*domain.Melody, 0, len(melodies))
		for _, m := range melodies {
			if m == nil {
				continue
			}
			if _, ok := melodic[m.ChantLink()]; ok {
				result.Melodies = append(result.Melodies, m)
			}
		}
	}

	logger.Debug("Filter %q kept %d/%d chants and %d/%d sources",
		filter.Name(), len(result.Chants), len(chants), len(result.Sources), len(sources))
	return result
}
