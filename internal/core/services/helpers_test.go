package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cantus-corpus/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
)

var chantColumns = []string{
	"cantus_id", "incipit", "siglum", "srclink", "chantlink", "folio", "db",
	"genre", "feast", "mode", "melody",
}

// chantRow builds a row in chantColumns order.
func chantRow(chantLink, srcLink, siglum, genre, volpiano string) []string {
	return []string{
		"001234", "Ave maria", siglum, srcLink, chantLink, "12r", "CD",
		genre, "Annunciatio", "1", volpiano,
	}
}

var sourceColumns = []string{"title", "srclink", "siglum", "century", "provenance", "cursus"}

func sourceRow(srcLink, siglum, century string) []string {
	return []string{"Antiphonale " + siglum, srcLink, siglum, century, "Paris", "Monastic"}
}

func table(columns []string, rows ...[]string) *domain.Table {
	t := domain.NewTable(columns)
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func newChant(t *testing.T, chantLink, srcLink, volpiano string) *domain.Chant {
	t.Helper()
	return newChantWithGenre(t, chantLink, srcLink, "A", volpiano)
}

func newChantWithGenre(t *testing.T, chantLink, srcLink, genre, volpiano string) *domain.Chant {
	t.Helper()
	c, err := domain.NewChant(domain.ChantFields{
		CantusID:  "001234",
		Incipit:   "Ave maria",
		Siglum:    "S-" + srcLink,
		SrcLink:   srcLink,
		ChantLink: chantLink,
		Folio:     "1r",
		DB:        "CD",
		Genre:     genre,
		Melody:    volpiano,
	})
	require.NoError(t, err)
	return c
}

func newSource(t *testing.T, srcLink, century string) *domain.Source {
	t.Helper()
	s, err := domain.NewSource(domain.SourceFields{
		Title:          "Title " + srcLink,
		SrcLink:        srcLink,
		Siglum:         "S-" + srcLink,
		Century:        century,
		NumericCentury: domain.NumericCenturyPtr(century),
	})
	require.NoError(t, err)
	return s
}

func chantLinks(chants []*domain.Chant) []string {
	out := make([]string, len(chants))
	for i, c := range chants {
		out[i] = c.ChantLink()
	}
	return out
}

func srcLinks(sources []*domain.Source) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = s.SrcLink()
	}
	return out
}

// stubFetcher stores a fixed table at the target path of every fetch.
type stubFetcher struct {
	store *memory.TableStore
	table *domain.Table
	err   error
	urls  []string
}

func (f *stubFetcher) Fetch(ctx context.Context, url, target string) error {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return f.err
	}
	return f.store.WriteTable(ctx, target, f.table)
}

// stubPipeline applies fn and reports names.
type stubPipeline struct {
	names []string
	fn    func(string) (string, error)
}

func (p stubPipeline) Names() []string { return p.names }

func (p stubPipeline) Apply(_ context.Context, v string) (string, error) { return p.fn(v) }

// textRecordingPipeline records the chant text seen for every melody.
type textRecordingPipeline struct {
	texts []string
}

func (p *textRecordingPipeline) Names() []string { return []string{"record"} }

func (p *textRecordingPipeline) Apply(ctx context.Context, v string) (string, error) {
	text, _ := domain.ChantTextFrom(ctx)
	p.texts = append(p.texts, text)
	return v, nil
}
