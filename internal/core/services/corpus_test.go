package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cantus-corpus/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
)

func editableCorpus(chants []*domain.Chant, sources []*domain.Source, store *memory.TableStore) *Corpus {
	cfg := CorpusConfig{Editable: true}
	if store != nil {
		cfg.Writer = store
	}
	return NewCorpusFromRecords(chants, sources, cfg)
}

func TestNewCorpus_FromLoader(t *testing.T) {
	store := referentialStore()
	loader, err := NewLoader(context.Background(), domain.CorpusOptions{
		ChantsPath:  "chants.csv",
		SourcesPath: "sources.csv",
	}, store, nil)
	require.NoError(t, err)

	corpus, err := NewCorpus(context.Background(), loader, CorpusConfig{})

	require.NoError(t, err)
	assert.Len(t, corpus.Chants(), 2)
	assert.Len(t, corpus.Sources(), 1)
	assert.False(t, corpus.Editable())
	assert.Empty(t, corpus.History())
}

func TestNewCorpus_LoaderErrorIsUnwrapped(t *testing.T) {
	store := referentialStore()
	loader, err := NewLoader(context.Background(), domain.CorpusOptions{
		ChantsPath:     "chants.csv",
		SourcesPath:    "sources.csv",
		CorpusSettings: domain.CorpusSettings{CheckMissingSources: true},
	}, store, nil)
	require.NoError(t, err)

	_, err = NewCorpus(context.Background(), loader, CorpusConfig{})

	var refErr *domain.ReferentialIntegrityError
	assert.ErrorAs(t, err, &refErr)
}

func TestCorpus_NonEditableLocksEverything(t *testing.T) {
	chants := []*domain.Chant{newChant(t, "c1", "s1", "1---g---3")}
	sources := []*domain.Source{newSource(t, "s1", "12th century")}

	corpus := NewCorpusFromRecords(chants, sources, CorpusConfig{})

	assert.ErrorIs(t, corpus.SetChants(nil), domain.ErrPermission)
	assert.ErrorIs(t, corpus.SetSources(nil), domain.ErrPermission)
	assert.ErrorIs(t, corpus.Chants()[0].Set("incipit", "x"), domain.ErrPermission)
	assert.ErrorIs(t, corpus.Sources()[0].Set("title", "x"), domain.ErrPermission)

	melodies := corpus.Melodies()
	require.Len(t, melodies, 1)
	assert.True(t, melodies[0].Locked())
	err := melodies[0].Rewrite(func(v string) (string, error) { return v, nil })
	assert.ErrorIs(t, err, domain.ErrPermission)
}

func TestCorpus_NonEditableLocksMelodiesReachedThroughChants(t *testing.T) {
	chants := []*domain.Chant{newChant(t, "c1", "s1", "1---g---3")}

	corpus := NewCorpusFromRecords(chants, nil, CorpusConfig{})

	m := corpus.Chants()[0].Melody()
	require.NotNil(t, m)
	assert.True(t, m.Locked())
	err := m.Rewrite(func(string) (string, error) { return "X", nil })
	assert.ErrorIs(t, err, domain.ErrPermission)
	assert.Equal(t, "1---g---3", m.Volpiano())
}

func TestCorpus_EditableAllowsChanges(t *testing.T) {
	chants := []*domain.Chant{newChant(t, "c1", "s1", "1---g---3")}
	corpus := editableCorpus(chants, nil, nil)

	require.NoError(t, corpus.Chants()[0].Set("incipit", "Salve"))
	assert.False(t, corpus.Melodies()[0].Locked())

	replacement := []*domain.Chant{newChant(t, "c9", "s9", "")}
	require.NoError(t, corpus.SetChants(replacement))
	assert.Equal(t, []string{"c9"}, chantLinks(corpus.Chants()))
	assert.Empty(t, corpus.Melodies())
	assert.NotNil(t, corpus.Sources())
}

func TestCorpus_MelodyFor(t *testing.T) {
	corpus := NewCorpusFromRecords([]*domain.Chant{
		newChant(t, "c1", "s1", "1---g---3"),
		newChant(t, "c2", "s1", ""),
	}, nil, CorpusConfig{})

	m, ok := corpus.MelodyFor("c1")
	require.True(t, ok)
	assert.Equal(t, "1---g---3", m.Volpiano())
	assert.True(t, m.Locked())

	_, ok = corpus.MelodyFor("c2")
	assert.False(t, ok)
}

func TestCorpus_DropDuplicateChants(t *testing.T) {
	first := newChant(t, "c1", "s1", "")
	last := newChant(t, "c1", "s2", "1---g---3")
	corpus := NewCorpusFromRecords([]*domain.Chant{first, newChant(t, "c2", "s1", ""), last}, nil, CorpusConfig{})

	require.NoError(t, corpus.DropDuplicateChants())

	assert.Equal(t, []string{"c2", "c1"}, chantLinks(corpus.Chants()))
	assert.Same(t, last, corpus.Chants()[1])
	m, ok := corpus.MelodyFor("c1")
	require.True(t, ok)
	assert.Equal(t, "c1", m.ChantLink())
}

func TestCorpus_DropDuplicateSources(t *testing.T) {
	corpus := NewCorpusFromRecords(nil, []*domain.Source{
		newSource(t, "s1", ""), newSource(t, "s2", ""), newSource(t, "s1", ""),
	}, CorpusConfig{})

	require.NoError(t, corpus.DropDuplicateSources())

	assert.Equal(t, []string{"s2", "s1"}, srcLinks(corpus.Sources()))
}

func TestCorpus_KeepMelodicChants(t *testing.T) {
	corpus := NewCorpusFromRecords([]*domain.Chant{
		newChant(t, "c1", "s1", ""),
		newChant(t, "c2", "s1", "1---g---3"),
	}, nil, CorpusConfig{})

	require.NoError(t, corpus.KeepMelodicChants())

	assert.Equal(t, []string{"c2"}, chantLinks(corpus.Chants()))
	for _, c := range corpus.Chants() {
		assert.True(t, c.HasMelody())
	}
}

func TestCorpus_DropEmptySources(t *testing.T) {
	corpus := NewCorpusFromRecords(
		[]*domain.Chant{newChant(t, "c1", "s2", "")},
		[]*domain.Source{newSource(t, "s1", ""), newSource(t, "s2", "")},
		CorpusConfig{},
	)

	require.NoError(t, corpus.DropEmptySources())

	assert.Equal(t, []string{"s2"}, srcLinks(corpus.Sources()))
}

func TestCorpus_DropSmallSourcesData(t *testing.T) {
	corpus := NewCorpusFromRecords(
		[]*domain.Chant{
			newChant(t, "a1", "A", ""),
			newChant(t, "a2", "A", ""),
			newChant(t, "b1", "B", ""),
			newChant(t, "a3", "A", ""),
		},
		[]*domain.Source{newSource(t, "A", ""), newSource(t, "B", ""), newSource(t, "C", "")},
		CorpusConfig{},
	)

	require.NoError(t, corpus.DropSmallSourcesData(2))

	assert.Equal(t, []string{"A"}, srcLinks(corpus.Sources()))
	assert.Equal(t, []string{"a1", "a2", "a3"}, chantLinks(corpus.Chants()))
	assert.Equal(t, "drop_small_sources_data\nmin_chants: 2", corpus.HistoryString())
}

func TestCorpus_DropSmallSourcesData_NonPositiveKeepsAllChants(t *testing.T) {
	for _, minChants := range []int{0, -3} {
		t.Run(fmt.Sprintf("min_chants=%d", minChants), func(t *testing.T) {
			corpus := NewCorpusFromRecords(
				[]*domain.Chant{
					newChant(t, "a1", "A", ""),
					newChant(t, "b1", "B", ""),
					newChant(t, "a2", "A", ""),
				},
				[]*domain.Source{newSource(t, "A", ""), newSource(t, "B", ""), newSource(t, "C", "")},
				CorpusConfig{},
			)

			require.NoError(t, corpus.DropSmallSourcesData(minChants))

			assert.Equal(t, []string{"a1", "b1", "a2"}, chantLinks(corpus.Chants()))
			// C has no chants, so it has no count to compare against.
			assert.Equal(t, []string{"A", "B"}, srcLinks(corpus.Sources()))
		})
	}
}

func TestCorpus_ApplyFilter(t *testing.T) {
	corpus := NewCorpusFromRecords(
		[]*domain.Chant{newChant(t, "c1", "s1", ""), newChant(t, "c2", "s2", "")},
		[]*domain.Source{newSource(t, "s1", "12th century"), newSource(t, "s2", "15th century")},
		CorpusConfig{},
	)
	filter := domain.NewFilter("early")
	require.NoError(t, filter.AddValueInclude("numeric_century", "12"))

	require.NoError(t, corpus.ApplyFilter(filter))

	assert.Equal(t, []string{"c1"}, chantLinks(corpus.Chants()))
	assert.Equal(t, []string{"s1"}, srcLinks(corpus.Sources()))
	history := corpus.History()
	require.Len(t, history, 1)
	assert.Equal(t, "apply_filter", history[0].Operation())
	assert.Equal(t, filter.String(), history[0].Parameters())
}

func TestCorpus_ApplyFilter_NilIsRejected(t *testing.T) {
	corpus := NewCorpusFromRecords(nil, nil, CorpusConfig{})

	err := corpus.ApplyFilter(nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, corpus.History())
}

func TestCorpus_TransformMelodies(t *testing.T) {
	corpus := editableCorpus([]*domain.Chant{
		newChant(t, "c1", "s1", "1---g---3"),
	}, nil, nil)
	pipeline := stubPipeline{
		names: []string{"clean", "strip_boundaries"},
		fn:    func(v string) (string, error) { return "g", nil },
	}

	require.NoError(t, corpus.TransformMelodies(context.Background(), pipeline))

	m, _ := corpus.MelodyFor("c1")
	assert.Equal(t, "g", m.Volpiano())
	assert.Equal(t, "1---g---3", m.RawVolpiano())
	assert.Equal(t, "transform_melodies\ntransforms: clean, strip_boundaries", corpus.HistoryString())
}

func TestCorpus_TransformMelodies_PassesChantText(t *testing.T) {
	withText := newChant(t, "c1", "s1", "1---g---3")
	require.NoError(t, withText.Set("full_text", "Ave maria E u o u a e"))
	corpus := editableCorpus([]*domain.Chant{
		withText,
		newChant(t, "c2", "s1", ""),
		newChant(t, "c3", "s1", "1---h---3"),
	}, nil, nil)
	pipeline := &textRecordingPipeline{}

	require.NoError(t, corpus.TransformMelodies(context.Background(), pipeline))

	assert.Equal(t, []string{"Ave maria E u o u a e", ""}, pipeline.texts)
}

func TestCorpus_TransformMelodies_NotEditable(t *testing.T) {
	corpus := NewCorpusFromRecords([]*domain.Chant{
		newChant(t, "c1", "s1", "1---g---3"),
	}, nil, CorpusConfig{})
	pipeline := stubPipeline{names: []string{"clean"}, fn: func(v string) (string, error) { return v, nil }}

	err := corpus.TransformMelodies(context.Background(), pipeline)

	assert.ErrorIs(t, err, domain.ErrPermission)
	assert.Empty(t, corpus.History())
}

func TestCorpus_TransformMelodies_Failure(t *testing.T) {
	corpus := editableCorpus([]*domain.Chant{
		newChant(t, "c1", "s1", "1---g---3"),
	}, nil, nil)
	boom := errors.New("bad notation")
	pipeline := stubPipeline{names: []string{"clean"}, fn: func(string) (string, error) { return "", boom }}

	err := corpus.TransformMelodies(context.Background(), pipeline)

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, corpus.History())
}

func TestCorpus_History(t *testing.T) {
	corpus := NewCorpusFromRecords(nil, nil, CorpusConfig{})
	corpus.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	ids := []string{"id-1", "id-2"}
	corpus.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	assert.Equal(t, "", corpus.HistoryString())

	require.NoError(t, corpus.DropDuplicateChants())
	require.NoError(t, corpus.DropEmptySources())

	assert.Equal(t, "drop_duplicate_chants\n{}\ndrop_empty_sources\n{}", corpus.HistoryString())
	history := corpus.History()
	require.Len(t, history, 2)
	assert.Equal(t, "id-1", history[0].ID())
	assert.Equal(t, "id-2", history[1].ID())
	assert.Equal(t, 2024, history[0].RecordedAt().Year())

	// History returns a copy.
	history[0] = domain.HistoryEntry{}
	assert.Equal(t, "drop_duplicate_chants", corpus.History()[0].Operation())
}

func TestCorpus_Export(t *testing.T) {
	store := memory.NewTableStore()
	corpus := editableCorpus(
		[]*domain.Chant{newChant(t, "c1", "s1", "1---g---3")},
		[]*domain.Source{newSource(t, "s1", "12th century")},
		store,
	)

	report := corpus.Export(context.Background(), "out/chants.csv", "out/sources.csv")

	require.NoError(t, report.Err())
	assert.Equal(t, 1, report.ChantsWritten)
	assert.Equal(t, 1, report.SourcesWritten)

	chants, ok := store.Table("out/chants.csv")
	require.True(t, ok)
	assert.Equal(t, domain.ChantSchema.Export, chants.Columns)
	assert.Equal(t, "c1", chants.Rows[0]["chantlink"])
	assert.NotContains(t, chants.Columns, "rite")

	sources, ok := store.Table("out/sources.csv")
	require.True(t, ok)
	assert.Equal(t, "12", sources.Rows[0]["numeric_century"])
}

func TestCorpus_Export_SkipsEmptySources(t *testing.T) {
	store := memory.NewTableStore()
	corpus := editableCorpus([]*domain.Chant{newChant(t, "c1", "s1", "")}, nil, store)

	report := corpus.Export(context.Background(), "chants.csv", "sources.csv")

	require.NoError(t, report.Err())
	assert.False(t, store.Exists("sources.csv"))
}

func TestCorpus_Export_FailuresAreIndependent(t *testing.T) {
	store := memory.NewTableStore()
	boom := errors.New("read-only file system")
	store.FailWrites("chants.csv", boom)
	corpus := editableCorpus(
		[]*domain.Chant{newChant(t, "c1", "s1", "")},
		[]*domain.Source{newSource(t, "s1", "")},
		store,
	)

	report := corpus.Export(context.Background(), "chants.csv", "sources.csv")

	assert.ErrorIs(t, report.ChantsErr, boom)
	assert.NoError(t, report.SourcesErr)
	assert.Equal(t, 1, report.SourcesWritten)
	assert.True(t, store.Exists("sources.csv"))
	assert.ErrorIs(t, report.Err(), boom)
}

func TestCorpus_Export_NoWriter(t *testing.T) {
	corpus := NewCorpusFromRecords(nil, []*domain.Source{newSource(t, "s1", "")}, CorpusConfig{})

	report := corpus.Export(context.Background(), "chants.csv", "sources.csv")

	assert.ErrorIs(t, report.ChantsErr, domain.ErrConfiguration)
	assert.ErrorIs(t, report.SourcesErr, domain.ErrConfiguration)
}
