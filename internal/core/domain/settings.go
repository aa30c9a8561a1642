package domain

import "time"

// Settings are the persisted defaults applied when a corpus is opened.
// Command-line flags override them per invocation.
type Settings struct {
	Corpus CorpusSettings
	Fetch  FetchSettings
}

// CorpusSettings control loading and locking.
type CorpusSettings struct {
	// Editable leaves entities unlocked after load.
	Editable bool

	// CheckMissingSources fails the load when a chant refers to an unknown source.
	CheckMissingSources bool

	// CreateMissingSources synthesises minimal sources for unknown references.
	CreateMissingSources bool

	// DatasetDir resolves relative input paths, so a dataset can be named
	// by its file names alone.
	DatasetDir string
}

// FetchSettings control the fallback download of missing input files.
type FetchSettings struct {
	Retries           int
	Timeout           time.Duration
	RequestsPerSecond float64
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Corpus: CorpusSettings{},
		Fetch: FetchSettings{
			Retries:           3,
			Timeout:           60 * time.Second,
			RequestsPerSecond: 2,
		},
	}
}

// CorpusOptions describe where a corpus is loaded from and how.
type CorpusOptions struct {
	ChantsPath         string
	SourcesPath        string
	ChantsFallbackURL  string
	SourcesFallbackURL string
	CorpusSettings
}
