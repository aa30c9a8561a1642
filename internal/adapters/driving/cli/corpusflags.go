package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driving"
)

// corpusFlags are the load options shared by commands that open a corpus.
type corpusFlags struct {
	chants     string
	sources    string
	chantsURL  string
	sourcesURL string
	datasetDir string

	editable bool
	check    bool
	create   bool
}

func (f *corpusFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.chants, "chants", "", "chants CSV file (required)")
	flags.StringVar(&f.sources, "sources", "", "sources CSV file")
	flags.StringVar(&f.chantsURL, "chants-url", "", "download chants from this URL when the file is missing")
	flags.StringVar(&f.sourcesURL, "sources-url", "", "download sources from this URL when the file is missing")
	flags.StringVar(&f.datasetDir, "dataset-dir", "", "directory that relative --chants and --sources paths are read from")
	flags.BoolVar(&f.editable, "editable", false, "leave records unlocked")
	flags.BoolVar(&f.check, "check-missing-sources", false, "fail when a chant refers to an unknown source")
	flags.BoolVar(&f.create, "create-missing-sources", false, "create minimal sources for unknown references")
	_ = cmd.MarkFlagRequired("chants")
}

// options merges flags over persisted settings. Boolean flags only win
// when given explicitly.
func (f *corpusFlags) options(cmd *cobra.Command) (domain.CorpusOptions, error) {
	settings := domain.DefaultSettings()
	if settingsService != nil {
		s, err := settingsService.Get()
		if err != nil {
			return domain.CorpusOptions{}, err
		}
		settings = *s
	}

	opts := domain.CorpusOptions{
		ChantsPath:         f.chants,
		SourcesPath:        f.sources,
		ChantsFallbackURL:  f.chantsURL,
		SourcesFallbackURL: f.sourcesURL,
		CorpusSettings:     settings.Corpus,
	}
	flags := cmd.Flags()
	if flags.Changed("editable") {
		opts.Editable = f.editable
	}
	if flags.Changed("check-missing-sources") {
		opts.CheckMissingSources = f.check
	}
	if flags.Changed("create-missing-sources") {
		opts.CreateMissingSources = f.create
	}
	if flags.Changed("dataset-dir") {
		opts.DatasetDir = f.datasetDir
	}
	return opts, nil
}

func (f *corpusFlags) open(cmd *cobra.Command) (driving.Corpus, error) {
	if corpusOpener == nil {
		return nil, errors.New("corpus opener not configured")
	}
	opts, err := f.options(cmd)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return corpusOpener.Open(ctx, opts)
}
