package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
	"github.com/custodia-labs/cantus-corpus/internal/logger"
)

// sourceRef is a (srclink, siglum) pair observed in chant records.
type sourceRef struct {
	srcLink string
	siglum  string
}

// Loader reads chant and source tables into validated entities.
type Loader struct {
	opts    domain.CorpusOptions
	reader  driven.TableReader
	fetcher driven.Fetcher
}

// NewLoader creates a loader and makes sure every configured input exists.
// A missing input is fetched from its fallback URL when one is configured;
// otherwise it fails with domain.ErrConfiguration before any row is read.
// fetcher may be nil.
func NewLoader(
	ctx context.Context,
	opts domain.CorpusOptions,
	reader driven.TableReader,
	fetcher driven.Fetcher,
) (*Loader, error) {
	if reader == nil {
		return nil, fmt.Errorf("%w: no table reader configured", domain.ErrConfiguration)
	}
	if opts.ChantsPath == "" {
		return nil, fmt.Errorf("%w: chants path is required", domain.ErrConfiguration)
	}

	if opts.DatasetDir != "" {
		opts.ChantsPath = inDataset(opts.DatasetDir, opts.ChantsPath)
		opts.SourcesPath = inDataset(opts.DatasetDir, opts.SourcesPath)
	}

	l := &Loader{opts: opts, reader: reader, fetcher: fetcher}
	if err := l.ensure(ctx, "chants", opts.ChantsPath, opts.ChantsFallbackURL); err != nil {
		return nil, err
	}
	if opts.SourcesPath != "" {
		if err := l.ensure(ctx, "sources", opts.SourcesPath, opts.SourcesFallbackURL); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// inDataset places a relative path under dir.
func inDataset(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func (l *Loader) ensure(ctx context.Context, what, path, url string) error {
	if l.reader.Exists(path) {
		return nil
	}
	if url == "" || l.fetcher == nil {
		return fmt.Errorf("%w: non-existent %s file: %s", domain.ErrConfiguration, what, path)
	}

	logger.Info("Downloading %s file from %s", what, url)
	if err := l.fetcher.Fetch(ctx, url, path); err != nil {
		return fmt.Errorf("%w: downloading %s file from %s: %v", domain.ErrConfiguration, what, url, err)
	}
	if !l.reader.Exists(path) {
		return fmt.Errorf("%w: %s file still missing after download: %s", domain.ErrConfiguration, what, path)
	}
	logger.Debug("Download complete: %s", path)
	return nil
}

// Load reads chants and, if configured, sources. The first invalid record
// aborts the whole load.
func (l *Loader) Load(ctx context.Context) ([]*domain.Chant, []*domain.Source, error) {
	logger.Section("Loading")
	logger.Info("Loading chants and sources")

	table, err := l.reader.ReadTable(ctx, l.opts.ChantsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading chants %s: %w", l.opts.ChantsPath, err)
	}
	chants, refs, err := buildChants(table)
	if err != nil {
		return nil, nil, fmt.Errorf("loading chants %s: %w", l.opts.ChantsPath, err)
	}
	logger.Debug("Loaded %d chants referring to %d sources", len(chants), len(refs))

	sources := []*domain.Source{}
	if l.opts.SourcesPath != "" {
		table, err := l.reader.ReadTable(ctx, l.opts.SourcesPath)
		if err != nil {
			return nil, nil, fmt.Errorf("reading sources %s: %w", l.opts.SourcesPath, err)
		}
		sources, err = buildSources(table)
		if err != nil {
			return nil, nil, fmt.Errorf("loading sources %s: %w", l.opts.SourcesPath, err)
		}
		logger.Debug("Loaded %d sources", len(sources))
	}

	// Creation runs first so that checking alongside it always passes.
	if l.opts.CreateMissingSources {
		sources = addMissingSources(refs, sources)
	}
	if l.opts.CheckMissingSources {
		if err := checkSources(refs, sources); err != nil {
			return nil, nil, err
		}
	}

	logger.Info("Data loaded: %d chants, %d sources", len(chants), len(sources))
	return chants, sources, nil
}

// requireColumns fails on the header line when a mandatory column is absent.
func requireColumns(table *domain.Table, schema domain.Schema) error {
	for _, field := range schema.Mandatory {
		if !table.HasColumn(field) {
			return &domain.SchemaValidationError{Kind: schema.Kind, Row: 1, Field: field}
		}
	}
	return nil
}

// requireValues fails on the first mandatory field without a usable value.
func requireValues(row domain.Row, index int, schema domain.Schema) error {
	for _, field := range schema.Mandatory {
		if _, ok := row.Value(field); !ok {
			return &domain.SchemaValidationError{Kind: schema.Kind, Row: domain.RowNumber(index), Field: field}
		}
	}
	return nil
}

func buildChants(table *domain.Table) ([]*domain.Chant, []sourceRef, error) {
	schema := domain.ChantSchema
	if err := requireColumns(table, schema); err != nil {
		return nil, nil, err
	}

	chants := make([]*domain.Chant, 0, table.Len())
	var refs []sourceRef
	seen := make(map[sourceRef]struct{})

	for i, row := range table.Rows {
		if err := requireValues(row, i, schema); err != nil {
			return nil, nil, err
		}

		var fields domain.ChantFields
		for _, field := range schema.Mandatory {
			v, _ := row.Value(field)
			if err := fields.Set(field, v); err != nil {
				return nil, nil, fmt.Errorf("chants row %d: %w", domain.RowNumber(i), err)
			}
		}
		for _, field := range schema.Optional {
			if v, ok := row.Value(field); ok {
				if err := fields.Set(field, v); err != nil {
					return nil, nil, fmt.Errorf("chants row %d: %w", domain.RowNumber(i), err)
				}
			}
		}

		chant, err := domain.NewChant(fields)
		if err != nil {
			return nil, nil, fmt.Errorf("chants row %d: %w", domain.RowNumber(i), err)
		}
		chants = append(chants, chant)

		ref := sourceRef{srcLink: fields.SrcLink, siglum: fields.Siglum}
		if _, ok := seen[ref]; !ok {
			seen[ref] = struct{}{}
			refs = append(refs, ref)
		}
	}
	return chants, refs, nil
}

func buildSources(table *domain.Table) ([]*domain.Source, error) {
	schema := domain.SourceSchema
	if err := requireColumns(table, schema); err != nil {
		return nil, err
	}
	deriveCentury := !table.HasColumn(domain.FieldNumericCentury)

	sources := make([]*domain.Source, 0, table.Len())
	for i, row := range table.Rows {
		if err := requireValues(row, i, schema); err != nil {
			return nil, err
		}

		var fields domain.SourceFields
		for _, field := range schema.Mandatory {
			v, _ := row.Value(field)
			if err := fields.Set(field, v); err != nil {
				return nil, fmt.Errorf("sources row %d: %w", domain.RowNumber(i), err)
			}
		}
		for _, field := range schema.Optional {
			v, ok := row.Value(field)
			if !ok {
				continue
			}
			if err := fields.Set(field, v); err != nil {
				logger.Warn("Sources row %d: ignoring unreadable %s %q", domain.RowNumber(i), field, v)
			}
		}

		if deriveCentury && fields.Century != "" {
			fields.NumericCentury = domain.NumericCenturyPtr(fields.Century)
			if fields.NumericCentury == nil {
				logger.Debug("Sources row %d: no numeric century in %q", domain.RowNumber(i), fields.Century)
			}
		}

		source, err := domain.NewSource(fields)
		if err != nil {
			return nil, fmt.Errorf("sources row %d: %w", domain.RowNumber(i), err)
		}
		sources = append(sources, source)
	}
	return sources, nil
}

func srcLinkSet(sources []*domain.Source) map[string]struct{} {
	links := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		links[s.SrcLink()] = struct{}{}
	}
	return links
}

// addMissingSources appends a minimal source for each reference without one.
func addMissingSources(refs []sourceRef, sources []*domain.Source) []*domain.Source {
	logger.Debug("Creating missing sources")
	existing := srcLinkSet(sources)
	created := 0
	for _, ref := range refs {
		if _, ok := existing[ref.srcLink]; ok {
			continue
		}
		sources = append(sources, domain.MinimalSource(ref.srcLink, ref.siglum))
		existing[ref.srcLink] = struct{}{}
		created++
	}
	logger.Info("%d missing sources created", created)
	return sources
}

// checkSources fails on the first reference without a matching source.
func checkSources(refs []sourceRef, sources []*domain.Source) error {
	logger.Debug("Checking presence of sources")
	existing := srcLinkSet(sources)
	for _, ref := range refs {
		if _, ok := existing[ref.srcLink]; !ok {
			return &domain.ReferentialIntegrityError{SrcLink: ref.srcLink, Siglum: ref.siglum}
		}
	}
	return nil
}
