package services

import (
	"context"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driving"
)

// Ensure CorpusOpener implements the interface.
var _ driving.CorpusOpener = (*CorpusOpener)(nil)

// CorpusOpener wires loaders and corpora to their adapters.
type CorpusOpener struct {
	reader  driven.TableReader
	writer  driven.TableWriter
	fetcher driven.Fetcher
	codec   driven.FilterCodec
}

// NewCorpusOpener creates an opener. fetcher and codec may be nil.
func NewCorpusOpener(
	reader driven.TableReader,
	writer driven.TableWriter,
	fetcher driven.Fetcher,
	codec driven.FilterCodec,
) *CorpusOpener {
	return &CorpusOpener{
		reader:  reader,
		writer:  writer,
		fetcher: fetcher,
		codec:   codec,
	}
}

// Open loads a corpus described by opts.
func (o *CorpusOpener) Open(ctx context.Context, opts domain.CorpusOptions) (driving.Corpus, error) {
	loader, err := NewLoader(ctx, opts, o.reader, o.fetcher)
	if err != nil {
		return nil, err
	}
	corpus, err := NewCorpus(ctx, loader, CorpusConfig{
		Editable:    opts.Editable,
		Writer:      o.writer,
		FilterCodec: o.codec,
	})
	if err != nil {
		return nil, err
	}
	return corpus, nil
}
