// Package ingest runs the document indexing pipeline: extract, chunk, embed,
// create-or-append, persist.
package ingest

import (
	"context"
	"log"
	"path/filepath"

	"github.com/olamideoke/resumerag/internal/chunker"
	"github.com/olamideoke/resumerag/internal/domain"
	"github.com/olamideoke/resumerag/internal/vectorstore"
)

// Extractor turns a file path into ordered pages of plain text.
type Extractor func(path string) ([]domain.Page, error)

// Result reports what one ingestion call added.
type Result struct {
	ChunksAdded int    `json:"chunks_added"`
	SourceFile  string `json:"source_file"`
}

// Pipeline is append-only: it combines this call's chunks with whatever
// corpus already exists at dir. Callers wanting single-document replacement
// must clear the corpus first (see corpus.Manager, which enforces this).
type Pipeline struct {
	extract  Extractor
	splitter *chunker.Splitter
	adapter  *vectorstore.Adapter
	dir      string
}

func NewPipeline(extract Extractor, splitter *chunker.Splitter, adapter *vectorstore.Adapter, dir string) *Pipeline {
	return &Pipeline{extract: extract, splitter: splitter, adapter: adapter, dir: dir}
}

// Ingest indexes the document at filePath into the corpus at the pipeline's
// directory. The on-disk corpus is only touched after every chunk of this
// call embedded successfully, so a failed call leaves it in its pre-call
// state. Errors are the taxonomy of the domain package: ExtractionError,
// ErrEmptyContent, or IndexingError.
func (p *Pipeline) Ingest(ctx context.Context, filePath string) (Result, error) {
	pages, err := p.extract(filePath)
	if err != nil {
		return Result{}, err
	}

	chunks, err := p.splitter.Chunk(pages)
	if err != nil {
		return Result{}, err
	}

	store, err := p.adapter.Load(p.dir)
	if err != nil {
		return Result{}, &domain.IndexingError{Op: "load corpus", Err: err}
	}
	if store == nil {
		store, err = p.adapter.CreateFrom(ctx, chunks)
		if err != nil {
			return Result{}, &domain.IndexingError{Op: "embed chunks", Err: err}
		}
	} else if err := p.adapter.AddChunks(ctx, store, chunks); err != nil {
		return Result{}, &domain.IndexingError{Op: "embed chunks", Err: err}
	}

	if err := p.adapter.Persist(store, p.dir); err != nil {
		return Result{}, &domain.IndexingError{Op: "persist corpus", Err: err}
	}

	log.Printf("resume ingested: %d chunks", len(chunks))
	return Result{ChunksAdded: len(chunks), SourceFile: filepath.Base(filePath)}, nil
}
