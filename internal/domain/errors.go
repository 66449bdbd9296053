package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyContent means no chunks survived filtering. Fatal to the ingestion
// that raised it; the corpus is left untouched.
var ErrEmptyContent = errors.New("no valid resume content found")

// ExtractionError wraps a source document that could not be read or parsed.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// IndexingError wraps an embedding or store failure during ingestion. The
// corpus stays in its pre-call state because persist only happens on success.
type IndexingError struct {
	Op  string
	Err error
}

func (e *IndexingError) Error() string {
	return fmt.Sprintf("indexing: %s: %v", e.Op, e.Err)
}

func (e *IndexingError) Unwrap() error { return e.Err }

// GenerationError wraps a failed or timed-out language model call. Callers
// recover with fixed fallback values rather than surfacing it to users.
type GenerationError struct {
	Task string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation (%s): %v", e.Task, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ExternalServiceError wraps an unreachable external API. Job search recovers
// it as an empty result list.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }
