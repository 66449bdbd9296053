// Package chunker splits extracted document text into bounded, overlapping
// segments and discards low-information fragments before indexing.
package chunker

import (
	"log"
	"strings"

	"github.com/olamideoke/resumerag/internal/domain"
)

const (
	// ChunkSize is the target maximum segment length in characters.
	ChunkSize = 400
	// ChunkOverlap is how many characters consecutive segments share.
	ChunkOverlap = 50
)

// separators is the priority cascade: paragraph breaks first, then line
// breaks, sentence terminators, spaces, and finally a raw character cut.
var separators = []string{"\n\n", "\n", ".", " ", ""}

// Splitter cuts text on the highest-priority separator that keeps segments
// under the size limit, so semantic boundaries win over fixed-width cuts.
type Splitter struct {
	chunkSize int
	overlap   int
}

func New() *Splitter {
	return NewSplitter(ChunkSize, ChunkOverlap)
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = ChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = ChunkOverlap
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}
}

// Chunk splits the given pages, drops candidates shorter than
// domain.MinChunkChars after trimming, and truncates the result to
// domain.MaxChunks preserving order. Returns domain.ErrEmptyContent when
// nothing survives filtering.
func (s *Splitter) Chunk(pages []domain.Page) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	dropped := 0
	for _, page := range pages {
		for _, text := range s.splitText(page.Text, separators) {
			if len(strings.TrimSpace(text)) < domain.MinChunkChars {
				dropped++
				continue
			}
			chunks = append(chunks, domain.Chunk{
				Text:          text,
				SourceID:      page.SourceFile,
				SourceType:    page.SourceType,
				SequenceIndex: len(chunks),
			})
		}
	}
	if len(chunks) == 0 {
		return nil, domain.ErrEmptyContent
	}
	if len(chunks) > domain.MaxChunks {
		log.Printf("chunker: truncating %d chunks to %d", len(chunks), domain.MaxChunks)
		chunks = chunks[:domain.MaxChunks]
	}
	return chunks, nil
}

// splitText recursively splits text on the first separator present in it,
// falling through to lower-priority separators for pieces that are still too
// long, then greedily re-merges pieces up to the size limit with overlap.
func (s *Splitter) splitText(text string, seps []string) []string {
	sep := seps[len(seps)-1]
	rest := []string{}
	for i, candidate := range seps {
		if candidate == "" || strings.Contains(text, candidate) {
			sep = candidate
			rest = seps[i+1:]
			break
		}
	}

	var final []string
	var good []string
	for _, piece := range s.splitKeepingSep(text, sep) {
		if len(piece) <= s.chunkSize {
			good = append(good, piece)
			continue
		}
		if len(good) > 0 {
			final = append(final, s.merge(good)...)
			good = nil
		}
		if len(rest) == 0 {
			final = append(final, piece)
		} else {
			final = append(final, s.splitText(piece, rest)...)
		}
	}
	if len(good) > 0 {
		final = append(final, s.merge(good)...)
	}
	return final
}

// splitKeepingSep splits text on sep, keeping the separator attached to the
// preceding piece so no characters are lost on re-merge. The empty separator
// means a hard cut into chunk-sized runs.
func (s *Splitter) splitKeepingSep(text, sep string) []string {
	if sep == "" {
		var out []string
		for len(text) > 0 {
			n := min(len(text), s.chunkSize)
			out = append(out, text[:n])
			text = text[n:]
		}
		return out
	}
	pieces := strings.SplitAfter(text, sep)
	out := pieces[:0]
	for _, p := range pieces {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// merge greedily joins adjacent pieces into segments no longer than the chunk
// size, carrying overlap characters into the start of the next segment.
func (s *Splitter) merge(pieces []string) []string {
	var out []string
	var window []string
	total := 0
	for _, p := range pieces {
		if total+len(p) > s.chunkSize && len(window) > 0 {
			out = append(out, strings.Join(window, ""))
			for total > s.overlap || (total+len(p) > s.chunkSize && total > 0) {
				total -= len(window[0])
				window = window[1:]
			}
		}
		window = append(window, p)
		total += len(p)
	}
	if len(window) > 0 {
		out = append(out, strings.Join(window, ""))
	}
	return out
}
