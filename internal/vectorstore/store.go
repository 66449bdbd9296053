// Package vectorstore is a local nearest-neighbor store over embedded chunks.
// The index and chunk payload persist together as one JSON document, swapped
// into place atomically so readers never load a torn index.
package vectorstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/olamideoke/resumerag/internal/domain"
	"github.com/olamideoke/resumerag/internal/embedding"
)

// IndexFile is the persisted index filename inside the corpus directory.
const IndexFile = "index.json"

// Store holds the embedded chunks of one corpus. chunks[i] pairs with
// vectors[i]; order is insertion order.
type Store struct {
	Dimension int            `json:"dimension"`
	Chunks    []domain.Chunk `json:"chunks"`
	Vectors   [][]float32    `json:"vectors"`
}

// Adapter wraps an embedding function and the on-disk index format.
type Adapter struct {
	embedder embedding.Embedder
}

func NewAdapter(embedder embedding.Embedder) *Adapter {
	return &Adapter{embedder: embedder}
}

// CreateFrom embeds the chunks and builds a fresh store.
func (a *Adapter) CreateFrom(ctx context.Context, chunks []domain.Chunk) (*Store, error) {
	store := &Store{}
	if err := a.AddChunks(ctx, store, chunks); err != nil {
		return nil, err
	}
	return store, nil
}

// AddChunks embeds the chunks and appends them to the store. On error the
// store is left unmodified.
func (a *Adapter) AddChunks(ctx context.Context, store *Store, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := a.embedder.Embed(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}
	store.Chunks = append(store.Chunks, chunks...)
	store.Vectors = append(store.Vectors, vectors...)
	if store.Dimension == 0 {
		store.Dimension = len(vectors[0])
	}
	return nil
}

// Persist writes the store under dir. The index is written to a temporary
// file and renamed over the final name, so a failed persist never leaves a
// corpus that loads as present but unreadable.
func (a *Adapter) Persist(store *Store, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create corpus dir: %w", err)
	}
	data, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "index-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp index: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, IndexFile)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("swap index: %w", err)
	}
	return nil
}

// Load reads a persisted store from dir. It returns (nil, nil) when no index
// exists there: "no corpus yet" is not a failure.
func (a *Adapter) Load(dir string) (*Store, error) {
	data, err := os.ReadFile(filepath.Join(dir, IndexFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	return &store, nil
}

// SimilaritySearch embeds the query and returns the top k chunks by cosine
// similarity, ties broken by original insertion order.
func (a *Adapter) SimilaritySearch(ctx context.Context, store *Store, query string, k int) ([]domain.Chunk, error) {
	if store == nil || len(store.Chunks) == 0 || k <= 0 {
		return nil, nil
	}
	vectors, err := a.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for query", len(vectors))
	}
	qv := vectors[0]

	scores := make([]float64, len(store.Vectors))
	for i, v := range store.Vectors {
		scores[i] = cosine(qv, v)
	}
	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(i, j int) bool { return scores[idxs[i]] > scores[idxs[j]] })

	if k > len(idxs) {
		k = len(idxs)
	}
	results := make([]domain.Chunk, 0, k)
	for _, i := range idxs[:k] {
		results = append(results, store.Chunks[i])
	}
	return results, nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
