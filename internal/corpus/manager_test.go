package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olamideoke/resumerag/internal/chunker"
	"github.com/olamideoke/resumerag/internal/domain"
	"github.com/olamideoke/resumerag/internal/extract"
	"github.com/olamideoke/resumerag/internal/ingest"
	"github.com/olamideoke/resumerag/internal/vectorstore"
)

// hashEmbedder gives every distinct word its own dimension bucket, which is
// enough for retrieval to find exact phrases again.
type hashEmbedder struct{}

func (hashEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v := make([]float32, 64)
		for _, w := range strings.Fields(strings.ToLower(t)) {
			var h uint32
			for _, r := range w {
				h = h*31 + uint32(r)
			}
			v[h%64]++
		}
		out[i] = v
	}
	return out, nil
}

func newTestManager(t *testing.T) (*Manager, *vectorstore.Adapter, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "vectorstore")
	adapter := vectorstore.NewAdapter(hashEmbedder{})
	pipeline := ingest.NewPipeline(extract.Pages, chunker.New(), adapter, dir)
	return NewManager(dir, pipeline, adapter), adapter, dir
}

func writeResume(t *testing.T, name, marker string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Professional summary: " + marker + " with extensive production experience.\n\n")
	b.WriteString("Built and operated Go microservices, event pipelines and SQL reporting systems at scale.\n\n")
	b.WriteString("Earlier work covered docker based deployments and infrastructure automation on AWS.\n")
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestIngestThenRetrieve(t *testing.T) {
	manager, _, _ := newTestManager(t)
	ctx := context.Background()

	result, err := manager.Ingest(ctx, writeResume(t, "resume.txt", "seasoned backend engineer"))
	require.NoError(t, err)
	assert.Equal(t, "resume.txt", result.SourceFile)
	assert.Greater(t, result.ChunksAdded, 0)
	assert.True(t, manager.Exists())

	chunks, ok, err := manager.Search(ctx, "seasoned backend engineer", 6)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, chunks)

	found := false
	for _, c := range chunks {
		if strings.Contains(c.Text, "seasoned backend engineer") {
			found = true
		}
	}
	assert.True(t, found, "retrieved context must contain an ingested chunk verbatim")
}

func TestSearchWithoutCorpus(t *testing.T) {
	manager, _, _ := newTestManager(t)

	chunks, ok, err := manager.Search(context.Background(), "anything", 6)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, chunks)
	assert.False(t, manager.Exists())
}

func TestReplaceLeavesNoResidue(t *testing.T) {
	manager, adapter, dir := newTestManager(t)
	ctx := context.Background()

	_, err := manager.Ingest(ctx, writeResume(t, "first.txt", "original marker phrase"))
	require.NoError(t, err)

	_, err = manager.Replace(ctx, writeResume(t, "second.txt", "replacement marker phrase"))
	require.NoError(t, err)

	store, err := adapter.Load(dir)
	require.NoError(t, err)
	require.NotNil(t, store)
	for _, c := range store.Chunks {
		assert.Equal(t, "second.txt", c.SourceID)
		assert.NotContains(t, c.Text, "original marker phrase")
	}
}

func TestIngestAppendsWithoutClear(t *testing.T) {
	manager, adapter, dir := newTestManager(t)
	ctx := context.Background()

	first, err := manager.Ingest(ctx, writeResume(t, "first.txt", "alpha profile"))
	require.NoError(t, err)
	second, err := manager.Ingest(ctx, writeResume(t, "second.txt", "beta profile"))
	require.NoError(t, err)

	store, err := adapter.Load(dir)
	require.NoError(t, err)
	assert.Len(t, store.Chunks, first.ChunksAdded+second.ChunksAdded)
}

func TestClearRemovesCorpus(t *testing.T) {
	manager, _, _ := newTestManager(t)
	ctx := context.Background()

	_, err := manager.Ingest(ctx, writeResume(t, "resume.txt", "clearable profile"))
	require.NoError(t, err)
	require.True(t, manager.Exists())

	require.NoError(t, manager.Clear())
	assert.False(t, manager.Exists())

	_, ok, err := manager.Search(ctx, "clearable profile", 6)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIngestEmptyContentLeavesCorpusAbsent(t *testing.T) {
	manager, _, _ := newTestManager(t)

	path := filepath.Join(t.TempDir(), "sparse.txt")
	require.NoError(t, os.WriteFile(path, []byte("Go\n\nSQL\n\nAWS\n"), 0o644))

	_, err := manager.Ingest(context.Background(), path)
	assert.True(t, errors.Is(err, domain.ErrEmptyContent))
	assert.False(t, manager.Exists())
}

func TestIngestCapsChunkCount(t *testing.T) {
	manager, adapter, dir := newTestManager(t)

	para := strings.Repeat("Shipped features across ingestion, retrieval and reporting surfaces. ", 3)
	var b strings.Builder
	for i := 0; i < domain.MaxChunks*2; i++ {
		b.WriteString(para)
		b.WriteString("\n\n")
	}
	path := filepath.Join(t.TempDir(), "huge.txt")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	result, err := manager.Ingest(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxChunks, result.ChunksAdded)

	store, err := adapter.Load(dir)
	require.NoError(t, err)
	assert.Len(t, store.Chunks, domain.MaxChunks)
}
