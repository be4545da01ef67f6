package index

import (
	"context"
	"testing"

	"github.com/sandevgo/aitalk/internal/storage/sqlite"
	"github.com/sandevgo/aitalk/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_SQLiteStore(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.NewDB(ctx, sqlite.MemoryDSN)
	require.NoError(t, err)
	defer db.Close()

	x, err := Build(ctx, test.NewKeywordEmbedder(), test.MemoryCorpus,
		WithStore(sqlite.NewItemStore(db)), WithWorkers(2))
	require.NoError(t, err)

	n, err := x.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(test.MemoryCorpus), n)

	results, err := x.Search(ctx, test.DockerQuery, 2)
	require.NoError(t, err)
	assert.Equal(t, "DockerとWSL2の環境で開発している", results[0].Text)
}
