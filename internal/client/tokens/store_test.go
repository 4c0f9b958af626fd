package tokens

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collectivehq/collective/internal/client/repositories/metadata"

	_ "modernc.org/sqlite"
)

func setupMetadataStore(t *testing.T) *MetadataStore {
	t.Helper()
	db, err := sql.Open("sqlite", "file:tokens_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM metadata;
`)
	require.NoError(t, err)
	return NewMetadataStore(metadata.NewSQLiteRepository(db))
}

func TestStores_RoundTripAndClear(t *testing.T) {
	ctx := context.Background()

	stores := map[string]Store{
		"memory":   NewMemoryStore(),
		"metadata": setupMetadataStore(t),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			// Absent tokens read as empty strings.
			v, err := s.Get(ctx, Access)
			require.NoError(t, err)
			assert.Equal(t, "", v)

			require.NoError(t, s.Set(ctx, Access, "acc-1"))
			require.NoError(t, s.Set(ctx, Refresh, "ref-1"))

			v, err = s.Get(ctx, Access)
			require.NoError(t, err)
			assert.Equal(t, "acc-1", v)

			v, err = s.Get(ctx, Refresh)
			require.NoError(t, err)
			assert.Equal(t, "ref-1", v)

			require.NoError(t, s.Clear(ctx))

			v, err = s.Get(ctx, Access)
			require.NoError(t, err)
			assert.Equal(t, "", v)
			v, err = s.Get(ctx, Refresh)
			require.NoError(t, err)
			assert.Equal(t, "", v)
		})
	}
}
