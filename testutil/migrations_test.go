package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhitrip/trip-catalog/testutil"
)

// TestMigrations runs the catalog migrations down to zero, up, and down
// again, checking the trips and testimonials tables appear and disappear.
// Starting from zero keeps it independent of any package whose TestMain
// already migrated the shared database.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	provider, err := testutil.NewMigrator(db)
	require.NoError(t, err, "create goose provider")
	ctx := context.Background()

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.Len(t, results, len(testutil.CatalogTables), "one migration per table")
	for _, table := range testutil.CatalogTables {
		assert.True(t, tableExists(t, db, table), "table %q after up", table)
	}
	assert.True(t, indexExists(t, db, "trips_slug_key"), "slug uniqueness backs duplicate detection")

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	for _, table := range testutil.CatalogTables {
		assert.False(t, tableExists(t, db, table), "table %q after down", table)
	}

	// Leave the schema migrated for packages that run after this one.
	_, err = provider.Up(ctx)
	require.NoError(t, err, "goose up again")
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`
	var exists bool
	require.NoError(t, db.QueryRowContext(context.Background(), q, table).Scan(&exists))
	return exists
}

func indexExists(t *testing.T, db *sql.DB, index string) bool {
	t.Helper()
	const q = `SELECT EXISTS (SELECT 1 FROM pg_indexes WHERE schemaname = 'public' AND indexname = $1)`
	var exists bool
	require.NoError(t, db.QueryRowContext(context.Background(), q, index).Scan(&exists))
	return exists
}
