package postgres_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/aretw0/leveledit/pkg/adapters/postgres"
	"github.com/aretw0/leveledit/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set LEVELEDIT_TEST_POSTGRES=1 (plus the usual PG* variables) to run against a live
// database.
func TestPostgresStore_Contract(t *testing.T) {
	if os.Getenv("LEVELEDIT_TEST_POSTGRES") == "" {
		t.Skip("LEVELEDIT_TEST_POSTGRES not set")
	}

	ctx := context.Background()
	store, err := postgres.Open(ctx, postgres.DSNFromEnv(), "scenes_contract_test")
	require.NoError(t, err)
	defer store.Close()

	ports.RunSceneStoreContract(t, store)
}

func TestDSNFromEnv(t *testing.T) {
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPORT", "6543")
	t.Setenv("PGUSER", "")
	t.Setenv("PGPASSWORD", "s3cret")

	dsn := postgres.DSNFromEnv()
	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "port=6543")
	assert.Contains(t, dsn, "user=leveledit")
	assert.True(t, strings.HasSuffix(dsn, " password=s3cret"))
}

func TestOpen_RejectsTableName(t *testing.T) {
	_, err := postgres.Open(context.Background(), "host=unused", "scenes; DROP TABLE x")
	assert.ErrorContains(t, err, "invalid table name")
}
