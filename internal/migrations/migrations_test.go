package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationFilesArePaired(t *testing.T) {
	ups, err := fs.Glob(MigrationFiles, "*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(MigrationFiles, down)
		require.NoError(t, err, "missing down migration for %s", up)
	}
}

func TestMigrationsCreateQueriedTables(t *testing.T) {
	var schema strings.Builder
	ups, err := fs.Glob(MigrationFiles, "*.up.sql")
	require.NoError(t, err)
	for _, up := range ups {
		data, err := fs.ReadFile(MigrationFiles, up)
		require.NoError(t, err)
		schema.Write(data)
	}

	for _, table := range []string{"records", "reference_values"} {
		require.Contains(t, schema.String(), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
