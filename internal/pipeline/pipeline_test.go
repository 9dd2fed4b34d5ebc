package pipeline

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeller9/contactlens/internal/config"
	"github.com/dkeller9/contactlens/internal/db"
	"github.com/dkeller9/contactlens/internal/errors"
)

func setupRun(t *testing.T) (*sql.DB, *config.Config) {
	t.Helper()
	base := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.OutputDir = filepath.Join(base, "out")

	database, err := db.Open(cfg, base)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, cfg
}

func strPtr(s string) *string { return &s }

func seedContacts(t *testing.T, database *sql.DB) {
	t.Helper()
	ctx := context.Background()
	rows := []db.NewContact{
		{Name: "Dr. Jane Doe", Phone: "+1 (415) 555-0199",
			Category: strPtr("Work"), Email: strPtr("jane@gmail.com"),
			Notes:     strPtr("Met at the conference, follow up next week about the proposal"),
			CreatedAt: strPtr("2024-01-05 10:00:00")},
		{Name: "Acme Inc", Phone: "555-1234", Category: strPtr("Work"),
			CreatedAt: strPtr("2024-01-06 14:00:00")},
		{Name: "Bo Li", Phone: "123", CreatedAt: strPtr("2024-02-10 09:00:00")},
	}
	for _, row := range rows {
		_, err := db.InsertContact(ctx, database, row)
		require.NoError(t, err)
	}
}

func TestRunFullWorkflow(t *testing.T) {
	database, cfg := setupRun(t)
	seedContacts(t, database)

	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	out, err := Run(context.Background(), database, cfg, Options{Now: now})
	require.NoError(t, err)

	assert.Equal(t, 3, out.Rows)
	assert.True(t, strings.HasPrefix(out.RunID, "run-20240301_0930-"),
		"run ID %q should carry the timestamp prefix", out.RunID)
	assert.Equal(t, filepath.Join(cfg.OutputDir, out.RunID), out.Dir)

	require.NotNil(t, out.Report)
	require.NotNil(t, out.Datasets)
	for _, path := range []string{
		out.Report.SVGPath,
		out.Report.HTMLPath,
		out.Datasets.FullCSV,
		out.Datasets.MLCSV,
		out.Datasets.MLXLSX,
		out.Datasets.MappingJSON,
	} {
		_, err := os.Stat(path)
		assert.NoError(t, err, "artifact %s should exist", path)
		assert.Equal(t, out.Dir, filepath.Dir(path), "artifact %s should live in the run dir", path)
	}

	assert.Equal(t, 3, out.Summary.TotalContacts)
	assert.Equal(t, 2, out.Summary.UniqueCategories)
	assert.Equal(t, 1, out.Summary.WithEmail)
}

func TestRunEmptyStore(t *testing.T) {
	database, cfg := setupRun(t)

	out, err := Run(context.Background(), database, cfg, Options{})
	require.NoError(t, err)

	assert.Equal(t, 0, out.Rows)
	assert.Nil(t, out.Report)
	assert.Nil(t, out.Datasets)
	assert.Empty(t, out.Dir)

	// No run directory is created for an empty store.
	entries, err := os.ReadDir(cfg.OutputDir)
	if err == nil {
		assert.Empty(t, entries)
	}
}

func TestRunDistinctRunIDs(t *testing.T) {
	database, cfg := setupRun(t)
	seedContacts(t, database)

	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	first, err := Run(context.Background(), database, cfg, Options{Now: now})
	require.NoError(t, err)
	second, err := Run(context.Background(), database, cfg, Options{Now: now})
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.NotEqual(t, first.Dir, second.Dir)

	// The first run's artifacts survive the second run.
	_, err = os.Stat(first.Datasets.MLCSV)
	assert.NoError(t, err)
}

func TestRunOutputDirOverride(t *testing.T) {
	database, cfg := setupRun(t)
	seedContacts(t, database)

	override := filepath.Join(t.TempDir(), "elsewhere")
	out, err := Run(context.Background(), database, cfg, Options{OutputDir: override})
	require.NoError(t, err)

	assert.Equal(t, override, filepath.Dir(out.Dir))
}

func TestRunCancelledContext(t *testing.T) {
	database, cfg := setupRun(t)
	seedContacts(t, database)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, database, cfg, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSourceUnavailable) || errors.Is(err, errors.ErrCancelled),
		"cancelled run should surface a pipeline error, got %v", err)
}
