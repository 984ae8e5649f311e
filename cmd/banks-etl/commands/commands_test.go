package commands

import (
	"context"
	"path/filepath"
	"testing"

	"banks-etl/internal/config"
	"banks-etl/internal/store"
	"banks-etl/lib/table"

	"github.com/stretchr/testify/require"
)

func TestQueryCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Banks.db")
	db, err := store.Load(context.Background(), store.Config{File: path}, table.Table{
		Columns: []string{"Name", "MC_GBP_Billion"},
		Rows:    []table.Row{{"a", 10.0}, {"b", 20.0}},
	}, "Largest_banks")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	rootCmd.SetArgs([]string{"query", "--db", path, "SELECT AVG(MC_GBP_Billion) FROM Largest_banks"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	rootCmd.SetArgs([]string{"query", "--db", path, "SELECT * FROM missing"})
	require.Error(t, rootCmd.ExecuteContext(context.Background()))
}

func TestOverride(t *testing.T) {
	target := "a"
	empty := ""
	override(&target, &empty)
	require.Equal(t, "a", target)

	other := "b"
	override(&target, &other)
	require.Equal(t, "b", target)
}

func TestOverrideDb(t *testing.T) {
	cfg := config.Default()
	cfg.DBUrl = "libsql://banks.example.turso.io"
	cfg.DBAuthToken = "token"

	empty := ""
	overrideDb(&cfg, &empty)
	require.Equal(t, "libsql://banks.example.turso.io", cfg.Store().Url)

	path := "other.db"
	overrideDb(&cfg, &path)
	require.Equal(t, store.Config{File: "other.db"}, cfg.Store())
}
