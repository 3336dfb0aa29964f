package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fiwdb/internal/blob/core"
	"github.com/agentstation/fiwdb/internal/blob/memory"
	"github.com/agentstation/fiwdb/internal/cmd/table"
	"github.com/agentstation/fiwdb/pkg/errors"
)

func newTestApp(t *testing.T, cfg *Config) *App {
	t.Helper()
	isolate(t)
	logger := zerolog.Nop()
	a, err := New("v1.2.3", "abc", "2026-01-01", "test", WithConfig(cfg), WithLogger(&logger))
	require.NoError(t, err)
	return a
}

func execute(t *testing.T, a *App, args ...string) ([]byte, error) {
	t.Helper()
	root := a.createRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.Bytes(), err
}

func TestNew(t *testing.T) {
	cfg := &Config{}
	cfg.DatabaseDir = "/fiw"
	a := newTestApp(t, cfg)

	assert.Equal(t, "v1.2.3", a.Version())
	assert.Equal(t, "abc", a.Commit())
	assert.Equal(t, "2026-01-01", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.Same(t, cfg, a.Config())
	assert.Equal(t, "/fiw", a.Settings().DatabaseDir)
	assert.NotEmpty(t, a.Settings().PIDLUT)
	assert.NotNil(t, a.Logger())
}

func TestBlobStore(t *testing.T) {
	t.Run("memory driver is opened once", func(t *testing.T) {
		cfg := &Config{}
		cfg.BlobDriver = "memory"
		a := newTestApp(t, cfg)

		s1, err := a.BlobStore(context.Background())
		require.NoError(t, err)
		s2, err := a.BlobStore(context.Background())
		require.NoError(t, err)
		assert.Equal(t, core.DriverMemory, s1.Driver())
		assert.Same(t, s1, s2)
	})

	t.Run("fs driver roots at the image dir", func(t *testing.T) {
		cfg := &Config{}
		cfg.ImageDir = t.TempDir()
		a := newTestApp(t, cfg)

		s, err := a.BlobStore(context.Background())
		require.NoError(t, err)
		assert.Equal(t, core.DriverFilesystem, s.Driver())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &Config{}
		cfg.BlobDriver = "ftp"
		a := newTestApp(t, cfg)

		_, err := a.BlobStore(context.Background())
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("injected store", func(t *testing.T) {
		isolate(t)
		store := memory.New()
		a, err := New("", "", "", "", WithConfig(&Config{}), WithBlobStore(store))
		require.NoError(t, err)
		got, err := a.BlobStore(context.Background())
		require.NoError(t, err)
		assert.Same(t, store, got)
	})
}

func TestHTTPClient(t *testing.T) {
	a := newTestApp(t, &Config{})
	c := a.HTTPClient()
	require.NotNil(t, c)
	assert.Same(t, c, a.HTTPClient())
}

func TestExecuteRelations(t *testing.T) {
	a := newTestApp(t, &Config{})
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "FIW_RIDs.csv"), []byte("RID,Name\n5,Spouse\n"), 0o644))

	out, err := execute(t, a, "relations", "-o", "json", "-d", dir, "-q")
	require.NoError(t, err)

	var rows []table.RelationRow
	require.NoError(t, json.Unmarshal(out, &rows))
	require.Len(t, rows, 9)
	assert.Equal(t, "Spouse", rows[4].Name)
	assert.Equal(t, dir, a.Settings().DatabaseDir)
	assert.True(t, a.Config().Quiet)
}

func TestExecuteRejectsBadFormat(t *testing.T) {
	a := newTestApp(t, &Config{})
	_, err := execute(t, a, "version", "-o", "xml")
	assert.True(t, errors.IsValidationError(err))
}

func TestExecuteConfigFlag(t *testing.T) {
	a := newTestApp(t, &Config{})
	path := filepath.Join(t.TempDir(), "fiwdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database_dir: /from/file\n"), 0o644))

	out, err := execute(t, a, "config", "--config", path, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, string(out), `"database_dir": "/from/file"`)
	assert.Contains(t, string(out), `"config_file": "`+path+`"`)
}

func TestExecuteCompletion(t *testing.T) {
	a := newTestApp(t, &Config{})
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, a, "completion", shell)
		require.NoError(t, err, shell)
		assert.Contains(t, string(out), "fiwdb", shell)
	}

	_, err := execute(t, a, "completion", "tcsh")
	assert.True(t, errors.IsValidationError(err))
}

func TestExecuteCompletesRelations(t *testing.T) {
	a := newTestApp(t, &Config{})
	out, err := execute(t, a, "__complete", "pairs", "")
	require.NoError(t, err)
	assert.Contains(t, string(out), "siblings")
	assert.Contains(t, string(out), "great-grandparents")
}

func TestExecuteImagesList(t *testing.T) {
	cfg := &Config{}
	cfg.ImageDir = t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.ImageDir, "F0001"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.ImageDir, "F0001", "P00001.jpg"), []byte("jpeg"), 0o644))
	a := newTestApp(t, cfg)

	out, err := execute(t, a, "images", "list", "F0001/", "-o", "json")
	require.NoError(t, err)
	var infos []core.Info
	require.NoError(t, json.Unmarshal(out, &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "F0001/P00001.jpg", infos[0].Key)
	assert.Equal(t, int64(4), infos[0].Size)
}

func TestExecuteDBRequiresExistingDatabase(t *testing.T) {
	a := newTestApp(t, &Config{})
	_, err := execute(t, a, "db", "kinds", "--sqlite", filepath.Join(t.TempDir(), "none.db"))
	assert.True(t, errors.IsNotFound(err))
}
