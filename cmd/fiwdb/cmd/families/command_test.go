package families_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fiwdb/cmd/fiwdb/cmd/families"
	"github.com/agentstation/fiwdb/internal/appcontext"
	"github.com/agentstation/fiwdb/internal/cmd/table"
	"github.com/agentstation/fiwdb/pkg/errors"
)

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func run(t *testing.T, settings appcontext.Settings, args ...string) ([]byte, error) {
	t.Helper()
	mock := &appcontext.Mock{SettingsFunc: func() appcontext.Settings { return settings }}
	cmd := families.NewCommand(mock)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.Bytes(), err
}

func TestFamiliesCommand(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "F0002", "mid.csv"), "MID,1,2,Gender\n1,0,2,male\n2,2,0,male\n")
	write(t, filepath.Join(root, "F0001", "mid.csv"), "MID,1,Gender\n1,0,female\n")
	lut := filepath.Join(root, "FIW_FIDs.csv")
	write(t, lut, "FIDs\tsurnames\nF0001\tAbbott\n")

	out, err := run(t, appcontext.Settings{DatabaseDir: root, FIDLUT: lut}, "--members")
	require.NoError(t, err)

	var rows []table.FamilyRow
	require.NoError(t, json.Unmarshal(out, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, table.FamilyRow{FID: "F0001", Surname: "Abbott", Members: 1, Path: filepath.Join(root, "F0001")}, rows[0])
	assert.Equal(t, "F0002", string(rows[1].FID))
	assert.Empty(t, rows[1].Surname)
	assert.Equal(t, 2, rows[1].Members)
}

func TestFamiliesCommandWithoutLUT(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "F0007"), 0o755))

	out, err := run(t, appcontext.Settings{DatabaseDir: root, FIDLUT: filepath.Join(root, "none.csv")})
	require.NoError(t, err)
	var rows []table.FamilyRow
	require.NoError(t, json.Unmarshal(out, &rows))
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].Members)
}

func TestFamiliesCommandMissingRoot(t *testing.T) {
	_, err := run(t, appcontext.Settings{DatabaseDir: filepath.Join(t.TempDir(), "nope")})
	assert.True(t, errors.IsNotFound(err))
}
