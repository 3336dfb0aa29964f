package pairs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fiwdb/cmd/fiwdb/cmd/pairs"
	"github.com/agentstation/fiwdb/internal/appcontext"
	"github.com/agentstation/fiwdb/internal/cmd/table"
	"github.com/agentstation/fiwdb/internal/store/sqlite"
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/kinship"
)

const members = `MID,1,2,3,4,Gender,Name
1,0,5,4,4,male,Al
2,5,0,4,4,female,Bea
3,1,1,0,2,male,Cy
4,1,1,2,0,male,Dan
`

func newRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "F0003"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "F0003", "mid.csv"), []byte(members), 0o644))
	return root
}

func run(t *testing.T, root string, args ...string) ([]byte, error) {
	t.Helper()
	mock := &appcontext.Mock{SettingsFunc: func() appcontext.Settings {
		return appcontext.Settings{DatabaseDir: root}
	}}
	cmd := pairs.NewCommand(mock)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.Bytes(), err
}

func TestPairsCommand(t *testing.T) {
	root := newRoot(t)
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "brothers.csv")
	dbPath := filepath.Join(dir, "pairs.db")

	out, err := run(t, root, "siblings", "--gender", "Male", "--kind", "brothers", "--out", csvPath, "--sqlite", dbPath)
	require.NoError(t, err)

	var summary table.PairSummary
	require.NoError(t, json.Unmarshal(out, &summary))
	assert.Equal(t, table.PairSummary{
		Kind:     "brothers",
		Relation: "siblings",
		Gender:   "Male",
		Pairs:    1,
		Output:   csvPath,
		Database: dbPath,
	}, summary)

	rows, err := kinship.ReadRowsFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, []kinship.Row{{P1: "F0003/MID3", P2: "F0003/MID4"}}, rows)

	st, err := sqlite.Open(context.Background(), dbPath)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()
	c, err := st.LoadPairs(context.Background(), "brothers")
	require.NoError(t, err)
	assert.Equal(t, rows, c.Rows())
}

func TestPairsCommandByCode(t *testing.T) {
	out, err := run(t, newRoot(t), "5")
	require.NoError(t, err)
	var summary table.PairSummary
	require.NoError(t, json.Unmarshal(out, &summary))
	assert.Equal(t, "spouses", summary.Kind)
	assert.Equal(t, 1, summary.Pairs)
	assert.Empty(t, summary.Output)
}

func TestPairsCommandErrors(t *testing.T) {
	_, err := run(t, newRoot(t), "cousins")
	assert.True(t, errors.IsValidationError(err))

	_, err = run(t, newRoot(t))
	assert.Error(t, err)

	_, err = run(t, filepath.Join(t.TempDir(), "missing"), "siblings")
	assert.True(t, errors.IsNotFound(err))
}

func TestPairsCommandRelationshipsFile(t *testing.T) {
	root := newRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "F0003", "relationships.csv"),
		[]byte("MID,1,2,3,4\n1,0,5,4,0\n2,5,0,0,0\n3,1,0,0,0\n4,0,0,0,0\n"), 0o644))

	out, err := run(t, root, "children", "--relationships-file", "relationships.csv")
	require.NoError(t, err)
	var summary table.PairSummary
	require.NoError(t, json.Unmarshal(out, &summary))
	assert.Equal(t, 1, summary.Pairs, "only MID1 and MID3 remain parent and child")

	_, err = run(t, root, "siblings", "--relationships-file", "missing.csv")
	assert.True(t, errors.IsNotFound(err))
}
