package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fiwdb/internal/cmd/output"
	"github.com/agentstation/fiwdb/internal/cmd/table"
	"github.com/agentstation/fiwdb/pkg/errors"
)

type settings struct {
	DatabaseDir string   `json:"database_dir"`
	Folds       []int    `json:"folds"`
	Token       string   `json:"-"`
	Tags        []string `json:"tags,omitempty"`
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", "yaml", ""} {
		_, err := output.ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := output.ParseFormat("wide")
	assert.True(t, errors.IsValidationError(err))
}

func TestTableFormatterData(t *testing.T) {
	var buf bytes.Buffer
	data := table.Data{
		Headers:         []string{"FID", "Members"},
		Rows:            [][]string{{"F0001", "5"}, {"F0002", "12"}},
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignRight},
	}
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, data))
	out := buf.String()
	assert.Contains(t, out, "F0001")
	assert.Contains(t, out, "F0002")
	assert.Contains(t, out, "12")
}

func TestTableFormatterStruct(t *testing.T) {
	var buf bytes.Buffer
	s := settings{DatabaseDir: "/data/fiw", Folds: []int{1, 5}, Token: "secret"}
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, s))
	out := buf.String()
	assert.Contains(t, out, "Database Dir")
	assert.Contains(t, out, "/data/fiw")
	assert.Contains(t, out, "1, 5")
	assert.NotContains(t, out, "secret")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, map[string]int{"pairs": 3}))
	var got map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 3, got["pairs"])
}

func TestWrite(t *testing.T) {
	rows := table.Data{Headers: []string{"Kind"}, Rows: [][]string{{"siblings"}}}
	raw := []settings{{DatabaseDir: "/x"}}

	var buf bytes.Buffer
	require.NoError(t, output.Write(&buf, "json", rows, raw))
	assert.JSONEq(t, `[{"database_dir":"/x","folds":null}]`, buf.String())

	buf.Reset()
	require.NoError(t, output.Write(&buf, "yaml", rows, raw))
	assert.Contains(t, buf.String(), "database_dir: /x")

	buf.Reset()
	require.NoError(t, output.Write(&buf, "table", rows, raw))
	assert.Contains(t, buf.String(), "siblings")
}
