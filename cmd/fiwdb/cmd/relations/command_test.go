package relations_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/fiwdb/cmd/fiwdb/cmd/relations"
	"github.com/agentstation/fiwdb/internal/appcontext"
	"github.com/agentstation/fiwdb/internal/cmd/table"
)

func TestRelationsCommand(t *testing.T) {
	lut := filepath.Join(t.TempDir(), "FIW_RIDs.csv")
	require.NoError(t, os.WriteFile(lut, []byte("RID,Name\n1,Child\n2,Sibling\nnote,ignored\n"), 0o644))

	tests := []struct {
		name     string
		lut      string
		wantName string
	}{
		{"with lookup table", lut, "Sibling"},
		{"without lookup table", filepath.Join(t.TempDir(), "missing.csv"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &appcontext.Mock{SettingsFunc: func() appcontext.Settings {
				return appcontext.Settings{RIDLUT: tt.lut}
			}}
			cmd := relations.NewCommand(mock)
			var buf bytes.Buffer
			cmd.SetOut(&buf)
			cmd.SetArgs(nil)
			require.NoError(t, cmd.ExecuteContext(context.Background()))

			var rows []table.RelationRow
			require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
			require.Len(t, rows, 9)
			assert.Equal(t, table.RelationRow{Code: 2, Kind: "siblings", Name: tt.wantName}, rows[1])
			assert.Equal(t, "spouses", rows[4].Kind)
		})
	}
}
