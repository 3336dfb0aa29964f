// Package relations provides the relations command.
package relations

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/fiwdb/internal/appcontext"
	"github.com/agentstation/fiwdb/internal/cmd/output"
	"github.com/agentstation/fiwdb/internal/cmd/table"
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/fiwdb"
	"github.com/agentstation/fiwdb/pkg/kinship"
)

// NewCommand creates the relations command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "relations",
		Aliases: []string{"rids"},
		GroupID: "dataset",
		Short:   "List relationship codes",
		Long: `List the relationship codes stored in the relationship matrices, with the
kind names accepted by "fiwdb pairs". Names from the RID lookup table are
shown when it exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := ridNames(app.Settings().RIDLUT)
			if err != nil {
				return err
			}
			var rows []table.RelationRow
			for _, r := range kinship.Relations() {
				rows = append(rows, table.RelationRow{Code: int(r), Kind: r.Kind(), Name: names[int(r)]})
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), table.RelationsToTableData(rows), rows)
		},
	}
}

// ridNames reads code → name from the first two columns of the RID table.
// Rows whose first cell is not a code are ignored.
func ridNames(path string) (map[int]string, error) {
	t, err := fiwdb.LoadRIDLUT(path)
	if errors.IsNotFound(err) {
		return map[int]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, t.Len())
	if len(t.Header) < 2 {
		return names, nil
	}
	for _, row := range t.Rows {
		code, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		names[code] = strings.TrimSpace(row[1])
	}
	return names, nil
}
