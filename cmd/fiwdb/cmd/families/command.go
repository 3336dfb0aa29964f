// Package families provides the families command.
package families

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fiwdb/internal/appcontext"
	"github.com/agentstation/fiwdb/internal/cmd/output"
	"github.com/agentstation/fiwdb/internal/cmd/table"
	"github.com/agentstation/fiwdb/pkg/constants"
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/fiwdb"
	"github.com/agentstation/fiwdb/pkg/kinship"
	"github.com/agentstation/fiwdb/pkg/logging"
)

// NewCommand creates the families command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var members bool

	cmd := &cobra.Command{
		Use:     "families",
		Aliases: []string{"fams"},
		GroupID: "dataset",
		Short:   "List the family directories of the database",
		Long: `List every F???? family directory under the database root, ordered by
family number. Surnames come from the FID lookup table when it exists.`,
		Example: `  fiwdb families
  fiwdb families --members -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			s := app.Settings()

			dirs, err := fiwdb.ScanFamilies(s.DatabaseDir)
			if err != nil {
				return err
			}
			names, err := surnames(s.FIDLUT)
			if err != nil {
				return err
			}

			rows := make([]table.FamilyRow, 0, len(dirs))
			for _, d := range dirs {
				row := table.FamilyRow{FID: d.FID, Surname: names[d.FID], Path: d.Path}
				if members {
					fam, err := fiwdb.LoadFamily(d, constants.MembersFile)
					if err != nil {
						return err
					}
					row.Members = len(fam.Members)
				}
				rows = append(rows, row)
			}
			logging.FromContext(ctx).Debug().Int("families", len(rows)).Str("root", s.DatabaseDir).Msg("Scanned database")

			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), table.FamiliesToTableData(rows, members), rows)
		},
	}
	cmd.Flags().BoolVarP(&members, "members", "m", false, "load each family's member file and count members")
	return cmd
}

// surnames loads the FID table; a missing table just means no surnames.
func surnames(path string) (map[kinship.FID]string, error) {
	t, err := fiwdb.LoadFIDLUT(path)
	if errors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fiwdb.FamilyNames(t)
}
