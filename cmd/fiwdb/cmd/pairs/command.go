// Package pairs provides the pairs command.
package pairs

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/fiwdb/internal/appcontext"
	"github.com/agentstation/fiwdb/internal/cmd/output"
	"github.com/agentstation/fiwdb/internal/cmd/table"
	"github.com/agentstation/fiwdb/internal/store/sqlite"
	"github.com/agentstation/fiwdb/pkg/fiwdb"
	"github.com/agentstation/fiwdb/pkg/kinship"
	"github.com/agentstation/fiwdb/pkg/logging"
)

// Flags holds the pairs command flags.
type Flags struct {
	Gender      string
	Kind        string
	Out         string
	SQLite      string
	MembersFile string

	RelationshipsFile string
}

// NewCommand creates the pairs command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "pairs <relation>",
		GroupID: "dataset",
		Short:   "Derive unique kin pairs of one relation across all families",
		Long: `Derive every unique unordered pair of members related by <relation> in
every family, ordered by family number, and write them as a p1,p2 table of
"FID/MIDn" member paths.

<relation> is a code or kind name (see "fiwdb relations"). With --gender,
members of any other gender are removed first, so "siblings --gender male"
yields brother pairs.`,
		Example: `  fiwdb pairs siblings --out siblings.csv
  fiwdb pairs siblings --gender female --kind sisters --out sisters.csv
  fiwdb pairs 5 --sqlite pairs.db
  fiwdb pairs parents --relationships-file relationships.csv`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeRelations,
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, err := kinship.ParseRelation(args[0])
			if err != nil {
				return err
			}
			ctx := logging.WithOperation(logging.WithLogger(cmd.Context(), app.Logger()), "pairs")

			summary, err := Run(ctx, app.Settings().DatabaseDir, rel, flags)
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), table.PairSummaryToTableData(summary), summary)
		},
	}

	cmd.Flags().StringVarP(&flags.Gender, "gender", "g", "", "keep only members of this gender")
	cmd.Flags().StringVarP(&flags.Kind, "kind", "k", "", "label for the pairs (default: the relation's kind name)")
	cmd.Flags().StringVar(&flags.Out, "out", "", "write the pair table to this CSV file")
	cmd.Flags().StringVar(&flags.SQLite, "sqlite", "", "also store the pairs in this SQLite database")
	cmd.Flags().StringVar(&flags.MembersFile, "members-file", "", "member file name inside each family directory (default mid.csv)")
	cmd.Flags().StringVar(&flags.RelationshipsFile, "relationships-file", "", "read each family's matrix from this file instead of the member file")

	return cmd
}

// completeRelations offers the relation kind names for the first argument.
func completeRelations(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var kinds []string
	for _, r := range kinship.Relations() {
		kinds = append(kinds, r.Kind())
	}
	return kinds, cobra.ShellCompDirectiveNoFileComp
}

// Run builds the collection and persists it where requested.
func Run(ctx context.Context, root string, rel kinship.Relation, flags *Flags) (table.PairSummary, error) {
	c, err := fiwdb.BuildPairs(ctx, root, fiwdb.PairOptions{
		Relation:          rel,
		Kind:              flags.Kind,
		Gender:            flags.Gender,
		MembersFile:       flags.MembersFile,
		RelationshipsFile: flags.RelationshipsFile,
	})
	if err != nil {
		return table.PairSummary{}, err
	}

	summary := table.PairSummary{
		Kind:     c.Kind(),
		Relation: rel.String(),
		Gender:   flags.Gender,
		Pairs:    c.Len(),
	}
	logger := logging.FromContext(ctx)

	if flags.Out != "" {
		if err := c.WriteFile(flags.Out); err != nil {
			return summary, err
		}
		summary.Output = flags.Out
		logger.Info().Str("file", flags.Out).Int("pairs", c.Len()).Msg("Wrote pair table")
	}

	if flags.SQLite != "" {
		st, err := sqlite.Open(ctx, flags.SQLite)
		if err != nil {
			return summary, err
		}
		defer func() { _ = st.Close() }()
		if err := st.SavePairs(ctx, c); err != nil {
			return summary, err
		}
		summary.Database = flags.SQLite
		logger.Info().Str("database", flags.SQLite).Str("kind", c.Kind()).Msg("Stored pairs")
	}
	return summary, nil
}
