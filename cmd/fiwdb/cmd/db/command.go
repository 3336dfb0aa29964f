// Package db provides the db command for pair databases written by
// "fiwdb pairs --sqlite".
package db

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/fiwdb/internal/appcontext"
	"github.com/agentstation/fiwdb/internal/cmd/output"
	"github.com/agentstation/fiwdb/internal/cmd/table"
	"github.com/agentstation/fiwdb/internal/store/sqlite"
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/logging"
)

// NewCommand creates the db command and its subcommands.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:     "db",
		GroupID: "dataset",
		Short:   "Inspect and export a SQLite pair database",
		Long: `Read back pair collections stored with "fiwdb pairs --sqlite". Each kind
is kept in the order it was built, so an export reproduces the pair table
that was written at the same time.`,
		Example: `  fiwdb db kinds --sqlite pairs.db
  fiwdb db export brothers --sqlite pairs.db --out brothers.csv`,
	}
	cmd.PersistentFlags().StringVar(&path, "sqlite", "", "SQLite pair database (required)")

	cmd.AddCommand(newKindsCommand(app, &path))
	cmd.AddCommand(newExportCommand(app, &path))
	return cmd
}

func newKindsCommand(app appcontext.Interface, path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the stored pair kinds and their sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var kinds []sqlite.KindCount
			err := withStore(cmd.Context(), *path, func(ctx context.Context, st *sqlite.Store) error {
				var err error
				kinds, err = st.Kinds(ctx)
				return err
			})
			if err != nil {
				return err
			}
			logging.FromContext(logging.WithLogger(cmd.Context(), app.Logger())).Debug().
				Str("database", *path).
				Int("kinds", len(kinds)).
				Msg("Listed pair kinds")
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), table.KindsToTableData(kinds), kinds)
		},
	}
}

func newExportCommand(app appcontext.Interface, path *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <kind>",
		Short: "Print or write one stored pair collection",
		Long: `Print the stored pairs of <kind> as a p1,p2 table, or write them to --out
as a pair CSV file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithOperation(logging.WithLogger(cmd.Context(), app.Logger()), "export")
			return withStore(ctx, *path, func(ctx context.Context, st *sqlite.Store) error {
				c, err := st.LoadPairs(ctx, args[0])
				if err != nil {
					return err
				}
				if out == "" {
					rows := c.Rows()
					return output.Write(cmd.OutOrStdout(), app.OutputFormat(), table.PairRowsToTableData(rows), rows)
				}
				if err := c.WriteFile(out); err != nil {
					return err
				}
				logging.FromContext(ctx).Info().Str("file", out).Int("pairs", c.Len()).Msg("Wrote pair table")
				summary := table.PairSummary{Kind: c.Kind(), Pairs: c.Len(), Output: out, Database: *path}
				return output.Write(cmd.OutOrStdout(), app.OutputFormat(), table.PairSummaryToTableData(summary), summary)
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the pair table to this CSV file instead of printing it")
	return cmd
}

// withStore opens the existing database at path for the duration of fn.
func withStore(ctx context.Context, path string, fn func(context.Context, *sqlite.Store) error) error {
	if path == "" {
		return errors.NewValidationError("sqlite", nil, "--sqlite is required")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return errors.NewNotFoundError("database", path)
		}
		return errors.WrapIO("stat", path, err)
	}
	st, err := sqlite.Open(ctx, path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	return fn(ctx, st)
}
