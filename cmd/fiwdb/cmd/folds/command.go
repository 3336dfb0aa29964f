// Package folds provides the folds command.
package folds

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fiwdb/internal/appcontext"
	"github.com/agentstation/fiwdb/internal/cmd/output"
	"github.com/agentstation/fiwdb/internal/cmd/table"
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/folds"
	"github.com/agentstation/fiwdb/pkg/logging"
)

// NewCommand creates the folds command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		in, out          string
		train, val, test []int
	)

	def := folds.DefaultPolicy()

	cmd := &cobra.Command{
		Use:     "folds",
		GroupID: "dataset",
		Short:   "Partition fold files into train, val and test sets",
		Long: `Partition every *-folds.csv file in --in into <out>/train, <out>/val and
<out>/test. Each row goes to the split its fold number is assigned to;
rows whose fold no split claims are left out and reported.`,
		Example: `  fiwdb folds --in lists/folds --out lists/splits
  fiwdb folds --in lists/folds --out lists/splits --train 1,2,3 --val 4 --test 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in == "" || out == "" {
				return errors.NewValidationError("in/out", nil, "both --in and --out are required")
			}
			policy, err := folds.NewPolicy(map[folds.Split][]int{
				folds.Train: train,
				folds.Val:   val,
				folds.Test:  test,
			})
			if err != nil {
				return err
			}
			ctx := logging.WithOperation(logging.WithLogger(cmd.Context(), app.Logger()), "folds")
			logging.FromContext(ctx).Debug().Str("policy", policy.String()).Msg("Partitioning folds")

			reports, err := folds.NewPartitioner(policy).PartitionDir(ctx, in, out)
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), table.ReportsToTableData(reports), reports)
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "directory holding the *-folds.csv files")
	cmd.Flags().StringVar(&out, "out", "", "output root for the train/val/test directories")
	cmd.Flags().IntSliceVar(&train, "train", def.Folds(folds.Train), "folds assigned to train")
	cmd.Flags().IntSliceVar(&val, "val", def.Folds(folds.Val), "folds assigned to val")
	cmd.Flags().IntSliceVar(&test, "test", def.Folds(folds.Test), "folds assigned to test")

	return cmd
}
