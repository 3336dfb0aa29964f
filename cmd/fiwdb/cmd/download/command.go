// Package download provides the download command.
package download

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fiwdb/internal/appcontext"
	"github.com/agentstation/fiwdb/internal/cmd/output"
	"github.com/agentstation/fiwdb/internal/cmd/table"
	"github.com/agentstation/fiwdb/internal/download"
	"github.com/agentstation/fiwdb/pkg/fiwdb"
	"github.com/agentstation/fiwdb/pkg/logging"
)

// NewCommand creates the download command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		lut          string
		maxItems     int
		skipExisting bool
	)

	cmd := &cobra.Command{
		Use:     "download",
		GroupID: "dataset",
		Short:   "Download the photos listed in the PID table",
		Long: `Download every photo listed in the PID lookup table (FIDs, PIDs, URL) into
the configured image store as <FID>/<PID>.jpg. Failed photos are logged and
skipped; the run continues with the next one.

The store is a directory (blob_driver=fs, image_dir) or an S3/MinIO bucket
(blob_driver=s3, s3_bucket, s3_region, s3_endpoint, s3_path_style).`,
		Example: `  fiwdb download
  fiwdb download --max-items 100 --skip-existing
  FIWDB_BLOB_DRIVER=s3 FIWDB_S3_BUCKET=fiw fiwdb download`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := app.Settings()
			if lut == "" {
				lut = s.PIDLUT
			}
			if !cmd.Flags().Changed("max-items") {
				maxItems = s.DownloadMaxItems
			}

			ctx := logging.WithOperation(logging.WithLogger(cmd.Context(), app.Logger()), "download")
			records, err := fiwdb.LoadPIDLUT(lut)
			if err != nil {
				return err
			}
			store, err := app.BlobStore(ctx)
			if err != nil {
				return err
			}

			d := download.New(app.HTTPClient(), store, download.Options{MaxItems: maxItems, SkipExisting: skipExisting})
			stats, runErr := d.Run(ctx, records)
			if err := output.Write(cmd.OutOrStdout(), app.OutputFormat(), table.StatsToTableData(stats), stats); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&lut, "lut", "", "PID lookup table (default: pid_lut setting)")
	cmd.Flags().IntVarP(&maxItems, "max-items", "n", 0, "stop after this many photos, 0 for all (default: download_max_items setting)")
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "skip photos already in the store")

	return cmd
}
