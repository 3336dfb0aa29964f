// Package images provides the images command for the downloaded photo
// store.
package images

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/fiwdb/internal/appcontext"
	"github.com/agentstation/fiwdb/internal/blob/core"
	"github.com/agentstation/fiwdb/internal/cmd/output"
	"github.com/agentstation/fiwdb/internal/cmd/table"
	"github.com/agentstation/fiwdb/pkg/constants"
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/logging"
)

// Removal is the result of images rm.
type Removal struct {
	Key     string `json:"key" yaml:"key"`
	Deleted bool   `json:"deleted" yaml:"deleted"`
}

// NewCommand creates the images command and its subcommands.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "images",
		GroupID: "dataset",
		Short:   "List, fetch and remove photos in the image store",
		Long: `Work with the photos "fiwdb download" saved as <FID>/<PID>.jpg in the
configured image store (a directory or an S3/MinIO bucket).`,
		Example: `  fiwdb images list F0001/
  fiwdb images get F0001/P00001.jpg --dest p1.jpg
  fiwdb images rm F0001/P00001.jpg`,
	}
	cmd.AddCommand(newListCommand(app))
	cmd.AddCommand(newGetCommand(app))
	cmd.AddCommand(newRemoveCommand(app))
	return cmd
}

func newListCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "list [prefix]",
		Short: "List stored photos, optionally under a key prefix such as F0001/",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var prefix string
			if len(args) == 1 {
				prefix = args[0]
			}
			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			store, err := app.BlobStore(ctx)
			if err != nil {
				return err
			}
			infos, err := store.List(ctx, prefix)
			if err != nil {
				return err
			}
			if infos == nil {
				infos = []core.Info{}
			}
			logging.FromContext(ctx).Debug().
				Str("driver", string(store.Driver())).
				Str("prefix", prefix).
				Int("images", len(infos)).
				Msg("Listed images")
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), table.BlobsToTableData(infos), infos)
		},
	}
}

func newGetCommand(app appcontext.Interface) *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Copy one photo to a file or to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			store, err := app.BlobStore(ctx)
			if err != nil {
				return err
			}
			info, body, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}
			defer func() { _ = body.Close() }()

			if dest == "" {
				if _, err := io.Copy(cmd.OutOrStdout(), body); err != nil {
					return errors.WrapIO("write", "stdout", err)
				}
				return nil
			}
			if err := writeFile(dest, body); err != nil {
				return err
			}
			logging.FromContext(ctx).Info().Str("key", info.Key).Str("file", dest).Msg("Copied image")
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), table.BlobsToTableData([]core.Info{info}), info)
		},
	}
	cmd.Flags().StringVar(&dest, "dest", "", "write the photo to this file instead of stdout")
	return cmd
}

func newRemoveCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key>",
		Short: "Remove one photo from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			store, err := app.BlobStore(ctx)
			if err != nil {
				return err
			}
			deleted, err := store.Delete(ctx, args[0])
			if err != nil {
				return err
			}
			if !deleted {
				return errors.NewNotFoundError("image", args[0])
			}
			logging.FromContext(ctx).Info().Str("key", args[0]).Msg("Removed image")
			res := Removal{Key: args[0], Deleted: true}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), table.Data{
				Headers: []string{"Key", "Deleted"},
				Rows:    [][]string{{res.Key, "yes"}},
			}, res)
		},
	}
}

func writeFile(path string, r io.Reader) (retErr error) {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil && retErr == nil {
			retErr = errors.WrapIO("close", path, err)
		}
	}()
	if _, err := io.Copy(f, r); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
