// Package config provides the config command.
package config

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fiwdb/internal/appcontext"
	"github.com/agentstation/fiwdb/internal/cmd/output"
)

// NewCommand creates the config command. Output defaults to YAML, the
// config file's own format.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		GroupID: "management",
		Short:   "Show the effective configuration",
		Long: `Show the configuration after flags, FIWDB_* environment variables, .env
files and the config file (~/.fiwdb.yaml or ./.fiwdb.yaml) are applied.
Paths left unset are shown as derived from database_dir. Secrets are never
printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := output.Format(app.OutputFormat())
			if format == "" {
				format = output.FormatYAML
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), app.Settings())
		},
	}
}
