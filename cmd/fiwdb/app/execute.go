package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/fiwdb/cmd/fiwdb/cmd/completion"
	"github.com/agentstation/fiwdb/cmd/fiwdb/cmd/config"
	"github.com/agentstation/fiwdb/cmd/fiwdb/cmd/db"
	"github.com/agentstation/fiwdb/cmd/fiwdb/cmd/download"
	"github.com/agentstation/fiwdb/cmd/fiwdb/cmd/families"
	"github.com/agentstation/fiwdb/cmd/fiwdb/cmd/folds"
	"github.com/agentstation/fiwdb/cmd/fiwdb/cmd/images"
	"github.com/agentstation/fiwdb/cmd/fiwdb/cmd/pairs"
	"github.com/agentstation/fiwdb/cmd/fiwdb/cmd/relations"
	"github.com/agentstation/fiwdb/cmd/fiwdb/cmd/version"
	"github.com/agentstation/fiwdb/internal/cmd/output"
	"github.com/agentstation/fiwdb/pkg/errors"
)

// Execute runs the CLI with args. This is the entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	var flags struct {
		configFile  string
		verbose     bool
		quiet       bool
		noColor     bool
		format      string
		logLevel    string
		databaseDir string
	}

	rootCmd := &cobra.Command{
		Use:     "fiwdb",
		Short:   "Families In the Wild dataset tools",
		Version: a.version,
		Long: `fiwdb curates the Families In the Wild (FIW) kinship image database.

It lists families, derives unique kin pairs from each family's relationship
matrix (optionally restricted to one gender), partitions fold files into
train/val/test sets and downloads the photos listed in the PID table.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if flags.configFile != "" {
				cfg, err := LoadConfig(flags.configFile)
				if err != nil {
					return err
				}
				a.config = cfg
			}
			if _, err := output.ParseFormat(flags.format); err != nil {
				return err
			}
			a.config.UpdateFromFlags(flags.verbose, flags.quiet, flags.noColor, flags.format, flags.logLevel, flags.databaseDir)
			a.configure()
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "dataset", Title: "Dataset Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default is $HOME/.fiwdb.yaml)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	pf.StringVarP(&flags.format, "format", "o", "", "output format: table, json, yaml")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.StringVarP(&flags.databaseDir, "database-dir", "d", "", "FIW database root holding the F???? family directories")

	rootCmd.SetVersionTemplate("fiwdb {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(families.NewCommand(a))
	rootCmd.AddCommand(relations.NewCommand(a))
	rootCmd.AddCommand(pairs.NewCommand(a))
	rootCmd.AddCommand(folds.NewCommand(a))
	rootCmd.AddCommand(download.NewCommand(a))
	rootCmd.AddCommand(images.NewCommand(a))
	rootCmd.AddCommand(db.NewCommand(a))

	rootCmd.AddCommand(config.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
	rootCmd.AddCommand(completion.NewCommand())
}

// ExitOnError prints err to stderr and exits with status 1. Interrupted
// runs exit with 130.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	_, _ = os.Stderr.WriteString(err.Error() + "\n")
	if errors.IsCanceled(err) {
		os.Exit(130)
	}
	os.Exit(1)
}
