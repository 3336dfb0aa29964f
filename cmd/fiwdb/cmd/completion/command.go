// Package completion provides the completion command.
package completion

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/fiwdb/pkg/errors"
)

// Shells lists the shells a script can be generated for.
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// NewCommand creates the completion command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "completion <shell>",
		GroupID: "management",
		Short:   "Generate a shell completion script",
		Long: `Generate a completion script for fiwdb and print it to stdout.

Bash:

  $ source <(fiwdb completion bash)

  # To load completions for each session, execute once:
  $ fiwdb completion bash > /etc/bash_completion.d/fiwdb

Zsh:

  $ fiwdb completion zsh > "${fpath[1]}/_fiwdb"

Fish:

  $ fiwdb completion fish > ~/.config/fish/completions/fiwdb.fish

PowerShell:

  PS> fiwdb completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             Shells,
		Args:                  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return errors.NewValidationError("shell", args[0], "must be one of: bash, zsh, fish, powershell")
		},
	}
}
