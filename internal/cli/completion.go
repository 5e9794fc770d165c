package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for wallcheck.

To load completions:

Bash:
  $ source <(wallcheck completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ wallcheck completion bash > /etc/bash_completion.d/wallcheck
  # macOS:
  $ wallcheck completion bash > $(brew --prefix)/etc/bash_completion.d/wallcheck

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ wallcheck completion zsh > "${fpath[1]}/_wallcheck"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ wallcheck completion fish | source

  # To load completions for each session, execute once:
  $ wallcheck completion fish > ~/.config/fish/completions/wallcheck.fish

PowerShell:
  PS> wallcheck completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> wallcheck completion powershell > wallcheck.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}
