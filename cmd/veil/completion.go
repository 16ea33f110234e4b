package veil

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

func init() {
	cmd := &cobra.Command{
		Use:                   "completion <shell>",
		Short:                 "Generate a shell completion script",
		Long:                  "Write a completion script for the given shell to stdout. Source it from your shell profile, or install it where the shell picks completions up automatically.",
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		DisableFlagsInUseLine: true,
		Example: `  # load for the current zsh session
  source <(veil completion zsh)

  # install permanently
  veil completion zsh > "${fpath[1]}/_veil"
  veil completion bash > /etc/bash_completion.d/veil
  veil completion fish > ~/.config/fish/completions/veil.fish`,
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return fmt.Errorf("unsupported shell: %s", args[0])
		},
	}
	rootCmd.AddCommand(cmd)
}
