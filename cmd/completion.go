package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// detectShell auto-detects the current shell from environment
func detectShell() string {
	shell := os.Getenv("SHELL")
	shellLower := strings.ToLower(shell)

	if strings.Contains(shellLower, "fish") {
		return "fish"
	}
	if strings.Contains(shellLower, "zsh") {
		return "zsh"
	}
	if strings.Contains(shellLower, "pwsh") || strings.Contains(shellLower, "powershell") {
		return "powershell"
	}

	// Default to bash
	return "bash"
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: func() string {
		detected := detectShell()
		return `Generate shell completion script for qreport.

If no shell is specified, ` + detected + ` will be used (auto-detected from $SHELL).

To load completions:

Bash:
  $ source <(qreport completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ qreport completion bash > /etc/bash_completion.d/qreport
  # macOS:
  $ qreport completion bash > $(brew --prefix)/etc/bash_completion.d/qreport

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ qreport completion zsh > "${fpath[1]}/_qreport"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ qreport completion fish | source

  # To load completions for each session, execute once:
  $ qreport completion fish > ~/.config/fish/completions/qreport.fish

PowerShell:
  PS> qreport completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> qreport completion powershell > qreport.ps1
  # and source this file from your PowerShell profile.
`
	}(),
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		shell := detectShell()
		if len(args) > 0 {
			shell = args[0]
		}

		// Temporarily strip short shorthands (-x) from flags so completion shows
		// only long options (e.g., --blocks). We restore them after generation.
		saved := stripShortFlagShorthands(cmd.Root())
		defer restoreShortFlagShorthands(cmd.Root(), saved)

		switch shell {
		case "bash":
			cmd.Root().GenBashCompletionV2(os.Stdout, true)
		case "zsh":
			cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// stripShortFlagShorthands walks the command tree and clears the Shorthand
// field for any flag that has one, returning a map of saved values so they
// can be restored later.
func stripShortFlagShorthands(root *cobra.Command) map[string]string {
	saved := make(map[string]string)

	stripFlag := func(f *pflag.Flag) {
		if f.Shorthand != "" {
			saved[f.Name] = f.Shorthand
			f.Shorthand = ""
		}
	}

	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		c.LocalFlags().VisitAll(stripFlag)
		c.PersistentFlags().VisitAll(stripFlag)
		c.InheritedFlags().VisitAll(stripFlag)

		for _, child := range c.Commands() {
			walk(child)
		}
	}
	walk(root)
	return saved
}

// restoreShortFlagShorthands restores previously-saved shorthand values.
func restoreShortFlagShorthands(root *cobra.Command, saved map[string]string) {
	restoreFlag := func(f *pflag.Flag) {
		if old, ok := saved[f.Name]; ok {
			f.Shorthand = old
		}
	}

	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		c.LocalFlags().VisitAll(restoreFlag)
		c.PersistentFlags().VisitAll(restoreFlag)
		c.InheritedFlags().VisitAll(restoreFlag)

		for _, child := range c.Commands() {
			walk(child)
		}
	}
	walk(root)
}
