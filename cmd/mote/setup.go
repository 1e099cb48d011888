package main

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
)

//go:embed scripts/shell_integration.sh
var shellIntegrationSh string

//go:embed scripts/shell_integration.fish
var shellIntegrationFish string

var setupCmd = &cobra.Command{
	Use:   "setup [shell]",
	Short: "Print the shell integration script for auto-snapshot hooks",
	Long: `Prints a script that snapshots automatically from shell hooks: on
directory change (zsh, fish), on shell exit (zsh), or on every prompt (bash).
Supported shells: bash, zsh, fish.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		shell := "zsh"
		if len(args) > 0 {
			shell = args[0]
		}

		switch shell {
		case "bash", "zsh":
			fmt.Print(shellIntegrationSh)
		case "fish":
			fmt.Print(shellIntegrationFish)
		default:
			return fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", shell)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
