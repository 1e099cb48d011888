package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage named contexts within a project",
}

var contextNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a context (and the project, if missing)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		project, err := svc.NewContext(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s Created context '%s' for project '%s'\n", successMark(), accent(args[0]), project)
		return nil
	},
}

var contextListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contexts of the current project",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		project, names, err := svc.Contexts()
		if err != nil {
			return err
		}

		if len(names) == 0 {
			fmt.Printf("%s No contexts found\n", warnMark())
			return nil
		}

		fmt.Printf("Contexts for project '%s':\n", project)
		for _, name := range names {
			if name == "default" {
				fmt.Printf("  %s (default)\n", accent(name))
			} else {
				fmt.Printf("  %s\n", accent(name))
			}
		}
		return nil
	},
}

var contextDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a context and its storage",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		if err := svc.RemoveContext(args[0]); err != nil {
			return err
		}

		fmt.Printf("%s Deleted context '%s'\n", successMark(), accent(args[0]))
		return nil
	},
}

func init() {
	contextCmd.AddCommand(contextNewCmd, contextListCmd, contextDeleteCmd)
	rootCmd.AddCommand(contextCmd)
}
