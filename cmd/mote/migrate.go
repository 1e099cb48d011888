package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate a legacy in-tree .mote repository into the config directory",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		result, err := svc.Migrate(migrateDryRun)
		if err != nil {
			return err
		}

		if result == nil {
			fmt.Printf("%s No .mote directory found to migrate\n", warnMark())
			return nil
		}

		fmt.Println("Migrating .mote/ to new structure...")
		fmt.Printf("  Project name: %s\n", accent(result.ProjectName))
		fmt.Printf("  Source: %s\n", result.Source)
		fmt.Printf("  Destination: %s\n", result.Destination)

		if result.DryRun {
			fmt.Printf("\n%s Dry run - no changes made\n", infoMark())
			return nil
		}

		fmt.Printf("\n%s Migration complete\n", successMark())
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "show what would be migrated without migrating")
	rootCmd.AddCommand(migrateCmd)
}
