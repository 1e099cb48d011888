package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/mote/internal/domain/restore"
)

var (
	restoreFile   string
	restoreForce  bool
	restoreDryRun bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore <snapshot-id>",
	Short: "Restore files from a snapshot",
	Long: `Restores the whole snapshot, or a single file with --file. Unless
--force is given, a backup snapshot of the current tree is taken first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		result, err := svc.Restore(args[0], restoreFile, restoreForce, restoreDryRun)
		if err != nil {
			return err
		}

		if result.Single {
			if restoreDryRun {
				return nil
			}
			switch result.Outcome {
			case restore.OutcomeRestored:
				fmt.Printf("%s Restored: %s\n", successMark(), accent(restoreFile))
			case restore.OutcomeDeleted:
				fmt.Printf("%s Deleted: %s (not in snapshot)\n", successMark(), accent(restoreFile))
			case restore.OutcomeMissing:
				fmt.Printf("%s File does not exist: %s\n", infoMark(), restoreFile)
			}
			return nil
		}

		if restoreDryRun {
			fmt.Printf("\n%s Would restore %d file(s)\n", infoMark(), result.Restored)
			return nil
		}

		fmt.Printf("\n%s Restored %d file(s)\n", successMark(), result.Restored)
		if result.Skipped > 0 {
			fmt.Printf("  Skipped %d unchanged file(s)\n", result.Skipped)
		}
		return nil
	},
}

func init() {
	restoreCmd.Flags().StringVarP(&restoreFile, "file", "f", "", "specific file to restore (restores entire snapshot if omitted)")
	restoreCmd.Flags().BoolVar(&restoreForce, "force", false, "skip automatic backup creation before restore")
	restoreCmd.Flags().BoolVar(&restoreDryRun, "dry-run", false, "show what would be restored without writing")
	rootCmd.AddCommand(restoreCmd)
}
