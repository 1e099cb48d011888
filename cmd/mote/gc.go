package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	gcDryRun  bool
	gcVerbose bool
)

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Delete objects not referenced by any snapshot",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		if gcVerbose {
			fmt.Println("Starting garbage collection...")
		}

		result, err := svc.GC(gcDryRun)
		if err != nil {
			return err
		}

		if gcVerbose {
			fmt.Printf("  Found %d snapshots with %d unique objects\n", result.SnapshotCount, result.ReferencedCount)
			fmt.Printf("  Total objects: %d, Unreferenced: %d\n", result.TotalObjects, len(result.Unreferenced))
		}

		if len(result.Unreferenced) == 0 {
			fmt.Printf("%s No unreferenced objects found\n", successMark())
			return nil
		}

		if gcDryRun {
			fmt.Printf("%s Would delete %d unreferenced object(s)\n", infoMark(), len(result.Unreferenced))
			if gcVerbose {
				for _, hash := range result.Unreferenced {
					fmt.Printf("  Would delete: %s\n", dim(hash))
				}
			}
			return nil
		}

		fmt.Printf("%s Deleted %d object(s), reclaimed %s\n",
			successMark(), result.Stats.DeletedObjects, formatSize(result.Stats.DeletedBytes))
		return nil
	},
}

func formatSize(bytes uint64) string {
	kb := float64(bytes) / 1024.0
	if kb < 1024.0 {
		return fmt.Sprintf("%.2f KB", kb)
	}
	return fmt.Sprintf("%.2f MB", kb/1024.0)
}

func init() {
	gcCmd.Flags().BoolVar(&gcDryRun, "dry-run", false, "show what would be deleted without deleting")
	gcCmd.Flags().BoolVar(&gcVerbose, "verbose", false, "show object counts; with --dry-run, list every object that would be deleted")
	rootCmd.AddCommand(gcCmd)
}
