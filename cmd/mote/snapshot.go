package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	snapshotMessage string
	snapshotTrigger string
	snapshotAuto    bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Create a new snapshot of the working tree",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		result, err := svc.CreateSnapshot(snapshotMessage, snapshotTrigger, snapshotAuto)
		if err != nil {
			return err
		}

		if snapshotAuto {
			return nil
		}

		if result.Snapshot == nil {
			fmt.Printf("%s No files to snapshot\n", warnMark())
			return nil
		}

		fmt.Printf("%s Created snapshot %s (%d files)\n",
			successMark(), accent(result.Snapshot.ShortID()), result.Snapshot.FileCount())
		if snapshotMessage != "" {
			fmt.Printf("  Message: %s\n", snapshotMessage)
		}
		if result.CleanedUp > 0 {
			fmt.Printf("  Cleaned up %d old snapshot(s)\n", result.CleanedUp)
		}
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotMessage, "message", "m", "", "optional message for the snapshot")
	snapshotCmd.Flags().StringVarP(&snapshotTrigger, "trigger", "t", "", `trigger source (e.g. "zsh-hook", "manual")`)
	snapshotCmd.Flags().BoolVar(&snapshotAuto, "auto", false, "auto mode: skip if no changes, quiet output (for shell hooks)")
	rootCmd.AddCommand(snapshotCmd)
}
