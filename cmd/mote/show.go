package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <snapshot-id>",
	Short: "Show details of a specific snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		snap, err := svc.FindSnapshot(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", header("snapshot"), accent(snap.ID))
		fmt.Printf("Date:    %s\n", snap.Timestamp.Format("2006-01-02 15:04:05 MST"))
		if snap.Message != nil {
			fmt.Printf("Message: %s\n", *snap.Message)
		}
		if snap.Trigger != nil {
			fmt.Printf("Trigger: %s\n", *snap.Trigger)
		}
		fmt.Printf("Files:   %d\n", snap.FileCount())
		fmt.Println()
		fmt.Println("Files:")
		for _, file := range snap.Files {
			fmt.Printf("  %s (%d bytes)\n", accent(file.Path), file.Size)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
