package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	logLimit   int
	logOneline bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show snapshot history",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		snapshots, err := svc.ListSnapshots(logLimit)
		if err != nil {
			return err
		}

		if len(snapshots) == 0 {
			fmt.Printf("%s No snapshots yet\n", warnMark())
			return nil
		}

		for _, snap := range snapshots {
			if logOneline {
				message := "-"
				if snap.Message != nil {
					message = *snap.Message
				}
				fmt.Printf("%s %s  %s  (%d files)\n",
					accent(snap.ShortID()),
					snap.Timestamp.Format("2006-01-02 15:04:05"),
					dim(message),
					snap.FileCount())
				continue
			}

			fmt.Printf("%s %s\n", header("snapshot"), accent(snap.ShortID()))
			fmt.Printf("Date:    %s\n", snap.Timestamp.Format("2006-01-02 15:04:05 MST"))
			if snap.Message != nil {
				fmt.Printf("Message: %s\n", *snap.Message)
			}
			if snap.Trigger != nil {
				fmt.Printf("Trigger: %s\n", *snap.Trigger)
			}
			fmt.Printf("Files:   %d\n", snap.FileCount())
			fmt.Println()
		}
		return nil
	},
}

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 20, "maximum number of snapshots to show")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "show compact one-line format")
	rootCmd.AddCommand(logCmd)
}
