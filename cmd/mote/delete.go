package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <snapshot-id>",
	Short: "Delete a snapshot",
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

		if !deleteForce {
			fmt.Printf("Delete snapshot %s (%d files)? [y/N] ", accent(snap.ShortID()), snap.FileCount())
			answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return err
			}
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Printf("%s Deletion cancelled\n", warnMark())
				return nil
			}
		}

		deleted, err := svc.DeleteSnapshot(snap.ID)
		if err != nil {
			return err
		}

		fmt.Printf("%s Deleted snapshot %s (%d files)\n", successMark(), accent(deleted.ShortID()), deleted.FileCount())
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "delete without confirmation")
	rootCmd.AddCommand(deleteCmd)
}
