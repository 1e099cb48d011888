package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/mote/internal/domain/diff"
)

var (
	diffNameOnly bool
	diffOutput   string
	diffUnified  int
)

var diffCmd = &cobra.Command{
	Use:   "diff [snapshot-id] [snapshot-id2]",
	Short: "Show differences between snapshots or the working tree",
	Long: `Without arguments, diffs the latest snapshot against the working tree.
With one ID, diffs that snapshot against the working tree. With two IDs,
diffs the first against the second.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		var fromID, toID string
		if len(args) > 0 {
			fromID = args[0]
		}
		if len(args) > 1 {
			toID = args[1]
		}

		opts := diff.Options{NameOnly: diffNameOnly, Context: diffUnified}

		var buf bytes.Buffer
		if err := svc.Diff(fromID, toID, opts, &buf); err != nil {
			return err
		}

		if diffOutput != "" {
			if err := os.WriteFile(diffOutput, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Printf("Diff written to %s\n", accent(diffOutput))
			return nil
		}

		fmt.Print(buf.String())
		return nil
	},
}

func init() {
	diffCmd.Flags().BoolVar(&diffNameOnly, "name-only", false, "show only file names without diff content")
	diffCmd.Flags().StringVarP(&diffOutput, "output", "o", "", "write the diff to a file")
	diffCmd.Flags().IntVarP(&diffUnified, "unified", "U", 3, "number of context lines")
	rootCmd.AddCommand(diffCmd)
}
