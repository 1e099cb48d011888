package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a snapshot repository for this directory",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		result, err := svc.Init()
		if err != nil {
			return err
		}

		fmt.Printf("%s Initialized mote in %s\n", successMark(), result.RepositoryRoot)

		display := filepath.Base(result.IgnoreFile)
		fmt.Printf("  Created %s for ignore patterns\n", accent(display))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
