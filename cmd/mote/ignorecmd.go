package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/mote/internal/domain/ignore"
)

var ignoreCmd = &cobra.Command{
	Use:   "ignore",
	Short: "Manage ignore patterns",
}

var ignoreShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active ignore file",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		content, err := os.ReadFile(svc.IgnorePath())
		if os.IsNotExist(err) {
			fmt.Printf("%s No ignore file at %s\n", warnMark(), svc.IgnorePath())
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("%s\n\n%s", dim(svc.IgnorePath()), content)
		return nil
	},
}

var ignoreAddCmd = &cobra.Command{
	Use:   "add <pattern>",
	Short: "Append a pattern to the ignore file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		if err := ignore.CreateFile(svc.IgnorePath()); err != nil {
			return err
		}

		f, err := os.OpenFile(svc.IgnorePath(), os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := fmt.Fprintln(f, args[0]); err != nil {
			return err
		}

		fmt.Printf("%s Added pattern %s\n", successMark(), accent(args[0]))
		return nil
	},
}

var ignoreEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the ignore file in $EDITOR",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}

		if err := ignore.CreateFile(svc.IgnorePath()); err != nil {
			return err
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		edit := exec.Command(editor, svc.IgnorePath())
		edit.Stdin = os.Stdin
		edit.Stdout = os.Stdout
		edit.Stderr = os.Stderr
		return edit.Run()
	},
}

func init() {
	ignoreCmd.AddCommand(ignoreShowCmd, ignoreAddCmd, ignoreEditCmd)
	rootCmd.AddCommand(ignoreCmd)
}
