package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/mote/internal/adapters/logging"
	"github.com/felixgeelhaar/mote/internal/app"
	"github.com/felixgeelhaar/mote/internal/ports"
)

var (
	// Global flags
	projectRoot string
	configDir   string
	storageDir  string
	contextName string
	projectName string
	ignoreFile  string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "mote",
	Short: "A fine-grained snapshot management tool",
	Long: `Mote captures byte-exact snapshots of your working tree into a
content-addressed repository, on demand or from shell hooks.

Snapshots can be listed, diffed against each other or the working tree,
restored in whole or in part, and garbage collected.`,
	SilenceErrors: true, // We format errors ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project-root", "", "working tree root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default: ~/.config/mote)")
	rootCmd.PersistentFlags().StringVar(&storageDir, "storage-dir", "", "repository directory override")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "context name (default: default)")
	rootCmd.PersistentFlags().StringVarP(&projectName, "project", "p", "", "project name (default: auto-detect)")
	rootCmd.PersistentFlags().StringVar(&ignoreFile, "ignore-file", "", "ignore file path (default: the context's ignore file, else .moteignore)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newService builds the per-invocation service from the global flags.
func newService() (*app.Service, error) {
	root := projectRoot
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = cwd
	}

	level := ports.LevelWarn
	if verbose {
		level = ports.LevelDebug
	}

	return app.New(app.Options{
		ProjectRoot: root,
		ConfigDir:   configDir,
		Project:     projectName,
		Context:     contextName,
		StorageDir:  storageDir,
		IgnoreFile:  ignoreFile,
		Logger:      logging.NewConsoleLogger(logging.WithLevel(level)),
		Out:         os.Stdout,
	})
}

// printError prints a single error line to stderr.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorPrefix(), err)
}
