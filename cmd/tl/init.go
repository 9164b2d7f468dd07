package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/topiclens/topiclens/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new topiclens repository",
	Long: `Initialize a new topiclens repository in the current directory.

Creates:
  .topiclens/
  ├── subs.jsonl      # Empty file
  ├── config.json     # Default config
  └── cache/          # Empty directory (gitignored)`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}
	root := cwd
	if envRoot := os.Getenv("TL_ROOT"); envRoot != "" {
		root = envRoot
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a topiclens repository")
	}

	if err := os.MkdirAll(config.TopiclensPath(root), 0755); err != nil {
		exitWithError(ExitError, "creating .topiclens directory: %v", err)
	}
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	subsFile, err := os.Create(config.SubsPath(root))
	if err != nil {
		exitWithError(ExitError, "creating subs.jsonl: %v", err)
	}
	subsFile.Close()

	cfg := &config.Config{}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "creating config.json: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized topiclens repository in %s\n", root)
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: root})
	}

	return nil
}
