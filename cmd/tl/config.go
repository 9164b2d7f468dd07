package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/topiclens/topiclens/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set repository configuration values.

Usage:
  tl config                               # Show all config
  tl config pdf-root                      # Get specific value
  tl config pdf-root ~/papers/pdfs        # Set value
  tl config default-conference neurips2024
  tl config emerging-threshold 0.2
  tl config min-cooccurrence 3

Keys:
  pdf-root            Path to the submission PDF folder (for enrich)
  default-conference  Conference label assumed by import
  emerging-threshold  Growth cutoff for emerging topics
  min-cooccurrence    Shared-paper cutoff for relationship edges`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response when showing all config.
type ConfigResponse struct {
	PDFRoot           string  `json:"pdf_root"`
	DefaultConference string  `json:"default_conference,omitempty"`
	EmergingThreshold float64 `json:"emerging_threshold,omitempty"`
	MinCooccurrence   int     `json:"min_cooccurrence,omitempty"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("pdf-root:            %s\n", cfg.PDFRoot)
			fmt.Printf("default-conference:  %s\n", cfg.DefaultConference)
			fmt.Printf("emerging-threshold:  %g\n", cfg.EmergingThreshold)
			fmt.Printf("min-cooccurrence:    %d\n", cfg.MinCooccurrence)
		} else {
			outputJSON(ConfigResponse{
				PDFRoot:           cfg.PDFRoot,
				DefaultConference: cfg.DefaultConference,
				EmergingThreshold: cfg.EmergingThreshold,
				MinCooccurrence:   cfg.MinCooccurrence,
			})
		}
		return nil
	}

	key := normalizeKey(args[0])

	if len(args) == 1 {
		switch key {
		case "pdf-root":
			printValue("pdf_root", cfg.PDFRoot)
		case "default-conference":
			printValue("default_conference", cfg.DefaultConference)
		case "emerging-threshold":
			printValue("emerging_threshold", fmt.Sprintf("%g", cfg.EmergingThreshold))
		case "min-cooccurrence":
			printValue("min_cooccurrence", strconv.Itoa(cfg.MinCooccurrence))
		default:
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		return nil
	}

	value := args[1]
	switch key {
	case "pdf-root":
		expanded := config.ExpandPath(value)
		if err := config.ValidatePDFRoot(expanded); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.PDFRoot = expanded
	case "default-conference":
		cfg.DefaultConference = value
	case "emerging-threshold":
		threshold, err := strconv.ParseFloat(value, 64)
		if err != nil || threshold < 0 {
			exitWithError(ExitError, "invalid emerging-threshold: %s", value)
		}
		cfg.EmergingThreshold = threshold
	case "min-cooccurrence":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			exitWithError(ExitError, "invalid min-cooccurrence: %s", value)
		}
		cfg.MinCooccurrence = n
	default:
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}

	return nil
}

func printValue(jsonKey, value string) {
	if humanOutput {
		fmt.Println(value)
	} else {
		outputJSON(map[string]string{jsonKey: value})
	}
}

// normalizeKey converts key formats (pdf_root, PDF-Root) to a
// consistent lowercase hyphenated form.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
