package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a submission by ID",
	Long: `Show the full record for a submission by its note ID.

Examples:
  tl get abc123
  tl get abc123 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	sub, err := db.GetByID(args[0])
	if err != nil {
		exitWithError(ExitError, "retrieving submission: %v", err)
	}
	if sub == nil {
		exitWithError(ExitDataError, "submission not found: %s", args[0])
	}

	if humanOutput {
		fmt.Printf("%s\n", truncateString(sub.Title, DetailTitleMaxLen))
		fmt.Printf("  ID:         %s\n", sub.ID)
		fmt.Printf("  Conference: %s (%d)\n", sub.Conference, sub.Year)
		if sub.Venue != "" {
			fmt.Printf("  Venue:      %s\n", sub.Venue)
		}
		if sub.Decision != "" {
			fmt.Printf("  Decision:   %s\n", sub.Decision)
		}
		if len(sub.Keywords) > 0 {
			fmt.Printf("  Keywords:   %s\n", strings.Join(sub.Keywords, ", "))
		}
		if sub.TLDR != "" {
			fmt.Printf("  TL;DR:      %s\n", wrapText(sub.TLDR, TextWrapWidth, "              "))
		}
		if sub.Abstract != "" {
			fmt.Printf("\n  %s\n", wrapText(sub.Abstract, TextWrapWidth, "  "))
		}
		if sub.PDFPath != "" {
			fmt.Printf("\n  PDF: %s\n", sub.PDFPath)
		}
	} else {
		outputJSON(sub)
	}

	return nil
}
