package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/topiclens/topiclens/internal/config"
	"github.com/topiclens/topiclens/internal/pdftext"
	"github.com/topiclens/topiclens/internal/storage"
)

var enrichDryRun bool

func init() {
	enrichCmd.Flags().BoolVar(&enrichDryRun, "dry-run", false, "Report what would be enriched without writing")
	rootCmd.AddCommand(enrichCmd)
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill missing abstracts from PDFs",
	Long: `Fill in missing abstracts by extracting them from submission PDFs.

PDFs are looked up under the configured pdf-root as <id>.pdf. Records
whose PDF is missing or whose abstract cannot be located are left
unchanged.

Examples:
  tl config pdf-root ~/papers/pdfs
  tl enrich
  tl enrich --dry-run`,
	RunE: runEnrich,
}

// EnrichResult is the response for the enrich command.
type EnrichResult struct {
	Enriched int      `json:"enriched"`
	Missing  int      `json:"missing_pdf"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

func runEnrich(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	if cfg.PDFRoot == "" {
		exitWithError(ExitConfigError, "pdf-root not configured: run 'tl config pdf-root <path>'")
	}
	pdfRoot := config.ExpandPath(cfg.PDFRoot)

	subsPath := config.SubsPath(repoRoot)
	subs, err := storage.ReadAll(subsPath)
	if err != nil {
		exitWithError(ExitDataError, "reading submissions: %v", err)
	}

	var result EnrichResult
	for i := range subs {
		if subs[i].HasAbstract() {
			continue
		}

		pdfPath := filepath.Join(pdfRoot, subs[i].ID+".pdf")
		if _, err := os.Stat(pdfPath); err != nil {
			result.Missing++
			continue
		}

		abstract, err := pdftext.ExtractAbstract(pdfPath)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", subs[i].ID, err))
			continue
		}
		if abstract == "" {
			result.Failed++
			continue
		}

		if !enrichDryRun {
			subs[i].Abstract = abstract
			subs[i].PDFPath = pdfPath
		}
		result.Enriched++
	}

	if !enrichDryRun && result.Enriched > 0 {
		if err := storage.WriteAll(subsPath, subs); err != nil {
			exitWithError(ExitError, "writing submissions: %v", err)
		}
	}

	if humanOutput {
		verb := "Enriched"
		if enrichDryRun {
			verb = "Would enrich"
		}
		fmt.Printf("%s %d abstracts (%d PDFs missing, %d failed)\n",
			verb, result.Enriched, result.Missing, result.Failed)
		if result.Enriched > 0 && !enrichDryRun {
			fmt.Println("Run 'tl rebuild' to refresh the query database.")
		}
	} else {
		outputJSON(result)
	}

	return nil
}
