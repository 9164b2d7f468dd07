package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/topiclens/topiclens/internal/viz"
)

var (
	vizYear   int
	vizOutput string
	vizLayout string
)

func init() {
	vizCmd.Flags().IntVar(&vizYear, "year", 0, "Year to visualize")
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "topics.html", "Output HTML file")
	vizCmd.Flags().StringVar(&vizLayout, "layout", "force", "Graph layout (force, circle, grid)")
	vizCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Render the topic network as HTML",
	Long: `Render the topic co-occurrence network for a year as a standalone
HTML file using Cytoscape.js. Nodes are topics sized by paper count;
edges are weighted by how many papers share both topics.

Examples:
  tl viz --year 2024
  tl viz --year 2024 -o network.html --layout circle`,
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	analyzer := newAnalyzer(db, cfg)
	report, err := analyzer.Relationships(vizYear)
	if err != nil {
		exitWithError(ExitDataError, "analyzing relationships: %v", err)
	}

	graph := viz.BuildGraph(report)
	html, err := viz.GenerateHTML(graph, viz.HTMLOptions{
		Layout: vizLayout,
		Title:  fmt.Sprintf("Topic Network %d", vizYear),
	})
	if err != nil {
		exitWithError(ExitError, "generating HTML: %v", err)
	}

	if err := os.WriteFile(vizOutput, []byte(html), 0644); err != nil {
		exitWithError(ExitError, "writing HTML file: %v", err)
	}

	if humanOutput {
		fmt.Printf("Wrote %s (%d topics, %d edges)\n", vizOutput, len(graph.Nodes), len(graph.Edges))
	} else {
		outputJSON(StatusResponse{Status: "written", Path: vizOutput})
	}

	return nil
}
