package trend

import (
	"testing"
	"time"

	"github.com/topiclens/topiclens/internal/submission"
	"github.com/topiclens/topiclens/internal/topics"
)

type fakeSource struct {
	byYear map[int][]submission.Submission
}

func (f *fakeSource) ByYear(year, limit int) ([]submission.Submission, error) {
	subs := f.byYear[year]
	if limit > 0 && len(subs) > limit {
		subs = subs[:limit]
	}
	return subs, nil
}

func paper(title, abstract string, year int) submission.Submission {
	return submission.Submission{
		ID: title, Title: title, Abstract: abstract,
		Conference: "testconf", Year: year,
	}
}

func testAnalyzer(byYear map[int][]submission.Submission) *Analyzer {
	return NewAnalyzer(&fakeSource{byYear: byYear}, topics.NewTokenizer())
}

func TestTrackTrends(t *testing.T) {
	a := testAnalyzer(map[int][]submission.Submission{
		2022: {
			paper("Diffusion Models", "We train diffusion models on images.", 2022),
			paper("Graph Learning", "Graphs without generative parts.", 2022),
		},
		2023: {
			paper("Better Diffusion", "Diffusion beats diffusion baselines.", 2023),
		},
	})

	trends, err := a.TrackTrends([]string{"diffusion"}, 2021, 2023)
	if err != nil {
		t.Fatalf("TrackTrends() error = %v", err)
	}

	points := trends["diffusion"]
	// 2021 has no papers and is skipped
	if len(points) != 2 {
		t.Fatalf("trends[diffusion] has %d points, want 2", len(points))
	}

	if points[0].Year != 2022 || points[0].Count != 2 {
		t.Errorf("2022 point = %+v, want count 2", points[0])
	}
	// 2 mentions over 2 papers
	if points[0].Percentage != 100 {
		t.Errorf("2022 percentage = %v, want 100", points[0].Percentage)
	}

	if points[1].Year != 2023 || points[1].Count != 3 {
		t.Errorf("2023 point = %+v, want count 3", points[1])
	}
}

func TestTrackTrends_PhraseMatching(t *testing.T) {
	a := testAnalyzer(map[int][]submission.Submission{
		2023: {
			paper("A", "Graph neural networks are popular.", 2023),
			paper("B", "Neural networks, but not on graphs.", 2023),
		},
	})

	trends, err := a.TrackTrends([]string{"graph neural networks"}, 2023, 2023)
	if err != nil {
		t.Fatalf("TrackTrends() error = %v", err)
	}

	points := trends["graph neural networks"]
	if len(points) != 1 || points[0].Count != 1 {
		t.Errorf("phrase points = %+v, want single count 1", points)
	}
}

func emergingFixture() map[int][]submission.Submission {
	old := []submission.Submission{
		paper("Graph Nets I", "graph networks classify graph networks data", 2020),
		paper("Graph Nets II", "graph networks embed graph networks structure", 2020),
		paper("Graph Nets III", "graph networks again with graph networks", 2021),
		paper("Graph Nets IV", "graph networks forever graph networks", 2021),
	}
	recent := []submission.Submission{
		paper("Diffusion I", "diffusion models generate diffusion models samples", 2023),
		paper("Diffusion II", "diffusion models scale diffusion models training", 2023),
		paper("Diffusion III", "diffusion models rule diffusion models benchmarks", 2024),
		paper("Diffusion IV", "diffusion models win diffusion models contests", 2024),
	}
	return map[int][]submission.Submission{
		2020: old[:2], 2021: old[2:], 2023: recent[:2], 2024: recent[2:],
	}
}

func TestEmergingTopics(t *testing.T) {
	a := testAnalyzer(emergingFixture())

	report, err := a.EmergingTopics([]int{2023, 2024}, []int{2020, 2021})
	if err != nil {
		t.Fatalf("EmergingTopics() error = %v", err)
	}

	if report.TotalRecentPapers != 4 || report.TotalComparisonPapers != 4 {
		t.Errorf("paper totals = %d/%d, want 4/4",
			report.TotalRecentPapers, report.TotalComparisonPapers)
	}

	var diffusion *EmergingTopic
	for i := range report.EmergingTopics {
		if report.EmergingTopics[i].Topic == "diffusion" {
			diffusion = &report.EmergingTopics[i]
		}
	}
	if diffusion == nil {
		t.Fatalf("EmergingTopics() = %+v, missing diffusion", report.EmergingTopics)
	}
	// Absent from the comparison period entirely
	if !diffusion.IsNew {
		t.Error("diffusion IsNew = false, want true")
	}
	if diffusion.ComparisonFrequency != 0 {
		t.Errorf("diffusion ComparisonFrequency = %v, want 0", diffusion.ComparisonFrequency)
	}
	if diffusion.GrowthRate != diffusion.RecentFrequency {
		t.Errorf("new topic growth = %v, want recent rate %v",
			diffusion.GrowthRate, diffusion.RecentFrequency)
	}

	// Sorted by growth rate, descending
	for i := 1; i < len(report.EmergingTopics); i++ {
		if report.EmergingTopics[i].GrowthRate > report.EmergingTopics[i-1].GrowthRate {
			t.Errorf("EmergingTopics not sorted at %d", i)
		}
	}
}

func TestEmergingTopics_ThresholdFiltersFlatTopics(t *testing.T) {
	// Same corpus in both periods: growth rates are all zero
	same := []submission.Submission{
		paper("A", "graph networks classify graph networks data", 0),
		paper("B", "graph networks embed graph networks structure", 0),
	}
	a := testAnalyzer(map[int][]submission.Submission{2020: same, 2024: same})

	report, err := a.EmergingTopics([]int{2024}, []int{2020})
	if err != nil {
		t.Fatalf("EmergingTopics() error = %v", err)
	}
	if len(report.EmergingTopics) != 0 {
		t.Errorf("EmergingTopics() = %+v, want none", report.EmergingTopics)
	}
}

func TestRelationships(t *testing.T) {
	a := testAnalyzer(map[int][]submission.Submission{
		2024: {
			paper("P1", "transformers attention transformers attention layers", 2024),
			paper("P2", "transformers attention for transformers attention heads", 2024),
			paper("P3", "convolution kernels and convolution filters", 2024),
		},
	})

	report, err := a.Relationships(2024)
	if err != nil {
		t.Fatalf("Relationships() error = %v", err)
	}

	if report.Year != 2024 || report.TotalPapers != 3 {
		t.Errorf("Year/TotalPapers = %d/%d", report.Year, report.TotalPapers)
	}
	if report.TopicFrequencies["transformers"] != 2 {
		t.Errorf("transformers frequency = %d, want 2", report.TopicFrequencies["transformers"])
	}
	// transformers and attention share 2 papers: edge present both ways
	if report.Cooccurrence["transformers"]["attention"] != 2 {
		t.Errorf("cooccurrence[transformers][attention] = %d, want 2",
			report.Cooccurrence["transformers"]["attention"])
	}
	if report.Cooccurrence["attention"]["transformers"] != 2 {
		t.Error("cooccurrence matrix not symmetric")
	}
	if report.Centrality["transformers"] == 0 {
		t.Error("transformers centrality = 0, want > 0")
	}
	// convolution appears in one paper only: below min cooccurrence
	if len(report.Cooccurrence["convolution"]) != 0 {
		t.Errorf("convolution edges = %v, want none", report.Cooccurrence["convolution"])
	}
}

func TestRelationships_EmptyYear(t *testing.T) {
	a := testAnalyzer(map[int][]submission.Submission{})

	if _, err := a.Relationships(1999); err == nil {
		t.Error("Relationships() expected error for empty year")
	}
}

func TestGenerateReport(t *testing.T) {
	a := testAnalyzer(emergingFixture())

	report, err := a.GenerateReport(2020, 2024, nil)
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}

	if report.TotalPapers != 8 {
		t.Errorf("TotalPapers = %d, want 8", report.TotalPapers)
	}
	if report.PapersPerYear[2022] != 0 || report.PapersPerYear[2023] != 2 {
		t.Errorf("PapersPerYear = %v", report.PapersPerYear)
	}
	if len(report.KeyTopics) == 0 {
		t.Error("KeyTopics is empty")
	}
	if len(report.TopicTrends) != len(report.KeyTopics) {
		t.Errorf("TopicTrends has %d entries, want %d", len(report.TopicTrends), len(report.KeyTopics))
	}
	if report.Emerging == nil {
		t.Fatal("Emerging is nil")
	}
	if report.Relationships == nil || report.Relationships.Year != 2024 {
		t.Errorf("Relationships = %+v, want year 2024", report.Relationships)
	}
	if _, err := time.Parse(time.RFC3339, report.GeneratedAt); err != nil {
		t.Errorf("GeneratedAt = %q, not RFC3339", report.GeneratedAt)
	}
}

func TestGenerateReport_ExplicitTopics(t *testing.T) {
	a := testAnalyzer(emergingFixture())

	report, err := a.GenerateReport(2020, 2024, []string{"diffusion models"})
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}
	if len(report.KeyTopics) != 1 || report.KeyTopics[0] != "diffusion models" {
		t.Errorf("KeyTopics = %v", report.KeyTopics)
	}
}

func TestGenerateReport_EmptyRange(t *testing.T) {
	a := testAnalyzer(map[int][]submission.Submission{})

	if _, err := a.GenerateReport(2020, 2024, nil); err == nil {
		t.Error("GenerateReport() expected error for empty range")
	}
	if _, err := a.GenerateReport(2024, 2020, nil); err == nil {
		t.Error("GenerateReport() expected error for inverted range")
	}
}
