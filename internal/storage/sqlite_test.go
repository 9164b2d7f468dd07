package storage

import (
	"path/filepath"
	"testing"

	"github.com/topiclens/topiclens/internal/submission"
)

// testDB creates a database populated from the given submissions.
func testDB(t *testing.T, subs []submission.Submission) *DB {
	t.Helper()

	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "subs.jsonl")
	if err := WriteAll(jsonlPath, subs); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	db, err := OpenDB(filepath.Join(tmpDir, "subs.db"))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	count, err := db.RebuildFromJSONL(jsonlPath)
	if err != nil {
		t.Fatalf("RebuildFromJSONL() error = %v", err)
	}
	if count != len(subs) {
		t.Fatalf("RebuildFromJSONL() = %d, want %d", count, len(subs))
	}

	return db
}

func sampleSubs() []submission.Submission {
	return []submission.Submission{
		{
			ID: "a1", Title: "Graph Attention Networks", Abstract: "We study graph attention.",
			Keywords: []string{"graphs", "attention"}, Conference: "neurips2023", Year: 2023,
			Decision: "Accept (poster)",
		},
		{
			ID: "a2", Title: "Diffusion Models Revisited", Abstract: "Diffusion models generate images.",
			Summary: "A diffusion survey.", Keywords: []string{"diffusion", "generative models"},
			Conference: "neurips2023", Year: 2023, Decision: "Reject",
		},
		{
			ID: "a3", Title: "Scaling Laws for Language Models", Abstract: "",
			Keywords: []string{"scaling laws"}, Conference: "neurips2024", Year: 2024,
			Decision: "Accept (Oral)",
		},
	}
}

func TestGetByID(t *testing.T) {
	db := testDB(t, sampleSubs())

	sub, err := db.GetByID("a2")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if sub == nil {
		t.Fatal("GetByID() = nil, want submission")
	}
	if sub.Title != "Diffusion Models Revisited" {
		t.Errorf("Title = %q", sub.Title)
	}
	if sub.Summary != "A diffusion survey." {
		t.Errorf("Summary = %q", sub.Summary)
	}
	if len(sub.Keywords) != 2 || sub.Keywords[0] != "diffusion" {
		t.Errorf("Keywords = %v", sub.Keywords)
	}

	missing, err := db.GetByID("nope")
	if err != nil {
		t.Fatalf("GetByID(missing) error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetByID(missing) = %v, want nil", missing)
	}
}

func TestByYearAndYearRange(t *testing.T) {
	db := testDB(t, sampleSubs())

	subs2023, err := db.ByYear(2023, 0)
	if err != nil {
		t.Fatalf("ByYear() error = %v", err)
	}
	if len(subs2023) != 2 {
		t.Errorf("ByYear(2023) returned %d, want 2", len(subs2023))
	}

	limited, err := db.ByYear(2023, 1)
	if err != nil {
		t.Fatalf("ByYear() error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("ByYear(2023, limit 1) returned %d, want 1", len(limited))
	}

	all, err := db.YearRange(2023, 2024)
	if err != nil {
		t.Fatalf("YearRange() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("YearRange(2023, 2024) returned %d, want 3", len(all))
	}
	// Ordered by year
	if all[0].Year > all[len(all)-1].Year {
		t.Error("YearRange() not ordered by year")
	}
}

func TestListWithFilters(t *testing.T) {
	db := testDB(t, sampleSubs())

	accepted, err := db.List(ListFilters{Decision: "accept"}, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(accepted) != 2 {
		t.Errorf("List(decision=accept) returned %d, want 2", len(accepted))
	}

	conf, err := db.List(ListFilters{Conference: "neurips2024"}, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(conf) != 1 || conf[0].ID != "a3" {
		t.Errorf("List(conference=neurips2024) = %v", conf)
	}
}

func TestHistograms(t *testing.T) {
	db := testDB(t, sampleSubs())

	years, err := db.Years()
	if err != nil {
		t.Fatalf("Years() error = %v", err)
	}
	if years[2023] != 2 || years[2024] != 1 {
		t.Errorf("Years() = %v", years)
	}

	confs, err := db.Conferences()
	if err != nil {
		t.Fatalf("Conferences() error = %v", err)
	}
	if confs["neurips2023"] != 2 {
		t.Errorf("Conferences() = %v", confs)
	}

	decisions, err := db.DecisionCounts()
	if err != nil {
		t.Fatalf("DecisionCounts() error = %v", err)
	}
	if decisions[submission.DecisionAccept] != 2 || decisions[submission.DecisionReject] != 1 {
		t.Errorf("DecisionCounts() = %v", decisions)
	}

	yearList, err := db.YearList()
	if err != nil {
		t.Fatalf("YearList() error = %v", err)
	}
	if len(yearList) != 2 || yearList[0] != 2023 || yearList[1] != 2024 {
		t.Errorf("YearList() = %v", yearList)
	}
}

func TestCoverageCounts(t *testing.T) {
	db := testDB(t, sampleSubs())

	withAbstract, err := db.CountWithAbstract()
	if err != nil {
		t.Fatalf("CountWithAbstract() error = %v", err)
	}
	if withAbstract != 2 {
		t.Errorf("CountWithAbstract() = %d, want 2", withAbstract)
	}

	withSummary, err := db.CountWithSummary()
	if err != nil {
		t.Fatalf("CountWithSummary() error = %v", err)
	}
	if withSummary != 1 {
		t.Errorf("CountWithSummary() = %d, want 1", withSummary)
	}

	missing, err := db.ListMissingAbstract()
	if err != nil {
		t.Fatalf("ListMissingAbstract() error = %v", err)
	}
	if len(missing) != 1 || missing[0].ID != "a3" {
		t.Errorf("ListMissingAbstract() = %v", missing)
	}
}

func TestSearch(t *testing.T) {
	db := testDB(t, sampleSubs())

	results, err := db.Search("diffusion", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != "a2" {
		t.Errorf("Search(diffusion) = %v", results)
	}

	// Keywords are searchable too
	results, err = db.Search("attention", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != "a1" {
		t.Errorf("Search(attention) = %v", results)
	}
}

func TestKeywordCounts(t *testing.T) {
	db := testDB(t, sampleSubs())

	all, err := db.KeywordCounts(0)
	if err != nil {
		t.Fatalf("KeywordCounts() error = %v", err)
	}
	if all["graphs"] != 1 || all["diffusion"] != 1 {
		t.Errorf("KeywordCounts(0) = %v", all)
	}

	y2024, err := db.KeywordCounts(2024)
	if err != nil {
		t.Fatalf("KeywordCounts(2024) error = %v", err)
	}
	if y2024["scaling laws"] != 1 || len(y2024) != 1 {
		t.Errorf("KeywordCounts(2024) = %v", y2024)
	}
}

func TestRebuild_ReplacesData(t *testing.T) {
	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "subs.jsonl")

	if err := WriteAll(jsonlPath, sampleSubs()); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	db, err := OpenDB(filepath.Join(tmpDir, "subs.db"))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer db.Close()

	if _, err := db.RebuildFromJSONL(jsonlPath); err != nil {
		t.Fatalf("RebuildFromJSONL() error = %v", err)
	}

	// Shrink the corpus and rebuild: counts must follow the JSONL
	if err := WriteAll(jsonlPath, sampleSubs()[:1]); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	count, err := db.RebuildFromJSONL(jsonlPath)
	if err != nil {
		t.Fatalf("RebuildFromJSONL() error = %v", err)
	}
	if count != 1 {
		t.Errorf("RebuildFromJSONL() = %d, want 1", count)
	}

	total, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if total != 1 {
		t.Errorf("Count() = %d, want 1", total)
	}
}
