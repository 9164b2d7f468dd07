package importer

import (
	"reflect"
	"testing"
)

// v2Export is a minimal API v2 shaped export: content fields wrapped as {"value": ...}.
const v2Export = `[
  {
    "id": "abc123",
    "forum": "abc123",
    "number": 7,
    "decision": "Accept (poster)",
    "content": {
      "title": {"value": "Scaling  Laws for\nSparse Models"},
      "abstract": {"value": "We study scaling laws."},
      "keywords": {"value": ["Scaling Laws", "sparse models", null]},
      "venue": {"value": "NeurIPS 2024 poster"},
      "TLDR": {"value": "Sparse models scale."}
    }
  },
  {
    "id": "def456",
    "forum": "def456",
    "number": 8,
    "content": {
      "title": {"value": "Another Paper"},
      "abstract": {"value": "More work."},
      "keywords": {"value": "graphs, attention"}
    }
  }
]`

// v1Export uses plain content values, with the decision merged in by the fetch step.
const v1Export = `[
  {
    "id": "xyz789",
    "forum": "xyz789",
    "number": 1,
    "decision": "Reject",
    "content": {
      "title": "Old Style Paper",
      "abstract": "Abstract text.",
      "keywords": ["old", "style"],
      "TL;DR": "Old but gold."
    }
  }
]`

func TestParseOpenReview_V2(t *testing.T) {
	subs, errs := ParseOpenReview([]byte(v2Export), "neurips2024")
	if len(errs) != 0 {
		t.Fatalf("ParseOpenReview() errors = %v", errs)
	}
	if len(subs) != 2 {
		t.Fatalf("ParseOpenReview() returned %d subs, want 2", len(subs))
	}

	s := subs[0]
	if s.ID != "abc123" {
		t.Errorf("ID = %q, want abc123", s.ID)
	}
	// Whitespace normalized: internal newline and double space collapsed
	if s.Title != "Scaling Laws for Sparse Models" {
		t.Errorf("Title = %q, want normalized title", s.Title)
	}
	if s.Year != 2024 {
		t.Errorf("Year = %d, want 2024", s.Year)
	}
	if s.Conference != "neurips2024" {
		t.Errorf("Conference = %q, want neurips2024", s.Conference)
	}
	if s.Decision != "Accept (poster)" {
		t.Errorf("Decision = %q, want Accept (poster)", s.Decision)
	}
	if s.TLDR != "Sparse models scale." {
		t.Errorf("TLDR = %q", s.TLDR)
	}
	// Keywords normalized and null dropped
	wantKw := []string{"scaling laws", "sparse models"}
	if !reflect.DeepEqual(s.Keywords, wantKw) {
		t.Errorf("Keywords = %v, want %v", s.Keywords, wantKw)
	}

	// Comma-joined keyword string is split
	wantKw2 := []string{"graphs", "attention"}
	if !reflect.DeepEqual(subs[1].Keywords, wantKw2) {
		t.Errorf("Keywords = %v, want %v", subs[1].Keywords, wantKw2)
	}
}

func TestParseOpenReview_V1(t *testing.T) {
	subs, errs := ParseOpenReview([]byte(v1Export), "iclr2021")
	if len(errs) != 0 {
		t.Fatalf("ParseOpenReview() errors = %v", errs)
	}
	if len(subs) != 1 {
		t.Fatalf("ParseOpenReview() returned %d subs, want 1", len(subs))
	}

	s := subs[0]
	if s.Title != "Old Style Paper" {
		t.Errorf("Title = %q", s.Title)
	}
	if s.Year != 2021 {
		t.Errorf("Year = %d, want 2021", s.Year)
	}
	if s.Decision != "Reject" {
		t.Errorf("Decision = %q, want Reject", s.Decision)
	}
	if s.TLDR != "Old but gold." {
		t.Errorf("TLDR = %q, want TL;DR variant picked up", s.TLDR)
	}
}

func TestParseOpenReview_MissingTitle(t *testing.T) {
	data := `[{"id": "x", "content": {"abstract": {"value": "no title"}}}]`

	subs, errs := ParseOpenReview([]byte(data), "neurips2024")
	if len(subs) != 0 {
		t.Errorf("ParseOpenReview() returned %d subs, want 0", len(subs))
	}
	if len(errs) != 1 {
		t.Fatalf("ParseOpenReview() errors = %v, want 1 error", errs)
	}
}

func TestParseOpenReview_BadYear(t *testing.T) {
	data := `[{"id": "x", "content": {"title": {"value": "T"}}}]`

	subs, errs := ParseOpenReview([]byte(data), "neurips")
	if len(subs) != 0 || len(errs) != 1 {
		t.Fatalf("ParseOpenReview() = %d subs, %d errs; want 0 subs, 1 err", len(subs), len(errs))
	}
}

func TestParseOpenReview_YearFromContent(t *testing.T) {
	data := `[{"id": "x", "content": {"title": {"value": "T"}, "year": {"value": 2019}}}]`

	subs, errs := ParseOpenReview([]byte(data), "custom-venue")
	if len(errs) != 0 {
		t.Fatalf("ParseOpenReview() errors = %v", errs)
	}
	if len(subs) != 1 || subs[0].Year != 2019 {
		t.Fatalf("Year = %v, want 2019", subs)
	}
}

func TestParseOpenReview_InvalidJSON(t *testing.T) {
	_, errs := ParseOpenReview([]byte("not json"), "neurips2024")
	if len(errs) == 0 {
		t.Error("ParseOpenReview() expected error for invalid JSON")
	}
}
