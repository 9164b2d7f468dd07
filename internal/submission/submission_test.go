package submission

import (
	"reflect"
	"testing"
)

func TestCombinedText(t *testing.T) {
	s := Submission{
		Title:    "Attention Is Enough",
		Abstract: "We study attention.",
		Summary:  "A study of attention.",
	}
	want := "Attention Is Enough We study attention. A study of attention."
	if got := s.CombinedText(); got != want {
		t.Errorf("CombinedText() = %q, want %q", got, want)
	}
}

func TestCombinedText_SkipsEmptyParts(t *testing.T) {
	s := Submission{Title: "Only Title"}
	if got := s.CombinedText(); got != "Only Title" {
		t.Errorf("CombinedText() = %q, want %q", got, "Only Title")
	}
}

func TestBucket(t *testing.T) {
	tests := []struct {
		decision string
		want     DecisionBucket
	}{
		{"Accept (poster)", DecisionAccept},
		{"Accept (Oral)", DecisionAccept},
		{"accept", DecisionAccept},
		{"Reject", DecisionReject},
		{"Withdrawn Submission", DecisionWithdrawn},
		{"Withdraw", DecisionWithdrawn},
		{"", DecisionUnknown},
		{"Desk Rejected", DecisionReject},
		{"Invite to Workshop", DecisionUnknown},
	}

	for _, tt := range tests {
		s := Submission{Decision: tt.decision}
		if got := s.Bucket(); got != tt.want {
			t.Errorf("Bucket(%q) = %q, want %q", tt.decision, got, tt.want)
		}
	}
}

func TestYearFromConference(t *testing.T) {
	tests := []struct {
		conference string
		want       int
	}{
		{"neurips2024", 2024},
		{"neurips2023", 2023},
		{"iclr2020", 2020},
		{"2022", 2022},
		{"neurips", 0},
		{"", 0},
		{"conf9999", 0}, // Outside plausible range
	}

	for _, tt := range tests {
		if got := YearFromConference(tt.conference); got != tt.want {
			t.Errorf("YearFromConference(%q) = %d, want %d", tt.conference, got, tt.want)
		}
	}
}

func TestNormalizeKeywords(t *testing.T) {
	raw := []string{
		"  Machine Learning ",
		"machine learning",
		"Deep  Learning.",
		"NLP; Transformers",
		"",
	}
	want := []string{"machine learning", "deep learning", "nlp", "transformers"}

	got := NormalizeKeywords(raw)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeKeywords() = %v, want %v", got, want)
	}
}

func TestNormalizeKeywords_Empty(t *testing.T) {
	if got := NormalizeKeywords(nil); got != nil {
		t.Errorf("NormalizeKeywords(nil) = %v, want nil", got)
	}
}
