package pdftext

import "testing"

func TestFindAbstract(t *testing.T) {
	text := `Scaling Laws for Sparse Models
Jane Doe, John Smith

Abstract
We study how sparse models scale with data and compute. Our
experiments cover three model families and show consistent
power-law behavior.

1 Introduction
Sparse models have become popular...`

	got := FindAbstract(text)
	want := "We study how sparse models scale with data and compute. Our experiments cover three model families and show consistent power-law behavior."
	if got != want {
		t.Errorf("FindAbstract() = %q, want %q", got, want)
	}
}

func TestFindAbstract_HeadingVariants(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "colon after heading",
			text: "Abstract: This paper presents a thorough analysis of token routing in mixture models.\n\nKeywords: routing",
		},
		{
			name: "uppercase heading",
			text: "ABSTRACT\nThis paper presents a thorough analysis of token routing in mixture models.\nIntroduction\nRouting is...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindAbstract(tt.text)
			want := "This paper presents a thorough analysis of token routing in mixture models."
			if got != want {
				t.Errorf("FindAbstract() = %q, want %q", got, want)
			}
		})
	}
}

func TestFindAbstract_NoHeading(t *testing.T) {
	if got := FindAbstract("No sections here at all."); got != "" {
		t.Errorf("FindAbstract() = %q, want empty", got)
	}
}

func TestFindAbstract_TooShort(t *testing.T) {
	if got := FindAbstract("Abstract\nTiny.\n1 Introduction\n"); got != "" {
		t.Errorf("FindAbstract() = %q, want empty for fragment", got)
	}
}
