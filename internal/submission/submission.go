// Package submission defines the core domain types for conference submissions.
package submission

import (
	"strconv"
	"strings"
)

// Submission represents a cleaned conference submission record.
type Submission struct {
	// Identity
	ID     string `json:"id"`               // OpenReview note id
	Forum  string `json:"forum,omitempty"`  // Forum id (usually equals ID for submissions)
	Number int    `json:"number,omitempty"` // Paper number within the venue

	// Text
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Summary  string `json:"summary,omitempty"` // Generated summary, if one exists
	TLDR     string `json:"tldr,omitempty"`

	// Classification
	Keywords []string `json:"keywords,omitempty"` // Normalized author keywords

	// Venue
	Conference string `json:"conference"` // Short label, e.g. "neurips2024"
	Venue      string `json:"venue,omitempty"`
	Year       int    `json:"year"`

	// Review outcome
	Decision string `json:"decision,omitempty"` // Raw decision string from the review process

	// File paths (relative to configured PDF root)
	PDFPath string `json:"pdf_path,omitempty"`
}

// CombinedText returns the text used for topic counting: title, abstract,
// and summary joined with spaces. This matches the corpus the trend
// analytics count mentions in.
func (s *Submission) CombinedText() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Title, s.Abstract, s.Summary} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// HasAbstract reports whether the submission carries a non-empty abstract.
func (s *Submission) HasAbstract() bool {
	return strings.TrimSpace(s.Abstract) != ""
}

// HasSummary reports whether the submission carries a generated summary.
func (s *Submission) HasSummary() bool {
	return strings.TrimSpace(s.Summary) != ""
}

// DecisionBucket is a coarse classification of review decisions.
type DecisionBucket string

const (
	DecisionAccept    DecisionBucket = "accept"
	DecisionReject    DecisionBucket = "reject"
	DecisionWithdrawn DecisionBucket = "withdrawn"
	DecisionUnknown   DecisionBucket = "unknown"
)

// Bucket classifies the raw decision string into a coarse bucket.
// Venues phrase decisions differently ("Accept (poster)", "Accept (Oral)",
// "Reject", "Withdraw"); bucketing makes them comparable across venues.
func (s *Submission) Bucket() DecisionBucket {
	d := strings.ToLower(s.Decision)
	switch {
	case d == "":
		return DecisionUnknown
	case strings.Contains(d, "accept"):
		return DecisionAccept
	case strings.Contains(d, "reject"):
		return DecisionReject
	case strings.Contains(d, "withdraw"):
		return DecisionWithdrawn
	default:
		return DecisionUnknown
	}
}

// YearFromConference derives the publication year from a conference label
// ending in four digits, e.g. "neurips2024" -> 2024. Returns 0 when the
// label carries no year suffix.
func YearFromConference(conference string) int {
	if len(conference) < 4 {
		return 0
	}
	year, err := strconv.Atoi(conference[len(conference)-4:])
	if err != nil {
		return 0
	}
	if year < 1900 || year > 2100 {
		return 0
	}
	return year
}
