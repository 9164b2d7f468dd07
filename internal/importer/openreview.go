// Package importer provides functions to import submissions from external formats.
package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/topiclens/topiclens/internal/submission"
)

// FlexValue unmarshals an OpenReview content field. API v2 wraps every field
// as {"value": ...} while API v1 stores the value directly; FlexValue accepts
// both shapes so one importer handles either export.
type FlexValue struct {
	raw json.RawMessage
}

func (f *FlexValue) UnmarshalJSON(data []byte) error {
	// Unwrap {"value": ...} if present
	var wrapped struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Value != nil {
		f.raw = wrapped.Value
		return nil
	}
	f.raw = append([]byte(nil), data...)
	return nil
}

// String returns the field as a string, or "" if it is absent or not a string.
func (f FlexValue) String() string {
	if f.raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(f.raw, &s); err == nil {
		return s
	}
	return ""
}

// StringList returns the field as a string list. Non-string elements are
// dropped (the raw exports occasionally contain nulls or numbers). A plain
// string value is split on commas, which some venues use for keywords.
func (f FlexValue) StringList() []string {
	if f.raw == nil {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(f.raw, &items); err == nil {
		var out []string
		for _, item := range items {
			var s string
			if err := json.Unmarshal(item, &s); err == nil {
				out = append(out, s)
			}
		}
		return out
	}

	var s string
	if err := json.Unmarshal(f.raw, &s); err == nil && s != "" {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}

	return nil
}

// Int returns the field as an int, or 0 if absent or not numeric.
func (f FlexValue) Int() int {
	if f.raw == nil {
		return 0
	}
	var n int
	if err := json.Unmarshal(f.raw, &n); err == nil {
		return n
	}
	return 0
}

// openReviewNote is the raw shape of a note in an OpenReview export file,
// as produced by the upstream fetch scripts (submissions with the decision
// merged in as a top-level field).
type openReviewNote struct {
	ID       string               `json:"id"`
	Forum    string               `json:"forum"`
	Number   int                  `json:"number"`
	Decision string               `json:"decision"`
	Content  map[string]FlexValue `json:"content"`
}

// ParseOpenReview parses an OpenReview notes export and returns cleaned
// submissions for the given conference label (e.g. "neurips2024").
// Per-note conversion failures are collected rather than aborting the parse.
func ParseOpenReview(data []byte, conference string) ([]submission.Submission, []error) {
	var notes []openReviewNote
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, []error{fmt.Errorf("parsing OpenReview JSON: %w", err)}
	}

	var subs []submission.Submission
	var errs []error

	for i, note := range notes {
		sub, err := noteToSubmission(note, conference)
		if err != nil {
			errs = append(errs, fmt.Errorf("note %d (%s): %w", i+1, note.ID, err))
			continue
		}
		subs = append(subs, sub)
	}

	return subs, errs
}

// noteToSubmission converts a raw note into a cleaned submission.
func noteToSubmission(note openReviewNote, conference string) (submission.Submission, error) {
	if note.ID == "" {
		return submission.Submission{}, fmt.Errorf("missing required field 'id'")
	}

	title := cleanText(note.Content["title"].String())
	if title == "" {
		return submission.Submission{}, fmt.Errorf("missing required field 'title'")
	}

	year := submission.YearFromConference(conference)
	if year == 0 {
		year = note.Content["year"].Int()
	}
	if year == 0 {
		return submission.Submission{}, fmt.Errorf("cannot derive year from conference %q", conference)
	}

	decision := note.Decision
	if decision == "" {
		decision = note.Content["decision"].String()
	}

	tldr := note.Content["TLDR"].String()
	if tldr == "" {
		tldr = note.Content["TL;DR"].String()
	}

	return submission.Submission{
		ID:         note.ID,
		Forum:      note.Forum,
		Number:     note.Number,
		Title:      title,
		Abstract:   cleanText(note.Content["abstract"].String()),
		Summary:    cleanText(note.Content["summary"].String()),
		TLDR:       cleanText(tldr),
		Keywords:   submission.NormalizeKeywords(note.Content["keywords"].StringList()),
		Conference: conference,
		Venue:      cleanText(note.Content["venue"].String()),
		Year:       year,
		Decision:   strings.TrimSpace(decision),
	}, nil
}

// cleanText normalizes whitespace: trims and collapses internal runs
// (raw abstracts often carry hard line breaks from the submission form).
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
