// Package pdftext recovers submission text from PDF files, used to
// fill in abstracts missing from an export.
package pdftext

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// abstractHeading matches the "Abstract" heading, optionally followed
// by punctuation, at the start of a line.
var abstractHeading = regexp.MustCompile(`(?im)^\s*abstract\s*[.:—-]?\s*`)

// Section headings that commonly follow the abstract.
var abstractEnd = regexp.MustCompile(`(?im)^\s*(1\.?\s+introduction|introduction|keywords|index terms)\b`)

// ExtractText extracts text from the first maxPages pages of a PDF.
// Pages that fail to decode are skipped.
func ExtractText(filePath string, maxPages int) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	var builder strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

// ExtractAbstract locates the abstract section in the first pages of
// a PDF. It returns "" when no abstract heading is found (not an
// error: some layouts defeat plain-text extraction).
func ExtractAbstract(filePath string) (string, error) {
	// The abstract is on page 1 in nearly all conference templates;
	// read two in case it spills over
	text, err := ExtractText(filePath, 2)
	if err != nil {
		return "", err
	}
	return FindAbstract(text), nil
}

// FindAbstract pulls the abstract body out of extracted page text.
func FindAbstract(text string) string {
	loc := abstractHeading.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	body := text[loc[1]:]

	if end := abstractEnd.FindStringIndex(body); end != nil {
		body = body[:end[0]]
	}

	body = collapseWhitespace(body)

	// A real abstract has some substance; short fragments are
	// heading noise
	if len(body) < 40 {
		return ""
	}
	return body
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
