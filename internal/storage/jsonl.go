// Package storage handles data persistence in JSONL and SQLite formats.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/topiclens/topiclens/internal/submission"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAll reads all submissions from a JSONL file.
func ReadAll(path string) ([]submission.Submission, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Empty file returns empty slice
		}
		return nil, fmt.Errorf("opening subs file: %w", err)
	}
	defer f.Close()

	var subs []submission.Submission
	scanner := bufio.NewScanner(f)

	// Increase buffer size for long lines (abstracts can be large)
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var sub submission.Submission
		if err := json.Unmarshal(line, &sub); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		subs = append(subs, sub)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading subs file: %w", err)
	}

	return subs, nil
}

// Append adds a submission to the end of a JSONL file.
func Append(path string, sub submission.Submission) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening subs file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing submission: %w", err)
	}
	if _, err := f.WriteString("\n"); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}

	return nil
}

// WriteAll writes all submissions to a JSONL file, replacing existing content.
func WriteAll(path string, subs []submission.Submission) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating subs file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, sub := range subs {
		data, err := json.Marshal(sub)
		if err != nil {
			return fmt.Errorf("encoding submission %d: %w", i, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing submission %d: %w", i, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	return w.Flush()
}

// FindByID returns the index of the submission with the given ID, or -1.
func FindByID(subs []submission.Submission, id string) int {
	for i, s := range subs {
		if s.ID == id {
			return i
		}
	}
	return -1
}
