package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/topiclens/topiclens/internal/submission"
)

func TestReadAll_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "subs.jsonl")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	f.Close()

	subs, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("ReadAll() returned %d subs, want 0", len(subs))
	}
}

func TestReadAll_NonExistentFile(t *testing.T) {
	subs, err := ReadAll("/nonexistent/path/subs.jsonl")
	if err != nil {
		t.Fatalf("ReadAll() error = %v (should return nil for nonexistent file)", err)
	}
	if len(subs) != 0 {
		t.Errorf("ReadAll() returned %v, want nil or empty slice", subs)
	}
}

func TestReadAll_SingleSub(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "subs.jsonl")

	content := `{"id":"abc123","title":"Test Paper","abstract":"Text.","keywords":["graphs"],"conference":"neurips2024","year":2024,"decision":"Accept (poster)"}`
	if err := os.WriteFile(path, []byte(content+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	subs, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("ReadAll() returned %d subs, want 1", len(subs))
	}

	sub := subs[0]
	if sub.ID != "abc123" {
		t.Errorf("ID = %q, want abc123", sub.ID)
	}
	if sub.Title != "Test Paper" {
		t.Errorf("Title = %q, want Test Paper", sub.Title)
	}
	if sub.Year != 2024 {
		t.Errorf("Year = %d, want 2024", sub.Year)
	}
}

func TestReadAll_SkipsEmptyLines(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "subs.jsonl")

	content := `{"id":"a","title":"A","conference":"neurips2024","year":2024}

{"id":"b","title":"B","conference":"neurips2023","year":2023}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	subs, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(subs) != 2 {
		t.Errorf("ReadAll() returned %d subs, want 2", len(subs))
	}
}

func TestReadAll_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "subs.jsonl")

	content := `{"id":"a","title":"A","conference":"neurips2024","year":2024}
not valid json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := ReadAll(path)
	if err == nil {
		t.Error("ReadAll() expected error for invalid JSON")
	}
}

func TestAppendAndWriteAll_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "subs.jsonl")

	subs := []submission.Submission{
		{ID: "a", Title: "A", Conference: "neurips2023", Year: 2023},
		{ID: "b", Title: "B", Conference: "neurips2024", Year: 2024, Keywords: []string{"graphs", "attention"}},
	}
	if err := WriteAll(path, subs); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	extra := submission.Submission{ID: "c", Title: "C", Conference: "neurips2024", Year: 2024}
	if err := Append(path, extra); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ReadAll() returned %d subs, want 3", len(got))
	}
	// Order preserved
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Errorf("order = %s, %s, %s; want a, b, c", got[0].ID, got[1].ID, got[2].ID)
	}
	if len(got[1].Keywords) != 2 {
		t.Errorf("Keywords = %v, want 2 entries", got[1].Keywords)
	}
}

func TestFindByID(t *testing.T) {
	subs := []submission.Submission{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}
	if idx := FindByID(subs, "b"); idx != 1 {
		t.Errorf("FindByID(b) = %d, want 1", idx)
	}
	if idx := FindByID(subs, "missing"); idx != -1 {
		t.Errorf("FindByID(missing) = %d, want -1", idx)
	}
}
