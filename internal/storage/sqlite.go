package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/topiclens/topiclens/internal/submission"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectSubFields contains the standard field list for SELECT queries.
const selectSubFields = `id, forum, number, title, abstract, summary, tldr,
	keywords_json, conference, venue, year, decision, pdf_path`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- Main submissions table
		CREATE TABLE IF NOT EXISTS subs (
			id TEXT PRIMARY KEY,
			forum TEXT,
			number INTEGER,
			title TEXT NOT NULL,
			abstract TEXT,
			summary TEXT,
			tldr TEXT,
			keywords_json TEXT,
			conference TEXT NOT NULL,
			venue TEXT,
			year INTEGER NOT NULL,
			decision TEXT,
			pdf_path TEXT
		);

		-- Indexes for the per-year queries the trend analytics run
		CREATE INDEX IF NOT EXISTS idx_subs_year ON subs(year);
		CREATE INDEX IF NOT EXISTS idx_subs_conference ON subs(conference);

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS subs_fts USING fts5(
			id,
			title,
			abstract,
			summary,
			keywords_text
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	subs, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	if _, err := d.db.Exec("DELETE FROM subs"); err != nil {
		return 0, fmt.Errorf("clearing subs table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM subs_fts"); err != nil {
		return 0, fmt.Errorf("clearing subs_fts table: %w", err)
	}

	subsStmt, err := d.db.Prepare(`
		INSERT INTO subs (
			id, forum, number, title, abstract, summary, tldr,
			keywords_json, conference, venue, year, decision, pdf_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing subs insert: %w", err)
	}
	defer subsStmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO subs_fts (id, title, abstract, summary, keywords_text)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, sub := range subs {
		var keywordsJSON []byte
		if len(sub.Keywords) > 0 {
			keywordsJSON, err = json.Marshal(sub.Keywords)
			if err != nil {
				return 0, fmt.Errorf("marshaling keywords for %s: %w", sub.ID, err)
			}
		}

		_, err = subsStmt.Exec(
			sub.ID, nullableStringValue(sub.Forum), sub.Number,
			sub.Title, nullableStringValue(sub.Abstract),
			nullableStringValue(sub.Summary), nullableStringValue(sub.TLDR),
			nullableString(keywordsJSON), sub.Conference,
			nullableStringValue(sub.Venue), sub.Year,
			nullableStringValue(sub.Decision), nullableStringValue(sub.PDFPath),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting sub %s: %w", sub.ID, err)
		}

		_, err = ftsStmt.Exec(sub.ID, sub.Title, sub.Abstract, sub.Summary,
			strings.Join(sub.Keywords, ", "))
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", sub.ID, err)
		}
	}

	return len(subs), nil
}

// GetByID retrieves a submission by its ID.
func (d *DB) GetByID(id string) (*submission.Submission, error) {
	row := d.db.QueryRow(`SELECT `+selectSubFields+` FROM subs WHERE id = ?`, id)
	return scanSubmission(row)
}

// ByYear returns all submissions for a specific year, optionally limited.
func (d *DB) ByYear(year, limit int) ([]submission.Submission, error) {
	query := `SELECT ` + selectSubFields + ` FROM subs WHERE year = ? ORDER BY id`
	args := []interface{}{year}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying year %d: %w", year, err)
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

// YearRange returns all submissions with from <= year <= to.
func (d *DB) YearRange(from, to int) ([]submission.Submission, error) {
	rows, err := d.db.Query(`
		SELECT `+selectSubFields+`
		FROM subs
		WHERE year >= ? AND year <= ?
		ORDER BY year, id`, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying years %d-%d: %w", from, to, err)
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

// ListFilters contains optional filters for List.
type ListFilters struct {
	Year       int    // Exact year (0 = any)
	Conference string // Conference label (empty = any)
	Decision   string // Decision substring, case-insensitive (empty = any)
}

// List returns submissions matching all specified filters, optionally limited.
func (d *DB) List(filters ListFilters, limit int) ([]submission.Submission, error) {
	query := `SELECT ` + selectSubFields + ` FROM subs WHERE 1=1`
	var args []interface{}

	if filters.Year > 0 {
		query += " AND year = ?"
		args = append(args, filters.Year)
	}
	if filters.Conference != "" {
		query += " AND conference = ?"
		args = append(args, filters.Conference)
	}
	if filters.Decision != "" {
		query += " AND LOWER(decision) LIKE ?"
		args = append(args, "%"+strings.ToLower(filters.Decision)+"%")
	}

	query += " ORDER BY year, id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing subs: %w", err)
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

// Count returns the total number of submissions.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM subs").Scan(&count)
	return count, err
}

// Years returns a year -> submission count histogram.
func (d *DB) Years() (map[int]int, error) {
	rows, err := d.db.Query("SELECT year, COUNT(*) FROM subs GROUP BY year")
	if err != nil {
		return nil, fmt.Errorf("counting years: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var year, n int
		if err := rows.Scan(&year, &n); err != nil {
			return nil, err
		}
		counts[year] = n
	}
	return counts, rows.Err()
}

// Conferences returns a conference -> submission count histogram.
func (d *DB) Conferences() (map[string]int, error) {
	rows, err := d.db.Query("SELECT conference, COUNT(*) FROM subs GROUP BY conference")
	if err != nil {
		return nil, fmt.Errorf("counting conferences: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var conf string
		var n int
		if err := rows.Scan(&conf, &n); err != nil {
			return nil, err
		}
		counts[conf] = n
	}
	return counts, rows.Err()
}

// DecisionCounts returns a coarse decision-bucket histogram.
func (d *DB) DecisionCounts() (map[submission.DecisionBucket]int, error) {
	rows, err := d.db.Query("SELECT COALESCE(decision, ''), COUNT(*) FROM subs GROUP BY decision")
	if err != nil {
		return nil, fmt.Errorf("counting decisions: %w", err)
	}
	defer rows.Close()

	counts := make(map[submission.DecisionBucket]int)
	for rows.Next() {
		var decision string
		var n int
		if err := rows.Scan(&decision, &n); err != nil {
			return nil, err
		}
		s := submission.Submission{Decision: decision}
		counts[s.Bucket()] += n
	}
	return counts, rows.Err()
}

// CountWithSummary returns how many submissions carry a non-empty summary.
func (d *DB) CountWithSummary() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM subs WHERE summary IS NOT NULL AND summary != ''").Scan(&count)
	return count, err
}

// CountWithAbstract returns how many submissions carry a non-empty abstract.
func (d *DB) CountWithAbstract() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM subs WHERE abstract IS NOT NULL AND abstract != ''").Scan(&count)
	return count, err
}

// ListMissingAbstract returns submissions without an abstract (for PDF enrichment).
func (d *DB) ListMissingAbstract() ([]submission.Submission, error) {
	rows, err := d.db.Query(`
		SELECT ` + selectSubFields + `
		FROM subs
		WHERE abstract IS NULL OR abstract = ''
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing subs without abstract: %w", err)
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

// Search performs a full-text search and returns matching submissions.
func (d *DB) Search(query string, limit int) ([]submission.Submission, error) {
	ftsQuery := prepareFTSQuery(query)

	rows, err := d.db.Query(`
		SELECT `+selectSubFields+`
		FROM subs
		WHERE id IN (SELECT id FROM subs_fts WHERE subs_fts MATCH ?)
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(s scanner) (*submission.Submission, error) {
	var sub submission.Submission
	var forum, abstract, summary, tldr, keywordsJSON sql.NullString
	var venue, decision, pdfPath sql.NullString
	var number sql.NullInt64

	err := s.Scan(
		&sub.ID, &forum, &number, &sub.Title, &abstract, &summary, &tldr,
		&keywordsJSON, &sub.Conference, &venue, &sub.Year, &decision, &pdfPath,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	sub.Forum = forum.String
	sub.Abstract = abstract.String
	sub.Summary = summary.String
	sub.TLDR = tldr.String
	sub.Venue = venue.String
	sub.Decision = decision.String
	sub.PDFPath = pdfPath.String
	if number.Valid {
		sub.Number = int(number.Int64)
	}

	if keywordsJSON.Valid && keywordsJSON.String != "" {
		if err := json.Unmarshal([]byte(keywordsJSON.String), &sub.Keywords); err != nil {
			return nil, fmt.Errorf("parsing keywords for %s: %w", sub.ID, err)
		}
	}

	return &sub, nil
}

func scanSubmissions(rows *sql.Rows) ([]submission.Submission, error) {
	var subs []submission.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		if sub != nil {
			subs = append(subs, *sub)
		}
	}
	return subs, rows.Err()
}

func nullableString(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	// For simple queries, just pass the terms through.
	// FTS5 uses double quotes for phrase matching.
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}

// UpdatePDFPath sets the pdf_path for a submission in the cache.
// The canonical JSONL must be updated separately by the caller.
func (d *DB) UpdatePDFPath(id, pdfPath string) error {
	_, err := d.db.Exec("UPDATE subs SET pdf_path = ? WHERE id = ?", pdfPath, id)
	return err
}

// YearList returns the sorted list of distinct years in the corpus.
func (d *DB) YearList() ([]int, error) {
	rows, err := d.db.Query("SELECT DISTINCT year FROM subs ORDER BY year")
	if err != nil {
		return nil, fmt.Errorf("listing years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// KeywordCounts returns the document frequency of every normalized keyword,
// optionally restricted to a year (0 = all years).
func (d *DB) KeywordCounts(year int) (map[string]int, error) {
	query := "SELECT keywords_json FROM subs WHERE keywords_json IS NOT NULL"
	var args []interface{}
	if year > 0 {
		query += " AND year = ?"
		args = append(args, year)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying keywords: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var keywords []string
		if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
			continue // Tolerate malformed rows; rebuild fixes them
		}
		for _, kw := range keywords {
			counts[kw]++
		}
	}
	return counts, rows.Err()
}
