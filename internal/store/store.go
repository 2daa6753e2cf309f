// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists enriched records in a local SQLite library,
// organized into named collections. Saving a collection replaces it; a
// collection always reflects its latest pass.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/citeseek/pkg/types"
)

const dbFile = "citeseek.db"

// Store manages the library database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the library database at dir/citeseek.db,
// creating the schema when missing.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening library database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			success INTEGER NOT NULL,
			partial INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			saved_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			collection TEXT NOT NULL REFERENCES collections(name) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			url TEXT,
			record_type TEXT,
			identifier TEXT,
			doi TEXT,
			authors TEXT,
			year INTEGER,
			abstract TEXT,
			venue TEXT,
			volume TEXT,
			issue TEXT,
			pages TEXT,
			publisher TEXT,
			extras TEXT,
			confidence REAL,
			method TEXT,
			resolution TEXT,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_collection ON records(collection)`,
		`CREATE INDEX IF NOT EXISTS idx_records_doi ON records(doi)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveBatch stores a batch result under a collection name, replacing any
// previous contents of that collection atomically.
func (s *Store) SaveBatch(ctx context.Context, collection string, result types.BatchResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE collection = ?`, collection); err != nil {
		return fmt.Errorf("clearing collection: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO collections (name, success, partial, failed, saved_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			success=excluded.success, partial=excluded.partial,
			failed=excluded.failed, saved_at=excluded.saved_at`,
		collection, result.Success, result.Partial, result.Failed,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting collection: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (collection, position, title, url, record_type,
			identifier, doi, authors, year, abstract, venue, volume, issue,
			pages, publisher, extras, confidence, method, resolution, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range result.Records {
		authorsJSON, _ := json.Marshal(rec.Authors)
		extrasJSON, _ := json.Marshal(rec.Extras)
		_, err := stmt.ExecContext(ctx,
			collection, i, rec.Title, rec.URL, string(rec.Type),
			rec.Identifier, rec.DOI, string(authorsJSON), rec.Year,
			rec.Abstract, rec.Venue, rec.Volume, rec.Issue,
			rec.Pages, rec.Publisher, string(extrasJSON),
			rec.Confidence, rec.Method, string(rec.Resolution), rec.Error,
		)
		if err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// CollectionInfo summarizes one stored collection.
type CollectionInfo struct {
	Name    string
	Success int
	Partial int
	Failed  int
	SavedAt time.Time
}

// Collections lists the stored collections, newest first.
func (s *Store) Collections(ctx context.Context) ([]CollectionInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, success, partial, failed, saved_at
		 FROM collections ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying collections: %w", err)
	}
	defer rows.Close()

	var infos []CollectionInfo
	for rows.Next() {
		var info CollectionInfo
		var savedAt string
		if err := rows.Scan(&info.Name, &info.Success, &info.Partial, &info.Failed, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning collection row: %w", err)
		}
		info.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Records loads a collection's enriched records in their stored order.
func (s *Store) Records(ctx context.Context, collection string) ([]types.EnrichedRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, url, record_type, identifier, doi, authors, year,
			abstract, venue, volume, issue, pages, publisher, extras,
			confidence, method, resolution, error
		 FROM records WHERE collection = ? ORDER BY position`, collection)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.EnrichedRecord
	for rows.Next() {
		var rec types.EnrichedRecord
		var recordType, resolution, authorsJSON, extrasJSON string
		if err := rows.Scan(&rec.Title, &rec.URL, &recordType, &rec.Identifier,
			&rec.DOI, &authorsJSON, &rec.Year, &rec.Abstract, &rec.Venue,
			&rec.Volume, &rec.Issue, &rec.Pages, &rec.Publisher, &extrasJSON,
			&rec.Confidence, &rec.Method, &resolution, &rec.Error); err != nil {
			return nil, fmt.Errorf("scanning record row: %w", err)
		}
		rec.Type = types.RecordType(recordType)
		rec.Resolution = types.Resolution(resolution)
		_ = json.Unmarshal([]byte(authorsJSON), &rec.Authors)
		_ = json.Unmarshal([]byte(extrasJSON), &rec.Extras)
		records = append(records, rec)
	}
	return records, rows.Err()
}
