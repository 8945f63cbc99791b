package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/docdig"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docdig.Manifest = (*ManifestService)(nil)

// ManifestService implements docdig.Manifest using SQLite.
type ManifestService struct {
	db *DB
}

// NewManifestService creates a new ManifestService.
func NewManifestService(db *DB) *ManifestService {
	return &ManifestService{db: db}
}

// Record upserts a page record keyed by seed and URL. A record without an
// ID is assigned one; re-recording a page keeps the original row ID.
func (s *ManifestService) Record(ctx context.Context, rec *docdig.PageRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.ScrapedAt.IsZero() {
		rec.ScrapedAt = time.Now()
	}
	if rec.Status == "" {
		rec.Status = docdig.PageWritten
	}
	format := rec.Format
	if format == "" {
		format = docdig.FormatMarkdown
	}

	_, err := s.db.conn.ExecContext(ctx, `
		INSERT INTO pages (id, seed, url, path, format, title, content_hash, status, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (seed, url) DO UPDATE SET
			path = excluded.path,
			format = excluded.format,
			title = excluded.title,
			content_hash = excluded.content_hash,
			status = excluded.status,
			scraped_at = excluded.scraped_at
	`, rec.ID, rec.Seed, rec.URL, rec.Path, string(format), rec.Title, rec.ContentHash, rec.Status,
		rec.ScrapedAt.UTC().Format(time.RFC3339))

	return err
}

// FindPages returns every record for seed ordered by path.
func (s *ManifestService) FindPages(ctx context.Context, seed string) ([]*docdig.PageRecord, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT id, seed, url, path, format, title, content_hash, status, scraped_at
		FROM pages
		WHERE seed = ?
		ORDER BY path ASC, url ASC
	`, seed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*docdig.PageRecord
	for rows.Next() {
		var rec docdig.PageRecord
		var format, scrapedAt string
		if err := rows.Scan(&rec.ID, &rec.Seed, &rec.URL, &rec.Path, &format, &rec.Title,
			&rec.ContentHash, &rec.Status, &scrapedAt); err != nil {
			return nil, err
		}
		rec.Format = docdig.Format(format)
		if rec.ScrapedAt, err = time.Parse(time.RFC3339, scrapedAt); err != nil {
			return nil, fmt.Errorf("parse scraped_at of %s: %w", rec.URL, err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
