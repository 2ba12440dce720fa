package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const recordColumns = `id, text_digest, word_count, catalog_version, source, overall_score, rating,
       format_score, skill_score, regional_score, result, created_at`

// Create inserts a new record.
func (r *PGRepo) Create(ctx context.Context, record Record) error {
	const query = `
INSERT INTO analysis_records (
	id, text_digest, word_count, catalog_version, source, overall_score, rating,
	format_score, skill_score, regional_score, result, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	payload, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		record.ID,
		record.TextDigest,
		record.WordCount,
		record.CatalogVersion,
		string(record.Source),
		record.OverallScore,
		record.Rating,
		record.FormatScore,
		record.SkillScore,
		record.RegionalScore,
		payload,
		record.CreatedAt,
	)
	return err
}

// GetByID returns a record by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Record, error) {
	query := `SELECT ` + recordColumns + ` FROM analysis_records WHERE id = $1 LIMIT 1`
	record, err := scanRecord(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return record, nil
}

// List returns records newest first, with limit/offset.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Record, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := `SELECT ` + recordColumns + ` FROM analysis_records ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec     Record
		source  string
		payload []byte
	)
	err := row.Scan(
		&rec.ID,
		&rec.TextDigest,
		&rec.WordCount,
		&rec.CatalogVersion,
		&source,
		&rec.OverallScore,
		&rec.Rating,
		&rec.FormatScore,
		&rec.SkillScore,
		&rec.RegionalScore,
		&payload,
		&rec.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	rec.Source = Source(source)
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &rec.Result); err != nil {
			return Record{}, fmt.Errorf("decode result for %s: %w", rec.ID, err)
		}
	}
	return rec, nil
}
