package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"saenggibu-backend/internal/analyses"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const recordColumns = `id, owner_id, student_profile, career_direction, overall_score,
       strengths, improvements, result, is_private, likes, saves, created_at`

// Create inserts a new shared record.
func (r *PGRepo) Create(ctx context.Context, record SharedRecord) error {
	const query = `
INSERT INTO shared_records (
	id, owner_id, student_profile, career_direction, overall_score,
	strengths, improvements, result, is_private, likes, saves, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	strengths, err := marshalJSONB(record.Strengths)
	if err != nil {
		return err
	}
	improvements, err := marshalJSONB(record.Improvements)
	if err != nil {
		return err
	}
	result, err := marshalJSONB(record.Result)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		record.ID,
		record.OwnerID,
		record.StudentProfile,
		record.CareerDirection,
		record.OverallScore,
		strengths,
		improvements,
		result,
		record.IsPrivate,
		record.Likes,
		record.Saves,
		record.CreatedAt,
	)
	return err
}

// GetByID returns a record by ID.
func (r *PGRepo) GetByID(ctx context.Context, recordID string) (SharedRecord, error) {
	const query = `
SELECT ` + recordColumns + `
FROM shared_records
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, recordID)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SharedRecord{}, ErrNotFound
	}
	return record, err
}

// Delete removes a record.
func (r *PGRepo) Delete(ctx context.Context, recordID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM shared_records WHERE id = $1`, recordID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListViewable returns public records plus the viewer's private ones,
// newest first.
func (r *PGRepo) ListViewable(ctx context.Context, viewerID string) ([]SharedRecord, error) {
	const query = `
SELECT ` + recordColumns + `
FROM shared_records
WHERE is_private = FALSE OR owner_id = $1
ORDER BY created_at DESC`
	return r.list(ctx, query, viewerID)
}

// ListPublicSince returns public records created at or after since,
// newest first.
func (r *PGRepo) ListPublicSince(ctx context.Context, since time.Time) ([]SharedRecord, error) {
	const query = `
SELECT ` + recordColumns + `
FROM shared_records
WHERE is_private = FALSE AND created_at >= $1
ORDER BY created_at DESC`
	return r.list(ctx, query, since)
}

// ListByOwner returns the owner's records, newest first, up to limit.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]SharedRecord, error) {
	const query = `
SELECT ` + recordColumns + `
FROM shared_records
WHERE owner_id = $1
ORDER BY created_at DESC
LIMIT $2`
	return r.list(ctx, query, ownerID, limit)
}

// IncrementLikes bumps the like counter and returns the new value.
func (r *PGRepo) IncrementLikes(ctx context.Context, recordID string) (int, error) {
	return r.increment(ctx, recordID, "likes")
}

// IncrementSaves bumps the save counter and returns the new value.
func (r *PGRepo) IncrementSaves(ctx context.Context, recordID string) (int, error) {
	return r.increment(ctx, recordID, "saves")
}

func (r *PGRepo) increment(ctx context.Context, recordID, column string) (int, error) {
	// column is one of two fixed names, never caller input.
	query := `UPDATE shared_records SET ` + column + ` = ` + column + ` + 1 WHERE id = $1 RETURNING ` + column
	var value int
	err := r.DB.QueryRowContext(ctx, query, recordID).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return value, err
}

func (r *PGRepo) list(ctx context.Context, query string, args ...any) ([]SharedRecord, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SharedRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (SharedRecord, error) {
	var record SharedRecord
	var strengths, improvements, result sql.NullString
	err := row.Scan(
		&record.ID,
		&record.OwnerID,
		&record.StudentProfile,
		&record.CareerDirection,
		&record.OverallScore,
		&strengths,
		&improvements,
		&result,
		&record.IsPrivate,
		&record.Likes,
		&record.Saves,
		&record.CreatedAt,
	)
	if err != nil {
		return SharedRecord{}, err
	}
	if strengths.Valid {
		_ = json.Unmarshal([]byte(strengths.String), &record.Strengths)
	}
	if improvements.Valid {
		_ = json.Unmarshal([]byte(improvements.String), &record.Improvements)
	}
	if result.Valid && result.String != "null" {
		var parsed analyses.AnalysisResult
		if err := json.Unmarshal([]byte(result.String), &parsed); err == nil {
			record.Result = &parsed
		}
	}
	return record, nil
}

func marshalJSONB(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

var _ Repo = (*PGRepo)(nil)
