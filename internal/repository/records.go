package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresRecordsRepository stores every non-user collection as JSONB rows
// in a single records table keyed by collection name.
type PostgresRecordsRepository struct {
	DB *sql.DB
}

// NewPostgresRecordsRepository creates a PostgresRecordsRepository using
// the provided *sql.DB.
func NewPostgresRecordsRepository(db *sql.DB) *PostgresRecordsRepository {
	return &PostgresRecordsRepository{DB: db}
}

// List returns the rows of a collection matching the given equality
// filters, sorted per order. Filter values compare against the JSONB
// text representation of the field.
func (r *PostgresRecordsRepository) List(ctx context.Context, collection string, filters map[string]string, order *OrderBy) ([]map[string]any, error) {
	query := `SELECT id, data FROM records WHERE collection = $1 AND deleted = false`
	args := []any{collection}
	for _, field := range sortedKeys(filters) {
		if !identRe.MatchString(field) {
			return nil, fmt.Errorf("invalid field %q", field)
		}
		args = append(args, filters[field])
		query += fmt.Sprintf(" AND data->>'%s' = $%d", field, len(args))
	}
	if order != nil {
		expr := "id"
		if order.Field != "id" {
			if !identRe.MatchString(order.Field) {
				return nil, fmt.Errorf("invalid field %q", order.Field)
			}
			expr = fmt.Sprintf("data->>'%s'", order.Field)
		}
		query += fmt.Sprintf(" ORDER BY %s %s", expr, order.direction())
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get fetches a single row by id. Returns sql.ErrNoRows when the row does
// not exist in the collection.
func (r *PostgresRecordsRepository) Get(ctx context.Context, collection string, id int64) (map[string]any, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, data FROM records
		 WHERE collection = $1 AND id = $2 AND deleted = false
	`, collection, id)
	return scanRecord(row)
}

// Create inserts a new row and returns the stored object with its
// assigned id.
func (r *PostgresRecordsRepository) Create(ctx context.Context, collection string, data map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	var id int64
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO records (collection, data) VALUES ($1, $2) RETURNING id
	`, collection, raw).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", collection, err)
	}

	data["id"] = id
	return data, nil
}

// Update merges the given fields into a row's JSONB payload and returns
// the refreshed object. Returns sql.ErrNoRows when the row does not exist.
func (r *PostgresRecordsRepository) Update(ctx context.Context, collection string, id int64, data map[string]any) (map[string]any, error) {
	delete(data, "id")
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	var updated []byte
	err = r.DB.QueryRowContext(ctx, `
		UPDATE records SET data = data || $3::jsonb
		 WHERE collection = $1 AND id = $2 AND deleted = false
		RETURNING data
	`, collection, id, raw).Scan(&updated)
	if err != nil {
		return nil, err
	}

	rec := make(map[string]any)
	if err := json.Unmarshal(updated, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	rec["id"] = id
	return rec, nil
}

// Delete soft-deletes a row. Returns false when no row matched.
func (r *PostgresRecordsRepository) Delete(ctx context.Context, collection string, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE records SET deleted = true, deleted_at = now()
		 WHERE collection = $1 AND id = $2 AND deleted = false
	`, collection, id)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", collection, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func scanRecord(row rowScanner) (map[string]any, error) {
	var (
		id  int64
		raw []byte
	)
	if err := row.Scan(&id, &raw); err != nil {
		return nil, err
	}
	rec := make(map[string]any)
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	rec["id"] = id
	return rec, nil
}
