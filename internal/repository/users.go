// Package repository provides PostgreSQL persistence for the development
// API server: a typed users table for authentication and a JSONB-backed
// records table for every other collection.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/vietsport/eprofile/internal/models"
)

// sortedKeys returns map keys in a stable order so generated SQL is
// deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedAnyKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// OrderBy names a field to sort on and the direction.
type OrderBy struct {
	Field string
	Desc  bool
}

// identRe guards field names that get interpolated into ORDER BY and
// JSONB path expressions.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (o OrderBy) direction() string {
	if o.Desc {
		return "DESC"
	}
	return "ASC"
}

// PostgresUsersRepository implements user persistence against the typed
// users table. Auth columns are first-class; every other profile field
// lives in the profile JSONB column.
type PostgresUsersRepository struct {
	DB *sql.DB
}

// NewPostgresUsersRepository creates a PostgresUsersRepository with the
// given database connection.
func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{DB: db}
}

// typed columns of the users table, addressable in filters and updates.
var userColumns = map[string]string{
	"id":          "id::text",
	"email":       "email",
	"access_role": "access_role",
	"athlete_id":  "athlete_id::text",
	"staff_id":    "staff_id::text",
	"is_active":   "is_active::text",
	"created_at":  "created_at",
}

// EmailTaken reports whether a user with the given email exists.
func (r *PostgresUsersRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND deleted = false)`,
		email,
	).Scan(&exists)
	return exists, err
}

// Create inserts a new user and returns the assigned id. profile holds
// the loosely-typed fields that have no dedicated column.
func (r *PostgresUsersRepository) Create(
	ctx context.Context,
	email string,
	passwordHash []byte,
	accessRole string,
	createdAt string,
	profile map[string]any,
) (int64, error) {
	raw, err := json.Marshal(profile)
	if err != nil {
		return 0, fmt.Errorf("marshal profile: %w", err)
	}
	if profile == nil {
		raw = []byte(`{}`)
	}

	var id int64
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, access_role, created_at, profile)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, email, passwordHash, accessRole, createdAt, raw).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// GetByEmail fetches the auth credential for the given email.
// Returns sql.ErrNoRows when no such user exists.
func (r *PostgresUsersRepository) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	var c models.Credential
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash, access_role, athlete_id, staff_id, is_active, created_at
		  FROM users WHERE email = $1 AND deleted = false
	`, email).Scan(
		&c.UserID, &c.Email, &c.PasswordHash, &c.AccessRole,
		&c.AthleteID, &c.StaffID, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const userSelect = `
	SELECT id, email, access_role, athlete_id, staff_id, is_active, created_at, profile
	  FROM users WHERE deleted = false`

// GetByID fetches a single user as the merged column+profile object.
// Returns sql.ErrNoRows when no such user exists.
func (r *PostgresUsersRepository) GetByID(ctx context.Context, id int64) (map[string]any, error) {
	row := r.DB.QueryRowContext(ctx, userSelect+` AND id = $1`, id)
	return scanUser(row)
}

// List returns users matching the given equality filters, sorted per order.
// Filter and order fields resolve to typed columns when one exists, and to
// profile JSONB keys otherwise.
func (r *PostgresUsersRepository) List(ctx context.Context, filters map[string]string, order *OrderBy) ([]map[string]any, error) {
	query := userSelect
	args := make([]any, 0, len(filters))
	for _, field := range sortedKeys(filters) {
		expr, err := userFieldExpr(field)
		if err != nil {
			return nil, err
		}
		args = append(args, filters[field])
		query += fmt.Sprintf(" AND %s = $%d", expr, len(args))
	}
	if order != nil {
		expr, err := userFieldExpr(order.Field)
		if err != nil {
			return nil, err
		}
		if order.Field == "id" {
			expr = "id"
		}
		query += fmt.Sprintf(" ORDER BY %s %s", expr, order.direction())
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []map[string]any
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update applies the given fields to a user. Keys with a typed column
// update that column; everything else merges into the profile JSONB.
// Returns the refreshed merged object, or sql.ErrNoRows.
func (r *PostgresUsersRepository) Update(ctx context.Context, id int64, data map[string]any) (map[string]any, error) {
	sets := make([]string, 0, len(data))
	args := []any{id}
	extra := make(map[string]any)

	for _, field := range sortedAnyKeys(data) {
		if field == "id" || field == "password" {
			continue
		}
		if _, ok := userColumns[field]; ok {
			args = append(args, data[field])
			sets = append(sets, fmt.Sprintf("%s = $%d", field, len(args)))
			continue
		}
		if !identRe.MatchString(field) {
			return nil, fmt.Errorf("invalid field %q", field)
		}
		extra[field] = data[field]
	}
	if len(extra) > 0 {
		raw, err := json.Marshal(extra)
		if err != nil {
			return nil, fmt.Errorf("marshal profile patch: %w", err)
		}
		args = append(args, raw)
		sets = append(sets, fmt.Sprintf("profile = profile || $%d::jsonb", len(args)))
	}
	if len(sets) > 0 {
		query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $1 AND deleted = false`, strings.Join(sets, ", "))
		res, err := r.DB.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, sql.ErrNoRows
		}
	}
	return r.GetByID(ctx, id)
}

// Delete soft-deletes a user. Returns false when no row matched.
func (r *PostgresUsersRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET deleted = true, deleted_at = now()
		 WHERE id = $1 AND deleted = false
	`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func userFieldExpr(field string) (string, error) {
	if expr, ok := userColumns[field]; ok {
		return expr, nil
	}
	if !identRe.MatchString(field) {
		return "", fmt.Errorf("invalid field %q", field)
	}
	return fmt.Sprintf("profile->>'%s'", field), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (map[string]any, error) {
	var (
		id                 int64
		email, accessRole  string
		athleteID, staffID sql.NullInt64
		isActive           int
		createdAt          string
		profile            []byte
	)
	if err := row.Scan(&id, &email, &accessRole, &athleteID, &staffID, &isActive, &createdAt, &profile); err != nil {
		return nil, err
	}

	u := make(map[string]any)
	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &u); err != nil {
			return nil, fmt.Errorf("unmarshal profile: %w", err)
		}
	}
	u["id"] = id
	u["email"] = email
	u["access_role"] = accessRole
	u["is_active"] = isActive
	u["created_at"] = createdAt
	if athleteID.Valid {
		u["athlete_id"] = athleteID.Int64
	}
	if staffID.Valid {
		u["staff_id"] = staffID.Int64
	}
	return u, nil
}
