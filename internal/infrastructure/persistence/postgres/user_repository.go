package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"profile-api/internal/database"
	"profile-api/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// UserRepository stores each user as one JSONB document. id, email and
// the timestamps are projected into columns for lookup, ordering and the
// unique index on lower(email).
type UserRepository struct {
	db database.DB
}

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	doc, err := encodeDocument(u)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO users (id, email, document, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, doc, u.CreatedAt, u.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.Query(ctx, `SELECT document FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT document FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, u user.User) error {
	doc, err := encodeDocument(u)
	if err != nil {
		return err
	}

	n, err := r.db.Exec(ctx,
		`UPDATE users SET email = $2, document = $3, updated_at = $4 WHERE id = $1`,
		u.ID, u.Email, doc, u.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err)
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var doc []byte
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return decodeDocument(doc)
}

func encodeDocument(u user.User) ([]byte, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("encode user document: %w", err)
	}
	return b, nil
}

func decodeDocument(b []byte) (user.User, error) {
	var u user.User
	if err := json.Unmarshal(b, &u); err != nil {
		return user.User{}, fmt.Errorf("decode user document: %w", err)
	}
	return u, nil
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", user.ErrEmailTaken, pgErr.ConstraintName)
	}
	return err
}
