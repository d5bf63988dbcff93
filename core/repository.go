package core

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRecord is the identity projection stored in the persistence layer.
// The authentication core only ever reads it.
type UserRecord struct {
	ID           int64
	Username     string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
}

// UserRepository defines persistence operations for identities.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*UserRecord, error)
	Create(ctx context.Context, username, passwordHash string, roles ...string) (int64, error)
	HasUsers(ctx context.Context) (bool, error)
}

// PgUserRepository implements UserRepository using pgxpool.
type PgUserRepository struct {
	db *pgxpool.Pool
}

func NewPgUserRepository(db *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{db: db}
}

func (r *PgUserRepository) FindByUsername(ctx context.Context, username string) (*UserRecord, error) {
	const q = `SELECT id, username, password_hash, created_at FROM users WHERE username=$1`
	var u UserRecord
	if err := r.db.QueryRow(ctx, q, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
SELECT r.name
FROM roles r
JOIN user_roles ur ON ur.role_id = r.id
WHERE ur.user_id = $1
ORDER BY r.name
`, u.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		u.Roles = append(u.Roles, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts the user and grants the given roles in one transaction.
func (r *PgUserRepository) Create(ctx context.Context, username, passwordHash string, roles ...string) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1,$2) RETURNING id`,
		username, passwordHash,
	).Scan(&id); err != nil {
		return 0, err
	}

	for _, role := range roles {
		var roleID int64
		if err := tx.QueryRow(ctx, `
INSERT INTO roles (name) VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`, role).Scan(&roleID); err != nil {
			return 0, err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
			id, roleID,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PgUserRepository) HasUsers(ctx context.Context) (bool, error) {
	const q = `SELECT 1 FROM users LIMIT 1`
	var one int
	if err := r.db.QueryRow(ctx, q).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
