package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/studybuddy-api/internal/models"
)

const userColumns = `id, email, name, username, avatar_url, is_admin, is_super_admin, is_banned, banned_reason, last_active_at, created_at, updated_at`

// UserRepository reads and updates application user rows.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// TouchLastActive stamps the user's last activity time.
func (r *UserRepository) TouchLastActive(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE users SET last_active_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, ts); err != nil {
		return fmt.Errorf("touch last active: %w", err)
	}
	return nil
}

// banUser marks the user as banned with the given reason.
func banUser(ctx context.Context, exec sqlx.ExecerContext, id, reason string, ts time.Time) error {
	const query = `UPDATE users SET is_banned = TRUE, banned_reason = $2, updated_at = $3 WHERE id = $1`
	res, err := exec.ExecContext(ctx, query, id, reason, ts)
	if err != nil {
		return fmt.Errorf("ban user: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ExistingIDs filters ids down to those with a user row.
func (r *UserRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `SELECT id FROM users WHERE id = ANY($1)`
	var found []string
	if err := r.db.SelectContext(ctx, &found, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("lookup user ids: %w", err)
	}
	return found, nil
}
