package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-api/internal/model"
)

// SessionRepository persists sessions as JSONB documents keyed by sid.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Get returns ErrSessionNotFound for unknown and expired sessions alike.
func (r *SessionRepository) Get(ctx context.Context, sid string) (model.Session, error) {
	s := model.Session{ID: sid}
	err := r.pool.QueryRow(ctx,
		`SELECT data, created_at, expires_at FROM sessions
		 WHERE sid = $1 AND expires_at > now()`, sid).
		Scan(&s.Identity, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Session{}, model.ErrSessionNotFound
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

// Set upserts the session document; the last write for a sid wins.
func (r *SessionRepository) Set(ctx context.Context, s model.Session) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (sid, data, created_at, expires_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (sid) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at`,
		s.ID, s.Identity, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Destroy(ctx context.Context, sid string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE sid = $1`, sid)
	if err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (r *SessionRepository) CleanExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("clean expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
