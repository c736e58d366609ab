package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-message-service/internal/domain"
)

// SupportMessageRepository encapsulates support message persistence.
// Body values cross this boundary only in their encrypted serialized
// form; the repository never sees plaintext.
type SupportMessageRepository interface {
	Create(ctx context.Context, msg *domain.SupportMessage) error
	Update(ctx context.Context, msg *domain.SupportMessage) error
	GetByID(ctx context.Context, id string) (*domain.SupportMessage, error)
	ListCreatedSince(ctx context.Context, cutoff time.Time) ([]domain.SupportMessage, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.SupportMessage, error)
}

type supportMessageRepository struct {
	pool *pgxpool.Pool
}

// NewSupportMessageRepository returns a Postgres-backed implementation.
func NewSupportMessageRepository(pool *pgxpool.Pool) SupportMessageRepository {
	return &supportMessageRepository{pool: pool}
}

func (r *supportMessageRepository) Create(ctx context.Context, msg *domain.SupportMessage) error {
	const query = `
        INSERT INTO support_messages (user_id, title, body, priority, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		msg.UserID,
		msg.Title,
		msg.Body,
		msg.Priority,
		msg.Status,
	).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)
}

func (r *supportMessageRepository) Update(ctx context.Context, msg *domain.SupportMessage) error {
	const query = `
        UPDATE support_messages SET status=$1, first_response_at=$2, resolved_at=$3, closed_at=$4, updated_at=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		msg.Status,
		msg.FirstResponseAt,
		msg.ResolvedAt,
		msg.ClosedAt,
		msg.UpdatedAt,
		msg.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *supportMessageRepository) GetByID(ctx context.Context, id string) (*domain.SupportMessage, error) {
	const query = `
        SELECT id, user_id, title, body, priority, status,
               created_at, updated_at, first_response_at, resolved_at, closed_at
        FROM support_messages WHERE id=$1`
	var msg domain.SupportMessage
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID,
		&msg.UserID,
		&msg.Title,
		&msg.Body,
		&msg.Priority,
		&msg.Status,
		&msg.CreatedAt,
		&msg.UpdatedAt,
		&msg.FirstResponseAt,
		&msg.ResolvedAt,
		&msg.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *supportMessageRepository) ListCreatedSince(ctx context.Context, cutoff time.Time) ([]domain.SupportMessage, error) {
	const query = `
        SELECT id, user_id, title, body, priority, status,
               created_at, updated_at, first_response_at, resolved_at, closed_at
        FROM support_messages WHERE created_at >= $1
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSupportMessages(rows)
}

func (r *supportMessageRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.SupportMessage, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, user_id, title, body, priority, status,
               created_at, updated_at, first_response_at, resolved_at, closed_at
        FROM support_messages WHERE user_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSupportMessages(rows)
}

func scanSupportMessages(rows pgx.Rows) ([]domain.SupportMessage, error) {
	var result []domain.SupportMessage
	for rows.Next() {
		var msg domain.SupportMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.UserID,
			&msg.Title,
			&msg.Body,
			&msg.Priority,
			&msg.Status,
			&msg.CreatedAt,
			&msg.UpdatedAt,
			&msg.FirstResponseAt,
			&msg.ResolvedAt,
			&msg.ClosedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
