package enquiry

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, e *Enquiry) error {
	const query = `
	INSERT INTO enquiries (id, name, email, phone, message, project_id, source)
	VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
	RETURNING created_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query,
		e.ID,
		e.Name,
		e.Email,
		e.Phone,
		e.Message,
		e.ProjectID,
		string(e.Source),
	).Scan(&e.CreatedAt)
}
