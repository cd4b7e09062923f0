package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
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

const projectColumns = `id, title, description, category, location, label,
	images, documents, features, specifications`

func (r *PostgresRepo) List(ctx context.Context, f ListFilter) ([]Project, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if f.Category != "" && f.Category != CategoryAll {
		clauses = append(clauses, fmt.Sprintf("category = $%d", argn))
		args = append(args, string(f.Category))
		argn++
	}

	if q := f.Search; q != "" {
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR COALESCE(location, '') ILIKE $%d)", argn, argn, argn))
		args = append(args, "%"+escapeLike(q)+"%")
		argn++
	}

	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s ORDER BY id`, projectColumns, strings.Join(clauses, " AND "))

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int) (Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE id = $1 LIMIT 1`, projectColumns)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	p, err := scanProject(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	return p, nil
}

// Upsert writes p keyed by its id.
func (r *PostgresRepo) Upsert(ctx context.Context, p Project) error {
	const sql = `
		INSERT INTO projects (id, title, description, category, location, label,
		                      images, documents, features, specifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			location = EXCLUDED.location,
			label = EXCLUDED.label,
			images = EXCLUDED.images,
			documents = EXCLUDED.documents,
			features = EXCLUDED.features,
			specifications = EXCLUDED.specifications,
			updated_at = NOW()`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, sql,
		p.ID, p.Title, p.Description, string(p.Category), nullable(p.Location), nullable(p.Label),
		nonNil(p.Images), nonNil(p.Documents), nonNil(p.Features), nonNil(p.Specifications),
	)
	return err
}

func scanProject(row pgx.Row) (Project, error) {
	var (
		p               Project
		category        string
		location, label *string
	)
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &category, &location, &label,
		&p.Images, &p.Documents, &p.Features, &p.Specifications,
	); err != nil {
		return Project{}, err
	}
	p.Category = Category(category)
	if location != nil {
		p.Location = *location
	}
	if label != nil {
		p.Label = *label
	}
	return p, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
