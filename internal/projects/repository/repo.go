package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nordiccodeworks/portfolio-backend/internal/projects/domain"
)

const projectColumns = `id, title, description, technologies, status, start_date, completion_date,
github_link, live_link, image_url, featured, display_order, created_at, updated_at`

// ProjectRepository provides persistence operations for projects.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project and returns it with system-assigned fields.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	q := fmt.Sprintf(`
INSERT INTO projects (id, title, description, technologies, status, start_date, completion_date,
                      github_link, live_link, image_url, featured, display_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING %s;
`, projectColumns)

	row := r.db.QueryRowContext(ctx, q,
		p.ID, p.Title, p.Description, pq.Array(p.Technologies), p.Status,
		p.StartDate, p.CompletionDate, p.GithubLink, p.LiveLink, p.ImageURL,
		p.Featured, p.DisplayOrder,
	)
	return scanProject(row)
}

// GetByID returns a single project or domain.ErrNotFound.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	q := fmt.Sprintf(`SELECT %s FROM projects WHERE id = $1;`, projectColumns)
	return scanProject(r.db.QueryRowContext(ctx, q, id))
}

// List returns projects matching the filter, ordered for display.
func (r *ProjectRepository) List(ctx context.Context, f domain.Filter) ([]domain.Project, error) {
	var (
		where []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		where = append(where, "status = "+arg(string(f.Status)))
	}
	if f.Technology != "" {
		where = append(where, arg(f.Technology)+" = ANY(technologies)")
	}
	if f.StartedAfter != nil {
		where = append(where, "start_date >= "+arg(*f.StartedAfter))
	}
	if f.StartedBefore != nil {
		where = append(where, "start_date <= "+arg(*f.StartedBefore))
	}
	if f.Featured != nil {
		where = append(where, "featured = "+arg(*f.Featured))
	}

	q := fmt.Sprintf(`SELECT %s FROM projects`, projectColumns)
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY display_order ASC, created_at DESC"
	if f.Limit > 0 {
		q += " LIMIT " + arg(f.Limit)
	}
	if f.Offset > 0 {
		q += " OFFSET " + arg(f.Offset)
	}
	q += ";"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProjectRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the non-nil patch fields and refreshes updated_at.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Project, error) {
	var (
		sets []string
		args []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if patch.Title != nil {
		sets = append(sets, "title = "+arg(*patch.Title))
	}
	if patch.Description != nil {
		sets = append(sets, "description = "+arg(*patch.Description))
	}
	if patch.Technologies != nil {
		sets = append(sets, "technologies = "+arg(pq.Array(*patch.Technologies)))
	}
	if patch.Status != nil {
		sets = append(sets, "status = "+arg(string(*patch.Status)))
	}
	if patch.StartDate != nil {
		sets = append(sets, "start_date = "+arg(*patch.StartDate))
	}
	if patch.CompletionDate != nil {
		sets = append(sets, "completion_date = "+arg(*patch.CompletionDate))
	}
	if patch.GithubLink != nil {
		sets = append(sets, "github_link = "+arg(*patch.GithubLink))
	}
	if patch.LiveLink != nil {
		sets = append(sets, "live_link = "+arg(*patch.LiveLink))
	}
	if patch.ImageURL != nil {
		sets = append(sets, "image_url = "+arg(*patch.ImageURL))
	}
	if patch.Featured != nil {
		sets = append(sets, "featured = "+arg(*patch.Featured))
	}
	if patch.DisplayOrder != nil {
		sets = append(sets, "display_order = "+arg(*patch.DisplayOrder))
	}

	// clock_timestamp() keeps updated_at strictly increasing even inside
	// a single transaction.
	sets = append(sets, "updated_at = clock_timestamp()")

	q := fmt.Sprintf(`
UPDATE projects
SET %s
WHERE id = %s
RETURNING %s;
`, strings.Join(sets, ", "), arg(id), projectColumns)

	return scanProject(r.db.QueryRowContext(ctx, q, args...))
}

// Delete removes the project. Returns domain.ErrNotFound if no row matched.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	p, err := scanProjectRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanProjectRow(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, pq.Array(&p.Technologies), &p.Status,
		&p.StartDate, &p.CompletionDate, &p.GithubLink, &p.LiveLink, &p.ImageURL,
		&p.Featured, &p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
