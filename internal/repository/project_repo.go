package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"verbatim/internal/models"
)

type ProjectRepository struct {
	db   *sql.DB
	bind Binder
}

func NewProjectRepository(db *sql.DB, bind Binder) *ProjectRepository {
	return &ProjectRepository{db: db, bind: bind}
}

var _ Projects = (*ProjectRepository)(nil)

const (
	insertProjectSQL = `INSERT INTO projects (id, user_id, name, description, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectProjectSQL = `SELECT id, user_id, name, description, status, created_at, updated_at FROM projects`

	selectProjectsByOwnerSQL = selectProjectSQL + ` WHERE user_id = ? ORDER BY created_at DESC`
	selectProjectOwnedSQL    = selectProjectSQL + ` WHERE id = ? AND user_id = ?`
	deleteProjectOwnedSQL    = `DELETE FROM projects WHERE id = ? AND user_id = ?`
)

func (r *ProjectRepository) Insert(ctx context.Context, p *models.Project) error {
	_, err := r.db.ExecContext(ctx, r.bind(insertProjectSQL),
		p.ID, p.UserID, p.Name, p.Description, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert project %q: %w", p.ID, err)
	}
	return nil
}

// ListByOwner returns the owner's projects, newest first.
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, r.bind(selectProjectsByOwnerSQL), ownerID)
	if err != nil {
		return nil, fmt.Errorf("select projects for owner %q: %w", ownerID, err)
	}
	defer func() { _ = rows.Close() }()

	projects := make([]models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project rows: %w", err)
	}
	return projects, nil
}

// GetOwned fetches a project by id scoped to its owner.
// Returns (nil, nil) when the row is absent or owned by someone else.
func (r *ProjectRepository) GetOwned(ctx context.Context, id, ownerID string) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx, r.bind(selectProjectOwnedSQL), id, ownerID)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select project %q: %w", id, err)
	}
	return &p, nil
}

// UpdateOwned applies the non-nil patch fields and returns the updated row.
// Returns (nil, nil) when no owned row matched.
func (r *ProjectRepository) UpdateOwned(ctx context.Context, id, ownerID string, patch ProjectPatch) (*models.Project, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	args = append(args, id, ownerID)

	query := fmt.Sprintf(`UPDATE projects SET %s WHERE id = ? AND user_id = ?`, strings.Join(sets, ", "))
	res, err := r.db.ExecContext(ctx, r.bind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("update project %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected for project %q: %w", id, err)
	}
	if affected == 0 {
		return nil, nil
	}
	return r.GetOwned(ctx, id, ownerID)
}

// DeleteOwned removes an owned project row, reporting whether one matched.
func (r *ProjectRepository) DeleteOwned(ctx context.Context, id, ownerID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.bind(deleteProjectOwnedSQL), id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete project %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for project %q: %w", id, err)
	}
	return affected > 0, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (models.Project, error) {
	var (
		p    models.Project
		desc sql.NullString
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &desc, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Project{}, err
	}
	p.Description = desc.String
	return p, nil
}
