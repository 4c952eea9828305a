package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-posting-workflow/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type templateRepo struct {
	db *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) domain.TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) FetchByAuthor(ctx context.Context, authorID string) ([]domain.Template, error) {
	query := `SELECT id, name, category, description, data, created_at FROM user_templates
	          WHERE author_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tpl)
	}
	return templates, rows.Err()
}

func (r *templateRepo) GetByID(ctx context.Context, authorID, id string) (*domain.Template, error) {
	query := `SELECT id, name, category, description, data, created_at FROM user_templates
	          WHERE author_id = $1 AND id = $2`
	tpl, err := scanTemplate(r.db.QueryRow(ctx, query, authorID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return tpl, nil
}

func (r *templateRepo) Append(ctx context.Context, authorID string, tpl *domain.Template) error {
	data, err := json.Marshal(tpl.Data)
	if err != nil {
		return fmt.Errorf("marshal template data: %w", err)
	}
	query := `INSERT INTO user_templates (id, author_id, name, category, description, data, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.Exec(ctx, query, tpl.ID, authorID, tpl.Name, tpl.Category, tpl.Description, data, tpl.CreatedAt)
	return err
}

func (r *templateRepo) DeleteByID(ctx context.Context, authorID, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM user_templates WHERE author_id = $1 AND id = $2`, authorID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTemplate(row pgx.Row) (*domain.Template, error) {
	var tpl domain.Template
	var data []byte
	if err := row.Scan(&tpl.ID, &tpl.Name, &tpl.Category, &tpl.Description, &data, &tpl.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &tpl.Data); err != nil {
		return nil, fmt.Errorf("unmarshal template data: %w", err)
	}
	return &tpl, nil
}
