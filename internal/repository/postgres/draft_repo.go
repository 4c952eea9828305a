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

type draftRepo struct {
	db *pgxpool.Pool
}

func NewDraftRepository(db *pgxpool.Pool) domain.DraftRepository {
	return &draftRepo{db: db}
}

func (r *draftRepo) Upsert(ctx context.Context, draft *domain.Draft) error {
	data, err := json.Marshal(draft.FormData)
	if err != nil {
		return fmt.Errorf("marshal draft form data: %w", err)
	}
	query := `INSERT INTO workflow_drafts (id, author_id, form_data, step, last_saved)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (id) DO UPDATE SET
	              form_data = EXCLUDED.form_data,
	              step = EXCLUDED.step,
	              last_saved = EXCLUDED.last_saved`
	_, err = r.db.Exec(ctx, query, draft.ID, draft.AuthorID, data, draft.Step, draft.LastSaved)
	return err
}

func (r *draftRepo) Latest(ctx context.Context, authorID string) (*domain.Draft, error) {
	query := `SELECT id, author_id, form_data, step, last_saved FROM workflow_drafts
	          WHERE author_id = $1 ORDER BY last_saved DESC LIMIT 1`
	draft, err := scanDraft(r.db.QueryRow(ctx, query, authorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return draft, nil
}

func (r *draftRepo) FetchByAuthor(ctx context.Context, authorID string) ([]domain.Draft, error) {
	query := `SELECT id, author_id, form_data, step, last_saved FROM workflow_drafts
	          WHERE author_id = $1 ORDER BY last_saved DESC`
	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []domain.Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, *draft)
	}
	return drafts, rows.Err()
}

func (r *draftRepo) DeleteAllByAuthor(ctx context.Context, authorID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM workflow_drafts WHERE author_id = $1`, authorID)
	return err
}

func scanDraft(row pgx.Row) (*domain.Draft, error) {
	var draft domain.Draft
	var data []byte
	if err := row.Scan(&draft.ID, &draft.AuthorID, &data, &draft.Step, &draft.LastSaved); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &draft.FormData); err != nil {
		return nil, fmt.Errorf("unmarshal draft form data: %w", err)
	}
	return &draft, nil
}
