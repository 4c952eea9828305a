package postgres

import (
	"context"
	"errors"

	"go-posting-workflow/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type capacityRepo struct {
	db *pgxpool.Pool
}

// NewCapacityRepository answers the publish-time capacity check: does the
// author have job-posting credit remaining?
func NewCapacityRepository(db *pgxpool.Pool) domain.CapacityChecker {
	return &capacityRepo{db: db}
}

func (r *capacityRepo) HasRemainingCredit(ctx context.Context, authorID string) (bool, error) {
	var remaining int
	err := r.db.QueryRow(ctx,
		`SELECT remaining FROM posting_credits WHERE author_id = $1`, authorID,
	).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No credit row means no credit purchased
			return false, nil
		}
		return false, err
	}
	return remaining > 0, nil
}
