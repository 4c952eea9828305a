package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"go-posting-workflow/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type postingRepo struct {
	db *pgxpool.Pool
}

// NewPostingRepository returns the external job-store adapter the submission
// gate hands finalized postings to.
func NewPostingRepository(db *pgxpool.Pool) domain.PostingStore {
	return &postingRepo{db: db}
}

func (r *postingRepo) Create(ctx context.Context, p *domain.FinalizedPosting) error {
	questions, err := json.Marshal(p.CustomQuestions)
	if err != nil {
		return fmt.Errorf("marshal custom questions: %w", err)
	}
	query := `INSERT INTO postings (
	              id, author_id, title, employment_type, location, remote_type, seniority_level,
	              description, responsibilities, requirements, skills,
	              salary_min, salary_max, currency, salary_period, benefits,
	              application_method, external_link, application_email,
	              require_cover_letter, require_portfolio, custom_questions,
	              status, publish_date, expiration_date, auto_expire, promote_job,
	              applicant_count, view_count, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
	                  $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30)`
	_, err = r.db.Exec(ctx, query,
		p.ID, p.AuthorID, p.Title, p.EmploymentType, p.Location, p.RemoteType, p.SeniorityLevel,
		p.Description, pq.Array(p.Responsibilities), pq.Array(p.Requirements), pq.Array(p.Skills),
		p.SalaryMin, p.SalaryMax, p.Currency, p.SalaryPeriod, pq.Array(p.Benefits),
		p.ApplicationMethod, p.ExternalLink, p.ApplicationEmail,
		p.RequireCoverLetter, p.RequirePortfolio, questions,
		p.Status, p.PublishDate, p.ExpirationDate, p.AutoExpire, p.PromoteJob,
		p.ApplicantCount, p.ViewCount, p.CreatedAt,
	)
	return err
}

func (r *postingRepo) FetchActive(ctx context.Context, limit, offset int) ([]domain.FinalizedPosting, int64, error) {
	query := `SELECT id, author_id, title, employment_type, location, remote_type, seniority_level,
	                 description, responsibilities, requirements, skills,
	                 salary_min, salary_max, currency, salary_period, benefits,
	                 application_method, external_link, application_email,
	                 require_cover_letter, require_portfolio, custom_questions,
	                 status, publish_date, expiration_date, auto_expire, promote_job,
	                 applicant_count, view_count, created_at
	          FROM postings WHERE status = 'active'
	          ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var postings []domain.FinalizedPosting
	for rows.Next() {
		var p domain.FinalizedPosting
		var questions []byte
		if err := rows.Scan(
			&p.ID, &p.AuthorID, &p.Title, &p.EmploymentType, &p.Location, &p.RemoteType, &p.SeniorityLevel,
			&p.Description, pq.Array(&p.Responsibilities), pq.Array(&p.Requirements), pq.Array(&p.Skills),
			&p.SalaryMin, &p.SalaryMax, &p.Currency, &p.SalaryPeriod, pq.Array(&p.Benefits),
			&p.ApplicationMethod, &p.ExternalLink, &p.ApplicationEmail,
			&p.RequireCoverLetter, &p.RequirePortfolio, &questions,
			&p.Status, &p.PublishDate, &p.ExpirationDate, &p.AutoExpire, &p.PromoteJob,
			&p.ApplicantCount, &p.ViewCount, &p.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		if len(questions) > 0 {
			if err := json.Unmarshal(questions, &p.CustomQuestions); err != nil {
				return nil, 0, fmt.Errorf("unmarshal custom questions: %w", err)
			}
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM postings WHERE status = 'active'`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return postings, total, nil
}
