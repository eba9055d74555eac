package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobify-service/internal/domain"
)

// JobRepository handles persistence for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context) ([]domain.Job, error)
	// ListPublished returns published jobs newest first; limit <= 0 means no limit.
	ListPublished(ctx context.Context, limit int) ([]domain.Job, error)
	UpdateStatus(ctx context.Context, id string, status domain.JobStatus) error
	Delete(ctx context.Context, id string) error
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates the repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = `id, title, company, company_cover, location, content, status, details, posted_at, updated_at`

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (title, company, company_cover, location, content, status, details)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, posted_at, updated_at`

	details := job.Details
	if details == nil {
		details = map[string]any{}
	}
	return r.pool.QueryRow(ctx, query,
		job.Title,
		job.Company,
		job.CompanyCover,
		job.Location,
		job.Content,
		job.Status,
		details,
	).Scan(&job.ID, &job.PostedAt, &job.UpdatedAt)
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id=$1`

	job, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapPgError(err)
	}
	return job, nil
}

func (r *jobRepository) List(ctx context.Context) ([]domain.Job, error) {
	return r.query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY posted_at DESC`)
}

func (r *jobRepository) ListPublished(ctx context.Context, limit int) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status=$1 ORDER BY posted_at DESC`
	if limit > 0 {
		return r.query(ctx, query+` LIMIT $2`, domain.JobStatusPublished, limit)
	}
	return r.query(ctx, query, domain.JobStatusPublished)
}

func (r *jobRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus) error {
	const query = `UPDATE jobs SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *jobRepository) query(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *job)
	}
	return result, rows.Err()
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	if err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.CompanyCover,
		&job.Location,
		&job.Content,
		&job.Status,
		&job.Details,
		&job.PostedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &job, nil
}
