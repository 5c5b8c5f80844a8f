package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/VaibhavKawatra/copy-job-tracker/pkg/job"
)

// JobRepository stores job applications. Every query filters on user_id.
type JobRepository struct {
	db DB
}

func NewJobRepository(db DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, user_id, company_name, job_title, application_date, status, url, location, salary, notes, created_at`

func (r *JobRepository) Create(ctx context.Context, a job.Application) (job.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, `
INSERT INTO job_applications (`+jobColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`, a.ID, a.UserID, a.CompanyName, a.JobTitle, a.ApplicationDate, string(a.Status),
		a.URL, a.Location, a.Salary, a.Notes, a.CreatedAt)
	if err != nil {
		return job.Application{}, fmt.Errorf("insert job application: %w", err)
	}
	return a, nil
}

func (r *JobRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (job.Application, error) {
	row := r.db.QueryRow(ctx, `
SELECT `+jobColumns+` FROM job_applications WHERE id = $1 AND user_id = $2
`, id, ownerID)
	return scanJob(row)
}

func (r *JobRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]job.Application, error) {
	if offset < 0 {
		offset = 0
	}
	q := `SELECT ` + jobColumns + ` FROM job_applications WHERE user_id = $1 ORDER BY created_at DESC, id`
	args := []any{ownerID}
	if limit > 0 {
		q += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	} else {
		q += ` OFFSET $2`
		args = append(args, offset)
	}
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list job applications: %w", err)
	}
	defer rows.Close()
	res := []job.Application{}
	for rows.Next() {
		a, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list job applications: %w", err)
	}
	return res, nil
}

func (r *JobRepository) UpdateForOwner(ctx context.Context, ownerID, id uuid.UUID, f job.Fields) (job.Application, error) {
	row := r.db.QueryRow(ctx, `
UPDATE job_applications
SET company_name = $1, job_title = $2, application_date = $3, status = $4,
	url = $5, location = $6, salary = $7, notes = $8
WHERE id = $9 AND user_id = $10
RETURNING `+jobColumns, f.CompanyName, f.JobTitle, f.ApplicationDate, string(f.Status),
		f.URL, f.Location, f.Salary, f.Notes, id, ownerID)
	return scanJob(row)
}

func (r *JobRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM job_applications WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete job application: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) CountByStatusForOwner(ctx context.Context, ownerID uuid.UUID) (map[job.Status]int, error) {
	rows, err := r.db.Query(ctx, `
SELECT status, COUNT(*) FROM job_applications WHERE user_id = $1 GROUP BY status
`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count job applications: %w", err)
	}
	defer rows.Close()
	counts := make(map[job.Status]int)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[job.Status(status)] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count job applications: %w", err)
	}
	return counts, nil
}

func scanJob(row pgx.Row) (job.Application, error) {
	var a job.Application
	var status string
	var created time.Time
	if err := row.Scan(&a.ID, &a.UserID, &a.CompanyName, &a.JobTitle, &a.ApplicationDate, &status,
		&a.URL, &a.Location, &a.Salary, &a.Notes, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Application{}, job.ErrNotFound
		}
		return job.Application{}, fmt.Errorf("scan job application: %w", err)
	}
	a.Status = job.Status(status)
	a.CreatedAt = created.UTC()
	if a.ApplicationDate != nil {
		d := a.ApplicationDate.UTC()
		a.ApplicationDate = &d
	}
	return a, nil
}
