package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VaibhavKawatra/copy-job-tracker/pkg/job"
)

var jobCols = []string{"id", "user_id", "company_name", "job_title", "application_date", "status",
	"url", "location", "salary", "notes", "created_at"}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestJobRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)
	owner := uuid.New()

	mock.ExpectExec(`INSERT INTO job_applications`).
		WithArgs(anyArgs(11)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	a, err := repo.Create(context.Background(), job.Application{UserID: owner, CompanyName: "Acme", JobTitle: "Dev", Status: job.StatusApplied})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestJobRepository_GetByIDForOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)
	owner, id := uuid.New(), uuid.New()
	date := time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM job_applications WHERE id = \$1 AND user_id = \$2`).
		WithArgs(id, owner).
		WillReturnRows(pgxmock.NewRows(jobCols).
			AddRow(id, owner, "Acme", "Dev", &date, "Interviewing", "https://acme.io", "Remote", "100k", "n", created))

	a, err := repo.GetByIDForOwner(context.Background(), owner, id)
	require.NoError(t, err)
	assert.Equal(t, job.StatusInterviewing, a.Status)
	assert.Equal(t, "2025-05-06", job.FormatDate(a.ApplicationDate))
	assert.Equal(t, created, a.CreatedAt)
}

func TestJobRepository_GetByIDForOwner_OtherOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)

	mock.ExpectQuery(`FROM job_applications WHERE id = \$1 AND user_id = \$2`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByIDForOwner(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestJobRepository_ListByOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)
	owner := uuid.New()
	created := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE user_id = \$1 ORDER BY created_at DESC, id LIMIT \$2 OFFSET \$3`).
		WithArgs(owner, 10, 5).
		WillReturnRows(pgxmock.NewRows(jobCols).
			AddRow(uuid.New(), owner, "A", "T1", (*time.Time)(nil), "Applied", "", "", "", "", created).
			AddRow(uuid.New(), owner, "B", "T2", (*time.Time)(nil), "Offer", "", "", "", "", created))

	list, err := repo.ListByOwner(context.Background(), owner, 10, 5)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].CompanyName)
	assert.Nil(t, list[0].ApplicationDate)
	assert.Equal(t, job.StatusOffer, list[1].Status)
}

func TestJobRepository_ListByOwner_NoLimit(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)
	owner := uuid.New()

	mock.ExpectQuery(`ORDER BY created_at DESC, id OFFSET \$2`).
		WithArgs(owner, 0).
		WillReturnRows(pgxmock.NewRows(jobCols))

	list, err := repo.ListByOwner(context.Background(), owner, 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestJobRepository_UpdateForOwner_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)

	mock.ExpectQuery(`UPDATE job_applications`).
		WithArgs(anyArgs(10)...).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdateForOwner(context.Background(), uuid.New(), uuid.New(), job.Fields{CompanyName: "x", JobTitle: "y", Status: job.StatusApplied})
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestJobRepository_DeleteForOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)
	owner, id := uuid.New(), uuid.New()

	mock.ExpectExec(`DELETE FROM job_applications WHERE id = \$1 AND user_id = \$2`).
		WithArgs(id, owner).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM job_applications`).
		WithArgs(id, owner).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.DeleteForOwner(context.Background(), owner, id))
	assert.ErrorIs(t, repo.DeleteForOwner(context.Background(), owner, id), job.ErrNotFound)
}

func TestJobRepository_CountByStatusForOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewJobRepository(mock)
	owner := uuid.New()

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM job_applications WHERE user_id = \$1 GROUP BY status`).
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"status", "count"}).
			AddRow("Applied", int64(3)).
			AddRow("Offer", int64(1)))

	counts, err := repo.CountByStatusForOwner(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, map[job.Status]int{job.StatusApplied: 3, job.StatusOffer: 1}, counts)
}
