package job

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// UseCase encapsulates job-application scenarios for one authenticated owner.
type UseCase interface {
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Application, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Application, error)
	Create(ctx context.Context, ownerID uuid.UUID, f Fields) (Application, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, f Fields) (Application, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Stats(ctx context.Context, ownerID uuid.UUID) (Stats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Application, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Application, error) {
	return s.repo.GetByIDForOwner(ctx, ownerID, id)
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, f Fields) (Application, error) {
	f, err := normalize(f)
	if err != nil {
		return Application{}, err
	}
	return s.repo.Create(ctx, Application{
		ID:              uuid.New(),
		UserID:          ownerID,
		CompanyName:     f.CompanyName,
		JobTitle:        f.JobTitle,
		ApplicationDate: f.ApplicationDate,
		Status:          f.Status,
		URL:             f.URL,
		Location:        f.Location,
		Salary:          f.Salary,
		Notes:           f.Notes,
	})
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, f Fields) (Application, error) {
	f, err := normalize(f)
	if err != nil {
		return Application{}, err
	}
	return s.repo.UpdateForOwner(ctx, ownerID, id, f)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}

func (s *service) Stats(ctx context.Context, ownerID uuid.UUID) (Stats, error) {
	counts, err := s.repo.CountByStatusForOwner(ctx, ownerID)
	if err != nil {
		return Stats{}, err
	}
	return NewStats(counts), nil
}

func normalize(f Fields) (Fields, error) {
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.JobTitle = strings.TrimSpace(f.JobTitle)
	f.URL = strings.TrimSpace(f.URL)
	f.Location = strings.TrimSpace(f.Location)
	f.Salary = strings.TrimSpace(f.Salary)
	if f.CompanyName == "" || f.JobTitle == "" {
		return Fields{}, ErrValidation("company_name and job_title are required")
	}
	f.Status = Status(strings.TrimSpace(string(f.Status)))
	if f.Status == "" {
		f.Status = StatusApplied
	}
	if !f.Status.Valid() {
		return Fields{}, ErrValidation("status must be one of Applied, Interviewing, Offer, Rejected")
	}
	return f, nil
}
