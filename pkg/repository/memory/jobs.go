package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/VaibhavKawatra/copy-job-tracker/pkg/job"
)

// JobRepository implements job.Repository in memory.
type JobRepository struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]job.Application
	now  func() time.Time
}

func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[uuid.UUID]job.Application), now: time.Now}
}

func (r *JobRepository) Create(_ context.Context, a job.Application) (job.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.now().UTC()
	}
	r.jobs[a.ID] = a
	return a, nil
}

func (r *JobRepository) GetByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (job.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.jobs[id]
	if !ok || a.UserID != ownerID {
		return job.Application{}, job.ErrNotFound
	}
	return a, nil
}

func (r *JobRepository) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]job.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := []job.Application{}
	for _, a := range r.jobs {
		if a.UserID == ownerID {
			res = append(res, a)
		}
	}
	// newest first, ties broken by id so pages stay stable
	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID.String() < res[j].ID.String()
	})
	if offset > 0 {
		if offset >= len(res) {
			return []job.Application{}, nil
		}
		res = res[offset:]
	}
	if limit > 0 && limit < len(res) {
		res = res[:limit]
	}
	return res, nil
}

func (r *JobRepository) UpdateForOwner(_ context.Context, ownerID, id uuid.UUID, f job.Fields) (job.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.jobs[id]
	if !ok || a.UserID != ownerID {
		return job.Application{}, job.ErrNotFound
	}
	a.CompanyName = f.CompanyName
	a.JobTitle = f.JobTitle
	a.ApplicationDate = f.ApplicationDate
	a.Status = f.Status
	a.URL = f.URL
	a.Location = f.Location
	a.Salary = f.Salary
	a.Notes = f.Notes
	r.jobs[id] = a
	return a, nil
}

func (r *JobRepository) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.jobs[id]
	if !ok || a.UserID != ownerID {
		return job.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *JobRepository) CountByStatusForOwner(_ context.Context, ownerID uuid.UUID) (map[job.Status]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[job.Status]int)
	for _, a := range r.jobs {
		if a.UserID == ownerID {
			counts[a.Status]++
		}
	}
	return counts, nil
}
