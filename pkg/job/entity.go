package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status is the stage of an application in the hiring pipeline.
type Status string

const (
	StatusApplied      Status = "Applied"
	StatusInterviewing Status = "Interviewing"
	StatusOffer        Status = "Offer"
	StatusRejected     Status = "Rejected"
)

// Statuses lists every valid status in pipeline order.
var Statuses = []Status{StatusApplied, StatusInterviewing, StatusOffer, StatusRejected}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application is a single job application owned by one user.
type Application struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	CompanyName     string
	JobTitle        string
	ApplicationDate *time.Time // calendar date, UTC midnight
	Status          Status
	URL             string
	Location        string
	Salary          string
	Notes           string
	CreatedAt       time.Time
}

// Fields are the user-editable attributes of an application.
type Fields struct {
	CompanyName     string
	JobTitle        string
	ApplicationDate *time.Time
	Status          Status
	URL             string
	Location        string
	Salary          string
	Notes           string
}

// ErrNotFound covers both a missing record and a record owned by someone else.
var ErrNotFound = errors.New("job application not found")

// ErrValidation is a bad-input error whose message is safe to return to the client.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Repository is the persistence port. Every method is scoped to the owner.
type Repository interface {
	Create(ctx context.Context, a Application) (Application, error)
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Application, error)
	// ListByOwner returns newest first; limit <= 0 means no limit.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Application, error)
	UpdateForOwner(ctx context.Context, ownerID, id uuid.UUID, f Fields) (Application, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
	CountByStatusForOwner(ctx context.Context, ownerID uuid.UUID) (map[Status]int, error)
}
