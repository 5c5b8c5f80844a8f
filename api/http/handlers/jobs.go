package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/VaibhavKawatra/copy-job-tracker/api/http/presenter"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/job"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/logging"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/security/jwt"
)

const (
	msgJobNotFound = "Job not found or user not authorized"
	msgJobDeleted  = "Job application deleted"
)

type JobHandler struct {
	uc  job.UseCase
	log logging.Logger
}

func NewJobHandler(uc job.UseCase, log logging.Logger) *JobHandler {
	return &JobHandler{uc: uc, log: log}
}

type jobRequest struct {
	CompanyName     string `json:"company_name"`
	JobTitle        string `json:"job_title"`
	ApplicationDate string `json:"application_date"`
	Status          string `json:"status"`
	URL             string `json:"url"`
	Location        string `json:"location"`
	Salary          string `json:"salary"`
	Notes           string `json:"notes"`
}

type jobResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	CompanyName     string    `json:"company_name"`
	JobTitle        string    `json:"job_title"`
	ApplicationDate *string   `json:"application_date"`
	Status          string    `json:"status"`
	URL             string    `json:"url"`
	Location        string    `json:"location"`
	Salary          string    `json:"salary"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

func toJobResponse(a job.Application) jobResponse {
	var date *string
	if a.ApplicationDate != nil {
		s := job.FormatDate(a.ApplicationDate)
		date = &s
	}
	return jobResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		CompanyName:     a.CompanyName,
		JobTitle:        a.JobTitle,
		ApplicationDate: date,
		Status:          string(a.Status),
		URL:             a.URL,
		Location:        a.Location,
		Salary:          a.Salary,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
	}
}

func (r jobRequest) fields() (job.Fields, error) {
	date, err := job.ParseDate(r.ApplicationDate)
	if err != nil {
		return job.Fields{}, err
	}
	return job.Fields{
		CompanyName:     r.CompanyName,
		JobTitle:        r.JobTitle,
		ApplicationDate: date,
		Status:          job.Status(r.Status),
		URL:             r.URL,
		Location:        r.Location,
		Salary:          r.Salary,
		Notes:           r.Notes,
	}, nil
}

// List returns the caller's applications, newest first.
// @Summary  List job applications
// @Tags     jobs
// @Produce  json
// @Security ApiKeyAuth
// @Param    limit  query int false "page size (1..200)"
// @Param    offset query int false "rows to skip"
// @Success  200 {array} jobResponse
// @Failure  401 {object} presenter.ErrorResponse
// @Failure  500 {object} presenter.ErrorResponse
// @Router   /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	owner, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, jwt.MsgInvalidToken)
	}
	limit, offset := parseLimitOffset(c, 0)
	items, err := h.uc.List(c.UserContext(), owner, limit, offset)
	if err != nil {
		return serverError(c, h.log, "list jobs", err)
	}
	out := make([]jobResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toJobResponse(a))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Get returns one application.
// @Summary  Get job application
// @Tags     jobs
// @Produce  json
// @Security ApiKeyAuth
// @Param    id path string true "application id"
// @Success  200 {object} jobResponse
// @Failure  401 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	owner, id, ok := h.target(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgJobNotFound)
	}
	a, err := h.uc.Get(c.UserContext(), owner, id)
	if err != nil {
		return h.fail(c, "get job", err)
	}
	return presenter.JSON(c, http.StatusOK, toJobResponse(a))
}

// Create adds an application for the caller.
// @Summary  Create job application
// @Tags     jobs
// @Accept   json
// @Produce  json
// @Security ApiKeyAuth
// @Param    input body jobRequest true "application"
// @Success  201 {object} jobResponse
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  401 {object} presenter.ErrorResponse
// @Router   /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	owner, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, jwt.MsgInvalidToken)
	}
	var req jobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidBody)
	}
	f, err := req.fields()
	if err != nil {
		return h.fail(c, "create job", err)
	}
	a, err := h.uc.Create(c.UserContext(), owner, f)
	if err != nil {
		return h.fail(c, "create job", err)
	}
	h.log.Info(c.UserContext(), "job created", "user_id", owner, "job_id", a.ID)
	return presenter.JSON(c, http.StatusCreated, toJobResponse(a))
}

// Update replaces the editable fields of an application.
// @Summary  Update job application
// @Tags     jobs
// @Accept   json
// @Produce  json
// @Security ApiKeyAuth
// @Param    id    path string     true "application id"
// @Param    input body jobRequest true "application"
// @Success  200 {object} jobResponse
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	owner, id, ok := h.target(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgJobNotFound)
	}
	var req jobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidBody)
	}
	f, err := req.fields()
	if err != nil {
		return h.fail(c, "update job", err)
	}
	a, err := h.uc.Update(c.UserContext(), owner, id, f)
	if err != nil {
		return h.fail(c, "update job", err)
	}
	return presenter.JSON(c, http.StatusOK, toJobResponse(a))
}

// Delete removes an application.
// @Summary  Delete job application
// @Tags     jobs
// @Produce  json
// @Security ApiKeyAuth
// @Param    id path string true "application id"
// @Success  200 {object} presenter.MessageResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	owner, id, ok := h.target(c)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, msgJobNotFound)
	}
	if err := h.uc.Delete(c.UserContext(), owner, id); err != nil {
		return h.fail(c, "delete job", err)
	}
	h.log.Info(c.UserContext(), "job deleted", "user_id", owner, "job_id", id)
	return presenter.Message(c, http.StatusOK, msgJobDeleted)
}

// Stats returns the caller's dashboard aggregates.
// @Summary  Job application statistics
// @Tags     jobs
// @Produce  json
// @Security ApiKeyAuth
// @Success  200 {object} job.Stats
// @Failure  401 {object} presenter.ErrorResponse
// @Router   /jobs/stats [get]
func (h *JobHandler) Stats(c *fiber.Ctx) error {
	owner, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, jwt.MsgInvalidToken)
	}
	st, err := h.uc.Stats(c.UserContext(), owner)
	if err != nil {
		return serverError(c, h.log, "job stats", err)
	}
	return presenter.JSON(c, http.StatusOK, st)
}

// target resolves the owner and the :id path parameter. A malformed id is
// reported the same way as a missing record.
func (h *JobHandler) target(c *fiber.Ctx) (owner, id uuid.UUID, ok bool) {
	owner, ok = jwt.UserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	return owner, id, true
}

func (h *JobHandler) fail(c *fiber.Ctx, op string, err error) error {
	var verr job.ErrValidation
	switch {
	case errors.Is(err, job.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, msgJobNotFound)
	case errors.As(err, &verr):
		return presenter.Error(c, http.StatusBadRequest, verr.Error())
	default:
		return serverError(c, h.log, op, err)
	}
}
