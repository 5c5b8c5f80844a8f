package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/VaibhavKawatra/copy-job-tracker/api/http/presenter"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/analysis"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/logging"
)

const (
	msgDescriptionRequired = "Job description is required"
	msgAnalysisFailed      = "Error analyzing job description"
	msgAnalysisDisabled    = "AI analysis is not configured"
	msgFileRequired        = "File is required (pdf or docx)"
	msgUnsupportedFile     = "Unsupported file format: only pdf and docx are allowed"
	msgUnreadableFile      = "Could not read text from the uploaded file"
)

type AIHandler struct {
	uc       analysis.UseCase
	log      logging.Logger
	maxBytes int64
}

// NewAIHandler limits uploads to maxBytes; a non-positive value means 5 MiB.
func NewAIHandler(uc analysis.UseCase, log logging.Logger, maxBytes int64) *AIHandler {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &AIHandler{uc: uc, log: log, maxBytes: maxBytes}
}

type analyzeRequest struct {
	JobDescription string `json:"jobDescription"`
	// Description is accepted for clients that send the shorter key.
	Description string `json:"description"`
}

func (r analyzeRequest) text() string {
	if strings.TrimSpace(r.JobDescription) != "" {
		return r.JobDescription
	}
	return r.Description
}

// Analyze extracts skills, qualifications and responsibilities from a pasted description.
// @Summary  Analyze job description
// @Tags     ai
// @Accept   json
// @Produce  json
// @Security ApiKeyAuth
// @Param    input body analyzeRequest true "job description"
// @Success  200 {object} analysis.Result
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  401 {object} presenter.ErrorResponse
// @Failure  500 {object} presenter.ErrorResponse
// @Failure  503 {object} presenter.ErrorResponse
// @Router   /ai/analyze [post]
func (h *AIHandler) Analyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidBody)
	}
	res, err := h.uc.Analyze(c.UserContext(), req.text())
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

// AnalyzeFile runs the same extraction over an uploaded PDF or DOCX posting.
// @Summary  Analyze job description file
// @Tags     ai
// @Accept   multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param    file formData file true "job posting (PDF or DOCX)"
// @Success  200 {object} analysis.Result
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  401 {object} presenter.ErrorResponse
// @Failure  500 {object} presenter.ErrorResponse
// @Router   /ai/analyze-file [post]
func (h *AIHandler) AnalyzeFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, msgFileRequired)
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	res, err := h.uc.AnalyzeDocument(c.UserContext(), fh.Filename, data)
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, res)
}

func (h *AIHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, analysis.ErrEmptyDescription):
		return presenter.Error(c, http.StatusBadRequest, msgDescriptionRequired)
	case errors.Is(err, analysis.ErrUnsupportedFormat):
		return presenter.Error(c, http.StatusBadRequest, msgUnsupportedFile)
	case errors.Is(err, analysis.ErrUnreadableFile):
		h.log.Warn(c.UserContext(), "upload rejected", "err", err, "request_id", c.Locals("requestid"))
		return presenter.Error(c, http.StatusBadRequest, msgUnreadableFile)
	case errors.Is(err, analysis.ErrModelUnavailable):
		return presenter.Error(c, http.StatusServiceUnavailable, msgAnalysisDisabled)
	default:
		h.log.Error(c.UserContext(), "analyze job description failed",
			"err", err,
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
		)
		return presenter.Error(c, http.StatusInternalServerError, msgAnalysisFailed)
	}
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
