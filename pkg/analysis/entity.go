package analysis

import "errors"

// Result is what the model extracted from a job description.
type Result struct {
	Skills           []string `json:"skills"`
	Qualifications   []string `json:"qualifications"`
	Responsibilities []string `json:"responsibilities"`
}

var (
	ErrEmptyDescription  = errors.New("job description is required")
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf and docx are allowed")
	ErrUnreadableFile    = errors.New("could not read text from the uploaded file")
	ErrModelUnavailable  = errors.New("language model is not configured")
	ErrBadModelOutput    = errors.New("model reply is not the expected JSON object")
)
