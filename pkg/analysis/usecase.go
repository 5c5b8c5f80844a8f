package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/VaibhavKawatra/copy-job-tracker/pkg/llm"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/logging"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/nlp"
)

const systemPrompt = "You are an expert career assistant. Analyze the following job description and extract the key skills, " +
	"qualifications, and responsibilities. Return the result as a JSON object with three keys: 'skills', " +
	"'qualifications', and 'responsibilities'. Each key should have an array of strings as its value."

// UseCase sends job descriptions to the language model for extraction.
type UseCase interface {
	Analyze(ctx context.Context, description string) (Result, error)
	AnalyzeDocument(ctx context.Context, filename string, data []byte) (Result, error)
}

type service struct {
	llm      llm.ChatModel
	log      logging.Logger
	maxChars int
}

// NewService returns the default implementation. A nil model makes every
// call fail with ErrModelUnavailable.
func NewService(model llm.ChatModel, log logging.Logger) UseCase {
	return &service{llm: model, log: log, maxChars: 12_000}
}

func (s *service) Analyze(ctx context.Context, description string) (Result, error) {
	text := strings.TrimSpace(description)
	if text == "" {
		return Result{}, ErrEmptyDescription
	}
	if s.llm == nil {
		return Result{}, ErrModelUnavailable
	}
	text, truncated := truncate(text, s.maxChars)

	raw, err := s.llm.Ask(ctx, systemPrompt, text)
	if err != nil {
		return Result{}, fmt.Errorf("ask model: %w", err)
	}
	res, err := parseResult(raw)
	if err != nil {
		return Result{}, err
	}
	s.log.Info(ctx, "job description analyzed",
		"chars", utf8.RuneCountInString(text),
		"truncated", truncated,
		"skills", len(res.Skills),
		"qualifications", len(res.Qualifications),
		"responsibilities", len(res.Responsibilities),
	)
	return res, nil
}

func (s *service) AnalyzeDocument(ctx context.Context, filename string, data []byte) (Result, error) {
	text, err := ExtractText(filename, data)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	return s.Analyze(ctx, text)
}

// stringList accepts an array of strings, a single string, or null.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = arr
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*l = []string{one}
	return nil
}

type payload struct {
	Skills           stringList `json:"skills"`
	Qualifications   stringList `json:"qualifications"`
	Responsibilities stringList `json:"responsibilities"`
}

func parseResult(raw string) (Result, error) {
	raw = strings.TrimSpace(raw)
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		// models sometimes wrap the object in prose or a fenced block
		i, j := strings.Index(raw, "{"), strings.LastIndex(raw, "}")
		if i < 0 || j <= i {
			return Result{}, ErrBadModelOutput
		}
		p = payload{}
		if err := json.Unmarshal([]byte(raw[i:j+1]), &p); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
		}
	}
	return Result{
		Skills:           nlp.UniquePhrases(p.Skills),
		Qualifications:   nlp.UniquePhrases(p.Qualifications),
		Responsibilities: nlp.UniquePhrases(p.Responsibilities),
	}, nil
}

func truncate(s string, max int) (string, bool) {
	if utf8.RuneCountInString(s) <= max {
		return s, false
	}
	return string([]rune(s)[:max]), true
}
