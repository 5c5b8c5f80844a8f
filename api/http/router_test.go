package http_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apihttp "github.com/VaibhavKawatra/copy-job-tracker/api/http"
	"github.com/VaibhavKawatra/copy-job-tracker/api/http/handlers"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/analysis"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/auth"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/health"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/job"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/llm"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/logging"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/repository/memory"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/security/jwt"
)

type fakeModel struct {
	reply string
	err   error
}

func (f fakeModel) Ask(context.Context, string, string) (string, error) { return f.reply, f.err }

func newServer(t *testing.T, model llm.ChatModel) *fiber.App {
	t.Helper()
	log := logging.Discard()
	tokens := jwt.NewGenerator("test-secret", "test", time.Hour)
	authUC := auth.NewAuthService(memory.NewUserRepository(), tokens, auth.WithPasswordCost(bcrypt.MinCost))

	app := apihttp.NewApp(log, apihttp.AppOptions{CORSOrigins: "*"})
	apihttp.Register(app, apihttp.Handlers{
		Auth:   handlers.NewAuthHandler(authUC, log),
		Jobs:   handlers.NewJobHandler(job.NewService(memory.NewJobRepository()), log),
		AI:     handlers.NewAIHandler(analysis.NewService(model, log), log, 1<<20),
		Health: handlers.NewHealthHandler(health.NewService(), log),
	}, jwt.NewAuthMiddleware(tokens, log))
	return app
}

type response struct {
	status int
	raw    []byte
}

func (r response) object(t *testing.T) map[string]any {
	t.Helper()
	m := map[string]any{}
	require.NoError(t, json.Unmarshal(r.raw, &m), string(r.raw))
	return m
}

func (r response) msg(t *testing.T) string {
	t.Helper()
	s, _ := r.object(t)["msg"].(string)
	return s
}

func send(t *testing.T, app *fiber.App, req *http.Request, token string) response {
	t.Helper()
	if token != "" {
		req.Header.Set(jwt.HeaderAuthToken, token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, raw: raw}
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return send(t, app, req, token)
}

func signup(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	creds := map[string]string{"email": email, "password": password}
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/auth/register", "", creds).status)
	r := call(t, app, http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, r.status)
	token, _ := r.object(t)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegister(t *testing.T) {
	app := newServer(t, nil)
	creds := map[string]string{"email": "ada@example.com", "password": "pw"}

	r := call(t, app, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, r.status)
	body := r.object(t)
	assert.Equal(t, "ada@example.com", body["email"])
	assert.NotEmpty(t, body["id"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")

	r = call(t, app, http.MethodPost, "/api/auth/register", "", creds)
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "User already exists", r.msg(t))

	r = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "x@y.z"})
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "Email and password are required", r.msg(t))
}

func TestLogin_NonEnumerating(t *testing.T) {
	app := newServer(t, nil)
	signup(t, app, "known@example.com", "right")

	wrongPassword := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "known@example.com", "password": "wrong"})
	unknownEmail := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ghost@example.com", "password": "right"})

	assert.Equal(t, http.StatusBadRequest, wrongPassword.status)
	assert.Equal(t, wrongPassword.status, unknownEmail.status)
	assert.Equal(t, "Invalid credentials", wrongPassword.msg(t))
	assert.Equal(t, wrongPassword.raw, unknownEmail.raw)
}

func TestChangePassword(t *testing.T) {
	app := newServer(t, nil)
	token := signup(t, app, "cp@example.com", "old")
	path := "/api/auth/change-password"

	r := call(t, app, http.MethodPut, path, "", map[string]string{"currentPassword": "old", "newPassword": "new"})
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, "No token, authorization denied", r.msg(t))

	r = call(t, app, http.MethodPut, path, "garbage", map[string]string{"currentPassword": "old", "newPassword": "new"})
	assert.Equal(t, http.StatusUnauthorized, r.status)
	assert.Equal(t, "Token is not valid", r.msg(t))

	r = call(t, app, http.MethodPut, path, token, map[string]string{"currentPassword": "nope", "newPassword": "new"})
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "Invalid credentials", r.msg(t))
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "cp@example.com", "password": "old"}).status)

	r = call(t, app, http.MethodPut, path, token, map[string]string{"currentPassword": "old", "newPassword": "new"})
	assert.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "Password updated successfully", r.msg(t))

	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "cp@example.com", "password": "old"}).status)
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "cp@example.com", "password": "new"}).status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newServer(t, nil)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/jobs"},
		{http.MethodPost, "/api/jobs"},
		{http.MethodGet, "/api/jobs/stats"},
		{http.MethodDelete, "/api/jobs/00000000-0000-0000-0000-000000000000"},
		{http.MethodPost, "/api/ai/analyze"},
	} {
		r := call(t, app, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, r.status, tc.path)
	}
}

func TestJobsLifecycle(t *testing.T) {
	app := newServer(t, nil)
	token := signup(t, app, "jobs@example.com", "pw")

	r := call(t, app, http.MethodPost, "/api/jobs", token, map[string]string{
		"company_name":     "Acme",
		"job_title":        "Backend Engineer",
		"application_date": "2025-03-01",
	})
	require.Equal(t, http.StatusCreated, r.status, string(r.raw))
	created := r.object(t)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Applied", created["status"])
	assert.Equal(t, "2025-03-01", created["application_date"])

	r = call(t, app, http.MethodPut, "/api/jobs/"+id, token, map[string]string{
		"company_name": "Acme", "job_title": "Backend Engineer", "status": "Interviewing",
	})
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "Interviewing", r.object(t)["status"])
	assert.Nil(t, r.object(t)["application_date"])

	r = call(t, app, http.MethodGet, "/api/jobs/"+id, token, nil)
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "Acme", r.object(t)["company_name"])

	r = call(t, app, http.MethodGet, "/api/jobs", token, nil)
	require.Equal(t, http.StatusOK, r.status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(r.raw, &list))
	assert.Len(t, list, 1)

	r = call(t, app, http.MethodGet, "/api/jobs/stats", token, nil)
	require.Equal(t, http.StatusOK, r.status)
	var st job.Stats
	require.NoError(t, json.Unmarshal(r.raw, &st))
	assert.Equal(t, 1, st.Total)
	assert.Equal(t, 1, st.Interviewing)

	r = call(t, app, http.MethodDelete, "/api/jobs/"+id, token, nil)
	assert.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "Job application deleted", r.msg(t))

	r = call(t, app, http.MethodGet, "/api/jobs/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, r.status)
}

func TestJobs_Validation(t *testing.T) {
	app := newServer(t, nil)
	token := signup(t, app, "v@example.com", "pw")

	for _, body := range []map[string]string{
		{"job_title": "x"},
		{"company_name": "x", "job_title": "y", "status": "Ghosted"},
		{"company_name": "x", "job_title": "y", "application_date": "yesterday"},
	} {
		r := call(t, app, http.MethodPost, "/api/jobs", token, body)
		assert.Equal(t, http.StatusBadRequest, r.status)
		assert.NotEmpty(t, r.msg(t))
	}
}

func TestJobs_OtherUsersRecordsLookMissing(t *testing.T) {
	app := newServer(t, nil)
	owner := signup(t, app, "owner@example.com", "pw")
	other := signup(t, app, "other@example.com", "pw")

	r := call(t, app, http.MethodPost, "/api/jobs", owner, map[string]string{"company_name": "Secret", "job_title": "CTO"})
	require.Equal(t, http.StatusCreated, r.status)
	id, _ := r.object(t)["id"].(string)

	missing := call(t, app, http.MethodGet, "/api/jobs/9b2f6a50-0000-4000-8000-000000000000", other, nil)
	require.Equal(t, http.StatusNotFound, missing.status)

	for _, tc := range []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPut, map[string]string{"company_name": "Hijack", "job_title": "x"}},
		{http.MethodDelete, nil},
	} {
		r := call(t, app, tc.method, "/api/jobs/"+id, other, tc.body)
		assert.Equal(t, http.StatusNotFound, r.status, tc.method)
		assert.Equal(t, missing.raw, r.raw, tc.method)
	}

	r = call(t, app, http.MethodGet, "/api/jobs/not-a-uuid", other, nil)
	assert.Equal(t, http.StatusNotFound, r.status)

	r = call(t, app, http.MethodGet, "/api/jobs/"+id, owner, nil)
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "Secret", r.object(t)["company_name"])
}

func TestAnalyze(t *testing.T) {
	model := fakeModel{reply: `{"skills":["Go","golang","SQL"],"qualifications":["BSc"],"responsibilities":["Ship APIs"]}`}
	app := newServer(t, model)
	token := signup(t, app, "ai@example.com", "pw")

	r := call(t, app, http.MethodPost, "/api/ai/analyze", token, map[string]string{"jobDescription": "We hire Go devs"})
	require.Equal(t, http.StatusOK, r.status, string(r.raw))
	var res analysis.Result
	require.NoError(t, json.Unmarshal(r.raw, &res))
	assert.Equal(t, []string{"Go", "SQL"}, res.Skills)
	assert.Equal(t, []string{"BSc"}, res.Qualifications)

	r = call(t, app, http.MethodPost, "/api/ai/analyze", token, map[string]string{"description": "We hire Go devs"})
	assert.Equal(t, http.StatusOK, r.status)

	r = call(t, app, http.MethodPost, "/api/ai/analyze", token, map[string]string{"jobDescription": "  "})
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "Job description is required", r.msg(t))

	r = call(t, app, http.MethodPost, "/api/ai/analyze", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "Job description is required", r.msg(t))
}

func TestAnalyze_ModelFailures(t *testing.T) {
	broken := newServer(t, fakeModel{err: errors.New("upstream 502: secret details")})
	token := signup(t, broken, "f@example.com", "pw")
	r := call(t, broken, http.MethodPost, "/api/ai/analyze", token, map[string]string{"jobDescription": "text"})
	assert.Equal(t, http.StatusInternalServerError, r.status)
	assert.Equal(t, "Error analyzing job description", r.msg(t))
	assert.NotContains(t, string(r.raw), "secret details")

	disabled := newServer(t, nil)
	token = signup(t, disabled, "d@example.com", "pw")
	r = call(t, disabled, http.MethodPost, "/api/ai/analyze", token, map[string]string{"jobDescription": "text"})
	assert.Equal(t, http.StatusServiceUnavailable, r.status)
}

func multipartRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/ai/analyze-file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func docx(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<w:document><w:body><w:p><w:r><w:t>" + text + "</w:t></w:r></w:p></w:body></w:document>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestAnalyzeFile(t *testing.T) {
	app := newServer(t, fakeModel{reply: `{"skills":["Kubernetes"],"qualifications":[],"responsibilities":[]}`})
	token := signup(t, app, "file@example.com", "pw")

	r := send(t, app, multipartRequest(t, "posting.docx", docx(t, "Platform engineer, Kubernetes")), token)
	require.Equal(t, http.StatusOK, r.status, string(r.raw))
	assert.Equal(t, []any{"Kubernetes"}, r.object(t)["skills"])

	r = send(t, app, multipartRequest(t, "posting.txt", []byte("plain")), token)
	assert.Equal(t, http.StatusBadRequest, r.status)

	r = send(t, app, multipartRequest(t, "big.pdf", bytes.Repeat([]byte("x"), 1<<20+1)), token)
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Contains(t, r.msg(t), "file too large")

	r = call(t, app, http.MethodPost, "/api/ai/analyze-file", token, nil)
	assert.Equal(t, http.StatusBadRequest, r.status)
}

func TestHealth(t *testing.T) {
	app := newServer(t, nil)
	r := call(t, app, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, r.status)
	r = call(t, app, http.MethodGet, "/api/ready", "", nil)
	assert.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "ready", r.object(t)["status"])
}

func TestUnknownRouteIsJSON(t *testing.T) {
	app := newServer(t, nil)
	r := call(t, app, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, r.status)
	assert.NotEmpty(t, r.msg(t))
}
