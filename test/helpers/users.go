package helpers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/models"
)

// RegisterAndLogin creates an account through the API and returns its
// bearer token plus the created user.
func RegisterAndLogin(t *testing.T, ts *TestServer, name, email, password string, role models.UserRole) (string, *models.User) {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     string(role),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "registration failed: "+body)

	var resp struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	return resp.Token, resp.User
}

// LoginAdmin signs in as the seeded admin.
func LoginAdmin(t *testing.T, ts *TestServer) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    AdminEmail,
		"password": AdminPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "admin login failed: "+body)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// CreateJob posts a job as the given employer token and returns it.
func CreateJob(t *testing.T, ts *TestServer, token, title string) *models.Job {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/jobs", token, map[string]interface{}{
		"title":       title,
		"description": "Backend services in Go",
		"company":     "Acme",
		"location":    "Remote",
		"salary":      90000,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "job creation failed: "+body)

	var job models.Job
	require.NoError(t, json.Unmarshal([]byte(body), &job))
	require.NotEmpty(t, job.ID)
	return &job
}

// ApplyToJob submits an application with a small inline resume.
func ApplyToJob(t *testing.T, ts *TestServer, token, jobID string) *models.Application {
	t.Helper()

	res, body := ts.SendMultipart(t, "/api/applications", token, map[string]string{
		"jobId": jobID,
		"email": "applicant@test.local",
		"phone": "+100000000",
	}, "resume.pdf", []byte("%PDF-1.4 test resume"))
	require.Equal(t, http.StatusCreated, res.StatusCode, "application failed: "+body)

	var app models.Application
	require.NoError(t, json.Unmarshal([]byte(body), &app))
	require.NotEmpty(t, app.ID)
	return &app
}
