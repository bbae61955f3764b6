package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/test/helpers"
)

func TestCreateJobRequiresEmployer(t *testing.T) {
	ts := helpers.NewTestServer(t)

	applicantToken, _ := helpers.RegisterAndLogin(t, ts, "Alice", "alice@test.local", "secret123", models.UserRoleApplicant)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/jobs", applicantToken, map[string]interface{}{
		"title":       "Go Developer",
		"description": "Backend services",
		"company":     "Acme",
		"location":    "Remote",
		"salary":      90000,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
}

func TestCreateJobRejectsNonPositiveSalary(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)

	for _, salary := range []float64{0, -1000} {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/jobs", employerToken, map[string]interface{}{
			"title":       "Go Developer",
			"description": "Backend services",
			"company":     "Acme",
			"location":    "Remote",
			"salary":      salary,
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	}
}

func TestPublicListShowsOnlyActiveJobs(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	active := helpers.CreateJob(t, ts, employerToken, "Active Job")
	closed := helpers.CreateJob(t, ts, employerToken, "Closed Job")

	res, body := ts.SendRequest(t, http.MethodPut, "/api/employer/jobs/"+closed.ID+"/status", employerToken, map[string]interface{}{
		"status": "Closed",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/jobs", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var jobs []models.Job
	require.NoError(t, json.Unmarshal([]byte(body), &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, active.ID, jobs[0].ID)
}

func TestJobSearchFilters(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	helpers.CreateJob(t, ts, employerToken, "Senior Go Developer")
	helpers.CreateJob(t, ts, employerToken, "Data Analyst")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/jobs?search=Go", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var jobs []models.Job
	require.NoError(t, json.Unmarshal([]byte(body), &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "Senior Go Developer", jobs[0].Title)
}

func TestEmployerSeesOwnJobsOnly(t *testing.T) {
	ts := helpers.NewTestServer(t)

	eveToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	bobToken, _ := helpers.RegisterAndLogin(t, ts, "Bob", "bob@test.local", "secret123", models.UserRoleEmployer)
	helpers.CreateJob(t, ts, eveToken, "Eve's Job")
	helpers.CreateJob(t, ts, bobToken, "Bob's Job")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/employer/jobs", eveToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var jobs []models.Job
	require.NoError(t, json.Unmarshal([]byte(body), &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "Eve's Job", jobs[0].Title)
}

func TestUpdateJobOwnershipGuard(t *testing.T) {
	ts := helpers.NewTestServer(t)

	eveToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	bobToken, _ := helpers.RegisterAndLogin(t, ts, "Bob", "bob@test.local", "secret123", models.UserRoleEmployer)
	job := helpers.CreateJob(t, ts, eveToken, "Eve's Job")

	res, body := ts.SendRequest(t, http.MethodPut, "/api/employer/jobs/"+job.ID, bobToken, map[string]interface{}{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	// The owner can update.
	res, body = ts.SendRequest(t, http.MethodPut, "/api/employer/jobs/"+job.ID, eveToken, map[string]interface{}{
		"title":  "Eve's Updated Job",
		"salary": 95000,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var updated models.Job
	require.NoError(t, json.Unmarshal([]byte(body), &updated))
	assert.Equal(t, "Eve's Updated Job", updated.Title)
	assert.Equal(t, float64(95000), updated.Salary)
	assert.Equal(t, "Remote", updated.Location, "untouched fields keep their values")
}

func TestJobStatusTransitions(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	job := helpers.CreateJob(t, ts, employerToken, "Go Developer")

	statusURL := "/api/employer/jobs/" + job.ID + "/status"

	// Active -> Fulfilled -> Active (reopen) -> Closed.
	for _, status := range []string{"Fulfilled", "Active", "Closed"} {
		res, body := ts.SendRequest(t, http.MethodPut, statusURL, employerToken, map[string]interface{}{
			"status": status,
		})
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var updated models.Job
		require.NoError(t, json.Unmarshal([]byte(body), &updated))
		assert.Equal(t, models.JobStatus(status), updated.Status)
	}

	// Same status again is a no-op, not an error.
	res, body := ts.SendRequest(t, http.MethodPut, statusURL, employerToken, map[string]interface{}{
		"status": "Closed",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	// Unknown status is rejected.
	res, body = ts.SendRequest(t, http.MethodPut, statusURL, employerToken, map[string]interface{}{
		"status": "Paused",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestDeleteJobCascadesToApplications(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	applicantToken, _ := helpers.RegisterAndLogin(t, ts, "Alice", "alice@test.local", "secret123", models.UserRoleApplicant)
	job := helpers.CreateJob(t, ts, employerToken, "Go Developer")
	helpers.ApplyToJob(t, ts, applicantToken, job.ID)

	res, body := ts.SendRequest(t, http.MethodDelete, "/api/employer/jobs/"+job.ID, employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var count int64
	require.NoError(t, ts.DB.Model(&models.Application{}).Where("job_id = ?", job.ID).Count(&count).Error)
	assert.Zero(t, count, "applications must not outlive their job")

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/jobs/"+job.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestBrowseAnnotatesOwnApplications(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	applicantToken, _ := helpers.RegisterAndLogin(t, ts, "Alice", "alice@test.local", "secret123", models.UserRoleApplicant)
	otherToken, _ := helpers.RegisterAndLogin(t, ts, "Carol", "carol@test.local", "secret123", models.UserRoleApplicant)

	applied := helpers.CreateJob(t, ts, employerToken, "Applied Job")
	fresh := helpers.CreateJob(t, ts, employerToken, "Fresh Job")
	helpers.ApplyToJob(t, ts, applicantToken, applied.ID)
	helpers.ApplyToJob(t, ts, otherToken, fresh.ID)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/jobs/browse", applicantToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var jobs []dto.BrowseJob
	require.NoError(t, json.Unmarshal([]byte(body), &jobs))
	require.Len(t, jobs, 2)

	byID := map[string]dto.BrowseJob{}
	for _, j := range jobs {
		byID[j.ID] = j
	}
	assert.True(t, byID[applied.ID].Applied)
	assert.Equal(t, models.ApplicationStatusApplied, byID[applied.ID].ApplicationStatus)
	assert.False(t, byID[fresh.ID].Applied, "other applicants' applications must not leak")
	assert.Empty(t, byID[fresh.ID].ApplicationStatus)
}
