package integration_test

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/models"
	"jobportal_backend/test/helpers"
)

func TestApplyStoresResumeAndDefaults(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	applicantToken, applicant := helpers.RegisterAndLogin(t, ts, "Alice", "alice@test.local", "secret123", models.UserRoleApplicant)
	job := helpers.CreateJob(t, ts, employerToken, "Go Developer")

	app := helpers.ApplyToJob(t, ts, applicantToken, job.ID)
	assert.Equal(t, models.ApplicationStatusApplied, app.Status)
	assert.Equal(t, job.ID, app.JobID)
	assert.Equal(t, applicant.ID, app.ApplicantID)
	assert.NotEmpty(t, app.ResumePath)
}

func TestApplyRequiresResume(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	applicantToken, _ := helpers.RegisterAndLogin(t, ts, "Alice", "alice@test.local", "secret123", models.UserRoleApplicant)
	job := helpers.CreateJob(t, ts, employerToken, "Go Developer")

	res, body := ts.SendMultipart(t, "/api/applications", applicantToken, map[string]string{
		"jobId": job.ID,
		"email": "alice@test.local",
		"phone": "+100000000",
	}, "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestApplyRejectsDisallowedFileType(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	applicantToken, _ := helpers.RegisterAndLogin(t, ts, "Alice", "alice@test.local", "secret123", models.UserRoleApplicant)
	job := helpers.CreateJob(t, ts, employerToken, "Go Developer")

	res, body := ts.SendMultipart(t, "/api/applications", applicantToken, map[string]string{
		"jobId": job.ID,
		"email": "alice@test.local",
		"phone": "+100000000",
	}, "malware.exe", []byte("MZ"))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestDuplicateApplicationRejected(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	applicantToken, _ := helpers.RegisterAndLogin(t, ts, "Alice", "alice@test.local", "secret123", models.UserRoleApplicant)
	job := helpers.CreateJob(t, ts, employerToken, "Go Developer")

	helpers.ApplyToJob(t, ts, applicantToken, job.ID)

	res, body := ts.SendMultipart(t, "/api/applications", applicantToken, map[string]string{
		"jobId": job.ID,
		"email": "alice@test.local",
		"phone": "+100000000",
	}, "resume.pdf", []byte("%PDF-1.4 again"))
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
	assert.Contains(t, body, "ALREADY_APPLIED")

	var count int64
	require.NoError(t, ts.DB.Model(&models.Application{}).Where("job_id = ?", job.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApplyToInactiveJobRejected(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	applicantToken, _ := helpers.RegisterAndLogin(t, ts, "Alice", "alice@test.local", "secret123", models.UserRoleApplicant)
	job := helpers.CreateJob(t, ts, employerToken, "Go Developer")

	res, body := ts.SendRequest(t, http.MethodPut, "/api/employer/jobs/"+job.ID+"/status", employerToken, map[string]interface{}{
		"status": "Closed",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendMultipart(t, "/api/applications", applicantToken, map[string]string{
		"jobId": job.ID,
		"email": "alice@test.local",
		"phone": "+100000000",
	}, "resume.pdf", []byte("%PDF-1.4 resume"))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	assert.Contains(t, body, "JOB_NOT_ACTIVE")
}

func TestInterviewRequiresCompleteDetails(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	applicantToken, _ := helpers.RegisterAndLogin(t, ts, "Alice", "alice@test.local", "secret123", models.UserRoleApplicant)
	job := helpers.CreateJob(t, ts, employerToken, "Go Developer")
	app := helpers.ApplyToJob(t, ts, applicantToken, job.ID)

	updateURL := "/api/employer/applications/" + app.ID

	// Partial details are rejected.
	res, body := ts.SendRequest(t, http.MethodPut, updateURL, employerToken, map[string]interface{}{
		"status":        "Interview",
		"interviewDate": "2026-09-10",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	// Complete details are persisted.
	res, body = ts.SendRequest(t, http.MethodPut, updateURL, employerToken, map[string]interface{}{
		"status":            "Interview",
		"interviewDate":     "2026-09-10",
		"interviewTime":     "14:00",
		"interviewLocation": "Head Office",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var updated models.Application
	require.NoError(t, json.Unmarshal([]byte(body), &updated))
	assert.Equal(t, models.ApplicationStatusInterview, updated.Status)
	assert.Equal(t, "2026-09-10", updated.InterviewDate)
	assert.Equal(t, "14:00", updated.InterviewTime)
	assert.Equal(t, "Head Office", updated.InterviewLocation)

	// The applicant sees the interview details on their own listing.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/applications", applicantToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var mine []models.Application
	require.NoError(t, json.Unmarshal([]byte(body), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "Head Office", mine[0].InterviewLocation)
}

func TestInterviewReschedule(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	applicantToken, _ := helpers.RegisterAndLogin(t, ts, "Alice", "alice@test.local", "secret123", models.UserRoleApplicant)
	job := helpers.CreateJob(t, ts, employerToken, "Go Developer")
	app := helpers.ApplyToJob(t, ts, applicantToken, job.ID)

	updateURL := "/api/employer/applications/" + app.ID
	schedule := func(date string) models.Application {
		res, body := ts.SendRequest(t, http.MethodPut, updateURL, employerToken, map[string]interface{}{
			"status":            "Interview",
			"interviewDate":     date,
			"interviewTime":     "14:00",
			"interviewLocation": "Head Office",
		})
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var updated models.Application
		require.NoError(t, json.Unmarshal([]byte(body), &updated))
		return updated
	}

	schedule("2026-09-10")
	rescheduled := schedule("2026-09-17")
	assert.Equal(t, "2026-09-17", rescheduled.InterviewDate)
}

func TestTerminalStatusIsImmutable(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	applicantToken, _ := helpers.RegisterAndLogin(t, ts, "Alice", "alice@test.local", "secret123", models.UserRoleApplicant)
	job := helpers.CreateJob(t, ts, employerToken, "Go Developer")
	app := helpers.ApplyToJob(t, ts, applicantToken, job.ID)

	updateURL := "/api/employer/applications/" + app.ID

	res, body := ts.SendRequest(t, http.MethodPut, updateURL, employerToken, map[string]interface{}{
		"status": "Accepted",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Repeating the terminal status is a no-op.
	res, body = ts.SendRequest(t, http.MethodPut, updateURL, employerToken, map[string]interface{}{
		"status": "Accepted",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	// Moving to a different status conflicts.
	for _, status := range []string{"Rejected", "Interview", "Applied"} {
		res, body = ts.SendRequest(t, http.MethodPut, updateURL, employerToken, map[string]interface{}{
			"status":            status,
			"interviewDate":     "2026-09-10",
			"interviewTime":     "14:00",
			"interviewLocation": "Head Office",
		})
		assert.Equal(t, http.StatusConflict, res.StatusCode, body)
	}

	var stored models.Application
	require.NoError(t, ts.DB.First(&stored, "id = ?", app.ID).Error)
	assert.Equal(t, models.ApplicationStatusAccepted, stored.Status)
}

func TestConcurrentConflictingTransitions(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	applicantToken, _ := helpers.RegisterAndLogin(t, ts, "Alice", "alice@test.local", "secret123", models.UserRoleApplicant)
	job := helpers.CreateJob(t, ts, employerToken, "Go Developer")
	app := helpers.ApplyToJob(t, ts, applicantToken, job.ID)

	updateURL := "/api/employer/applications/" + app.ID

	var wg sync.WaitGroup
	for _, status := range []string{"Accepted", "Rejected"} {
		wg.Add(1)
		go func(status string) {
			defer wg.Done()
			ts.SendRequest(t, http.MethodPut, updateURL, employerToken, map[string]interface{}{
				"status": status,
			})
		}(status)
	}
	wg.Wait()

	// Whatever the interleaving, the stored state is one of the two
	// requested terminal statuses.
	var stored models.Application
	require.NoError(t, ts.DB.First(&stored, "id = ?", app.ID).Error)
	assert.True(t, stored.Status == models.ApplicationStatusAccepted || stored.Status == models.ApplicationStatusRejected)
	assert.True(t, stored.Status.Terminal())
}

func TestApplicationStatusGuards(t *testing.T) {
	ts := helpers.NewTestServer(t)

	employerToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	strangerToken, _ := helpers.RegisterAndLogin(t, ts, "Bob", "bob@test.local", "secret123", models.UserRoleEmployer)
	applicantToken, _ := helpers.RegisterAndLogin(t, ts, "Alice", "alice@test.local", "secret123", models.UserRoleApplicant)
	job := helpers.CreateJob(t, ts, employerToken, "Go Developer")
	app := helpers.ApplyToJob(t, ts, applicantToken, job.ID)

	updateURL := "/api/employer/applications/" + app.ID

	// An applicant cannot reach the employer route at all.
	res, _ := ts.SendRequest(t, http.MethodPut, updateURL, applicantToken, map[string]interface{}{
		"status": "Accepted",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Another employer does not own the job.
	res, _ = ts.SendRequest(t, http.MethodPut, updateURL, strangerToken, map[string]interface{}{
		"status": "Accepted",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestEmployerApplicationsListing(t *testing.T) {
	ts := helpers.NewTestServer(t)

	eveToken, _ := helpers.RegisterAndLogin(t, ts, "Eve", "eve@test.local", "secret123", models.UserRoleEmployer)
	bobToken, _ := helpers.RegisterAndLogin(t, ts, "Bob", "bob@test.local", "secret123", models.UserRoleEmployer)
	applicantToken, _ := helpers.RegisterAndLogin(t, ts, "Alice", "alice@test.local", "secret123", models.UserRoleApplicant)

	eveJob := helpers.CreateJob(t, ts, eveToken, "Eve's Job")
	bobJob := helpers.CreateJob(t, ts, bobToken, "Bob's Job")
	helpers.ApplyToJob(t, ts, applicantToken, eveJob.ID)
	helpers.ApplyToJob(t, ts, applicantToken, bobJob.ID)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/employer/applications", eveToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var apps []models.Application
	require.NoError(t, json.Unmarshal([]byte(body), &apps))
	require.Len(t, apps, 1)
	assert.Equal(t, eveJob.ID, apps[0].JobID)
	require.NotNil(t, apps[0].Applicant)
	assert.Equal(t, "alice@test.local", apps[0].Applicant.Email)
}
