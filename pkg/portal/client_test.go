package portal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/apperrors"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services/dto"
)

func jobRequest() dto.CreateJobRequest {
	return dto.CreateJobRequest{
		Title:       "Go Developer",
		Description: "Build backend services",
		Company:     "Acme",
		Location:    "Remote",
		Salary:      90000,
	}
}

func noBackoff() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff:     func(int) time.Duration { return 0 },
	}
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}

func TestClientRetriesIdempotentReads(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			writeAPIError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "boom")
			return
		}
		json.NewEncoder(w).Encode([]models.Job{{Title: "Go Developer"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithRetryPolicy(noBackoff()))

	jobs, err := client.ListJobs(context.Background(), JobFilter{})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClientRetryIsBounded(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeAPIError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "boom")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithRetryPolicy(noBackoff()))

	_, err := client.ListJobs(context.Background(), JobFilter{})
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
	assert.True(t, apperrors.Retryable(appErr), "exhausted attempts surface the last transient error")
}

func TestClientDoesNotRetryWrites(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeAPIError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "boom")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithRetryPolicy(noBackoff()))

	_, err := client.CreateJob(context.Background(), jobRequest())
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClientDoesNotRetryUnauthorized(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeAPIError(w, http.StatusUnauthorized, "INVALID_TOKEN", "token expired")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithRetryPolicy(noBackoff()))
	client.SetToken("stale-token")

	_, err := client.ListEmployerJobs(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Empty(t, client.Token())
}

func TestClientFiresOnUnauthorizedOncePerSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusUnauthorized, "INVALID_TOKEN", "token expired")
	}))
	defer srv.Close()

	var fired int32
	client := NewClient(srv.URL, WithRetryPolicy(noBackoff()))
	client.OnUnauthorized = func() { atomic.AddInt32(&fired, 1) }
	client.SetToken("stale-token")

	_, err := client.ListEmployerJobs(context.Background())
	require.Error(t, err)
	_, err = client.ListEmployerJobs(context.Background())
	require.Error(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))

	// A fresh session arms the hook again.
	client.SetToken("new-token")
	_, err = client.ListEmployerJobs(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fired))
}

func TestClientInjectsBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Job{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetToken("abc123")

	_, err := client.ListJobs(context.Background(), JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", got)
}

func TestClientDiscardsResponsesFromEndedSessions(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		json.NewEncoder(w).Encode([]models.Job{{Title: "Go Developer"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetToken("session-a")

	done := make(chan error, 1)
	go func() {
		_, err := client.ListEmployerJobs(context.Background())
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	client.ClearToken()
	close(release)

	err := <-done
	require.ErrorIs(t, err, ErrStaleResponse)
}

func TestClientDiscardsSupersededListFetch(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			// First fetch stalls until the second one has answered.
			<-release
			json.NewEncoder(w).Encode([]models.Job{{Title: "outdated listing"}})
			return
		}
		json.NewEncoder(w).Encode([]models.Job{{Title: "current listing"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	done := make(chan error, 1)
	go func() {
		_, err := client.ListJobs(context.Background(), JobFilter{})
		done <- err
	}()
	for atomic.LoadInt32(&calls) == 0 {
		time.Sleep(time.Millisecond)
	}

	jobs, err := client.ListJobs(context.Background(), JobFilter{})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "current listing", jobs[0].Title)

	close(release)
	err = <-done
	require.ErrorIs(t, err, ErrStaleResponse, "the older fetch lost the race and must be discarded")

	// A fetch of a different list is its own handle and stays fresh.
	_, err = client.ListEmployerJobs(context.Background())
	require.NoError(t, err)
}
