package portal

import (
	"context"
	"fmt"
	"net/url"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services/dto"
)

// JobFilter narrows public job listings.
type JobFilter struct {
	Search   string
	Location string
}

func (f JobFilter) query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	return q
}

// ListJobs fetches active job postings. No session required. Overlapping
// calls resolve newest-wins: a fetch superseded by a later ListJobs returns
// ErrStaleResponse instead of its result.
func (c *Client) ListJobs(ctx context.Context, filter JobFilter) ([]models.Job, error) {
	fetch := c.jobFetches.begin()
	var jobs []models.Job
	if err := c.getJSON(ctx, "/jobs", filter.query(), &jobs); err != nil {
		return nil, err
	}
	if c.jobFetches.superseded(fetch) {
		return nil, ErrStaleResponse
	}
	return jobs, nil
}

// BrowseJobs fetches active jobs annotated with the signed-in applicant's
// own application status per job.
func (c *Client) BrowseJobs(ctx context.Context, filter JobFilter) ([]dto.BrowseJob, error) {
	fetch := c.browseFetches.begin()
	var jobs []dto.BrowseJob
	if err := c.getJSON(ctx, "/jobs/browse", filter.query(), &jobs); err != nil {
		return nil, err
	}
	if c.browseFetches.superseded(fetch) {
		return nil, ErrStaleResponse
	}
	return jobs, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := c.getJSON(ctx, "/jobs/"+url.PathEscape(id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// CreateJob posts a new job. Salary must be positive; the check runs
// locally before any request is sent.
func (c *Client) CreateJob(ctx context.Context, req dto.CreateJobRequest) (*models.Job, error) {
	if req.Salary <= 0 {
		return nil, fmt.Errorf("portal: salary must be greater than zero")
	}
	var job models.Job
	if err := c.postJSON(ctx, "/jobs", req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) UpdateJob(ctx context.Context, id string, req dto.UpdateJobRequest) (*models.Job, error) {
	if req.Salary != nil && *req.Salary <= 0 {
		return nil, fmt.Errorf("portal: salary must be greater than zero")
	}
	var job models.Job
	if err := c.putJSON(ctx, "/employer/jobs/"+url.PathEscape(id), req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJobStatus moves a job between Active, Fulfilled, Vacancy Full and
// Closed. The server rejects unknown statuses.
func (c *Client) UpdateJobStatus(ctx context.Context, id string, status models.JobStatus) (*models.Job, error) {
	var job models.Job
	req := dto.UpdateJobStatusRequest{Status: string(status)}
	if err := c.putJSON(ctx, "/employer/jobs/"+url.PathEscape(id)+"/status", req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob removes a job and every application attached to it.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.delete(ctx, "/employer/jobs/"+url.PathEscape(id), nil)
}

// ListEmployerJobs fetches the signed-in employer's own postings,
// regardless of status.
func (c *Client) ListEmployerJobs(ctx context.Context) ([]models.Job, error) {
	fetch := c.employerJobFetches.begin()
	var jobs []models.Job
	if err := c.getJSON(ctx, "/employer/jobs", nil, &jobs); err != nil {
		return nil, err
	}
	if c.employerJobFetches.superseded(fetch) {
		return nil, ErrStaleResponse
	}
	return jobs, nil
}
