package portal

import (
	"context"
	"net/url"
	"strconv"

	"jobportal_backend/internal/models"
)

// Page selects a slice of an admin listing. Zero values mean the server
// defaults (first page, 20 rows).
type Page struct {
	Number int
	Size   int
}

func (p Page) query() url.Values {
	q := url.Values{}
	if p.Number > 0 {
		q.Set("page", strconv.Itoa(p.Number))
	}
	if p.Size > 0 {
		q.Set("page_size", strconv.Itoa(p.Size))
	}
	return q
}

// UserPage is one page of users plus the portal-wide total.
type UserPage struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
}

// AdminListUsers fetches users across the portal. Requires an admin session.
func (c *Client) AdminListUsers(ctx context.Context, page Page) (*UserPage, error) {
	var out UserPage
	if err := c.getJSON(ctx, "/admin/users", page.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminListJobs(ctx context.Context, page Page) ([]models.Job, error) {
	var jobs []models.Job
	if err := c.getJSON(ctx, "/admin/jobs", page.query(), &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) AdminListApplications(ctx context.Context, page Page) ([]models.Application, error) {
	var apps []models.Application
	if err := c.getJSON(ctx, "/admin/applications", page.query(), &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// AdminDeleteUser removes a user together with their jobs and applications.
func (c *Client) AdminDeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/admin/users/"+url.PathEscape(id), nil)
}

func (c *Client) AdminDeleteJob(ctx context.Context, id string) error {
	return c.delete(ctx, "/admin/jobs/"+url.PathEscape(id), nil)
}
