package portal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services/dto"
)

const maxResumeSize = 5 * 1024 * 1024

var resumeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// createResumePart writes the file part with its real content type so the
// server does not see application/octet-stream.
func createResumePart(w *multipart.Writer, filename string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, filename))
	h.Set("Content-Type", resumeTypes[strings.ToLower(filepath.Ext(filename))])
	return w.CreatePart(h)
}

// Resume is the file attached to an application.
type Resume struct {
	Filename string
	Content  io.Reader
}

// ApplyRequest carries everything needed to apply to a job. A resume is
// mandatory; pdf, doc and docx are accepted.
type ApplyRequest struct {
	JobID       string
	Email       string
	Phone       string
	CoverLetter string
	Resume      *Resume
}

func (r *ApplyRequest) validate() error {
	if r.JobID == "" {
		return fmt.Errorf("portal: job id is required")
	}
	if r.Resume == nil || r.Resume.Filename == "" {
		return fmt.Errorf("portal: a resume file is required")
	}
	switch strings.ToLower(filepath.Ext(r.Resume.Filename)) {
	case ".pdf", ".doc", ".docx":
	default:
		return fmt.Errorf("portal: resume must be a pdf, doc or docx file")
	}
	return nil
}

// Apply submits an application with its resume. Local checks run before
// any bytes hit the wire; size is enforced while buffering the upload.
func (c *Client) Apply(ctx context.Context, req ApplyRequest) (*models.Application, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"jobId":       req.JobID,
		"email":       req.Email,
		"phone":       req.Phone,
		"coverLetter": req.CoverLetter,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	part, err := createResumePart(w, filepath.Base(req.Resume.Filename))
	if err != nil {
		return nil, err
	}
	n, err := io.Copy(part, io.LimitReader(req.Resume.Content, maxResumeSize+1))
	if err != nil {
		return nil, fmt.Errorf("read resume: %w", err)
	}
	if n > maxResumeSize {
		return nil, fmt.Errorf("portal: resume exceeds the 5MB limit")
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var app models.Application
	if err := c.postMultipart(ctx, "/applications", &buf, w.FormDataContentType(), &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// ListMyApplications fetches the signed-in applicant's applications with
// their jobs preloaded.
func (c *Client) ListMyApplications(ctx context.Context) ([]models.Application, error) {
	fetch := c.myAppFetches.begin()
	var apps []models.Application
	if err := c.getJSON(ctx, "/applications", nil, &apps); err != nil {
		return nil, err
	}
	if c.myAppFetches.superseded(fetch) {
		return nil, ErrStaleResponse
	}
	return apps, nil
}

func (c *Client) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := c.getJSON(ctx, "/applications/"+url.PathEscape(id), nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// ListEmployerApplications fetches every application against the signed-in
// employer's jobs.
func (c *Client) ListEmployerApplications(ctx context.Context) ([]models.Application, error) {
	fetch := c.employerAppFetches.begin()
	var apps []models.Application
	if err := c.getJSON(ctx, "/employer/applications", nil, &apps); err != nil {
		return nil, err
	}
	if c.employerAppFetches.superseded(fetch) {
		return nil, ErrStaleResponse
	}
	return apps, nil
}

// UpdateApplicationStatus moves an application through its lifecycle.
// Scheduling an interview requires date, time and location together, which
// is checked locally before the request is sent.
func (c *Client) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus, details models.InterviewDetails) (*models.Application, error) {
	if status == models.ApplicationStatusInterview && !details.Complete() {
		return nil, fmt.Errorf("portal: interview date, time and location are all required")
	}
	if status != models.ApplicationStatusInterview && !details.Empty() {
		return nil, fmt.Errorf("portal: interview details only apply to the Interview status")
	}

	req := dto.UpdateApplicationStatusRequest{
		Status:            string(status),
		InterviewDate:     details.Date,
		InterviewTime:     details.Time,
		InterviewLocation: details.Location,
	}
	var app models.Application
	if err := c.putJSON(ctx, "/employer/applications/"+url.PathEscape(id), req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}
