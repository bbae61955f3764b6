package email

import (
	"fmt"

	"jobportal_backend/internal/models"
)

// Provider sends applicant-facing notifications. Sending is always
// best-effort: callers log failures and continue.
type Provider interface {
	Send(email *Email) error

	// SendInterviewInvite notifies an applicant of a scheduled interview.
	SendInterviewInvite(to string, job *models.Job, details models.InterviewDetails) error

	// SendStatusUpdate notifies an applicant of a terminal decision.
	SendStatusUpdate(to string, job *models.Job, status models.ApplicationStatus) error
}

func interviewInvite(job *models.Job, details models.InterviewDetails) (subject, body string) {
	subject = fmt.Sprintf("Interview scheduled: %s at %s", job.Title, job.Company)
	body = fmt.Sprintf(
		"Your application for %q at %s has moved to the interview stage.\n\n"+
			"Date: %s\nTime: %s\nLocation: %s\n",
		job.Title, job.Company, details.Date, details.Time, details.Location,
	)
	return subject, body
}

func statusUpdate(job *models.Job, status models.ApplicationStatus) (subject, body string) {
	subject = fmt.Sprintf("Application update: %s at %s", job.Title, job.Company)
	body = fmt.Sprintf("Your application for %q at %s is now: %s\n", job.Title, job.Company, status)
	return subject, body
}
