package models

import "fmt"

type UserRole string
type JobStatus string
type ApplicationStatus string

const (
	UserRoleApplicant UserRole = "applicant"
	UserRoleEmployer  UserRole = "employer"
	UserRoleAdmin     UserRole = "admin"

	JobStatusActive      JobStatus = "Active"
	JobStatusFulfilled   JobStatus = "Fulfilled"
	JobStatusVacancyFull JobStatus = "Vacancy Full"
	JobStatusClosed      JobStatus = "Closed"

	ApplicationStatusApplied   ApplicationStatus = "Applied"
	ApplicationStatusInterview ApplicationStatus = "Interview"
	ApplicationStatusAccepted  ApplicationStatus = "Accepted"
	ApplicationStatusRejected  ApplicationStatus = "Rejected"
)

func ParseUserRole(s string) (UserRole, error) {
	switch r := UserRole(s); r {
	case UserRoleApplicant, UserRoleEmployer, UserRoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown user role %q", s)
}

func ParseJobStatus(s string) (JobStatus, error) {
	switch st := JobStatus(s); st {
	case JobStatusActive, JobStatusFulfilled, JobStatusVacancyFull, JobStatusClosed:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch st := ApplicationStatus(s); st {
	case ApplicationStatusApplied, ApplicationStatusInterview,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// Terminal reports whether no further transitions are permitted from s.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// CanTransition reports whether s -> to is a legal application transition.
// Re-asserting the same terminal status is allowed and treated by callers as a
// no-op; Interview -> Interview re-schedules. An interview is optional: Applied
// may move straight to a terminal status.
func (s ApplicationStatus) CanTransition(to ApplicationStatus) bool {
	if s.Terminal() {
		return s == to
	}
	switch s {
	case ApplicationStatusApplied, ApplicationStatusInterview:
		switch to {
		case ApplicationStatusInterview, ApplicationStatusAccepted, ApplicationStatusRejected:
			return true
		}
	}
	return false
}

// CanTransition reports whether s -> to is a legal job transition. Reopening
// (back to Active) is permitted; no job status is terminal.
func (s JobStatus) CanTransition(to JobStatus) bool {
	if _, err := ParseJobStatus(string(to)); err != nil {
		return false
	}
	return s != to
}

// InterviewDetails are required in full whenever an application moves to
// Interview, and must not be supplied with any other target status.
type InterviewDetails struct {
	Date     string `json:"interviewDate"`
	Time     string `json:"interviewTime"`
	Location string `json:"interviewLocation"`
}

func (d InterviewDetails) Empty() bool {
	return d.Date == "" && d.Time == "" && d.Location == ""
}

func (d InterviewDetails) Complete() bool {
	return d.Date != "" && d.Time != "" && d.Location != ""
}

// ValidateTransition is the single place transition validity is decided for
// applications, including the interview-field coupling.
func ValidateTransition(from, to ApplicationStatus, details InterviewDetails) error {
	if !from.CanTransition(to) {
		return fmt.Errorf("cannot transition application from %s to %s", from, to)
	}
	if to == ApplicationStatusInterview {
		if !details.Complete() {
			return fmt.Errorf("interview requires date, time and location")
		}
		return nil
	}
	if !details.Empty() {
		return fmt.Errorf("interview fields may only be set with Interview status")
	}
	return nil
}
