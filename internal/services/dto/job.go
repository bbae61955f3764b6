package dto

import "jobportal_backend/internal/models"

type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required,min=3"`
	Description string   `json:"description" validate:"required"`
	Company     string   `json:"company" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Salary      float64  `json:"salary" validate:"required,gt=0"`
	Tags        []string `json:"tags,omitempty"`
}

type UpdateJobRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3"`
	Description *string  `json:"description,omitempty"`
	Company     *string  `json:"company,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Salary      *float64 `json:"salary,omitempty" validate:"omitempty,gt=0"`
	Tags        []string `json:"tags,omitempty"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// BrowseJob is a job annotated with the calling applicant's own application
// status, when one exists.
type BrowseJob struct {
	models.Job
	ApplicationStatus models.ApplicationStatus `json:"applicationStatus,omitempty"`
	Applied           bool                     `json:"applied"`
}
