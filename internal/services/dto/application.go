package dto

// CreateApplicationRequest is bound from the multipart form; the resume file
// part is handled separately by the handler.
type CreateApplicationRequest struct {
	JobID       string `form:"jobId" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	Phone       string `form:"phone" validate:"required"`
	CoverLetter string `form:"coverLetter"`
}

type UpdateApplicationStatusRequest struct {
	Status            string `json:"status" validate:"required"`
	InterviewDate     string `json:"interviewDate,omitempty"`
	InterviewTime     string `json:"interviewTime,omitempty"`
	InterviewLocation string `json:"interviewLocation,omitempty"`
}
