package models

import "time"

type Application struct {
	BaseModel
	JobID       string `gorm:"type:uuid;not null;index;uniqueIndex:idx_job_applicant" json:"jobId"`
	Job         *Job   `gorm:"foreignKey:JobID" json:"job,omitempty"`
	ApplicantID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_job_applicant" json:"applicantId"`
	Applicant   *User  `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`

	ResumePath  string `gorm:"not null" json:"resumePath"`
	CoverLetter string `gorm:"type:text" json:"coverLetter,omitempty"`
	Email       string `gorm:"not null" json:"email"`
	Phone       string `gorm:"not null" json:"phone"`

	Status            ApplicationStatus `gorm:"type:varchar(20);not null;default:'Applied'" json:"status"`
	InterviewDate     string            `json:"interviewDate,omitempty"`
	InterviewTime     string            `json:"interviewTime,omitempty"`
	InterviewLocation string            `json:"interviewLocation,omitempty"`

	AppliedAt time.Time `gorm:"autoCreateTime" json:"appliedAt"`
}

// Interview returns the application's interview fields as a unit.
func (a *Application) Interview() InterviewDetails {
	return InterviewDetails{
		Date:     a.InterviewDate,
		Time:     a.InterviewTime,
		Location: a.InterviewLocation,
	}
}
