package models

import "gorm.io/datatypes"

type Job struct {
	BaseModel
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Company     string         `gorm:"not null" json:"company"`
	Location    string         `gorm:"not null;index" json:"location"`
	Salary      float64        `gorm:"not null" json:"salary"`
	Tags        datatypes.JSON `gorm:"type:jsonb" json:"tags,omitempty"`
	Status      JobStatus      `gorm:"type:varchar(20);not null;default:'Active'" json:"status"`
	PostedByID  string         `gorm:"type:uuid;not null;index" json:"postedBy"`
	PostedBy    *User          `gorm:"foreignKey:PostedByID" json:"-"`

	// Deleting a job deletes its applications; services rely on this cascade.
	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}
