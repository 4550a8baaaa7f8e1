package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationSelected  ApplicationStatus = "selected"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

// ValidApplicationStatus reports whether s is a known overall status.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationSelected, ApplicationRejected, ApplicationWithdrawn:
		return true
	}
	return false
}

// Application ties one applicant to one job. The unique index on
// (job_id, user_id) is the backstop for the one-application-per-pair rule.
type Application struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID         uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_user" json:"job_id"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_user" json:"user_id"`
	Status        ApplicationStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	GeneralReview *string           `gorm:"type:text" json:"general_review,omitempty"`
	CreatedAt     time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Job       *Job                  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Applicant *User                 `gorm:"foreignKey:UserID" json:"applicant,omitempty"`
	Progress  []ApplicationProgress `gorm:"foreignKey:ApplicationID" json:"progress,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}
