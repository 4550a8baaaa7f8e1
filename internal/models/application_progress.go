package models

import (
	"time"

	"github.com/google/uuid"
)

// ProgressStatus is the per-step vocabulary, distinct from ApplicationStatus.
// Scoring engines write "passed"/"rejected" from the analysis verdict; an
// admin decision overrides with "accepted"/"rejected".
type ProgressStatus string

const (
	ProgressPending  ProgressStatus = "pending"
	ProgressPassed   ProgressStatus = "passed"
	ProgressAccepted ProgressStatus = "accepted"
	ProgressRejected ProgressStatus = "rejected"
)

// ApplicationProgress records one applicant's attempt at one step. The unique
// index on (application_id, step_id) enforces at-most-once per step; every
// scoring engine upserts by that natural key.
type ApplicationProgress struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicationID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_progress_application_step" json:"application_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	StepID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_progress_application_step;index" json:"step_id"`
	Status        ProgressStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	Score         *float64       `json:"score,omitempty"`
	Review        *string        `gorm:"type:text" json:"review,omitempty"`
	CreatedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Back-reference for display only; never cascades deletion.
	RecruitmentStep *RecruitmentStep `gorm:"foreignKey:StepID" json:"recruitment_step,omitempty"`
}

func (ApplicationProgress) TableName() string {
	return "application_progress"
}
