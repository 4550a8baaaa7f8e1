package models

import (
	"time"

	"github.com/google/uuid"
)

type StepType string

const (
	StepTypeCVReview  StepType = "CV review"
	StepTypeAptitude  StepType = "Aptitude"
	StepTypeInterview StepType = "Interview"
)

// ValidStepType reports whether t is one of the three pipeline stage types.
func ValidStepType(t StepType) bool {
	switch t {
	case StepTypeCVReview, StepTypeAptitude, StepTypeInterview:
		return true
	}
	return false
}

type RecruitmentStep struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"job_id"`
	StepType       StepType   `gorm:"type:text;not null" json:"step_type"`
	StepOrder      int        `gorm:"not null" json:"step_order"`
	Starts         *time.Time `json:"starts,omitempty"`
	Ends           *time.Time `json:"ends,omitempty"`
	ReleaseResults bool       `gorm:"not null;default:false" json:"release_results"`
	// Content holds pre-generated assessment material (aptitude or interview
	// question sets). Null for CV review steps.
	Content   *string   `gorm:"type:text" json:"content,omitempty"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (RecruitmentStep) TableName() string {
	return "recruitment_steps"
}
