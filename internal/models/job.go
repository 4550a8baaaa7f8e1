package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"
	JobStatusPaused JobStatus = "paused"
)

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeInternship JobType = "internship"
	JobTypeContract   JobType = "contract"
)

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceLead      ExperienceLevel = "lead"
	ExperienceExecutive ExperienceLevel = "executive"
)

type RemoteStatus string

const (
	RemoteOnsite RemoteStatus = "onsite"
	RemoteRemote RemoteStatus = "remote"
	RemoteHybrid RemoteStatus = "hybrid"
)

type Job struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title           string           `gorm:"type:text;not null" json:"title"`
	Description     *string          `gorm:"type:text" json:"description,omitempty"`
	Type            JobType          `gorm:"type:text;not null;default:'full-time'" json:"type"`
	Status          JobStatus        `gorm:"type:text;not null;default:'closed'" json:"status"`
	CompanyID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"company_id"`
	Requirements    *string          `gorm:"type:text" json:"requirements,omitempty"`
	Benefits        *string          `gorm:"type:text" json:"benefits,omitempty"`
	SalaryMin       *int64           `json:"salary_min,omitempty"`
	SalaryMax       *int64           `json:"salary_max,omitempty"`
	SalaryCurrency  string           `gorm:"type:text;default:'USD'" json:"salary_currency"`
	ExperienceLevel *ExperienceLevel `gorm:"type:text" json:"experience_level,omitempty"`
	Openings        int              `gorm:"default:1" json:"openings"`
	Location        *string          `gorm:"type:text" json:"location,omitempty"`
	RemoteStatus    RemoteStatus     `gorm:"type:text;default:'onsite'" json:"remote_status"`
	Department      *string          `gorm:"type:text" json:"department,omitempty"`
	DatePosted      time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"date_posted"`
	DateClosed      *time.Time       `json:"date_closed,omitempty"`

	// Relations
	Company          *Company          `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	RecruitmentSteps []RecruitmentStep `gorm:"foreignKey:JobID" json:"recruitment_steps,omitempty"`
	Applications     []Application     `gorm:"foreignKey:JobID" json:"applications,omitempty"`
}

func (Job) TableName() string {
	return "jobs"
}
