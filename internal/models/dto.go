package models

import "time"

type CreateJobRequest struct {
	Title           string           `json:"title" validate:"required"`
	Description     *string          `json:"description,omitempty"`
	Type            JobType          `json:"type"`
	CompanyID       string           `json:"company_id" validate:"required,uuid"`
	Requirements    *string          `json:"requirements,omitempty"`
	Benefits        *string          `json:"benefits,omitempty"`
	SalaryMin       *int64           `json:"salary_min,omitempty"`
	SalaryMax       *int64           `json:"salary_max,omitempty"`
	SalaryCurrency  *string          `json:"salary_currency,omitempty"`
	ExperienceLevel *ExperienceLevel `json:"experience_level,omitempty"`
	Openings        *int             `json:"openings,omitempty"`
	Location        *string          `json:"location,omitempty"`
	RemoteStatus    *RemoteStatus    `json:"remote_status,omitempty"`
	Department      *string          `json:"department,omitempty"`
}

type UpdateJobRequest struct {
	Title           *string          `json:"title,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Type            *JobType         `json:"type,omitempty"`
	Requirements    *string          `json:"requirements,omitempty"`
	Benefits        *string          `json:"benefits,omitempty"`
	SalaryMin       *int64           `json:"salary_min,omitempty"`
	SalaryMax       *int64           `json:"salary_max,omitempty"`
	SalaryCurrency  *string          `json:"salary_currency,omitempty"`
	ExperienceLevel *ExperienceLevel `json:"experience_level,omitempty"`
	Openings        *int             `json:"openings,omitempty"`
	Location        *string          `json:"location,omitempty"`
	RemoteStatus    *RemoteStatus    `json:"remote_status,omitempty"`
	Department      *string          `json:"department,omitempty"`
}

type JobStatusRequest struct {
	Status JobStatus `json:"status" validate:"required"`
}

type CreateStepRequest struct {
	StepType       StepType   `json:"step_type" validate:"required"`
	StepOrder      int        `json:"step_order" validate:"required"`
	Starts         *time.Time `json:"starts,omitempty"`
	Ends           *time.Time `json:"ends,omitempty"`
	ReleaseResults *bool      `json:"release_results,omitempty"`
	Content        *string    `json:"content,omitempty"`
}

type UpdateStepRequest struct {
	StepType       *StepType  `json:"step_type,omitempty"`
	StepOrder      *int       `json:"step_order,omitempty"`
	Starts         *time.Time `json:"starts,omitempty"`
	Ends           *time.Time `json:"ends,omitempty"`
	ReleaseResults *bool      `json:"release_results,omitempty"`
	Content        *string    `json:"content,omitempty"`
}

type CreateApplicationRequest struct {
	JobID  string `json:"job_id" validate:"required,uuid"`
	UserID string `json:"user_id" validate:"required,uuid"`
}

type UpdateApplicationRequest struct {
	Status        *ApplicationStatus `json:"status,omitempty"`
	GeneralReview *string            `json:"general_review,omitempty"`
}

type ProgressDecisionRequest struct {
	Status ProgressStatus `json:"status" validate:"required"`
}

type ExtractDocumentResponse struct {
	Success    bool   `json:"success"`
	DocumentID string `json:"document_id"`
	Content    string `json:"content"`
	PageCount  int    `json:"page_count"`
}

type AnalyzeCVRequest struct {
	StepID    string `json:"step_id" validate:"required,uuid"`
	CVContent string `json:"cv_content" validate:"required"`
}

type GenerateAssessmentRequest struct {
	SubType     string `json:"sub_type" validate:"required"`
	CompanyName string `json:"company_name" validate:"required"`
	Role        string `json:"role" validate:"required"`
	RoleDetails string `json:"role_details" validate:"required"`
}

type GenerateAssessmentResponse struct {
	Success     bool      `json:"success"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
}

type CreateInterviewRequest struct {
	StepID string `json:"step_id" validate:"required,uuid"`
}

type CreateInterviewResponse struct {
	SessionID   string `json:"session_id"`
	AssistantID string `json:"assistant_id"`
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
}

type InterviewEventRequest struct {
	SessionID      string  `json:"session_id" validate:"required"`
	Type           string  `json:"type" validate:"required"`
	Role           string  `json:"role,omitempty"`
	Transcript     string  `json:"transcript,omitempty"`
	TranscriptType string  `json:"transcript_type,omitempty"`
	Status         string  `json:"status,omitempty"`
	Level          float64 `json:"level,omitempty"`
	Message        string  `json:"message,omitempty"`
}

type AnalyzeInterviewRequest struct {
	StepID       string `json:"step_id" validate:"required,uuid"`
	Transcript   string `json:"transcript" validate:"required"`
	CallDuration int    `json:"call_duration,omitempty"`
}
