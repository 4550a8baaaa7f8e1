package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleApplicant  UserRole = "applicant"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "superadmin"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Email       string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Role        UserRole  `gorm:"type:text;not null;default:'applicant'" json:"role"`
	AvatarURL   *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	LinkedinURL *string   `gorm:"type:text" json:"linkedin_url,omitempty"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
