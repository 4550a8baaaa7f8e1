package models

import "github.com/google/uuid"

type Company struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name     string    `gorm:"type:text;not null" json:"name"`
	Location *string   `gorm:"type:text" json:"location,omitempty"`
	Type     *string   `gorm:"type:text" json:"type,omitempty"`
}

func (Company) TableName() string {
	return "companies"
}
