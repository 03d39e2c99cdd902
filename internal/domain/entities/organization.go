package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Organization represents a tenant in the multi-tenant data model
type Organization struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name     string    `json:"name" gorm:"type:varchar(255);not null"`
	Domain   *string   `json:"domain,omitempty" gorm:"type:varchar(255)"`
	Plan     string    `json:"plan" gorm:"type:varchar(50);default:'free';not null"`
	IsActive bool      `json:"is_active" gorm:"default:true;not null"`

	// Settings (stored as JSONB in PostgreSQL)
	Settings datatypes.JSON `json:"settings" gorm:"type:jsonb;default:'{}'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}

// NewOrganization creates a new organization with default values
func NewOrganization(name string) *Organization {
	return &Organization{
		ID:       uuid.New(),
		Name:     name,
		Plan:     "free",
		IsActive: true,
	}
}
