package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserRole defines user roles
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleRep     UserRole = "rep"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleRep:
		return true
	}
	return false
}

// User represents a sales representative or manager in the system
type User struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty" gorm:"type:uuid;index"`
	Email          string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name           string     `json:"name" gorm:"type:varchar(255);not null"`
	Role           UserRole   `json:"role" gorm:"type:varchar(50);default:'rep';not null"`
	IsActive       bool       `json:"is_active" gorm:"default:true;not null"`

	// Profile
	AvatarURL *string `json:"avatar_url,omitempty" gorm:"type:varchar(500)"`
	Timezone  string  `json:"timezone" gorm:"type:varchar(50);default:'UTC';not null"`

	// Preferences (stored as JSONB in PostgreSQL)
	NotificationPreferences datatypes.JSON `json:"notification_preferences" gorm:"type:jsonb;default:'{}'"`

	LastActiveAt *time.Time `json:"last_active_at,omitempty" gorm:"type:timestamp"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with default values
func NewUser(email, name string) *User {
	return &User{
		ID:       uuid.New(),
		Email:    email,
		Name:     name,
		Role:     RoleRep,
		IsActive: true,
		Timezone: "UTC",
	}
}

// Validate validates user data
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if u.Name == "" {
		return ErrInvalidName
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	return nil
}
