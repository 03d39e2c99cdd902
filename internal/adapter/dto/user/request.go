package user

// CreateUserRequest is the payload for creating a user
type CreateUserRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	Name           string  `json:"name" validate:"required"`
	Role           *string `json:"role" validate:"omitempty,oneof=admin manager rep"`
	OrganizationID *string `json:"organization_id" validate:"omitempty,uuid"`
	Timezone       *string `json:"timezone"`
}

// UpdateUserRequest is the payload for updating a user
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin manager rep"`
	Timezone *string `json:"timezone"`
	IsActive *bool   `json:"is_active"`
}
