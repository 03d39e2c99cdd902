package organization

// CreateOrganizationRequest is the payload for creating an organization
type CreateOrganizationRequest struct {
	Name   string  `json:"name" validate:"required"`
	Domain *string `json:"domain"`
	Plan   *string `json:"plan" validate:"omitempty,oneof=free starter growth enterprise"`
}

// UpdateOrganizationRequest is the payload for updating an organization
type UpdateOrganizationRequest struct {
	Name     *string `json:"name"`
	Domain   *string `json:"domain"`
	Plan     *string `json:"plan" validate:"omitempty,oneof=free starter growth enterprise"`
	IsActive *bool   `json:"is_active"`
}
