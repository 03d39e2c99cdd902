package salescall

import "time"

// CreateSalesCallRequest is the payload for manually creating a sales call
type CreateSalesCallRequest struct {
	CustomerName    string     `json:"customer_name" validate:"required"`
	CustomerEmail   *string    `json:"customer_email" validate:"omitempty,email"`
	OrganizationID  *string    `json:"organization_id" validate:"omitempty,uuid"`
	UserID          *string    `json:"user_id" validate:"omitempty,uuid"`
	AppointmentTime *time.Time `json:"appointment_time"`
	Status          *string    `json:"status" validate:"omitempty,oneof=scheduled completed cancelled missed"`
	Outcome         *string    `json:"outcome"`
	SaleAmount      *float64   `json:"sale_amount" validate:"omitempty,gte=0"`
}

// UpdateSalesCallRequest is the payload for updating a sales call. All
// fields are optional; absent fields keep their stored values.
type UpdateSalesCallRequest struct {
	CustomerName    *string    `json:"customer_name"`
	CustomerEmail   *string    `json:"customer_email" validate:"omitempty,email"`
	UserID          *string    `json:"user_id" validate:"omitempty,uuid"`
	AppointmentTime *time.Time `json:"appointment_time"`
	Status          *string    `json:"status" validate:"omitempty,oneof=scheduled completed cancelled missed"`
	Outcome         *string    `json:"outcome"`
	SaleAmount      *float64   `json:"sale_amount" validate:"omitempty,gte=0"`
}

// ListSalesCallsRequest carries the query filters for listing sales calls
type ListSalesCallsRequest struct {
	OrganizationID *string `query:"organization_id" validate:"omitempty,uuid"`
	UserID         *string `query:"user_id" validate:"omitempty,uuid"`
	Status         *string `query:"status" validate:"omitempty,oneof=scheduled completed cancelled missed"`
	Limit          int     `query:"limit" validate:"omitempty,gte=1,lte=200"`
	Offset         int     `query:"offset" validate:"omitempty,gte=0"`
}
