package entities

import "errors"

// Validation errors shared by entities
var (
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidRole  = errors.New("invalid role")
)

// Lookup errors returned by repositories
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrSalesCallNotFound    = errors.New("sales call not found")
	ErrNotificationNotFound = errors.New("notification not found")
)
