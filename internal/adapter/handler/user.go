package handler

import (
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wefi-dex/otterai-backend/errors"
	"github.com/wefi-dex/otterai-backend/internal/adapter/dto/user"
	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
	"github.com/wefi-dex/otterai-backend/internal/domain/repositories"
)

// User handles user HTTP requests
type User struct {
	repo   repositories.UserRepository
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo repositories.UserRepository, logger *zap.Logger) *User {
	return &User{repo: repo, logger: logger}
}

// Create handles POST /users
func (h *User) Create(c echo.Context) error {
	var req user.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	u := entities.NewUser(req.Email, req.Name)
	u.OrganizationID = parseUUIDRef(req.OrganizationID)
	if req.Role != nil {
		u.Role = entities.UserRole(*req.Role)
	}
	if req.Timezone != nil {
		u.Timezone = *req.Timezone
	}

	if err := u.Validate(); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	if err := h.repo.Create(c.Request().Context(), u); err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("create user", err))
	}

	return HandleSuccess(h.logger, c, u)
}

// Get handles GET /users/:id
func (h *User) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid user id"))
	}

	u, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrUserNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("user"))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("find user", err))
	}

	return HandleSuccess(h.logger, c, u)
}

// List handles GET /users
func (h *User) List(c echo.Context) error {
	var orgID *uuid.UUID
	if raw := c.QueryParam("organization_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid organization id"))
		}
		orgID = &id
	}

	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	users, err := h.repo.List(c.Request().Context(), orgID, limit, offset)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("list users", err))
	}

	return HandleSuccess(h.logger, c, users)
}

// Update handles PATCH /users/:id
func (h *User) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid user id"))
	}

	var req user.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	u, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrUserNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("user"))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("find user", err))
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Role != nil {
		u.Role = entities.UserRole(*req.Role)
	}
	if req.Timezone != nil {
		u.Timezone = *req.Timezone
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := u.Validate(); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	if err := h.repo.Update(c.Request().Context(), u); err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("update user", err))
	}

	return HandleSuccess(h.logger, c, u)
}

// Delete handles DELETE /users/:id
func (h *User) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid user id"))
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		if stdErrors.Is(err, entities.ErrUserNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("user"))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("delete user", err))
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}
