package handler

import (
	stdErrors "errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wefi-dex/otterai-backend/errors"
	"github.com/wefi-dex/otterai-backend/internal/adapter/dto/organization"
	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
	"github.com/wefi-dex/otterai-backend/internal/domain/repositories"
)

// Organization handles tenant HTTP requests
type Organization struct {
	repo   repositories.OrganizationRepository
	logger *zap.Logger
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(repo repositories.OrganizationRepository, logger *zap.Logger) *Organization {
	return &Organization{repo: repo, logger: logger}
}

// Create handles POST /organizations
func (h *Organization) Create(c echo.Context) error {
	var req organization.CreateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	org := entities.NewOrganization(req.Name)
	org.Domain = req.Domain
	if req.Plan != nil {
		org.Plan = *req.Plan
	}

	if err := h.repo.Create(c.Request().Context(), org); err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("create organization", err))
	}

	return HandleSuccess(h.logger, c, org)
}

// Get handles GET /organizations/:id
func (h *Organization) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid organization id"))
	}

	org, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrOrganizationNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("organization"))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("find organization", err))
	}

	return HandleSuccess(h.logger, c, org)
}

// List handles GET /organizations
func (h *Organization) List(c echo.Context) error {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	orgs, err := h.repo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("list organizations", err))
	}

	return HandleSuccess(h.logger, c, orgs)
}

// Update handles PATCH /organizations/:id
func (h *Organization) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid organization id"))
	}

	var req organization.UpdateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	org, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrOrganizationNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("organization"))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("find organization", err))
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Domain != nil {
		org.Domain = req.Domain
	}
	if req.Plan != nil {
		org.Plan = *req.Plan
	}
	if req.IsActive != nil {
		org.IsActive = *req.IsActive
	}

	if err := h.repo.Update(c.Request().Context(), org); err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("update organization", err))
	}

	return HandleSuccess(h.logger, c, org)
}

// Delete handles DELETE /organizations/:id
func (h *Organization) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid organization id"))
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		if stdErrors.Is(err, entities.ErrOrganizationNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("organization"))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("delete organization", err))
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// queryInt reads an integer query parameter with a default
func queryInt(c echo.Context, key string, def int) int {
	raw := c.QueryParam(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
