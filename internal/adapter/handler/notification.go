package handler

import (
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wefi-dex/otterai-backend/errors"
	"github.com/wefi-dex/otterai-backend/internal/domain/entities"
	"github.com/wefi-dex/otterai-backend/internal/domain/repositories"
)

// Notification handles notification HTTP requests
type Notification struct {
	repo   repositories.NotificationRepository
	logger *zap.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(repo repositories.NotificationRepository, logger *zap.Logger) *Notification {
	return &Notification{repo: repo, logger: logger}
}

// ListByUser handles GET /users/:id/notifications
func (h *Notification) ListByUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid user id"))
	}

	unreadOnly := c.QueryParam("unread") == "true"
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	notifications, err := h.repo.ListByUser(c.Request().Context(), userID, unreadOnly, limit, offset)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("list notifications", err))
	}

	return HandleSuccess(h.logger, c, notifications)
}

// MarkRead handles POST /notifications/:id/read
func (h *Notification) MarkRead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid notification id"))
	}

	if err := h.repo.MarkRead(c.Request().Context(), id); err != nil {
		if stdErrors.Is(err, entities.ErrNotificationNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("notification"))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed("mark notification read", err))
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}
