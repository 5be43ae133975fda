package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freelanceflow/marketplace-api/internal/core/domain"
	"github.com/freelanceflow/marketplace-api/internal/core/ports"
)

// NotificationHandler handles HTTP requests for the actor's mailbox.
type NotificationHandler struct {
	notificationService ports.NotificationService
}

func NewNotificationHandler(notificationService ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the actor's notifications, newest first.
//
// @Summary      List own notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        skip         query     int   false  "Offset into the result set"  default(0)
// @Param        limit        query     int   false  "Maximum number of results"   default(100)
// @Param        unread_only  query     bool  false  "Return only unread entries"  default(false)
// @Success      200          {array}   notificationResponse
// @Failure      401          {object}  errorResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	skip, limit := pagination(c)

	notifications, err := h.notificationService.List(c.Request().Context(), actor, ports.ListNotificationsInput{
		UnreadOnly: c.QueryParam("unread_only") == "true",
		Skip:       skip,
		Limit:      limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNotificationResponses(notifications))
}

// MarkRead flips one of the actor's notifications to read.
//
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        notification_id  path      string  true  "Notification id"
// @Success      200              {object}  notificationResponse
// @Failure      404              {object}  errorResponse
// @Router       /notifications/{notification_id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	notification, err := h.notificationService.MarkRead(c.Request().Context(), actor, c.Param("notification_id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Notification not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toNotificationResponse(notification))
}

// MarkAllRead flips every unread notification owned by the actor in one
// atomic batch.
//
// @Summary      Mark all notifications as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  markAllReadResponse
// @Failure      401  {object}  errorResponse
// @Router       /notifications/mark-all-read [put]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	count, err := h.notificationService.MarkAllRead(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, markAllReadResponse{
		Message: fmt.Sprintf("Marked %d notifications as read", count),
		Count:   count,
	})
}

// Delete removes one of the actor's notifications.
//
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        notification_id  path      string  true  "Notification id"
// @Success      200              {object}  messageResponse
// @Failure      404              {object}  errorResponse
// @Router       /notifications/{notification_id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.notificationService.Delete(c.Request().Context(), actor, c.Param("notification_id")); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Notification not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Notification deleted successfully"})
}
