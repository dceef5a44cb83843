package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"shutterdesk/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateSession books a new photo session
func (h *Handler) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	// The client must exist before a session can be booked for them.
	var client models.Client
	if err := h.db.Where("name = ?", req.ClientName).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handleError(c, http.StatusNotFound, "Client not found", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to look up client", err)
		return
	}

	session := models.PhotoSession{
		ClientName:  req.ClientName,
		Package:     req.Package,
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
	}
	if err := h.db.Create(&session).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create session", err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ListSessions lists sessions, optionally filtered by status or client name
func (h *Handler) ListSessions(c *gin.Context) {
	query := h.db.Order("scheduled_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if name := c.Query("client_name"); name != "" {
		query = query.Where("client_name = ?", name)
	}

	var sessions []models.PhotoSession
	if err := query.Find(&sessions).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list sessions", err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// UpdateSessionStatus transitions a session through its lifecycle. Completing
// a session schedules the pickup reminder; claiming it cancels any reminders
// still tied to it. Reminder bookkeeping is best-effort and never fails the
// status update itself.
func (h *Handler) UpdateSessionStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	status := models.SessionStatus(req.Status)
	if !models.ValidSessionStatus(status) {
		handleError(c, http.StatusBadRequest, "Unknown session status",
			fmt.Errorf("unknown session status %q", req.Status))
		return
	}

	var session models.PhotoSession
	if err := h.db.Where("id = ?", c.Param("id")).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handleError(c, http.StatusNotFound, "Session not found", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to retrieve session", err)
		return
	}

	if err := h.db.Model(&session).Update("status", status).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update session", err)
		return
	}

	switch status {
	case models.SessionCompleted:
		h.reminders.CreateSessionCompletedReminder(session.ClientName, session.ID)
	case models.SessionClaimed:
		h.reminders.DeleteSessionReminders(session.ID)
	}

	c.JSON(http.StatusOK, session)
}
