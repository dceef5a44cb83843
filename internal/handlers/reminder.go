package handlers

import (
	"log"
	"net/http"

	"shutterdesk/internal/models"
	"shutterdesk/internal/utils"

	"github.com/gin-gonic/gin"
)

// ListReminders lists reminders ordered by due date. ?pending=true narrows
// the listing to reminders that have not been sent yet.
func (h *Handler) ListReminders(c *gin.Context) {
	query := h.db.Order("date ASC")
	if c.Query("pending") == "true" {
		query = query.Where("sent_at IS NULL")
	}
	if name := c.Query("client_name"); name != "" {
		query = query.Where("client_name = ?", name)
	}

	var reminders []models.Reminder
	if err := query.Find(&reminders).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list reminders", err)
		return
	}

	c.JSON(http.StatusOK, reminders)
}

// DispatchReminders runs the daily dispatch batch on demand. Only a failure
// of the batch's own fetch step surfaces as an error here; individual
// delivery failures leave their reminders pending for the next run.
func (h *Handler) DispatchReminders(c *gin.Context) {
	log.Printf("Manual reminder dispatch requested from %s", utils.GetRealClientIP(c))

	if err := h.reminders.ProcessDailyReminders(c.Request.Context()); err != nil {
		handleError(c, http.StatusInternalServerError, "Dispatch run failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
