package handlers

import (
	"log"
	"net/http"

	"shutterdesk/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler bundles the dependencies the HTTP endpoints share.
type Handler struct {
	db        *gorm.DB
	reminders *services.ReminderService
}

// New creates the handler set with its dependencies injected.
func New(db *gorm.DB, reminders *services.ReminderService) *Handler {
	return &Handler{db: db, reminders: reminders}
}

// handleError provides a consistent way to handle and log errors
func handleError(c *gin.Context, status int, message string, err error) {
	log.Printf("Error: %v", err)
	c.JSON(status, gin.H{"error": message})
}

// Home handles requests to the root path "/"
func (h *Handler) Home(c *gin.Context) {
	c.String(http.StatusOK, "Shutterdesk API")
}

// Health is a simple health check endpoint
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
