package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"shutterdesk/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateClient registers a new studio client
func (h *Handler) CreateClient(c *gin.Context) {
	var req models.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	client := models.Client{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	}
	if err := h.db.Create(&client).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create client", err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// ListClients lists clients, optionally filtered by exact name
func (h *Handler) ListClients(c *gin.Context) {
	query := h.db.Order("name ASC")
	if name := c.Query("name"); name != "" {
		query = query.Where("name = ?", name)
	}

	var clients []models.Client
	if err := query.Find(&clients).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list clients", err)
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves a single client by ID
func (h *Handler) GetClient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid client ID", err)
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handleError(c, http.StatusNotFound, "Client not found", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to retrieve client", err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient soft-deletes a client; pending reminders for the client stop
// resolving at dispatch time from that point on.
func (h *Handler) DeleteClient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		handleError(c, http.StatusBadRequest, "Invalid client ID", err)
		return
	}

	res := h.db.Delete(&models.Client{}, id)
	if res.Error != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete client", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		handleError(c, http.StatusNotFound, "Client not found", gorm.ErrRecordNotFound)
		return
	}

	c.Status(http.StatusNoContent)
}
