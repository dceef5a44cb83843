package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"shutterdesk/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateInvoice creates a new invoice for a client
func (h *Handler) CreateInvoice(c *gin.Context) {
	var req models.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	var client models.Client
	if err := h.db.Where("name = ?", req.ClientName).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handleError(c, http.StatusNotFound, "Client not found", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to look up client", err)
		return
	}

	invoice := models.Invoice{
		ClientName: req.ClientName,
		Amount:     req.Amount,
		Items:      req.Items,
	}
	if req.SessionID != "" {
		invoice.SessionID = &req.SessionID
	}
	if err := h.db.Create(&invoice).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create invoice", err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// ListInvoices lists invoices, optionally filtered by status or client name
func (h *Handler) ListInvoices(c *gin.Context) {
	query := h.db.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if name := c.Query("client_name"); name != "" {
		query = query.Where("client_name = ?", name)
	}

	var invoices []models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list invoices", err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// UpdateInvoiceStatus transitions an invoice through its billing lifecycle.
// Marking photos ready schedules the 3-month and 10-month storage reminders;
// reminder bookkeeping is best-effort and never fails the update itself.
func (h *Handler) UpdateInvoiceStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input", err)
		return
	}

	status := models.InvoiceStatus(req.Status)
	if !models.ValidInvoiceStatus(status) {
		handleError(c, http.StatusBadRequest, "Unknown invoice status",
			fmt.Errorf("unknown invoice status %q", req.Status))
		return
	}

	var invoice models.Invoice
	if err := h.db.Where("id = ?", c.Param("id")).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handleError(c, http.StatusNotFound, "Invoice not found", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to retrieve invoice", err)
		return
	}

	if err := h.db.Model(&invoice).Update("status", status).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update invoice", err)
		return
	}

	if status == models.InvoicePhotosReady {
		h.reminders.CreatePhotosReadyReminders(invoice.ID, invoice.ClientName)
	}

	c.JSON(http.StatusOK, invoice)
}
