package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shutterdesk/internal/models"
	"shutterdesk/internal/schedule"
	"shutterdesk/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubEmailSender struct{}

func (stubEmailSender) SendReminder(ctx context.Context, toEmail, toName, clientName, description string) error {
	return nil
}

type stubWhatsAppSender struct{}

func (stubWhatsAppSender) SendTemplate(phone, templateName, languageCode string) (bool, error) {
	return true, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_fk=1", name, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite memory")
	require.NoError(t, db.AutoMigrate(
		&models.Client{}, &models.PhotoSession{}, &models.Invoice{}, &models.Reminder{}))

	svc := services.NewReminderService(db, stubEmailSender{}, stubWhatsAppSender{},
		log.New(io.Discard, "", 0), services.ReminderConfig{})
	h := New(db, svc)

	router := gin.New()
	router.POST("/clients", h.CreateClient)
	router.GET("/clients", h.ListClients)
	router.POST("/sessions", h.CreateSession)
	router.PATCH("/sessions/:id/status", h.UpdateSessionStatus)
	router.POST("/invoices", h.CreateInvoice)
	router.PATCH("/invoices/:id/status", h.UpdateInvoiceStatus)
	router.GET("/reminders", h.ListReminders)
	router.POST("/reminders/dispatch", h.DispatchReminders)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func seedSession(t *testing.T, db *gorm.DB, clientName string) models.PhotoSession {
	t.Helper()
	require.NoError(t, db.Create(&models.Client{Name: clientName, Email: clientName + "@example.com"}).Error)
	session := models.PhotoSession{ClientName: clientName, ScheduledAt: time.Now().Add(24 * time.Hour)}
	require.NoError(t, db.Create(&session).Error)
	return session
}

func TestCompletingSessionCreatesPickupReminder(t *testing.T) {
	t.Parallel()
	router, db := newTestRouter(t)
	session := seedSession(t, db, "Ana")

	rec := doJSON(t, router, http.MethodPatch, "/sessions/"+session.ID+"/status",
		gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var reminders []models.Reminder
	require.NoError(t, db.Where("session_id = ? AND sent_at IS NULL", session.ID).Find(&reminders).Error)
	require.Len(t, reminders, 1)
	assert.Equal(t, models.ReminderSessionCompleted, reminders[0].Type)
	assert.True(t, schedule.SameCalendarDay(reminders[0].Date, schedule.DaysFromToday(15)))
}

func TestClaimingSessionDeletesItsReminders(t *testing.T) {
	t.Parallel()
	router, db := newTestRouter(t)
	session := seedSession(t, db, "Ana")

	require.Equal(t, http.StatusOK,
		doJSON(t, router, http.MethodPatch, "/sessions/"+session.ID+"/status", gin.H{"status": "completed"}).Code)
	require.Equal(t, http.StatusOK,
		doJSON(t, router, http.MethodPatch, "/sessions/"+session.ID+"/status", gin.H{"status": "claimed"}).Code)

	var count int64
	require.NoError(t, db.Model(&models.Reminder{}).Where("session_id = ?", session.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUnknownSessionStatusRejected(t *testing.T) {
	t.Parallel()
	router, db := newTestRouter(t)
	session := seedSession(t, db, "Ana")

	rec := doJSON(t, router, http.MethodPatch, "/sessions/"+session.ID+"/status",
		gin.H{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPhotosReadyCreatesStorageReminderPair(t *testing.T) {
	t.Parallel()
	router, db := newTestRouter(t)
	require.NoError(t, db.Create(&models.Client{Name: "Beto", Email: "beto@example.com"}).Error)

	rec := doJSON(t, router, http.MethodPost, "/invoices",
		gin.H{"client_name": "Beto", "amount": 250.0})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var invoice models.Invoice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &invoice))

	// Marking photos ready twice must supersede, leaving exactly one pair.
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK,
			doJSON(t, router, http.MethodPatch, "/invoices/"+invoice.ID+"/status", gin.H{"status": "photos_ready"}).Code)
	}

	var reminders []models.Reminder
	require.NoError(t, db.Where("invoice_id = ? AND sent_at IS NULL", invoice.ID).Find(&reminders).Error)
	assert.Len(t, reminders, 2)
}

func TestListRemindersExposesDerivedSentFlag(t *testing.T) {
	t.Parallel()
	router, db := newTestRouter(t)

	sentAt := time.Now().UTC()
	require.NoError(t, db.Create(&models.Reminder{
		Date: schedule.Today(), ClientName: "Ana", Description: "x",
		Type: models.ReminderSessionCompleted, SentAt: &sentAt,
	}).Error)
	require.NoError(t, db.Create(&models.Reminder{
		Date: schedule.Today(), ClientName: "Ana", Description: "y",
		Type: models.ReminderPhotosReady3Months,
	}).Error)

	rec := doJSON(t, router, http.MethodGet, "/reminders", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []struct {
		IsSent bool `json:"is_sent"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.NotEqual(t, listed[0].IsSent, listed[1].IsSent)

	rec = doJSON(t, router, http.MethodGet, "/reminders?pending=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
}

func TestManualDispatchEndpoint(t *testing.T) {
	t.Parallel()
	router, db := newTestRouter(t)
	require.NoError(t, db.Create(&models.Client{Name: "Ana", Email: "ana@example.com"}).Error)
	require.NoError(t, db.Create(&models.Reminder{
		Date: schedule.Today(), ClientName: "Ana", Description: "x",
		Type: models.ReminderSessionCompleted,
	}).Error)

	rec := doJSON(t, router, http.MethodPost, "/reminders/dispatch", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.Reminder{}).Where("sent_at IS NULL").Count(&count).Error)
	assert.Zero(t, count)
}
