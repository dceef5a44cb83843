package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"shutterdesk/internal/models"
	"shutterdesk/internal/schedule"

	"gorm.io/gorm"
)

// EmailSender delivers a rendered reminder to a client mailbox.
type EmailSender interface {
	SendReminder(ctx context.Context, toEmail, toName, clientName, description string) error
}

// WhatsAppSender delivers a named message template to a normalized phone
// number. The boolean reports whether a message actually went out.
type WhatsAppSender interface {
	SendTemplate(phone, templateName, languageCode string) (bool, error)
}

// ReminderConfig carries the locale settings the dispatch job needs.
type ReminderConfig struct {
	MobilePrefix     string
	CountryCode      string
	TemplateLanguage string
}

// ReminderService owns the reminder lifecycle: it creates and supersedes
// reminders when sessions and invoices change state, and runs the daily
// dispatch batch that delivers due reminders over email and WhatsApp.
//
// The lifecycle entry points never return errors. They run as side effects
// of session and invoice updates owned elsewhere, and a reminder
// bookkeeping failure must not fail that primary transaction; everything is
// logged and swallowed at this boundary.
type ReminderService struct {
	db       *gorm.DB
	email    EmailSender
	whatsapp WhatsAppSender
	logger   *log.Logger
	cfg      ReminderConfig
}

// NewReminderService creates the reminder engine with its collaborators
// injected. Empty config fields fall back to the studio defaults.
func NewReminderService(db *gorm.DB, email EmailSender, whatsapp WhatsAppSender, logger *log.Logger, cfg ReminderConfig) *ReminderService {
	if cfg.MobilePrefix == "" {
		cfg.MobilePrefix = "3"
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = "57"
	}
	if cfg.TemplateLanguage == "" {
		cfg.TemplateLanguage = "es"
	}
	return &ReminderService{
		db:       db,
		email:    email,
		whatsapp: whatsapp,
		logger:   logger,
		cfg:      cfg,
	}
}

const pickupReminderDays = 15

// CreateSessionCompletedReminder schedules a pickup reminder 15 days out,
// replacing any previous pickup reminder for the same session so at most
// one is ever outstanding.
func (s *ReminderService) CreateSessionCompletedReminder(clientName, sessionID string) {
	err := s.db.
		Where("session_id = ? AND type = ?", sessionID, models.ReminderSessionCompleted).
		Delete(&models.Reminder{}).Error
	if err != nil {
		s.logger.Printf("reminders: supersede pickup reminder for session %s: %v", sessionID, err)
		return
	}

	reminder := models.Reminder{
		Date:        schedule.DaysFromToday(pickupReminderDays),
		ClientName:  clientName,
		Description: fmt.Sprintf("Hola %s, tus fotos ya están listas. Puedes pasar a recogerlas en el estudio.", clientName),
		Type:        models.ReminderSessionCompleted,
		SessionID:   &sessionID,
	}
	if err := s.db.Create(&reminder).Error; err != nil {
		s.logger.Printf("reminders: create pickup reminder for session %s: %v", sessionID, err)
	}
}

// CreatePhotosReadyReminders schedules the 3-month and 10-month storage
// reminders for an invoice whose photos are ready, superseding any unsent
// pair from an earlier photos-ready transition of the same invoice.
func (s *ReminderService) CreatePhotosReadyReminders(invoiceID, clientName string) {
	photosReadyTypes := []models.ReminderType{
		models.ReminderPhotosReady3Months,
		models.ReminderPhotosReady10Months,
	}

	err := s.db.
		Where("invoice_id = ? AND type IN ? AND sent_at IS NULL", invoiceID, photosReadyTypes).
		Delete(&models.Reminder{}).Error
	if err != nil {
		s.logger.Printf("reminders: supersede photos-ready reminders for invoice %s: %v", invoiceID, err)
		return
	}

	reminders := []models.Reminder{
		{
			Date:        schedule.MonthsFromToday(3),
			ClientName:  clientName,
			Description: fmt.Sprintf("Hola %s, te recordamos que tus fotos siguen disponibles en el estudio. Pasa a reclamarlas cuando quieras.", clientName),
			Type:        models.ReminderPhotosReady3Months,
			InvoiceID:   &invoiceID,
		},
		{
			Date:        schedule.MonthsFromToday(10),
			ClientName:  clientName,
			Description: fmt.Sprintf("Hola %s, tus fotos llevan varios meses en el estudio. Este es el último recordatorio antes de darlas de baja.", clientName),
			Type:        models.ReminderPhotosReady10Months,
			InvoiceID:   &invoiceID,
		},
	}
	if err := s.db.Create(&reminders).Error; err != nil {
		s.logger.Printf("reminders: create photos-ready reminders for invoice %s: %v", invoiceID, err)
	}
}

// DeleteSessionReminders removes every reminder tied to a session, sent or
// not. Called when a session reaches its claimed state and any outstanding
// pickup nag becomes pointless.
func (s *ReminderService) DeleteSessionReminders(sessionID string) {
	err := s.db.Where("session_id = ?", sessionID).Delete(&models.Reminder{}).Error
	if err != nil {
		s.logger.Printf("reminders: delete reminders for session %s: %v", sessionID, err)
	}
}

// ProcessDailyReminders runs one dispatch batch: it finds pending reminders
// due on or before today and attempts delivery for each, one at a time. A
// reminder's failure never stops the rest of the batch; only a failure of
// the initial fetch aborts the run, and that error is returned so the
// scheduler can decide on alerting.
func (s *ReminderService) ProcessDailyReminders(ctx context.Context) error {
	today := schedule.Today()

	var pending []models.Reminder
	if err := s.db.Where("sent_at IS NULL").Order("date ASC").Find(&pending).Error; err != nil {
		return fmt.Errorf("fetch pending reminders: %w", err)
	}

	var due []models.Reminder
	for _, r := range pending {
		if schedule.DueOnOrBefore(r.Date, today) {
			due = append(due, r)
		}
	}
	if len(due) == 0 {
		s.logger.Printf("reminders: nothing due on %s", today.Format("2006-01-02"))
		return nil
	}

	s.logger.Printf("reminders: dispatching %d reminder(s) due on %s", len(due), today.Format("2006-01-02"))
	for i := range due {
		s.dispatchReminder(ctx, &due[i])
	}
	return nil
}

// dispatchReminder attempts delivery of a single reminder over every
// channel the client has, and marks it sent when at least one succeeded.
func (s *ReminderService) dispatchReminder(ctx context.Context, r *models.Reminder) {
	var client models.Client
	err := s.db.Where("name = ?", r.ClientName).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nobody to notify and nobody to retry for. Mark it sent so an
			// unresolvable name doesn't get retried every day forever.
			s.logger.Printf("reminders: warning: client %q not found for reminder %d, marking sent without delivery", r.ClientName, r.ID)
			s.markSent(r)
			return
		}
		s.logger.Printf("reminders: look up client %q for reminder %d: %v", r.ClientName, r.ID, err)
		return
	}

	delivered := false

	if client.Email != "" {
		if err := s.email.SendReminder(ctx, client.Email, client.Name, r.ClientName, r.Description); err != nil {
			s.logger.Printf("reminders: email to %s for reminder %d: %v", client.Email, r.ID, err)
		} else {
			delivered = true
		}
	}

	if client.Phone != "" {
		phone := NormalizePhone(client.Phone, s.cfg.MobilePrefix, s.cfg.CountryCode)
		template := templateForType(r.Type)
		sent, err := s.whatsapp.SendTemplate(phone, template, s.cfg.TemplateLanguage)
		switch {
		case err != nil:
			s.logger.Printf("reminders: whatsapp to %s for reminder %d: %v", phone, r.ID, err)
		case sent:
			delivered = true
		default:
			s.logger.Printf("reminders: whatsapp channel skipped for reminder %d (sender not configured)", r.ID)
		}
	}

	if !delivered {
		// Both channels failed or the client has no contact method at all.
		// The reminder stays pending and tomorrow's run retries it.
		return
	}
	s.markSent(r)
}

// markSent records the terminal sent state. The update is conditional on
// sent_at still being NULL so overlapping dispatch runs cannot both deliver
// the same reminder; losing the race means someone else already sent it.
func (s *ReminderService) markSent(r *models.Reminder) {
	now := time.Now().UTC()
	res := s.db.Model(&models.Reminder{}).
		Where("id = ? AND sent_at IS NULL", r.ID).
		Update("sent_at", now)
	if res.Error != nil {
		s.logger.Printf("reminders: mark reminder %d sent: %v", r.ID, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		s.logger.Printf("reminders: reminder %d was already marked sent", r.ID)
		return
	}
	r.SentAt = &now
}

// templateForType maps a reminder category to its WhatsApp template name.
func templateForType(t models.ReminderType) string {
	switch t {
	case models.ReminderSessionCompleted:
		return "recogida_sesion"
	case models.ReminderPhotosReady3Months:
		return "fotos_listas_3m"
	case models.ReminderPhotosReady10Months:
		return "fotos_listas_10m"
	default:
		return genericTemplate
	}
}
