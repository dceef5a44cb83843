package services

import (
	"fmt"
	"strings"
	"time"

	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Prebuilt WhatsApp message bodies, keyed by template name then language.
// Adding a reminder category means adding its template here; unknown names
// fall back to the generic template at send time.
var whatsAppTemplates = map[string]map[string]string{
	"recogida_sesion": {
		"es": "Hola! Tus fotos ya están listas. Puedes pasar a recogerlas en el estudio.",
	},
	"fotos_listas_3m": {
		"es": "Hola! Te recordamos que tus fotos siguen disponibles en el estudio. Pasa a reclamarlas cuando quieras.",
	},
	"fotos_listas_10m": {
		"es": "Hola! Tus fotos llevan varios meses en el estudio. Este es el último recordatorio antes de darlas de baja.",
	},
	"recordatorio_general": {
		"es": "Hola! Tienes un recordatorio pendiente del estudio fotográfico.",
	},
}

const genericTemplate = "recordatorio_general"

// WhatsAppService sends reminder messages through Twilio's WhatsApp API.
type WhatsAppService struct {
	client     *twilio.RestClient
	fromNumber string
}

// NewWhatsAppService creates a Twilio-backed WhatsApp sender bound to the
// studio's sender number. The HTTP client gets a bounded timeout so a slow
// provider cannot stall a dispatch run.
func NewWhatsAppService(accountSID, authToken, fromNumber string, timeout time.Duration) *WhatsAppService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	if timeout > 0 {
		client.Client.SetTimeout(timeout)
	}

	return &WhatsAppService{
		client:     client,
		fromNumber: fromNumber,
	}
}

// SendTemplate delivers the named message template to a normalized phone
// number. It returns false without error when nothing was sent because the
// sender number is not configured.
func (s *WhatsAppService) SendTemplate(phone, templateName, languageCode string) (bool, error) {
	if s.fromNumber == "" {
		return false, nil
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(whatsAppAddress(phone))
	params.SetFrom(whatsAppAddress(s.fromNumber))
	params.SetBody(templateBody(templateName, languageCode))

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return false, fmt.Errorf("twilio send to %s: %w", phone, err)
	}
	return true, nil
}

func templateBody(templateName, languageCode string) string {
	byLang, ok := whatsAppTemplates[templateName]
	if !ok {
		byLang = whatsAppTemplates[genericTemplate]
	}
	if body, ok := byLang[languageCode]; ok {
		return body
	}
	return byLang["es"]
}

func whatsAppAddress(number string) string {
	trimmed := strings.TrimSpace(number)
	if strings.HasPrefix(trimmed, "whatsapp:") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "+") {
		return "whatsapp:" + trimmed
	}
	return "whatsapp:+" + trimmed
}

var phoneCleaner = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "+", "")

// NormalizePhone strips formatting characters from a stored phone number
// and prepends the country calling code to bare national mobile numbers
// (exactly 10 digits starting with the local mobile prefix). Anything else
// is passed through as-is after cleaning.
func NormalizePhone(raw, mobilePrefix, countryCode string) string {
	digits := phoneCleaner.Replace(strings.TrimSpace(raw))
	if len(digits) == 10 && strings.HasPrefix(digits, mobilePrefix) {
		return countryCode + digits
	}
	return digits
}
