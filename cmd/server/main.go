package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shutterdesk/internal/config"
	"shutterdesk/internal/database"
	"shutterdesk/internal/handlers"
	"shutterdesk/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	logger := log.New(os.Stdout, "[shutterdesk] ", log.LstdFlags)
	cfg := config.Load()

	db, err := database.Init(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		logger.Fatalf("database init failed: %v", err)
	}

	emailService := services.NewEmailService(
		cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName, cfg.SendTimeout)
	whatsappService := services.NewWhatsAppService(
		cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber, cfg.SendTimeout)

	reminderService := services.NewReminderService(db, emailService, whatsappService, logger,
		services.ReminderConfig{
			MobilePrefix:     cfg.PhoneMobilePrefix,
			CountryCode:      cfg.PhoneCountryCode,
			TemplateLanguage: cfg.TemplateLanguage,
		})

	worker := services.NewReminderWorker(reminderService, logger, cfg.DispatchCronSpec)
	if err := worker.Start(); err != nil {
		logger.Fatalf("scheduler start: %v", err)
	}

	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1"})
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	h := handlers.New(db, reminderService)

	router.GET("/", h.Home)
	router.GET("/health", h.Health)

	router.POST("/clients", h.CreateClient)
	router.GET("/clients", h.ListClients)
	router.GET("/clients/:id", h.GetClient)
	router.DELETE("/clients/:id", h.DeleteClient)

	router.POST("/sessions", h.CreateSession)
	router.GET("/sessions", h.ListSessions)
	router.PATCH("/sessions/:id/status", h.UpdateSessionStatus)

	router.POST("/invoices", h.CreateInvoice)
	router.GET("/invoices", h.ListInvoices)
	router.PATCH("/invoices/:id/status", h.UpdateInvoiceStatus)

	router.GET("/reminders", h.ListReminders)
	router.POST("/reminders/dispatch", h.DispatchReminders)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Printf("server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	waitForShutdown(server, worker, logger)
}

func waitForShutdown(server *http.Server, worker *services.ReminderWorker, logger *log.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("server shutdown error: %v", err)
	}
	worker.Stop()
}
