package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"shutterdesk/internal/models"
	"shutterdesk/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Init opens the database connection and runs migrations. Postgres is used
// when databaseURL is set; otherwise a local SQLite file keeps development
// and tests self-contained.
func Init(databaseURL, sqlitePath string) (*gorm.DB, error) {
	baseLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// The daily dispatch poll runs forever and is pure noise in the query
	// log, so it gets filtered out.
	filteredLogger := utils.NewFilteredGormLogger(
		baseLogger,
		"sent_at IS NULL",
	)

	gormConfig := &gorm.Config{
		Logger: filteredLogger,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		PrepareStmt: true,
	}

	var (
		db  *gorm.DB
		err error
	)

	if databaseURL != "" {
		db, err = openPostgres(databaseURL, gormConfig)
	} else {
		db, err = gorm.Open(sqlite.Open(sqlitePath), gormConfig)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&models.Client{},
		&models.PhotoSession{},
		&models.Invoice{},
		&models.Reminder{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database connection established and migrations completed")
	return db, nil
}

// openPostgres connects with retries; managed Postgres instances routinely
// take a few seconds to accept connections after a deploy.
func openPostgres(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	maxRetries := 5
	retryDelay := time.Second * 5

	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
		if err == nil {
			return db, nil
		}
		log.Printf("Database connection attempt %d failed: %v", i+1, err)
		if i < maxRetries-1 {
			log.Printf("Retrying in %v...", retryDelay)
			time.Sleep(retryDelay)
		}
	}
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}
