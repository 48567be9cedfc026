package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func getLogger(isProd bool) logger.Interface {
	level := logger.Info
	if isProd {
		level = logger.Warn
	}
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      true, // Don't include params in the SQL log
			Colorful:                  !isProd,
		},
	)
}

func configureConnectionPool(db *gorm.DB, maxConnections int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if maxConnections <= 0 {
		maxConnections = 10
	}
	sqlDB.SetMaxIdleConns(maxConnections)
	sqlDB.SetMaxOpenConns(maxConnections)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// NewGormDBFromDSN opens a pooled Postgres connection.
func NewGormDBFromDSN(dsn string, maxConnections int, isProd bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: getLogger(isProd),
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db, maxConnections); err != nil {
		return nil, err
	}

	return db, nil
}
