package database

import (
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlitePrefix selects the embedded SQLite driver for local runs without Postgres,
// e.g. DB_CONNECTION_STRING=sqlite://notes.db
const sqlitePrefix = "sqlite://"

func getLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // Not found is a normal resolver outcome
			ParameterizedQueries:      true, // Don't include params in the SQL log
			Colorful:                  true,
		},
	)
}

func configureConnectionPool(db *gorm.DB, maxOpen int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// The general context fans out three queries per cache miss.
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// NewGormDBFromDSN opens Postgres, or SQLite when dsn starts with sqlite://.
func NewGormDBFromDSN(dsn string) (*gorm.DB, error) {
	return open(dsn, logger.Warn)
}

// NewVerboseGormDB is NewGormDBFromDSN with every statement logged.
func NewVerboseGormDB(dsn string) (*gorm.DB, error) {
	return open(dsn, logger.Info)
}

func open(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	dialector := postgres.Open(dsn)
	maxOpen := 100
	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		dialector = sqlite.Open(path)
		// SQLite serializes writers; one connection avoids "database is locked".
		maxOpen = 1
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: getLogger(level),
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db, maxOpen); err != nil {
		return nil, err
	}

	return db, nil
}
