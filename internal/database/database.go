// File: internal/database/database.go
package database

import (
    "fmt"
    "log"
    "time"

    "github.com/glebarez/sqlite"
    "gorm.io/driver/postgres"
    "gorm.io/gorm"
    "gorm.io/gorm/logger"

    "github.com/iyunix/go-supportchat/internal/domain"
)

// Open connects to the configured database. Timestamps are always written in UTC.
func Open(driver, dsn string, quiet bool) (*gorm.DB, error) {
    var dialector gorm.Dialector
    switch driver {
    case "sqlite":
        dialector = sqlite.Open(dsn)
    case "postgres":
        dialector = postgres.Open(dsn)
    default:
        return nil, fmt.Errorf("unsupported database driver %q", driver)
    }

    gormCfg := &gorm.Config{
        NowFunc: func() time.Time { return time.Now().UTC() },
    }
    if quiet {
        gormCfg.Logger = logger.Default.LogMode(logger.Silent)
    } else {
        gormCfg.Logger = logger.Default.LogMode(logger.Warn)
    }

    db, err := gorm.Open(dialector, gormCfg)
    if err != nil {
        return nil, fmt.Errorf("failed to connect to database: %w", err)
    }

    sqlDB, err := db.DB()
    if err != nil {
        return nil, fmt.Errorf("failed to get sql.DB: %w", err)
    }
    if driver == "sqlite" {
        // SQLite allows one writer; a single connection serializes writes instead of failing with SQLITE_BUSY.
        sqlDB.SetMaxOpenConns(1)
    } else {
        sqlDB.SetMaxOpenConns(25)
        sqlDB.SetMaxIdleConns(5)
        sqlDB.SetConnMaxLifetime(30 * time.Minute)
    }

    log.Printf("[Database] Connected using %s driver", driver)
    return db, nil
}

// Migrate creates or updates the schema for all persisted models.
func Migrate(db *gorm.DB) error {
    if err := db.AutoMigrate(
        &domain.Conversation{},
        &domain.Message{},
        &domain.ConversationThread{},
        &domain.RateLimitWindow{},
    ); err != nil {
        return fmt.Errorf("failed to migrate database: %w", err)
    }
    log.Println("[Database] Migration completed")
    return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
    sqlDB, err := db.DB()
    if err != nil {
        return err
    }
    return sqlDB.Close()
}
