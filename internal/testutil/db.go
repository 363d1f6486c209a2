// File: internal/testutil/db.go
package testutil

import (
    "testing"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/iyunix/go-supportchat/internal/database"
)

// NewTestDB opens a private in-memory SQLite database with the full schema.
// It is closed automatically when the test finishes.
func NewTestDB(t *testing.T) *gorm.DB {
    t.Helper()

    db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared", true)
    if err != nil {
        t.Fatalf("failed to open test database: %v", err)
    }
    if err := database.Migrate(db); err != nil {
        t.Fatalf("failed to migrate test database: %v", err)
    }
    t.Cleanup(func() {
        _ = database.Close(db)
    })
    return db
}
