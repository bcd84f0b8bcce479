package testutil

import (
	"testing"

	"dinedash/config"
	"dinedash/models"

	"gorm.io/gorm"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// Each call returns an independent database that is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SetUserRole changes a stored user's role behind the application's back,
// the way an operator editing the database would.
func SetUserRole(t *testing.T, db *gorm.DB, id uint, role models.UserRole) {
	t.Helper()
	res := db.Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil || res.RowsAffected != 1 {
		t.Fatalf("set role of user %d: %v (rows %d)", id, res.Error, res.RowsAffected)
	}
}

// DeleteUser removes a stored user. The application itself never deletes
// accounts.
func DeleteUser(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	res := db.Delete(&models.User{}, id)
	if res.Error != nil || res.RowsAffected != 1 {
		t.Fatalf("delete user %d: %v (rows %d)", id, res.Error, res.RowsAffected)
	}
}
