package db

import (
	"context"

	"gorm.io/gorm"
)

// DefineTables prepare a database with the credential tables
//
// Existing tables are migrated in place; their rows are kept.
func DefineTables(_ context.Context, db *gorm.DB) error {
	return db.AutoMigrate(
		SystemEventAuditDBEntry{},
		SystemParamsDBEntry{},
		CredentialDBEntry{},
	)
}
