package db

import "github.com/alwitt/credvault/models"

// --------------------------------------------------------------------------------------
// System audit events

// SystemEventAuditDBEntry system audit event DB entry
type SystemEventAuditDBEntry struct {
	models.SystemEventAudit
}

// TableName hard code table name
func (SystemEventAuditDBEntry) TableName() string {
	return "system_audit_events"
}

// --------------------------------------------------------------------------------------
// System parameters

// SystemParamsDBEntry system parameters DB entry
type SystemParamsDBEntry struct {
	models.SystemParams
}

// TableName hard code table name
func (SystemParamsDBEntry) TableName() string {
	return "system_params"
}

// --------------------------------------------------------------------------------------
// Credentials

// CredentialDBEntry credential DB entry
type CredentialDBEntry struct {
	models.Credential
}

// TableName hard code table name
func (CredentialDBEntry) TableName() string {
	return "credentials"
}
