package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// SystemEventTypeENUMType system event type ENUM value type
type SystemEventTypeENUMType string

const (
	// SystemEventTypeInitializing credential schema is being created
	SystemEventTypeInitializing SystemEventTypeENUMType = "SYSTEM_INITIALIZING"

	// SystemEventTypeInitialized credential schema is ready
	SystemEventTypeInitialized SystemEventTypeENUMType = "SYSTEM_INITIALIZED"

	// SystemEventTypeAddNewCredential new credential is added
	SystemEventTypeAddNewCredential SystemEventTypeENUMType = "ADD_NEW_CREDENTIAL"

	// SystemEventTypeUpdateCredential credential is overwritten
	SystemEventTypeUpdateCredential SystemEventTypeENUMType = "UPDATE_CREDENTIAL"

	// SystemEventTypeDeleteCredential credential is deleted
	SystemEventTypeDeleteCredential SystemEventTypeENUMType = "DELETE_CREDENTIAL"

	// SystemEventTypeCSVImportCompleted a CSV import run finished
	SystemEventTypeCSVImportCompleted SystemEventTypeENUMType = "CSV_IMPORT_COMPLETED"
)

// SystemEventAudit recording of events occurring at the system level
type SystemEventAudit struct {
	// ID audit entry ID
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required"`
	// EventType system event type
	EventType SystemEventTypeENUMType `json:"type" gorm:"column:type;not null" validate:"required,system_event_type"`
	// Metadata a metadata relating to the event
	Metadata datatypes.JSON `json:"metadata,omitempty" gorm:"column:metadata;default:null"`
	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}

// ParseMetadata parse the metadata based on the event type
func (a SystemEventAudit) ParseMetadata(validator *validator.Validate) (interface{}, error) {
	switch a.EventType {
	// Credential related system audit events
	case SystemEventTypeAddNewCredential:
		fallthrough
	case SystemEventTypeUpdateCredential:
		fallthrough
	case SystemEventTypeDeleteCredential:
		var parsed SystemEventCredentialRelated
		if err := json.Unmarshal(a.Metadata, &parsed); err != nil {
			return nil, fmt.Errorf("system event '%s' metadata parse failed [%w]", a.EventType, err)
		}
		return parsed, validator.Struct(&parsed)

	// CSV import related system audit events
	case SystemEventTypeCSVImportCompleted:
		var parsed SystemEventImportRelated
		if err := json.Unmarshal(a.Metadata, &parsed); err != nil {
			return nil, fmt.Errorf("system event '%s' metadata parse failed [%w]", a.EventType, err)
		}
		return parsed, validator.Struct(&parsed)
	}
	return nil, nil
}

// SystemEventCredentialRelated system event metadata related to a credential
//
// The password is never part of the metadata.
type SystemEventCredentialRelated struct {
	// CredentialID the credential ID
	CredentialID uint `json:"credential_id" validate:"required"`
	// CredentialName the credential name
	CredentialName string `json:"credential_name" validate:"required"`
}

// SystemEventImportRelated system event metadata related to a CSV import run
type SystemEventImportRelated struct {
	// ImportID the import run ID
	ImportID string `json:"import_id" validate:"required,uuid_rfc4122"`
	// Source name of the imported file
	Source string `json:"source"`
	// Imported number of credentials inserted
	Imported int `json:"imported" validate:"gte=0"`
	// Skipped number of rows rejected by validation
	Skipped int `json:"skipped" validate:"gte=0"`
	// Failed number of accepted rows whose insert failed
	Failed int `json:"failed" validate:"gte=0"`
}
