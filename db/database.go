package db

import (
	"context"
	"fmt"
	"time"

	"github.com/alwitt/credvault/models"
	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// CommonListEntryQueryFilter common query filter when listing data entries
type CommonListEntryQueryFilter struct {
	Limit  *int
	Offset *int
}

// SystemEventQueryFilter audit event query filter conditions
type SystemEventQueryFilter struct {
	CommonListEntryQueryFilter
	// EventTypes the specific event types to query for
	EventTypes []models.SystemEventTypeENUMType
	// EventsAfter filter for events after this timestamp
	EventsAfter *time.Time
	// EventsBefore filter for events before this timestamp
	EventsBefore *time.Time
}

// CredentialQueryFilter credential query filter conditions
type CredentialQueryFilter struct {
	CommonListEntryQueryFilter
	// NameContains only credentials whose name contains this string, case-insensitive
	NameContains *string
}

// Database the database handle to interacting with the data base
type Database interface {
	// ------------------------------------------------------------------------------------
	// System audit events

	/*
		RecordSystemEvent record a new system event

			@param ctx context.Context - execution context
			@param eventType models.SystemEventTypeENUMType - the event type
			@param metadata interface{} - event metadata, nil if none
			@returns the event entry
	*/
	RecordSystemEvent(
		ctx context.Context, eventType models.SystemEventTypeENUMType, metadata interface{},
	) (models.SystemEventAudit, error)

	/*
		ListSystemEvents list captured system events

			@param ctx context.Context - execution context
			@param filters SystemEventQueryFilter - entry listing filter
			@return list of system events
	*/
	ListSystemEvents(
		ctx context.Context, filters SystemEventQueryFilter,
	) ([]models.SystemEventAudit, error)

	// ------------------------------------------------------------------------------------
	// Vault schema lifecycle

	/*
		GetSystemParamEntry fetch where the vault is in its schema lifecycle. Opening a new
		vault file creates the entry in PRE_INITIALIZATION.

			@param ctx context.Context - execution context
			@returns the lifecycle entry
	*/
	GetSystemParamEntry(ctx context.Context) (models.SystemParams, error)

	/*
		MarkSystemInitializing record that the credential schema is being created

			@param ctx context.Context - execution context
	*/
	MarkSystemInitializing(ctx context.Context) error

	/*
		MarkSystemInitialized record that the credential schema is ready, and credentials
		may now be stored

			@param ctx context.Context - execution context
	*/
	MarkSystemInitialized(ctx context.Context) error

	// ------------------------------------------------------------------------------------
	// Credentials

	/*
		DefineNewCredential define new credential

			@param ctx context.Context - execution context
			@param fields models.CredentialFields - the credential fields
			@returns credential entry
	*/
	DefineNewCredential(
		ctx context.Context, fields models.CredentialFields,
	) (models.Credential, error)

	/*
		GetCredential fetch a credential by ID

			@param ctx context.Context - execution context
			@param credentialID uint - credential ID
			@returns credential entry
	*/
	GetCredential(ctx context.Context, credentialID uint) (models.Credential, error)

	/*
		ListCredentials list credentials in storage order

			@param ctx context.Context - execution context
			@param filters CredentialQueryFilter - entry listing filter
			@return list of credentials
	*/
	ListCredentials(
		ctx context.Context, filters CredentialQueryFilter,
	) ([]models.Credential, error)

	/*
		UpdateCredential overwrite all fields of a credential

			@param ctx context.Context - execution context
			@param credentialID uint - credential ID
			@param fields models.CredentialFields - the new credential fields
			@returns number of rows affected. Zero when no credential has that ID.
	*/
	UpdateCredential(
		ctx context.Context, credentialID uint, fields models.CredentialFields,
	) (int64, error)

	/*
		DeleteCredential delete a credential

			@param ctx context.Context - execution context
			@param credentialID uint - credential ID
			@returns number of rows affected. Zero when no credential has that ID.
	*/
	DeleteCredential(ctx context.Context, credentialID uint) (int64, error)
}

// databaseImpl implements Database
type databaseImpl struct {
	goutils.Component
	db        *gorm.DB
	validator *validator.Validate
}

// newDatabase define a new database client
func newDatabase(_ context.Context, sqlClient *gorm.DB) (Database, error) {
	logTags := log.Fields{"package": "credvault", "module": "db", "component": "db-client"}

	instance := &databaseImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:        sqlClient,
		validator: validator.New(),
	}

	if err := models.RegisterWithValidator(instance.validator); err != nil {
		return nil, fmt.Errorf("failed to install custom validation macros [%w]", err)
	}

	return instance, nil
}
