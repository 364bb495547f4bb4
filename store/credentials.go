// Package store - credential query layer
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alwitt/credvault/db"
	"github.com/alwitt/credvault/models"
	"github.com/alwitt/goutils"
	"github.com/apex/log"
)

// Confirmer asks the user to confirm a destructive action
type Confirmer interface {
	/*
		Confirm ask a yes / no question

			@param ctx context.Context - execution context
			@param prompt string - the question
			@returns whether the user agreed
	*/
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a plain function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm ask a yes / no question
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// UpdateResult outcome of an update
type UpdateResult struct {
	// Matched whether a credential with the ID existed. An update of a missing ID
	// still succeeds, with Matched false.
	Matched bool
}

// DeleteResult outcome of a delete
type DeleteResult struct {
	// Confirmed whether the user confirmed the delete
	Confirmed bool
	// Deleted whether a credential was removed
	Deleted bool
}

// CredentialStore CRUD operations over the stored credentials. Each call is one
// atomic transaction.
type CredentialStore interface {
	/*
		ListAll fetch every credential in storage order

			@param ctx context.Context - execution context
			@returns the credentials
	*/
	ListAll(ctx context.Context) ([]models.Credential, error)

	/*
		Insert store a new credential

			@param ctx context.Context - execution context
			@param fields models.CredentialFields - the credential fields
			@returns the new credential
	*/
	Insert(ctx context.Context, fields models.CredentialFields) (models.Credential, error)

	/*
		Update overwrite all fields of the credential with the ID

			@param ctx context.Context - execution context
			@param id uint - credential ID
			@param fields models.CredentialFields - the new fields
			@returns whether a credential matched
	*/
	Update(ctx context.Context, id uint, fields models.CredentialFields) (UpdateResult, error)

	/*
		Delete remove the credential with the ID after the user confirms

			@param ctx context.Context - execution context
			@param id uint - credential ID
			@param confirm Confirmer - confirmation prompt
			@returns whether the delete was confirmed and executed
	*/
	Delete(ctx context.Context, id uint, confirm Confirmer) (DeleteResult, error)
}

// credentialStore implements CredentialStore
type credentialStore struct {
	goutils.Component

	persistence db.Client
	timeout     time.Duration

	// writeLock serializes writes on top of the DB's own serialization
	writeLock sync.Mutex
}

/*
NewCredentialStore define new credential store

	@param persistence db.Client - persistence layer client
	@param timeout time.Duration - per operation timeout. Zero disables it.
	@returns store instance
*/
func NewCredentialStore(persistence db.Client, timeout time.Duration) (CredentialStore, error) {
	if persistence == nil {
		return nil, fmt.Errorf("persistence client not provided")
	}
	logTags := log.Fields{"package": "credvault", "module": "store", "component": "credential-store"}

	return &credentialStore{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		persistence: persistence,
		timeout:     timeout,
	}, nil
}

// withTimeout apply the operation timeout to the context
func (s *credentialStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// storageError tag an error as a storage error, unless it is a validation failure
func storageError(err error, msg string) error {
	if errors.Is(err, models.ErrValidation) {
		return fmt.Errorf("%s [%w]", msg, err)
	}
	return fmt.Errorf("%w: %s [%w]", models.ErrStorage, msg, err)
}

func (s *credentialStore) ListAll(ctx context.Context) ([]models.Credential, error) {
	logTags := s.GetLogTagsForContext(ctx)
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result []models.Credential
	if dbErr := s.persistence.UseDatabaseInTransaction(
		opCtx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			result, err = dbClient.ListCredentials(dbCtx, db.CredentialQueryFilter{})
			return err
		},
	); dbErr != nil {
		log.WithError(dbErr).WithFields(logTags).Error("Failed to list credentials")
		return nil, storageError(dbErr, "failed to list credentials")
	}

	return result, nil
}

func (s *credentialStore) Insert(
	ctx context.Context, fields models.CredentialFields,
) (models.Credential, error) {
	logTags := s.GetLogTagsForContext(ctx)
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	var entry models.Credential
	if dbErr := s.persistence.UseDatabaseInTransaction(
		opCtx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			entry, err = dbClient.DefineNewCredential(dbCtx, fields)
			return err
		},
	); dbErr != nil {
		log.WithError(dbErr).WithFields(logTags).Error("Failed to insert credential")
		return models.Credential{}, storageError(
			dbErr, fmt.Sprintf("failed to insert credential '%s'", fields.Name),
		)
	}

	log.WithFields(logTags).WithField("credential-id", entry.ID).Debug("Credential inserted")
	return entry, nil
}

func (s *credentialStore) Update(
	ctx context.Context, id uint, fields models.CredentialFields,
) (UpdateResult, error) {
	logTags := s.GetLogTagsForContext(ctx)
	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	var affected int64
	if dbErr := s.persistence.UseDatabaseInTransaction(
		opCtx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			affected, err = dbClient.UpdateCredential(dbCtx, id, fields)
			return err
		},
	); dbErr != nil {
		log.WithError(dbErr).WithFields(logTags).Error("Failed to update credential")
		return UpdateResult{}, storageError(dbErr, fmt.Sprintf("failed to update credential %d", id))
	}

	if affected == 0 {
		log.WithFields(logTags).WithField("credential-id", id).Debug("Update matched no credential")
	}
	return UpdateResult{Matched: affected > 0}, nil
}

func (s *credentialStore) Delete(
	ctx context.Context, id uint, confirm Confirmer,
) (DeleteResult, error) {
	logTags := s.GetLogTagsForContext(ctx)

	if confirm == nil {
		return DeleteResult{}, fmt.Errorf("delete of credential %d requires a confirmation step", id)
	}
	confirmed, err := confirm.Confirm(
		ctx, "Are you sure you want to delete this credential?",
	)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete confirmation failed [%w]", err)
	}
	if !confirmed {
		return DeleteResult{}, nil
	}

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	var affected int64
	if dbErr := s.persistence.UseDatabaseInTransaction(
		opCtx, func(dbCtx context.Context, dbClient db.Database) error {
			var err error
			affected, err = dbClient.DeleteCredential(dbCtx, id)
			return err
		},
	); dbErr != nil {
		log.WithError(dbErr).WithFields(logTags).Error("Failed to delete credential")
		return DeleteResult{Confirmed: true}, storageError(
			dbErr, fmt.Sprintf("failed to delete credential %d", id),
		)
	}

	return DeleteResult{Confirmed: true, Deleted: affected > 0}, nil
}
