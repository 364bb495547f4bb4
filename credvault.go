// Package credvault - local PIN-gated credential vault
package credvault

import (
	"context"
	"fmt"

	"github.com/alwitt/credvault/config"
	"github.com/alwitt/credvault/db"
	"github.com/alwitt/credvault/importer"
	"github.com/alwitt/credvault/kv"
	"github.com/alwitt/credvault/models"
	"github.com/alwitt/credvault/pin"
	"github.com/alwitt/credvault/store"
	"github.com/alwitt/credvault/view"
)

// Vault the assembled credential vault
type Vault struct {
	// Persistence SQL persistence client
	Persistence db.Client
	// Credentials credential query layer
	Credentials store.CredentialStore
	// List credential list view
	List view.CredentialList
	// Gate PIN gate
	Gate pin.Gate
}

/*
Open initialize a vault instance.

The credential database is created on first use; opening an existing database leaves its
content untouched.

	@param ctx context.Context - execution context
	@param cfg config.Config - vault configuration
	@returns new vault instance
*/
func Open(ctx context.Context, cfg config.Config) (*Vault, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vault config [%w]", err)
	}

	// Prepare persistence
	persistence, err := db.NewConnection(db.GetSqliteDialector(cfg.DBFile), cfg.GORMLogLevel())
	if err != nil {
		return nil, fmt.Errorf("failed to initialized persistence client [%w]", err)
	}
	if err := persistence.Initialize(ctx); err != nil {
		_ = persistence.Close()
		return nil, fmt.Errorf("failed to initialized credential storage [%w]", err)
	}

	credentials, err := store.NewCredentialStore(persistence, cfg.OperationTimeout)
	if err != nil {
		_ = persistence.Close()
		return nil, fmt.Errorf("failed to initialized credential store [%w]", err)
	}

	list, err := view.NewCredentialList(credentials)
	if err != nil {
		_ = persistence.Close()
		return nil, fmt.Errorf("failed to initialized credential list [%w]", err)
	}

	// Prepare PIN gate
	settings, err := kv.NewFileStore(cfg.KVFile)
	if err != nil {
		_ = persistence.Close()
		return nil, fmt.Errorf("failed to initialized settings store [%w]", err)
	}
	gate, err := pin.NewGate(settings)
	if err != nil {
		_ = persistence.Close()
		return nil, fmt.Errorf("failed to initialized PIN gate [%w]", err)
	}

	return &Vault{
		Persistence: persistence,
		Credentials: credentials,
		List:        list,
		Gate:        gate,
	}, nil
}

// Close release the vault's storage
func (v *Vault) Close() error {
	v.Gate.Lock()
	return v.Persistence.Close()
}

// EnsureUnlocked fail with models.ErrNotUnlocked unless the PIN gate is unlocked
func (v *Vault) EnsureUnlocked() error {
	if !v.Gate.IsUnlocked() {
		return fmt.Errorf("%w: verify the PIN first", models.ErrNotUnlocked)
	}
	return nil
}

/*
NewImportPipeline define a CSV import pipeline feeding this vault. Imported rows go
through the credential store, and the list view is refreshed after each run.

	@param picker importer.FilePicker - file selection prompt
	@param reader importer.FileReader - file content reader
	@param permissions importer.PermissionChecker - local file access check. Optional.
	@returns import pipeline
*/
func (v *Vault) NewImportPipeline(
	picker importer.FilePicker,
	reader importer.FileReader,
	permissions importer.PermissionChecker,
) (importer.Pipeline, error) {
	return importer.NewPipeline(importer.PipelineParams{
		Picker:      picker,
		Reader:      reader,
		Permissions: permissions,
		Store:       v.Credentials,
		Refresh:     v.List,
		Persistence: v.Persistence,
	})
}

/*
OpenDetail open the detail view of one credential

	@param entry models.Credential - the credential
	@returns detail view
*/
func (v *Vault) OpenDetail(entry models.Credential) (view.DetailView, error) {
	return view.NewDetailView(v.Credentials, entry, v.List)
}

/*
AuditEvents list the recorded vault events

	@param ctx context.Context - execution context
	@param filters db.SystemEventQueryFilter - event filter
	@returns the events, oldest first
*/
func (v *Vault) AuditEvents(
	ctx context.Context, filters db.SystemEventQueryFilter,
) ([]models.SystemEventAudit, error) {
	var events []models.SystemEventAudit
	if err := v.Persistence.UseDatabase(ctx, func(ctx context.Context, dbClient db.Database) error {
		var err error
		events, err = dbClient.ListSystemEvents(ctx, filters)
		return err
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to list audit events [%w]", models.ErrStorage, err)
	}
	return events, nil
}
