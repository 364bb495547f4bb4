package db

import (
	"context"
	"fmt"

	"github.com/alwitt/credvault/models"
)

// GlobalSystemParamEntryID ID of the singleton vault lifecycle entry
const GlobalSystemParamEntryID = "system-parameters"

// lifecycleAuditEvents audit event recorded on entering a vault lifecycle state
var lifecycleAuditEvents = map[models.SystemStateENUMType]models.SystemEventTypeENUMType{
	models.SystemStateInit:    models.SystemEventTypeInitializing,
	models.SystemStateRunning: models.SystemEventTypeInitialized,
}

// vaultLifecycleEntry fetch the vault lifecycle entry. A vault file opened for the first
// time gets a new entry in PRE_INITIALIZATION.
func (d *databaseImpl) vaultLifecycleEntry() (SystemParamsDBEntry, error) {
	var entries []SystemParamsDBEntry
	if err := d.db.Where("id = ?", GlobalSystemParamEntryID).Find(&entries).Error; err != nil {
		return SystemParamsDBEntry{}, fmt.Errorf("failed to read vault lifecycle entry [%w]", err)
	}
	if len(entries) > 0 {
		return entries[0], nil
	}

	fresh := SystemParamsDBEntry{
		SystemParams: models.SystemParams{
			ID:    GlobalSystemParamEntryID,
			State: models.SystemStatePreInit,
		},
	}
	if err := d.db.Create(&fresh).Error; err != nil {
		return SystemParamsDBEntry{}, fmt.Errorf("failed to create vault lifecycle entry [%w]", err)
	}
	return fresh, nil
}

/*
GetSystemParamEntry fetch where the vault is in its schema lifecycle

	@param ctx context.Context - execution context
	@returns the lifecycle entry
*/
func (d *databaseImpl) GetSystemParamEntry(_ context.Context) (models.SystemParams, error) {
	entry, err := d.vaultLifecycleEntry()
	if err != nil {
		return models.SystemParams{}, err
	}
	return entry.SystemParams, nil
}

// advanceVaultLifecycle move the vault to the next lifecycle state, and audit the step.
// Re-entering the current state does nothing.
func (d *databaseImpl) advanceVaultLifecycle(target models.SystemStateENUMType) error {
	entry, err := d.vaultLifecycleEntry()
	if err != nil {
		return err
	}
	if entry.State == target {
		return nil
	}
	if err := entry.ValidateNextState(target); err != nil {
		return fmt.Errorf("vault can't move to %s [%w]", target, err)
	}

	entry.State = target
	if tmp := d.db.Updates(&entry); tmp.Error != nil {
		return fmt.Errorf("failed to store vault lifecycle state %s [%w]", target, tmp.Error)
	}

	if eventType, ok := lifecycleAuditEvents[target]; ok {
		if _, err := d.defineNewSystemEvent(eventType, nil); err != nil {
			return fmt.Errorf("failed to audit vault entering %s [%w]", target, err)
		}
	}
	return nil
}

/*
MarkSystemInitializing record that the credential schema is being created

	@param ctx context.Context - execution context
*/
func (d *databaseImpl) MarkSystemInitializing(_ context.Context) error {
	return d.advanceVaultLifecycle(models.SystemStateInit)
}

/*
MarkSystemInitialized record that the credential schema is ready for use

	@param ctx context.Context - execution context
*/
func (d *databaseImpl) MarkSystemInitialized(_ context.Context) error {
	return d.advanceVaultLifecycle(models.SystemStateRunning)
}
