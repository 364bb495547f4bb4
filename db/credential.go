package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/alwitt/credvault/models"
)

// likeEscaper escapes the LIKE wildcards in a user supplied search string
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

/*
DefineNewCredential define new credential

	@param ctx context.Context - execution context
	@param fields models.CredentialFields - the credential fields
	@returns credential entry
*/
func (d *databaseImpl) DefineNewCredential(
	_ context.Context, fields models.CredentialFields,
) (models.Credential, error) {
	newEntry := CredentialDBEntry{Credential: models.Credential{CredentialFields: fields}}

	if err := d.validator.Struct(&newEntry); err != nil {
		return models.Credential{}, fmt.Errorf(
			"%w: new credential '%s' is not valid [%w]", models.ErrValidation, fields.Name, err,
		)
	}

	if tmp := d.db.Create(&newEntry); tmp.Error != nil {
		return models.Credential{}, fmt.Errorf(
			"new credential '%s' failed insert [%w]", fields.Name, tmp.Error,
		)
	}

	// Record this event
	if _, err := d.defineNewSystemEvent(
		models.SystemEventTypeAddNewCredential,
		models.SystemEventCredentialRelated{CredentialID: newEntry.ID, CredentialName: fields.Name},
	); err != nil {
		return models.Credential{}, fmt.Errorf(
			"failed to log add new credential '%s' audit event [%w]", fields.Name, err,
		)
	}

	return newEntry.Credential, nil
}

// findCredentialEntry find a credential by ID, without failing if not found
func (d *databaseImpl) findCredentialEntry(credentialID uint) ([]CredentialDBEntry, error) {
	var entries []CredentialDBEntry
	err := d.db.Where("id = ?", credentialID).Find(&entries).Error
	return entries, err
}

/*
GetCredential fetch a credential by ID

	@param ctx context.Context - execution context
	@param credentialID uint - credential ID
	@returns credential entry
*/
func (d *databaseImpl) GetCredential(
	_ context.Context, credentialID uint,
) (models.Credential, error) {
	var entry CredentialDBEntry
	if tmp := d.db.Where("id = ?", credentialID).First(&entry); tmp.Error != nil {
		return models.Credential{}, fmt.Errorf(
			"failed to fetch credential %d [%w]", credentialID, tmp.Error,
		)
	}

	return entry.Credential, nil
}

/*
ListCredentials list credentials in storage order

	@param ctx context.Context - execution context
	@param filters CredentialQueryFilter - entry listing filter
	@return list of credentials
*/
func (d *databaseImpl) ListCredentials(
	_ context.Context, filters CredentialQueryFilter,
) ([]models.Credential, error) {
	query := d.db.Model(&CredentialDBEntry{})

	if filters.NameContains != nil && *filters.NameContains != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(*filters.NameContains)) + "%"
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	}

	if filters.Limit != nil {
		query = query.Limit(*filters.Limit)
	}
	if filters.Offset != nil {
		query = query.Offset(*filters.Offset)
	}

	// Insertion order
	query = query.Order("id")

	var entries []CredentialDBEntry
	if tmp := query.Find(&entries); tmp.Error != nil {
		return nil, fmt.Errorf("failed to list credentials [%w]", tmp.Error)
	}

	result := []models.Credential{}
	for _, entry := range entries {
		result = append(result, entry.Credential)
	}

	return result, nil
}

/*
UpdateCredential overwrite all fields of a credential

	@param ctx context.Context - execution context
	@param credentialID uint - credential ID
	@param fields models.CredentialFields - the new credential fields
	@returns number of rows affected. Zero when no credential has that ID.
*/
func (d *databaseImpl) UpdateCredential(
	_ context.Context, credentialID uint, fields models.CredentialFields,
) (int64, error) {
	if err := d.validator.Struct(&fields); err != nil {
		return 0, fmt.Errorf(
			"%w: credential %d update is not valid [%w]", models.ErrValidation, credentialID, err,
		)
	}

	tmp := d.db.Model(&CredentialDBEntry{}).
		Where("id = ?", credentialID).
		Updates(map[string]interface{}{
			"name":     fields.Name,
			"url":      fields.URL,
			"username": fields.Username,
			"password": fields.Password,
		})
	if tmp.Error != nil {
		return 0, fmt.Errorf("failed to update credential %d [%w]", credentialID, tmp.Error)
	}

	if tmp.RowsAffected == 0 {
		return 0, nil
	}

	// Record this event
	if _, err := d.defineNewSystemEvent(
		models.SystemEventTypeUpdateCredential,
		models.SystemEventCredentialRelated{CredentialID: credentialID, CredentialName: fields.Name},
	); err != nil {
		return 0, fmt.Errorf(
			"failed to log update credential %d audit event [%w]", credentialID, err,
		)
	}

	return tmp.RowsAffected, nil
}

/*
DeleteCredential delete a credential

	@param ctx context.Context - execution context
	@param credentialID uint - credential ID
	@returns number of rows affected. Zero when no credential has that ID.
*/
func (d *databaseImpl) DeleteCredential(_ context.Context, credentialID uint) (int64, error) {
	entries, err := d.findCredentialEntry(credentialID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch credential %d [%w]", credentialID, err)
	}
	if len(entries) == 0 {
		return 0, nil
	}
	entry := entries[0]

	tmp := d.db.Delete(&entry)
	if tmp.Error != nil {
		return 0, fmt.Errorf("failed to delete credential %d [%w]", credentialID, tmp.Error)
	}

	// Record this event
	if _, err := d.defineNewSystemEvent(
		models.SystemEventTypeDeleteCredential,
		models.SystemEventCredentialRelated{CredentialID: entry.ID, CredentialName: entry.Name},
	); err != nil {
		return 0, fmt.Errorf(
			"failed to log delete credential '%s' audit event [%w]", entry.Name, err,
		)
	}

	return tmp.RowsAffected, nil
}
