package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alwitt/credvault/models"
)

// FileHandle a user selected file
type FileHandle struct {
	// Name display name of the file
	Name string
	// URI location of the file
	URI string
}

// FilePicker file selection prompt
type FilePicker interface {
	/*
		PickFile ask the user to select one file. Any file type may be offered.

			@param ctx context.Context - execution context
			@returns the selected file, or models.ErrCancelled if the user dismissed the prompt
	*/
	PickFile(ctx context.Context) (FileHandle, error)
}

// FileReader reads the full content of a selected file
type FileReader interface {
	/*
		ReadFile read the full content of a file

			@param ctx context.Context - execution context
			@param file FileHandle - the file
			@returns the file content
	*/
	ReadFile(ctx context.Context, file FileHandle) ([]byte, error)
}

// PermissionChecker checks or requests access to local files
type PermissionChecker interface {
	/*
		EnsureReadAccess check for, and request if needed, permission to read local files

			@param ctx context.Context - execution context
			@returns whether access is granted
	*/
	EnsureReadAccess(ctx context.Context) (bool, error)
}

// Inserter stores one credential
type Inserter interface {
	/*
		Insert store a new credential

			@param ctx context.Context - execution context
			@param fields models.CredentialFields - the credential fields
			@returns the new credential
	*/
	Insert(ctx context.Context, fields models.CredentialFields) (models.Credential, error)
}

// Refresher reloads a view after the store changed
type Refresher interface {
	/*
		Refresh reload from the store

			@param ctx context.Context - execution context
	*/
	Refresh(ctx context.Context) error
}

// ------------------------------------------------------------------------------------
// Local implementations

// PathPicker a FilePicker which "selects" a path given up front. An empty path is
// treated as a dismissed prompt.
type PathPicker string

// PickFile return the configured path
func (p PathPicker) PickFile(_ context.Context) (FileHandle, error) {
	if p == "" {
		return FileHandle{}, models.ErrCancelled
	}
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return FileHandle{}, fmt.Errorf("failed to resolve %s [%w]", string(p), err)
	}
	return FileHandle{Name: filepath.Base(abs), URI: abs}, nil
}

// LocalFileReader reads files from the local file system
type LocalFileReader struct{}

// ReadFile read the full content of a local file
func (LocalFileReader) ReadFile(_ context.Context, file FileHandle) ([]byte, error) {
	content, err := os.ReadFile(file.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s [%w]", file.URI, err)
	}
	return content, nil
}

// GrantedPermission a PermissionChecker for platforms where selecting a file grants
// access to it
type GrantedPermission struct{}

// EnsureReadAccess always granted
func (GrantedPermission) EnsureReadAccess(_ context.Context) (bool, error) {
	return true, nil
}
