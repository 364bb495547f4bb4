package models

import "errors"

// ErrStorage the credential database is unreachable or rejected a write
var ErrStorage = errors.New("storage error")

// ErrImport the import file is unreadable or not parsable as CSV
var ErrImport = errors.New("import error")

// ErrCancelled the user dismissed the file picker. This is not a failure.
var ErrCancelled = errors.New("cancelled")

// ErrIdentifierMismatch the PIN reset identifier does not match the registered one
var ErrIdentifierMismatch = errors.New("identifier mismatch")

// ErrValidation a required field is missing or malformed
var ErrValidation = errors.New("validation error")

// ErrPinNotRegistered no PIN has been registered yet
var ErrPinNotRegistered = errors.New("pin not registered")

// ErrNotUnlocked the operation requires the PIN gate to be unlocked
var ErrNotUnlocked = errors.New("pin gate is not unlocked")
