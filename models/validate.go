// Package models - system data models
package models

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

/*
RegisterWithValidator register with the validator this custom validation support

	@param v *validator.Validate - the validator to register against
	@return whether successful
*/
func RegisterWithValidator(v *validator.Validate) error {
	if err := v.RegisterValidation(
		"system_state", validateSystemStateType,
	); err != nil {
		return err
	}

	if err := v.RegisterValidation(
		"system_event_type", validateSystemEventType,
	); err != nil {
		return err
	}

	if err := v.RegisterValidation(
		"pin_gate_state", validatePinGateStateType,
	); err != nil {
		return err
	}

	return nil
}

func validateSystemStateType(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	switch SystemStateENUMType(fl.Field().String()) {
	case SystemStatePreInit:
		fallthrough
	case SystemStateInit:
		fallthrough
	case SystemStateRunning:
		return true
	}
	return false
}

func validateSystemEventType(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	switch SystemEventTypeENUMType(fl.Field().String()) {
	case SystemEventTypeInitializing:
		fallthrough
	case SystemEventTypeInitialized:
		fallthrough
	case SystemEventTypeAddNewCredential:
		fallthrough
	case SystemEventTypeUpdateCredential:
		fallthrough
	case SystemEventTypeDeleteCredential:
		fallthrough
	case SystemEventTypeCSVImportCompleted:
		return true
	}
	return false
}

func validatePinGateStateType(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	switch PinGateStateENUMType(fl.Field().String()) {
	case PinGateStateUnregistered:
		fallthrough
	case PinGateStateLocked:
		fallthrough
	case PinGateStateUnlocked:
		fallthrough
	case PinGateStateResetInProgress:
		return true
	}
	return false
}
