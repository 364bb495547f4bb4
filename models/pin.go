package models

import "fmt"

// PinGateStateENUMType PIN gate state ENUM
type PinGateStateENUMType string

const (
	// PinGateStateUnregistered no PIN stored yet
	PinGateStateUnregistered PinGateStateENUMType = "UNREGISTERED"
	// PinGateStateLocked PIN stored, waiting for the correct entry
	PinGateStateLocked PinGateStateENUMType = "LOCKED"
	// PinGateStateUnlocked correct PIN entered. Never persisted.
	PinGateStateUnlocked PinGateStateENUMType = "UNLOCKED"
	// PinGateStateResetInProgress a PIN reset is being processed
	PinGateStateResetInProgress PinGateStateENUMType = "RESET_IN_PROGRESS"
)

// PinSettings the PIN gate values held in the key-value store
type PinSettings struct {
	// Pin the user PIN, exactly 4 digits
	Pin string `json:"userPin" validate:"required,numeric,len=4"`
	// Identifier the registered identifier (e.g. a contact number) used for reset
	Identifier string `json:"registeredIdentifier" validate:"omitempty"`
}

// ValidatePinGateTransition verify the PIN gate can transition between states
func ValidatePinGateTransition(current, next PinGateStateENUMType) error {
	statesWithTransitions := map[PinGateStateENUMType]map[PinGateStateENUMType]bool{
		PinGateStateUnregistered: {
			PinGateStateUnregistered: true,
			PinGateStateLocked:       true,
		},
		PinGateStateLocked: {
			PinGateStateLocked:          true,
			PinGateStateUnlocked:        true,
			PinGateStateResetInProgress: true,
		},
		PinGateStateUnlocked: {
			PinGateStateUnlocked: true,
			PinGateStateLocked:   true,
		},
		PinGateStateResetInProgress: {
			PinGateStateLocked: true,
		},
	}

	availableNextStates, ok := statesWithTransitions[current]
	if !ok {
		return fmt.Errorf("pin gate can't transition out of state '%s'", current)
	}

	if _, ok := availableNextStates[next]; !ok {
		return fmt.Errorf("pin gate can't transition from '%s' to '%s'", current, next)
	}

	return nil
}
