package models

import (
	"fmt"
	"time"
)

// SystemStateENUMType vault credential schema lifecycle state ENUM
type SystemStateENUMType string

const (
	// SystemStatePreInit first time start, credential schema not yet recorded
	SystemStatePreInit SystemStateENUMType = "PRE_INITIALIZATION"
	// SystemStateInit credential schema is being created
	SystemStateInit SystemStateENUMType = "INITIALIZING"
	// SystemStateRunning credential schema is ready
	SystemStateRunning SystemStateENUMType = "RUNNING"
)

// SystemParams where a vault file is in its credential schema lifecycle
type SystemParams struct {
	// ID entry ID. A vault holds one entry, always system-parameters
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required,oneof=system-parameters"`

	// State credential schema lifecycle state
	State SystemStateENUMType `json:"state" gorm:"column:state;not null" validate:"required,system_state"`

	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidateNextState verify the credential schema lifecycle may move to newState
func (p *SystemParams) ValidateNextState(newState SystemStateENUMType) error {
	statesWithTransitions := map[SystemStateENUMType]map[SystemStateENUMType]bool{
		SystemStatePreInit: {
			SystemStatePreInit: true,
			SystemStateInit:    true,
		},
		SystemStateInit: {
			SystemStateInit:    true,
			SystemStateRunning: true,
		},
		SystemStateRunning: {
			SystemStateRunning: true,
		},
	}

	availableNextStates, ok := statesWithTransitions[p.State]
	if !ok {
		return fmt.Errorf("credential schema lifecycle can't leave state '%s'", p.State)
	}

	if _, ok := availableNextStates[newState]; !ok {
		return fmt.Errorf("credential schema lifecycle can't move from '%s' to '%s'", p.State, newState)
	}

	return nil
}
