package models_test

import (
	"testing"

	"github.com/alwitt/credvault/models"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestImportStageTransitions(t *testing.T) {
	assert := assert.New(t)

	type testCase struct {
		from, to models.ImportStageENUMType
		allowed  bool
	}
	for _, tc := range []testCase{
		{models.ImportStageIdle, models.ImportStageFilePicking, true},
		{models.ImportStageIdle, models.ImportStageParsing, true},
		{models.ImportStageIdle, models.ImportStageInserting, false},
		{models.ImportStageFilePicking, models.ImportStageIdle, true},
		{models.ImportStageFilePicking, models.ImportStageReading, true},
		{models.ImportStageReading, models.ImportStageParsing, true},
		{models.ImportStageParsing, models.ImportStageRowValidating, true},
		{models.ImportStageRowValidating, models.ImportStageIdle, false},
		{models.ImportStageRowValidating, models.ImportStageInserting, true},
		{models.ImportStageInserting, models.ImportStageIdle, true},
		{models.ImportStageInserting, models.ImportStageParsing, false},
		{"UNKNOWN", models.ImportStageIdle, false},
	} {
		err := models.ValidateImportStageTransition(tc.from, tc.to)
		if tc.allowed {
			assert.Nil(err, "%s -> %s", tc.from, tc.to)
		} else {
			assert.Error(err, "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestPinGateTransitions(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(models.ValidatePinGateTransition(models.PinGateStateUnregistered, models.PinGateStateLocked))
	assert.Nil(models.ValidatePinGateTransition(models.PinGateStateLocked, models.PinGateStateUnlocked))
	assert.Nil(models.ValidatePinGateTransition(models.PinGateStateUnlocked, models.PinGateStateLocked))
	assert.Nil(models.ValidatePinGateTransition(
		models.PinGateStateLocked, models.PinGateStateResetInProgress,
	))
	assert.Nil(models.ValidatePinGateTransition(
		models.PinGateStateResetInProgress, models.PinGateStateLocked,
	))

	assert.Error(models.ValidatePinGateTransition(
		models.PinGateStateUnregistered, models.PinGateStateUnlocked,
	))
	assert.Error(models.ValidatePinGateTransition(
		models.PinGateStateResetInProgress, models.PinGateStateUnlocked,
	))
	assert.Error(models.ValidatePinGateTransition(
		models.PinGateStateUnlocked, models.PinGateStateResetInProgress,
	))
}

func TestDetailViewTransitions(t *testing.T) {
	assert := assert.New(t)

	assert.Nil(models.ValidateDetailViewTransition(models.DetailViewModeViewing, models.DetailViewModeEditing))
	assert.Nil(models.ValidateDetailViewTransition(models.DetailViewModeEditing, models.DetailViewModeViewing))
	assert.Nil(models.ValidateDetailViewTransition(models.DetailViewModeEditing, models.DetailViewModeClosed))
	assert.Error(models.ValidateDetailViewTransition(models.DetailViewModeClosed, models.DetailViewModeViewing))
	assert.Error(models.ValidateDetailViewTransition(models.DetailViewModeClosed, models.DetailViewModeEditing))
}

func TestSystemStateTransitions(t *testing.T) {
	assert := assert.New(t)

	params := models.SystemParams{State: models.SystemStatePreInit}
	assert.Nil(params.ValidateNextState(models.SystemStateInit))
	assert.Error(params.ValidateNextState(models.SystemStateRunning))

	params.State = models.SystemStateRunning
	assert.Nil(params.ValidateNextState(models.SystemStateRunning))
	assert.Error(params.ValidateNextState(models.SystemStateInit))
}

func TestCustomValidators(t *testing.T) {
	assert := assert.New(t)

	validate := validator.New()
	assert.Nil(models.RegisterWithValidator(validate))

	assert.Nil(validate.Var(models.PinGateStateLocked, "pin_gate_state"))
	assert.Error(validate.Var(models.PinGateStateENUMType("OPEN"), "pin_gate_state"))
	assert.Nil(validate.Var(models.SystemEventTypeCSVImportCompleted, "system_event_type"))
	assert.Error(validate.Var(models.SystemEventTypeENUMType("RENAME"), "system_event_type"))

	assert.Nil(validate.Struct(&models.PinSettings{Pin: "0042"}))
	for _, bad := range []string{"", "42", "00420", "4a42"} {
		assert.Error(validate.Struct(&models.PinSettings{Pin: bad}), bad)
	}
}
