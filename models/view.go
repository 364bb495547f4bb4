package models

import "fmt"

// DetailViewModeENUMType credential detail view mode ENUM
type DetailViewModeENUMType string

const (
	// DetailViewModeViewing credential shown read-only
	DetailViewModeViewing DetailViewModeENUMType = "VIEWING"
	// DetailViewModeEditing credential fields being edited
	DetailViewModeEditing DetailViewModeENUMType = "EDITING"
	// DetailViewModeClosed the credential was deleted, view must be left
	DetailViewModeClosed DetailViewModeENUMType = "CLOSED"
)

// ValidateDetailViewTransition verify the detail view can move between modes
func ValidateDetailViewTransition(current, next DetailViewModeENUMType) error {
	statesWithTransitions := map[DetailViewModeENUMType]map[DetailViewModeENUMType]bool{
		DetailViewModeViewing: {
			DetailViewModeViewing: true,
			DetailViewModeEditing: true,
			DetailViewModeClosed:  true,
		},
		DetailViewModeEditing: {
			DetailViewModeEditing: true,
			DetailViewModeViewing: true,
			DetailViewModeClosed:  true,
		},
	}

	availableNextStates, ok := statesWithTransitions[current]
	if !ok {
		return fmt.Errorf("detail view can't transition out of mode '%s'", current)
	}

	if _, ok := availableNextStates[next]; !ok {
		return fmt.Errorf("detail view can't transition from '%s' to '%s'", current, next)
	}

	return nil
}
