package models

import "fmt"

// ImportStageENUMType CSV import pipeline stage ENUM
type ImportStageENUMType string

const (
	// ImportStageIdle no import running
	ImportStageIdle ImportStageENUMType = "IDLE"
	// ImportStageFilePicking waiting on the file picker
	ImportStageFilePicking ImportStageENUMType = "FILE_PICKING"
	// ImportStageReading reading the selected file
	ImportStageReading ImportStageENUMType = "READING"
	// ImportStageParsing parsing the file content as CSV
	ImportStageParsing ImportStageENUMType = "PARSING"
	// ImportStageRowValidating validating the parsed rows
	ImportStageRowValidating ImportStageENUMType = "ROW_VALIDATING"
	// ImportStageInserting inserting the accepted rows
	ImportStageInserting ImportStageENUMType = "INSERTING"
)

// ValidateImportStageTransition verify the import pipeline can move between stages
func ValidateImportStageTransition(current, next ImportStageENUMType) error {
	statesWithTransitions := map[ImportStageENUMType]map[ImportStageENUMType]bool{
		ImportStageIdle: {
			ImportStageFilePicking: true,
			// Content supplied directly by the caller skips picking and reading
			ImportStageParsing: true,
		},
		ImportStageFilePicking: {
			ImportStageReading: true,
			ImportStageIdle:    true,
		},
		ImportStageReading: {
			ImportStageParsing: true,
			ImportStageIdle:    true,
		},
		ImportStageParsing: {
			ImportStageRowValidating: true,
			ImportStageIdle:          true,
		},
		ImportStageRowValidating: {
			ImportStageInserting: true,
		},
		ImportStageInserting: {
			ImportStageIdle: true,
		},
	}

	availableNextStates, ok := statesWithTransitions[current]
	if !ok {
		return fmt.Errorf("import can't transition out of stage '%s'", current)
	}

	if _, ok := availableNextStates[next]; !ok {
		return fmt.Errorf("import can't transition from '%s' to '%s'", current, next)
	}

	return nil
}
