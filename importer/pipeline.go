// Package importer - CSV credential import pipeline
package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/alwitt/credvault/db"
	"github.com/alwitt/credvault/models"
	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RowRejection a row dropped by validation
type RowRejection struct {
	// Line line number of the row in the file
	Line int
	// Name the credential name of the row, if any
	Name string
	// Missing the required columns which were absent or empty
	Missing []string
}

// RowFailure an accepted row whose insert failed
type RowFailure struct {
	// Line line number of the row in the file
	Line int
	// Name the credential name of the row
	Name string
	// Err the insert error
	Err error
}

// Result outcome of one import run
type Result struct {
	// ImportID the import run ID
	ImportID string
	// Source name of the imported file
	Source string
	// Imported number of credentials inserted
	Imported int
	// Skipped number of rows rejected by validation
	Skipped int
	// Failed number of accepted rows whose insert failed
	Failed int
	// Rejected per row detail of the rejected rows
	Rejected []RowRejection
	// Errors per row detail of the failed inserts
	Errors []RowFailure
}

// Pipeline turns a user selected CSV file into credential inserts
type Pipeline interface {
	/*
		ImportFromFile pick a file, then import its content

			@param ctx context.Context - execution context
			@returns import outcome. models.ErrCancelled if the user did not pick a file.
	*/
	ImportFromFile(ctx context.Context) (Result, error)

	/*
		ImportFromReader import CSV content the caller already holds

			@param ctx context.Context - execution context
			@param source string - name of the content source
			@param content io.Reader - the CSV content
			@returns import outcome
	*/
	ImportFromReader(ctx context.Context, source string, content io.Reader) (Result, error)

	// Stage current pipeline stage
	Stage() models.ImportStageENUMType
}

// PipelineParams import pipeline init parameters
type PipelineParams struct {
	// Picker file selection prompt
	Picker FilePicker `validate:"required"`
	// Reader file content reader
	Reader FileReader `validate:"required"`
	// Permissions local file access check. Defaults to GrantedPermission.
	Permissions PermissionChecker `validate:"-"`
	// Store where accepted rows are inserted
	Store Inserter `validate:"required"`
	// Refresh view reloaded after an import. Optional.
	Refresh Refresher `validate:"-"`
	// Persistence where import audit events are recorded. Optional.
	Persistence db.Client `validate:"-"`
}

// pipelineImpl implements Pipeline
type pipelineImpl struct {
	goutils.Component
	PipelineParams

	validator *validator.Validate

	stageLock sync.Mutex
	stage     models.ImportStageENUMType
}

/*
NewPipeline define new CSV import pipeline

	@param params PipelineParams - pipeline parameters
	@returns pipeline instance
*/
func NewPipeline(params PipelineParams) (Pipeline, error) {
	logTags := log.Fields{"package": "credvault", "module": "importer", "component": "csv-import"}

	instance := &pipelineImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		PipelineParams: params,
		validator:      validator.New(),
		stage:          models.ImportStageIdle,
	}

	// Report validation failures using the column names
	instance.validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := models.RegisterWithValidator(instance.validator); err != nil {
		return nil, fmt.Errorf("failed to install custom validation macros [%w]", err)
	}

	if err := instance.validator.Struct(&params); err != nil {
		return nil, fmt.Errorf("invalid import pipeline parameters [%w]", err)
	}
	if instance.Permissions == nil {
		instance.Permissions = GrantedPermission{}
	}

	return instance, nil
}

func (p *pipelineImpl) Stage() models.ImportStageENUMType {
	p.stageLock.Lock()
	defer p.stageLock.Unlock()
	return p.stage
}

// moveTo advance the pipeline stage
func (p *pipelineImpl) moveTo(next models.ImportStageENUMType) error {
	p.stageLock.Lock()
	defer p.stageLock.Unlock()
	if err := models.ValidateImportStageTransition(p.stage, next); err != nil {
		return err
	}
	p.stage = next
	return nil
}

// start begin an import run. Only one run may be active at a time.
func (p *pipelineImpl) start(first models.ImportStageENUMType) error {
	p.stageLock.Lock()
	defer p.stageLock.Unlock()
	if p.stage != models.ImportStageIdle {
		return fmt.Errorf("%w: import already running, currently %s", models.ErrImport, p.stage)
	}
	if err := models.ValidateImportStageTransition(p.stage, first); err != nil {
		return err
	}
	p.stage = first
	return nil
}

// reset return the pipeline to idle after an early exit
func (p *pipelineImpl) reset() {
	p.stageLock.Lock()
	defer p.stageLock.Unlock()
	p.stage = models.ImportStageIdle
}

func (p *pipelineImpl) ImportFromFile(ctx context.Context) (Result, error) {
	logTags := p.GetLogTagsForContext(ctx)

	if err := p.start(models.ImportStageFilePicking); err != nil {
		return Result{}, err
	}

	granted, err := p.Permissions.EnsureReadAccess(ctx)
	if err != nil || !granted {
		p.reset()
		if err == nil {
			err = fmt.Errorf("permission denied")
		}
		return Result{}, fmt.Errorf("%w: no access to local files [%w]", models.ErrImport, err)
	}

	file, err := p.Picker.PickFile(ctx)
	if err != nil {
		p.reset()
		if errors.Is(err, models.ErrCancelled) {
			log.WithFields(logTags).Info("No file selected")
			return Result{}, models.ErrCancelled
		}
		return Result{}, fmt.Errorf("%w: file selection failed [%w]", models.ErrImport, err)
	}

	if err := p.moveTo(models.ImportStageReading); err != nil {
		p.reset()
		return Result{}, err
	}
	content, err := p.Reader.ReadFile(ctx, file)
	if err != nil {
		p.reset()
		log.WithError(err).WithFields(logTags).WithField("file", file.URI).Error("Import file read failed")
		return Result{}, fmt.Errorf("%w: failed to read %s [%w]", models.ErrImport, file.Name, err)
	}

	if err := p.moveTo(models.ImportStageParsing); err != nil {
		p.reset()
		return Result{}, err
	}
	return p.processContent(ctx, file.Name, bytes.NewReader(content))
}

func (p *pipelineImpl) ImportFromReader(
	ctx context.Context, source string, content io.Reader,
) (Result, error) {
	if err := p.start(models.ImportStageParsing); err != nil {
		return Result{}, err
	}
	return p.processContent(ctx, source, content)
}

// processContent parse, validate, and insert. Pipeline must be in the parsing stage.
func (p *pipelineImpl) processContent(
	ctx context.Context, source string, content io.Reader,
) (Result, error) {
	defer p.reset()

	result := Result{ImportID: uuid.NewString(), Source: source}
	logger := log.WithFields(p.GetLogTagsForContext(ctx)).WithField("import-id", result.ImportID)

	rows, err := parseCSV(content)
	if err != nil {
		logger.WithError(err).Error("Import content is not valid CSV")
		return Result{}, fmt.Errorf("%w: %s is not valid CSV [%w]", models.ErrImport, source, err)
	}

	// Validate rows
	if err := p.moveTo(models.ImportStageRowValidating); err != nil {
		return Result{}, err
	}
	type acceptedRow struct {
		line   int
		fields models.CredentialFields
	}
	accepted := []acceptedRow{}
	for _, row := range rows {
		fields := row.toCredentialFields()
		if missing := p.missingFields(fields); len(missing) > 0 {
			result.Skipped++
			result.Rejected = append(result.Rejected, RowRejection{
				Line: row.Line, Name: fields.Name, Missing: missing,
			})
			continue
		}
		accepted = append(accepted, acceptedRow{line: row.Line, fields: fields})
	}

	// Insert accepted rows one at a time, in file order
	if err := p.moveTo(models.ImportStageInserting); err != nil {
		return Result{}, err
	}
	for _, row := range accepted {
		if _, err := p.Store.Insert(ctx, row.fields); err != nil {
			logger.
				WithError(err).
				WithField("line", row.line).
				Error("Failed to insert imported credential")
			result.Failed++
			result.Errors = append(result.Errors, RowFailure{
				Line: row.line, Name: row.fields.Name, Err: err,
			})
			continue
		}
		result.Imported++
	}

	logger.
		WithField("imported", result.Imported).
		WithField("skipped", result.Skipped).
		WithField("failed", result.Failed).
		Info("CSV import completed")

	p.recordAuditEvent(ctx, result)

	if p.Refresh != nil {
		if err := p.Refresh.Refresh(ctx); err != nil {
			logger.WithError(err).Error("View refresh after import failed")
		}
	}

	return result, nil
}

// missingFields the required columns which are absent or empty
func (p *pipelineImpl) missingFields(fields models.CredentialFields) []string {
	err := p.validator.Struct(&fields)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []string{err.Error()}
	}
	missing := []string{}
	for _, fieldErr := range validationErrs {
		missing = append(missing, fieldErr.Field())
	}
	return missing
}

// recordAuditEvent record the import run in the audit trail. Failures are only logged.
func (p *pipelineImpl) recordAuditEvent(ctx context.Context, result Result) {
	if p.Persistence == nil {
		return
	}
	logTags := p.GetLogTagsForContext(ctx)

	if err := p.Persistence.UseDatabaseInTransaction(
		ctx, func(dbCtx context.Context, dbClient db.Database) error {
			_, err := dbClient.RecordSystemEvent(
				dbCtx,
				models.SystemEventTypeCSVImportCompleted,
				models.SystemEventImportRelated{
					ImportID: result.ImportID,
					Source:   result.Source,
					Imported: result.Imported,
					Skipped:  result.Skipped,
					Failed:   result.Failed,
				},
			)
			return err
		},
	); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to record import audit event")
	}
}
