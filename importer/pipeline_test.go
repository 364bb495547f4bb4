package importer_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/alwitt/credvault/db"
	"github.com/alwitt/credvault/importer"
	mockimporter "github.com/alwitt/credvault/mocks/importer"
	"github.com/alwitt/credvault/models"
	"github.com/alwitt/credvault/store"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm/logger"
)

func TestImportFromFileEndToEnd(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	testDB := fmt.Sprintf("/tmp/credvault_ut_%s.db", ulid.Make().String())
	persistence, err := db.NewConnection(db.GetSqliteDialector(testDB), logger.Error)
	assert.Nil(err)
	assert.Nil(persistence.Initialize(utCtx))
	defer func() {
		_ = persistence.Close()
	}()

	credentials, err := store.NewCredentialStore(persistence, time.Second*5)
	assert.Nil(err)

	csvFile := filepath.Join(t.TempDir(), "export.csv")
	assert.Nil(os.WriteFile(
		csvFile,
		[]byte("name,url,username,password\nBank,https://b.com,alice,pw1\nMissing,,,\n"),
		0600,
	))

	uut, err := importer.NewPipeline(importer.PipelineParams{
		Picker:      importer.PathPicker(csvFile),
		Reader:      importer.LocalFileReader{},
		Store:       credentials,
		Persistence: persistence,
	})
	assert.Nil(err)

	result, err := uut.ImportFromFile(utCtx)
	assert.Nil(err)
	assert.Equal("export.csv", result.Source)
	assert.NotEmpty(result.ImportID)
	assert.Equal(1, result.Imported)
	assert.Equal(1, result.Skipped)
	assert.Equal(0, result.Failed)
	assert.Len(result.Rejected, 1)
	assert.Equal(3, result.Rejected[0].Line)
	assert.Equal("Missing", result.Rejected[0].Name)
	assert.Equal([]string{"url", "username", "password"}, result.Rejected[0].Missing)
	assert.Equal(models.ImportStageIdle, uut.Stage())

	entries, err := credentials.ListAll(utCtx)
	assert.Nil(err)
	assert.Len(entries, 1)
	assert.Equal(models.CredentialFields{
		Name: "Bank", URL: "https://b.com", Username: "alice", Password: "pw1",
	}, entries[0].CredentialFields)

	// The import run is in the audit trail
	validate := validator.New()
	assert.Nil(models.RegisterWithValidator(validate))
	var events []models.SystemEventAudit
	assert.Nil(persistence.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		var err error
		events, err = dbClient.ListSystemEvents(ctx, db.SystemEventQueryFilter{
			EventTypes: []models.SystemEventTypeENUMType{models.SystemEventTypeCSVImportCompleted},
		})
		return err
	}))
	assert.Len(events, 1)
	metadata, err := events[0].ParseMetadata(validate)
	assert.Nil(err)
	importMeta, ok := metadata.(models.SystemEventImportRelated)
	assert.True(ok)
	assert.Equal(result.ImportID, importMeta.ImportID)
	assert.Equal(1, importMeta.Imported)
	assert.Equal(1, importMeta.Skipped)
}

func TestImportCancelledAndUnreadable(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	mockInserter := mockimporter.NewInserter(t)

	// Case 0: user dismisses the picker
	{
		uut, err := importer.NewPipeline(importer.PipelineParams{
			Picker: importer.PathPicker(""),
			Reader: importer.LocalFileReader{},
			Store:  mockInserter,
		})
		assert.Nil(err)
		_, err = uut.ImportFromFile(utCtx)
		assert.ErrorIs(err, models.ErrCancelled)
		assert.NotErrorIs(err, models.ErrImport)
		assert.Equal(models.ImportStageIdle, uut.Stage())
	}

	// Case 1: picker fails for some other reason
	{
		mockPicker := mockimporter.NewFilePicker(t)
		mockPicker.On("PickFile", mock.Anything).
			Return(importer.FileHandle{}, fmt.Errorf("picker crashed")).Once()
		uut, err := importer.NewPipeline(importer.PipelineParams{
			Picker: mockPicker,
			Reader: importer.LocalFileReader{},
			Store:  mockInserter,
		})
		assert.Nil(err)
		_, err = uut.ImportFromFile(utCtx)
		assert.ErrorIs(err, models.ErrImport)
	}

	// Case 2: file cannot be read
	{
		file := importer.FileHandle{Name: "gone.csv", URI: "/nowhere/gone.csv"}
		mockPicker := mockimporter.NewFilePicker(t)
		mockPicker.On("PickFile", mock.Anything).Return(file, nil).Once()
		mockReader := mockimporter.NewFileReader(t)
		mockReader.On("ReadFile", mock.Anything, file).
			Return(nil, fmt.Errorf("no such file")).Once()
		uut, err := importer.NewPipeline(importer.PipelineParams{
			Picker: mockPicker,
			Reader: mockReader,
			Store:  mockInserter,
		})
		assert.Nil(err)
		_, err = uut.ImportFromFile(utCtx)
		assert.ErrorIs(err, models.ErrImport)
		assert.Equal(models.ImportStageIdle, uut.Stage())
	}

	// Case 3: access to local files refused
	{
		mockPermission := mockimporter.NewPermissionChecker(t)
		mockPermission.On("EnsureReadAccess", mock.Anything).Return(false, nil).Once()
		uut, err := importer.NewPipeline(importer.PipelineParams{
			Picker:      mockimporter.NewFilePicker(t),
			Reader:      mockimporter.NewFileReader(t),
			Permissions: mockPermission,
			Store:       mockInserter,
		})
		assert.Nil(err)
		_, err = uut.ImportFromFile(utCtx)
		assert.ErrorIs(err, models.ErrImport)
		assert.Equal(models.ImportStageIdle, uut.Stage())
	}

	// Case 4: content stream breaks while parsing
	{
		uut, err := importer.NewPipeline(importer.PipelineParams{
			Picker: importer.PathPicker(""),
			Reader: importer.LocalFileReader{},
			Store:  mockInserter,
		})
		assert.Nil(err)
		_, err = uut.ImportFromReader(utCtx, "broken", iotest.ErrReader(fmt.Errorf("I/O error")))
		assert.ErrorIs(err, models.ErrImport)
		assert.Equal(models.ImportStageIdle, uut.Stage())
	}

	// Case 5: missing collaborators
	{
		_, err := importer.NewPipeline(importer.PipelineParams{
			Picker: importer.PathPicker(""),
			Reader: importer.LocalFileReader{},
		})
		assert.Error(err)
	}
}

func TestImportRowHandling(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	mockInserter := mockimporter.NewInserter(t)
	mockRefresher := mockimporter.NewRefresher(t)

	uut, err := importer.NewPipeline(importer.PipelineParams{
		Picker:  importer.PathPicker(""),
		Reader:  importer.LocalFileReader{},
		Store:   mockInserter,
		Refresh: mockRefresher,
	})
	assert.Nil(err)

	// Case 0: empty content imports nothing
	mockRefresher.On("Refresh", mock.Anything).Return(nil).Once()
	{
		result, err := uut.ImportFromReader(utCtx, "empty.csv", strings.NewReader(""))
		assert.Nil(err)
		assert.Equal(0, result.Imported)
		assert.Equal(0, result.Skipped)
	}

	// Case 1: legacy {name, email, password} export, with a byte order mark
	legacy := "\ufeffname, url ,email,password\n" +
		"Mail,https://mail.com,bob@mail.com,pw1\n" +
		"\n" +
		"Short,https://s.com\n" +
		"Extra,https://e.com,eve@e.com,pw2,ignored\n" +
		"Broken,https://x.com,x@x.com,pw3\n"

	inserted := []string{}
	recordInsert := func(args mock.Arguments) {
		inserted = append(inserted, args.Get(1).(models.CredentialFields).Name)
	}
	mockInserter.On("Insert", mock.Anything, models.CredentialFields{
		Name: "Mail", URL: "https://mail.com", Username: "bob@mail.com", Password: "pw1",
	}).Run(recordInsert).Return(models.Credential{ID: 1}, nil).Once()
	mockInserter.On("Insert", mock.Anything, models.CredentialFields{
		Name: "Extra", URL: "https://e.com", Username: "eve@e.com", Password: "pw2",
	}).Run(recordInsert).Return(models.Credential{ID: 2}, nil).Once()
	mockInserter.On("Insert", mock.Anything, models.CredentialFields{
		Name: "Broken", URL: "https://x.com", Username: "x@x.com", Password: "pw3",
	}).Run(recordInsert).Return(models.Credential{}, fmt.Errorf("database is locked")).Once()
	mockRefresher.On("Refresh", mock.Anything).Return(fmt.Errorf("view gone")).Once()
	{
		result, err := uut.ImportFromReader(utCtx, "legacy.csv", strings.NewReader(legacy))
		assert.Nil(err)
		assert.Equal(2, result.Imported)
		assert.Equal(1, result.Skipped)
		assert.Equal(1, result.Failed)
		assert.Equal([]string{"Mail", "Extra", "Broken"}, inserted)

		assert.Len(result.Rejected, 1)
		assert.Equal("Short", result.Rejected[0].Name)
		assert.Equal(4, result.Rejected[0].Line)
		assert.Equal([]string{"username", "password"}, result.Rejected[0].Missing)

		assert.Len(result.Errors, 1)
		assert.Equal("Broken", result.Errors[0].Name)
		assert.Equal(6, result.Errors[0].Line)
		assert.Error(result.Errors[0].Err)
	}
	assert.Equal(models.ImportStageIdle, uut.Stage())
}

func TestImportRefusesOverlappingRuns(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	picking := make(chan bool)
	release := make(chan bool)
	mockPicker := mockimporter.NewFilePicker(t)
	mockPicker.On("PickFile", mock.Anything).Run(func(_ mock.Arguments) {
		picking <- true
		<-release
	}).Return(importer.FileHandle{}, models.ErrCancelled).Once()

	uut, err := importer.NewPipeline(importer.PipelineParams{
		Picker: mockPicker,
		Reader: mockimporter.NewFileReader(t),
		Store:  mockimporter.NewInserter(t),
	})
	assert.Nil(err)

	done := make(chan error)
	go func() {
		_, err := uut.ImportFromFile(utCtx)
		done <- err
	}()

	<-picking
	assert.Equal(models.ImportStageFilePicking, uut.Stage())
	_, err = uut.ImportFromReader(utCtx, "other.csv", strings.NewReader("name\n"))
	assert.ErrorIs(err, models.ErrImport)

	release <- true
	assert.ErrorIs(<-done, models.ErrCancelled)
	assert.Equal(models.ImportStageIdle, uut.Stage())
}
