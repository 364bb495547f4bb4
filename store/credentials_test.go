package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alwitt/credvault/db"
	mockdb "github.com/alwitt/credvault/mocks/db"
	"github.com/alwitt/credvault/models"
	"github.com/alwitt/credvault/store"
	"github.com/apex/log"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm/logger"
)

// newTestStore creates a credential store on a fresh temporary DB file
func newTestStore(t *testing.T) store.CredentialStore {
	assert := assert.New(t)

	testDB := fmt.Sprintf("/tmp/credvault_ut_%s.db", ulid.Make().String())
	log.WithField("db", testDB).Debug("Test database")

	persistence, err := db.NewConnection(db.GetSqliteDialector(testDB), logger.Error)
	assert.Nil(err)
	assert.Nil(persistence.Initialize(context.Background()))
	t.Cleanup(func() {
		_ = persistence.Close()
	})

	uut, err := store.NewCredentialStore(persistence, time.Second*5)
	assert.Nil(err)
	return uut
}

func alwaysConfirm(answer bool) store.Confirmer {
	return store.ConfirmFunc(func(_ context.Context, _ string) (bool, error) {
		return answer, nil
	})
}

func TestCredentialStoreRoundTrip(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut := newTestStore(t)

	// Case 0: empty store lists nothing, without error
	{
		entries, err := uut.ListAll(utCtx)
		assert.Nil(err)
		assert.Empty(entries)
	}

	// Case 1: insert and list back
	fields := models.CredentialFields{
		Name: "Bank", URL: "https://b.com", Username: "alice", Password: "pw1",
	}
	inserted, err := uut.Insert(utCtx, fields)
	assert.Nil(err)
	{
		entries, err := uut.ListAll(utCtx)
		assert.Nil(err)
		assert.Len(entries, 1)
		matches := 0
		for _, entry := range entries {
			if entry.CredentialFields == fields {
				matches++
				assert.Equal(inserted.ID, entry.ID)
			}
		}
		assert.Equal(1, matches)
	}

	// Case 2: second insert gets a fresh ID, storage order is insertion order
	second, err := uut.Insert(utCtx, models.CredentialFields{
		Name: "Email", URL: "https://mail.com", Username: "alice@mail.com", Password: "pw2",
	})
	assert.Nil(err)
	assert.NotEqual(inserted.ID, second.ID)
	{
		entries, err := uut.ListAll(utCtx)
		assert.Nil(err)
		assert.Len(entries, 2)
		assert.Equal(inserted.ID, entries[0].ID)
		assert.Equal(second.ID, entries[1].ID)
	}

	// Case 3: insert with a missing field
	{
		_, err := uut.Insert(utCtx, models.CredentialFields{Name: "NoPassword", URL: "u", Username: "u"})
		assert.ErrorIs(err, models.ErrValidation)
		assert.NotErrorIs(err, models.ErrStorage)
		entries, err := uut.ListAll(utCtx)
		assert.Nil(err)
		assert.Len(entries, 2)
	}
}

func TestCredentialStoreUpdate(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut := newTestStore(t)

	entry, err := uut.Insert(utCtx, models.CredentialFields{
		Name: "Bank", URL: "https://b.com", Username: "alice", Password: "pw1",
	})
	assert.Nil(err)

	// Case 0: update an existing credential
	newFields := models.CredentialFields{
		Name: "Bank 2", URL: "https://b2.com", Username: "alice2", Password: "pw2",
	}
	{
		result, err := uut.Update(utCtx, entry.ID, newFields)
		assert.Nil(err)
		assert.True(result.Matched)
		entries, err := uut.ListAll(utCtx)
		assert.Nil(err)
		assert.Len(entries, 1)
		assert.Equal(entry.ID, entries[0].ID)
		assert.Equal(newFields, entries[0].CredentialFields)
	}

	// Case 1: update of an unknown ID is a successful no-op
	{
		before, err := uut.ListAll(utCtx)
		assert.Nil(err)
		result, err := uut.Update(utCtx, entry.ID+100, models.CredentialFields{
			Name: "ghost", URL: "https://g.com", Username: "g", Password: "g",
		})
		assert.Nil(err)
		assert.False(result.Matched)
		after, err := uut.ListAll(utCtx)
		assert.Nil(err)
		assert.Equal(before, after)
	}

	// Case 2: near-simultaneous updates of the same ID, last write wins
	{
		wg := sync.WaitGroup{}
		for itr := 0; itr < 4; itr++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				_, err := uut.Update(utCtx, entry.ID, models.CredentialFields{
					Name:     fmt.Sprintf("writer-%d", idx),
					URL:      "https://b.com",
					Username: "alice",
					Password: "pw",
				})
				assert.Nil(err)
			}(itr)
		}
		wg.Wait()
		entries, err := uut.ListAll(utCtx)
		assert.Nil(err)
		assert.Len(entries, 1)
		assert.Regexp(`^writer-[0-3]$`, entries[0].Name)
	}
}

func TestCredentialStoreDelete(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	uut := newTestStore(t)

	entry, err := uut.Insert(utCtx, models.CredentialFields{
		Name: "Bank", URL: "https://b.com", Username: "alice", Password: "pw1",
	})
	assert.Nil(err)

	// Case 0: no confirmation step
	{
		_, err := uut.Delete(utCtx, entry.ID, nil)
		assert.Error(err)
	}

	// Case 1: user declines
	{
		result, err := uut.Delete(utCtx, entry.ID, alwaysConfirm(false))
		assert.Nil(err)
		assert.False(result.Confirmed)
		entries, err := uut.ListAll(utCtx)
		assert.Nil(err)
		assert.Len(entries, 1)
	}

	// Case 2: confirmation fails
	{
		_, err := uut.Delete(
			utCtx,
			entry.ID,
			store.ConfirmFunc(func(_ context.Context, _ string) (bool, error) {
				return false, fmt.Errorf("dismissed")
			}),
		)
		assert.Error(err)
	}

	// Case 3: user confirms
	{
		prompted := ""
		result, err := uut.Delete(
			utCtx,
			entry.ID,
			store.ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
				prompted = prompt
				return true, nil
			}),
		)
		assert.Nil(err)
		assert.True(result.Confirmed)
		assert.True(result.Deleted)
		assert.NotEmpty(prompted)
		entries, err := uut.ListAll(utCtx)
		assert.Nil(err)
		assert.Empty(entries)
	}

	// Case 4: delete of an unknown ID does not error
	{
		result, err := uut.Delete(utCtx, entry.ID, alwaysConfirm(true))
		assert.Nil(err)
		assert.True(result.Confirmed)
		assert.False(result.Deleted)
	}
}

func TestCredentialStoreStorageFailure(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	mockDBClient := mockdb.NewClient(t)
	mockDatabase := mockdb.NewDatabase(t)
	// Run the callback against the mock DB, and hand back its error
	mockDBClient.On(
		"UseDatabaseInTransaction",
		mock.Anything,
		mock.Anything,
	).Return(func(ctx context.Context, coreLogic func(context.Context, db.Database) error) error {
		return coreLogic(ctx, mockDatabase)
	})

	uut, err := store.NewCredentialStore(mockDBClient, 0)
	assert.Nil(err)

	// Case 0: read failure is an error, not an empty result
	mockDatabase.On(
		"ListCredentials", mock.Anything, db.CredentialQueryFilter{},
	).Return(nil, fmt.Errorf("no such table: credentials")).Once()
	{
		entries, err := uut.ListAll(utCtx)
		assert.ErrorIs(err, models.ErrStorage)
		assert.Nil(entries)
	}

	// Case 1: write failure
	fields := models.CredentialFields{Name: "n", URL: "u", Username: "u", Password: "p"}
	mockDatabase.On(
		"DefineNewCredential", mock.Anything, fields,
	).Return(models.Credential{}, fmt.Errorf("disk I/O error")).Once()
	{
		_, err := uut.Insert(utCtx, fields)
		assert.ErrorIs(err, models.ErrStorage)
	}

	// Case 2: delete failure after confirmation
	mockDatabase.On(
		"DeleteCredential", mock.Anything, uint(7),
	).Return(int64(0), fmt.Errorf("database is locked")).Once()
	{
		result, err := uut.Delete(utCtx, 7, alwaysConfirm(true))
		assert.ErrorIs(err, models.ErrStorage)
		assert.True(result.Confirmed)
		assert.False(result.Deleted)
	}

	// Case 3: update failure
	mockDatabase.On(
		"UpdateCredential", mock.Anything, uint(7), fields,
	).Return(int64(0), fmt.Errorf("database is locked")).Once()
	{
		_, err := uut.Update(utCtx, 7, fields)
		assert.ErrorIs(err, models.ErrStorage)
	}

	_, err = store.NewCredentialStore(nil, 0)
	assert.Error(err)
}

func TestCredentialStoreOperationTimeout(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	fields := models.CredentialFields{Name: "n", URL: "u", Username: "u", Password: "p"}

	// The database never answers; only the context ends the call
	stalledTransaction := func(ctx context.Context, _ func(context.Context, db.Database) error) error {
		<-ctx.Done()
		return ctx.Err()
	}

	// Case 0: every operation gives up once the timeout expires
	{
		mockDBClient := mockdb.NewClient(t)
		mockDBClient.On(
			"UseDatabaseInTransaction", mock.Anything, mock.Anything,
		).Return(stalledTransaction)

		uut, err := store.NewCredentialStore(mockDBClient, time.Millisecond*50)
		assert.Nil(err)

		start := time.Now()
		entries, err := uut.ListAll(utCtx)
		assert.ErrorIs(err, models.ErrStorage)
		assert.ErrorIs(err, context.DeadlineExceeded)
		assert.Nil(entries)
		assert.Less(time.Since(start), time.Second*2)

		start = time.Now()
		_, err = uut.Insert(utCtx, fields)
		assert.ErrorIs(err, models.ErrStorage)
		assert.Less(time.Since(start), time.Second*2)

		start = time.Now()
		_, err = uut.Update(utCtx, 7, fields)
		assert.ErrorIs(err, models.ErrStorage)
		assert.Less(time.Since(start), time.Second*2)

		start = time.Now()
		result, err := uut.Delete(utCtx, 7, alwaysConfirm(true))
		assert.ErrorIs(err, models.ErrStorage)
		assert.True(result.Confirmed)
		assert.False(result.Deleted)
		assert.Less(time.Since(start), time.Second*2)
	}

	// Case 1: zero timeout puts no deadline on the call
	{
		mockDBClient := mockdb.NewClient(t)
		mockDatabase := mockdb.NewDatabase(t)
		mockDBClient.On(
			"UseDatabaseInTransaction", mock.Anything, mock.Anything,
		).Return(func(ctx context.Context, coreLogic func(context.Context, db.Database) error) error {
			_, hasDeadline := ctx.Deadline()
			assert.False(hasDeadline)
			return coreLogic(ctx, mockDatabase)
		}).Once()
		mockDatabase.On(
			"ListCredentials", mock.Anything, db.CredentialQueryFilter{},
		).Return([]models.Credential{}, nil).Once()

		uut, err := store.NewCredentialStore(mockDBClient, 0)
		assert.Nil(err)

		entries, err := uut.ListAll(utCtx)
		assert.Nil(err)
		assert.Empty(entries)
	}

	// Case 2: zero timeout still honors the caller's cancellation
	{
		mockDBClient := mockdb.NewClient(t)
		mockDBClient.On(
			"UseDatabaseInTransaction", mock.Anything, mock.Anything,
		).Return(stalledTransaction).Once()

		uut, err := store.NewCredentialStore(mockDBClient, 0)
		assert.Nil(err)

		cancelCtx, cancel := context.WithCancel(utCtx)
		time.AfterFunc(time.Millisecond*50, cancel)

		start := time.Now()
		_, err = uut.ListAll(cancelCtx)
		assert.ErrorIs(err, models.ErrStorage)
		assert.ErrorIs(err, context.Canceled)
		assert.Less(time.Since(start), time.Second*2)
	}
}
