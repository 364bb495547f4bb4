package view_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alwitt/credvault/db"
	"github.com/alwitt/credvault/models"
	"github.com/alwitt/credvault/store"
	"github.com/alwitt/credvault/view"
	"github.com/apex/log"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

// newTestStore creates a credential store on a fresh temporary DB file
func newTestStore(t *testing.T) store.CredentialStore {
	assert := assert.New(t)

	testDB := fmt.Sprintf("/tmp/credvault_ut_%s.db", ulid.Make().String())
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

type failingLister struct{}

func (failingLister) ListAll(_ context.Context) ([]models.Credential, error) {
	return nil, fmt.Errorf("%w: database is locked", models.ErrStorage)
}

func names(entries []models.Credential) []string {
	result := []string{}
	for _, entry := range entries {
		result = append(result, entry.Name)
	}
	return result
}

func TestCredentialListSearch(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	credentials := newTestStore(t)
	for _, name := range []string{"Bank Account", "Email", "banking2"} {
		_, err := credentials.Insert(utCtx, models.CredentialFields{
			Name: name, URL: "https://ban.example.com", Username: "ban", Password: "ban",
		})
		assert.Nil(err)
	}

	uut, err := view.NewCredentialList(credentials)
	assert.Nil(err)

	// Case 0: nothing until the first refresh
	assert.Empty(uut.All())

	assert.Nil(uut.Refresh(utCtx))

	// Case 1: name only, case-insensitive
	assert.Equal([]string{"Bank Account", "banking2"}, names(uut.Search("ban")))
	assert.Equal([]string{"Bank Account", "banking2"}, names(uut.Search("BAN")))

	// Case 2: empty query returns all
	assert.Equal([]string{"Bank Account", "Email", "banking2"}, names(uut.Search("")))
	assert.Equal(names(uut.All()), names(uut.Search("")))

	// Case 3: no match
	assert.Empty(uut.Search("zzz"))

	// Case 4: search runs against the snapshot, not storage
	_, err = credentials.Insert(utCtx, models.CredentialFields{
		Name: "Bandcamp", URL: "https://bc.com", Username: "u", Password: "p",
	})
	assert.Nil(err)
	assert.Equal([]string{"Bank Account", "banking2"}, names(uut.Search("ban")))
	assert.Nil(uut.Refresh(utCtx))
	assert.Equal([]string{"Bank Account", "banking2", "Bandcamp"}, names(uut.Search("ban")))
}

func TestCredentialListRefreshFailure(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	uut, err := view.NewCredentialList(failingLister{})
	assert.Nil(err)
	err = uut.Refresh(context.Background())
	assert.ErrorIs(err, models.ErrStorage)
	assert.Empty(uut.All())

	_, err = view.NewCredentialList(nil)
	assert.Error(err)
}

func TestMasking(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("*******", view.MaskPassword("pw1"))
	assert.Equal("*******", view.MaskPassword("a much longer password"))
	assert.Equal("*****@mail.com", view.MaskEmail("alice@mail.com"))
	assert.Equal("alice", view.MaskEmail("alice"))
	assert.Equal("*****@b", view.MaskEmail("a@b@c"))
	assert.Equal("*****@", view.MaskEmail("alice@"))

	entry := models.Credential{
		ID: 4,
		CredentialFields: models.CredentialFields{
			Name: "Email", URL: "https://mail.com", Username: "alice@mail.com", Password: "secret",
		},
	}
	row := view.Display(entry)
	assert.Equal(view.DisplayRow{
		ID: 4, Name: "Email", URL: "https://mail.com", Username: "*****@mail.com", Password: "*******",
	}, row)
	// Stored value untouched
	assert.Equal("alice@mail.com", entry.Username)
	assert.Equal("secret", entry.Password)
}
