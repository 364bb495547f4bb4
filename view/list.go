// Package view - read-only credential projections for display
package view

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alwitt/credvault/models"
	"github.com/alwitt/goutils"
	"github.com/apex/log"
)

// Lister source of the full credential set
type Lister interface {
	/*
		ListAll fetch every credential in storage order

			@param ctx context.Context - execution context
			@returns the credentials
	*/
	ListAll(ctx context.Context) ([]models.Credential, error)
}

// CredentialList snapshot of the stored credentials, with name search
type CredentialList interface {
	/*
		Refresh reload the snapshot from storage. On failure the previous snapshot is kept.

			@param ctx context.Context - execution context
	*/
	Refresh(ctx context.Context) error

	// All the snapshot in storage order
	All() []models.Credential

	/*
		Search filter the snapshot by name, case-insensitive substring match. The result is
		never fresher than the last Refresh.

			@param query string - the name fragment. Empty matches every credential.
			@returns matching credentials in storage order
	*/
	Search(query string) []models.Credential
}

// credentialList implements CredentialList
type credentialList struct {
	goutils.Component

	source Lister

	lock     sync.RWMutex
	snapshot []models.Credential
}

/*
NewCredentialList define new credential list view. The list is empty until the first
Refresh.

	@param source Lister - credential source
	@returns list view
*/
func NewCredentialList(source Lister) (CredentialList, error) {
	if source == nil {
		return nil, fmt.Errorf("credential source not provided")
	}
	logTags := log.Fields{"package": "credvault", "module": "view", "component": "credential-list"}
	return &credentialList{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		source:   source,
		snapshot: []models.Credential{},
	}, nil
}

func (l *credentialList) Refresh(ctx context.Context) error {
	logTags := l.GetLogTagsForContext(ctx)

	entries, err := l.source.ListAll(ctx)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Credential list refresh failed")
		return err
	}

	l.lock.Lock()
	defer l.lock.Unlock()
	l.snapshot = entries
	log.WithFields(logTags).WithField("credentials", len(entries)).Debug("Credential list refreshed")
	return nil
}

func (l *credentialList) All() []models.Credential {
	return l.Search("")
}

func (l *credentialList) Search(query string) []models.Credential {
	l.lock.RLock()
	defer l.lock.RUnlock()

	needle := strings.ToLower(query)
	result := []models.Credential{}
	for _, entry := range l.snapshot {
		if strings.Contains(strings.ToLower(entry.Name), needle) {
			result = append(result, entry)
		}
	}
	return result
}
