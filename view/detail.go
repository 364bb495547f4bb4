package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/alwitt/credvault/models"
	"github.com/alwitt/credvault/store"
	"github.com/alwitt/goutils"
	"github.com/apex/log"
)

// Editor the write operations a detail view issues against the store
type Editor interface {
	Update(ctx context.Context, id uint, fields models.CredentialFields) (store.UpdateResult, error)
	Delete(ctx context.Context, id uint, confirm store.Confirmer) (store.DeleteResult, error)
}

// DetailView one credential, shown read-only or being edited
type DetailView interface {
	// Mode current view mode
	Mode() models.DetailViewModeENUMType

	// Credential the credential as last saved
	Credential() models.Credential

	// Draft the fields being edited. Same as the saved fields outside of editing.
	Draft() models.CredentialFields

	// BeginEdit switch to editing, starting the draft from the saved fields
	BeginEdit() error

	// SetFields replace the draft. Only allowed while editing.
	SetFields(fields models.CredentialFields) error

	/*
		Save write the draft to the store, then return to viewing. On failure the view
		stays in editing with the draft intact.

			@param ctx context.Context - execution context
			@returns update outcome
	*/
	Save(ctx context.Context) (store.UpdateResult, error)

	// Cancel drop the draft and return to viewing
	Cancel() error

	/*
		Delete remove the credential after the user confirms. A confirmed delete closes the
		view; the caller must navigate away.

			@param ctx context.Context - execution context
			@param confirm store.Confirmer - confirmation prompt
			@returns delete outcome
	*/
	Delete(ctx context.Context, confirm store.Confirmer) (store.DeleteResult, error)
}

// detailView implements DetailView
type detailView struct {
	goutils.Component

	editor  Editor
	refresh func(ctx context.Context) error

	lock  sync.Mutex
	mode  models.DetailViewModeENUMType
	saved models.Credential
	draft models.CredentialFields
}

/*
NewDetailView define new credential detail view, starting in viewing mode

	@param editor Editor - store write operations
	@param entry models.Credential - the credential to show
	@param list CredentialList - list refreshed after a save or delete. Optional.
	@returns detail view
*/
func NewDetailView(editor Editor, entry models.Credential, list CredentialList) (DetailView, error) {
	if editor == nil {
		return nil, fmt.Errorf("credential editor not provided")
	}
	logTags := log.Fields{
		"package": "credvault", "module": "view", "component": "detail-view", "credential-id": entry.ID,
	}
	instance := &detailView{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		editor: editor,
		mode:   models.DetailViewModeViewing,
		saved:  entry,
		draft:  entry.CredentialFields,
	}
	if list != nil {
		instance.refresh = list.Refresh
	}
	return instance, nil
}

func (v *detailView) Mode() models.DetailViewModeENUMType {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.mode
}

func (v *detailView) Credential() models.Credential {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.saved
}

func (v *detailView) Draft() models.CredentialFields {
	v.lock.Lock()
	defer v.lock.Unlock()
	return v.draft
}

// moveTo change view mode. Caller holds the lock.
func (v *detailView) moveTo(next models.DetailViewModeENUMType) error {
	if err := models.ValidateDetailViewTransition(v.mode, next); err != nil {
		return err
	}
	v.mode = next
	return nil
}

func (v *detailView) BeginEdit() error {
	v.lock.Lock()
	defer v.lock.Unlock()
	if v.mode == models.DetailViewModeEditing {
		return nil
	}
	if err := v.moveTo(models.DetailViewModeEditing); err != nil {
		return err
	}
	v.draft = v.saved.CredentialFields
	return nil
}

func (v *detailView) SetFields(fields models.CredentialFields) error {
	v.lock.Lock()
	defer v.lock.Unlock()
	if v.mode != models.DetailViewModeEditing {
		return fmt.Errorf("credential %d is not being edited", v.saved.ID)
	}
	v.draft = fields
	return nil
}

func (v *detailView) Save(ctx context.Context) (store.UpdateResult, error) {
	logTags := v.GetLogTagsForContext(ctx)

	v.lock.Lock()
	if v.mode != models.DetailViewModeEditing {
		v.lock.Unlock()
		return store.UpdateResult{}, fmt.Errorf("credential %d is not being edited", v.saved.ID)
	}
	id := v.saved.ID
	draft := v.draft
	v.lock.Unlock()

	result, err := v.editor.Update(ctx, id, draft)
	if err != nil {
		return result, err
	}

	v.lock.Lock()
	if err := v.moveTo(models.DetailViewModeViewing); err != nil {
		v.lock.Unlock()
		return result, err
	}
	v.saved.CredentialFields = draft
	v.lock.Unlock()

	if !result.Matched {
		log.WithFields(logTags).Warn("Saved credential no longer exists")
	}
	v.refreshList(ctx)
	return result, nil
}

func (v *detailView) Cancel() error {
	v.lock.Lock()
	defer v.lock.Unlock()
	if err := v.moveTo(models.DetailViewModeViewing); err != nil {
		return err
	}
	v.draft = v.saved.CredentialFields
	return nil
}

func (v *detailView) Delete(ctx context.Context, confirm store.Confirmer) (store.DeleteResult, error) {
	v.lock.Lock()
	if v.mode == models.DetailViewModeClosed {
		v.lock.Unlock()
		return store.DeleteResult{}, fmt.Errorf("credential %d view is closed", v.saved.ID)
	}
	id := v.saved.ID
	v.lock.Unlock()

	result, err := v.editor.Delete(ctx, id, confirm)
	if err != nil || !result.Confirmed {
		return result, err
	}

	v.lock.Lock()
	err = v.moveTo(models.DetailViewModeClosed)
	v.lock.Unlock()
	if err != nil {
		return result, err
	}

	v.refreshList(ctx)
	return result, nil
}

// refreshList reload the list view after a write. Failures are only logged.
func (v *detailView) refreshList(ctx context.Context) {
	if v.refresh == nil {
		return
	}
	if err := v.refresh(ctx); err != nil {
		log.WithError(err).WithFields(v.GetLogTagsForContext(ctx)).Error("List refresh failed")
	}
}
