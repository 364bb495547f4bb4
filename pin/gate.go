// Package pin - PIN access gate in front of the credential vault
package pin

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/alwitt/credvault/kv"
	"github.com/alwitt/credvault/models"
	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
)

const (
	// KeyUserPin key-value entry holding the PIN
	KeyUserPin = "userPin"
	// KeyRegisteredIdentifier key-value entry holding the reset identifier
	KeyRegisteredIdentifier = "registeredIdentifier"
)

// Gate two-state access gate with a reset sub-flow
type Gate interface {
	/*
		State current gate state

			@param ctx context.Context - execution context
			@returns the state
	*/
	State(ctx context.Context) (models.PinGateStateENUMType, error)

	/*
		SetPin register the PIN on first use, or change it while unlocked

			@param ctx context.Context - execution context
			@param pin string - the new PIN, 4 digits
	*/
	SetPin(ctx context.Context, pin string) error

	/*
		RegisterIdentifier record the identifier used to authorize a PIN reset

			@param ctx context.Context - execution context
			@param identifier string - the identifier, e.g. a contact number
	*/
	RegisterIdentifier(ctx context.Context, identifier string) error

	/*
		VerifyPin check a PIN entry. A match unlocks the gate.

			@param ctx context.Context - execution context
			@param pin string - the entered PIN
			@returns whether the PIN matched
	*/
	VerifyPin(ctx context.Context, pin string) (bool, error)

	/*
		ResetPin replace the PIN with a new random 4-digit PIN when the identifier
		matches the registered one

			@param ctx context.Context - execution context
			@param identifier string - the identifier supplied by the user
			@returns the new PIN
	*/
	ResetPin(ctx context.Context, identifier string) (string, error)

	// Lock re-lock an unlocked gate
	Lock()

	// IsUnlocked whether the gate is currently unlocked
	IsUnlocked() bool
}

// gateImpl implements Gate
type gateImpl struct {
	goutils.Component
	settings  kv.Store
	validator *validator.Validate

	lock     sync.Mutex
	unlocked bool
	// resetting whether a reset is being processed
	resetting bool
}

/*
NewGate define a new PIN gate

The gate always starts locked; the unlocked state is never persisted.

	@param settings kv.Store - key-value store holding the PIN and identifier
	@returns gate instance
*/
func NewGate(settings kv.Store) (Gate, error) {
	logTags := log.Fields{"package": "credvault", "module": "pin", "component": "pin-gate"}

	instance := &gateImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		settings:  settings,
		validator: validator.New(),
	}
	if err := models.RegisterWithValidator(instance.validator); err != nil {
		return nil, fmt.Errorf("failed to install custom validation macros [%w]", err)
	}

	return instance, nil
}

// storedPin read the stored PIN. Empty string if none registered.
func (g *gateImpl) storedPin(ctx context.Context) (string, error) {
	pin, err := g.settings.Get(ctx, KeyUserPin)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("%w: failed to read stored PIN [%w]", models.ErrStorage, err)
	}
	return pin, nil
}

// currentState compute the gate state. Caller must hold the lock.
func (g *gateImpl) currentState(ctx context.Context) (models.PinGateStateENUMType, error) {
	pin, err := g.storedPin(ctx)
	if err != nil {
		return "", err
	}
	switch {
	case pin == "":
		return models.PinGateStateUnregistered, nil
	case g.resetting:
		return models.PinGateStateResetInProgress, nil
	case g.unlocked:
		return models.PinGateStateUnlocked, nil
	}
	return models.PinGateStateLocked, nil
}

// transition verify the gate can move to a new state. Caller must hold the lock.
func (g *gateImpl) transition(
	ctx context.Context, next models.PinGateStateENUMType,
) (models.PinGateStateENUMType, error) {
	if err := g.validator.Var(next, "pin_gate_state"); err != nil {
		return "", fmt.Errorf("unknown pin gate state '%s' [%w]", next, err)
	}
	current, err := g.currentState(ctx)
	if err != nil {
		return "", err
	}
	if err := models.ValidatePinGateTransition(current, next); err != nil {
		return current, err
	}
	return current, nil
}

func (g *gateImpl) State(ctx context.Context) (models.PinGateStateENUMType, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.currentState(ctx)
}

func (g *gateImpl) validatePin(pin string) error {
	if err := g.validator.Struct(&models.PinSettings{Pin: pin}); err != nil {
		return fmt.Errorf("%w: PIN must be exactly 4 digits [%w]", models.ErrValidation, err)
	}
	return nil
}

func (g *gateImpl) SetPin(ctx context.Context, pin string) error {
	logTags := g.GetLogTagsForContext(ctx)

	if err := g.validatePin(pin); err != nil {
		return err
	}

	g.lock.Lock()
	defer g.lock.Unlock()

	current, err := g.currentState(ctx)
	if err != nil {
		return err
	}
	// Registration, or a change by a user who already unlocked the gate
	switch current {
	case models.PinGateStateUnregistered:
		if _, err := g.transition(ctx, models.PinGateStateLocked); err != nil {
			return err
		}
	case models.PinGateStateUnlocked:
	default:
		return fmt.Errorf("%w: PIN can only be changed while unlocked", models.ErrNotUnlocked)
	}

	if err := g.settings.Set(ctx, KeyUserPin, pin); err != nil {
		return fmt.Errorf("%w: failed to store PIN [%w]", models.ErrStorage, err)
	}

	log.WithFields(logTags).WithField("previous-state", current).Info("PIN registered")
	return nil
}

func (g *gateImpl) RegisterIdentifier(ctx context.Context, identifier string) error {
	if identifier == "" {
		return fmt.Errorf("%w: reset identifier is empty", models.ErrValidation)
	}

	g.lock.Lock()
	defer g.lock.Unlock()

	current, err := g.currentState(ctx)
	if err != nil {
		return err
	}
	// The identifier is paired with the PIN at registration time
	if current != models.PinGateStateUnregistered && current != models.PinGateStateUnlocked {
		return fmt.Errorf("%w: identifier can only be changed while unlocked", models.ErrNotUnlocked)
	}

	if err := g.settings.Set(ctx, KeyRegisteredIdentifier, identifier); err != nil {
		return fmt.Errorf("%w: failed to store reset identifier [%w]", models.ErrStorage, err)
	}
	return nil
}

func (g *gateImpl) VerifyPin(ctx context.Context, pin string) (bool, error) {
	logTags := g.GetLogTagsForContext(ctx)

	g.lock.Lock()
	defer g.lock.Unlock()

	stored, err := g.storedPin(ctx)
	if err != nil {
		return false, err
	}
	if stored == "" {
		return false, models.ErrPinNotRegistered
	}

	if pin != stored {
		log.WithFields(logTags).Info("Incorrect PIN entered")
		return false, nil
	}

	if _, err := g.transition(ctx, models.PinGateStateUnlocked); err != nil {
		return false, err
	}
	g.unlocked = true
	return true, nil
}

func (g *gateImpl) ResetPin(ctx context.Context, identifier string) (string, error) {
	logTags := g.GetLogTagsForContext(ctx)

	g.lock.Lock()
	defer g.lock.Unlock()

	oldPin, err := g.storedPin(ctx)
	if err != nil {
		return "", err
	}
	if oldPin == "" {
		return "", models.ErrPinNotRegistered
	}

	// A rejected reset leaves the gate as it was
	registered, err := g.settings.Get(ctx, KeyRegisteredIdentifier)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return "", fmt.Errorf("%w: failed to read reset identifier [%w]", models.ErrStorage, err)
	}
	if registered == "" || identifier != registered {
		log.WithFields(logTags).Warn("PIN reset with mismatched identifier")
		return "", models.ErrIdentifierMismatch
	}

	// Reset is only offered on the locked screen
	g.unlocked = false
	if _, err := g.transition(ctx, models.PinGateStateResetInProgress); err != nil {
		return "", err
	}
	g.resetting = true
	defer func() {
		g.resetting = false
	}()

	newPin, err := generatePin(oldPin)
	if err != nil {
		return "", fmt.Errorf("failed to generate new PIN [%w]", err)
	}
	if err := g.settings.Set(ctx, KeyUserPin, newPin); err != nil {
		return "", fmt.Errorf("%w: failed to store new PIN [%w]", models.ErrStorage, err)
	}

	log.WithFields(logTags).Info("PIN reset")
	return newPin, nil
}

func (g *gateImpl) Lock() {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.unlocked = false
}

func (g *gateImpl) IsUnlocked() bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.unlocked
}

// generatePin draw a random 4-digit PIN which differs from the previous one
func generatePin(previous string) (string, error) {
	limit := big.NewInt(10000)
	for {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		candidate := fmt.Sprintf("%04d", n.Int64())
		if candidate != previous {
			return candidate, nil
		}
	}
}
