package main

import (
	"bufio"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alwitt/credvault"
	"github.com/alwitt/credvault/config"
	"github.com/alwitt/credvault/models"
	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestConfirmPrompt(t *testing.T) {
	assert := assert.New(t)

	for input, expected := range map[string]bool{
		"y\n": true, "YES\n": true, " yes \r\n": true, "n\n": false, "\n": false, "sure\n": false,
	} {
		stdin = bufio.NewReader(strings.NewReader(input))
		answer, err := confirm(context.Background(), "Delete?")
		assert.Nil(err, input)
		assert.Equal(expected, answer, input)
	}

	// No input at all
	stdin = bufio.NewReader(strings.NewReader(""))
	_, err := confirm(context.Background(), "Delete?")
	assert.Error(err)
}

func TestUnlockVault(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	ctx := context.Background()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.DBFile = filepath.Join(dir, "credentials.db")
	cfg.KVFile = filepath.Join(dir, "settings.yaml")

	vault, err := credvault.Open(ctx, cfg)
	assert.Nil(err)
	defer func() {
		_ = vault.Close()
	}()

	// Case 0: no PIN yet
	assert.ErrorIs(unlockVault(ctx, vault), models.ErrPinNotRegistered)

	assert.Nil(vault.Gate.SetPin(ctx, "8642"))

	// Case 1: wrong PIN
	stdin = bufio.NewReader(strings.NewReader("1111\n"))
	assert.Error(unlockVault(ctx, vault))
	assert.ErrorIs(vault.EnsureUnlocked(), models.ErrNotUnlocked)

	// Case 2: correct PIN
	stdin = bufio.NewReader(strings.NewReader("8642\n"))
	assert.Nil(unlockVault(ctx, vault))
	assert.Nil(vault.EnsureUnlocked())
}
