package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alwitt/credvault"
	"github.com/alwitt/credvault/models"
	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

// readLine read one line of input, without the line ending
func readLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := stdin.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readSecret read input without echo when attached to a terminal
func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(prompt)
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return string(b), nil
}

// confirm ask a yes / no question on the terminal
func confirm(_ context.Context, prompt string) (bool, error) {
	answer, err := readLine(prompt + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// unlockVault prompt for the PIN and verify it
func unlockVault(ctx context.Context, vault *credvault.Vault) error {
	state, err := vault.Gate.State(ctx)
	if err != nil {
		return err
	}
	if state == models.PinGateStateUnregistered {
		return fmt.Errorf("%w: run 'credvault pin set' first", models.ErrPinNotRegistered)
	}
	pin, err := readSecret("PIN: ")
	if err != nil {
		return err
	}
	ok, err := vault.Gate.VerifyPin(ctx, pin)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("incorrect PIN")
	}
	return nil
}
