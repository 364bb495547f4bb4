package main

import (
	"context"
	"fmt"

	"github.com/alwitt/credvault"
	"github.com/alwitt/credvault/models"
	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Manage the vault PIN",
}

var pinSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Register the PIN, or change it after verifying the current one",
	Args:  cobra.NoArgs,
	RunE: withVault(false, func(ctx context.Context, vault *credvault.Vault, _ []string) error {
		state, err := vault.Gate.State(ctx)
		if err != nil {
			return err
		}
		if state != models.PinGateStateUnregistered {
			if err := unlockVault(ctx, vault); err != nil {
				return err
			}
		}
		pin, err := readSecret("New 4-digit PIN: ")
		if err != nil {
			return err
		}
		again, err := readSecret("Repeat PIN: ")
		if err != nil {
			return err
		}
		if pin != again {
			return fmt.Errorf("PINs do not match")
		}
		if err := vault.Gate.SetPin(ctx, pin); err != nil {
			return err
		}
		fmt.Println("PIN saved")
		return nil
	}),
}

var pinIdentifierCmd = &cobra.Command{
	Use:   "identifier <identifier>",
	Short: "Register the identifier used to reset a forgotten PIN",
	Args:  cobra.ExactArgs(1),
	RunE: withVault(false, func(ctx context.Context, vault *credvault.Vault, args []string) error {
		state, err := vault.Gate.State(ctx)
		if err != nil {
			return err
		}
		if state != models.PinGateStateUnregistered {
			if err := unlockVault(ctx, vault); err != nil {
				return err
			}
		}
		if err := vault.Gate.RegisterIdentifier(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Reset identifier saved")
		return nil
	}),
}

var pinResetCmd = &cobra.Command{
	Use:   "reset <identifier>",
	Short: "Replace a forgotten PIN with a new random one",
	Args:  cobra.ExactArgs(1),
	RunE: withVault(false, func(ctx context.Context, vault *credvault.Vault, args []string) error {
		newPin, err := vault.Gate.ResetPin(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("New PIN: %s\n", newPin)
		return nil
	}),
}

var pinVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the PIN",
	Args:  cobra.NoArgs,
	RunE: withVault(true, func(_ context.Context, _ *credvault.Vault, _ []string) error {
		fmt.Println("PIN verified")
		return nil
	}),
}

func init() {
	pinCmd.AddCommand(pinSetCmd)
	pinCmd.AddCommand(pinIdentifierCmd)
	pinCmd.AddCommand(pinResetCmd)
	pinCmd.AddCommand(pinVerifyCmd)
	rootCmd.AddCommand(pinCmd)
}
