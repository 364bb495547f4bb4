// Package main - credvault command line client
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alwitt/credvault"
	"github.com/alwitt/credvault/config"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "credvault",
	Short:         "PIN-protected local credential vault",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// openVault load the config, then open the vault it describes
func openVault(ctx context.Context) (*credvault.Vault, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyLogLevel()
	return credvault.Open(ctx, cfg)
}

// withVault run an action against an open vault. With unlock set, the PIN is verified
// first.
func withVault(
	unlock bool, action func(ctx context.Context, vault *credvault.Vault, args []string) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		vault, err := openVault(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := vault.Close(); err != nil {
				log.WithError(err).Error("Failed to close vault")
			}
		}()
		if unlock {
			if err := unlockVault(ctx, vault); err != nil {
				return err
			}
		}
		return action(ctx, vault, args)
	}
}

func main() {
	log.SetHandler(cli.New(os.Stderr))
	rootCmd.PersistentFlags().StringVarP(
		&configFile, "config", "c", config.DefaultPath(), "config file",
	)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
