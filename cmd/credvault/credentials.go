package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/alwitt/credvault"
	"github.com/alwitt/credvault/models"
	"github.com/alwitt/credvault/store"
	"github.com/alwitt/credvault/view"
	"github.com/spf13/cobra"
)

var (
	listSearch string

	fieldName        string
	fieldURL         string
	fieldUsername    string
	updatePassword   bool
	deleteSkipPrompt bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the vault storage",
	Args:  cobra.NoArgs,
	RunE: withVault(false, func(ctx context.Context, vault *credvault.Vault, _ []string) error {
		state, err := vault.Gate.State(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Vault ready, PIN %s\n", state)
		return nil
	}),
}

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List stored credentials, with secrets masked",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: withVault(true, func(ctx context.Context, vault *credvault.Vault, _ []string) error {
		if err := vault.List.Refresh(ctx); err != nil {
			return err
		}
		entries := vault.List.Search(listSearch)
		if len(entries) == 0 {
			fmt.Println("No credentials stored")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tURL\tUSERNAME\tPASSWORD")
		for _, entry := range entries {
			row := view.Display(entry)
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", row.ID, row.Name, row.URL, row.Username, row.Password)
		}
		return w.Flush()
	}),
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a new credential. The password is prompted for.",
	Args:  cobra.NoArgs,
	RunE: withVault(true, func(ctx context.Context, vault *credvault.Vault, _ []string) error {
		password, err := readSecret("Password: ")
		if err != nil {
			return err
		}
		entry, err := vault.Credentials.Insert(ctx, models.CredentialFields{
			Name: fieldName, URL: fieldURL, Username: fieldUsername, Password: password,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Credential %d saved\n", entry.ID)
		return nil
	}),
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Overwrite the fields of a credential. Fields not given keep their value.",
	Args:  cobra.ExactArgs(1),
	RunE: withVault(true, func(ctx context.Context, vault *credvault.Vault, args []string) error {
		detail, err := openDetail(ctx, vault, args[0])
		if err != nil {
			return err
		}
		if err := detail.BeginEdit(); err != nil {
			return err
		}
		draft := detail.Draft()
		if fieldName != "" {
			draft.Name = fieldName
		}
		if fieldURL != "" {
			draft.URL = fieldURL
		}
		if fieldUsername != "" {
			draft.Username = fieldUsername
		}
		if updatePassword {
			if draft.Password, err = readSecret("New password: "); err != nil {
				return err
			}
		}
		if err := detail.SetFields(draft); err != nil {
			return err
		}
		result, err := detail.Save(ctx)
		if err != nil {
			return err
		}
		if !result.Matched {
			fmt.Println("Credential no longer exists, nothing updated")
			return nil
		}
		fmt.Printf("Credential %d updated\n", detail.Credential().ID)
		return nil
	}),
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a credential",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: withVault(true, func(ctx context.Context, vault *credvault.Vault, args []string) error {
		detail, err := openDetail(ctx, vault, args[0])
		if err != nil {
			return err
		}
		var confirmer store.Confirmer = store.ConfirmFunc(confirm)
		if deleteSkipPrompt {
			confirmer = store.ConfirmFunc(func(_ context.Context, _ string) (bool, error) {
				return true, nil
			})
		}
		result, err := detail.Delete(ctx, confirmer)
		if err != nil {
			return err
		}
		switch {
		case !result.Confirmed:
			fmt.Println("Delete cancelled")
		case !result.Deleted:
			fmt.Println("Credential no longer exists")
		default:
			fmt.Printf("Credential %d deleted\n", detail.Credential().ID)
		}
		return nil
	}),
}

// openDetail find a credential by ID and open its detail view
func openDetail(ctx context.Context, vault *credvault.Vault, rawID string) (view.DetailView, error) {
	id, err := strconv.ParseUint(rawID, 10, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid credential ID '%s' [%w]", rawID, err)
	}
	if err := vault.List.Refresh(ctx); err != nil {
		return nil, err
	}
	for _, entry := range vault.List.All() {
		if entry.ID == uint(id) {
			return vault.OpenDetail(entry)
		}
	}
	return nil, fmt.Errorf("no credential with ID %d", id)
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "only credentials whose name contains this")

	addCmd.Flags().StringVar(&fieldName, "name", "", "credential name")
	addCmd.Flags().StringVar(&fieldURL, "url", "", "site URL")
	addCmd.Flags().StringVar(&fieldUsername, "username", "", "username or email")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("url")
	_ = addCmd.MarkFlagRequired("username")

	updateCmd.Flags().StringVar(&fieldName, "name", "", "new credential name")
	updateCmd.Flags().StringVar(&fieldURL, "url", "", "new site URL")
	updateCmd.Flags().StringVar(&fieldUsername, "username", "", "new username or email")
	updateCmd.Flags().BoolVar(&updatePassword, "password", false, "prompt for a new password")

	deleteCmd.Flags().BoolVarP(&deleteSkipPrompt, "yes", "y", false, "do not ask for confirmation")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
}
