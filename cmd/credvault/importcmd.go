package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alwitt/credvault"
	"github.com/alwitt/credvault/importer"
	"github.com/alwitt/credvault/models"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import credentials from a CSV export",
	Long: "Import credentials from a CSV file whose header names the columns " +
		"name, url, username (or email), and password. Rows missing a field are skipped.",
	Args: cobra.ExactArgs(1),
	RunE: withVault(true, func(ctx context.Context, vault *credvault.Vault, args []string) error {
		pipeline, err := vault.NewImportPipeline(
			importer.PathPicker(args[0]), importer.LocalFileReader{}, importer.GrantedPermission{},
		)
		if err != nil {
			return err
		}
		result, err := pipeline.ImportFromFile(ctx)
		if errors.Is(err, models.ErrCancelled) {
			fmt.Println("No file selected")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf(
			"Imported %d, skipped %d, failed %d from %s\n",
			result.Imported, result.Skipped, result.Failed, result.Source,
		)
		for _, rejected := range result.Rejected {
			fmt.Printf(
				"  line %d (%s): missing %s\n",
				rejected.Line, rejected.Name, strings.Join(rejected.Missing, ", "),
			)
		}
		for _, failed := range result.Errors {
			fmt.Printf("  line %d (%s): %s\n", failed.Line, failed.Name, failed.Err)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(importCmd)
}
