package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alwitt/credvault"
	"github.com/alwitt/credvault/db"
	"github.com/alwitt/credvault/models"
	"github.com/spf13/cobra"
)

var (
	auditLimit int
	auditTypes []string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the vault event history",
	Args:  cobra.NoArgs,
	RunE: withVault(true, func(ctx context.Context, vault *credvault.Vault, _ []string) error {
		filters := db.SystemEventQueryFilter{}
		for _, eventType := range auditTypes {
			filters.EventTypes = append(filters.EventTypes, models.SystemEventTypeENUMType(eventType))
		}
		if auditLimit > 0 {
			filters.Limit = &auditLimit
		}
		events, err := vault.AuditEvents(ctx, filters)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tEVENT\tDETAIL")
		for _, event := range events {
			fmt.Fprintf(
				w, "%s\t%s\t%s\n", event.CreatedAt.Format(time.RFC3339), event.EventType, string(event.Metadata),
			)
		}
		return w.Flush()
	}),
}

func init() {
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 0, "show at most this many events")
	auditCmd.Flags().StringSliceVarP(&auditTypes, "type", "t", nil, "only these event types")
	rootCmd.AddCommand(auditCmd)
}
