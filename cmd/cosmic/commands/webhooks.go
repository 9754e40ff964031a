package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/cosmic/internal/constants"
)

// NewWebhooksCommand creates the webhooks command group.
func NewWebhooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "webhooks",
		Aliases: []string{"webhook", "hooks"},
		Short:   "Manage webhooks",
		Long:    "List, add, and delete bucket event webhooks",
	}

	cmd.AddCommand(newWebhooksListCommand())
	cmd.AddCommand(newWebhooksAddCommand())
	cmd.AddCommand(newWebhooksDeleteCommand())

	return cmd
}

func newWebhooksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List webhooks",
		Long:  "List all webhooks registered on the bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Webhooks().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list webhooks: %w", err)
			}

			return printResult(resp, func() error {
				rows := make([][]string, 0, len(resp.Webhooks))
				for _, webhook := range resp.Webhooks {
					rows = append(rows, []string{webhook.ID, webhook.Event, webhook.Endpoint, orNA(webhook.CreatedAt.String())})
				}

				return renderTable([]string{"ID", "Event", "Endpoint", "Created"}, rows)
			})
		},
	}
}

func newWebhooksAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add EVENT ENDPOINT",
		Short: "Add a webhook",
		Long:  "Register an endpoint to be called when EVENT (for example object.created) fires",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Webhooks().Add(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to add webhook: %w", err)
			}

			return printMessage(cmd, resp, fmt.Sprintf("Successfully added webhook for '%s'", args[0]))
		},
	}
}

func newWebhooksDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete WEBHOOK_ID",
		Short: "Delete a webhook",
		Long:  "Remove a webhook from the bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Really delete webhook '%s'?", args[0])) {
				return constants.ErrDeleteNotConfirmed
			}

			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Webhooks().Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete webhook: %w", err)
			}

			return printMessage(cmd, resp, fmt.Sprintf("Successfully deleted webhook '%s'", args[0]))
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
