package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/cosmic/internal/constants"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage bucket users",
		Long:    "List, invite, and remove users of the bucket",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersAddCommand())
	cmd.AddCommand(newUsersDeleteCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  "List all users with access to the bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Users().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			return printResult(resp, func() error {
				rows := make([][]string, 0, len(resp.Users))
				for _, user := range resp.Users {
					rows = append(rows, []string{user.ID, orNA(user.FullName()), user.Email, titleCase(user.Role), titleCase(user.Status)})
				}

				return renderTable([]string{"ID", "Name", "Email", "Role", "Status"}, rows)
			})
		},
	}
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user details",
		Long:  "Display detailed information about a specific bucket user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			user, err := client.Users().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			return printResult(user, func() error {
				return renderUserDetails(user)
			})
		},
	}
}

func newUsersAddCommand() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "add EMAIL",
		Short: "Add a user",
		Long:  "Invite a user to the bucket with the given role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			user, err := client.Users().Add(context.Background(), args[0], role)
			if err != nil {
				return fmt.Errorf("failed to add user: %w", err)
			}

			return printResult(user, func() error {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully added user '%s'\n\n", user.Email)

				return renderUserDetails(user)
			})
		},
	}

	cmd.Flags().StringVar(&role, "role", "editor", "user role (admin, developer, editor, contributor)")

	return cmd
}

func newUsersDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete USER_ID",
		Short: "Remove a user",
		Long:  "Remove a user from the bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Really remove user '%s'?", args[0])) {
				return constants.ErrDeleteNotConfirmed
			}

			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Users().Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to remove user: %w", err)
			}

			return printMessage(cmd, resp, fmt.Sprintf("Successfully removed user '%s'", args[0]))
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

func renderUserDetails(user *cosmic.User) error {
	return renderTable([]string{"Property", "Value"}, [][]string{
		{"ID", user.ID},
		{"Name", orNA(user.FullName())},
		{"Email", user.Email},
		{"Role", titleCase(user.Role)},
		{"Status", titleCase(user.Status)},
		{"Created", orNA(user.CreatedAt.String())},
	})
}
