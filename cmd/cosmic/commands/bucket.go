package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// NewBucketCommand creates the bucket command group.
func NewBucketCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bucket",
		Short: "Manage the bucket",
		Long:  "View and update bucket settings and check connectivity",
	}

	cmd.AddCommand(newBucketGetCommand())
	cmd.AddCommand(newBucketUpdateCommand())
	cmd.AddCommand(newBucketPingCommand())

	return cmd
}

func newBucketGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Get bucket settings",
		Long:  "Display the settings of the configured bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Bucket().Get(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get bucket: %w", err)
			}

			return printResult(resp, func() error {
				bucket := resp.Bucket
				rows := [][]string{
					{"Title", orNA(bucket.Title)},
					{"Description", orNA(bucket.Description)},
					{"Website", orNA(bucket.Website)},
					{"Icon", orNA(bucket.Icon)},
					{"Deploy Hook", orNA(bucket.DeployHook)},
				}

				names := make([]string, 0, len(bucket.Env))
				for name := range bucket.Env {
					names = append(names, name)
				}

				sort.Strings(names)

				for _, name := range names {
					rows = append(rows, []string{"env." + name, bucket.Env[name]})
				}

				return renderTable([]string{"Property", "Value"}, rows)
			})
		},
	}
}

func newBucketUpdateCommand() *cobra.Command {
	var settings cosmic.BucketSettings

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update bucket settings",
		Long:  "Update the title, description, website and other settings of the bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Bucket().UpdateSettings(context.Background(), &settings)
			if err != nil {
				return fmt.Errorf("failed to update bucket settings: %w", err)
			}

			return printMessage(cmd, resp, "Successfully updated bucket settings")
		},
	}

	cmd.Flags().StringVar(&settings.Title, "title", "", "bucket title")
	cmd.Flags().StringVar(&settings.Description, "description", "", "bucket description")
	cmd.Flags().StringVar(&settings.Website, "website", "", "bucket website")
	cmd.Flags().StringVar(&settings.Icon, "icon", "", "bucket icon")
	cmd.Flags().StringVar(&settings.DeployHook, "deploy-hook", "", "deploy hook URL")
	cmd.Flags().StringToStringVar(&settings.Env, "env", nil, "environment variables (KEY=VALUE, repeatable)")

	return cmd
}

func newBucketPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test the connection",
		Long:  "Fetch the bucket and print the raw response to verify the keys and hosts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			body, err := client.Bucket().Ping(context.Background())
			if err != nil {
				return fmt.Errorf("connection test failed: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), body)

			return nil
		},
	}
}
