package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/cosmic/internal/constants"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// NewMediaCommand creates the media command group.
func NewMediaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Manage media files",
		Long:  "List, upload, and delete media files in the bucket",
	}

	cmd.AddCommand(newMediaListCommand())
	cmd.AddCommand(newMediaGetCommand())
	cmd.AddCommand(newMediaUploadCommand())
	cmd.AddCommand(newMediaDeleteCommand())

	return cmd
}

func newMediaListCommand() *cobra.Command {
	var (
		props string
		limit int
		skip  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List media",
		Long:  "List media files in the bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cosmic.NewListOptions().WithProps(props)

			if cmd.Flags().Changed("limit") {
				opts.WithLimit(limit)
			}

			if cmd.Flags().Changed("skip") {
				opts.WithSkip(skip)
			}

			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Media().List(context.Background(), opts)
			if err != nil {
				return fmt.Errorf("failed to list media: %w", err)
			}

			return printResult(resp, func() error {
				rows := make([][]string, 0, len(resp.Media))
				for _, media := range resp.Media {
					rows = append(rows, []string{
						media.ID,
						media.Name,
						orNA(media.Type),
						formatSize(media.Size),
						orNA(media.Folder),
					})
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Media (%d total):\n\n", resp.Total)

				return renderTable([]string{"ID", "Name", "Type", "Size", "Folder"}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&props, "props", "", "comma-separated properties to return")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of media")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of media to skip")

	return cmd
}

func newMediaGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get MEDIA_ID",
		Short: "Get media details",
		Long:  "Display detailed information about a specific media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			media, err := client.Media().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get media: %w", err)
			}

			return printResult(media, func() error {
				return renderMediaDetails(media)
			})
		},
	}
}

func newMediaUploadCommand() *cobra.Command {
	var (
		folder      string
		contentType string
		metadata    string
	)

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a media file",
		Long:  "Upload a local file to the bucket. The content type is detected from the file extension unless --content-type is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseJSONObject(metadata, constants.ErrInvalidMetadataJSON)
			if err != nil {
				return err
			}

			// #nosec G304
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			media, err := client.Media().Upload(context.Background(), &cosmic.MediaUpload{
				Filename:    filepath.Base(args[0]),
				Data:        data,
				ContentType: contentType,
				Folder:      folder,
				Metadata:    fields,
			})
			if err != nil {
				return fmt.Errorf("failed to upload media: %w", err)
			}

			return printResult(media, func() error {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully uploaded '%s'\n\n", media.Name)

				return renderMediaDetails(media)
			})
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "media folder")
	cmd.Flags().StringVar(&contentType, "content-type", "", "override the detected content type")
	cmd.Flags().StringVar(&metadata, "metadata", "", "metadata as a JSON object")

	return cmd
}

func newMediaDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete MEDIA_ID",
		Short: "Delete a media file",
		Long:  "Permanently delete a media file from the bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Really delete media '%s'?", args[0])) {
				return constants.ErrDeleteNotConfirmed
			}

			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Media().Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete media: %w", err)
			}

			return printMessage(cmd, resp, fmt.Sprintf("Successfully deleted media '%s'", args[0]))
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

func renderMediaDetails(media *cosmic.Media) error {
	rows := [][]string{
		{"ID", media.ID},
		{"Name", media.Name},
		{"Original Name", orNA(media.OriginalName)},
		{"Type", orNA(media.Type)},
		{"Size", formatSize(media.Size)},
		{"Folder", orNA(media.Folder)},
		{"URL", orNA(media.URL)},
		{"Imgix URL", orNA(media.ImgixURL)},
		{"Created", orNA(media.CreatedAt.String())},
	}

	if media.Width != nil && media.Height != nil {
		rows = append(rows, []string{"Dimensions", fmt.Sprintf("%dx%d", *media.Width, *media.Height)})
	}

	return renderTable([]string{"Property", "Value"}, rows)
}

func formatSize(size int64) string {
	const unit = 1024

	if size <= 0 {
		return constants.NotAvailable
	}

	if size < unit {
		return strconv.FormatInt(size, 10) + " B"
	}

	value := float64(size)
	suffixes := []string{"KB", "MB", "GB"}

	for i, suffix := range suffixes {
		value /= unit
		if value < unit || i == len(suffixes)-1 {
			return fmt.Sprintf("%.1f %s", value, suffix)
		}
	}

	return strconv.FormatInt(size, 10) + " B"
}
