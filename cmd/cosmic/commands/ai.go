package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// NewAICommand creates the ai command group.
func NewAICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Generate content with AI",
		Long:  "Generate text or images with the bucket's AI endpoints",
	}

	cmd.AddCommand(newAITextCommand())
	cmd.AddCommand(newAIImageCommand())

	return cmd
}

func newAITextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "text PROMPT",
		Short: "Generate text",
		Long:  "Generate text from a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.AI().GenerateText(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to generate text: %w", err)
			}

			return printResult(resp, func() error {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), resp.Text)

				return nil
			})
		},
	}
}

func newAIImageCommand() *cobra.Command {
	var (
		size    string
		quality string
		style   string
	)

	cmd := &cobra.Command{
		Use:   "image PROMPT",
		Short: "Generate an image",
		Long:  "Generate an image from a prompt and store it as bucket media",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.AI().GenerateImage(context.Background(), &cosmic.ImagePrompt{
				Prompt:  args[0],
				Size:    size,
				Quality: quality,
				Style:   style,
			})
			if err != nil {
				return fmt.Errorf("failed to generate image: %w", err)
			}

			return printResult(resp, func() error {
				if resp.RevisedPrompt != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Revised prompt: %s\n\n", resp.RevisedPrompt)
				}

				if resp.Media == nil {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No media returned")

					return nil
				}

				return renderMediaDetails(resp.Media)
			})
		},
	}

	cmd.Flags().StringVar(&size, "size", cosmic.DefaultImageSize, "image size")
	cmd.Flags().StringVar(&quality, "quality", cosmic.DefaultImageQuality, "image quality (standard, hd)")
	cmd.Flags().StringVar(&style, "style", cosmic.DefaultImageStyle, "image style (vivid, natural)")

	return cmd
}
