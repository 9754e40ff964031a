package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/cosmic/internal/constants"
	"github.com/fivetwenty-io/cosmic/pkg/cosmic"
)

// NewObjectsCommand creates the objects command group.
func NewObjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "objects",
		Aliases: []string{"object", "obj"},
		Short:   "Manage content objects",
		Long:    "Find, create, update, and delete content objects in the bucket",
	}

	cmd.AddCommand(newObjectsFindCommand())
	cmd.AddCommand(newObjectsGetCommand())
	cmd.AddCommand(newObjectsInsertCommand())
	cmd.AddCommand(newObjectsUpdateCommand())
	cmd.AddCommand(newObjectsDeleteCommand())
	cmd.AddCommand(newObjectsRevisionsCommand())
	cmd.AddCommand(newObjectsSearchCommand())

	return cmd
}

func newObjectsFindCommand() *cobra.Command {
	var (
		filter string
		props  string
		limit  int
		skip   int
		depth  int
		sort   string
		status string
	)

	cmd := &cobra.Command{
		Use:   "find [TYPE]",
		Short: "Find objects",
		Long: `Find objects of a type, optionally narrowed by a JSON filter such as
'{"metadata.regular_hosts.id": {"$in": ["host-1", "host-2"]}}'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseJSONObject(filter, constants.ErrInvalidFilterJSON)
			if err != nil {
				return err
			}

			opts := cosmic.NewFindOptions().
				WithQuery(query).
				WithProps(props).
				WithSort(cosmic.Sort(sort)).
				WithStatus(cosmic.Status(status))

			if cmd.Flags().Changed("limit") {
				opts.WithLimit(limit)
			}

			if cmd.Flags().Changed("skip") {
				opts.WithSkip(skip)
			}

			if cmd.Flags().Changed("depth") {
				opts.WithDepth(depth)
			}

			objectType := ""
			if len(args) > 0 {
				objectType = args[0]
			}

			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Objects().Find(context.Background(), objectType, opts)
			if err != nil {
				return fmt.Errorf("failed to find objects: %w", err)
			}

			return printResult(resp, func() error {
				if len(resp.Objects) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No objects found")

					return nil
				}

				return renderObjectsTable(resp.Objects)
			})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "JSON filter on object fields")
	cmd.Flags().StringVar(&props, "props", "", "comma-separated properties to return")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of objects")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of objects to skip")
	cmd.Flags().IntVar(&depth, "depth", 0, "relationship expansion depth")
	cmd.Flags().StringVar(&sort, "sort", "", "sort order (created_at, -created_at, modified_at, -modified_at, random, order)")
	cmd.Flags().StringVar(&status, "status", "", "publication status (published, draft, any)")

	return cmd
}

func newObjectsGetCommand() *cobra.Command {
	var (
		props  string
		depth  int
		status string
	)

	cmd := &cobra.Command{
		Use:   "get OBJECT_ID",
		Short: "Get object details",
		Long:  "Display detailed information about a specific object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cosmic.NewFindOptions().WithProps(props).WithStatus(cosmic.Status(status))
			if cmd.Flags().Changed("depth") {
				opts.WithDepth(depth)
			}

			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Objects().FindOne(context.Background(), args[0], opts)
			if err != nil {
				return fmt.Errorf("failed to get object: %w", err)
			}

			return printResult(resp, func() error {
				return renderObjectDetails(&resp.Object)
			})
		},
	}

	cmd.Flags().StringVar(&props, "props", "", "comma-separated properties to return")
	cmd.Flags().IntVar(&depth, "depth", 0, "relationship expansion depth")
	cmd.Flags().StringVar(&status, "status", "", "publication status (published, draft, any)")

	return cmd
}

// draftFlags are the writable object fields shared by insert and update.
type draftFlags struct {
	objectType  string
	title       string
	slug        string
	content     string
	metadata    string
	status      string
	publishAt   string
	unpublishAt string
	thumbnail   string
	locale      string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.objectType, "type", "", "object type slug")
	cmd.Flags().StringVar(&f.title, "title", "", "object title")
	cmd.Flags().StringVar(&f.slug, "slug", "", "object slug")
	cmd.Flags().StringVar(&f.content, "content", "", "object content")
	cmd.Flags().StringVar(&f.metadata, "metadata", "", "metadata as a JSON object")
	cmd.Flags().StringVar(&f.status, "status", "", "publication status (published, draft)")
	cmd.Flags().StringVar(&f.publishAt, "publish-at", "", "scheduled publish time")
	cmd.Flags().StringVar(&f.unpublishAt, "unpublish-at", "", "scheduled unpublish time")
	cmd.Flags().StringVar(&f.thumbnail, "thumbnail", "", "thumbnail media name")
	cmd.Flags().StringVar(&f.locale, "locale", "", "object locale")
}

func (f *draftFlags) draft() (*cosmic.ObjectDraft, error) {
	metadata, err := parseJSONObject(f.metadata, constants.ErrInvalidMetadataJSON)
	if err != nil {
		return nil, err
	}

	return &cosmic.ObjectDraft{
		Type:        f.objectType,
		Title:       f.title,
		Slug:        f.slug,
		Content:     f.content,
		Metadata:    metadata,
		Status:      cosmic.Status(f.status),
		PublishAt:   f.publishAt,
		UnpublishAt: f.unpublishAt,
		Thumbnail:   f.thumbnail,
		Locale:      f.locale,
	}, nil
}

func newObjectsInsertCommand() *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:     "insert",
		Aliases: []string{"create"},
		Short:   "Create an object",
		Long:    "Create a new object. Scheduling a publish or unpublish time saves it as a draft",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := flags.draft()
			if err != nil {
				return err
			}

			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Objects().InsertOne(context.Background(), draft)
			if err != nil {
				return fmt.Errorf("failed to create object: %w", err)
			}

			return printMutation(cmd, "created", resp)
		},
	}

	flags.register(cmd)

	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newObjectsUpdateCommand() *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "update OBJECT_ID",
		Short: "Update an object",
		Long:  "Update fields of an existing object. Only the flags given are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := flags.draft()
			if err != nil {
				return err
			}

			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Objects().UpdateOne(context.Background(), args[0], draft)
			if err != nil {
				return fmt.Errorf("failed to update object: %w", err)
			}

			return printMutation(cmd, "updated", resp)
		},
	}

	flags.register(cmd)

	return cmd
}

func newObjectsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete OBJECT_ID",
		Short: "Delete an object",
		Long:  "Permanently delete an object from the bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Really delete object '%s'?", args[0])) {
				return constants.ErrDeleteNotConfirmed
			}

			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Objects().DeleteOne(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete object: %w", err)
			}

			return printMessage(cmd, resp, fmt.Sprintf("Successfully deleted object '%s'", args[0]))
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

func newObjectsRevisionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "revisions OBJECT_ID",
		Short: "List object revisions",
		Long:  "List the saved revisions of an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Objects().Revisions(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to list revisions: %w", err)
			}

			return printResult(resp, func() error {
				rows := make([][]string, 0, len(resp.Revisions))
				for _, revision := range resp.Revisions {
					rows = append(rows, []string{
						revision.ID,
						truncate(revision.Title, constants.ContentPreviewLength),
						titleCase(string(revision.Status)),
						orNA(revision.ModifiedAt.String()),
					})
				}

				return renderTable([]string{"ID", "Title", "Status", "Modified"}, rows)
			})
		},
	}
}

func newObjectsSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Search objects",
		Long:  "Run a full-text search over the objects in the bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClientFromConfig()
			if err != nil {
				return err
			}

			resp, err := client.Objects().Search(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to search objects: %w", err)
			}

			return printResult(resp, func() error {
				return renderObjectsTable(resp.Objects)
			})
		},
	}
}

func renderObjectsTable(objects []cosmic.Object) error {
	rows := make([][]string, 0, len(objects))
	for _, object := range objects {
		rows = append(rows, []string{
			object.ID,
			truncate(object.Title, constants.ContentPreviewLength),
			orNA(object.Slug),
			orNA(object.Type),
			titleCase(string(object.Status)),
			orNA(object.ModifiedAt.String()),
		})
	}

	return renderTable([]string{"ID", "Title", "Slug", "Type", "Status", "Modified"}, rows)
}

func renderObjectDetails(object *cosmic.Object) error {
	rows := [][]string{
		{"ID", object.ID},
		{"Title", object.Title},
		{"Slug", orNA(object.Slug)},
		{"Type", orNA(object.Type)},
		{"Status", titleCase(string(object.Status))},
		{"Locale", orNA(object.Locale)},
		{"Created", orNA(object.CreatedAt.String())},
		{"Modified", orNA(object.ModifiedAt.String())},
		{"Published", orNA(object.PublishedAt.String())},
		{"Metadata Fields", strconv.Itoa(object.Metadata.Len())},
	}

	rows = append(rows, metadataRows(object.Metadata)...)

	if object.Content != "" {
		rows = append(rows, []string{"Content", truncate(object.Content, constants.ContentPreviewLength)})
	}

	_, _ = os.Stdout.WriteString("Object details:\n\n")

	return renderTable([]string{"Property", "Value"}, rows)
}

func printMutation(cmd *cobra.Command, verb string, resp *cosmic.MutationResponse) error {
	return printResult(resp, func() error {
		if resp.Object == nil {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully %s object\n", verb)

			return nil
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully %s object '%s' (%s)\n", verb, resp.Object.Title, resp.Object.ID)

		return nil
	})
}

func printMessage(cmd *cobra.Command, resp *cosmic.MessageResponse, fallback string) error {
	return printResult(resp, func() error {
		message := fallback
		if resp.Message != "" {
			message = resp.Message
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)

		return nil
	})
}
