package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tourdesk/admin-client/internal/constants"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// relevantClient is the operation set tags and categories share.
type relevantClient[T any] interface {
	List(ctx context.Context) ([]T, error)
	Search(ctx context.Context, name string) ([]T, error)
	Create(ctx context.Context, entity *T) (tourapi.OpaqueJSON, error)
	Update(ctx context.Context, entity *T) (tourapi.OpaqueJSON, error)
	Delete(ctx context.Context, entity *T) (tourapi.OpaqueJSON, error)
}

// relevantResource describes how a tag-like resource is built and shown.
type relevantResource[T any] struct {
	name    string
	plural  string
	client  func(tourapi.Client) relevantClient[T]
	build   func(id int, name, description string) *T
	header  []any
	row     func(T) []string
	hasDesc bool
}

// NewTagsCommand creates the tags command group.
func NewTagsCommand() *cobra.Command {
	return newRelevantCommand(relevantResource[tourapi.Tag]{
		name:   "tag",
		plural: "tags",
		client: func(client tourapi.Client) relevantClient[tourapi.Tag] {
			return client.Tags()
		},
		build: func(id int, name, _ string) *tourapi.Tag {
			return &tourapi.Tag{ID: id, Name: name}
		},
		header: []any{"ID", "Name"},
		row: func(tag tourapi.Tag) []string {
			return []string{strconv.Itoa(tag.ID), tag.Name}
		},
	})
}

// NewCategoriesCommand creates the categories command group.
func NewCategoriesCommand() *cobra.Command {
	return newRelevantCommand(relevantResource[tourapi.Category]{
		name:   "category",
		plural: "categories",
		client: func(client tourapi.Client) relevantClient[tourapi.Category] {
			return client.Categories()
		},
		build: func(id int, name, description string) *tourapi.Category {
			return &tourapi.Category{ID: id, Name: name, Description: description}
		},
		header: []any{"ID", "Name", "Description"},
		row: func(category tourapi.Category) []string {
			return []string{
				strconv.Itoa(category.ID),
				category.Name,
				truncate(category.Description, constants.DescriptionDisplayLength),
			}
		},
		hasDesc: true,
	})
}

func newRelevantCommand[T any](resource relevantResource[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:     resource.plural,
		Aliases: []string{resource.name},
		Short:   "Manage " + resource.plural,
		Long:    fmt.Sprintf("List, search and manage the %s tours are labelled with", resource.plural),
	}

	cmd.AddCommand(newRelevantListCommand(resource))
	cmd.AddCommand(newRelevantSearchCommand(resource))
	cmd.AddCommand(newRelevantCreateCommand(resource))
	cmd.AddCommand(newRelevantUpdateCommand(resource))
	cmd.AddCommand(newRelevantDeleteCommand(resource))

	return cmd
}

func newRelevantListCommand[T any](resource relevantResource[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List " + resource.plural,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client tourapi.Client) error {
				entities, err := resource.client(client).List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list %s: %w", resource.plural, err)
				}

				return renderStructured(entities, func() error {
					return outputRelevantTable(resource, entities)
				})
			})
		},
	}
}

func newRelevantSearchCommand[T any](resource relevantResource[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "search NAME",
		Short: "Search " + resource.plural + " by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client tourapi.Client) error {
				entities, err := resource.client(client).Search(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to search %s: %w", resource.plural, err)
				}

				return renderStructured(entities, func() error {
					return outputRelevantTable(resource, entities)
				})
			})
		},
	}
}

func outputRelevantTable[T any](resource relevantResource[T], entities []T) error {
	if len(entities) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "No %s found\n", resource.plural)

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header(resource.header...)

	for _, entity := range entities {
		_ = table.Append(resource.row(entity))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newRelevantCreateCommand[T any](resource relevantResource[T]) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a " + resource.name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelevantMutation(cmd, resource, resource.build(0, args[0], description),
				func(ctx context.Context, client relevantClient[T], entity *T) (tourapi.OpaqueJSON, error) {
					return client.Create(ctx, entity)
				}, "Created "+resource.name+" "+args[0])
		},
	}

	if resource.hasDesc {
		cmd.Flags().StringVar(&description, "description", "", "description")
	}

	return cmd
}

func newRelevantUpdateCommand[T any](resource relevantResource[T]) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "update ID NAME",
		Short: "Rename a " + resource.name,
		Args:  cobra.ExactArgs(constants.TwoArgumentsRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntityID(resource.name, args[0])
			if err != nil {
				return err
			}

			return runRelevantMutation(cmd, resource, resource.build(id, args[1], description),
				func(ctx context.Context, client relevantClient[T], entity *T) (tourapi.OpaqueJSON, error) {
					return client.Update(ctx, entity)
				}, "Updated "+resource.name+" "+args[0])
		},
	}

	if resource.hasDesc {
		cmd.Flags().StringVar(&description, "description", "", "description")
	}

	return cmd
}

func newRelevantDeleteCommand[T any](resource relevantResource[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID NAME",
		Short: "Delete a " + resource.name,
		Long:  "Delete a " + resource.name + ". The backend matches the entity by both ID and name.",
		Args:  cobra.ExactArgs(constants.TwoArgumentsRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntityID(resource.name, args[0])
			if err != nil {
				return err
			}

			return runRelevantMutation(cmd, resource, resource.build(id, args[1], ""),
				func(ctx context.Context, client relevantClient[T], entity *T) (tourapi.OpaqueJSON, error) {
					return client.Delete(ctx, entity)
				}, "Deleted "+resource.name+" "+args[0])
		},
	}
}

type relevantMutation[T any] func(ctx context.Context, client relevantClient[T], entity *T) (tourapi.OpaqueJSON, error)

func runRelevantMutation[T any](cmd *cobra.Command, resource relevantResource[T], entity *T, mutate relevantMutation[T], message string) error {
	err := tourapi.Validate(entity)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	return withClient(ctx, func(client tourapi.Client) error {
		resp, err := mutate(ctx, resource.client(client), entity)
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", resource.name, err)
		}

		return printResult(message, resp)
	})
}

func parseEntityID(kind, value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s ID %q: %w", kind, value, err)
	}

	return id, nil
}
