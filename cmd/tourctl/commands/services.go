package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tourdesk/admin-client/internal/constants"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// NewServicesCommand creates the services command group.
func NewServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service"},
		Short:   "Manage tour services",
		Long:    "List and manage the add-on services offered with tours",
	}

	cmd.AddCommand(newServicesListCommand())
	cmd.AddCommand(newServicesGetCommand())
	cmd.AddCommand(newServicesCreateCommand())
	cmd.AddCommand(newServicesUpdateCommand())
	cmd.AddCommand(newServicesByTourCommand())

	return cmd
}

func newServicesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List services",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client tourapi.Client) error {
				services, err := client.Services().List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list services: %w", err)
				}

				return renderStructured(services, func() error {
					return outputServicesTable(services)
				})
			})
		},
	}
}

func newServicesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SERVICE_ID",
		Short: "Get service details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client tourapi.Client) error {
				service, err := client.Services().Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get service: %w", err)
				}

				return renderStructured(service, func() error {
					return outputServicesTable([]tourapi.Service{*service})
				})
			})
		},
	}
}

func newServicesByTourCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "by-tour TOUR_ID",
		Short: "List the services of a tour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServicesByTour(cmd.Context(), args[0])
		},
	}
}

func runServicesByTour(ctx context.Context, tourID string) error {
	return withClient(ctx, func(client tourapi.Client) error {
		services, err := client.Services().ListByTour(ctx, tourID)
		if err != nil {
			return fmt.Errorf("failed to list services for tour: %w", err)
		}

		return renderStructured(services, func() error {
			return outputServicesTable(services)
		})
	})
}

func outputServicesTable(services []tourapi.Service) error {
	if len(services) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No services found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Price", "Tour", "Description")

	for _, service := range services {
		_ = table.Append([]string{
			service.ID,
			service.Name,
			formatPrice(service.Price),
			formatConfigValue(service.TourID),
			truncate(service.Description, constants.DescriptionDisplayLength),
		})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

type serviceFlags struct {
	name        string
	description string
	price       float64
	tourID      string
}

func (f *serviceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "service name")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().Float64Var(&f.price, "price", 0, "price")
	cmd.Flags().StringVar(&f.tourID, "tour", "", "tour ID")
}

func (f *serviceFlags) apply(cmd *cobra.Command, request *tourapi.ServiceRequest) {
	if cmd.Flags().Changed("name") {
		request.Name = f.name
	}

	if cmd.Flags().Changed("description") {
		request.Description = f.description
	}

	if cmd.Flags().Changed("price") {
		request.Price = f.price
	}

	if cmd.Flags().Changed("tour") {
		request.TourID = f.tourID
	}
}

func newServicesCreateCommand() *cobra.Command {
	flags := &serviceFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a service",
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &tourapi.ServiceRequest{}
			flags.apply(cmd, request)

			err := tourapi.Validate(request)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			return withClient(ctx, func(client tourapi.Client) error {
				resp, err := client.Services().Create(ctx, request)
				if err != nil {
					return fmt.Errorf("failed to create service: %w", err)
				}

				return printResult("Created service "+request.Name, resp)
			})
		},
	}

	flags.register(cmd)

	return cmd
}

func newServicesUpdateCommand() *cobra.Command {
	flags := &serviceFlags{}

	cmd := &cobra.Command{
		Use:   "update SERVICE_ID",
		Short: "Update a service",
		Long:  "Update a service. Fields not passed keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withClient(ctx, func(client tourapi.Client) error {
				current, err := client.Services().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get service: %w", err)
				}

				request := &tourapi.ServiceRequest{
					Name:        current.Name,
					Description: current.Description,
					Price:       current.Price,
					TourID:      current.TourID,
				}
				flags.apply(cmd, request)

				err = tourapi.Validate(request)
				if err != nil {
					return err
				}

				resp, err := client.Services().Update(ctx, args[0], request)
				if err != nil {
					return fmt.Errorf("failed to update service: %w", err)
				}

				return printResult("Updated service "+args[0], resp)
			})
		},
	}

	flags.register(cmd)

	return cmd
}
