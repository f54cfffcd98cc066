package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// NewBookingsCommand creates the bookings command group.
func NewBookingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookings",
		Aliases: []string{"booking"},
		Short:   "Manage bookings",
		Long:    "List and create tour bookings",
	}

	cmd.AddCommand(newBookingsListCommand())
	cmd.AddCommand(newBookingsGetCommand())
	cmd.AddCommand(newBookingsCreateCommand())
	cmd.AddCommand(newBookingsByUserCommand())

	return cmd
}

func newBookingsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookings with tour and user details",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client tourapi.Client) error {
				bookings, err := client.Bookings().ListWithDetails(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list bookings: %w", err)
				}

				return renderStructured(bookings, func() error {
					return outputBookingsTable(bookings)
				})
			})
		},
	}
}

func newBookingsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BOOKING_ID",
		Short: "Get booking details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client tourapi.Client) error {
				booking, err := client.Bookings().Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get booking: %w", err)
				}

				return renderStructured(booking, func() error {
					return outputBookingsTable([]tourapi.Booking{*booking})
				})
			})
		},
	}
}

func newBookingsByUserCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "by-user USERNAME",
		Short: "List the bookings of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client tourapi.Client) error {
				bookings, err := client.Bookings().ListByUsername(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to list bookings for user: %w", err)
				}

				return renderStructured(bookings, func() error {
					return outputBookingsTable(bookings)
				})
			})
		},
	}
}

func outputBookingsTable(bookings []tourapi.Booking) error {
	if len(bookings) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No bookings found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "User", "Tour", "Date", "Quantity", "Total", "Status")

	for _, booking := range bookings {
		tour := booking.TourName
		if tour == "" {
			tour = booking.TourID
		}

		_ = table.Append([]string{
			booking.ID,
			formatConfigValue(booking.Username),
			formatConfigValue(tour),
			formatDate(booking.BookingDate),
			strconv.Itoa(booking.Quantity),
			formatPrice(booking.TotalPrice),
			formatConfigValue(booking.Status),
		})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newBookingsCreateCommand() *cobra.Command {
	request := &tourapi.CreateBookingRequest{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Book a tour for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := tourapi.Validate(request)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			return withClient(ctx, func(client tourapi.Client) error {
				resp, err := client.Bookings().Create(ctx, request)
				if err != nil {
					return fmt.Errorf("failed to create booking: %w", err)
				}

				return printResult(fmt.Sprintf("Booked tour %s for %s", request.TourID, request.Username), resp)
			})
		},
	}

	cmd.Flags().StringVarP(&request.Username, "username", "u", "", "username")
	cmd.Flags().StringVar(&request.TourID, "tour", "", "tour ID")
	cmd.Flags().StringVar(&request.BookingDate, "date", "", "booking date (YYYY-MM-DD)")

	return cmd
}
