package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tourdesk/admin-client/internal/constants"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// NewToursCommand creates the tours command group.
func NewToursCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tours",
		Aliases: []string{"tour"},
		Short:   "Manage tours",
		Long:    "List, create and edit tours and their categories, tags and services",
	}

	cmd.AddCommand(newToursListCommand())
	cmd.AddCommand(newToursGetCommand())
	cmd.AddCommand(newToursCreateCommand())
	cmd.AddCommand(newToursUpdateCommand())
	cmd.AddCommand(newToursSaveCommand())
	cmd.AddCommand(newToursServicesCommand())

	return cmd
}

func newToursListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tours",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client tourapi.Client) error {
				tours, err := client.Tours().List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list tours: %w", err)
				}

				return renderStructured(tours, func() error {
					return outputToursTable(tours)
				})
			})
		},
	}
}

func outputToursTable(tours []tourapi.Tour) error {
	if len(tours) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No tours found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Destination", "Price", "Start", "End")

	for _, tour := range tours {
		_ = table.Append([]string{
			tour.ID,
			tour.Name,
			tour.Destination,
			formatPrice(tour.Price),
			formatDate(tour.StartDate),
			formatDate(tour.EndDate),
		})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newToursGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TOUR_ID",
		Short: "Get tour details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client tourapi.Client) error {
				tour, err := client.Tours().Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get tour: %w", err)
				}

				return renderStructured(tour, func() error {
					return outputTourTable(tour)
				})
			})
		},
	}
}

func outputTourTable(tour *tourapi.Tour) error {
	categories := make([]string, 0, len(tour.Categories))
	for _, category := range tour.Categories {
		categories = append(categories, category.Name)
	}

	tags := make([]string, 0, len(tour.Tags))
	for _, tag := range tour.Tags {
		tags = append(tags, tag.Name)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append([]string{"ID", tour.ID})
	_ = table.Append([]string{"Name", tour.Name})
	_ = table.Append([]string{"Destination", tour.Destination})
	_ = table.Append([]string{"Price", formatPrice(tour.Price)})
	_ = table.Append([]string{"Start", formatDate(tour.StartDate)})
	_ = table.Append([]string{"End", formatDate(tour.EndDate)})
	_ = table.Append([]string{"Description", truncate(tour.Description, constants.DescriptionDisplayLength)})
	_ = table.Append([]string{"Image", formatConfigValue(tour.ImageURL)})
	_ = table.Append([]string{"Categories", formatConfigValue(strings.Join(categories, ", "))})
	_ = table.Append([]string{"Tags", formatConfigValue(strings.Join(tags, ", "))})

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// tourFlags are the flags shared by the tour editing commands.
type tourFlags struct {
	name        string
	destination string
	price       float64
	startDate   string
	endDate     string
	description string
	image       string
	categories  []int
	tags        []int
	services    []string
}

func (f *tourFlags) registerFields(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "tour name")
	cmd.Flags().StringVar(&f.destination, "destination", "", "destination")
	cmd.Flags().Float64Var(&f.price, "price", 0, "price")
	cmd.Flags().StringVar(&f.startDate, "start-date", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.endDate, "end-date", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.image, "image", "", "path to the tour image")
}

func (f *tourFlags) registerAssociations(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&f.categories, "categories", nil, "category IDs, replaces the current set")
	cmd.Flags().IntSliceVar(&f.tags, "tags", nil, "tag IDs, replaces the current set")
	cmd.Flags().StringSliceVar(&f.services, "services", nil, "service IDs, replaces the current set")
}

// applyFields overwrites fields with the flags the user passed.
func (f *tourFlags) applyFields(cmd *cobra.Command, fields *tourapi.TourFields) {
	if cmd.Flags().Changed("name") {
		fields.Name = f.name
	}

	if cmd.Flags().Changed("destination") {
		fields.Destination = f.destination
	}

	if cmd.Flags().Changed("price") {
		fields.Price = f.price
	}

	if cmd.Flags().Changed("start-date") {
		fields.StartDate = f.startDate
	}

	if cmd.Flags().Changed("end-date") {
		fields.EndDate = f.endDate
	}

	if cmd.Flags().Changed("description") {
		fields.Description = f.description
	}
}

// compositeUpdate builds the save request. Categories and tags are sent as
// one group: passing either flag replaces both, keeping the current value of
// the other.
func (f *tourFlags) compositeUpdate(cmd *cobra.Command, tourID string, current *tourapi.Tour) (*tourapi.TourCompositeUpdate, error) {
	update := &tourapi.TourCompositeUpdate{TourID: tourID}

	if current != nil {
		update.Core = tourapi.FieldsFromTour(current)
		update.CategoryIDs = current.CategoryIDs()
		update.TagIDs = current.TagIDs()
	}

	f.applyFields(cmd, &update.Core)

	image, err := loadUpload(f.image)
	if err != nil {
		return nil, err
	}

	update.Image = image

	if cmd.Flags().Changed("categories") {
		update.CategoryIDs = f.categories
		update.AssociationsChanged = true
	}

	if cmd.Flags().Changed("tags") {
		update.TagIDs = f.tags
		update.AssociationsChanged = true
	}

	if cmd.Flags().Changed("services") {
		update.ServiceIDs = f.services
		update.ServicesChanged = true
	}

	return update, nil
}

// loadUpload reads an image from disk. An empty path yields nil.
func loadUpload(path string) (*tourapi.Upload, error) {
	if path == "" {
		return nil, nil //nolint:nilnil // no image selected
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	return &tourapi.Upload{
		Filename:    filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

func newToursCreateCommand() *cobra.Command {
	flags := &tourFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tour",
		Long: "Create a tour from the given fields and image. Categories, tags and services, " +
			"when given, are assigned to the new tour afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.image == "" {
				return constants.ErrImageFileRequired
			}

			update, err := flags.compositeUpdate(cmd, "", nil)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			return withClient(ctx, func(client tourapi.Client) error {
				return runTourSave(ctx, client, update)
			})
		},
	}

	flags.registerFields(cmd)
	flags.registerAssociations(cmd)

	return cmd
}

func newToursUpdateCommand() *cobra.Command {
	flags := &tourFlags{}

	cmd := &cobra.Command{
		Use:   "update TOUR_ID",
		Short: "Update a tour's fields",
		Long:  "Update the core fields of a tour. Fields not passed keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withClient(ctx, func(client tourapi.Client) error {
				tour, err := client.Tours().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get tour: %w", err)
				}

				fields := tourapi.FieldsFromTour(tour)
				flags.applyFields(cmd, &fields)

				err = tourapi.Validate(&fields)
				if err != nil {
					return err
				}

				image, err := loadUpload(flags.image)
				if err != nil {
					return err
				}

				resp, err := client.Tours().Update(ctx, args[0], &fields, image)
				if err != nil {
					return fmt.Errorf("failed to update tour: %w", err)
				}

				return printResult("Updated tour "+args[0], resp)
			})
		},
	}

	flags.registerFields(cmd)

	return cmd
}

func newToursSaveCommand() *cobra.Command {
	flags := &tourFlags{}

	cmd := &cobra.Command{
		Use:   "save TOUR_ID",
		Short: "Save a tour with its categories, tags and services",
		Long: "Save the core fields, then the categories and tags, then the services of a tour. " +
			"Steps run in order and stop at the first failure; steps already applied are kept.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withClient(ctx, func(client tourapi.Client) error {
				return saveExistingTour(ctx, cmd, client, flags, args[0])
			})
		},
	}

	flags.registerFields(cmd)
	flags.registerAssociations(cmd)

	return cmd
}

// saveExistingTour reads the tour and saves it with the flag overrides using
// the same client, so both calls share one response cache and cookie jar.
func saveExistingTour(ctx context.Context, cmd *cobra.Command, client tourapi.Client, flags *tourFlags, tourID string) error {
	tour, err := client.Tours().Get(ctx, tourID)
	if err != nil {
		return fmt.Errorf("failed to get tour: %w", err)
	}

	update, err := flags.compositeUpdate(cmd, tourID, tour)
	if err != nil {
		return err
	}

	return runTourSave(ctx, client, update)
}

func runTourSave(ctx context.Context, client tourapi.Client, update *tourapi.TourCompositeUpdate) error {
	saver := tourapi.NewTourSaver(client.Tours(), client.Services())

	report, err := saver.Save(ctx, update)

	view := newSaveReportView(report)

	renderErr := renderStructured(view, func() error {
		return outputSaveReportTable(view)
	})
	if renderErr != nil {
		return renderErr
	}

	var saveErr *tourapi.SaveError
	if errors.As(err, &saveErr) && saveErr.PartiallyApplied() {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: the tour was partially saved; applied steps are not rolled back\n")
	}

	return err
}

type stepView struct {
	Step     string             `json:"step"               yaml:"step"`
	Status   string             `json:"status"             yaml:"status"`
	Duration string             `json:"duration,omitempty" yaml:"duration,omitempty"`
	Error    string             `json:"error,omitempty"    yaml:"error,omitempty"`
	Response tourapi.OpaqueJSON `json:"response,omitempty" yaml:"-"`
}

type saveReportView struct {
	TourID string     `json:"tour_id,omitempty" yaml:"tour_id,omitempty"`
	Steps  []stepView `json:"steps"             yaml:"steps"`
}

func newSaveReportView(report *tourapi.SaveReport) *saveReportView {
	view := &saveReportView{TourID: report.TourID}

	for _, result := range report.Steps {
		step := stepView{
			Step:     string(result.Step),
			Status:   string(result.Status),
			Response: result.Response,
		}

		if result.Status == tourapi.StepApplied || result.Status == tourapi.StepFailed {
			step.Duration = result.Duration.String()
		}

		if result.Error != nil {
			step.Error = result.Error.Error()
		}

		view.Steps = append(view.Steps, step)
	}

	return view
}

func outputSaveReportTable(report *saveReportView) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Step", "Status", "Duration", "Error")

	for _, step := range report.Steps {
		_ = table.Append([]string{step.Step, step.Status, step.Duration, step.Error})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if report.TourID != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Tour: %s\n", report.TourID)
	}

	return nil
}

func newToursServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Manage the services assigned to a tour",
	}

	cmd.AddCommand(newToursServicesListCommand())
	cmd.AddCommand(newToursServicesSetCommand())

	return cmd
}

func newToursServicesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list TOUR_ID",
		Short: "List the services of a tour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServicesByTour(cmd.Context(), args[0])
		},
	}
}

func newToursServicesSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set TOUR_ID SERVICE_ID...",
		Short: "Replace the services of a tour",
		Long:  "Replace the services assigned to a tour. Pass no service IDs to clear them.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withClient(ctx, func(client tourapi.Client) error {
				resp, err := client.Services().UpdateTourServices(ctx, args[0], &tourapi.TourServicesRequest{
					ServiceIDs: args[1:],
				})
				if err != nil {
					return fmt.Errorf("failed to update tour services: %w", err)
				}

				return printResult(fmt.Sprintf("Assigned %d services to tour %s", len(args)-1, args[0]), resp)
			})
		},
	}

	return cmd
}
