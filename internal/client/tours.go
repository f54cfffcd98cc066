package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tourdesk/admin-client/internal/constants"
	internalhttp "github.com/tourdesk/admin-client/internal/http"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// ToursClient implements tourapi.ToursClient.
type ToursClient struct {
	requester *Requester
}

// NewToursClient creates a new tours client.
func NewToursClient(requester *Requester) *ToursClient {
	return &ToursClient{
		requester: requester,
	}
}

// List implements tourapi.ToursClient.List.
func (c *ToursClient) List(ctx context.Context) ([]tourapi.Tour, error) {
	path := constants.APIPathTours + "/GetTours"

	envelope, err := get[tourapi.DataEnvelope[[]tourapi.Tour]](ctx, c.requester, path)
	if err != nil {
		return nil, fmt.Errorf("listing tours: %w", err)
	}

	return envelope.Data, nil
}

// Get implements tourapi.ToursClient.Get.
func (c *ToursClient) Get(ctx context.Context, id string) (*tourapi.Tour, error) {
	err := requiredID("tour", id)
	if err != nil {
		return nil, err
	}

	path := constants.APIPathTours + "/GetTourById/" + url.PathEscape(id)

	envelope, err := get[tourapi.DataEnvelope[*tourapi.Tour]](ctx, c.requester, path)
	if err != nil {
		return nil, fmt.Errorf("getting tour: %w", err)
	}

	if envelope.Data == nil {
		return nil, fmt.Errorf("getting tour %s: %w", id, ErrEmptyData)
	}

	return envelope.Data, nil
}

// Create implements tourapi.ToursClient.Create. The image is required.
func (c *ToursClient) Create(ctx context.Context, fields *tourapi.TourFields, image *tourapi.Upload) (tourapi.OpaqueJSON, error) {
	if image == nil {
		return nil, fmt.Errorf("creating tour: %w", tourapi.ErrImageRequired)
	}

	path := constants.APIPathTours + "/CreateTour"

	resp, err := c.requester.Request(ctx, path, http.MethodPost, nil, tourForm(fields, image))
	if err != nil {
		return nil, fmt.Errorf("creating tour: %w", err)
	}

	return unwrapData(resp), nil
}

// Update implements tourapi.ToursClient.Update. A nil image keeps the current one.
func (c *ToursClient) Update(ctx context.Context, id string, fields *tourapi.TourFields, image *tourapi.Upload) (tourapi.OpaqueJSON, error) {
	err := requiredID("tour", id)
	if err != nil {
		return nil, err
	}

	path := constants.APIPathTours + "/UpdateTour/" + url.PathEscape(id)

	resp, err := c.requester.Request(ctx, path, http.MethodPut, nil, tourForm(fields, image))
	if err != nil {
		return nil, fmt.Errorf("updating tour: %w", err)
	}

	return unwrapData(resp), nil
}

// UpdateCategoriesAndTags implements tourapi.ToursClient.UpdateCategoriesAndTags.
func (c *ToursClient) UpdateCategoriesAndTags(ctx context.Context, id string, request *tourapi.TourCategoriesAndTagsRequest) (tourapi.OpaqueJSON, error) {
	err := requiredID("tour", id)
	if err != nil {
		return nil, err
	}

	path := constants.APIPathTours + "/UpdateTourCategoriesAndTags/" + url.PathEscape(id)

	body := &tourapi.TourCategoriesAndTagsRequest{
		CategoryIDs: nonNil(request.CategoryIDs),
		TagIDs:      nonNil(request.TagIDs),
	}

	resp, err := c.requester.Request(ctx, path, http.MethodPut, body, nil)
	if err != nil {
		return nil, fmt.Errorf("updating tour categories and tags: %w", err)
	}

	return resp, nil
}

// tourForm builds the multipart body shared by create and update. Field order
// is fixed; Image is appended only when present.
func tourForm(fields *tourapi.TourFields, image *tourapi.Upload) *internalhttp.Form {
	form := internalhttp.NewForm().
		AddField(constants.FormFieldName, fields.Name).
		AddField(constants.FormFieldDestination, fields.Destination).
		AddField(constants.FormFieldPrice, strconv.FormatFloat(fields.Price, 'f', -1, 64)).
		AddField(constants.FormFieldStartDate, fields.StartDate).
		AddField(constants.FormFieldEndDate, fields.EndDate).
		AddField(constants.FormFieldDescription, fields.Description)

	if image != nil {
		form.AddFile(constants.FormFieldImage, image)
	}

	return form
}

// nonNil makes empty selections encode as [] rather than null.
func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}

	return values
}
