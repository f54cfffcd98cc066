package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tourdesk/admin-client/internal/constants"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// ServicesClient implements tourapi.ServicesClient.
type ServicesClient struct {
	requester *Requester
}

// NewServicesClient creates a new services client.
func NewServicesClient(requester *Requester) *ServicesClient {
	return &ServicesClient{
		requester: requester,
	}
}

// List implements tourapi.ServicesClient.List.
func (c *ServicesClient) List(ctx context.Context) ([]tourapi.Service, error) {
	path := constants.APIPathServices + "/GetServices"

	envelope, err := get[tourapi.DataEnvelope[[]tourapi.Service]](ctx, c.requester, path)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}

	return envelope.Data, nil
}

// Get implements tourapi.ServicesClient.Get.
func (c *ServicesClient) Get(ctx context.Context, id string) (*tourapi.Service, error) {
	err := requiredID("service", id)
	if err != nil {
		return nil, err
	}

	path := constants.APIPathServices + "/GetServiceById/" + url.PathEscape(id)

	envelope, err := get[tourapi.DataEnvelope[*tourapi.Service]](ctx, c.requester, path)
	if err != nil {
		return nil, fmt.Errorf("getting service: %w", err)
	}

	if envelope.Data == nil {
		return nil, fmt.Errorf("getting service %s: %w", id, ErrEmptyData)
	}

	return envelope.Data, nil
}

// ListByTour implements tourapi.ServicesClient.ListByTour.
func (c *ServicesClient) ListByTour(ctx context.Context, tourID string) ([]tourapi.Service, error) {
	err := requiredID("tour", tourID)
	if err != nil {
		return nil, err
	}

	path := constants.APIPathServices + "/GetServiceByTourId/" + url.PathEscape(tourID)

	envelope, err := get[tourapi.DataEnvelope[[]tourapi.Service]](ctx, c.requester, path)
	if err != nil {
		return nil, fmt.Errorf("listing services for tour: %w", err)
	}

	return envelope.Data, nil
}

// Create implements tourapi.ServicesClient.Create.
func (c *ServicesClient) Create(ctx context.Context, request *tourapi.ServiceRequest) (tourapi.OpaqueJSON, error) {
	path := constants.APIPathServices + "/CreateService"

	resp, err := c.requester.Request(ctx, path, http.MethodPost, request, nil)
	if err != nil {
		return nil, fmt.Errorf("creating service: %w", err)
	}

	return unwrapData(resp), nil
}

// Update implements tourapi.ServicesClient.Update.
func (c *ServicesClient) Update(ctx context.Context, id string, request *tourapi.ServiceRequest) (tourapi.OpaqueJSON, error) {
	err := requiredID("service", id)
	if err != nil {
		return nil, err
	}

	path := constants.APIPathServices + "/UpdateService/" + url.PathEscape(id)

	resp, err := c.requester.Request(ctx, path, http.MethodPut, request, nil)
	if err != nil {
		return nil, fmt.Errorf("updating service: %w", err)
	}

	return unwrapData(resp), nil
}

// UpdateTourServices implements tourapi.ServicesClient.UpdateTourServices. The
// given ids replace the services currently assigned to the tour.
func (c *ServicesClient) UpdateTourServices(ctx context.Context, tourID string, request *tourapi.TourServicesRequest) (tourapi.OpaqueJSON, error) {
	err := requiredID("tour", tourID)
	if err != nil {
		return nil, err
	}

	path := constants.APIPathServices + "/UpdateTourService/" + url.PathEscape(tourID)

	body := &tourapi.TourServicesRequest{ServiceIDs: nonNil(request.ServiceIDs)}

	resp, err := c.requester.Request(ctx, path, http.MethodPut, body, nil)
	if err != nil {
		return nil, fmt.Errorf("updating tour services: %w", err)
	}

	return unwrapData(resp), nil
}
