package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tourdesk/admin-client/internal/constants"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// BookingsClient implements tourapi.BookingsClient.
type BookingsClient struct {
	requester *Requester
}

// NewBookingsClient creates a new bookings client.
func NewBookingsClient(requester *Requester) *BookingsClient {
	return &BookingsClient{
		requester: requester,
	}
}

// Get implements tourapi.BookingsClient.Get.
func (c *BookingsClient) Get(ctx context.Context, id string) (*tourapi.Booking, error) {
	err := requiredID("booking", id)
	if err != nil {
		return nil, err
	}

	path := constants.APIPathBookings + "/GetById/" + url.PathEscape(id)

	envelope, err := get[tourapi.DataEnvelope[*tourapi.Booking]](ctx, c.requester, path)
	if err != nil {
		return nil, fmt.Errorf("getting booking: %w", err)
	}

	if envelope.Data == nil {
		return nil, fmt.Errorf("getting booking %s: %w", id, ErrEmptyData)
	}

	return envelope.Data, nil
}

// Create implements tourapi.BookingsClient.Create.
func (c *BookingsClient) Create(ctx context.Context, request *tourapi.CreateBookingRequest) (tourapi.OpaqueJSON, error) {
	resp, err := c.requester.Request(ctx, constants.APIPathBookings, http.MethodPost, request, nil)
	if err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	return unwrapData(resp), nil
}

// ListByUsername implements tourapi.BookingsClient.ListByUsername.
func (c *BookingsClient) ListByUsername(ctx context.Context, username string) ([]tourapi.Booking, error) {
	path := constants.APIPathBookings + "/GetBookByUsername/" + url.PathEscape(username)

	envelope, err := get[tourapi.DataEnvelope[[]tourapi.Booking]](ctx, c.requester, path)
	if err != nil {
		return nil, fmt.Errorf("listing bookings for user: %w", err)
	}

	return envelope.Data, nil
}

// ListWithDetails implements tourapi.BookingsClient.ListWithDetails.
func (c *BookingsClient) ListWithDetails(ctx context.Context) ([]tourapi.Booking, error) {
	path := constants.APIPathBookings + "/GetBooksWithDetails"

	envelope, err := get[tourapi.DataEnvelope[[]tourapi.Booking]](ctx, c.requester, path)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}

	return envelope.Data, nil
}
