package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tourdesk/admin-client/internal/constants"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// UsersClient implements tourapi.UsersClient.
type UsersClient struct {
	requester *Requester
}

// NewUsersClient creates a new users client.
func NewUsersClient(requester *Requester) *UsersClient {
	return &UsersClient{
		requester: requester,
	}
}

// List implements tourapi.UsersClient.List.
func (c *UsersClient) List(ctx context.Context) ([]tourapi.User, error) {
	path := constants.APIPathUsers + "/GetUsers"

	envelope, err := get[tourapi.DataEnvelope[[]tourapi.User]](ctx, c.requester, path)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return envelope.Data, nil
}

// Get implements tourapi.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, id string) (*tourapi.User, error) {
	err := requiredID("user", id)
	if err != nil {
		return nil, err
	}

	path := constants.APIPathUsers + "/GetUserById/" + url.PathEscape(id)

	envelope, err := get[tourapi.DataEnvelope[*tourapi.User]](ctx, c.requester, path)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if envelope.Data == nil {
		return nil, fmt.Errorf("getting user %s: %w", id, ErrEmptyData)
	}

	return envelope.Data, nil
}

// Create implements tourapi.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, request *tourapi.CreateUserRequest) (tourapi.OpaqueJSON, error) {
	resp, err := c.requester.Request(ctx, constants.APIPathUsers, http.MethodPost, request, nil)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return unwrapData(resp), nil
}

// Update implements tourapi.UsersClient.Update.
func (c *UsersClient) Update(ctx context.Context, id string, request *tourapi.UpdateUserRequest) (tourapi.OpaqueJSON, error) {
	err := requiredID("user", id)
	if err != nil {
		return nil, err
	}

	path := constants.APIPathUsers + "/UpdateUser/" + url.PathEscape(id)

	resp, err := c.requester.Request(ctx, path, http.MethodPut, request, nil)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return unwrapData(resp), nil
}

// UpdateRole implements tourapi.UsersClient.UpdateRole. The role is sent as a
// bare JSON number.
func (c *UsersClient) UpdateRole(ctx context.Context, id string, role tourapi.UserRole) (tourapi.OpaqueJSON, error) {
	err := requiredID("user", id)
	if err != nil {
		return nil, err
	}

	path := constants.APIPathUsers + "/UpdateUserRole/" + url.PathEscape(id)

	resp, err := c.requester.Request(ctx, path, http.MethodPut, int(role), nil)
	if err != nil {
		return nil, fmt.Errorf("updating user role: %w", err)
	}

	return unwrapData(resp), nil
}

// ListByRole implements tourapi.UsersClient.ListByRole. The response shape is
// undocumented and returned as is.
func (c *UsersClient) ListByRole(ctx context.Context, role string) (tourapi.OpaqueJSON, error) {
	path := constants.APIPathUsers + "/GetUsersByRole/" + url.PathEscape(role)

	resp, err := c.requester.Request(ctx, path, http.MethodGet, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("listing users by role: %w", err)
	}

	return resp, nil
}
