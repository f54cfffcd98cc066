package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tourdesk/admin-client/internal/constants"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// AuthClient implements tourapi.AuthClient. The backend answers with session
// cookies, which the transport's cookie jar keeps for later calls.
type AuthClient struct {
	requester *Requester
}

// NewAuthClient creates a new auth client.
func NewAuthClient(requester *Requester) *AuthClient {
	return &AuthClient{
		requester: requester,
	}
}

// Login implements tourapi.AuthClient.Login.
func (c *AuthClient) Login(ctx context.Context, credentials *tourapi.Credentials) (tourapi.OpaqueJSON, error) {
	resp, err := c.requester.Request(ctx, constants.APIPathAuth+"/login", http.MethodPost, credentials, nil)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	return resp, nil
}

// Register implements tourapi.AuthClient.Register.
func (c *AuthClient) Register(ctx context.Context, credentials *tourapi.Credentials) (tourapi.OpaqueJSON, error) {
	resp, err := c.requester.Request(ctx, constants.APIPathAuth+"/register", http.MethodPost, credentials, nil)
	if err != nil {
		return nil, fmt.Errorf("registering: %w", err)
	}

	return resp, nil
}

// Logout implements tourapi.AuthClient.Logout.
func (c *AuthClient) Logout(ctx context.Context) (tourapi.OpaqueJSON, error) {
	resp, err := c.requester.Request(ctx, constants.APIPathAuth+"/logout", http.MethodPost, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("logging out: %w", err)
	}

	return resp, nil
}
