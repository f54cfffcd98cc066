package tourapi_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesk/admin-client/pkg/tourapi"
)

func TestParseProblemDetails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		wantOK bool
		want   string
	}{
		{
			name:   "detail",
			body:   `{"title":"Not Found","status":404,"detail":"tour t1 does not exist"}`,
			wantOK: true,
			want:   "Not Found: tour t1 does not exist",
		},
		{
			name:   "validation errors",
			body:   `{"title":"One or more validation errors occurred.","status":400,"errors":{"Name":["The Name field is required."]}}`,
			wantOK: true,
			want:   "One or more validation errors occurred. (Name: The Name field is required.)",
		},
		{name: "plain object", body: `{"message":"nope"}`},
		{name: "not json", body: `<html>oops</html>`},
		{name: "empty", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			problem := tourapi.ParseProblemDetails([]byte(tt.body))
			if !tt.wantOK {
				assert.Nil(t, problem)

				return
			}

			require.NotNil(t, problem)
			assert.Equal(t, tt.want, problem.Error())
		})
	}
}

func TestRequestError(t *testing.T) {
	t.Parallel()

	t.Run("status with problem", func(t *testing.T) {
		t.Parallel()

		err := &tourapi.RequestError{
			Method:     http.MethodGet,
			Path:       "/tour/GetTourById/t1",
			Kind:       tourapi.FailureStatus,
			StatusCode: http.StatusNotFound,
			Problem:    &tourapi.ProblemDetails{Title: "Not Found", Detail: "missing"},
			Err:        fmt.Errorf("%w: %d", tourapi.ErrUnexpectedStatus, http.StatusNotFound),
		}

		assert.Equal(t, "GET /tour/GetTourById/t1: status 404: Not Found: missing", err.Error())
		assert.ErrorIs(t, err, tourapi.ErrUnexpectedStatus)
		assert.True(t, tourapi.IsNotFound(err))
		assert.False(t, tourapi.IsUnauthorized(err))
		assert.False(t, tourapi.IsNetworkFailure(err))
	})

	t.Run("wrapped network failure", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection refused")
		err := fmt.Errorf("listing tours: %w", &tourapi.RequestError{
			Method: http.MethodGet,
			Path:   "/tour/GetTours",
			Kind:   tourapi.FailureNetwork,
			Err:    cause,
		})

		requestErr, ok := tourapi.AsRequestError(err)
		require.True(t, ok)
		assert.Equal(t, tourapi.FailureNetwork, requestErr.Kind)
		assert.ErrorIs(t, err, cause)
		assert.True(t, tourapi.IsNetworkFailure(err))
		assert.Contains(t, err.Error(), "network failure: connection refused")
	})

	t.Run("status helpers", func(t *testing.T) {
		t.Parallel()

		unauthorized := &tourapi.RequestError{Kind: tourapi.FailureStatus, StatusCode: http.StatusUnauthorized}
		forbidden := &tourapi.RequestError{Kind: tourapi.FailureStatus, StatusCode: http.StatusForbidden}

		assert.True(t, tourapi.IsUnauthorized(unauthorized))
		assert.True(t, tourapi.IsForbidden(forbidden))
		assert.False(t, tourapi.IsForbidden(errors.New("plain")))
	})
}

func TestFailureKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "request", tourapi.FailureRequest.String())
	assert.Equal(t, "network", tourapi.FailureNetwork.String())
	assert.Equal(t, "status", tourapi.FailureStatus.String())
	assert.Equal(t, "decode", tourapi.FailureDecode.String())
	assert.Equal(t, "FailureKind(9)", tourapi.FailureKind(9).String())
}
