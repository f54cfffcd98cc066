package tourapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired    = errors.New("config is required")
	ErrBaseURLRequired   = errors.New("base URL is required")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrInvalidPayload    = errors.New("invalid payload")
	ErrTourIDRequired    = errors.New("tour id is required")
	ErrTourIDUnavailable = errors.New("tour id not present in create response")
	ErrImageRequired     = errors.New("an image is required to create a tour")
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
)

// FailureKind classifies why a request failed.
type FailureKind int

const (
	// FailureRequest means the request could not be built or was rejected before it was sent.
	FailureRequest FailureKind = iota
	// FailureNetwork means no response was received (connection error, timeout, cancellation).
	FailureNetwork
	// FailureStatus means the backend answered with a non-2xx status.
	FailureStatus
	// FailureDecode means the response body was not the JSON the caller expected.
	FailureDecode
)

// String implements fmt.Stringer.
func (k FailureKind) String() string {
	switch k {
	case FailureRequest:
		return "request"
	case FailureNetwork:
		return "network"
	case FailureStatus:
		return "status"
	case FailureDecode:
		return "decode"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// ProblemDetails is the RFC 7807 error body the backend returns on validation and lookup failures.
type ProblemDetails struct {
	Type     string              `json:"type,omitempty"     yaml:"type,omitempty"`
	Title    string              `json:"title,omitempty"    yaml:"title,omitempty"`
	Status   int                 `json:"status,omitempty"   yaml:"status,omitempty"`
	Detail   string              `json:"detail,omitempty"   yaml:"detail,omitempty"`
	Instance string              `json:"instance,omitempty" yaml:"instance,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"   yaml:"errors,omitempty"`
}

// Error implements the error interface.
func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}

	if len(p.Errors) > 0 {
		fields := make([]string, 0, len(p.Errors))
		for field, messages := range p.Errors {
			fields = append(fields, field+": "+strings.Join(messages, "; "))
		}

		return fmt.Sprintf("%s (%s)", p.Title, strings.Join(fields, ", "))
	}

	return p.Title
}

// ParseProblemDetails parses an error body. It returns nil when the body is not a problem document.
func ParseProblemDetails(data []byte) *ProblemDetails {
	var problem ProblemDetails

	err := json.Unmarshal(data, &problem)
	if err != nil || (problem.Title == "" && problem.Detail == "" && len(problem.Errors) == 0) {
		return nil
	}

	return &problem
}

// RequestError is the single failure signal produced for a request. The original
// cause is kept in Err and reachable through errors.Is and errors.As.
type RequestError struct {
	Method     string
	Path       string
	Kind       FailureKind
	StatusCode int
	Body       []byte
	Problem    *ProblemDetails
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	prefix := fmt.Sprintf("%s %s: %s failure", e.Method, e.Path, e.Kind)

	if e.Kind == FailureStatus {
		prefix = fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)

		if e.Problem != nil {
			return prefix + ": " + e.Problem.Error()
		}
	}

	if e.Err != nil {
		return prefix + ": " + e.Err.Error()
	}

	return prefix
}

// Unwrap returns the original cause.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// AsRequestError returns the RequestError in err's chain, if any.
func AsRequestError(err error) (*RequestError, bool) {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr, true
	}

	return nil, false
}

// IsNotFound checks if the error is a 404 from the backend.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 from the backend.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsNetworkFailure checks if no response was received for the request.
func IsNetworkFailure(err error) bool {
	reqErr, ok := AsRequestError(err)

	return ok && reqErr.Kind == FailureNetwork
}

func hasStatus(err error, status int) bool {
	reqErr, ok := AsRequestError(err)

	return ok && reqErr.Kind == FailureStatus && reqErr.StatusCode == status
}
