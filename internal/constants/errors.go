package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIConfigured  = errors.New("no API endpoint configured, use --api or 'tourctl config set api <url>'")
	ErrInvalidAPIURL    = errors.New("invalid API endpoint URL")
	ErrUnknownConfigKey = errors.New("unknown configuration key")
)

// Validation errors.
var (
	ErrInvalidRole       = errors.New("invalid role, expected customer, admin, 0 or 1")
	ErrInvalidOutput     = errors.New("invalid output format, expected table, json or yaml")
	ErrNothingToSave     = errors.New("nothing to save, pass fields, --categories, --tags or --services")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrUsernameRequired  = errors.New("username is required")
	ErrImageFileRequired = errors.New("--image is required when creating a tour")
)
