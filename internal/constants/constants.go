package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Client defaults.
const (
	// DefaultBaseURL is the backend the client talks to when none is configured.
	DefaultBaseURL = "http://localhost:8080/api"

	// DefaultHTTPTimeout is the fixed per-request timeout.
	DefaultHTTPTimeout = 5 * time.Second

	// DefaultUserAgent identifies the client to the backend.
	DefaultUserAgent = "tourdesk-admin-client/1.0.0"

	// ConfigDirName is the directory under $HOME holding CLI state.
	ConfigDirName = ".tourctl"

	// ConfigFileName is the CLI configuration file inside ConfigDirName.
	ConfigFileName = "config.yml"

	// EnvPrefix prefixes environment variables read by the CLI.
	EnvPrefix = "TOURCTL"
)

// HTTP header values.
const (
	// MediaTypeJSON is sent as Accept on every request and as Content-Type for JSON bodies.
	MediaTypeJSON = "application/json"

	// MediaTypeProblemJSON is the RFC 7807 problem document media type.
	MediaTypeProblemJSON = "application/problem+json"
)

// API path prefixes.
const (
	APIPathTours      = "/tour"
	APIPathServices   = "/service"
	APIPathUsers      = "/user"
	APIPathBookings   = "/book"
	APIPathTags       = "/TourRelevent/tags"
	APIPathCategories = "/TourRelevent/categories"
	APIPathAuth       = "/auth"
)

// Multipart form fields of the tour create and update endpoints.
const (
	FormFieldName        = "Name"
	FormFieldDestination = "Destination"
	FormFieldPrice       = "Price"
	FormFieldStartDate   = "StartDate"
	FormFieldEndDate     = "EndDate"
	FormFieldDescription = "Description"
	FormFieldImage       = "Image"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// DescriptionDisplayLength is the default length for displaying descriptions.
	DescriptionDisplayLength = 60

	// DateDisplayLength keeps the YYYY-MM-DD prefix of timestamps.
	DateDisplayLength = 10
)

// Command argument counts.
const (
	// TwoArgumentsRequired indicates commands requiring exactly 2 arguments.
	TwoArgumentsRequired = 2
)
