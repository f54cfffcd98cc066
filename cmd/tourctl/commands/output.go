package commands

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tourdesk/admin-client/internal/constants"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

func isOutputFormat(format string) bool {
	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return true
	default:
		return false
	}
}

// StandardJSONRenderer writes data to stdout as indented JSON.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data to stdout as YAML.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(constants.JSONIndentSize)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// renderStructured renders data as JSON or YAML, or calls table for the
// default table output.
func renderStructured[T any](data T, table func() error) error {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		return StandardJSONRenderer(data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(data)
	default:
		return table()
	}
}

// renderOpaque prints a response body whose shape is not known. Table output
// falls back to indented JSON.
func renderOpaque(body tourapi.OpaqueJSON) error {
	if viper.GetString("output") == constants.FormatYAML {
		var decoded interface{}

		err := json.Unmarshal(body, &decoded)
		if err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}

		return StandardYAMLRenderer(decoded)
	}

	var buf bytes.Buffer

	err := json.Indent(&buf, body, "", strings.Repeat(" ", constants.JSONIndentSize))
	if err != nil {
		return fmt.Errorf("formatting response: %w", err)
	}

	buf.WriteByte('\n')

	_, err = buf.WriteTo(os.Stdout)
	if err != nil {
		return fmt.Errorf("writing response: %w", err)
	}

	return nil
}

// printResult prints a confirmation line in table mode and the backend's
// response body otherwise.
func printResult(message string, body tourapi.OpaqueJSON) error {
	if viper.GetString("output") == constants.FormatTable || viper.GetString("output") == "" {
		_, _ = fmt.Fprintln(os.Stdout, message)

		return nil
	}

	return renderOpaque(body)
}

func truncate(value string, length int) string {
	if len(value) <= length {
		return value
	}

	return value[:length-3] + "..."
}

func formatDate(value string) string {
	if len(value) > constants.DateDisplayLength {
		return value[:constants.DateDisplayLength]
	}

	return value
}

func formatPrice(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
