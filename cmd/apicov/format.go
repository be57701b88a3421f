package main

import (
	"fmt"

	"apicov/internal/output"
)

// OutputFormat selects the CLI output rendering.
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// humanRenderer is implemented by CLI response types that have a console form.
type humanRenderer interface {
	renderHuman() string
}

// FormatResponse renders a CLI response in the requested format.
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		data, err := output.DeterministicEncodeIndented(resp, "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil
	case FormatHuman:
		if r, ok := resp.(humanRenderer); ok {
			return r.renderHuman(), nil
		}
		// Types without a console form fall back to JSON.
		return FormatResponse(resp, FormatJSON)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
