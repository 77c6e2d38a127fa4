package st4

import (
	"fmt"
	"strconv"
	"strings"
)

// splitFields splits a line on commas the way the exporter's consumers
// always have: trailing empty fields are dropped, but a line with no
// commas at all is a single field even when empty.
func splitFields(line string) []string {
	if !strings.Contains(line, ",") {
		return []string{line}
	}
	parts := strings.Split(line, ",")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// requireFields fails when a record has fewer than n fields.
func requireFields(fields []string, n int, what string) error {
	if len(fields) < n {
		return fmt.Errorf("%s needs at least %d fields, got %d", what, n, len(fields))
	}
	return nil
}

// parseDecimal parses a decimal field. Surrounding whitespace is allowed.
func parseDecimal(field, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, field)
	}
	return v, nil
}

// parseInteger parses an integer field verbatim.
func parseInteger(field, name string) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, field)
	}
	return v, nil
}

// LeadingFloorNumber parses the first character of an element label as a
// source story number.
func LeadingFloorNumber(label string) (int, bool) {
	if label == "" {
		return 0, false
	}
	first := []rune(label)[0]
	if first < '0' || first > '9' {
		return 0, false
	}
	return int(first - '0'), true
}
