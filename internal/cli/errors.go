package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"roster-cli/internal/api"
)

type invalidFlagError struct {
	flag   string
	value  string
	reason string
}

func (e invalidFlagError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.flag, e.value, e.reason)
}

func errInvalidFlag(flag, value, reason string) error {
	return invalidFlagError{flag: flag, value: value, reason: reason}
}

// parseEmployeeID parses a positional employee id.
func parseEmployeeID(raw string) (int, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errInvalidFlag("employee id", raw, "must be a positive integer")
	}
	return id, nil
}

// describe wraps err with op, adding a hint when the API could not be reached.
func describe(op string, err error) error {
	var te *api.TransportError
	if errors.As(err, &te) && te.StatusCode == 0 {
		return fmt.Errorf("%s: %w (is the API running? try `roster demo-server` or set --api-url)", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

type notFoundError struct {
	kind string
	name string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.name)
}

func errNotFound(kind, name string) error {
	return notFoundError{kind: kind, name: name}
}
