package client

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mcpcall/mcpcall/internal/errors"
)

// ValidateArguments checks tool arguments against an inline JSON Schema.
// A schema violation is a permanent failure: it is reported before any
// network call and is never retried.
func ValidateArguments(schema string, args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewGoLoader(args),
	)
	if err != nil {
		return fmt.Errorf("%w: schema validation error: %w", errors.ErrInvalidArguments, err)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		details = append(details, e.String())
	}

	return fmt.Errorf("%w: %s", errors.ErrInvalidArguments, strings.Join(details, "; "))
}
