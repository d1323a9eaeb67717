package content

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/halvard/folio/internal/apperr"
	"github.com/halvard/folio/internal/fields"
)

// errDelimiter rejects list items that would break the flattened-string
// round trip.
var errDelimiter = validation.NewError("validation_delimiter",
	"items must be non-empty and must not contain the list delimiters")

// wrap converts a validator error into an apperr validation failure.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	return apperr.Invalid(err)
}

// lengthIfSet validates an optional patch field when present.
func lengthIfSet(p *string, min, max int) error {
	if p == nil {
		return nil
	}
	return validation.Validate(*p, validation.Required, validation.Length(min, max))
}

// urlIfSet validates an optional patch field as a URL when present.
func urlIfSet(p *string) error {
	if p == nil {
		return nil
	}
	return validation.Validate(*p, validation.Required, is.URL)
}

// listRule validates the items of a flattened list field.
func listRule(items []string) error {
	if len(items) == 0 {
		return nil
	}
	if !fields.Valid(items) {
		return errDelimiter
	}
	return nil
}

// requiredList validates a mandatory flattened list field.
func requiredList(items []string) error {
	if len(items) == 0 {
		return validation.ErrRequired
	}
	return listRule(items)
}
