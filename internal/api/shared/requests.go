package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// MaxRequestBodyBytes caps the size of a decoded JSON body.
const MaxRequestBodyBytes = 1 << 20

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// Global validator instance for reuse
var validate = validator.New()

// DecodeJSON decodes the request body into the given struct.
// Trailing data after the first JSON value is rejected.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}

	if dec.More() {
		return errors.New("request body must contain a single JSON value")
	}

	return nil
}

// ValidateRequest validates the given struct. Struct tags are checked first,
// then a Validate method if the value has one.
func ValidateRequest(v any) error {
	if err := validate.Struct(v); err != nil {
		return err
	}

	if checker, ok := v.(interface{ Validate() error }); ok {
		return checker.Validate()
	}

	return nil
}
