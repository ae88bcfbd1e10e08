package auth

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region used to parse numbers entered without a
// country prefix, e.g. "09120000001".
var DefaultPhoneRegion = "IR"

// NormalizePhone parses and validates a raw phone number and returns its
// E.164 form. Registration and login both go through here so the phone used
// as the store's natural key is always in one canonical shape.
func NormalizePhone(raw string) (string, error) {
	if raw == "" {
		return "", goerrors.Wrap(ErrInvalidInput, goerrors.CategoryValidation, "phone is required")
	}

	num, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "could not parse phone number")
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", goerrors.New("invalid phone number", goerrors.CategoryValidation)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
