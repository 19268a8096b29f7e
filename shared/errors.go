package shared

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrInvalidFieldEncoding is matched by every InvalidFieldEncodingError
	ErrInvalidFieldEncoding = errors.New("invalid field encoding")
	// ErrMissingRequiredField is matched by every MissingRequiredFieldError
	ErrMissingRequiredField = errors.New("missing required field")
)

// InvalidFieldEncodingError is returned when a raw RPC value can't be parsed
// into its canonical form, or overflows the bound of its canonical form
type InvalidFieldEncodingError struct {
	Field string
	Raw   interface{}
	Err   error
}

func (e *InvalidFieldEncodingError) Error() string {
	return fmt.Sprintf("invalid encoding for field %s (raw value %#v): %v", e.Field, e.Raw, e.Err)
}

func (e *InvalidFieldEncodingError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrInvalidFieldEncoding) match
func (e *InvalidFieldEncodingError) Is(target error) bool {
	return target == ErrInvalidFieldEncoding
}

// MissingRequiredFieldError is returned when a field with no alias and no
// default is absent from the normalized set
type MissingRequiredFieldError struct {
	Field string
	// Path locates the field in the RPC input, e.g. transactions[2].gasPrice;
	// empty when the builder was handed a node rather than a record
	Path string
}

func (e *MissingRequiredFieldError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("missing required field %s (%s)", e.Field, e.Path)
	}
	return fmt.Sprintf("missing required field %s", e.Field)
}

// Is lets errors.Is(err, ErrMissingRequiredField) match
func (e *MissingRequiredFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// InvalidEncoding builds an InvalidFieldEncodingError
func InvalidEncoding(field string, raw interface{}, format string, args ...interface{}) error {
	return &InvalidFieldEncodingError{Field: field, Raw: raw, Err: fmt.Errorf(format, args...)}
}

// MissingField builds a MissingRequiredFieldError
func MissingField(field string) error {
	return &MissingRequiredFieldError{Field: field}
}

// FieldPath joins a parent path and a child name the way field errors report them
func FieldPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

// IndexPath appends a list index to a field path
func IndexPath(parent string, index int) string {
	return fmt.Sprintf("%s[%d]", parent, index)
}

// ErrHashMismatch is returned when a rebuilt structure doesn't hash to the
// hash its RPC record reports
var ErrHashMismatch = errors.New("hash mismatch")

// CheckHash compares a rebuilt hash against the reported one; a nil expected
// hash always passes
func CheckHash(kind, path string, expected *common.Hash, got common.Hash) error {
	if expected == nil || *expected == got {
		return nil
	}
	if path == "" {
		path = "record"
	}
	return fmt.Errorf("%w: %s %s reported as %s, rebuilt as %s", ErrHashMismatch, kind, path, expected.Hex(), got.Hex())
}
