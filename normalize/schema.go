package normalize

import (
	"errors"
	"fmt"

	"github.com/vulcanize/go-rpc-dageth/shared"
)

// Encoding is the target representation of a normalized field
type Encoding uint8

const (
	// Bytes is a variable length byte sequence (hex text)
	Bytes Encoding = iota
	// FixedBytes is a byte sequence left-padded to Field.Length, never truncated
	FixedBytes
	// BigInt is an unsigned integer bounded by Field.Bits (256 when unset)
	BigInt
	// Uint64 is an unsigned integer bounded to 64 bits
	Uint64
	// List is an ordered sequence of Field.Elem values
	List
	// Nested is a nested record normalized against Field.Schema
	Nested
)

func (e Encoding) String() string {
	switch e {
	case Bytes:
		return "Bytes"
	case FixedBytes:
		return "FixedBytes"
	case BigInt:
		return "BigInt"
	case Uint64:
		return "Uint64"
	case List:
		return "List"
	case Nested:
		return "Nested"
	default:
		return "Unknown"
	}
}

// Policy decides what an absent field normalizes to
type Policy uint8

const (
	// Required fields normalize to null when absent; builders reject the null
	Required Policy = iota
	// Optional fields normalize to null when absent; null is meaningful downstream
	Optional
	// Default fields normalize to Field.Default when absent
	Default
)

// DefaultBits bounds BigInt fields that don't set Field.Bits
const DefaultBits = 256

// Field is one row of a schema table
type Field struct {
	// Name is the canonical name the field is stored under
	Name string
	// Aliases are the RPC spellings, newest first. The first one whose key is
	// present in the record wins, even if its value is null.
	Aliases  []string
	Encoding Encoding
	Length   int
	Bits     int
	Policy   Policy
	Default  Value
	// Nullable fields read empty text ("" or "0x") as an explicit null
	Nullable bool
	Elem     *Field
	Schema   *Schema
}

// Schema is an ordered field table for one RPC structure
type Schema struct {
	Name   string
	Fields []Field
}

// Required lists the canonical names of the schema's required fields
func (s *Schema) Required() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Policy == Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Field looks up a field row by canonical name
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Locate ties a builder error to the record at path. A missing field is
// given its RPC path, and the error message is prefixed with path.
func (s *Schema) Locate(path string, err error) error {
	if err == nil {
		return nil
	}
	var missing *shared.MissingRequiredFieldError
	if errors.As(err, &missing) && missing.Path == "" {
		name := missing.Field
		if f, ok := s.Field(missing.Field); ok {
			name = f.rpcName()
		}
		missing.Path = shared.FieldPath(path, name)
	}
	if path == "" {
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}

func (f Field) bits() int {
	switch {
	case f.Encoding == Uint64:
		return 64
	case f.Bits > 0:
		return f.Bits
	default:
		return DefaultBits
	}
}

// rpcName is the spelling used to report errors for the field
func (f Field) rpcName() string {
	if len(f.Aliases) > 0 {
		return f.Aliases[0]
	}
	return f.Name
}
