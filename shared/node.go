package shared

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ipld/go-ipld-prime"
)

// LookupNullable returns the entry under key, or nil when it is absent or null
func LookupNullable(node ipld.Node, key string) (ipld.Node, error) {
	n, err := node.LookupByString(key)
	if err != nil {
		var notExists ipld.ErrNotExists
		if errors.As(err, &notExists) {
			return nil, nil
		}
		return nil, err
	}
	if n.IsNull() || n.IsAbsent() {
		return nil, nil
	}
	return n, nil
}

// LookupBytes returns the bytes under key, or nil when the entry is null
func LookupBytes(node ipld.Node, key string) ([]byte, error) {
	n, err := LookupNullable(node, key)
	if err != nil || n == nil {
		return nil, err
	}
	b, err := n.AsBytes()
	if err != nil {
		return nil, fmt.Errorf("%s: %v", key, err)
	}
	return b, nil
}

// RequireBytes is like LookupBytes, but a null entry is a MissingRequiredFieldError
func RequireBytes(node ipld.Node, key string) ([]byte, error) {
	n, err := LookupNullable(node, key)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, MissingField(key)
	}
	b, err := n.AsBytes()
	if err != nil {
		return nil, fmt.Errorf("%s: %v", key, err)
	}
	return b, nil
}

// RequireFixedBytes requires the entry under key to be exactly l bytes
func RequireFixedBytes(node ipld.Node, key string, l int) ([]byte, error) {
	b, err := RequireBytes(node, key)
	if err != nil {
		return nil, err
	}
	if len(b) != l {
		return nil, fmt.Errorf("%s must be %d bytes, got %d", key, l, len(b))
	}
	return b, nil
}

// LookupBig returns the integer under key, or nil when the entry is null
func LookupBig(node ipld.Node, key string) (*big.Int, error) {
	b, err := LookupBytes(node, key)
	if err != nil || b == nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// RequireBig is like LookupBig, but a null entry is a MissingRequiredFieldError
func RequireBig(node ipld.Node, key string) (*big.Int, error) {
	b, err := RequireBytes(node, key)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// RequireUint64 reads a required integer that must fit in 64 bits
func RequireUint64(node ipld.Node, key string) (uint64, error) {
	n, err := RequireBig(node, key)
	if err != nil {
		return 0, err
	}
	if !n.IsUint64() {
		return 0, fmt.Errorf("%s overflows 64 bits", key)
	}
	return n.Uint64(), nil
}
