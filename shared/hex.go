package shared

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Has0xPrefix reports whether s starts with 0x or 0X
func Has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// DecodeHexBytes decodes 0x-prefixed hex text into bytes.
// Odd-length input is treated as if it carried a leading zero nibble.
func DecodeHexBytes(s string) ([]byte, error) {
	if !Has0xPrefix(s) {
		return nil, fmt.Errorf("hex string without 0x prefix")
	}
	body := s[2:]
	if len(body)%2 == 1 {
		body = "0" + body
	}
	return hexutil.Decode("0x" + body)
}

// ParseBigInt parses unsigned integer text. Text with a 0x prefix is read as
// hex (an empty body is zero), anything else as decimal.
func ParseBigInt(s string) (*big.Int, error) {
	if Has0xPrefix(s) {
		body := s[2:]
		if body == "" {
			return new(big.Int), nil
		}
		if strings.ContainsAny(body, "+-_") {
			return nil, fmt.Errorf("invalid hex digits %q", body)
		}
		v, ok := new(big.Int).SetString(body, 16)
		if !ok {
			return nil, fmt.Errorf("invalid hex digits %q", body)
		}
		return v, nil
	}
	if s == "" {
		return nil, fmt.Errorf("empty integer text")
	}
	if strings.ContainsAny(s, "+-_") {
		return nil, fmt.Errorf("invalid decimal digits %q", s)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal digits %q", s)
	}
	return v, nil
}

// LeftPad returns b left-padded with zero bytes to length l.
// It refuses to truncate: input longer than l is an error.
func LeftPad(b []byte, l int) ([]byte, error) {
	if len(b) > l {
		return nil, fmt.Errorf("%d bytes exceeds the %d byte bound", len(b), l)
	}
	out := make([]byte, l)
	copy(out[l-len(b):], b)
	return out, nil
}
