package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"

	"github.com/vulcanize/go-rpc-dageth/shared"
)

// maxSafeFloat is the largest integer a JSON float64 carries exactly
const maxSafeFloat = 1 << 53

// Normalize walks the schema table once over the raw record and returns the
// canonical field set. Absent fields become null, or their default when the
// schema gives one. It fails only when a present value can't be converted.
func Normalize(schema *Schema, raw Record) (*FieldSet, error) {
	return normalizeRecord("", schema, raw)
}

// NormalizeAt is like Normalize, but reports errors under the given path prefix
func NormalizeAt(path string, schema *Schema, raw Record) (*FieldSet, error) {
	return normalizeRecord(path, schema, raw)
}

func normalizeRecord(path string, schema *Schema, raw map[string]interface{}) (*FieldSet, error) {
	fs := newFieldSet(schema.Name, len(schema.Fields))
	for _, f := range schema.Fields {
		key, rawVal, present := resolve(raw, f)
		if !present || rawVal == nil {
			if f.Policy == Default {
				fs.set(f.Name, f.Default.clone())
			} else {
				fs.set(f.Name, Null())
			}
			continue
		}
		v, err := convert(shared.FieldPath(path, key), f, rawVal)
		if err != nil {
			return nil, err
		}
		fs.set(f.Name, v)
	}
	return fs, nil
}

// resolve applies the alias precedence rule: the first spelling whose key is
// present wins, and later spellings are only consulted when it is absent.
func resolve(raw map[string]interface{}, f Field) (string, interface{}, bool) {
	if len(f.Aliases) == 0 {
		v, ok := raw[f.Name]
		return f.Name, v, ok
	}
	for _, alias := range f.Aliases {
		if v, ok := raw[alias]; ok {
			return alias, v, true
		}
	}
	return f.rpcName(), nil, false
}

func convert(path string, f Field, raw interface{}) (Value, error) {
	if f.Nullable {
		if s, ok := raw.(string); ok && (s == "" || s == "0x" || s == "0X") {
			return Null(), nil
		}
	}
	switch f.Encoding {
	case Bytes:
		b, err := toBytes(path, raw)
		if err != nil {
			return Value{}, err
		}
		return BytesValue(b), nil
	case FixedBytes:
		b, err := toBytes(path, raw)
		if err != nil {
			return Value{}, err
		}
		padded, err := shared.LeftPad(b, f.Length)
		if err != nil {
			return Value{}, &shared.InvalidFieldEncodingError{Field: path, Raw: raw, Err: err}
		}
		return BytesValue(padded), nil
	case BigInt, Uint64:
		n, err := toBig(path, raw)
		if err != nil {
			return Value{}, err
		}
		if n.BitLen() > f.bits() {
			return Value{}, shared.InvalidEncoding(path, raw, "value exceeds %d bits", f.bits())
		}
		return BigValue(n), nil
	case List:
		return convertList(path, f, raw)
	case Nested:
		m, ok := asMap(raw)
		if !ok {
			return Value{}, shared.InvalidEncoding(path, raw, "expected a record, got %T", raw)
		}
		fs, err := normalizeRecord(path, f.Schema, m)
		if err != nil {
			return Value{}, err
		}
		return RecordValue(fs), nil
	default:
		return Value{}, fmt.Errorf("field %s: unknown encoding %d", path, f.Encoding)
	}
}

func convertList(path string, f Field, raw interface{}) (Value, error) {
	items, ok := asSlice(raw)
	if !ok {
		return Value{}, shared.InvalidEncoding(path, raw, "expected a list, got %T", raw)
	}
	out := make([]Value, len(items))
	for i, item := range items {
		elemPath := shared.IndexPath(path, i)
		if item == nil {
			return Value{}, shared.InvalidEncoding(elemPath, item, "null list element")
		}
		v, err := convert(elemPath, *f.Elem, item)
		if err != nil {
			return Value{}, err
		}
		out[i] = v
	}
	return ListValue(out), nil
}

func toBytes(path string, raw interface{}) ([]byte, error) {
	switch v := raw.(type) {
	case string:
		b, err := shared.DecodeHexBytes(v)
		if err != nil {
			return nil, &shared.InvalidFieldEncodingError{Field: path, Raw: raw, Err: err}
		}
		return b, nil
	case []byte:
		return v, nil
	default:
		return nil, shared.InvalidEncoding(path, raw, "expected hex text, got %T", raw)
	}
}

func toBig(path string, raw interface{}) (*big.Int, error) {
	var (
		n   *big.Int
		err error
	)
	switch v := raw.(type) {
	case string:
		n, err = shared.ParseBigInt(v)
	case json.Number:
		n, err = shared.ParseBigInt(string(v))
	case float64:
		if v != math.Trunc(v) || v < 0 || v > maxSafeFloat {
			err = fmt.Errorf("number is not an exact unsigned integer")
		} else {
			n = new(big.Int).SetUint64(uint64(v))
		}
	case int:
		n = big.NewInt(int64(v))
	case int64:
		n = big.NewInt(v)
	case uint64:
		n = new(big.Int).SetUint64(v)
	case uint:
		n = new(big.Int).SetUint64(uint64(v))
	case *big.Int:
		if v == nil {
			err = fmt.Errorf("nil integer")
		} else {
			n = new(big.Int).Set(v)
		}
	default:
		err = fmt.Errorf("expected integer text, got %T", raw)
	}
	if err != nil {
		return nil, &shared.InvalidFieldEncodingError{Field: path, Raw: raw, Err: err}
	}
	if n.Sign() < 0 {
		return nil, shared.InvalidEncoding(path, raw, "negative value")
	}
	return n, nil
}

func asMap(raw interface{}) (map[string]interface{}, bool) {
	switch v := raw.(type) {
	case map[string]interface{}:
		return v, true
	case Record:
		return v, true
	default:
		return nil, false
	}
}

func asSlice(raw interface{}) ([]interface{}, bool) {
	switch v := raw.(type) {
	case []interface{}:
		return v, true
	case []Record:
		out := make([]interface{}, len(v))
		for i, r := range v {
			out[i] = r
		}
		return out, true
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}
