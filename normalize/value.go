package normalize

import (
	"bytes"
	"math/big"
)

// Kind tags the representation held by a Value
type Kind uint8

const (
	KindNull Kind = iota
	KindBytes
	KindBigInt
	KindList
	KindRecord
)

// Value is a normalized field value: bytes, an unsigned big integer, null,
// or the list/record forms used by nested fields
type Value struct {
	kind  Kind
	bytes []byte
	num   *big.Int
	list  []Value
	rec   *FieldSet
}

// Null returns the null Value
func Null() Value {
	return Value{}
}

// BytesValue wraps a byte sequence
func BytesValue(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{kind: KindBytes, bytes: cp}
}

// BigValue wraps an unsigned integer
func BigValue(v *big.Int) Value {
	return Value{kind: KindBigInt, num: new(big.Int).Set(v)}
}

// ListValue wraps an ordered sequence of values
func ListValue(vs []Value) Value {
	return Value{kind: KindList, list: vs}
}

// RecordValue wraps a nested field set
func RecordValue(fs *FieldSet) Value {
	return Value{kind: KindRecord, rec: fs}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bytes returns a copy of the byte sequence, or nil if v isn't KindBytes
func (v Value) Bytes() []byte {
	if v.kind != KindBytes {
		return nil
	}
	cp := make([]byte, len(v.bytes))
	copy(cp, v.bytes)
	return cp
}

// Big returns a copy of the integer, or nil if v isn't KindBigInt
func (v Value) Big() *big.Int {
	if v.num == nil {
		return nil
	}
	return new(big.Int).Set(v.num)
}

// List returns a copy of the element slice, or nil if v isn't KindList
func (v Value) List() []Value {
	if v.list == nil {
		return nil
	}
	out := make([]Value, len(v.list))
	copy(out, v.list)
	return out
}

// Record returns the nested set, or nil if v isn't KindRecord
func (v Value) Record() *FieldSet {
	return v.rec
}

// clone returns a deep copy of v that shares no backing arrays with it
func (v Value) clone() Value {
	switch v.kind {
	case KindBytes:
		return BytesValue(v.bytes)
	case KindBigInt:
		return BigValue(v.num)
	case KindList:
		if v.list == nil {
			return ListValue(nil)
		}
		out := make([]Value, len(v.list))
		for i, elem := range v.list {
			out[i] = elem.clone()
		}
		return ListValue(out)
	case KindRecord:
		return RecordValue(v.rec.clone())
	default:
		return v
	}
}

// Equal reports whether v and o hold the same kind and bit-identical contents
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBytes:
		return bytes.Equal(v.bytes, o.bytes)
	case KindBigInt:
		return v.num.Cmp(o.num) == 0
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindRecord:
		return v.rec.Equal(o.rec)
	}
	return false
}

// FieldSet is an ordered mapping of canonical field names to normalized values
type FieldSet struct {
	schema string
	names  []string
	values map[string]Value
}

func newFieldSet(schema string, size int) *FieldSet {
	return &FieldSet{
		schema: schema,
		names:  make([]string, 0, size),
		values: make(map[string]Value, size),
	}
}

func (fs *FieldSet) set(name string, v Value) {
	if _, ok := fs.values[name]; !ok {
		fs.names = append(fs.names, name)
	}
	fs.values[name] = v
}

// Schema returns the name of the schema the set was normalized against
func (fs *FieldSet) Schema() string {
	return fs.schema
}

// Get returns the value stored under name
func (fs *FieldSet) Get(name string) (Value, bool) {
	v, ok := fs.values[name]
	return v, ok
}

// Names returns the canonical field names in schema order
func (fs *FieldSet) Names() []string {
	out := make([]string, len(fs.names))
	copy(out, fs.names)
	return out
}

func (fs *FieldSet) Len() int {
	return len(fs.names)
}

// Equal reports whether both sets hold the same names, in the same order,
// with bit-identical values
func (fs *FieldSet) Equal(o *FieldSet) bool {
	if fs == nil || o == nil {
		return fs == o
	}
	if fs.schema != o.schema || len(fs.names) != len(o.names) {
		return false
	}
	for i, name := range fs.names {
		if o.names[i] != name {
			return false
		}
		if !fs.values[name].Equal(o.values[name]) {
			return false
		}
	}
	return true
}

func (fs *FieldSet) clone() *FieldSet {
	if fs == nil {
		return nil
	}
	out := newFieldSet(fs.schema, len(fs.names))
	for _, name := range fs.names {
		out.set(name, fs.values[name].clone())
	}
	return out
}
