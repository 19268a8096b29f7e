package normalize_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/vulcanize/go-rpc-dageth/normalize"
	"github.com/vulcanize/go-rpc-dageth/shared"
)

var entrySchema = &normalize.Schema{
	Name: "Entry",
	Fields: []normalize.Field{
		{Name: "Key", Aliases: []string{"key"}, Encoding: normalize.FixedBytes, Length: 4},
	},
}

var testSchema = &normalize.Schema{
	Name: "Test",
	Fields: []normalize.Field{
		{Name: "Address", Aliases: []string{"address"}, Encoding: normalize.FixedBytes, Length: 20},
		{Name: "GasLimit", Aliases: []string{"gasLimit", "gas"}, Encoding: normalize.Uint64},
		{Name: "Amount", Aliases: []string{"value"}, Encoding: normalize.BigInt, Policy: normalize.Default, Default: normalize.BigValue(big.NewInt(0))},
		{Name: "Data", Aliases: []string{"data", "input"}, Encoding: normalize.Bytes, Policy: normalize.Default, Default: normalize.BytesValue(nil)},
		{Name: "Recipient", Aliases: []string{"to"}, Encoding: normalize.FixedBytes, Length: 20, Policy: normalize.Optional, Nullable: true},
		{Name: "Fee", Aliases: []string{"fee"}, Encoding: normalize.BigInt, Policy: normalize.Optional},
		{Name: "Small", Aliases: []string{"small"}, Encoding: normalize.BigInt, Bits: 8, Policy: normalize.Optional},
		{Name: "Entries", Aliases: []string{"entries"}, Encoding: normalize.List, Policy: normalize.Optional,
			Elem: &normalize.Field{Name: "Entry", Encoding: normalize.Nested, Schema: entrySchema}},
	},
}

func baseRecord() normalize.Record {
	return normalize.Record{
		"address":  "0x00000000000000000000000000000000000000aa",
		"gasLimit": "0x5208",
	}
}

func TestNormalizeDefaults(t *testing.T) {
	fs, err := normalize.Normalize(testSchema, baseRecord())
	if err != nil {
		t.Fatalf("unable to normalize record: %v", err)
	}
	if fs.Schema() != "Test" {
		t.Errorf("expected schema Test, got %s", fs.Schema())
	}
	wantNames := []string{"Address", "GasLimit", "Amount", "Data", "Recipient", "Fee", "Small", "Entries"}
	if strings.Join(fs.Names(), ",") != strings.Join(wantNames, ",") {
		t.Errorf("expected names %v, got %v", wantNames, fs.Names())
	}
	amount, _ := fs.Get("Amount")
	if amount.Kind() != normalize.KindBigInt || amount.Big().Sign() != 0 {
		t.Errorf("expected Amount to default to 0, got %#v", amount)
	}
	data, _ := fs.Get("Data")
	if data.Kind() != normalize.KindBytes || len(data.Bytes()) != 0 {
		t.Errorf("expected Data to default to empty bytes, got %#v", data)
	}
	for _, name := range []string{"Recipient", "Fee", "Small", "Entries"} {
		v, ok := fs.Get(name)
		if !ok || !v.IsNull() {
			t.Errorf("expected %s to be null, got %#v", name, v)
		}
	}
	gas, _ := fs.Get("GasLimit")
	if gas.Big().Uint64() != 21000 {
		t.Errorf("expected GasLimit 21000, got %v", gas.Big())
	}
}

func TestAddressPadding(t *testing.T) {
	for _, in := range []string{"0x", "0x1", "0xaa", "0x00000000000000000000000000000000000000aa", "0x" + strings.Repeat("ab", 20)} {
		rec := baseRecord()
		rec["address"] = in
		fs, err := normalize.Normalize(testSchema, rec)
		if err != nil {
			t.Fatalf("address %s: unexpected error: %v", in, err)
		}
		v, _ := fs.Get("Address")
		if len(v.Bytes()) != 20 {
			t.Errorf("address %s: expected 20 bytes, got %d", in, len(v.Bytes()))
		}
	}

	rec := baseRecord()
	rec["address"] = "0xaa"
	fs, err := normalize.Normalize(testSchema, rec)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := fs.Get("Address")
	want := append(make([]byte, 19), 0xaa)
	if !bytes.Equal(v.Bytes(), want) {
		t.Errorf("expected left zero padding, got %x", v.Bytes())
	}

	rec["address"] = "0x" + strings.Repeat("ab", 21)
	_, err = normalize.Normalize(testSchema, rec)
	var invalid *shared.InvalidFieldEncodingError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected an InvalidFieldEncodingError for a 21 byte address, got %v", err)
	}
	if invalid.Field != "address" {
		t.Errorf("expected the error to name address, got %s", invalid.Field)
	}
	if invalid.Raw != rec["address"] {
		t.Errorf("expected the error to carry the raw value, got %#v", invalid.Raw)
	}
}

func TestAliasPrecedence(t *testing.T) {
	legacy := normalize.Record{"address": "0x01", "gas": "0x5208", "input": "0x1234"}
	newer := normalize.Record{"address": "0x01", "gasLimit": "0x5208", "data": "0x1234"}
	legacyFS, err := normalize.Normalize(testSchema, legacy)
	if err != nil {
		t.Fatal(err)
	}
	newerFS, err := normalize.Normalize(testSchema, newer)
	if err != nil {
		t.Fatal(err)
	}
	if !legacyFS.Equal(newerFS) {
		t.Error("legacy only and newer only spellings should normalize identically")
	}

	both := normalize.Record{"address": "0x01", "gasLimit": "0x1", "gas": "0x2", "data": "0xaa", "input": "0xbb"}
	fs, err := normalize.Normalize(testSchema, both)
	if err != nil {
		t.Fatal(err)
	}
	gas, _ := fs.Get("GasLimit")
	if gas.Big().Uint64() != 1 {
		t.Errorf("expected gasLimit to win over gas, got %v", gas.Big())
	}
	data, _ := fs.Get("Data")
	if !bytes.Equal(data.Bytes(), []byte{0xaa}) {
		t.Errorf("expected data to win over input, got %x", data.Bytes())
	}

	// a present but null newer spelling still shadows the legacy one
	shadowed := normalize.Record{"address": "0x01", "gasLimit": "0x1", "data": nil, "input": "0xbb"}
	fs, err = normalize.Normalize(testSchema, shadowed)
	if err != nil {
		t.Fatal(err)
	}
	data, _ = fs.Get("Data")
	if len(data.Bytes()) != 0 {
		t.Errorf("expected null data to fall back to the default, got %x", data.Bytes())
	}

	_, err = normalize.Normalize(testSchema, normalize.Record{"address": "0x01", "gasLimit": "0x", "gas": "0xzz"})
	if err != nil {
		t.Errorf("the shadowed legacy spelling shouldn't be parsed: %v", err)
	}
}

func TestNullableRecipient(t *testing.T) {
	for _, in := range []interface{}{nil, "", "0x"} {
		rec := baseRecord()
		rec["to"] = in
		fs, err := normalize.Normalize(testSchema, rec)
		if err != nil {
			t.Fatalf("to %#v: unexpected error: %v", in, err)
		}
		v, _ := fs.Get("Recipient")
		if !v.IsNull() {
			t.Errorf("to %#v: expected null recipient, got %x", in, v.Bytes())
		}
	}
	rec := baseRecord()
	rec["address"] = ""
	if _, err := normalize.Normalize(testSchema, rec); !errors.Is(err, shared.ErrInvalidFieldEncoding) {
		t.Errorf("empty text is only null for nullable fields, got %v", err)
	}
}

func TestIntegerInputs(t *testing.T) {
	inputs := []interface{}{
		"0x3e8",
		"1000",
		json.Number("1000"),
		float64(1000),
		int(1000),
		int64(1000),
		uint64(1000),
		big.NewInt(1000),
	}
	for _, in := range inputs {
		rec := baseRecord()
		rec["value"] = in
		fs, err := normalize.Normalize(testSchema, rec)
		if err != nil {
			t.Errorf("value %#v: unexpected error: %v", in, err)
			continue
		}
		v, _ := fs.Get("Amount")
		if v.Big().Int64() != 1000 {
			t.Errorf("value %#v: expected 1000, got %v", in, v.Big())
		}
	}

	bad := []interface{}{
		"-1",
		"0x-1",
		int64(-1),
		big.NewInt(-1),
		float64(1.5),
		float64(1 << 60),
		"0xzz",
		"ten",
		true,
		[]interface{}{"0x1"},
		json.Number("1e3"),
	}
	for _, in := range bad {
		rec := baseRecord()
		rec["value"] = in
		_, err := normalize.Normalize(testSchema, rec)
		var invalid *shared.InvalidFieldEncodingError
		if !errors.As(err, &invalid) {
			t.Errorf("value %#v: expected an InvalidFieldEncodingError, got %v", in, err)
			continue
		}
		if invalid.Field != "value" {
			t.Errorf("value %#v: expected the error to name value, got %s", in, invalid.Field)
		}
	}
}

func TestIntegerBounds(t *testing.T) {
	rec := baseRecord()
	rec["gasLimit"] = "0xffffffffffffffff"
	if _, err := normalize.Normalize(testSchema, rec); err != nil {
		t.Errorf("max uint64 should fit a Uint64 field: %v", err)
	}
	rec["gasLimit"] = "0x10000000000000000"
	if _, err := normalize.Normalize(testSchema, rec); !errors.Is(err, shared.ErrInvalidFieldEncoding) {
		t.Errorf("expected 2^64 to overflow a Uint64 field, got %v", err)
	}

	rec = baseRecord()
	rec["value"] = "0x" + strings.Repeat("ff", 32)
	if _, err := normalize.Normalize(testSchema, rec); err != nil {
		t.Errorf("2^256-1 should fit a BigInt field: %v", err)
	}
	rec["value"] = "0x1" + strings.Repeat("00", 32)
	if _, err := normalize.Normalize(testSchema, rec); !errors.Is(err, shared.ErrInvalidFieldEncoding) {
		t.Errorf("expected 2^256 to overflow a BigInt field, got %v", err)
	}

	rec = baseRecord()
	rec["small"] = "0xff"
	if _, err := normalize.Normalize(testSchema, rec); err != nil {
		t.Errorf("0xff should fit an 8 bit field: %v", err)
	}
	rec["small"] = "0x100"
	if _, err := normalize.Normalize(testSchema, rec); !errors.Is(err, shared.ErrInvalidFieldEncoding) {
		t.Errorf("expected 0x100 to overflow an 8 bit field, got %v", err)
	}
}

func TestInvalidBytes(t *testing.T) {
	for _, in := range []interface{}{"1234", "0xgg", 12, []interface{}{}} {
		rec := baseRecord()
		rec["data"] = in
		if _, err := normalize.Normalize(testSchema, rec); !errors.Is(err, shared.ErrInvalidFieldEncoding) {
			t.Errorf("data %#v: expected ErrInvalidFieldEncoding, got %v", in, err)
		}
	}
}

func TestNestedPaths(t *testing.T) {
	rec := baseRecord()
	rec["entries"] = []interface{}{
		map[string]interface{}{"key": "0x01"},
		map[string]interface{}{"key": "0x0102030405"},
	}
	_, err := normalize.NormalizeAt("transactions[3]", testSchema, rec)
	var invalid *shared.InvalidFieldEncodingError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected an InvalidFieldEncodingError, got %v", err)
	}
	if invalid.Field != "transactions[3].entries[1].key" {
		t.Errorf("unexpected error path %s", invalid.Field)
	}

	rec["entries"] = []interface{}{nil}
	_, err = normalize.Normalize(testSchema, rec)
	if !errors.As(err, &invalid) || invalid.Field != "entries[0]" {
		t.Errorf("expected a null list element to fail at entries[0], got %v", err)
	}

	rec["entries"] = []interface{}{"0x01"}
	_, err = normalize.Normalize(testSchema, rec)
	if !errors.As(err, &invalid) || invalid.Field != "entries[0]" {
		t.Errorf("expected a non record element to fail at entries[0], got %v", err)
	}

	rec["entries"] = []interface{}{map[string]interface{}{"key": "0x01"}}
	fs, err := normalize.Normalize(testSchema, rec)
	if err != nil {
		t.Fatal(err)
	}
	entries, _ := fs.Get("Entries")
	if entries.Kind() != normalize.KindList || len(entries.List()) != 1 {
		t.Fatalf("expected a one element list, got %#v", entries)
	}
	key, _ := entries.List()[0].Record().Get("Key")
	if !bytes.Equal(key.Bytes(), []byte{0, 0, 0, 1}) {
		t.Errorf("expected nested key 00000001, got %x", key.Bytes())
	}
}

func TestDeterminism(t *testing.T) {
	rec := baseRecord()
	rec["value"] = "0xde0b6b3a7640000"
	rec["data"] = "0xabcdef"
	rec["to"] = "0x0000000000000000000000000000000000000001"
	rec["entries"] = []interface{}{map[string]interface{}{"key": "0xdeadbeef"}}

	first, err := normalize.Normalize(testSchema, rec)
	if err != nil {
		t.Fatal(err)
	}
	second, err := normalize.Normalize(testSchema, rec)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(second) {
		t.Error("identical records should normalize to equal field sets")
	}
	firstEnc, err := first.DagCBOR()
	if err != nil {
		t.Fatal(err)
	}
	secondEnc, err := second.DagCBOR()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(firstEnc, secondEnc) {
		t.Error("identical records should have identical DAG-CBOR encodings")
	}

	rec["value"] = "0xde0b6b3a7640001"
	third, err := normalize.Normalize(testSchema, rec)
	if err != nil {
		t.Fatal(err)
	}
	if first.Equal(third) {
		t.Error("records differing in value shouldn't be equal")
	}
}

func TestNode(t *testing.T) {
	rec := baseRecord()
	rec["value"] = "0x0100"
	fs, err := normalize.Normalize(testSchema, rec)
	if err != nil {
		t.Fatal(err)
	}
	node, err := fs.Node()
	if err != nil {
		t.Fatalf("unable to build node: %v", err)
	}
	if node.Length() != int64(fs.Len()) {
		t.Errorf("expected %d entries, got %d", fs.Len(), node.Length())
	}
	amountNode, err := node.LookupByString("Amount")
	if err != nil {
		t.Fatal(err)
	}
	amount, err := amountNode.AsBytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(amount, []byte{1, 0}) {
		t.Errorf("expected minimal big endian 0100, got %x", amount)
	}
	recipientNode, err := node.LookupByString("Recipient")
	if err != nil {
		t.Fatal(err)
	}
	if !recipientNode.IsNull() {
		t.Error("expected a null Recipient node")
	}

	var buf bytes.Buffer
	if err := fs.EncodeDagJSON(&buf); err != nil {
		t.Fatalf("unable to encode DAG-JSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"GasLimit"`) {
		t.Errorf("expected DAG-JSON to carry GasLimit, got %s", buf.String())
	}
}

func TestSchemaLookups(t *testing.T) {
	required := testSchema.Required()
	if strings.Join(required, ",") != "Address,GasLimit" {
		t.Errorf("unexpected required fields %v", required)
	}
	f, ok := testSchema.Field("GasLimit")
	if !ok || f.Encoding != normalize.Uint64 {
		t.Errorf("unexpected GasLimit row %#v", f)
	}
	if _, ok := testSchema.Field("gas"); ok {
		t.Error("Field should look up canonical names, not aliases")
	}
}

func TestDefaultsAreNotShared(t *testing.T) {
	schema := &normalize.Schema{
		Name: "Defaults",
		Fields: []normalize.Field{
			{Name: "Nonce", Aliases: []string{"nonce"}, Encoding: normalize.FixedBytes, Length: 4,
				Policy: normalize.Default, Default: normalize.BytesValue(make([]byte, 4))},
			{Name: "Keys", Aliases: []string{"keys"}, Encoding: normalize.List, Policy: normalize.Default,
				Elem:    &normalize.Field{Name: "Key", Encoding: normalize.FixedBytes, Length: 1},
				Default: normalize.ListValue([]normalize.Value{normalize.BytesValue([]byte{0})})},
		},
	}
	first, err := normalize.Normalize(schema, normalize.Record{})
	if err != nil {
		t.Fatal(err)
	}
	nonce, _ := first.Get("Nonce")
	b := nonce.Bytes()
	b[0] = 0xff
	keys, _ := first.Get("Keys")
	l := keys.List()
	l[0] = normalize.BytesValue([]byte{0xff})

	second, err := normalize.Normalize(schema, normalize.Record{})
	if err != nil {
		t.Fatal(err)
	}
	nonce, _ = second.Get("Nonce")
	if !bytes.Equal(nonce.Bytes(), []byte{0, 0, 0, 0}) {
		t.Errorf("writing to a returned default changed later normalizations: %x", nonce.Bytes())
	}
	keys, _ = second.Get("Keys")
	if key := keys.List()[0].Bytes(); !bytes.Equal(key, []byte{0}) {
		t.Errorf("writing to a returned default list changed later normalizations: %x", key)
	}
	if !first.Equal(second) {
		t.Error("writes through returned values shouldn't reach the field set")
	}
}
