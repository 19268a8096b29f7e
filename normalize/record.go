package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vulcanize/go-rpc-dageth/shared"
)

// Record is a loosely typed RPC object, as decoded from JSON
type Record map[string]interface{}

// DecodeRecord decodes a JSON object into a Record. Numbers are kept as
// json.Number so no precision is lost. A JSON-RPC response envelope is
// unwrapped to its result.
func DecodeRecord(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", v)
	}
	if result, ok := m["result"]; ok {
		if _, isEnvelope := m["jsonrpc"]; isEnvelope {
			if rpcErr, ok := m["error"]; ok && rpcErr != nil {
				return nil, fmt.Errorf("JSON-RPC error response: %v", rpcErr)
			}
			inner, ok := result.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("JSON-RPC result is %T, not an object", result)
			}
			m = inner
		}
	}
	return Record(m), nil
}

// Records returns the record list stored under key. An absent or null entry
// is an empty list; transaction hashes (non-object entries) are rejected.
func (r Record) Records(key string) ([]Record, error) {
	raw, ok := r[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := asSlice(raw)
	if !ok {
		return nil, shared.InvalidEncoding(key, raw, "expected a list, got %T", raw)
	}
	out := make([]Record, len(items))
	for i, item := range items {
		m, ok := asMap(item)
		if !ok {
			return nil, shared.InvalidEncoding(shared.IndexPath(key, i), item, "expected an object, got %T", item)
		}
		out[i] = m
	}
	return out, nil
}
