package normalize

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/codec/dagcbor"
	"github.com/ipld/go-ipld-prime/codec/dagjson"
	"github.com/ipld/go-ipld-prime/node/basicnode"
)

// Node renders the set in DAG-ETH form: a map keyed by canonical name, with
// bytes and integers (minimal big-endian) as Bytes, null as Null, and nested
// lists and records as List and Map.
func (fs *FieldSet) Node() (ipld.Node, error) {
	nb := basicnode.Prototype.Map.NewBuilder()
	if err := fs.assemble(nb); err != nil {
		return nil, fmt.Errorf("unable to build %s node (%v)", fs.schema, err)
	}
	return nb.Build(), nil
}

func (fs *FieldSet) assemble(na ipld.NodeAssembler) error {
	ma, err := na.BeginMap(int64(len(fs.names)))
	if err != nil {
		return err
	}
	for _, name := range fs.names {
		if err := ma.AssembleKey().AssignString(name); err != nil {
			return err
		}
		if err := assembleValue(ma.AssembleValue(), fs.values[name]); err != nil {
			return fmt.Errorf("%s: %v", name, err)
		}
	}
	return ma.Finish()
}

func assembleValue(na ipld.NodeAssembler, v Value) error {
	switch v.kind {
	case KindNull:
		return na.AssignNull()
	case KindBytes:
		return na.AssignBytes(v.bytes)
	case KindBigInt:
		return na.AssignBytes(v.num.Bytes())
	case KindList:
		la, err := na.BeginList(int64(len(v.list)))
		if err != nil {
			return err
		}
		for _, elem := range v.list {
			if err := assembleValue(la.AssembleValue(), elem); err != nil {
				return err
			}
		}
		return la.Finish()
	case KindRecord:
		return v.rec.assemble(na)
	default:
		return fmt.Errorf("unknown value kind %d", v.kind)
	}
}

// EncodeDagCBOR writes the DAG-CBOR encoding of the set's node form
func (fs *FieldSet) EncodeDagCBOR(w io.Writer) error {
	node, err := fs.Node()
	if err != nil {
		return err
	}
	return dagcbor.Encode(node, w)
}

// EncodeDagJSON writes the DAG-JSON encoding of the set's node form
func (fs *FieldSet) EncodeDagJSON(w io.Writer) error {
	node, err := fs.Node()
	if err != nil {
		return err
	}
	return dagjson.Encode(node, w)
}

// DagCBOR returns the DAG-CBOR encoding of the set's node form
func (fs *FieldSet) DagCBOR() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := fs.EncodeDagCBOR(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
