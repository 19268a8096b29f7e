package tx

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ipfs/go-cid"

	"github.com/vulcanize/go-rpc-dageth/normalize"
	"github.com/vulcanize/go-rpc-dageth/shared"
)

// MultiCodecType is the multicodec for consensus encoded transactions
var MultiCodecType = uint64(cid.EthTx)

// Normalize normalizes an RPC transaction record against Schema
func Normalize(raw normalize.Record) (*normalize.FieldSet, error) {
	return normalize.Normalize(Schema, raw)
}

// FromRPC builds a transaction from an eth_getTransactionBy* result or a full
// transaction object of eth_getBlockBy*
func FromRPC(raw normalize.Record, opts Options) (*types.Transaction, error) {
	return FromRPCAt("", raw, opts)
}

// FromRPCAt is like FromRPC, but reports errors under the given path
func FromRPCAt(path string, raw normalize.Record, opts Options) (*types.Transaction, error) {
	fields, err := normalize.NormalizeAt(path, Schema, raw)
	if err != nil {
		return nil, err
	}
	node, err := fields.Node()
	if err != nil {
		return nil, err
	}
	t, err := NewTx(node, opts)
	if err != nil {
		return nil, Schema.Locate(path, err)
	}
	if opts.VerifyHash {
		expected, err := ExpectedHash(node)
		if err != nil {
			return nil, err
		}
		if err := shared.CheckHash("transaction", path, expected, t.Hash()); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// FromFields builds a transaction from an already normalized field set
func FromFields(fields *normalize.FieldSet, opts Options) (*types.Transaction, error) {
	node, err := fields.Node()
	if err != nil {
		return nil, err
	}
	return NewTx(node, opts)
}

// ToRPC renders a transaction the way eth_getTransactionByHash reports it
func ToRPC(tx *types.Transaction) normalize.Record {
	v, r, s := tx.RawSignatureValues()
	rec := normalize.Record{
		"hash":  tx.Hash().Hex(),
		"type":  hexutil.EncodeUint64(uint64(tx.Type())),
		"nonce": hexutil.EncodeUint64(tx.Nonce()),
		"gas":   hexutil.EncodeUint64(tx.Gas()),
		"value": hexutil.EncodeBig(tx.Value()),
		"input": hexutil.Encode(tx.Data()),
		"v":     hexutil.EncodeBig(v),
		"r":     hexutil.EncodeBig(r),
		"s":     hexutil.EncodeBig(s),
		"to":    nil,
	}
	if to := tx.To(); to != nil {
		rec["to"] = to.Hex()
	}
	switch tx.Type() {
	case types.LegacyTxType:
		rec["gasPrice"] = hexutil.EncodeBig(tx.GasPrice())
	case types.AccessListTxType:
		rec["chainId"] = hexutil.EncodeBig(tx.ChainId())
		rec["gasPrice"] = hexutil.EncodeBig(tx.GasPrice())
		rec["accessList"] = accessListToRPC(tx.AccessList())
	case types.DynamicFeeTxType:
		rec["chainId"] = hexutil.EncodeBig(tx.ChainId())
		rec["gasPrice"] = hexutil.EncodeBig(tx.GasFeeCap())
		rec["maxFeePerGas"] = hexutil.EncodeBig(tx.GasFeeCap())
		rec["maxPriorityFeePerGas"] = hexutil.EncodeBig(tx.GasTipCap())
		rec["accessList"] = accessListToRPC(tx.AccessList())
	}
	return rec
}

func accessListToRPC(al types.AccessList) []interface{} {
	out := make([]interface{}, len(al))
	for i, tuple := range al {
		keys := make([]interface{}, len(tuple.StorageKeys))
		for j, key := range tuple.StorageKeys {
			keys[j] = key.Hex()
		}
		out[i] = map[string]interface{}{
			"address":     tuple.Address.Hex(),
			"storageKeys": keys,
		}
	}
	return out
}

// CID returns the DAG-ETH cid of the transaction's consensus encoding
func CID(tx *types.Transaction) (cid.Cid, error) {
	enc, err := tx.MarshalBinary()
	if err != nil {
		return cid.Cid{}, err
	}
	return shared.RawToCid(MultiCodecType, enc)
}
