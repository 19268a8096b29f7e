package header

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ipfs/go-cid"

	"github.com/vulcanize/go-rpc-dageth/normalize"
	"github.com/vulcanize/go-rpc-dageth/shared"
)

// MultiCodecType is the multicodec for RLP encoded headers
var MultiCodecType = uint64(cid.EthBlock)

// Normalize normalizes an RPC header record against Schema
func Normalize(raw normalize.Record) (*normalize.FieldSet, error) {
	return normalize.Normalize(Schema, raw)
}

// Options carries the context a header is built in
type Options struct {
	// Config is consulted for the London base fee check; may be nil
	Config *params.ChainConfig
	// VerifyHash checks the rebuilt header against the record's hash, when it has one
	VerifyHash bool
}

// FromRPC builds a header from an eth_getBlockBy* or eth_getUncleBy* result
func FromRPC(raw normalize.Record, cfg *params.ChainConfig) (*types.Header, error) {
	return FromRPCAt("", raw, Options{Config: cfg})
}

// FromRPCAt is like FromRPC, but reports errors under the given path
func FromRPCAt(path string, raw normalize.Record, opts Options) (*types.Header, error) {
	fields, err := normalize.NormalizeAt(path, Schema, raw)
	if err != nil {
		return nil, err
	}
	node, err := fields.Node()
	if err != nil {
		return nil, err
	}
	h, err := NewHeader(node, opts.Config)
	if err != nil {
		return nil, Schema.Locate(path, err)
	}
	if opts.VerifyHash {
		expected, err := ExpectedHash(node)
		if err != nil {
			return nil, err
		}
		if err := shared.CheckHash("header", path, expected, h.Hash()); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// FromFields builds a header from an already normalized field set
func FromFields(fields *normalize.FieldSet, cfg *params.ChainConfig) (*types.Header, error) {
	node, err := fields.Node()
	if err != nil {
		return nil, err
	}
	return NewHeader(node, cfg)
}

// ToRPC renders a header the way eth_getBlockByNumber reports it
func ToRPC(h *types.Header) normalize.Record {
	rec := normalize.Record{
		"hash":             h.Hash().Hex(),
		"parentHash":       h.ParentHash.Hex(),
		"sha3Uncles":       h.UncleHash.Hex(),
		"miner":            h.Coinbase.Hex(),
		"stateRoot":        h.Root.Hex(),
		"transactionsRoot": h.TxHash.Hex(),
		"receiptsRoot":     h.ReceiptHash.Hex(),
		"logsBloom":        hexutil.Encode(h.Bloom.Bytes()),
		"difficulty":       hexutil.EncodeBig(h.Difficulty),
		"number":           hexutil.EncodeBig(h.Number),
		"gasLimit":         hexutil.EncodeUint64(h.GasLimit),
		"gasUsed":          hexutil.EncodeUint64(h.GasUsed),
		"timestamp":        hexutil.EncodeUint64(h.Time),
		"extraData":        hexutil.Encode(h.Extra),
		"mixHash":          h.MixDigest.Hex(),
		"nonce":            hexutil.Encode(h.Nonce[:]),
	}
	if h.BaseFee != nil {
		rec["baseFeePerGas"] = hexutil.EncodeBig(h.BaseFee)
	}
	if h.WithdrawalsHash != nil {
		rec["withdrawalsRoot"] = h.WithdrawalsHash.Hex()
	}
	return rec
}

// CID returns the DAG-ETH cid of the header's RLP encoding
func CID(h *types.Header) (cid.Cid, error) {
	return shared.RLPToCid(MultiCodecType, h)
}
