package header

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ipld/go-ipld-prime"

	"github.com/vulcanize/go-rpc-dageth/shared"
)

var (
	// ErrMissingBaseFee is returned for a post-London header without a base fee
	ErrMissingBaseFee = errors.New("header is missing base fee")
	// ErrUnexpectedBaseFee is returned for a pre-London header with a base fee
	ErrUnexpectedBaseFee = errors.New("header has base fee before London")
)

// NewHeader packs a normalized header node into a go-ethereum Header. When a
// chain config is given, the base fee is checked against the London fork.
func NewHeader(node ipld.Node, cfg *params.ChainConfig) (*types.Header, error) {
	header := new(types.Header)
	if err := EncodeHeader(header, node); err != nil {
		return nil, err
	}
	if err := checkForkFields(header, cfg); err != nil {
		return nil, err
	}
	return header, nil
}

// EncodeHeader packs the node into the provided go-ethereum Header
func EncodeHeader(header *types.Header, node ipld.Node) error {
	for _, pFunc := range requiredPackFuncs {
		if err := pFunc(header, node); err != nil {
			return fmt.Errorf("invalid Header form (%w)", err)
		}
	}
	return nil
}

// ExpectedHash returns the RPC reported hash carried by a normalized header node, if any
func ExpectedHash(node ipld.Node) (*common.Hash, error) {
	b, err := shared.LookupBytes(node, "Hash")
	if err != nil || b == nil {
		return nil, err
	}
	h := common.BytesToHash(b)
	return &h, nil
}

func checkForkFields(header *types.Header, cfg *params.ChainConfig) error {
	if cfg == nil {
		return nil
	}
	london := cfg.IsLondon(header.Number)
	if london && header.BaseFee == nil {
		return fmt.Errorf("%w (block %v)", ErrMissingBaseFee, header.Number)
	}
	if !london && header.BaseFee != nil {
		return fmt.Errorf("%w (block %v)", ErrUnexpectedBaseFee, header.Number)
	}
	return nil
}

var requiredPackFuncs = []func(*types.Header, ipld.Node) error{
	packParentHash,
	packUncleHash,
	packCoinbase,
	packRoot,
	packTxHash,
	packReceiptHash,
	packBloom,
	packDifficulty,
	packNumber,
	packGasLimit,
	packGasUsed,
	packTime,
	packExtra,
	packMixDigest,
	packNonce,
	packBaseFee,
	packWithdrawalsHash,
}

func packHash(key string, node ipld.Node) (common.Hash, error) {
	b, err := shared.RequireFixedBytes(node, key, common.HashLength)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(b), nil
}

func packParentHash(header *types.Header, node ipld.Node) (err error) {
	header.ParentHash, err = packHash("ParentHash", node)
	return err
}

func packUncleHash(header *types.Header, node ipld.Node) (err error) {
	header.UncleHash, err = packHash("UncleHash", node)
	return err
}

func packRoot(header *types.Header, node ipld.Node) (err error) {
	header.Root, err = packHash("Root", node)
	return err
}

func packTxHash(header *types.Header, node ipld.Node) (err error) {
	header.TxHash, err = packHash("TxHash", node)
	return err
}

func packReceiptHash(header *types.Header, node ipld.Node) (err error) {
	header.ReceiptHash, err = packHash("ReceiptHash", node)
	return err
}

func packMixDigest(header *types.Header, node ipld.Node) (err error) {
	header.MixDigest, err = packHash("MixDigest", node)
	return err
}

func packCoinbase(header *types.Header, node ipld.Node) error {
	b, err := shared.RequireFixedBytes(node, "Coinbase", common.AddressLength)
	if err != nil {
		return err
	}
	header.Coinbase = common.BytesToAddress(b)
	return nil
}

func packBloom(header *types.Header, node ipld.Node) error {
	b, err := shared.RequireFixedBytes(node, "Bloom", types.BloomByteLength)
	if err != nil {
		return err
	}
	header.Bloom = types.BytesToBloom(b)
	return nil
}

func packDifficulty(header *types.Header, node ipld.Node) (err error) {
	header.Difficulty, err = shared.RequireBig(node, "Difficulty")
	return err
}

func packNumber(header *types.Header, node ipld.Node) (err error) {
	header.Number, err = shared.RequireBig(node, "Number")
	return err
}

func packGasLimit(header *types.Header, node ipld.Node) (err error) {
	header.GasLimit, err = shared.RequireUint64(node, "GasLimit")
	return err
}

func packGasUsed(header *types.Header, node ipld.Node) (err error) {
	header.GasUsed, err = shared.RequireUint64(node, "GasUsed")
	return err
}

func packTime(header *types.Header, node ipld.Node) (err error) {
	header.Time, err = shared.RequireUint64(node, "Time")
	return err
}

func packExtra(header *types.Header, node ipld.Node) (err error) {
	header.Extra, err = shared.RequireBytes(node, "Extra")
	return err
}

func packNonce(header *types.Header, node ipld.Node) error {
	b, err := shared.RequireFixedBytes(node, "Nonce", len(types.BlockNonce{}))
	if err != nil {
		return err
	}
	copy(header.Nonce[:], b)
	return nil
}

func packBaseFee(header *types.Header, node ipld.Node) (err error) {
	header.BaseFee, err = shared.LookupBig(node, "BaseFee")
	return err
}

func packWithdrawalsHash(header *types.Header, node ipld.Node) error {
	b, err := shared.LookupBytes(node, "WithdrawalsHash")
	if err != nil || b == nil {
		return err
	}
	if len(b) != common.HashLength {
		return fmt.Errorf("WithdrawalsHash must be %d bytes, got %d", common.HashLength, len(b))
	}
	h := common.BytesToHash(b)
	header.WithdrawalsHash = &h
	return nil
}
