package block

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ethereum/go-ethereum/trie"

	"github.com/vulcanize/go-rpc-dageth/header"
	"github.com/vulcanize/go-rpc-dageth/normalize"
	"github.com/vulcanize/go-rpc-dageth/tx"
	"github.com/vulcanize/go-rpc-dageth/tx_list"
	"github.com/vulcanize/go-rpc-dageth/uncles"
)

// ErrRootMismatch is returned when a header commitment doesn't match the assembled body
var ErrRootMismatch = errors.New("root mismatch")

// Option tunes Assemble
type Option func(*settings)

type settings struct {
	verifyHashes bool
	verifyRoots  bool
}

// WithVerifyHashes checks every rebuilt header and transaction against the
// hash its RPC record reports, when it reports one
func WithVerifyHashes() Option {
	return func(s *settings) { s.verifyHashes = true }
}

// WithVerifyRoots checks the header's transactions root, uncle hash and
// withdrawals root against the assembled body
func WithVerifyRoots() Option {
	return func(s *settings) { s.verifyRoots = true }
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Assemble converts an eth_getBlockBy* result (with full transaction objects)
// and its eth_getUncleBy* results into a block. The header is built first,
// then the transactions and the uncles in their given order. The first error
// aborts the whole assembly.
func Assemble(blockRPC normalize.Record, unclesRPC []normalize.Record, cfg *params.ChainConfig, opts ...Option) (*types.Block, error) {
	s := newSettings(opts)
	headerOpts := header.Options{Config: cfg, VerifyHash: s.verifyHashes}

	h, err := header.FromRPCAt("", blockRPC, headerOpts)
	if err != nil {
		return nil, err
	}

	txRecords, err := blockRPC.Records("transactions")
	if err != nil {
		return nil, err
	}
	txs, err := tx_list.FromRPC(txRecords, tx.Options{Config: cfg, BlockNumber: h.Number, VerifyHash: s.verifyHashes})
	if err != nil {
		return nil, err
	}

	uncleHeaders, err := uncles.FromRPC(unclesRPC, headerOpts)
	if err != nil {
		return nil, err
	}

	withdrawals, err := withdrawalsFromRPC(blockRPC)
	if err != nil {
		return nil, err
	}

	return NewBlock(Body{Header: h, Transactions: txs, Uncles: uncleHeaders, Withdrawals: withdrawals}, opts...)
}

// Body is the set of built structures a block is composed from
type Body struct {
	Header       *types.Header
	Transactions []*types.Transaction
	Uncles       []*types.Header
	// Withdrawals is nil for pre-Shanghai blocks
	Withdrawals []*types.Withdrawal
}

// NewBlock composes a block from its parts without recomputing any header
// commitment. With WithVerifyRoots the commitments are checked instead.
func NewBlock(body Body, opts ...Option) (*types.Block, error) {
	if body.Header == nil {
		return nil, fmt.Errorf("block has no header")
	}
	if newSettings(opts).verifyRoots {
		if err := verifyRoots(body); err != nil {
			return nil, err
		}
	}
	b := types.NewBlockWithHeader(body.Header).WithBody(body.Transactions, body.Uncles)
	if body.Withdrawals != nil {
		b = b.WithWithdrawals(body.Withdrawals)
	}
	return b, nil
}

func verifyRoots(body Body) error {
	h := body.Header
	if root := tx_list.Root(body.Transactions); root != h.TxHash {
		return fmt.Errorf("%w: transactionsRoot is %s, transactions derive %s", ErrRootMismatch, h.TxHash.Hex(), root.Hex())
	}
	if hash := uncles.Hash(body.Uncles); hash != h.UncleHash {
		return fmt.Errorf("%w: sha3Uncles is %s, uncles derive %s", ErrRootMismatch, h.UncleHash.Hex(), hash.Hex())
	}
	switch {
	case h.WithdrawalsHash == nil && body.Withdrawals == nil:
	case h.WithdrawalsHash == nil:
		return fmt.Errorf("%w: withdrawals present without withdrawalsRoot", ErrRootMismatch)
	case body.Withdrawals == nil:
		return fmt.Errorf("%w: withdrawalsRoot present without withdrawals", ErrRootMismatch)
	default:
		root := types.DeriveSha(types.Withdrawals(body.Withdrawals), trie.NewStackTrie(nil))
		if root != *h.WithdrawalsHash {
			return fmt.Errorf("%w: withdrawalsRoot is %s, withdrawals derive %s", ErrRootMismatch, h.WithdrawalsHash.Hex(), root.Hex())
		}
	}
	return nil
}
