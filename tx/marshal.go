package tx

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ipld/go-ipld-prime"

	"github.com/vulcanize/go-rpc-dageth/shared"
)

var (
	// ErrUnsupportedTxType is returned for a TxType with no known envelope
	ErrUnsupportedTxType = errors.New("unsupported transaction type")
	// ErrTxTypeNotActive is returned for a typed transaction included before its fork
	ErrTxTypeNotActive = errors.New("transaction type not active at block")
)

// Options carries the chain context a transaction is built in
type Options struct {
	// Config is consulted for fork activation and the default chain id; may be nil
	Config *params.ChainConfig
	// BlockNumber is the including block; fork checks are skipped when nil
	BlockNumber *big.Int
	// VerifyHash checks the rebuilt transaction against the record's hash, when it has one
	VerifyHash bool
}

// NewTx packs a normalized transaction node into a go-ethereum Transaction,
// picking the envelope by the node's TxType
func NewTx(node ipld.Node, opts Options) (*types.Transaction, error) {
	txType, err := shared.RequireUint64(node, "TxType")
	if err != nil {
		return nil, fmt.Errorf("invalid Transaction form (%w)", err)
	}
	if err := checkFork(txType, opts); err != nil {
		return nil, err
	}
	var inner types.TxData
	switch txType {
	case types.LegacyTxType:
		inner, err = packTx(&types.LegacyTx{}, legacyPackFuncs, node, opts)
	case types.AccessListTxType:
		inner, err = packTx(&types.AccessListTx{}, accessListPackFuncs, node, opts)
	case types.DynamicFeeTxType:
		inner, err = packTx(&types.DynamicFeeTx{}, dynamicFeePackFuncs, node, opts)
	default:
		return nil, fmt.Errorf("%w %d", ErrUnsupportedTxType, txType)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid Transaction form (%w)", err)
	}
	return types.NewTx(inner), nil
}

// ExpectedHash returns the RPC reported hash carried by a normalized transaction node, if any
func ExpectedHash(node ipld.Node) (*common.Hash, error) {
	b, err := shared.LookupBytes(node, "Hash")
	if err != nil || b == nil {
		return nil, err
	}
	h := common.BytesToHash(b)
	return &h, nil
}

func checkFork(txType uint64, opts Options) error {
	if opts.Config == nil || opts.BlockNumber == nil {
		return nil
	}
	switch txType {
	case types.AccessListTxType:
		if !opts.Config.IsBerlin(opts.BlockNumber) {
			return fmt.Errorf("%w: type %d at block %v is pre-Berlin", ErrTxTypeNotActive, txType, opts.BlockNumber)
		}
	case types.DynamicFeeTxType:
		if !opts.Config.IsLondon(opts.BlockNumber) {
			return fmt.Errorf("%w: type %d at block %v is pre-London", ErrTxTypeNotActive, txType, opts.BlockNumber)
		}
	}
	return nil
}

type packFunc func(types.TxData, ipld.Node, Options) error

func packTx(tx types.TxData, funcs []packFunc, node ipld.Node, opts Options) (types.TxData, error) {
	for _, pFunc := range funcs {
		if err := pFunc(tx, node, opts); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

var legacyPackFuncs = []packFunc{
	packAccountNonce,
	packGasPrice,
	packGasLimit,
	packRecipient,
	packAmount,
	packData,
	packSignatureValues,
}

var accessListPackFuncs = []packFunc{
	packChainID,
	packAccountNonce,
	packGasPrice,
	packGasLimit,
	packRecipient,
	packAmount,
	packData,
	packAccessList,
	packSignatureValues,
}

var dynamicFeePackFuncs = []packFunc{
	packChainID,
	packAccountNonce,
	packGasTipCap,
	packGasFeeCap,
	packGasLimit,
	packRecipient,
	packAmount,
	packData,
	packAccessList,
	packSignatureValues,
}

func packChainID(tx types.TxData, node ipld.Node, opts Options) error {
	chainID, err := shared.LookupBig(node, "ChainID")
	if err != nil {
		return err
	}
	if chainID == nil {
		if opts.Config == nil || opts.Config.ChainID == nil {
			return shared.MissingField("ChainID")
		}
		chainID = new(big.Int).Set(opts.Config.ChainID)
	}
	switch t := tx.(type) {
	case *types.AccessListTx:
		t.ChainID = chainID
	case *types.DynamicFeeTx:
		t.ChainID = chainID
	default:
		return fmt.Errorf("unrecognized tx type %T", t)
	}
	return nil
}

func packAccountNonce(tx types.TxData, node ipld.Node, _ Options) error {
	nonce, err := shared.RequireUint64(node, "AccountNonce")
	if err != nil {
		return err
	}
	switch t := tx.(type) {
	case *types.LegacyTx:
		t.Nonce = nonce
	case *types.AccessListTx:
		t.Nonce = nonce
	case *types.DynamicFeeTx:
		t.Nonce = nonce
	default:
		return fmt.Errorf("unrecognized tx type %T", t)
	}
	return nil
}

func packGasPrice(tx types.TxData, node ipld.Node, _ Options) error {
	gp, err := shared.RequireBig(node, "GasPrice")
	if err != nil {
		return err
	}
	switch t := tx.(type) {
	case *types.LegacyTx:
		t.GasPrice = gp
	case *types.AccessListTx:
		t.GasPrice = gp
	default:
		return fmt.Errorf("unrecognized tx type %T", t)
	}
	return nil
}

func packGasTipCap(tx types.TxData, node ipld.Node, _ Options) error {
	tip, err := shared.RequireBig(node, "GasTipCap")
	if err != nil {
		return err
	}
	t, ok := tx.(*types.DynamicFeeTx)
	if !ok {
		return fmt.Errorf("unrecognized tx type %T", tx)
	}
	t.GasTipCap = tip
	return nil
}

func packGasFeeCap(tx types.TxData, node ipld.Node, _ Options) error {
	feeCap, err := shared.RequireBig(node, "GasFeeCap")
	if err != nil {
		return err
	}
	t, ok := tx.(*types.DynamicFeeTx)
	if !ok {
		return fmt.Errorf("unrecognized tx type %T", tx)
	}
	t.GasFeeCap = feeCap
	return nil
}

func packGasLimit(tx types.TxData, node ipld.Node, _ Options) error {
	gl, err := shared.RequireUint64(node, "GasLimit")
	if err != nil {
		return err
	}
	switch t := tx.(type) {
	case *types.LegacyTx:
		t.Gas = gl
	case *types.AccessListTx:
		t.Gas = gl
	case *types.DynamicFeeTx:
		t.Gas = gl
	default:
		return fmt.Errorf("unrecognized tx type %T", t)
	}
	return nil
}

func packRecipient(tx types.TxData, node ipld.Node, _ Options) error {
	rBytes, err := shared.LookupBytes(node, "Recipient")
	if err != nil {
		return err
	}
	if rBytes == nil {
		return nil
	}
	if len(rBytes) != common.AddressLength {
		return fmt.Errorf("Recipient must be %d bytes, got %d", common.AddressLength, len(rBytes))
	}
	recipient := common.BytesToAddress(rBytes)
	switch t := tx.(type) {
	case *types.LegacyTx:
		t.To = &recipient
	case *types.AccessListTx:
		t.To = &recipient
	case *types.DynamicFeeTx:
		t.To = &recipient
	default:
		return fmt.Errorf("unrecognized tx type %T", t)
	}
	return nil
}

func packAmount(tx types.TxData, node ipld.Node, _ Options) error {
	amount, err := shared.RequireBig(node, "Amount")
	if err != nil {
		return err
	}
	switch t := tx.(type) {
	case *types.LegacyTx:
		t.Value = amount
	case *types.AccessListTx:
		t.Value = amount
	case *types.DynamicFeeTx:
		t.Value = amount
	default:
		return fmt.Errorf("unrecognized tx type %T", t)
	}
	return nil
}

func packData(tx types.TxData, node ipld.Node, _ Options) error {
	data, err := shared.RequireBytes(node, "Data")
	if err != nil {
		return err
	}
	switch t := tx.(type) {
	case *types.LegacyTx:
		t.Data = data
	case *types.AccessListTx:
		t.Data = data
	case *types.DynamicFeeTx:
		t.Data = data
	default:
		return fmt.Errorf("unrecognized tx type %T", t)
	}
	return nil
}

func packAccessList(tx types.TxData, node ipld.Node, _ Options) error {
	alNode, err := shared.LookupNullable(node, "AccessList")
	if err != nil {
		return err
	}
	accessList := types.AccessList{}
	if alNode != nil {
		accessList = make(types.AccessList, alNode.Length())
		accessListIt := alNode.ListIterator()
		for !accessListIt.Done() {
			index, accessElementNode, err := accessListIt.Next()
			if err != nil {
				return err
			}
			addrBytes, err := shared.RequireFixedBytes(accessElementNode, "Address", common.AddressLength)
			if err != nil {
				return fmt.Errorf("AccessList[%d]: %w", index, err)
			}
			storageKeysNode, err := shared.LookupNullable(accessElementNode, "StorageKeys")
			if err != nil {
				return err
			}
			var storageKeys []common.Hash
			if storageKeysNode != nil && storageKeysNode.Length() > 0 {
				storageKeys = make([]common.Hash, storageKeysNode.Length())
				storageKeysIt := storageKeysNode.ListIterator()
				for !storageKeysIt.Done() {
					keyIndex, storageKeyNode, err := storageKeysIt.Next()
					if err != nil {
						return err
					}
					storageKeyBytes, err := storageKeyNode.AsBytes()
					if err != nil {
						return err
					}
					storageKeys[keyIndex] = common.BytesToHash(storageKeyBytes)
				}
			}
			accessList[index] = types.AccessTuple{
				Address:     common.BytesToAddress(addrBytes),
				StorageKeys: storageKeys,
			}
		}
	}
	switch t := tx.(type) {
	case *types.AccessListTx:
		t.AccessList = accessList
	case *types.DynamicFeeTx:
		t.AccessList = accessList
	default:
		return fmt.Errorf("unrecognized tx type %T", t)
	}
	return nil
}

func packSignatureValues(tx types.TxData, node ipld.Node, _ Options) error {
	v, err := shared.RequireBig(node, "V")
	if err != nil {
		return err
	}
	r, err := shared.RequireBig(node, "R")
	if err != nil {
		return err
	}
	s, err := shared.RequireBig(node, "S")
	if err != nil {
		return err
	}
	switch t := tx.(type) {
	case *types.LegacyTx:
		t.V, t.R, t.S = v, r, s
	case *types.AccessListTx:
		t.V, t.R, t.S = v, r, s
	case *types.DynamicFeeTx:
		t.V, t.R, t.S = v, r, s
	default:
		return fmt.Errorf("unrecognized tx type %T", t)
	}
	return nil
}
