package tx_list

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/ipfs/go-cid"

	"github.com/vulcanize/go-rpc-dageth/normalize"
	"github.com/vulcanize/go-rpc-dageth/shared"
	"github.com/vulcanize/go-rpc-dageth/tx"
)

// MultiCodecType is the multicodec for RLP encoded transaction lists
var MultiCodecType = uint64(0x9c)

// FromRPC builds the transactions of a block in their given order. Errors
// are reported under transactions[i].
func FromRPC(records []normalize.Record, opts tx.Options) ([]*types.Transaction, error) {
	txs := make([]*types.Transaction, 0, len(records))
	for i, rec := range records {
		t, err := tx.FromRPCAt(shared.IndexPath("transactions", i), rec, opts)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, nil
}

// Root derives the transactions trie root the header commits to
func Root(txs []*types.Transaction) common.Hash {
	return types.DeriveSha(types.Transactions(txs), trie.NewStackTrie(nil))
}

// CID returns the DAG-ETH cid of the RLP encoded transaction list
func CID(txs []*types.Transaction) (cid.Cid, error) {
	return shared.RLPToCid(MultiCodecType, txs)
}
