/*
Package rpcdageth converts Ethereum JSON-RPC block, header and transaction
objects into go-ethereum consensus types, ready for hashing and for DAG-ETH
(https://github.com/ipld/ipld/tree/master/specs/codecs/ethereum) encoding.

Each RPC object is first normalized against a schema table (see the normalize
package): hex and decimal text becomes fixed length bytes or unsigned
integers, aliased spellings resolve to one canonical field, and absent
fields become null or their documented default. The normalized set is
rendered as a DAG-ETH shaped IPLD node, which the header, tx and block
packages pack into go-ethereum Headers, Transactions and Blocks.

Use BlockFromRPC for a whole block, or header.FromRPC and tx.FromRPC for a
single structure.
*/
package rpcdageth

import (
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"

	"github.com/vulcanize/go-rpc-dageth/block"
	"github.com/vulcanize/go-rpc-dageth/normalize"
)

// BlockFromRPC assembles a block from an eth_getBlockBy* result with full
// transaction objects and the block's eth_getUncleBy* results, in uncle
// index order. cfg may be nil.
func BlockFromRPC(blockRPC normalize.Record, unclesRPC []normalize.Record, cfg *params.ChainConfig, opts ...block.Option) (*types.Block, error) {
	return block.Assemble(blockRPC, unclesRPC, cfg, opts...)
}
