package block

import (
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ipfs/go-cid"

	"github.com/vulcanize/go-rpc-dageth/header"
	"github.com/vulcanize/go-rpc-dageth/tx"
	"github.com/vulcanize/go-rpc-dageth/tx_list"
	"github.com/vulcanize/go-rpc-dageth/uncles"
)

// Links holds the DAG-ETH cids of an assembled block's parts
type Links struct {
	// Header is keccak-256 of the RLP header, under the EthBlock codec
	Header cid.Cid
	// Transactions is keccak-256 of the RLP transaction list
	Transactions cid.Cid
	// Uncles is keccak-256 of the RLP uncle list, under the EthBlockList codec
	Uncles cid.Cid
	// TxCIDs are the per transaction cids, in block order
	TxCIDs []cid.Cid
}

// LinksOf computes the DAG-ETH cids for b
func LinksOf(b *types.Block) (Links, error) {
	var (
		links Links
		err   error
	)
	if links.Header, err = header.CID(b.Header()); err != nil {
		return Links{}, err
	}
	txs := b.Transactions()
	if links.Transactions, err = tx_list.CID(txs); err != nil {
		return Links{}, err
	}
	if links.Uncles, err = uncles.CID(b.Uncles()); err != nil {
		return Links{}, err
	}
	links.TxCIDs = make([]cid.Cid, len(txs))
	for i, t := range txs {
		if links.TxCIDs[i], err = tx.CID(t); err != nil {
			return Links{}, err
		}
	}
	return links, nil
}
