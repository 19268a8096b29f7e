package uncles

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ipfs/go-cid"

	"github.com/vulcanize/go-rpc-dageth/header"
	"github.com/vulcanize/go-rpc-dageth/normalize"
	"github.com/vulcanize/go-rpc-dageth/shared"
)

// MultiCodecType is the multicodec for RLP encoded uncle lists
var MultiCodecType = uint64(cid.EthBlockList)

// FromRPC builds uncle headers in their given order, each exactly as a block
// header is built. Errors are reported under uncles[i].
func FromRPC(records []normalize.Record, opts header.Options) ([]*types.Header, error) {
	uncles := make([]*types.Header, 0, len(records))
	for i, rec := range records {
		uncle, err := header.FromRPCAt(shared.IndexPath("uncles", i), rec, opts)
		if err != nil {
			return nil, err
		}
		uncles = append(uncles, uncle)
	}
	return uncles, nil
}

// Hash returns the uncle hash the parent header commits to
func Hash(uncles []*types.Header) common.Hash {
	return types.CalcUncleHash(uncles)
}

// CID returns the DAG-ETH cid of the RLP encoded uncle list
func CID(uncles []*types.Header) (cid.Cid, error) {
	return shared.RLPToCid(MultiCodecType, uncles)
}
