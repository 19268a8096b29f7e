package header

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/vulcanize/go-rpc-dageth/normalize"
)

/*
	type Header struct {
		ParentHash      Hash
		UncleHash       Hash
		Coinbase        Address
		Root            Hash
		TxHash          Hash
		ReceiptHash     Hash
		Bloom           Bloom
		Difficulty      BigInt
		Number          BigInt
		GasLimit        Uint
		GasUsed         Uint
		Time            Uint
		Extra           Bytes
		MixDigest       Hash
		Nonce           BlockNonce
		BaseFee         nullable BigInt
		WithdrawalsHash nullable Hash
		Hash            nullable Hash # the RPC reported hash, only used for verification
	}
*/

// Schema maps eth_getBlockBy* and eth_getUncleBy* header fields onto their canonical form
var Schema = &normalize.Schema{
	Name: "Header",
	Fields: []normalize.Field{
		{Name: "ParentHash", Aliases: []string{"parentHash"}, Encoding: normalize.FixedBytes, Length: common.HashLength},
		{Name: "UncleHash", Aliases: []string{"sha3Uncles"}, Encoding: normalize.FixedBytes, Length: common.HashLength},
		{Name: "Coinbase", Aliases: []string{"miner", "coinbase"}, Encoding: normalize.FixedBytes, Length: common.AddressLength},
		{Name: "Root", Aliases: []string{"stateRoot"}, Encoding: normalize.FixedBytes, Length: common.HashLength},
		{Name: "TxHash", Aliases: []string{"transactionsRoot"}, Encoding: normalize.FixedBytes, Length: common.HashLength},
		{Name: "ReceiptHash", Aliases: []string{"receiptsRoot", "receiptRoot"}, Encoding: normalize.FixedBytes, Length: common.HashLength},
		{Name: "Bloom", Aliases: []string{"logsBloom"}, Encoding: normalize.FixedBytes, Length: types.BloomByteLength},
		{Name: "Difficulty", Aliases: []string{"difficulty"}, Encoding: normalize.BigInt},
		{Name: "Number", Aliases: []string{"number"}, Encoding: normalize.BigInt},
		{Name: "GasLimit", Aliases: []string{"gasLimit"}, Encoding: normalize.Uint64},
		{Name: "GasUsed", Aliases: []string{"gasUsed"}, Encoding: normalize.Uint64},
		{Name: "Time", Aliases: []string{"timestamp"}, Encoding: normalize.Uint64},
		{Name: "Extra", Aliases: []string{"extraData"}, Encoding: normalize.Bytes, Policy: normalize.Default, Default: normalize.BytesValue(nil)},
		{Name: "MixDigest", Aliases: []string{"mixHash"}, Encoding: normalize.FixedBytes, Length: common.HashLength,
			Policy: normalize.Default, Default: normalize.BytesValue(make([]byte, common.HashLength))},
		{Name: "Nonce", Aliases: []string{"nonce"}, Encoding: normalize.FixedBytes, Length: len(types.BlockNonce{}),
			Policy: normalize.Default, Default: normalize.BytesValue(make([]byte, len(types.BlockNonce{})))},
		{Name: "BaseFee", Aliases: []string{"baseFeePerGas"}, Encoding: normalize.BigInt, Policy: normalize.Optional},
		{Name: "WithdrawalsHash", Aliases: []string{"withdrawalsRoot"}, Encoding: normalize.FixedBytes, Length: common.HashLength, Policy: normalize.Optional},
		{Name: "Hash", Aliases: []string{"hash"}, Encoding: normalize.FixedBytes, Length: common.HashLength, Policy: normalize.Optional},
	},
}
