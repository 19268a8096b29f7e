package tx

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/vulcanize/go-rpc-dageth/normalize"
)

/*
	type AccessElement struct {
		Address     Address
		StorageKeys [Hash]
	}

	type Transaction struct {
		TxType       Uint
		ChainID      nullable BigInt # defaults to the chain config's id for typed transactions
		AccountNonce Uint
		GasPrice     nullable BigInt # required unless the transaction is an EIP-1559 transaction
		GasTipCap    nullable BigInt # required for EIP-1559 transactions
		GasFeeCap    nullable BigInt # required for EIP-1559 transactions
		GasLimit     Uint
		Recipient    nullable Address # null recipient means the tx is a contract creation tx
		Amount       BigInt
		Data         Bytes
		AccessList   nullable [AccessElement]
		V            BigInt
		R            BigInt
		S            BigInt
		Hash         nullable Hash # the RPC reported hash, only used for verification
	}
*/

// AccessElementSchema maps one accessList entry onto its canonical form
var AccessElementSchema = &normalize.Schema{
	Name: "AccessElement",
	Fields: []normalize.Field{
		{Name: "Address", Aliases: []string{"address"}, Encoding: normalize.FixedBytes, Length: common.AddressLength},
		{Name: "StorageKeys", Aliases: []string{"storageKeys"}, Encoding: normalize.List,
			Elem:   &normalize.Field{Name: "StorageKey", Encoding: normalize.FixedBytes, Length: common.HashLength},
			Policy: normalize.Default, Default: normalize.ListValue(nil)},
	},
}

// Schema maps eth_getTransactionBy* fields onto their canonical form.
// gasLimit and data win over their legacy spellings gas and input whenever
// their keys are present.
var Schema = &normalize.Schema{
	Name: "Transaction",
	Fields: []normalize.Field{
		{Name: "TxType", Aliases: []string{"type"}, Encoding: normalize.Uint64, Policy: normalize.Default, Default: normalize.BigValue(common.Big0)},
		{Name: "ChainID", Aliases: []string{"chainId"}, Encoding: normalize.BigInt, Policy: normalize.Optional},
		{Name: "AccountNonce", Aliases: []string{"nonce"}, Encoding: normalize.Uint64},
		{Name: "GasPrice", Aliases: []string{"gasPrice"}, Encoding: normalize.BigInt, Policy: normalize.Optional},
		{Name: "GasTipCap", Aliases: []string{"maxPriorityFeePerGas"}, Encoding: normalize.BigInt, Policy: normalize.Optional},
		{Name: "GasFeeCap", Aliases: []string{"maxFeePerGas"}, Encoding: normalize.BigInt, Policy: normalize.Optional},
		{Name: "GasLimit", Aliases: []string{"gasLimit", "gas"}, Encoding: normalize.Uint64},
		{Name: "Recipient", Aliases: []string{"to"}, Encoding: normalize.FixedBytes, Length: common.AddressLength,
			Policy: normalize.Optional, Nullable: true},
		{Name: "Amount", Aliases: []string{"value"}, Encoding: normalize.BigInt, Policy: normalize.Default, Default: normalize.BigValue(common.Big0)},
		{Name: "Data", Aliases: []string{"data", "input"}, Encoding: normalize.Bytes, Policy: normalize.Default, Default: normalize.BytesValue(nil)},
		{Name: "AccessList", Aliases: []string{"accessList"}, Encoding: normalize.List, Policy: normalize.Optional,
			Elem: &normalize.Field{Name: "AccessElement", Encoding: normalize.Nested, Schema: AccessElementSchema}},
		{Name: "V", Aliases: []string{"v"}, Encoding: normalize.BigInt},
		{Name: "R", Aliases: []string{"r"}, Encoding: normalize.BigInt},
		{Name: "S", Aliases: []string{"s"}, Encoding: normalize.BigInt},
		{Name: "Hash", Aliases: []string{"hash"}, Encoding: normalize.FixedBytes, Length: common.HashLength, Policy: normalize.Optional},
	},
}
