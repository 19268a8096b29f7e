package block

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ipld/go-ipld-prime"

	"github.com/vulcanize/go-rpc-dageth/normalize"
	"github.com/vulcanize/go-rpc-dageth/shared"
)

// WithdrawalSchema maps a Shanghai withdrawal object onto its canonical form
var WithdrawalSchema = &normalize.Schema{
	Name: "Withdrawal",
	Fields: []normalize.Field{
		{Name: "Index", Aliases: []string{"index"}, Encoding: normalize.Uint64},
		{Name: "Validator", Aliases: []string{"validatorIndex"}, Encoding: normalize.Uint64},
		{Name: "Address", Aliases: []string{"address"}, Encoding: normalize.FixedBytes, Length: common.AddressLength},
		{Name: "Amount", Aliases: []string{"amount"}, Encoding: normalize.Uint64},
	},
}

// withdrawalsFromRPC builds the block's withdrawals in order. It returns nil
// when the record has no withdrawals key, which marks a pre-Shanghai block.
func withdrawalsFromRPC(blockRPC normalize.Record) ([]*types.Withdrawal, error) {
	if _, ok := blockRPC["withdrawals"]; !ok {
		return nil, nil
	}
	records, err := blockRPC.Records("withdrawals")
	if err != nil {
		return nil, err
	}
	withdrawals := make([]*types.Withdrawal, 0, len(records))
	for i, rec := range records {
		path := shared.IndexPath("withdrawals", i)
		fields, err := normalize.NormalizeAt(path, WithdrawalSchema, rec)
		if err != nil {
			return nil, err
		}
		node, err := fields.Node()
		if err != nil {
			return nil, err
		}
		w, err := newWithdrawal(node)
		if err != nil {
			return nil, WithdrawalSchema.Locate(path, err)
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, nil
}

func newWithdrawal(node ipld.Node) (*types.Withdrawal, error) {
	w := new(types.Withdrawal)
	var err error
	if w.Index, err = shared.RequireUint64(node, "Index"); err != nil {
		return nil, err
	}
	if w.Validator, err = shared.RequireUint64(node, "Validator"); err != nil {
		return nil, err
	}
	addr, err := shared.RequireFixedBytes(node, "Address", common.AddressLength)
	if err != nil {
		return nil, err
	}
	w.Address = common.BytesToAddress(addr)
	if w.Amount, err = shared.RequireUint64(node, "Amount"); err != nil {
		return nil, err
	}
	return w, nil
}
