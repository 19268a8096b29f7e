package uncles_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ipfs/go-cid"

	"github.com/vulcanize/go-rpc-dageth/header"
	"github.com/vulcanize/go-rpc-dageth/normalize"
	"github.com/vulcanize/go-rpc-dageth/shared"
	"github.com/vulcanize/go-rpc-dageth/uncles"
)

func mockUncles() []*types.Header {
	number := params.MainnetChainConfig.LondonBlock.Int64() + 10
	return []*types.Header{
		shared.MockHeader(number, true),
		shared.MockHeader(number-1, true),
	}
}

func toRPC(headers []*types.Header) []normalize.Record {
	out := make([]normalize.Record, len(headers))
	for i, h := range headers {
		out[i] = header.ToRPC(h)
	}
	return out
}

func TestUnclesFromRPC(t *testing.T) {
	want := mockUncles()
	got, err := uncles.FromRPC(toRPC(want), header.Options{Config: params.MainnetChainConfig, VerifyHash: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d uncles, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Hash() != want[i].Hash() {
			t.Errorf("uncle %d hash (%s) does not match expected hash (%s)", i, got[i].Hash().Hex(), want[i].Hash().Hex())
		}
	}
	if uncles.Hash(got) != types.CalcUncleHash(want) {
		t.Error("uncle hash of the rebuilt uncles does not match")
	}
	if uncles.Hash(nil) != types.EmptyUncleHash {
		t.Error("expected the empty uncle hash for no uncles")
	}
}

func TestUnclesErrorPath(t *testing.T) {
	records := toRPC(mockUncles())
	records[1]["gasUsed"] = "0x10000000000000000"
	_, err := uncles.FromRPC(records, header.Options{})
	var invalid *shared.InvalidFieldEncodingError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected an InvalidFieldEncodingError, got %v", err)
	}
	if invalid.Field != "uncles[1].gasUsed" {
		t.Errorf("unexpected error path %s", invalid.Field)
	}

	records = toRPC(mockUncles())
	records[0]["hash"] = shared.RandomHash().Hex()
	if _, err := uncles.FromRPC(records, header.Options{VerifyHash: true}); !errors.Is(err, shared.ErrHashMismatch) {
		t.Errorf("expected ErrHashMismatch, got %v", err)
	}
}

func TestUnclesMissingFieldPath(t *testing.T) {
	records := toRPC(mockUncles())
	delete(records[1], "miner")
	_, err := uncles.FromRPC(records, header.Options{})
	var missing *shared.MissingRequiredFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected a MissingRequiredFieldError, got %v", err)
	}
	if missing.Field != "Coinbase" || missing.Path != "uncles[1].miner" {
		t.Errorf("expected Coinbase at uncles[1].miner, got %s at %q", missing.Field, missing.Path)
	}

	records = toRPC(mockUncles())
	delete(records[0], "baseFeePerGas")
	_, err = uncles.FromRPC(records, header.Options{Config: params.MainnetChainConfig})
	if !errors.Is(err, header.ErrMissingBaseFee) {
		t.Fatalf("expected ErrMissingBaseFee, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "uncles[0]: ") {
		t.Errorf("expected the message to lead with the uncle, got %q", err.Error())
	}
}

func TestUnclesCID(t *testing.T) {
	us := mockUncles()
	c, err := uncles.CID(us)
	if err != nil {
		t.Fatal(err)
	}
	if c.Type() != cid.EthBlockList {
		t.Errorf("expected codec %x, got %x", cid.EthBlockList, c.Type())
	}
	enc, err := rlp.EncodeToBytes(us)
	if err != nil {
		t.Fatal(err)
	}
	want, err := shared.RawToCid(cid.EthBlockList, enc)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Equals(want) {
		t.Errorf("uncle list cid (%s) does not match expected cid (%s)", c, want)
	}
}
