package shared

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

var testKey, _ = crypto.HexToECDSA("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")

// TestChainID is the chain id the mock transactions are signed for
var TestChainID = big.NewInt(1)

// RandomHash returns a random hash
func RandomHash() common.Hash {
	return common.BytesToHash(RandomBytes(common.HashLength))
}

// RandomAddr returns a random address
func RandomAddr() common.Address {
	return common.BytesToAddress(RandomBytes(common.AddressLength))
}

// RandomBytes returns a random byte slice of the provided length
func RandomBytes(len int) []byte {
	by := make([]byte, len)
	rand.Read(by)
	return by
}

// MockHeader returns a fully populated header at the given height. London
// headers carry a base fee.
func MockHeader(number int64, london bool) *types.Header {
	h := &types.Header{
		ParentHash:  RandomHash(),
		UncleHash:   types.EmptyUncleHash,
		Coinbase:    RandomAddr(),
		Root:        RandomHash(),
		TxHash:      types.EmptyRootHash,
		ReceiptHash: types.EmptyRootHash,
		Bloom:       types.BytesToBloom(RandomBytes(types.BloomByteLength)),
		Difficulty:  big.NewInt(131072),
		Number:      big.NewInt(number),
		GasLimit:    30000000,
		GasUsed:     21000,
		Time:        1700000000,
		Extra:       []byte("mock"),
		MixDigest:   RandomHash(),
		Nonce:       types.EncodeNonce(uint64(number)),
	}
	if london {
		h.BaseFee = big.NewInt(1000000000)
	}
	return h
}

// MockLegacyTx returns a pre-EIP-155 legacy transaction (V in {27,28})
func MockLegacyTx(t testing.TB, nonce uint64) *types.Transaction {
	to := common.HexToAddress("0xb94f5374fce5edbc8e2a8697c15331677e6ebf0b")
	return signTx(t, types.HomesteadSigner{}, &types.LegacyTx{
		Nonce:    nonce,
		GasPrice: big.NewInt(1),
		Gas:      21000,
		To:       &to,
		Value:    big.NewInt(10),
		Data:     common.FromHex("5544"),
	})
}

// MockEIP155Tx returns a replay protected legacy transaction
func MockEIP155Tx(t testing.TB, nonce uint64) *types.Transaction {
	to := common.HexToAddress("0xb94f5374fce5edbc8e2a8697c15331677e6ebf1a")
	return signTx(t, types.NewEIP155Signer(TestChainID), &types.LegacyTx{
		Nonce:    nonce,
		GasPrice: big.NewInt(2000000000),
		Gas:      50000,
		To:       &to,
		Value:    big.NewInt(1e18),
	})
}

// MockContractCreationTx returns a legacy transaction with no recipient
func MockContractCreationTx(t testing.TB, nonce uint64) *types.Transaction {
	return signTx(t, types.NewEIP155Signer(TestChainID), &types.LegacyTx{
		Nonce:    nonce,
		GasPrice: big.NewInt(2000000000),
		Gas:      500000,
		Data:     common.FromHex("6080604052348015600f57600080fd5b50"),
	})
}

// MockAccessListTx returns a signed EIP-2930 transaction
func MockAccessListTx(t testing.TB, nonce uint64) *types.Transaction {
	to := common.HexToAddress("0xb94f5374fce5edbc8e2a8697c15331677e6ebf0b")
	return signTx(t, types.NewEIP2930Signer(TestChainID), &types.AccessListTx{
		ChainID:  TestChainID,
		Nonce:    nonce,
		GasPrice: big.NewInt(1),
		Gas:      25000,
		To:       &to,
		Value:    big.NewInt(10),
		Data:     common.FromHex("5544"),
		AccessList: types.AccessList{
			{Address: to, StorageKeys: []common.Hash{crypto.Keccak256Hash(to.Bytes())}},
			{Address: common.HexToAddress("0x01"), StorageKeys: nil},
		},
	})
}

// MockDynamicFeeTx returns a signed EIP-1559 transaction
func MockDynamicFeeTx(t testing.TB, nonce uint64) *types.Transaction {
	to := common.HexToAddress("0xb94f5374fce5edbc8e2a8697c15331677e6ebf0b")
	return signTx(t, types.NewLondonSigner(TestChainID), &types.DynamicFeeTx{
		ChainID:   TestChainID,
		Nonce:     nonce,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(2),
		Gas:       25000,
		To:        &to,
		Value:     big.NewInt(10),
		Data:      common.FromHex("5544"),
		AccessList: types.AccessList{
			{Address: to, StorageKeys: []common.Hash{crypto.Keccak256Hash(to.Bytes()), RandomHash()}},
		},
	})
}

func signTx(t testing.TB, signer types.Signer, inner types.TxData) *types.Transaction {
	t.Helper()
	tx, err := types.SignNewTx(testKey, signer, inner)
	if err != nil {
		t.Fatalf("unable to sign mock transaction: %v", err)
	}
	return tx
}
