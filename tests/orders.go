package tests

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/flokiorg/tickethub/universallink"
)

var TestContract = common.HexToAddress("0xABC0000000000000000000000000000000000001")

const TestWallet = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

// NewSignedOrder signs an order for TestContract with a fresh issuer key.
func NewSignedOrder(t *testing.T, indices []uint16, expiry uint32, price int64) (universallink.SignedOrder, *ecdsa.PrivateKey) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	order := universallink.NewOrder(TestContract, indices, expiry, big.NewInt(price))
	msg, err := order.Message()
	require.NoError(t, err)

	sig, err := crypto.Sign(crypto.Keccak256(msg), key)
	require.NoError(t, err)
	sig[64] += 27

	return universallink.SignedOrder{Order: order, Signature: hexutil.Encode(sig)}, key
}

// NewLink returns the universal link for a freshly signed order.
func NewLink(t *testing.T, prefix string, indices []uint16, expiry uint32, price int64) string {
	t.Helper()

	signed, _ := NewSignedOrder(t, indices, expiry, price)
	link, err := universallink.NewCodec(prefix).Encode(signed)
	require.NoError(t, err)
	return link
}
