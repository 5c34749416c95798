package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource string

func (s staticSource) GetWalletAddress() string { return string(s) }

func TestKeys_GetWalletAddress(t *testing.T) {
	address, err := NewKeys(staticSource("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")).GetWalletAddress()
	require.NoError(t, err)
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", address)
}

func TestKeys_NoWallet(t *testing.T) {
	_, err := NewKeys(staticSource("")).GetWalletAddress()
	assert.ErrorIs(t, err, ErrNoWallet)
}

func TestKeys_InvalidAddress(t *testing.T) {
	_, err := NewKeys(staticSource("0xnothex")).GetWalletAddress()
	assert.Error(t, err)
}
