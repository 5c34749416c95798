// Package keys exposes the recipient wallet to the import flow. Keys never
// leave the wallet; only the public address is handed out.
package keys

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var ErrNoWallet = errors.New("no wallet selected")

type Keys interface {
	// GetWalletAddress returns the checksummed address of the wallet that
	// receives imported tickets.
	GetWalletAddress() (string, error)
}

// AddressSource supplies the currently selected wallet, empty if none.
type AddressSource interface {
	GetWalletAddress() string
}

type keys struct {
	source AddressSource
}

func NewKeys(source AddressSource) *keys {
	return &keys{source: source}
}

func (k *keys) GetWalletAddress() (string, error) {
	address := k.source.GetWalletAddress()
	if address == "" {
		return "", ErrNoWallet
	}
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("wallet address %q is not a hex address", address)
	}
	return common.HexToAddress(address).Hex(), nil
}
