package universallink

import "github.com/ethereum/go-ethereum/common"

// TokenDescriptor is the minimal token metadata handed to the paid-order
// importer along with the order.
type TokenDescriptor struct {
	Contract common.Address `json:"contract"`
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
}

// NewTokenDescriptor describes a ticket contract. Tickets are indivisible so
// decimals is always zero.
func NewTokenDescriptor(signedOrder SignedOrder, name, symbol string) TokenDescriptor {
	return TokenDescriptor{
		Contract: signedOrder.Order.ContractAddress,
		Name:     name,
		Symbol:   symbol,
	}
}
