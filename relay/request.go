// Package relay builds and submits free-transfer claims to the payment relay
// server, which pays gas on behalf of the recipient.
package relay

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/flokiorg/tickethub/universallink"
)

const (
	rHexEnd = 64
	sHexEnd = 128
)

var (
	ErrSignatureTooShort  = errors.New("signature too short")
	ErrMalformedSignature = errors.New("malformed signature")
	ErrEmptyIndices       = errors.New("order has no ticket indices")
	ErrInvalidAddress     = errors.New("invalid wallet address")
)

// Request is the exact parameter set the relay verifies. Field names are part
// of the relay protocol.
type Request struct {
	Address string `json:"address"`
	Indices string `json:"indices"`
	Expiry  string `json:"expiry"`
	V       string `json:"v"`
	R       string `json:"r"`
	S       string `json:"s"`
}

func (r Request) Values() url.Values {
	return url.Values{
		"address": {r.Address},
		"indices": {r.Indices},
		"expiry":  {r.Expiry},
		"v":       {r.V},
		"r":       {r.R},
		"s":       {r.S},
	}
}

// Build turns a signed order and the recipient wallet into a relay request.
// It does no I/O.
func Build(signedOrder universallink.SignedOrder, walletAddress string) (Request, error) {
	if len(signedOrder.Order.Indices) == 0 {
		return Request{}, ErrEmptyIndices
	}
	if !common.IsHexAddress(walletAddress) {
		return Request{}, fmt.Errorf("%w: %q", ErrInvalidAddress, walletAddress)
	}

	v, r, s, err := SplitSignature(signedOrder.Signature)
	if err != nil {
		return Request{}, err
	}
	if _, err := signedOrder.SignatureBytes(); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}

	return Request{
		Address: common.HexToAddress(walletAddress).Hex(),
		Indices: JoinIndices(signedOrder.Order.Indices),
		Expiry:  strconv.FormatUint(uint64(signedOrder.Order.Expiry), 10),
		V:       v,
		R:       r,
		S:       s,
	}, nil
}

// SplitSignature splits a 0x-prefixed r||s||v hex signature. r and s keep a
// 0x prefix, v is the bare hex remainder after the first 128 characters.
func SplitSignature(signature string) (v, r, s string, err error) {
	sig := strings.TrimPrefix(strings.TrimPrefix(signature, "0x"), "0X")
	if len(sig) < sHexEnd {
		return "", "", "", fmt.Errorf("%w: %d hex characters after prefix, need at least %d", ErrSignatureTooShort, len(sig), sHexEnd)
	}
	return sig[sHexEnd:], "0x" + sig[:rHexEnd], "0x" + sig[rHexEnd:sHexEnd], nil
}

// JoinIndices renders indices as comma separated decimals.
func JoinIndices(indices []uint16) string {
	parts := make([]string, len(indices))
	for i, index := range indices {
		parts[i] = strconv.FormatUint(uint64(index), 10)
	}
	return strings.Join(parts, ",")
}
