package universallink

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const DefaultPrefix = "https://www.awallet.io/"

var (
	// ErrSchemeMismatch means the URL is not a transfer link at all.
	ErrSchemeMismatch = errors.New("url is not a ticket transfer link")
	ErrMalformed      = errors.New("malformed ticket transfer link")
)

var payloadEncodings = []*base64.Encoding{
	base64.RawURLEncoding,
	base64.URLEncoding,
	base64.RawStdEncoding,
	base64.StdEncoding,
}

// Codec converts between universal links and signed orders. It holds no
// mutable state and is safe for concurrent use.
type Codec struct {
	prefix string
}

func NewCodec(prefix string) *Codec {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Codec{prefix: prefix}
}

// Matches reports whether rawURL carries the transfer link prefix.
func (c *Codec) Matches(rawURL string) bool {
	return strings.HasPrefix(strings.TrimSpace(rawURL), c.prefix)
}

// Decode parses a universal link. Links with another prefix fail with
// ErrSchemeMismatch, anything that does not match the payload layout with
// ErrMalformed.
func (c *Codec) Decode(rawURL string) (SignedOrder, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.HasPrefix(rawURL, c.prefix) {
		return SignedOrder{}, ErrSchemeMismatch
	}

	payload, err := decodePayload(strings.TrimPrefix(rawURL, c.prefix))
	if err != nil {
		return SignedOrder{}, err
	}
	return parsePayload(payload)
}

// Encode builds the universal link for a signed order.
func (c *Codec) Encode(signedOrder SignedOrder) (string, error) {
	msg, err := signedOrder.Order.Message()
	if err != nil {
		return "", err
	}
	sig, err := signedOrder.SignatureBytes()
	if err != nil {
		return "", err
	}
	return c.prefix + base64.RawURLEncoding.EncodeToString(append(msg, sig...)), nil
}

func decodePayload(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformed)
	}
	for _, enc := range payloadEncodings {
		if payload, err := enc.DecodeString(encoded); err == nil {
			return payload, nil
		}
	}
	return nil, fmt.Errorf("%w: payload is not base64", ErrMalformed)
}

func parsePayload(payload []byte) (SignedOrder, error) {
	indicesLength := len(payload) - fixedPayloadLength
	if indicesLength <= 0 || indicesLength%indexLength != 0 {
		return SignedOrder{}, fmt.Errorf("%w: payload length %d does not fit the link layout", ErrMalformed, len(payload))
	}

	offset := 0
	next := func(n int) []byte {
		field := payload[offset : offset+n]
		offset += n
		return field
	}

	contract := common.BytesToAddress(next(addressLength))

	indices := make([]uint16, indicesLength/indexLength)
	for i := range indices {
		indices[i] = binary.BigEndian.Uint16(next(indexLength))
	}

	expiry := binary.BigEndian.Uint32(next(expiryLength))
	price := new(big.Int).SetBytes(next(priceLength))
	signature := next(SignatureLength)

	return SignedOrder{
		Order: Order{
			ContractAddress: contract,
			Indices:         indices,
			Expiry:          expiry,
			Price:           price,
		},
		Signature: hexutil.Encode(signature),
	}, nil
}
