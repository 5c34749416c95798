// Package universallink decodes ticket-transfer universal links into signed
// orders and routes them to the free or paid import path.
package universallink

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	addressLength   = common.AddressLength
	indexLength     = 2
	expiryLength    = 4
	priceLength     = 32
	SignatureLength = crypto.SignatureLength

	// bytes of a payload that carries no indices
	fixedPayloadLength = addressLength + expiryLength + priceLength + SignatureLength
)

// Order is the unsigned part of a transfer link. Values returned by the codec
// own their slices and big.Int; callers must not mutate them.
type Order struct {
	ContractAddress common.Address `json:"contractAddress"`
	Indices         []uint16       `json:"indices"`
	Expiry          uint32         `json:"expiry"`
	Price           *big.Int       `json:"price"`
}

// SignedOrder is an Order plus the issuer's 65 byte r||s||v signature,
// hex-encoded with a 0x prefix.
type SignedOrder struct {
	Order     Order  `json:"order"`
	Signature string `json:"signature"`
}

func NewOrder(contract common.Address, indices []uint16, expiry uint32, price *big.Int) Order {
	p := new(big.Int)
	if price != nil {
		p.Set(price)
	}
	return Order{
		ContractAddress: contract,
		Indices:         append([]uint16(nil), indices...),
		Expiry:          expiry,
		Price:           p,
	}
}

// PriceOrZero never returns nil.
func (o Order) PriceOrZero() *big.Int {
	if o.Price == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(o.Price)
}

func (o Order) ExpiresAt() time.Time {
	return time.Unix(int64(o.Expiry), 0).UTC()
}

func (o Order) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt())
}

// Message is the byte string the issuer signs: every payload field except the
// signature, in wire order.
func (o Order) Message() ([]byte, error) {
	price := o.PriceOrZero()
	if price.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative price", ErrMalformed)
	}
	if price.BitLen() > priceLength*8 {
		return nil, fmt.Errorf("%w: price exceeds 256 bits", ErrMalformed)
	}
	if len(o.Indices) == 0 {
		return nil, fmt.Errorf("%w: order has no indices", ErrMalformed)
	}

	buf := make([]byte, 0, addressLength+len(o.Indices)*indexLength+expiryLength+priceLength)
	buf = append(buf, o.ContractAddress.Bytes()...)
	for _, index := range o.Indices {
		buf = binary.BigEndian.AppendUint16(buf, index)
	}
	buf = binary.BigEndian.AppendUint32(buf, o.Expiry)
	buf = append(buf, price.FillBytes(make([]byte, priceLength))...)
	return buf, nil
}

// SignatureBytes decodes the signature and checks it is exactly 65 bytes.
func (so SignedOrder) SignatureBytes() ([]byte, error) {
	sig := strings.TrimPrefix(strings.TrimPrefix(so.Signature, "0x"), "0X")
	raw, err := hexutil.Decode("0x" + sig)
	if err != nil {
		return nil, fmt.Errorf("%w: signature is not hex: %v", ErrMalformed, err)
	}
	if len(raw) != SignatureLength {
		return nil, fmt.Errorf("%w: signature is %d bytes, want %d", ErrMalformed, len(raw), SignatureLength)
	}
	return raw, nil
}

// Signer recovers the address that signed the order.
func (so SignedOrder) Signer() (common.Address, error) {
	sig, err := so.SignatureBytes()
	if err != nil {
		return common.Address{}, err
	}
	msg, err := so.Order.Message()
	if err != nil {
		return common.Address{}, err
	}

	// issuers emit v as 27/28, recovery wants 0/1
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	pub, err := crypto.SigToPub(crypto.Keccak256(msg), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
