package universallink

// Route is the result of classifying a signed order: either *FreeTransfer or
// *PaidTransfer. Consumers switch on the concrete type.
type Route interface {
	SignedOrder() SignedOrder
	route()
}

// FreeTransfer orders cost nothing and are relayed through the payment server.
type FreeTransfer struct {
	Order SignedOrder
}

// PaidTransfer orders are imported on-chain by the buyer.
type PaidTransfer struct {
	Order SignedOrder
}

func (r *FreeTransfer) SignedOrder() SignedOrder { return r.Order }
func (r *PaidTransfer) SignedOrder() SignedOrder { return r.Order }

func (*FreeTransfer) route() {}
func (*PaidTransfer) route() {}

// Classify routes an order by price: zero is free, anything above is paid.
func Classify(signedOrder SignedOrder) Route {
	if signedOrder.Order.PriceOrZero().Sign() > 0 {
		return &PaidTransfer{Order: signedOrder}
	}
	return &FreeTransfer{Order: signedOrder}
}
