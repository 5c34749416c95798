package universallink

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		price *big.Int
		free  bool
	}{
		{name: "zero price", price: big.NewInt(0), free: true},
		{name: "nil price", price: nil, free: true},
		{name: "one wei", price: big.NewInt(1), free: false},
		{name: "large price", price: new(big.Int).Lsh(big.NewInt(1), 200), free: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			signed := SignedOrder{Order: Order{ContractAddress: testContract, Indices: []uint16{1}, Price: tc.price}}

			switch route := Classify(signed).(type) {
			case *FreeTransfer:
				assert.True(t, tc.free)
				assert.Equal(t, signed, route.SignedOrder())
			case *PaidTransfer:
				assert.False(t, tc.free)
				assert.Equal(t, signed, route.SignedOrder())
			default:
				t.Fatalf("unexpected route %T", route)
			}
		})
	}
}
