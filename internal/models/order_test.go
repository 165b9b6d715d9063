package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(OrderProcessing, OrderShipped))
	assert.True(t, CanTransition(OrderProcessing, OrderCancelled))
	assert.True(t, CanTransition(OrderShipped, OrderDelivered))

	// États terminaux
	assert.False(t, CanTransition(OrderDelivered, OrderShipped))
	assert.False(t, CanTransition(OrderCancelled, OrderProcessing))

	// Pas de retour en arrière ni de saut
	assert.False(t, CanTransition(OrderShipped, OrderProcessing))
	assert.False(t, CanTransition(OrderShipped, OrderCancelled))
	assert.False(t, CanTransition(OrderProcessing, OrderDelivered))
}

func TestIsOrderStatus(t *testing.T) {
	for _, s := range []string{OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		assert.True(t, IsOrderStatus(s))
	}
	assert.False(t, IsOrderStatus("pending"))
	assert.False(t, IsOrderStatus(""))
}

func TestFindVoucher(t *testing.T) {
	v, ok := FindVoucher("welcome10")
	assert.True(t, ok)
	assert.Equal(t, "WELCOME10", v.Code)
	assert.Equal(t, VoucherPercentage, v.Type)

	_, ok = FindVoucher("NOPE")
	assert.False(t, ok)
}
