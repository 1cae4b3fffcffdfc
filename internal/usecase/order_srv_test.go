package usecase

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/data/entity"
	"storefront/internal/dto/request"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAddress = "123 Fashion Avenue, New York, NY 10001"

type orderFixture struct {
	*cartFixture
	mail   *recordingNotifier
	orders OrderService
}

func newOrderFixture(t *testing.T, config utils.CheckoutConfig) *orderFixture {
	t.Helper()

	f := newCartFixture(t)
	mail := &recordingNotifier{}
	if config.ShortRefLength == 0 {
		config.ShortRefLength = 8
	}

	return &orderFixture{
		cartFixture: f,
		mail:        mail,
		orders:      NewOrderService(f.store.repository(), f.cart, mail, config, zap.NewNop()),
	}
}

// fillCart puts two dresses and one scarf in the cart.
func (f *orderFixture) fillCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for _, id := range []uuid.UUID{f.dress, f.dress, f.scarf} {
		_, err := f.cart.AddToCart(ctx, f.userID, id.String())
		require.NoError(t, err)
	}
}

func TestPlaceOrder_HappyPath(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, utils.CheckoutConfig{})
	f.fillCart(t)

	placed, err := f.orders.PlaceOrder(ctx, f.userID, &request.CheckoutRequest{ShippingAddress: testAddress}, "")
	require.NoError(t, err)
	require.NotNil(t, placed)

	orderID, err := uuid.Parse(placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 119.97, placed.TotalAmount)
	assert.Equal(t, "#"+strings.ToUpper(placed.OrderID[:8]), placed.Reference)

	orders := f.store.ordersFor(f.userID)
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
	assert.True(t, money("119.97").Equal(orders[0].TotalAmount), orders[0].TotalAmount.String())
	assert.Equal(t, testAddress, orders[0].ShippingAddress)
	assert.Equal(t, entity.OrderStatusPending, orders[0].Status)

	items := f.store.itemsFor(orderID)
	require.Len(t, items, 2)
	prices := map[uuid.UUID]decimal.Decimal{}
	quantities := map[uuid.UUID]int{}
	for _, it := range items {
		prices[it.ProductID] = it.PriceAtPurchase
		quantities[it.ProductID] = it.Quantity
	}
	assert.True(t, money("49.99").Equal(prices[f.dress]))
	assert.Equal(t, 2, quantities[f.dress])
	assert.True(t, money("19.99").Equal(prices[f.scarf]))
	assert.Equal(t, 1, quantities[f.scarf])

	assert.Empty(t, f.store.cartFor(f.userID))
	assert.Empty(t, f.cart.Snapshot(f.userID))
	assert.Equal(t, 1, f.mail.count())
	assert.Equal(t, "shopper@example.com", f.mail.sent[0].to)
}

func TestPlaceOrder_EmptyCartIsNoOp(t *testing.T) {
	f := newOrderFixture(t, utils.CheckoutConfig{})

	placed, err := f.orders.PlaceOrder(context.Background(), f.userID, &request.CheckoutRequest{ShippingAddress: testAddress}, "")
	assert.ErrorIs(t, err, ErrNothingToCheckout)
	assert.Nil(t, placed)
	assert.Equal(t, 0, f.store.writeCount())
	assert.Equal(t, 0, f.mail.count())
}

func TestPlaceOrder_WithoutIdentityIsNoOp(t *testing.T) {
	f := newOrderFixture(t, utils.CheckoutConfig{})
	f.fillCart(t)
	before := f.store.writeCount()

	placed, err := f.orders.PlaceOrder(context.Background(), uuid.Nil, &request.CheckoutRequest{ShippingAddress: testAddress}, "")
	assert.ErrorIs(t, err, ErrNothingToCheckout)
	assert.Nil(t, placed)
	assert.Equal(t, before, f.store.writeCount())
}

func TestPlaceOrder_RequiresShippingAddress(t *testing.T) {
	for _, address := range []string{"", "   ", "\t\n "} {
		f := newOrderFixture(t, utils.CheckoutConfig{})
		f.fillCart(t)
		before := f.store.writeCount()

		placed, err := f.orders.PlaceOrder(context.Background(), f.userID, &request.CheckoutRequest{ShippingAddress: address}, "")
		require.Error(t, err, "address %q", address)
		assert.Contains(t, err.Error(), "validation failed")
		assert.Nil(t, placed)
		assert.Equal(t, before, f.store.writeCount())
		assert.Empty(t, f.store.ordersFor(f.userID))
	}
}

func TestPlaceOrder_TrimsShippingAddress(t *testing.T) {
	f := newOrderFixture(t, utils.CheckoutConfig{})
	f.fillCart(t)

	_, err := f.orders.PlaceOrder(context.Background(), f.userID, &request.CheckoutRequest{ShippingAddress: "  " + testAddress + "\n"}, "")
	require.NoError(t, err)

	orders := f.store.ordersFor(f.userID)
	require.Len(t, orders, 1)
	assert.Equal(t, testAddress, orders[0].ShippingAddress)
}

func TestPlaceOrder_OrderCreateFailureStops(t *testing.T) {
	f := newOrderFixture(t, utils.CheckoutConfig{})
	f.fillCart(t)
	f.store.failOrderCreate = true

	placed, err := f.orders.PlaceOrder(context.Background(), f.userID, &request.CheckoutRequest{ShippingAddress: testAddress}, "")
	require.Error(t, err)
	assert.Nil(t, placed)
	assert.Empty(t, f.store.ordersFor(f.userID))
	assert.Len(t, f.store.cartFor(f.userID), 2)
}

func TestPlaceOrder_ItemInsertFailureLeavesOrderWithoutItems(t *testing.T) {
	f := newOrderFixture(t, utils.CheckoutConfig{})
	f.fillCart(t)
	f.store.failOrderItems = true

	placed, err := f.orders.PlaceOrder(context.Background(), f.userID, &request.CheckoutRequest{ShippingAddress: testAddress}, "")
	require.Error(t, err)
	assert.Equal(t, "failed to create order items", err.Error())
	assert.Nil(t, placed)

	orders := f.store.ordersFor(f.userID)
	require.Len(t, orders, 1)
	assert.Empty(t, f.store.itemsFor(orders[0].ID))

	// cart is untouched
	assert.Len(t, f.store.cartFor(f.userID), 2)
	assert.Len(t, f.cart.Snapshot(f.userID), 2)
	assert.Equal(t, 0, f.mail.count())
}

func TestPlaceOrder_CompensationRemovesOrderWithoutItems(t *testing.T) {
	f := newOrderFixture(t, utils.CheckoutConfig{CompensateOrphans: true})
	f.fillCart(t)
	f.store.failOrderItems = true

	placed, err := f.orders.PlaceOrder(context.Background(), f.userID, &request.CheckoutRequest{ShippingAddress: testAddress}, "")
	require.Error(t, err)
	assert.Nil(t, placed)
	assert.Empty(t, f.store.ordersFor(f.userID))
	assert.Len(t, f.store.cartFor(f.userID), 2)
}

func TestPlaceOrder_IdempotencyKeyReplaysOrder(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t, utils.CheckoutConfig{})
	f.fillCart(t)
	req := &request.CheckoutRequest{ShippingAddress: testAddress}

	first, err := f.orders.PlaceOrder(ctx, f.userID, req, "checkout-1")
	require.NoError(t, err)

	// cart is refilled so a second real checkout would be possible
	f.fillCart(t)
	writes := f.store.writeCount()

	second, err := f.orders.PlaceOrder(ctx, f.userID, req, "checkout-1")
	require.NoError(t, err)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, first.Reference, second.Reference)
	assert.Equal(t, writes, f.store.writeCount())
	assert.Len(t, f.store.ordersFor(f.userID), 1)
	assert.Len(t, f.store.cartFor(f.userID), 2)
}

func TestPlaceOrder_MailFailureDoesNotFailCheckout(t *testing.T) {
	f := newOrderFixture(t, utils.CheckoutConfig{})
	f.mail.err = errStoreDown
	f.fillCart(t)

	placed, err := f.orders.PlaceOrder(context.Background(), f.userID, &request.CheckoutRequest{ShippingAddress: testAddress}, "")
	require.NoError(t, err)
	assert.NotEmpty(t, placed.OrderID)
}

func TestPlaceOrder_CartClearFailureStillReturnsOrder(t *testing.T) {
	f := newOrderFixture(t, utils.CheckoutConfig{})
	f.fillCart(t)
	f.store.failCartClear = true

	placed, err := f.orders.PlaceOrder(context.Background(), f.userID, &request.CheckoutRequest{ShippingAddress: testAddress}, "")
	require.NoError(t, err)
	require.NotNil(t, placed)
	assert.Empty(t, f.cart.Snapshot(f.userID))
}
