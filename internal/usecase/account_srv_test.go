package usecase

import (
	"context"
	"testing"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/dto/request"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func TestAccount_UpdateProfileRefreshesSessions(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	config := &utils.Config{Checkout: utils.CheckoutConfig{ShortRefLength: 8}}
	account := NewAccountService(f.store.repository(), f.sessions, config, zap.NewNop())

	userID, sessionToken := f.register(t, "profile@example.com")

	var refreshed *Identity
	f.sessions.Subscribe(func(e SessionEvent) {
		if e.Type == EventProfileUpdated {
			refreshed = e.Identity
		}
	})

	profile, err := account.UpdateProfile(ctx, userID, &request.UpdateProfileRequest{
		FirstName: strPtr("Grace"),
		Phone:     strPtr("  "),
	})
	require.NoError(t, err)
	require.NotNil(t, profile.FirstName)
	assert.Equal(t, "Grace", *profile.FirstName)
	require.NotNil(t, profile.LastName)
	assert.Equal(t, "Lovelace", *profile.LastName)
	assert.Nil(t, profile.Phone)

	require.NotNil(t, refreshed)
	assert.Equal(t, "Grace", *refreshed.Profile.FirstName)

	identity, err := f.sessions.Resolve(ctx, sessionToken)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "Grace", *identity.Profile.FirstName)
}

func TestAccount_ListOrdersNewestFirst(t *testing.T) {
	f := newAuthFixture(t)
	config := &utils.Config{Checkout: utils.CheckoutConfig{ShortRefLength: 8}}
	account := NewAccountService(f.store.repository(), f.sessions, config, zap.NewNop())

	userID := f.store.addUser("orders@example.com")
	other := f.store.addUser("someone@example.com")
	first, second := uuid.New(), uuid.New()
	f.store.orders = []entity.Order{
		{Base: entity.Base{ID: first, CreatedAt: time.Now().Add(-time.Hour)}, UserID: userID, Status: entity.OrderStatusDelivered},
		{Base: entity.Base{ID: uuid.New()}, UserID: other, Status: entity.OrderStatusPending},
		{Base: entity.Base{ID: second, CreatedAt: time.Now()}, UserID: userID, Status: entity.OrderStatusPending},
	}
	f.store.orderItems = []entity.OrderItem{
		{OrderID: second, Quantity: 1},
		{OrderID: second, Quantity: 3},
	}

	orders, err := account.ListOrders(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.String(), orders[0].ID)
	assert.Equal(t, 2, orders[0].ItemCount)
	assert.Equal(t, utils.ShortRef(second.String(), 8), orders[0].Reference)
	assert.Equal(t, first.String(), orders[1].ID)

	_, err = account.ListOrders(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestContact_Submit(t *testing.T) {
	ctx := context.Background()
	msg := &request.ContactRequest{
		Name:    "Sam",
		Email:   "sam@example.com",
		Subject: "Sizing",
		Message: "Does the linen dress run small?",
	}

	t.Run("forwards to support", func(t *testing.T) {
		notifier := &recordingNotifier{}
		contact := NewContactService(notifier, "support@shop.test", zap.NewNop())

		require.NoError(t, contact.Submit(ctx, msg))
		require.Equal(t, 1, notifier.count())
		assert.Equal(t, "support@shop.test", notifier.sent[0].to)
		assert.Equal(t, "[Contact] Sizing", notifier.sent[0].subject)
		assert.Contains(t, notifier.sent[0].body, "sam@example.com")
	})

	t.Run("no support address drops the message", func(t *testing.T) {
		notifier := &recordingNotifier{}
		contact := NewContactService(notifier, "", zap.NewNop())

		require.NoError(t, contact.Submit(ctx, msg))
		assert.Equal(t, 0, notifier.count())
	})

	t.Run("delivery failure is not reported", func(t *testing.T) {
		notifier := &recordingNotifier{err: errStoreDown}
		contact := NewContactService(notifier, "support@shop.test", zap.NewNop())

		assert.NoError(t, contact.Submit(ctx, msg))
	})

	t.Run("invalid email", func(t *testing.T) {
		contact := NewContactService(&recordingNotifier{}, "support@shop.test", zap.NewNop())

		err := contact.Submit(ctx, &request.ContactRequest{Name: "Sam", Email: "nope", Subject: "x", Message: "y"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})
}
