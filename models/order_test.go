package models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delivery-service/apperr"
	"delivery-service/models"
)

func newTestOrder(status models.OrderStatus) *models.Order {
	order := &models.Order{
		OrderNumber:     "ORD-20260828-ABCD1234",
		CustomerID:      uuid.New(),
		RestaurantID:    uuid.New(),
		PlacedAt:        time.Now().UTC(),
		DeliveryAddress: "1 Main St",
		Status:          status,
	}
	order.AddItem(models.NewOrderItem(uuid.New(), 2, 1000))
	return order
}

func TestNewOrderItem_Subtotal(t *testing.T) {
	item := models.NewOrderItem(uuid.New(), 3, 1250)

	assert.Equal(t, int64(3750), item.Subtotal)
}

func TestNewOrderNumber_Format(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	number := models.NewOrderNumber(now)

	assert.Regexp(t, `^ORD-20260828-[0-9A-F]{8}$`, number)
	assert.NotEqual(t, number, models.NewOrderNumber(now))
}

func TestRecalculateTotal(t *testing.T) {
	order := &models.Order{DeliveryFee: 500, Discount: 200}
	order.Items = []models.OrderItem{
		models.NewOrderItem(uuid.New(), 2, 1000),
		models.NewOrderItem(uuid.New(), 1, 350),
	}

	order.RecalculateTotal()

	assert.Equal(t, int64(2350), order.Subtotal)
	assert.Equal(t, int64(2650), order.Total)

	// repricing again changes nothing
	order.RecalculateTotal()
	assert.Equal(t, int64(2650), order.Total)
}

func TestAddAndRemoveItem_Reprice(t *testing.T) {
	order := newTestOrder(models.StatusPending)
	order.UpdateDeliveryFee(500)
	assert.Equal(t, int64(2500), order.Total)

	extra := models.NewOrderItem(uuid.New(), 1, 300)
	extra.ID = uuid.New()
	order.AddItem(extra)
	assert.Equal(t, int64(2300), order.Subtotal)
	assert.Equal(t, int64(2800), order.Total)

	assert.True(t, order.RemoveItem(extra.ID))
	assert.Equal(t, int64(2500), order.Total)
	assert.False(t, order.RemoveItem(uuid.New()))
}

func TestUpdateDiscount_Reprice(t *testing.T) {
	order := newTestOrder(models.StatusPending)
	order.UpdateDeliveryFee(500)
	order.UpdateDiscount(300)

	assert.Equal(t, int64(2200), order.Total)
}

func TestTransitionTable(t *testing.T) {
	all := []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
		models.StatusOutForDelivery, models.StatusDelivered, models.StatusCancelled,
	}
	allowed := map[models.OrderStatus][]models.OrderStatus{
		models.StatusPending:        {models.StatusConfirmed, models.StatusCancelled},
		models.StatusConfirmed:      {models.StatusPreparing, models.StatusCancelled},
		models.StatusPreparing:      {models.StatusOutForDelivery},
		models.StatusOutForDelivery: {models.StatusDelivered},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "from %s to %s", from, to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, models.StatusDelivered.Terminal())
	assert.True(t, models.StatusCancelled.Terminal())
	assert.False(t, models.StatusPending.Terminal())
	assert.False(t, models.StatusOutForDelivery.Terminal())
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := models.ParseOrderStatus("OUT_FOR_DELIVERY")
	require.True(t, ok)
	assert.Equal(t, models.StatusOutForDelivery, status)

	_, ok = models.ParseOrderStatus("READY")
	assert.False(t, ok)
	_, ok = models.ParseOrderStatus("pending")
	assert.False(t, ok)
}

func TestTransitionTo_HappyPath(t *testing.T) {
	order := newTestOrder(models.StatusPending)
	now := time.Now().UTC()

	require.NoError(t, order.Confirm(now))
	require.NoError(t, order.TransitionTo(models.StatusPreparing, now))
	require.NoError(t, order.TransitionTo(models.StatusOutForDelivery, now))
	require.NoError(t, order.Deliver(now))

	assert.Equal(t, models.StatusDelivered, order.Status)
	require.NotNil(t, order.DeliveredAt)
	assert.Equal(t, now, *order.DeliveredAt)
}

func TestTransitionTo_SelfTransitionRejected(t *testing.T) {
	order := newTestOrder(models.StatusConfirmed)

	err := order.TransitionTo(models.StatusConfirmed, time.Now().UTC())

	assert.True(t, apperr.IsInvalidState(err))
	assert.Equal(t, models.StatusConfirmed, order.Status)
}

func TestTransitionTo_SkippingStateRejected(t *testing.T) {
	order := newTestOrder(models.StatusPending)

	err := order.TransitionTo(models.StatusPreparing, time.Now().UTC())

	assert.True(t, apperr.IsInvalidTransition(err))
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestTransitionTo_TerminalStatesFrozen(t *testing.T) {
	for _, terminal := range []models.OrderStatus{models.StatusDelivered, models.StatusCancelled} {
		order := newTestOrder(terminal)
		err := order.TransitionTo(models.StatusConfirmed, time.Now().UTC())
		assert.True(t, apperr.IsInvalidTransition(err), "from %s", terminal)
	}
}

func TestCancel_FromPendingAndConfirmed(t *testing.T) {
	for _, from := range []models.OrderStatus{models.StatusPending, models.StatusConfirmed} {
		order := newTestOrder(from)
		minutes := 30
		order.EstimatedDeliveryMinutes = &minutes
		now := time.Now().UTC()

		require.NoError(t, order.Cancel("customer changed mind", now))

		assert.Equal(t, models.StatusCancelled, order.Status)
		assert.Equal(t, "customer changed mind", order.CancelReason)
		require.NotNil(t, order.CancelledAt)
		assert.Equal(t, now, *order.CancelledAt)
		assert.Nil(t, order.EstimatedDeliveryMinutes)
	}
}

func TestCancel_RejectedOncePreparing(t *testing.T) {
	for _, from := range []models.OrderStatus{models.StatusPreparing, models.StatusOutForDelivery} {
		order := newTestOrder(from)

		err := order.Cancel("too late", time.Now().UTC())

		assert.Error(t, err, "from %s", from)
		assert.Equal(t, from, order.Status)
		assert.Empty(t, order.CancelReason)
		assert.Nil(t, order.CancelledAt)
	}
}

func TestActiveStatuses_ExcludeTerminal(t *testing.T) {
	active := models.ActiveStatuses()

	assert.Len(t, active, 4)
	assert.NotContains(t, active, models.StatusDelivered)
	assert.NotContains(t, active, models.StatusCancelled)
}
