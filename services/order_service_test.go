package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"delivery-service/apperr"
	"delivery-service/kafka"
	"delivery-service/models"
	repositories "delivery-service/repository"
	"delivery-service/services"
)

// ---- mock repositories ----

type mockCustomerRepo struct {
	customers map[uuid.UUID]*models.Customer
}

func (m *mockCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	if c, ok := m.customers[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockCustomerRepo) FindAll(_ context.Context) ([]models.Customer, error) { return nil, nil }
func (m *mockCustomerRepo) FindActive(_ context.Context) ([]models.Customer, error) {
	return nil, nil
}
func (m *mockCustomerRepo) FindByEmail(_ context.Context, _ string) (*models.Customer, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockCustomerRepo) SearchByName(_ context.Context, _ string) ([]models.Customer, error) {
	return nil, nil
}
func (m *mockCustomerRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	return false, nil
}
func (m *mockCustomerRepo) Create(_ context.Context, _ *models.Customer) error { return nil }
func (m *mockCustomerRepo) Update(_ context.Context, _ *models.Customer) error { return nil }
func (m *mockCustomerRepo) Delete(_ context.Context, _ uuid.UUID) error        { return nil }

type mockRestaurantRepo struct {
	restaurants map[uuid.UUID]*models.Restaurant
}

func (m *mockRestaurantRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Restaurant, error) {
	if r, ok := m.restaurants[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockRestaurantRepo) FindAll(_ context.Context) ([]models.Restaurant, error) {
	return nil, nil
}
func (m *mockRestaurantRepo) FindActive(_ context.Context) ([]models.Restaurant, error) {
	return nil, nil
}
func (m *mockRestaurantRepo) FindByCategory(_ context.Context, _ string) ([]models.Restaurant, error) {
	return nil, nil
}
func (m *mockRestaurantRepo) SearchByName(_ context.Context, _ string) ([]models.Restaurant, error) {
	return nil, nil
}
func (m *mockRestaurantRepo) FindByDeliveryFeeBetween(_ context.Context, _, _ int64) ([]models.Restaurant, error) {
	return nil, nil
}
func (m *mockRestaurantRepo) FindByDeliveryFeeAtMost(_ context.Context, _ int64) ([]models.Restaurant, error) {
	return nil, nil
}
func (m *mockRestaurantRepo) ListCategories(_ context.Context) ([]string, error) { return nil, nil }
func (m *mockRestaurantRepo) ExistsByName(_ context.Context, _ string) (bool, error) {
	return false, nil
}
func (m *mockRestaurantRepo) Create(_ context.Context, _ *models.Restaurant) error { return nil }
func (m *mockRestaurantRepo) Update(_ context.Context, _ *models.Restaurant) error { return nil }
func (m *mockRestaurantRepo) Delete(_ context.Context, _ uuid.UUID) error          { return nil }

type mockProductRepo struct {
	products map[uuid.UUID]*models.Product
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockProductRepo) FindAll(_ context.Context) ([]models.Product, error)    { return nil, nil }
func (m *mockProductRepo) FindActive(_ context.Context) ([]models.Product, error) { return nil, nil }
func (m *mockProductRepo) FindAvailable(_ context.Context) ([]models.Product, error) {
	return nil, nil
}
func (m *mockProductRepo) FindOnPromotion(_ context.Context) ([]models.Product, error) {
	return nil, nil
}
func (m *mockProductRepo) FindByRestaurant(_ context.Context, _ uuid.UUID) ([]models.Product, error) {
	return nil, nil
}
func (m *mockProductRepo) FindAvailableByRestaurant(_ context.Context, _ uuid.UUID) ([]models.Product, error) {
	return nil, nil
}
func (m *mockProductRepo) FindByCategory(_ context.Context, _ string) ([]models.Product, error) {
	return nil, nil
}
func (m *mockProductRepo) FindByPriceBetween(_ context.Context, _, _ int64) ([]models.Product, error) {
	return nil, nil
}
func (m *mockProductRepo) FindByPriceAtMost(_ context.Context, _ int64) ([]models.Product, error) {
	return nil, nil
}
func (m *mockProductRepo) ListCategories(_ context.Context) ([]string, error) { return nil, nil }
func (m *mockProductRepo) Create(_ context.Context, _ *models.Product) error  { return nil }
func (m *mockProductRepo) Update(_ context.Context, _ *models.Product) error  { return nil }
func (m *mockProductRepo) Delete(_ context.Context, _ uuid.UUID) error        { return nil }

type mockOrderRepo struct {
	orders    map[uuid.UUID]*models.Order
	created   []*models.Order
	createErr error
	updateErr error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: map[uuid.UUID]*models.Order{}}
}

func (m *mockOrderRepo) Create(_ context.Context, order *models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.created = append(m.created, order)
	m.orders[order.ID] = order
	return nil
}
func (m *mockOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockOrderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return m.FindByID(ctx, id)
}
func (m *mockOrderRepo) FindByNumber(_ context.Context, number string) (*models.Order, error) {
	for _, o := range m.orders {
		if o.OrderNumber == number {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockOrderRepo) FindAll(_ context.Context) ([]models.Order, error) { return nil, nil }
func (m *mockOrderRepo) FindByCustomer(_ context.Context, _ uuid.UUID) ([]models.Order, error) {
	return nil, nil
}
func (m *mockOrderRepo) FindByRestaurant(_ context.Context, _ uuid.UUID) ([]models.Order, error) {
	return nil, nil
}
func (m *mockOrderRepo) FindByStatus(_ context.Context, _ models.OrderStatus) ([]models.Order, error) {
	return nil, nil
}
func (m *mockOrderRepo) FindActive(_ context.Context) ([]models.Order, error) { return nil, nil }
func (m *mockOrderRepo) FindByPlacedBetween(_ context.Context, _, _ time.Time) ([]models.Order, error) {
	return nil, nil
}
func (m *mockOrderRepo) CountByCustomer(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}
func (m *mockOrderRepo) CountActiveByRestaurant(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}
func (m *mockOrderRepo) SalesTotalBetween(_ context.Context, _, _ time.Time) (int64, error) {
	return 0, nil
}
func (m *mockOrderRepo) Update(_ context.Context, order *models.Order) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.orders[order.ID] = order
	return nil
}
func (m *mockOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.orders, id)
	return nil
}
func (m *mockOrderRepo) Transaction(_ context.Context, fn func(repo repositories.OrderRepository) error) error {
	return fn(m)
}

// ---- spy producer ----

type spyProducer struct {
	events     []kafka.OrderEvent
	publishErr error
}

func (s *spyProducer) PublishOrderEvent(_ context.Context, evt kafka.OrderEvent) error {
	if s.publishErr != nil {
		return s.publishErr
	}
	s.events = append(s.events, evt)
	return nil
}
func (s *spyProducer) Close() error { return nil }

// ---- fixture ----

type fixture struct {
	service    *services.OrderService
	orders     *mockOrderRepo
	producer   *spyProducer
	customer   *models.Customer
	restaurant *models.Restaurant
	product    *models.Product
}

func newFixture() *fixture {
	customer := &models.Customer{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", Active: true}
	restaurant := &models.Restaurant{ID: uuid.New(), Name: "Bella Pasta", DeliveryFee: 500, Active: true}
	product := &models.Product{
		ID:           uuid.New(),
		RestaurantID: restaurant.ID,
		Name:         "Lasagna",
		Price:        1000,
		Active:       true,
		Available:    true,
	}

	orders := newMockOrderRepo()
	producer := &spyProducer{}
	svc := services.NewOrderService(
		orders,
		&mockCustomerRepo{customers: map[uuid.UUID]*models.Customer{customer.ID: customer}},
		&mockRestaurantRepo{restaurants: map[uuid.UUID]*models.Restaurant{restaurant.ID: restaurant}},
		&mockProductRepo{products: map[uuid.UUID]*models.Product{product.ID: product}},
		producer,
	)
	return &fixture{
		service:    svc,
		orders:     orders,
		producer:   producer,
		customer:   customer,
		restaurant: restaurant,
		product:    product,
	}
}

func (f *fixture) createRequest() *services.CreateOrderRequest {
	return &services.CreateOrderRequest{
		CustomerID:      f.customer.ID,
		RestaurantID:    f.restaurant.ID,
		DeliveryAddress: "1 Main St",
		Items: []services.CreateOrderItemRequest{
			{ProductID: f.product.ID, Quantity: 2},
		},
	}
}

// ---- create ----

func TestCreateOrder_Success(t *testing.T) {
	f := newFixture()

	order, err := f.service.CreateOrder(context.Background(), f.createRequest())

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, int64(2000), order.Subtotal)
	assert.Equal(t, int64(500), order.DeliveryFee)
	assert.Equal(t, int64(2500), order.Total)
	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{8}$`, order.OrderNumber)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(1000), order.Items[0].UnitPrice)
	assert.Len(t, f.orders.created, 1)

	require.Len(t, f.producer.events, 1)
	assert.Equal(t, kafka.EventOrderCreated, f.producer.events[0].Event)
	assert.Equal(t, models.StatusPending, f.producer.events[0].NewStatus)
	assert.Equal(t, int64(2500), f.producer.events[0].Total)
}

func TestCreateOrder_CustomerNotFound(t *testing.T) {
	f := newFixture()
	req := f.createRequest()
	req.CustomerID = uuid.New()

	_, err := f.service.CreateOrder(context.Background(), req)

	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, f.orders.created)
}

func TestCreateOrder_InactiveCustomerRejected(t *testing.T) {
	f := newFixture()
	f.customer.Active = false

	_, err := f.service.CreateOrder(context.Background(), f.createRequest())

	assert.True(t, apperr.IsInvalidState(err))
	assert.Empty(t, f.orders.created)
}

func TestCreateOrder_RestaurantNotFound(t *testing.T) {
	f := newFixture()
	req := f.createRequest()
	req.RestaurantID = uuid.New()

	_, err := f.service.CreateOrder(context.Background(), req)

	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateOrder_InactiveRestaurantRejected(t *testing.T) {
	f := newFixture()
	f.restaurant.Active = false

	_, err := f.service.CreateOrder(context.Background(), f.createRequest())

	assert.True(t, apperr.IsInvalidState(err))
}

func TestCreateOrder_EmptyItemsRejected(t *testing.T) {
	f := newFixture()
	req := f.createRequest()
	req.Items = nil

	_, err := f.service.CreateOrder(context.Background(), req)

	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestCreateOrder_ProductNotFound(t *testing.T) {
	f := newFixture()
	req := f.createRequest()
	req.Items[0].ProductID = uuid.New()

	_, err := f.service.CreateOrder(context.Background(), req)

	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateOrder_UnavailableProductRejected(t *testing.T) {
	f := newFixture()
	f.product.Available = false

	_, err := f.service.CreateOrder(context.Background(), f.createRequest())

	assert.True(t, apperr.IsInvalidState(err))
	assert.Empty(t, f.orders.created)
}

func TestCreateOrder_InactiveProductRejected(t *testing.T) {
	f := newFixture()
	f.product.Active = false

	_, err := f.service.CreateOrder(context.Background(), f.createRequest())

	assert.True(t, apperr.IsInvalidState(err))
}

func TestCreateOrder_ForeignProductRejected(t *testing.T) {
	f := newFixture()
	f.product.RestaurantID = uuid.New()

	_, err := f.service.CreateOrder(context.Background(), f.createRequest())

	assert.True(t, apperr.IsInvalidState(err))
	assert.Empty(t, f.orders.created)
	assert.Empty(t, f.producer.events)
}

func TestCreateOrder_NonPositiveQuantityRejected(t *testing.T) {
	f := newFixture()

	for _, qty := range []int{0, -1} {
		req := f.createRequest()
		req.Items[0].Quantity = qty

		_, err := f.service.CreateOrder(context.Background(), req)

		assert.True(t, apperr.IsInvalidArgument(err), "quantity %d", qty)
	}
}

func TestCreateOrder_IgnoresPromotionalPrice(t *testing.T) {
	f := newFixture()
	promo := int64(700)
	f.product.OnPromotion = true
	f.product.PromoPrice = &promo

	order, err := f.service.CreateOrder(context.Background(), f.createRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1000), order.Items[0].UnitPrice)
	assert.Equal(t, int64(2000), order.Subtotal)
}

func TestCreateOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	f := newFixture()
	f.producer.publishErr = assert.AnError

	order, err := f.service.CreateOrder(context.Background(), f.createRequest())

	require.NoError(t, err)
	assert.Len(t, f.orders.created, 1)
	assert.NotNil(t, order)
}

// ---- transitions ----

func (f *fixture) placedOrder(t *testing.T) *models.Order {
	t.Helper()
	order, err := f.service.CreateOrder(context.Background(), f.createRequest())
	require.NoError(t, err)
	f.producer.events = nil
	return order
}

func TestConfirm_PendingOrder(t *testing.T) {
	f := newFixture()
	order := f.placedOrder(t)

	confirmed, err := f.service.Confirm(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)

	require.Len(t, f.producer.events, 1)
	evt := f.producer.events[0]
	assert.Equal(t, kafka.EventOrderStatusChanged, evt.Event)
	assert.Equal(t, models.StatusPending, evt.OldStatus)
	assert.Equal(t, models.StatusConfirmed, evt.NewStatus)
}

func TestConfirm_AlreadyConfirmedRejected(t *testing.T) {
	f := newFixture()
	order := f.placedOrder(t)
	_, err := f.service.Confirm(context.Background(), order.ID)
	require.NoError(t, err)
	f.producer.events = nil

	_, err = f.service.Confirm(context.Background(), order.ID)

	assert.True(t, apperr.IsInvalidState(err))
	assert.Empty(t, f.producer.events)
}

func TestUpdateStatus_SkippingStateRejected(t *testing.T) {
	f := newFixture()
	order := f.placedOrder(t)

	_, err := f.service.UpdateStatus(context.Background(), order.ID, models.StatusOutForDelivery, "")

	assert.True(t, apperr.IsInvalidTransition(err))
}

func TestUpdateStatus_OrderNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.service.Confirm(context.Background(), uuid.New())

	assert.True(t, apperr.IsNotFound(err))
}

func TestCancel_ConfirmedOrder(t *testing.T) {
	f := newFixture()
	order := f.placedOrder(t)
	_, err := f.service.Confirm(context.Background(), order.ID)
	require.NoError(t, err)

	cancelled, err := f.service.Cancel(context.Background(), order.ID, "out of stock")

	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, "out of stock", cancelled.CancelReason)
	assert.NotNil(t, cancelled.CancelledAt)
}

func TestCancel_PreparingOrderRejected(t *testing.T) {
	f := newFixture()
	order := f.placedOrder(t)
	_, err := f.service.Confirm(context.Background(), order.ID)
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(context.Background(), order.ID, models.StatusPreparing, "")
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), order.ID, "too late")

	assert.Error(t, err)
	current, getErr := f.service.GetByID(context.Background(), order.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.StatusPreparing, current.Status)
}

func TestDeliver_OutForDeliveryOrder(t *testing.T) {
	f := newFixture()
	order := f.placedOrder(t)
	for _, target := range []models.OrderStatus{
		models.StatusConfirmed, models.StatusPreparing, models.StatusOutForDelivery,
	} {
		_, err := f.service.UpdateStatus(context.Background(), order.ID, target, "")
		require.NoError(t, err)
	}

	delivered, err := f.service.Deliver(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, delivered.Status)
	assert.NotNil(t, delivered.DeliveredAt)
}

// ---- partial update ----

func TestUpdate_StatusRoutedThroughTransitions(t *testing.T) {
	f := newFixture()
	order := f.placedOrder(t)

	status := string(models.StatusConfirmed)
	updated, err := f.service.Update(context.Background(), order.ID, &services.UpdateOrderRequest{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	require.Len(t, f.producer.events, 1)
	assert.Equal(t, kafka.EventOrderStatusChanged, f.producer.events[0].Event)
}

func TestUpdate_UnknownStatusRejected(t *testing.T) {
	f := newFixture()
	order := f.placedOrder(t)

	status := "READY"
	_, err := f.service.Update(context.Background(), order.ID, &services.UpdateOrderRequest{Status: &status})

	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestUpdate_CancelWithReason(t *testing.T) {
	f := newFixture()
	order := f.placedOrder(t)

	status := string(models.StatusCancelled)
	reason := "address unreachable"
	updated, err := f.service.Update(context.Background(), order.ID, &services.UpdateOrderRequest{
		Status:       &status,
		CancelReason: &reason,
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
	assert.Equal(t, reason, updated.CancelReason)
}

func TestUpdate_FeeAndDiscountReprice(t *testing.T) {
	f := newFixture()
	order := f.placedOrder(t)

	fee := int64(800)
	discount := int64(300)
	updated, err := f.service.Update(context.Background(), order.ID, &services.UpdateOrderRequest{
		DeliveryFee: &fee,
		Discount:    &discount,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2000), updated.Subtotal)
	assert.Equal(t, int64(2500), updated.Total)
	assert.Empty(t, f.producer.events)
}

func TestUpdate_NegativeFeeRejected(t *testing.T) {
	f := newFixture()
	order := f.placedOrder(t)

	fee := int64(-1)
	_, err := f.service.Update(context.Background(), order.ID, &services.UpdateOrderRequest{DeliveryFee: &fee})

	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestUpdate_PlainFields(t *testing.T) {
	f := newFixture()
	order := f.placedOrder(t)

	address := "2 Side St"
	notes := "ring twice"
	minutes := 45
	updated, err := f.service.Update(context.Background(), order.ID, &services.UpdateOrderRequest{
		DeliveryAddress:          &address,
		Notes:                    &notes,
		EstimatedDeliveryMinutes: &minutes,
	})

	require.NoError(t, err)
	assert.Equal(t, address, updated.DeliveryAddress)
	assert.Equal(t, notes, updated.Notes)
	require.NotNil(t, updated.EstimatedDeliveryMinutes)
	assert.Equal(t, minutes, *updated.EstimatedDeliveryMinutes)
	assert.Equal(t, models.StatusPending, updated.Status)
}

// ---- lookups ----

func TestGetByNumber(t *testing.T) {
	f := newFixture()
	order := f.placedOrder(t)

	found, err := f.service.GetByNumber(context.Background(), order.OrderNumber)

	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = f.service.GetByNumber(context.Background(), "ORD-19700101-00000000")
	assert.True(t, apperr.IsNotFound(err))
}

func TestDelete_MissingOrder(t *testing.T) {
	f := newFixture()

	err := f.service.Delete(context.Background(), uuid.New())

	assert.True(t, apperr.IsNotFound(err))
}
