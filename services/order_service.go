package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"delivery-service/apperr"
	"delivery-service/kafka"
	"delivery-service/models"
	repositories "delivery-service/repository"
)

// CreateOrderRequest is the order intake payload.
type CreateOrderRequest struct {
	CustomerID      uuid.UUID                `json:"customer_id" binding:"required"`
	RestaurantID    uuid.UUID                `json:"restaurant_id" binding:"required"`
	DeliveryAddress string                   `json:"delivery_address" binding:"required"`
	Items           []CreateOrderItemRequest `json:"items" binding:"required"`
	Notes           string                   `json:"notes"`
	PaymentMethod   string                   `json:"payment_method"`
}

type CreateOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// UpdateOrderRequest is a partial update: only non-nil fields are applied.
// A status change is routed through the transition engine, never written
// directly.
type UpdateOrderRequest struct {
	Status                   *string `json:"status"`
	CancelReason             *string `json:"cancel_reason"`
	DeliveryAddress          *string `json:"delivery_address"`
	Notes                    *string `json:"notes"`
	EstimatedDeliveryMinutes *int    `json:"estimated_delivery_minutes"`
	PaymentMethod            *string `json:"payment_method"`
	DeliveryFee              *int64  `json:"delivery_fee"`
	Discount                 *int64  `json:"discount"`
}

// OrderService owns the order lifecycle: intake validation, pricing and
// status transitions. All catalog reads are point-in-time snapshots valid
// only for the current call.
type OrderService struct {
	orderRepo      repositories.OrderRepository
	customerRepo   repositories.CustomerRepository
	restaurantRepo repositories.RestaurantRepository
	productRepo    repositories.ProductRepository
	producer       kafka.ProducerAPI
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	customerRepo repositories.CustomerRepository,
	restaurantRepo repositories.RestaurantRepository,
	productRepo repositories.ProductRepository,
	producer kafka.ProducerAPI,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		customerRepo:   customerRepo,
		restaurantRepo: restaurantRepo,
		productRepo:    productRepo,
		producer:       producer,
	}
}

// CreateOrder validates the request against the live catalog, prices the
// items and persists the order atomically. Nothing is written until every
// check has passed.
//
// Validation is fail-fast in a fixed order: customer exists and is active,
// restaurant exists and is active, then per item: product exists, is
// orderable, belongs to the restaurant, quantity is positive.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, notFoundOr(err, "customer %s not found", req.CustomerID)
	}
	if !customer.Active {
		return nil, apperr.InvalidStatef("inactive customer %s cannot place orders", customer.ID)
	}

	restaurant, err := s.restaurantRepo.FindByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, notFoundOr(err, "restaurant %s not found", req.RestaurantID)
	}
	if !restaurant.Active {
		return nil, apperr.InvalidStatef("restaurant %s is unavailable", restaurant.ID)
	}

	if len(req.Items) == 0 {
		return nil, apperr.InvalidArgumentf("order must contain at least one item")
	}

	now := time.Now().UTC()
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, reqItem := range req.Items {
		product, err := s.productRepo.FindByID(ctx, reqItem.ProductID)
		if err != nil {
			return nil, notFoundOr(err, "product %s not found", reqItem.ProductID)
		}
		if !product.Orderable() {
			return nil, apperr.InvalidStatef("product %q is unavailable", product.Name)
		}
		if product.RestaurantID != restaurant.ID {
			return nil, apperr.InvalidStatef("product %q does not belong to restaurant %s", product.Name, restaurant.ID)
		}
		if reqItem.Quantity <= 0 {
			return nil, apperr.InvalidArgumentf("quantity for product %q must be a positive integer", product.Name)
		}

		// Unit price is the base price captured now; active promotions are
		// deliberately not applied to new orders.
		items = append(items, models.NewOrderItem(product.ID, reqItem.Quantity, product.Price))
	}

	order := &models.Order{
		OrderNumber:     models.NewOrderNumber(now),
		CustomerID:      customer.ID,
		RestaurantID:    restaurant.ID,
		PlacedAt:        now,
		DeliveryAddress: req.DeliveryAddress,
		Items:           items,
		DeliveryFee:     restaurant.DeliveryFee,
		Status:          models.StatusPending,
		Notes:           req.Notes,
		PaymentMethod:   req.PaymentMethod,
	}
	order.RecalculateTotal()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.OrderEvent{
		Event:       kafka.EventOrderCreated,
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		NewStatus:   order.Status,
		Total:       order.Total,
		Timestamp:   now,
	})
	return order, nil
}

// UpdateStatus runs the status transition engine on a row-locked order so
// concurrent transitions on the same order serialize at the gateway.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, target models.OrderStatus, reason string) (*models.Order, error) {
	var updated *models.Order
	var oldStatus models.OrderStatus

	err := s.orderRepo.Transaction(ctx, func(repo repositories.OrderRepository) error {
		order, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, "order %s not found", id)
		}
		oldStatus = order.Status

		now := time.Now().UTC()
		if target == models.StatusCancelled {
			err = order.Cancel(reason, now)
		} else {
			err = order.TransitionTo(target, now)
		}
		if err != nil {
			return err
		}

		if err := repo.Update(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.OrderEvent{
		Event:       kafka.EventOrderStatusChanged,
		OrderID:     updated.ID.String(),
		OrderNumber: updated.OrderNumber,
		OldStatus:   oldStatus,
		NewStatus:   updated.Status,
		Total:       updated.Total,
		Timestamp:   time.Now().UTC(),
	})
	return updated, nil
}

// Confirm moves a pending order to CONFIRMED.
func (s *OrderService) Confirm(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.UpdateStatus(ctx, id, models.StatusConfirmed, "")
}

// Cancel moves the order to CANCELLED with the given reason.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*models.Order, error) {
	return s.UpdateStatus(ctx, id, models.StatusCancelled, reason)
}

// Deliver moves the order to DELIVERED.
func (s *OrderService) Deliver(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.UpdateStatus(ctx, id, models.StatusDelivered, "")
}

// Update applies a partial update. A status field in the patch goes through
// the transition engine; fee and discount changes reprice the order.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, patch *UpdateOrderRequest) (*models.Order, error) {
	var updated *models.Order
	var oldStatus models.OrderStatus
	statusChanged := false

	err := s.orderRepo.Transaction(ctx, func(repo repositories.OrderRepository) error {
		order, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, "order %s not found", id)
		}
		oldStatus = order.Status

		if patch.Status != nil {
			target, ok := models.ParseOrderStatus(*patch.Status)
			if !ok {
				return apperr.InvalidArgumentf("unknown order status %q", *patch.Status)
			}
			now := time.Now().UTC()
			if target == models.StatusCancelled {
				reason := ""
				if patch.CancelReason != nil {
					reason = *patch.CancelReason
				}
				err = order.Cancel(reason, now)
			} else {
				err = order.TransitionTo(target, now)
			}
			if err != nil {
				return err
			}
			statusChanged = true
		}
		if patch.DeliveryAddress != nil {
			order.UpdateDeliveryAddress(*patch.DeliveryAddress)
		}
		if patch.Notes != nil {
			order.UpdateNotes(*patch.Notes)
		}
		if patch.EstimatedDeliveryMinutes != nil {
			order.UpdateEstimatedDeliveryMinutes(*patch.EstimatedDeliveryMinutes)
		}
		if patch.PaymentMethod != nil {
			order.UpdatePaymentMethod(*patch.PaymentMethod)
		}
		if patch.DeliveryFee != nil {
			if *patch.DeliveryFee < 0 {
				return apperr.InvalidArgumentf("delivery fee must not be negative")
			}
			order.UpdateDeliveryFee(*patch.DeliveryFee)
		}
		if patch.Discount != nil {
			if *patch.Discount < 0 {
				return apperr.InvalidArgumentf("discount must not be negative")
			}
			order.UpdateDiscount(*patch.Discount)
		}

		if err := repo.Update(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if statusChanged {
		s.publish(ctx, kafka.OrderEvent{
			Event:       kafka.EventOrderStatusChanged,
			OrderID:     updated.ID.String(),
			OrderNumber: updated.OrderNumber,
			OldStatus:   oldStatus,
			NewStatus:   updated.Status,
			Total:       updated.Total,
			Timestamp:   time.Now().UTC(),
		})
	}
	return updated, nil
}

func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "order %s not found", id)
	}
	return order, nil
}

func (s *OrderService) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	order, err := s.orderRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, notFoundOr(err, "order %s not found", number)
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	return s.orderRepo.FindByCustomer(ctx, customerID)
}

func (s *OrderService) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Order, error) {
	return s.orderRepo.FindByRestaurant(ctx, restaurantID)
}

func (s *OrderService) ListByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	return s.orderRepo.FindByStatus(ctx, status)
}

func (s *OrderService) ListActive(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.FindActive(ctx)
}

func (s *OrderService) ListByPeriod(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	return s.orderRepo.FindByPlacedBetween(ctx, from, to)
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "order %s not found", id)
	}
	return s.orderRepo.Delete(ctx, id)
}

// publish sends the event best-effort: a broker failure is logged and never
// fails the order operation.
func (s *OrderService) publish(ctx context.Context, evt kafka.OrderEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishOrderEvent(ctx, evt); err != nil {
		zap.L().Warn("Failed to publish order event",
			zap.Error(err),
			zap.String("event", evt.Event),
			zap.String("order_id", evt.OrderID))
	}
}

// notFoundOr maps a gorm missing-record error to a domain NotFound and passes
// everything else through.
func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFoundf(format, args...)
	}
	return err
}
