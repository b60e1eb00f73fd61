package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront-api/internal/model"
)

var (
	orderStatuses = map[string]struct{}{
		model.OrderStatusPending:    {},
		model.OrderStatusDispatched: {},
		model.OrderStatusDelivered:  {},
		model.OrderStatusCancelled:  {},
	}
	paymentStatuses = map[string]struct{}{
		model.PaymentStatusPending:  {},
		model.PaymentStatusReceived: {},
	}
)

type OrderService struct {
	orders   OrderStore
	products ProductStore
}

func NewOrderService(orders OrderStore, products ProductStore) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// Place prices the order from current product data, never from client totals.
func (s *OrderService) Place(ctx context.Context, actor model.Identity, req model.CreateOrderRequest) (model.Order, error) {
	if len(req.Items) == 0 {
		return model.Order{}, fmt.Errorf("%w: order has no items", model.ErrInvalidInput)
	}

	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if method != model.PaymentMethodCash && method != model.PaymentMethodCard {
		return model.Order{}, fmt.Errorf("%w: payment_method must be cash or card", model.ErrInvalidInput)
	}
	if strings.TrimSpace(req.SelectedAddress.Street) == "" || strings.TrimSpace(req.SelectedAddress.City) == "" {
		return model.Order{}, fmt.Errorf("%w: selected_address needs street and city", model.ErrInvalidInput)
	}

	ids := make([]string, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return model.Order{}, fmt.Errorf("%w: quantity must be positive", model.ErrInvalidInput)
		}
		ids = append(ids, strings.TrimSpace(line.ProductID))
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return model.Order{}, err
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	var total float64
	var count int
	for _, line := range req.Items {
		product, ok := products[strings.TrimSpace(line.ProductID)]
		if !ok || product.Deleted {
			return model.Order{}, fmt.Errorf("%w: %s", model.ErrProductNotFound, line.ProductID)
		}
		items = append(items, model.OrderItem{Product: product, Quantity: line.Quantity, Size: line.Size, Color: line.Color})
		total += float64(product.DiscountPrice) * float64(line.Quantity)
		count += line.Quantity
	}

	now := time.Now().UTC()
	order := model.Order{
		ID:              uuid.NewString(),
		UserID:          actor.ID,
		Items:           items,
		TotalAmount:     total,
		TotalItems:      count,
		PaymentMethod:   method,
		PaymentStatus:   model.PaymentStatusPending,
		Status:          model.OrderStatusPending,
		SelectedAddress: req.SelectedAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (s *OrderService) ListOwn(ctx context.Context, actor model.Identity) ([]model.Order, error) {
	return s.orders.ListByUser(ctx, actor.ID)
}

func (s *OrderService) ListAll(ctx context.Context, actor model.Identity, q model.OrderQuery) (model.OrderList, error) {
	if !actor.IsAdmin() {
		return model.OrderList{}, model.ErrForbidden
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	return s.orders.List(ctx, q)
}

// Update changes status fields. Owners may only cancel a pending order;
// administrators may set any status.
func (s *OrderService) Update(ctx context.Context, actor model.Identity, id string, req model.UpdateOrderRequest) (model.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	if order.UserID != actor.ID && !actor.IsAdmin() {
		return model.Order{}, model.ErrOrderNotFound
	}

	if req.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*req.Status))
		if _, ok := orderStatuses[status]; !ok {
			return model.Order{}, fmt.Errorf("%w: unknown order status %q", model.ErrInvalidInput, *req.Status)
		}
		if !actor.IsAdmin() && (status != model.OrderStatusCancelled || order.Status != model.OrderStatusPending) {
			return model.Order{}, model.ErrForbidden
		}
		order.Status = status
	}

	if req.PaymentStatus != nil {
		if !actor.IsAdmin() {
			return model.Order{}, model.ErrForbidden
		}
		status := strings.ToLower(strings.TrimSpace(*req.PaymentStatus))
		if _, ok := paymentStatuses[status]; !ok {
			return model.Order{}, fmt.Errorf("%w: unknown payment status %q", model.ErrInvalidInput, *req.PaymentStatus)
		}
		order.PaymentStatus = status
	}

	order.UpdatedAt = time.Now().UTC()
	if err := s.orders.UpdateStatus(ctx, order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, actor model.Identity, id string) error {
	if !actor.IsAdmin() {
		return model.ErrForbidden
	}
	return s.orders.Delete(ctx, id)
}
