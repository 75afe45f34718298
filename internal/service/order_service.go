package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/skip2/go-qrcode"

	"bravonest/internal/domain"
)

// estimatedDeliveryOffset is added to the creation time to stamp
// estimated_delivery_time on a new order.
const estimatedDeliveryOffset = 30 * time.Minute

// OrderService places and lists orders.
type OrderService struct {
	repo     OrderRepository
	identity Identity
	now      func() time.Time
}

func NewOrderService(repo OrderRepository, identity Identity) *OrderService {
	return &OrderService{repo: repo, identity: identity, now: time.Now}
}

// Create writes the order row and its item rows. The two writes are not one
// backend transaction, so a failed item write is compensated by deleting the
// order row: no order may persist without its items.
func (s *OrderService) Create(ctx context.Context, input domain.OrderInput) (*domain.Order, error) {
	userID, ok := s.identity.CurrentUserID()
	if !ok {
		return nil, domain.E(domain.KindUnauthenticated, "CreateOrder", "please sign in to place an order", nil)
	}
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}

	estimated := s.now().Add(estimatedDeliveryOffset)
	order, err := s.repo.InsertOrder(ctx, userID, input, estimated)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.InsertOrderItems(ctx, order.ID, input.Items)
	if err != nil {
		if delErr := s.repo.DeleteOrder(ctx, order.ID); delErr != nil {
			log.Printf("[orders] compensation failed, orphaned order %s remains: %v", order.ID, delErr)
		}
		return nil, err
	}

	order.Items = items
	return order, nil
}

func validateOrderInput(input domain.OrderInput) error {
	const op = "CreateOrder"
	if input.RestaurantID == "" {
		return domain.E(domain.KindValidation, op, "restaurant id is required", nil)
	}
	if len(input.Items) == 0 {
		return domain.E(domain.KindValidation, op, "order must contain at least one item", nil)
	}
	for _, item := range input.Items {
		if item.MenuItemID == "" {
			return domain.E(domain.KindValidation, op, "order item is missing its menu item id", nil)
		}
		if item.Quantity <= 0 {
			return domain.E(domain.KindValidation, op, "order item quantity must be positive", nil)
		}
		if item.UnitPrice < 0 {
			return domain.E(domain.KindValidation, op, "order item price must not be negative", nil)
		}
	}
	for _, amount := range []float64{input.Subtotal, input.DeliveryFee, input.ServiceFee, input.Tax, input.Tip, input.Total} {
		if amount < 0 {
			return domain.E(domain.KindValidation, op, "order amounts must not be negative", nil)
		}
	}
	sum := input.Subtotal + input.DeliveryFee + input.ServiceFee + input.Tax + input.Tip
	if math.Abs(sum-input.Total) > 0.005 {
		return domain.E(domain.KindValidation, op, "order total does not match its breakdown", nil)
	}
	return nil
}

// ListUserOrders returns the caller's orders, newest first, with restaurant
// and item details attached.
func (s *OrderService) ListUserOrders(ctx context.Context) ([]domain.Order, error) {
	userID, ok := s.identity.CurrentUserID()
	if !ok {
		return nil, domain.E(domain.KindUnauthenticated, "ListUserOrders", "please sign in to see your orders", nil)
	}
	return s.repo.ListUserOrders(ctx, userID)
}

// PickupQR renders the QR code shown at pickup, encoding the order
// reference for the restaurant's scanner.
func (s *OrderService) PickupQR(orderID string) ([]byte, error) {
	if orderID == "" {
		return nil, domain.E(domain.KindValidation, "PickupQR", "order id is required", nil)
	}
	png, err := qrcode.Encode(fmt.Sprintf("bravonest://orders/%s", orderID), qrcode.Medium, 256)
	if err != nil {
		return nil, domain.E(domain.KindGateway, "PickupQR", "failed to generate QR code", err)
	}
	return png, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
