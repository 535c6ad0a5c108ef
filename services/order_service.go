package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ankith-sara/aarovi-sub000/models"
	"github.com/Ankith-sara/aarovi-sub000/pkg/metrics"
)

// CheckoutItem is one entry of a checkout request. A set CustomizationID
// marks the item as a custom design; otherwise ProductID names a catalog
// product. Price is the checkout-time unit price and is trusted as-is.
type CheckoutItem struct {
	ProductID       primitive.ObjectID `json:"productId,omitempty"`
	CustomizationID primitive.ObjectID `json:"customizationId,omitempty"`
	Quantity        int                `json:"quantity"`
	Size            string             `json:"size,omitempty"`
	Price           float64            `json:"price"`
}

// PlaceOrderRequest is the single checkout entry point's payload.
type PlaceOrderRequest struct {
	Items         []CheckoutItem         `json:"items"`
	Amount        float64                `json:"amount"`
	Address       models.ShippingAddress `json:"address"`
	PaymentMethod string                 `json:"paymentMethod"`
}

// PlaceOrderResult reports the new order and, for the gateway path, the
// remote intent handle the client completes payment against.
type PlaceOrderResult struct {
	OrderID        primitive.ObjectID `json:"orderId"`
	GatewayOrderID string             `json:"gatewayOrderId,omitempty"`
	Amount         float64            `json:"amount"`
}

// VerifyPaymentRequest is the gateway callback payload.
type VerifyPaymentRequest struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	PaymentID      string `json:"paymentId"`
	Signature      string `json:"signature"`
}

type OrderService struct {
	orders         OrderStore
	users          UserStore
	products       ProductStore
	customizations CustomizationStore
	cart           *CartService
	gateway        PaymentGateway
	notifier       Notifier
	log            *slog.Logger
}

func NewOrderService(
	orders OrderStore,
	users UserStore,
	products ProductStore,
	customizations CustomizationStore,
	cart *CartService,
	gateway PaymentGateway,
	notifier Notifier,
	log *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:         orders,
		users:          users,
		products:       products,
		customizations: customizations,
		cart:           cart,
		gateway:        gateway,
		notifier:       notifier,
		log:            log,
	}
}

// PlaceOrder creates an order from the checkout request. For COD the order is
// confirmed immediately: referenced customizations move to In Production, the
// cart is cleared and the owner is notified. For the gateway path those side
// effects are deferred until VerifyPayment succeeds.
func (s *OrderService) PlaceOrder(ctx context.Context, owner primitive.ObjectID, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	items, err := s.buildOrderItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:            primitive.NewObjectID(),
		UserID:        owner,
		Items:         items,
		Amount:        req.Amount,
		Address:       req.Address,
		Status:        models.OrderPlaced,
		PaymentMethod: req.PaymentMethod,
		Payment:       false,
		CreatedAt:     time.Now(),
	}

	if req.PaymentMethod == models.PaymentCOD {
		if err := s.orders.Insert(ctx, order); err != nil {
			return nil, fmt.Errorf("insert order: %w", err)
		}
		if err := s.confirmOrder(ctx, order); err != nil {
			return nil, err
		}
		metrics.OrdersPlaced.WithLabelValues(models.PaymentCOD).Inc()
		return &PlaceOrderResult{OrderID: order.ID, Amount: order.Amount}, nil
	}

	gatewayOrderID, err := s.gateway.CreateIntent(ctx, req.Amount, "INR", order.ID)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	order.GatewayOrderID = gatewayOrderID
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	metrics.OrdersPlaced.WithLabelValues(req.PaymentMethod).Inc()
	return &PlaceOrderResult{OrderID: order.ID, GatewayOrderID: gatewayOrderID, Amount: order.Amount}, nil
}

// VerifyPayment is the authoritative settlement path for gateway orders. The
// signature is checked before any state is touched. Settlement itself is an
// atomic conditional update; when it reports no change the callback is a
// duplicate and succeeds without re-running side effects.
func (s *OrderService) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*models.Order, error) {
	if !s.gateway.VerifySignature(req.GatewayOrderID, req.PaymentID, req.Signature) {
		metrics.PaymentSignatureFailures.Inc()
		return nil, fmt.Errorf("payment %s: %w", req.PaymentID, ErrInvalidSignature)
	}

	order, err := s.orders.FindByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("gateway order %s: %w", req.GatewayOrderID, ErrNotFound)
	}

	settled, err := s.orders.SettlePayment(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("settle payment: %w", err)
	}
	order.Payment = true
	if !settled {
		metrics.PaymentReplays.Inc()
		return order, nil
	}

	if err := s.confirmOrder(ctx, order); err != nil {
		return nil, err
	}
	metrics.PaymentsVerified.Inc()
	return order, nil
}

// VerifyCOD confirms a cash-on-delivery order for client polling. COD orders
// are confirmed at placement, so this only re-reads the record.
func (s *OrderService) VerifyCOD(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID.Hex(), ErrNotFound)
	}
	if order.PaymentMethod != models.PaymentCOD {
		return nil, fmt.Errorf("order %s is %s: %w", orderID.Hex(), order.PaymentMethod, ErrInvalidMethod)
	}
	return order, nil
}

// UpdateStatus sets the order status (admin). Shipped and delivered
// notifications fire on the edge only, never on a repeated identical update.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, ErrInvalidValue)
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID.Hex(), ErrNotFound)
	}

	previous := order.Status
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	order.Status = status

	switch {
	case status == models.OrderShipping && previous != models.OrderShipping:
		s.notify(ctx, NotifyOrderShipped, order)
	case status == models.OrderDelivered && previous != models.OrderDelivered:
		s.notify(ctx, NotifyOrderDelivered, order)
	}
	return order, nil
}

// UpdateProductionStatus sets a CUSTOM line item's production sub-state
// (admin) and mirrors it onto the source customization: READY maps to Ready,
// every other sub-state maps back to In Production.
func (s *OrderService) UpdateProductionStatus(ctx context.Context, orderID primitive.ObjectID, itemIndex int, status string) (*models.Order, error) {
	if !models.ValidProductionStatus(status) {
		return nil, fmt.Errorf("production status %q: %w", status, ErrInvalidValue)
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID.Hex(), ErrNotFound)
	}
	if itemIndex < 0 || itemIndex >= len(order.Items) {
		return nil, fmt.Errorf("item %d: %w", itemIndex, ErrNotFound)
	}
	item := &order.Items[itemIndex]
	if item.Type != models.ItemCustom {
		return nil, fmt.Errorf("item %d is %s: %w", itemIndex, item.Type, ErrInvalidType)
	}

	if err := s.orders.UpdateItemProductionStatus(ctx, orderID, itemIndex, status); err != nil {
		return nil, fmt.Errorf("update production status: %w", err)
	}
	item.ProductionStatus = status

	if err := s.customizations.UpdateStatus(ctx, item.CustomizationID, ProductionToCustomizationStatus(status)); err != nil {
		return nil, fmt.Errorf("mirror customization status: %w", err)
	}
	return order, nil
}

// ListForUser returns the user's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListForAdmin returns orders containing at least one item for a product the
// admin owns, or any CUSTOM item (custom orders are visible to every admin),
// newest first.
func (s *OrderService) ListForAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.Order, error) {
	productIDs, err := s.products.ListIDsByAdmin(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("list admin products: %w", err)
	}
	return s.orders.ListByProductsOrCustom(ctx, productIDs)
}

// ProductionToCustomizationStatus is the total mapping from a line item's
// production sub-state onto the customization status, recomputed on every
// write rather than stored twice.
func ProductionToCustomizationStatus(production string) string {
	if production == models.ProductionReady {
		return models.CustomizationReady
	}
	return models.CustomizationInProduction
}

// confirmOrder runs the settlement side effects shared by COD placement and
// verified gateway payment: promote referenced customizations, clear the
// cart, notify the owner.
func (s *OrderService) confirmOrder(ctx context.Context, order *models.Order) error {
	for _, item := range order.Items {
		if item.Type != models.ItemCustom {
			continue
		}
		if err := s.customizations.UpdateStatus(ctx, item.CustomizationID, models.CustomizationInProduction); err != nil {
			return fmt.Errorf("promote customization %s: %w", item.CustomizationID.Hex(), err)
		}
	}
	if err := s.cart.Clear(ctx, order.UserID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.notify(ctx, NotifyOrderConfirmed, order)
	return nil
}

// notify is fire-and-forget: failures are logged and never escalate.
func (s *OrderService) notify(ctx context.Context, kind string, order *models.Order) {
	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil || user == nil {
		s.log.Error("notification skipped, owner lookup failed", "order", order.ID.Hex(), "error", err)
		return
	}
	if err := s.notifier.Notify(ctx, kind, order, user); err != nil {
		s.log.Error("notification failed", "kind", kind, "order", order.ID.Hex(), "error", err)
	}
}

func validateCheckout(req PlaceOrderRequest) error {
	if len(req.Items) == 0 {
		return fmt.Errorf("items are required: %w", ErrValidation)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("amount is required: %w", ErrValidation)
	}
	if req.Address.FullName == "" || req.Address.StreetAddress == "" || req.Address.City == "" {
		return fmt.Errorf("address is required: %w", ErrValidation)
	}
	if req.PaymentMethod != models.PaymentCOD && req.PaymentMethod != models.PaymentRazorpay {
		return fmt.Errorf("paymentMethod must be %s or %s: %w", models.PaymentCOD, models.PaymentRazorpay, ErrValidation)
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("item quantity must be at least 1: %w", ErrValidation)
		}
		if item.CustomizationID.IsZero() && item.ProductID.IsZero() {
			return fmt.Errorf("item needs a product or customization: %w", ErrValidation)
		}
	}
	return nil
}

// buildOrderItems transforms checkout items into the order's embedded line
// item shape, freezing every field at this instant.
func (s *OrderService) buildOrderItems(ctx context.Context, items []CheckoutItem) ([]models.OrderItem, error) {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if !item.CustomizationID.IsZero() {
			c, err := s.customizations.FindByID(ctx, item.CustomizationID)
			if err != nil {
				return nil, fmt.Errorf("find customization: %w", err)
			}
			if c == nil {
				return nil, fmt.Errorf("customization %s: %w", item.CustomizationID.Hex(), ErrNotFound)
			}
			frozen := cloneCustomization(c)
			out = append(out, models.OrderItem{
				Type:             models.ItemCustom,
				Name:             fmt.Sprintf("Custom %s's %s", c.Gender, c.DressType),
				Price:            item.Price,
				Quantity:         item.Quantity,
				Image:            c.CanvasDesign.RenderedImage,
				CustomizationID:  c.ID,
				Customization:    frozen,
				ProductionStatus: models.ProductionDesigning,
			})
			continue
		}

		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("find product: %w", err)
		}
		if product == nil {
			return nil, fmt.Errorf("product %s: %w", item.ProductID.Hex(), ErrNotFound)
		}
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		out = append(out, models.OrderItem{
			Type:      models.ItemReadyMade,
			Name:      product.Name,
			Price:     item.Price,
			BasePrice: item.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Image:     image,
			ProductID: product.ID,
		})
	}
	return out, nil
}

// cloneCustomization deep-copies a design so the order's embedded copy stays
// independent of later edits to the source document.
func cloneCustomization(c *models.Customization) *models.Customization {
	frozen := *c
	frozen.ReferenceImages = append([]string(nil), c.ReferenceImages...)
	frozen.CanvasDesign.Prints = append([]models.DesignAsset(nil), c.CanvasDesign.Prints...)
	frozen.CanvasDesign.Embroidery = append([]models.DesignAsset(nil), c.CanvasDesign.Embroidery...)
	frozen.CanvasDesign.ZoneColors = copyStringMap(c.CanvasDesign.ZoneColors)
	frozen.CanvasDesign.ZonePatterns = copyStringMap(c.CanvasDesign.ZonePatterns)
	return &frozen
}

func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
