package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ankith-sara/aarovi-sub000/models"
)

// Store interfaces implemented by the repositories package. Absent documents
// are reported as (nil, nil) so services decide which sentinel applies.

type CustomizationStore interface {
	Insert(ctx context.Context, c *models.Customization) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Customization, error)
	Replace(ctx context.Context, c *models.Customization) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListAll(ctx context.Context) ([]models.Customization, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// SaveCart replaces the whole embedded cart document in one update, so a
	// mutation of a nested map can never be lost to a partial-object write.
	SaveCart(ctx context.Context, userID primitive.ObjectID, cart models.Cart) error
}

type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ListIDsByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]primitive.ObjectID, error)
}

type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error)
	// SettlePayment flips payment from false to true atomically and reports
	// whether this call actually changed the document. A false report is the
	// idempotent-replay case and must not re-run side effects.
	SettlePayment(ctx context.Context, id primitive.ObjectID) (bool, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	UpdateItemProductionStatus(ctx context.Context, id primitive.ObjectID, index int, status string) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	ListByProductsOrCustom(ctx context.Context, productIDs []primitive.ObjectID) ([]models.Order, error)
}

// BlobStore uploads a base64 payload under a logical folder and returns a
// durable URL. A failed upload drops that one asset, never the whole save.
type BlobStore interface {
	Upload(ctx context.Context, data, folder string) (string, error)
}

// Notification kinds.
const (
	NotifyOrderConfirmed = "order_confirmed"
	NotifyOrderShipped   = "order_shipped"
	NotifyOrderDelivered = "order_delivered"
)

// Notifier delivers human-readable confirmations. Failures are logged by the
// caller and never propagated.
type Notifier interface {
	Notify(ctx context.Context, kind string, order *models.Order, user *models.User) error
}

// PaymentGateway is the single supported gateway's contract: create a remote
// payment intent for an amount, and verify a callback signature.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount float64, currency string, orderID primitive.ObjectID) (string, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}
