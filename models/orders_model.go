package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses, admin-driven.
const (
	OrderPlaced         = "Order Placed"
	OrderProcessing     = "Processing"
	OrderShipping       = "Shipping"
	OrderOutForDelivery = "Out for delivery"
	OrderDelivered      = "Delivered"
)

// OrderStatuses is the order status enum used to validate admin writes.
var OrderStatuses = []string{
	OrderPlaced,
	OrderProcessing,
	OrderShipping,
	OrderOutForDelivery,
	OrderDelivered,
}

// Line item discriminators.
const (
	ItemReadyMade = "READY_MADE"
	ItemCustom    = "CUSTOM"
)

// Production sub-states of a CUSTOM line item, admin-driven.
const (
	ProductionDesigning = "DESIGNING"
	ProductionCutting   = "CUTTING"
	ProductionStitching = "STITCHING"
	ProductionQC        = "QC"
	ProductionReady     = "READY"
)

// ProductionStatuses is the production sub-state enum.
var ProductionStatuses = []string{
	ProductionDesigning,
	ProductionCutting,
	ProductionStitching,
	ProductionQC,
	ProductionReady,
}

// Payment methods.
const (
	PaymentCOD      = "COD"
	PaymentRazorpay = "Razorpay"
)

// ShippingAddress is the structured delivery address captured at checkout.
type ShippingAddress struct {
	FullName      string `bson:"fullName" json:"fullName"`
	Phone         string `bson:"phone" json:"phone"`
	StreetAddress string `bson:"streetAddress" json:"streetAddress"`
	City          string `bson:"city" json:"city"`
	State         string `bson:"state" json:"state"`
	ZipCode       string `bson:"zipCode" json:"zipCode"`
}

// OrderItem is one entry in an order's item list. Type discriminates between
// a frozen catalog purchase and a frozen customization purchase. Everything
// here is a snapshot captured at order time and never re-read from the live
// product or customization documents afterwards.
type OrderItem struct {
	Type     string  `bson:"type" json:"type"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Image    string  `bson:"image,omitempty" json:"image,omitempty"`

	// READY_MADE fields.
	ProductID primitive.ObjectID `bson:"productId,omitempty" json:"productId,omitempty"`
	BasePrice float64            `bson:"basePrice,omitempty" json:"basePrice,omitempty"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`

	// CUSTOM fields.
	CustomizationID  primitive.ObjectID `bson:"customizationId,omitempty" json:"customizationId,omitempty"`
	Customization    *Customization     `bson:"customization,omitempty" json:"customization,omitempty"`
	ProductionStatus string             `bson:"productionStatus,omitempty" json:"productionStatus,omitempty"`
}

// Order is one purchase record created from a cart snapshot. Amount is fixed
// at creation from the checkout request and never recomputed from the items.
// Payment starts false for every method and is flipped to true exactly once
// by payment reconciliation.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Items          []OrderItem        `bson:"items" json:"items"`
	Amount         float64            `bson:"amount" json:"amount"`
	Address        ShippingAddress    `bson:"address" json:"address"`
	Status         string             `bson:"status" json:"status"`
	PaymentMethod  string             `bson:"paymentMethod" json:"paymentMethod"`
	Payment        bool               `bson:"payment" json:"payment"`
	GatewayOrderID string             `bson:"gatewayOrderId,omitempty" json:"gatewayOrderId,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// ValidOrderStatus reports whether s is part of the order status enum.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ValidProductionStatus reports whether s is part of the production enum.
func ValidProductionStatus(s string) bool {
	for _, v := range ProductionStatuses {
		if v == s {
			return true
		}
	}
	return false
}
