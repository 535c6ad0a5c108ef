package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ankith-sara/aarovi-sub000/models"
)

type orderFixture struct {
	svc            *OrderService
	orders         *fakeOrders
	users          *fakeUsers
	products       *fakeProducts
	customizations *fakeCustomizations
	cart           *CartService
	gateway        *fakeGateway
	notifier       *fakeNotifier
	userID         primitive.ObjectID
}

func newOrderFixture() *orderFixture {
	orders := newFakeOrders()
	users := newFakeUsers()
	products := newFakeProducts()
	customizations := newFakeCustomizations()
	gateway := &fakeGateway{secret: "test-secret", intentID: "order_rzp_001"}
	notifier := &fakeNotifier{}
	cart := NewCartService(users, products, customizations, testLogger())

	userID := primitive.NewObjectID()
	users.put(models.User{Id: userID, Name: "Asha", Email: "asha@example.com"})

	return &orderFixture{
		svc:            NewOrderService(orders, users, products, customizations, cart, gateway, notifier, testLogger()),
		orders:         orders,
		users:          users,
		products:       products,
		customizations: customizations,
		cart:           cart,
		gateway:        gateway,
		notifier:       notifier,
		userID:         userID,
	}
}

func (f *orderFixture) product(price float64) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.products.put(models.Product{
		ID:     id,
		Name:   "Linen Shirt",
		Price:  price,
		Images: []string{"shirt.jpg", "shirt-back.jpg"},
	})
	return id
}

func (f *orderFixture) quoted(price float64) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.customizations.m[id] = models.Customization{
		ID:          id,
		UserID:      f.userID,
		Gender:      "Women",
		DressType:   "Kurti",
		Fabric:      "Cotton",
		Color:       "Teal",
		QuotedPrice: price,
		Status:      models.CustomizationQuoted,
		CanvasDesign: models.CanvasDesign{
			RenderedImage: "render.png",
			ZoneColors:    map[string]string{"sleeve": "#008080"},
			Prints:        []models.DesignAsset{{AssetID: "p1", Zone: "front", URL: "p1.png"}},
		},
	}
	return id
}

func address() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:      "Asha Nair",
		Phone:         "9876543210",
		StreetAddress: "12 MG Road",
		City:          "Kochi",
		State:         "Kerala",
		ZipCode:       "682001",
	}
}

func (f *orderFixture) checkout(method string) PlaceOrderRequest {
	p := f.product(500)
	c := f.quoted(1800)
	return PlaceOrderRequest{
		Items: []CheckoutItem{
			{ProductID: p, Quantity: 2, Size: "M", Price: 500},
			{CustomizationID: c, Quantity: 1, Price: 1800},
		},
		Amount:        2800,
		Address:       address(),
		PaymentMethod: method,
	}
}

func TestPlaceOrder_COD(t *testing.T) {
	f := newOrderFixture()
	req := f.checkout(models.PaymentCOD)
	customizationID := req.Items[1].CustomizationID

	// Put something in the cart so confirmation has something to clear.
	_, err := f.cart.AddReadyItem(context.Background(), f.userID, req.Items[0].ProductID, "M", 2)
	require.NoError(t, err)

	res, err := f.svc.PlaceOrder(context.Background(), f.userID, req)
	require.NoError(t, err)
	assert.Empty(t, res.GatewayOrderID)
	assert.Equal(t, 2800.0, res.Amount)

	order, err := f.orders.FindByID(context.Background(), res.OrderID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, models.OrderPlaced, order.Status)
	assert.Equal(t, models.PaymentCOD, order.PaymentMethod)
	assert.False(t, order.Payment)
	assert.Equal(t, 2800.0, order.Amount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, models.ItemReadyMade, order.Items[0].Type)
	assert.Equal(t, "Linen Shirt", order.Items[0].Name)
	assert.Equal(t, "shirt.jpg", order.Items[0].Image)
	assert.Equal(t, models.ItemCustom, order.Items[1].Type)
	assert.Equal(t, "Custom Women's Kurti", order.Items[1].Name)
	assert.Equal(t, models.ProductionDesigning, order.Items[1].ProductionStatus)

	// COD confirms immediately: design in production, cart cleared, owner told.
	assert.Equal(t, models.CustomizationInProduction, f.customizations.m[customizationID].Status)
	cart, err := f.cart.Get(context.Background(), f.userID)
	require.NoError(t, err)
	assert.True(t, cart.Empty())
	assert.Equal(t, 1, f.notifier.count(NotifyOrderConfirmed))
}

func TestPlaceOrder_Gateway_DefersSideEffects(t *testing.T) {
	f := newOrderFixture()
	req := f.checkout(models.PaymentRazorpay)
	customizationID := req.Items[1].CustomizationID

	res, err := f.svc.PlaceOrder(context.Background(), f.userID, req)
	require.NoError(t, err)
	assert.Equal(t, "order_rzp_001", res.GatewayOrderID)
	assert.Equal(t, 1, f.gateway.intents)

	order, err := f.orders.FindByID(context.Background(), res.OrderID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "order_rzp_001", order.GatewayOrderID)
	assert.False(t, order.Payment)

	// Nothing settles until the gateway callback arrives.
	assert.Equal(t, models.CustomizationQuoted, f.customizations.m[customizationID].Status)
	assert.Equal(t, 0, f.notifier.count(NotifyOrderConfirmed))
}

func TestPlaceOrder_Validation(t *testing.T) {
	f := newOrderFixture()

	cases := []struct {
		name   string
		mutate func(*PlaceOrderRequest)
	}{
		{"no items", func(r *PlaceOrderRequest) { r.Items = nil }},
		{"zero amount", func(r *PlaceOrderRequest) { r.Amount = 0 }},
		{"missing address", func(r *PlaceOrderRequest) { r.Address.City = "" }},
		{"bad method", func(r *PlaceOrderRequest) { r.PaymentMethod = "UPI" }},
		{"zero quantity", func(r *PlaceOrderRequest) { r.Items[0].Quantity = 0 }},
		{"dangling item", func(r *PlaceOrderRequest) {
			r.Items[0].ProductID = primitive.ObjectID{}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := f.checkout(models.PaymentCOD)
			tc.mutate(&req)
			_, err := f.svc.PlaceOrder(context.Background(), f.userID, req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestPlaceOrder_UnknownReferences(t *testing.T) {
	f := newOrderFixture()

	req := f.checkout(models.PaymentCOD)
	req.Items[0].ProductID = primitive.NewObjectID()
	_, err := f.svc.PlaceOrder(context.Background(), f.userID, req)
	assert.ErrorIs(t, err, ErrNotFound)

	req = f.checkout(models.PaymentCOD)
	req.Items[1].CustomizationID = primitive.NewObjectID()
	_, err = f.svc.PlaceOrder(context.Background(), f.userID, req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceOrder_FreezesCustomization(t *testing.T) {
	f := newOrderFixture()
	req := f.checkout(models.PaymentCOD)
	customizationID := req.Items[1].CustomizationID

	res, err := f.svc.PlaceOrder(context.Background(), f.userID, req)
	require.NoError(t, err)

	// Edit the live design after checkout: the order's copy must not move.
	live := f.customizations.m[customizationID]
	live.Color = "Black"
	live.CanvasDesign.ZoneColors["sleeve"] = "#000000"
	live.CanvasDesign.Prints[0].URL = "replaced.png"
	f.customizations.m[customizationID] = live

	order, err := f.orders.FindByID(context.Background(), res.OrderID)
	require.NoError(t, err)
	frozen := order.Items[1].Customization
	require.NotNil(t, frozen)
	assert.Equal(t, "Teal", frozen.Color)
	assert.Equal(t, "#008080", frozen.CanvasDesign.ZoneColors["sleeve"])
	assert.Equal(t, "p1.png", frozen.CanvasDesign.Prints[0].URL)
}

func TestVerifyPayment_Settles(t *testing.T) {
	f := newOrderFixture()
	req := f.checkout(models.PaymentRazorpay)
	customizationID := req.Items[1].CustomizationID

	res, err := f.svc.PlaceOrder(context.Background(), f.userID, req)
	require.NoError(t, err)

	order, err := f.svc.VerifyPayment(context.Background(), VerifyPaymentRequest{
		GatewayOrderID: res.GatewayOrderID,
		PaymentID:      "pay_123",
		Signature:      signPayload("test-secret", res.GatewayOrderID, "pay_123"),
	})
	require.NoError(t, err)
	assert.True(t, order.Payment)

	stored, err := f.orders.FindByID(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.True(t, stored.Payment)
	assert.Equal(t, models.CustomizationInProduction, f.customizations.m[customizationID].Status)
	assert.Equal(t, 1, f.notifier.count(NotifyOrderConfirmed))
}

func TestVerifyPayment_BadSignature(t *testing.T) {
	f := newOrderFixture()
	res, err := f.svc.PlaceOrder(context.Background(), f.userID, f.checkout(models.PaymentRazorpay))
	require.NoError(t, err)

	_, err = f.svc.VerifyPayment(context.Background(), VerifyPaymentRequest{
		GatewayOrderID: res.GatewayOrderID,
		PaymentID:      "pay_123",
		Signature:      signPayload("wrong-secret", res.GatewayOrderID, "pay_123"),
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)

	// Rejected before any state was touched.
	stored, err := f.orders.FindByID(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.False(t, stored.Payment)
	assert.Equal(t, 0, f.notifier.count(NotifyOrderConfirmed))
}

func TestVerifyPayment_DuplicateCallback(t *testing.T) {
	f := newOrderFixture()
	res, err := f.svc.PlaceOrder(context.Background(), f.userID, f.checkout(models.PaymentRazorpay))
	require.NoError(t, err)

	req := VerifyPaymentRequest{
		GatewayOrderID: res.GatewayOrderID,
		PaymentID:      "pay_123",
		Signature:      signPayload("test-secret", res.GatewayOrderID, "pay_123"),
	}

	first, err := f.svc.VerifyPayment(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, first.Payment)
	savesAfterFirst := f.users.saveCalls

	// The replay succeeds but runs no side effects a second time.
	second, err := f.svc.VerifyPayment(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Payment)
	assert.Equal(t, savesAfterFirst, f.users.saveCalls)
	assert.Equal(t, 1, f.notifier.count(NotifyOrderConfirmed))
}

func TestVerifyPayment_UnknownGatewayOrder(t *testing.T) {
	f := newOrderFixture()
	_, err := f.svc.VerifyPayment(context.Background(), VerifyPaymentRequest{
		GatewayOrderID: "order_unknown",
		PaymentID:      "pay_123",
		Signature:      signPayload("test-secret", "order_unknown", "pay_123"),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerifyCOD(t *testing.T) {
	f := newOrderFixture()

	res, err := f.svc.PlaceOrder(context.Background(), f.userID, f.checkout(models.PaymentCOD))
	require.NoError(t, err)

	order, err := f.svc.VerifyCOD(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCOD, order.PaymentMethod)

	gw, err := f.svc.PlaceOrder(context.Background(), f.userID, f.checkout(models.PaymentRazorpay))
	require.NoError(t, err)
	_, err = f.svc.VerifyCOD(context.Background(), gw.OrderID)
	assert.ErrorIs(t, err, ErrInvalidMethod)

	_, err = f.svc.VerifyCOD(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus_NotifiesOnEdgeOnly(t *testing.T) {
	f := newOrderFixture()
	res, err := f.svc.PlaceOrder(context.Background(), f.userID, f.checkout(models.PaymentCOD))
	require.NoError(t, err)

	order, err := f.svc.UpdateStatus(context.Background(), res.OrderID, models.OrderShipping)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipping, order.Status)
	assert.Equal(t, 1, f.notifier.count(NotifyOrderShipped))

	// Same status again: no second notification.
	_, err = f.svc.UpdateStatus(context.Background(), res.OrderID, models.OrderShipping)
	require.NoError(t, err)
	assert.Equal(t, 1, f.notifier.count(NotifyOrderShipped))

	_, err = f.svc.UpdateStatus(context.Background(), res.OrderID, models.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, 1, f.notifier.count(NotifyOrderDelivered))

	_, err = f.svc.UpdateStatus(context.Background(), res.OrderID, "Lost")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestUpdateProductionStatus_MirrorsCustomization(t *testing.T) {
	f := newOrderFixture()
	req := f.checkout(models.PaymentCOD)
	customizationID := req.Items[1].CustomizationID

	res, err := f.svc.PlaceOrder(context.Background(), f.userID, req)
	require.NoError(t, err)

	order, err := f.svc.UpdateProductionStatus(context.Background(), res.OrderID, 1, models.ProductionStitching)
	require.NoError(t, err)
	assert.Equal(t, models.ProductionStitching, order.Items[1].ProductionStatus)
	assert.Equal(t, models.CustomizationInProduction, f.customizations.m[customizationID].Status)

	order, err = f.svc.UpdateProductionStatus(context.Background(), res.OrderID, 1, models.ProductionReady)
	require.NoError(t, err)
	assert.Equal(t, models.ProductionReady, order.Items[1].ProductionStatus)
	assert.Equal(t, models.CustomizationReady, f.customizations.m[customizationID].Status)
}

func TestUpdateProductionStatus_Checks(t *testing.T) {
	f := newOrderFixture()
	res, err := f.svc.PlaceOrder(context.Background(), f.userID, f.checkout(models.PaymentCOD))
	require.NoError(t, err)

	_, err = f.svc.UpdateProductionStatus(context.Background(), res.OrderID, 1, "SHIPPED")
	assert.ErrorIs(t, err, ErrInvalidValue)

	// Item 0 is the catalog shirt, not a custom design.
	_, err = f.svc.UpdateProductionStatus(context.Background(), res.OrderID, 0, models.ProductionCutting)
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = f.svc.UpdateProductionStatus(context.Background(), res.OrderID, 5, models.ProductionCutting)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForAdmin_OwnedProductsAndCustomItems(t *testing.T) {
	f := newOrderFixture()
	adminID := primitive.NewObjectID()

	owned := primitive.NewObjectID()
	f.products.put(models.Product{ID: owned, AdminID: adminID, Name: "Saree", Price: 900, Images: []string{"saree.jpg"}})
	foreign := primitive.NewObjectID()
	f.products.put(models.Product{ID: foreign, AdminID: primitive.NewObjectID(), Name: "Scarf", Price: 200, Images: []string{"scarf.jpg"}})

	place := func(item CheckoutItem, amount float64) primitive.ObjectID {
		res, err := f.svc.PlaceOrder(context.Background(), f.userID, PlaceOrderRequest{
			Items:         []CheckoutItem{item},
			Amount:        amount,
			Address:       address(),
			PaymentMethod: models.PaymentCOD,
		})
		require.NoError(t, err)
		return res.OrderID
	}

	ownedOrder := place(CheckoutItem{ProductID: owned, Quantity: 1, Size: "M", Price: 900}, 900)
	place(CheckoutItem{ProductID: foreign, Quantity: 1, Size: "M", Price: 200}, 200)
	customOrder := place(CheckoutItem{CustomizationID: f.quoted(1800), Quantity: 1, Price: 1800}, 1800)

	got, err := f.svc.ListForAdmin(context.Background(), adminID)
	require.NoError(t, err)

	ids := make([]primitive.ObjectID, 0, len(got))
	for _, o := range got {
		ids = append(ids, o.ID)
	}
	assert.Contains(t, ids, ownedOrder)
	assert.Contains(t, ids, customOrder)
	assert.Len(t, got, 2)
}

func TestListForUser(t *testing.T) {
	f := newOrderFixture()

	res, err := f.svc.PlaceOrder(context.Background(), f.userID, f.checkout(models.PaymentCOD))
	require.NoError(t, err)

	other := primitive.NewObjectID()
	f.users.put(models.User{Id: other, Name: "Ravi", Email: "ravi@example.com"})
	_, err = f.svc.PlaceOrder(context.Background(), other, f.checkout(models.PaymentCOD))
	require.NoError(t, err)

	got, err := f.svc.ListForUser(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, res.OrderID, got[0].ID)
}
