package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ankith-sara/aarovi-sub000/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- customizations ---

type fakeCustomizations struct {
	m map[primitive.ObjectID]models.Customization
}

func newFakeCustomizations() *fakeCustomizations {
	return &fakeCustomizations{m: make(map[primitive.ObjectID]models.Customization)}
}

func (f *fakeCustomizations) Insert(_ context.Context, c *models.Customization) error {
	f.m[c.ID] = *c
	return nil
}

func (f *fakeCustomizations) FindByID(_ context.Context, id primitive.ObjectID) (*models.Customization, error) {
	c, ok := f.m[id]
	if !ok {
		return nil, nil
	}
	out := c
	return &out, nil
}

func (f *fakeCustomizations) Replace(_ context.Context, c *models.Customization) error {
	f.m[c.ID] = *c
	return nil
}

func (f *fakeCustomizations) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	c, ok := f.m[id]
	if !ok {
		return errors.New("customization missing")
	}
	c.Status = status
	f.m[id] = c
	return nil
}

func (f *fakeCustomizations) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(f.m, id)
	return nil
}

func (f *fakeCustomizations) ListAll(_ context.Context) ([]models.Customization, error) {
	out := make([]models.Customization, 0, len(f.m))
	for _, c := range f.m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// --- users ---

type fakeUsers struct {
	m         map[primitive.ObjectID]models.User
	saveCalls int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{m: make(map[primitive.ObjectID]models.User)}
}

func (f *fakeUsers) put(u models.User) {
	f.m[u.Id] = u
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.m[id]
	if !ok {
		return nil, nil
	}
	out := u
	out.Cart = cloneCart(u.Cart)
	return &out, nil
}

func (f *fakeUsers) SaveCart(_ context.Context, userID primitive.ObjectID, cart models.Cart) error {
	u, ok := f.m[userID]
	if !ok {
		return errors.New("user missing")
	}
	u.Cart = cloneCart(cart)
	f.m[userID] = u
	f.saveCalls++
	return nil
}

func cloneCart(c models.Cart) models.Cart {
	out := models.Cart{
		Items:          make(map[string]map[string]int, len(c.Items)),
		Customizations: make(map[string]models.CartCustomization, len(c.Customizations)),
	}
	for k, sizes := range c.Items {
		m := make(map[string]int, len(sizes))
		for s, q := range sizes {
			m[s] = q
		}
		out.Items[k] = m
	}
	for k, v := range c.Customizations {
		out.Customizations[k] = v
	}
	return out
}

// --- products ---

type fakeProducts struct {
	m map[primitive.ObjectID]models.Product
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{m: make(map[primitive.ObjectID]models.Product)}
}

func (f *fakeProducts) put(p models.Product) {
	f.m[p.ID] = p
}

func (f *fakeProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.m[id]
	if !ok {
		return nil, nil
	}
	out := p
	return &out, nil
}

func (f *fakeProducts) ListIDsByAdmin(_ context.Context, adminID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for _, p := range f.m {
		if p.AdminID == adminID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

// --- orders ---

type fakeOrders struct {
	m map[primitive.ObjectID]models.Order
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{m: make(map[primitive.ObjectID]models.Order)}
}

func (f *fakeOrders) Insert(_ context.Context, o *models.Order) error {
	stored := *o
	stored.Items = append([]models.OrderItem(nil), o.Items...)
	f.m[o.ID] = stored
	return nil
}

func (f *fakeOrders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := f.m[id]
	if !ok {
		return nil, nil
	}
	out := o
	out.Items = append([]models.OrderItem(nil), o.Items...)
	return &out, nil
}

func (f *fakeOrders) FindByGatewayOrderID(_ context.Context, gatewayOrderID string) (*models.Order, error) {
	for _, o := range f.m {
		if o.GatewayOrderID == gatewayOrderID {
			out := o
			out.Items = append([]models.OrderItem(nil), o.Items...)
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeOrders) SettlePayment(_ context.Context, id primitive.ObjectID) (bool, error) {
	o, ok := f.m[id]
	if !ok {
		return false, errors.New("order missing")
	}
	if o.Payment {
		return false, nil
	}
	o.Payment = true
	f.m[id] = o
	return true, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	o, ok := f.m[id]
	if !ok {
		return errors.New("order missing")
	}
	o.Status = status
	f.m[id] = o
	return nil
}

func (f *fakeOrders) UpdateItemProductionStatus(_ context.Context, id primitive.ObjectID, index int, status string) error {
	o, ok := f.m[id]
	if !ok {
		return errors.New("order missing")
	}
	if index < 0 || index >= len(o.Items) {
		return errors.New("item index out of range")
	}
	o.Items[index].ProductionStatus = status
	f.m[id] = o
	return nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.m {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeOrders) ListByProductsOrCustom(_ context.Context, productIDs []primitive.ObjectID) ([]models.Order, error) {
	owned := make(map[primitive.ObjectID]bool, len(productIDs))
	for _, id := range productIDs {
		owned[id] = true
	}
	var out []models.Order
	for _, o := range f.m {
		match := false
		for _, item := range o.Items {
			if item.Type == models.ItemCustom || owned[item.ProductID] {
				match = true
				break
			}
		}
		if match {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// --- collaborators ---

type fakeBlob struct {
	mu      sync.Mutex
	uploads int
	failOn  map[string]bool
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{failOn: make(map[string]bool)}
}

func (f *fakeBlob) Upload(_ context.Context, data, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[data] {
		return "", errors.New("upload failed")
	}
	f.uploads++
	return "https://blobs.test/" + folder + "/" + data, nil
}

type fakeGateway struct {
	secret   string
	intentID string
	err      error
	intents  int
}

func (f *fakeGateway) CreateIntent(_ context.Context, _ float64, _ string, _ primitive.ObjectID) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.intents++
	return f.intentID, nil
}

func (f *fakeGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return hmac.Equal([]byte(signPayload(f.secret, gatewayOrderID, paymentID)), []byte(signature))
}

func signPayload(secret, gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
	fail   bool
}

func (f *fakeNotifier) Notify(_ context.Context, kind string, _ *models.Order, _ *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("notifier down")
	}
	f.events = append(f.events, kind)
	return nil
}

func (f *fakeNotifier) count(kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e == kind {
			n++
		}
	}
	return n
}
