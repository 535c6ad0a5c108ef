package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ankith-sara/aarovi-sub000/models"
)

// CartTotals is the priced summary of a cart.
type CartTotals struct {
	ItemsTotal  float64 `json:"itemsTotal"`
	PlatformFee float64 `json:"platformFee"`
	GrandTotal  float64 `json:"grandTotal"`
}

// platformFeeRate is applied on top of the items total.
var platformFeeRate = decimal.NewFromFloat(0.002)

type CartService struct {
	users          UserStore
	products       ProductStore
	customizations CustomizationStore
	log            *slog.Logger
}

func NewCartService(users UserStore, products ProductStore, customizations CustomizationStore, log *slog.Logger) *CartService {
	return &CartService{users: users, products: products, customizations: customizations, log: log}
}

// Get returns the cart; an absent or never-written cart reads as empty.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart := user.Cart
	cart.EnsureMaps()
	return &cart, nil
}

// AddReadyItem increments the quantity for (product, size), creating the
// entry at qty when absent. The product must exist in the catalog.
func (s *CartService) AddReadyItem(ctx context.Context, userID, productID primitive.ObjectID, size string, qty int) (*models.Cart, error) {
	if size == "" {
		return nil, fmt.Errorf("size is required: %w", ErrValidation)
	}
	if qty < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", productID.Hex(), ErrNotFound)
	}

	return s.mutate(ctx, userID, func(cart *models.Cart) error {
		key := productID.Hex()
		if cart.Items[key] == nil {
			cart.Items[key] = make(map[string]int)
		}
		cart.Items[key][size] += qty
		return nil
	})
}

// SetReadyItemQuantity sets the quantity absolutely. Zero removes the
// (product, size) leaf, and the product key too when no sizes remain.
func (s *CartService) SetReadyItemQuantity(ctx context.Context, userID, productID primitive.ObjectID, size string, qty int) (*models.Cart, error) {
	if qty < 0 {
		return nil, fmt.Errorf("quantity must not be negative: %w", ErrValidation)
	}
	return s.mutate(ctx, userID, func(cart *models.Cart) error {
		key := productID.Hex()
		if qty == 0 {
			removeReadyLeaf(cart, key, size)
			return nil
		}
		if cart.Items[key] == nil {
			cart.Items[key] = make(map[string]int)
		}
		cart.Items[key][size] = qty
		return nil
	})
}

// RemoveReadyItem deletes the (product, size) leaf with the same cleanup as a
// zero-quantity set.
func (s *CartService) RemoveReadyItem(ctx context.Context, userID, productID primitive.ObjectID, size string) (*models.Cart, error) {
	return s.mutate(ctx, userID, func(cart *models.Cart) error {
		removeReadyLeaf(cart, productID.Hex(), size)
		return nil
	})
}

// AddCustomization puts the requester's own design into the cart: an existing
// entry is incremented, a new one is inserted at quantity 1 with a snapshot
// of the design's current defining fields and its rendered image.
func (s *CartService) AddCustomization(ctx context.Context, userID, customizationID primitive.ObjectID) (*models.Cart, error) {
	c, err := s.customizations.FindByID(ctx, customizationID)
	if err != nil {
		return nil, fmt.Errorf("find customization: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("customization %s: %w", customizationID.Hex(), ErrNotFound)
	}
	if c.UserID != userID {
		return nil, fmt.Errorf("customization %s: %w", customizationID.Hex(), ErrForbidden)
	}

	return s.mutate(ctx, userID, func(cart *models.Cart) error {
		key := customizationID.Hex()
		if entry, ok := cart.Customizations[key]; ok {
			entry.Quantity++
			cart.Customizations[key] = entry
			return nil
		}
		cart.Customizations[key] = models.CartCustomization{
			Price:    c.EstimatedPrice,
			Quantity: 1,
			Snapshot: models.CustomizationSnapshot{
				Gender:        c.Gender,
				DressType:     c.DressType,
				Fabric:        c.Fabric,
				Color:         c.Color,
				DesignNotes:   c.DesignNotes,
				RenderedImage: c.CanvasDesign.RenderedImage,
			},
		}
		return nil
	})
}

// SetCustomizationQuantity overwrites the quantity, leaving the snapshot
// untouched. Zero removes the entry.
func (s *CartService) SetCustomizationQuantity(ctx context.Context, userID, customizationID primitive.ObjectID, qty int) (*models.Cart, error) {
	if qty < 0 {
		return nil, fmt.Errorf("quantity must not be negative: %w", ErrValidation)
	}
	return s.mutate(ctx, userID, func(cart *models.Cart) error {
		key := customizationID.Hex()
		entry, ok := cart.Customizations[key]
		if !ok {
			return fmt.Errorf("cart customization %s: %w", key, ErrNotFound)
		}
		if qty == 0 {
			delete(cart.Customizations, key)
			return nil
		}
		entry.Quantity = qty
		cart.Customizations[key] = entry
		return nil
	})
}

// RemoveCustomization deletes the entry outright.
func (s *CartService) RemoveCustomization(ctx context.Context, userID, customizationID primitive.ObjectID) (*models.Cart, error) {
	return s.mutate(ctx, userID, func(cart *models.Cart) error {
		delete(cart.Customizations, customizationID.Hex())
		return nil
	})
}

// Clear resets the cart to its empty shape in a single write.
func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.mutate(ctx, userID, func(cart *models.Cart) error {
		cart.Items = make(map[string]map[string]int)
		cart.Customizations = make(map[string]models.CartCustomization)
		return nil
	})
	return err
}

// Totals prices the cart: catalog items at their current catalog price,
// customizations at their snapshotted price.
func (s *CartService) Totals(ctx context.Context, userID primitive.ObjectID) (*CartTotals, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for key, sizes := range cart.Items {
		productID, err := primitive.ObjectIDFromHex(key)
		if err != nil {
			continue
		}
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("find product: %w", err)
		}
		if product == nil {
			continue
		}
		price := decimal.NewFromFloat(product.Price)
		for _, qty := range sizes {
			total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		}
	}
	for _, entry := range cart.Customizations {
		total = total.Add(decimal.NewFromFloat(entry.Price).Mul(decimal.NewFromInt(int64(entry.Quantity))))
	}

	fee := total.Mul(platformFeeRate).Round(2)
	grand := total.Add(fee)
	itemsTotal, _ := total.Float64()
	platformFee, _ := fee.Float64()
	grandTotal, _ := grand.Float64()
	return &CartTotals{ItemsTotal: itemsTotal, PlatformFee: platformFee, GrandTotal: grandTotal}, nil
}

// mutate loads the cart, applies fn, and persists the whole cart document in
// one update so nested-map changes are never silently dropped.
func (s *CartService) mutate(ctx context.Context, userID primitive.ObjectID, fn func(cart *models.Cart) error) (*models.Cart, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart := user.Cart
	cart.EnsureMaps()
	if err := fn(&cart); err != nil {
		return nil, err
	}
	if err := s.users.SaveCart(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return &cart, nil
}

func (s *CartService) loadUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID.Hex(), ErrNotFound)
	}
	return user, nil
}

func removeReadyLeaf(cart *models.Cart, productKey, size string) {
	sizes, ok := cart.Items[productKey]
	if !ok {
		return
	}
	delete(sizes, size)
	if len(sizes) == 0 {
		delete(cart.Items, productKey)
	}
}
