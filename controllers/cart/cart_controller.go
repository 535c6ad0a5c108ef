package cartController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ankith-sara/aarovi-sub000/models"
	"github.com/Ankith-sara/aarovi-sub000/responses"
	"github.com/Ankith-sara/aarovi-sub000/services"
)

type Controller struct {
	svc *services.CartService
}

func New(svc *services.CartService) *Controller {
	return &Controller{svc: svc}
}

type readyItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type customizationRequest struct {
	CustomizationID string `json:"customizationId"`
	Quantity        int    `json:"quantity"`
}

func (h *Controller) AddItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	var req readyItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return badRequest(c, "Invalid product id")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.svc.AddReadyItem(ctx, userID, productID, req.Size, req.Quantity)
	if err != nil {
		return responses.Error(c, err)
	}
	return cartOK(c, "Added to cart", cart)
}

func (h *Controller) SetItemQuantity(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	var req readyItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return badRequest(c, "Invalid product id")
	}

	cart, err := h.svc.SetReadyItemQuantity(ctx, userID, productID, req.Size, req.Quantity)
	if err != nil {
		return responses.Error(c, err)
	}
	return cartOK(c, "Cart updated", cart)
}

func (h *Controller) RemoveItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	var req readyItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return badRequest(c, "Invalid product id")
	}

	cart, err := h.svc.RemoveReadyItem(ctx, userID, productID, req.Size)
	if err != nil {
		return responses.Error(c, err)
	}
	return cartOK(c, "Removed from cart", cart)
}

func (h *Controller) AddCustomization(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	var req customizationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	customizationID, err := primitive.ObjectIDFromHex(req.CustomizationID)
	if err != nil {
		return badRequest(c, "Invalid customization id")
	}

	cart, err := h.svc.AddCustomization(ctx, userID, customizationID)
	if err != nil {
		return responses.Error(c, err)
	}
	return cartOK(c, "Added design to cart", cart)
}

func (h *Controller) SetCustomizationQuantity(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	var req customizationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	customizationID, err := primitive.ObjectIDFromHex(req.CustomizationID)
	if err != nil {
		return badRequest(c, "Invalid customization id")
	}

	cart, err := h.svc.SetCustomizationQuantity(ctx, userID, customizationID, req.Quantity)
	if err != nil {
		return responses.Error(c, err)
	}
	return cartOK(c, "Cart updated", cart)
}

func (h *Controller) RemoveCustomization(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	var req customizationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	customizationID, err := primitive.ObjectIDFromHex(req.CustomizationID)
	if err != nil {
		return badRequest(c, "Invalid customization id")
	}

	cart, err := h.svc.RemoveCustomization(ctx, userID, customizationID)
	if err != nil {
		return responses.Error(c, err)
	}
	return cartOK(c, "Removed design from cart", cart)
}

func (h *Controller) GetCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	cart, err := h.svc.Get(ctx, userID)
	if err != nil {
		return responses.Error(c, err)
	}
	return cartOK(c, "Fetched cart", cart)
}

func (h *Controller) GetCartTotals(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	totals, err := h.svc.Totals(ctx, userID)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Successfully calculated cart totals",
		Result: &fiber.Map{
			"totalPrice":  totals.ItemsTotal,
			"platformFee": totals.PlatformFee,
			"grandTotal":  totals.GrandTotal,
		},
	})
}

func (h *Controller) ClearCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.svc.Clear(ctx, userID); err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Cart cleared",
		Result:  &fiber.Map{"status": "success"},
	})
}

func cartOK(c *fiber.Ctx, message string, cart *models.Cart) error {
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Result: &fiber.Map{
			"status": "success",
			"cart":   cart,
		},
	})
}

func requesterID(c *fiber.Ctx) (primitive.ObjectID, bool) {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(userId)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
		Status:  fiber.StatusUnauthorized,
		Message: "User ID not found in token",
		Result:  nil,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
		Status:  fiber.StatusBadRequest,
		Message: message,
		Result:  nil,
	})
}
