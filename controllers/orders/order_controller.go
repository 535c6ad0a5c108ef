package orderController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ankith-sara/aarovi-sub000/responses"
	"github.com/Ankith-sara/aarovi-sub000/services"
)

type Controller struct {
	svc *services.OrderService
}

func New(svc *services.OrderService) *Controller {
	return &Controller{svc: svc}
}

// PlaceOrder is the single checkout entry point; the payment method in the
// body selects the COD or gateway variant.
func (h *Controller) PlaceOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	var req services.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.svc.PlaceOrder(ctx, userID, req)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Order created successfully",
		Result: &fiber.Map{
			"orderId":        result.OrderID.Hex(),
			"gatewayOrderId": result.GatewayOrderID,
			"amount":         result.Amount,
		},
	})
}

func (h *Controller) VerifyPayment(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	var req services.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	order, err := h.svc.VerifyPayment(ctx, req)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Payment verified successfully",
		Result: &fiber.Map{
			"orderId":   order.ID.Hex(),
			"paymentId": req.PaymentID,
			"payment":   order.Payment,
		},
	})
}

func (h *Controller) VerifyCOD(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	order, err := h.svc.VerifyCOD(ctx, orderID)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Order confirmed",
		Result:  &fiber.Map{"order": order},
	})
}

func (h *Controller) GetMyOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	orders, err := h.svc.ListForUser(ctx, userID)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result:  &fiber.Map{"orders": orders},
	})
}

// Admin handlers.

func (h *Controller) AdminListOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	adminID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	orders, err := h.svc.ListForAdmin(ctx, adminID)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result:  &fiber.Map{"orders": orders},
	})
}

func (h *Controller) UpdateStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	order, err := h.svc.UpdateStatus(ctx, orderID, body.Status)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Order status updated",
		Result:  &fiber.Map{"order": order},
	})
}

func (h *Controller) UpdateProductionStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var body struct {
		ItemIndex        int    `json:"itemIndex"`
		ProductionStatus string `json:"productionStatus"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	order, err := h.svc.UpdateProductionStatus(ctx, orderID, body.ItemIndex, body.ProductionStatus)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Production status updated",
		Result:  &fiber.Map{"order": order},
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
