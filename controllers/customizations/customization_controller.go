package customizationController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ankith-sara/aarovi-sub000/responses"
	"github.com/Ankith-sara/aarovi-sub000/services"
)

type Controller struct {
	svc *services.CustomizationService
}

func New(svc *services.CustomizationService) *Controller {
	return &Controller{svc: svc}
}

func (h *Controller) Create(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}

	var input services.CustomizationInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Result:  nil,
		})
	}

	created, err := h.svc.Create(ctx, userID, input)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(responses.UserResponse{
		Status:  fiber.StatusCreated,
		Message: "Design saved",
		Result:  &fiber.Map{"customization": created},
	})
}

func (h *Controller) Get(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}

	customization, err := h.svc.Get(ctx, id, userID)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Fetched design",
		Result:  &fiber.Map{"customization": customization},
	})
}

func (h *Controller) Update(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}

	var patch services.CustomizationPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Result:  nil,
		})
	}

	updated, err := h.svc.Update(ctx, id, userID, patch)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Design updated",
		Result:  &fiber.Map{"customization": updated},
	})
}

func (h *Controller) Submit(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}

	submitted, err := h.svc.Submit(ctx, id, userID)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Design submitted for review",
		Result:  &fiber.Map{"customization": submitted},
	})
}

func (h *Controller) Delete(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := requesterID(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}

	if err := h.svc.Delete(ctx, id, userID); err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Design deleted",
		Result:  &fiber.Map{"status": "success"},
	})
}

// AdminSetStatus overwrites a design's status without a transition check.
func (h *Controller) AdminSetStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Result:  nil,
		})
	}

	if err := h.svc.AdminSetStatus(ctx, id, body.Status); err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Status updated",
		Result:  &fiber.Map{"status": body.Status},
	})
}

func (h *Controller) AdminListAll(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	all, err := h.svc.AdminListAll(ctx)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Fetched designs",
		Result:  &fiber.Map{"customizations": all},
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

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
		Status:  fiber.StatusBadRequest,
		Message: "Invalid id format",
		Result:  nil,
	})
}
