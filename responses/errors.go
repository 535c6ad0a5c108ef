package responses

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Ankith-sara/aarovi-sub000/services"
)

// Error maps a service error onto the response envelope. Unrecognised errors
// are internal: the client may retry, everything else it should not.
func Error(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidValue),
		errors.Is(err, services.ErrInvalidMethod),
		errors.Is(err, services.ErrInvalidType):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrInvalidState):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidSignature):
		status = fiber.StatusBadRequest
	}

	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "Something went wrong, please try again"
	}
	return c.Status(status).JSON(UserResponse{
		Status:  status,
		Message: msg,
		Result:  nil,
	})
}
