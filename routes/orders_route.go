package routes

import (
	"github.com/gofiber/fiber/v2"

	orderController "github.com/Ankith-sara/aarovi-sub000/controllers/orders"
	"github.com/Ankith-sara/aarovi-sub000/middlewares"
)

func OrderRoutes(app *fiber.App, h *orderController.Controller, auth fiber.Handler) {
	app.Post("/api/orders", auth, h.PlaceOrder)
	app.Post("/api/orders/verify-payment", auth, h.VerifyPayment)
	app.Get("/api/orders/:id/verify-cod", auth, h.VerifyCOD)
	app.Get("/api/orders", auth, h.GetMyOrders)

	app.Get("/api/admin/orders", auth, middlewares.AdminOnly, h.AdminListOrders)
	app.Put("/api/admin/orders/:id/status", auth, middlewares.AdminOnly, h.UpdateStatus)
	app.Put("/api/admin/orders/:id/production-status", auth, middlewares.AdminOnly, h.UpdateProductionStatus)
}
