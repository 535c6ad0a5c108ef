package routes

import (
	"github.com/gofiber/fiber/v2"

	customizationController "github.com/Ankith-sara/aarovi-sub000/controllers/customizations"
	"github.com/Ankith-sara/aarovi-sub000/middlewares"
)

func CustomizationRoutes(app *fiber.App, h *customizationController.Controller, auth fiber.Handler) {
	app.Post("/api/customizations", auth, h.Create)
	app.Get("/api/customizations/:id", auth, h.Get)
	app.Put("/api/customizations/:id", auth, h.Update)
	app.Post("/api/customizations/:id/submit", auth, h.Submit)
	app.Delete("/api/customizations/:id", auth, h.Delete)

	app.Get("/api/admin/customizations", auth, middlewares.AdminOnly, h.AdminListAll)
	app.Put("/api/admin/customizations/:id/status", auth, middlewares.AdminOnly, h.AdminSetStatus)
}
