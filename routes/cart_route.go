package routes

import (
	"github.com/gofiber/fiber/v2"

	cartController "github.com/Ankith-sara/aarovi-sub000/controllers/cart"
)

func CartRoutes(app *fiber.App, h *cartController.Controller, auth fiber.Handler) {
	app.Post("/api/cart/add", auth, h.AddItem)
	app.Post("/api/cart/quantity", auth, h.SetItemQuantity)
	app.Post("/api/cart/remove", auth, h.RemoveItem)

	app.Post("/api/cart/customizations/add", auth, h.AddCustomization)
	app.Post("/api/cart/customizations/quantity", auth, h.SetCustomizationQuantity)
	app.Post("/api/cart/customizations/remove", auth, h.RemoveCustomization)

	app.Get("/api/cart", auth, h.GetCart)
	app.Get("/api/cart/totals", auth, h.GetCartTotals)
	app.Post("/api/cart/clear", auth, h.ClearCart)
}
