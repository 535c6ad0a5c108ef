package routes

import (
	"github.com/gofiber/fiber/v2"

	productController "github.com/Ankith-sara/aarovi-sub000/controllers/products"
	"github.com/Ankith-sara/aarovi-sub000/middlewares"
)

func ProductsRoute(app *fiber.App, h *productController.Controller, auth fiber.Handler) {
	app.Get("/api/products", auth, h.GetAllProducts)
	app.Get("/api/products/details", auth, h.FetchProductDetails)

	app.Post("/api/admin/products", auth, middlewares.AdminOnly, h.AddProduct)
}
