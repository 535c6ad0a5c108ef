package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Ankith-sara/aarovi-sub000/blobstore"
	"github.com/Ankith-sara/aarovi-sub000/configs"
	cartController "github.com/Ankith-sara/aarovi-sub000/controllers/cart"
	customizationController "github.com/Ankith-sara/aarovi-sub000/controllers/customizations"
	orderController "github.com/Ankith-sara/aarovi-sub000/controllers/orders"
	productController "github.com/Ankith-sara/aarovi-sub000/controllers/products"
	"github.com/Ankith-sara/aarovi-sub000/middlewares"
	"github.com/Ankith-sara/aarovi-sub000/notifier"
	"github.com/Ankith-sara/aarovi-sub000/payments"
	"github.com/Ankith-sara/aarovi-sub000/pkg/metrics"
	"github.com/Ankith-sara/aarovi-sub000/repositories"
	"github.com/Ankith-sara/aarovi-sub000/routes"
	"github.com/Ankith-sara/aarovi-sub000/services"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := configs.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := configs.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	log.Info("connected to MongoDB")

	users := repositories.NewUserRepository(configs.GetCollection(client, cfg.MongoDatabase, "users"))
	products := repositories.NewProductRepository(configs.GetCollection(client, cfg.MongoDatabase, "products"))
	customizations := repositories.NewCustomizationRepository(configs.GetCollection(client, cfg.MongoDatabase, "customizations"))
	orders := repositories.NewOrderRepository(configs.GetCollection(client, cfg.MongoDatabase, "orders"))

	// Notifications are best-effort: when the broker is down the API still
	// serves checkouts and events are only logged.
	var notify services.Notifier = notifier.NewNoop(log)
	if conn, err := amqp.Dial(cfg.RabbitMQURL); err != nil {
		log.Warn("RabbitMQ unavailable, notifications disabled", "error", err)
	} else {
		defer conn.Close()
		ch, err := conn.Channel()
		if err != nil {
			log.Warn("open AMQP channel failed, notifications disabled", "error", err)
		} else if err := notifier.Setup(ch); err != nil {
			log.Warn("declare notification queues failed, notifications disabled", "error", err)
		} else {
			notify = notifier.NewAMQP(ch)
			worker := notifier.NewWorker(ch, log)
			if err := worker.Start(ctx); err != nil {
				log.Warn("start notification worker failed", "error", err)
			}
		}
	}

	blobs := blobstore.New(cfg.BlobEndpoint, cfg.BlobAPIKey)
	gateway := payments.New(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	customizationSvc := services.NewCustomizationService(customizations, blobs, log)
	cartSvc := services.NewCartService(users, products, customizations, log)
	orderSvc := services.NewOrderService(orders, users, products, customizations, cartSvc, gateway, notify, log)

	app := fiber.New()
	auth := middlewares.AuthMiddleware(cfg.JWTSecret)

	routes.CustomizationRoutes(app, customizationController.New(customizationSvc), auth)
	routes.CartRoutes(app, cartController.New(cartSvc), auth)
	routes.OrderRoutes(app, orderController.New(orderSvc), auth)
	routes.ProductsRoute(app, productController.New(products), auth)

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, pingCancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer pingCancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("db unreachable")
		}
		return c.SendString("ok")
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", "error", err)
			cancel()
		}
	}()
	log.Info("server started", "port", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown", "error", err)
	}
}
