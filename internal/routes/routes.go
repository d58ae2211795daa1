package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/retailops/internal/config"
	"github.com/example/retailops/internal/handlers"
	"github.com/example/retailops/internal/middleware"
	"github.com/example/retailops/internal/services"
	"github.com/example/retailops/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, st store.Store, cfg *config.Config) {
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)

	authHandler := handlers.NewAuthHandler(st, cfg)
	productHandler := handlers.NewProductHandler(st)
	customerHandler := handlers.NewCustomerHandler(st)
	orderHandler := handlers.NewOrderHandler(st, telegramService)
	rewardHandler := handlers.NewRewardHandler(st)
	dashboardHandler := handlers.NewDashboardHandler(st)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/auth/me", authHandler.Me)

	products := protected.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", productHandler.CreateProduct)
	products.Put("/:id", productHandler.UpdateProduct)
	products.Delete("/:id", productHandler.DeleteProduct)

	customers := protected.Group("/customers")
	customers.Get("/", customerHandler.ListCustomers)
	customers.Get("/:id", customerHandler.GetCustomer)
	customers.Post("/", customerHandler.CreateCustomer)
	customers.Put("/:id", customerHandler.UpdateCustomer)
	customers.Delete("/:id", customerHandler.DeleteCustomer)

	orders := protected.Group("/orders")
	orders.Get("/", orderHandler.ListOrders)
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Post("/", orderHandler.CreateOrder)
	orders.Put("/:id", orderHandler.UpdateOrder)
	orders.Delete("/:id", orderHandler.DeleteOrder)

	rewards := protected.Group("/rewards")
	rewards.Get("/", rewardHandler.ListRewards)
	rewards.Get("/:id", rewardHandler.GetReward)
	rewards.Post("/", rewardHandler.CreateReward)
	rewards.Put("/:id", rewardHandler.UpdateReward)
	rewards.Delete("/:id", rewardHandler.DeleteReward)

	protected.Get("/dashboard", dashboardHandler.Stats)
}
