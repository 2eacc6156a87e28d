package api

import (
	"fintrack/internal/api/handlers"
	"fintrack/pkg/auth"
	"fintrack/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Account     *handlers.AccountHandler
	Transaction *handlers.TransactionHandler
	Transfer    *handlers.TransferHandler
	Goal        *handlers.GoalHandler
	Category    *handlers.CategoryHandler
	Dashboard   *handlers.DashboardHandler
}

func SetupRouter(h Handlers, jwtManager *auth.JWTManager, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	accounts := protected.Group("/accounts")
	accounts.Post("", h.Account.Create)
	accounts.Get("", h.Account.List)
	accounts.Get("/:id", h.Account.Get)
	accounts.Put("/:id", h.Account.Update)
	accounts.Delete("/:id", h.Account.Delete)

	transactions := protected.Group("/transactions")
	transactions.Post("", h.Transaction.Create)
	transactions.Get("", h.Transaction.List)
	transactions.Get("/:id", h.Transaction.Get)
	transactions.Put("/:id", h.Transaction.Update)
	transactions.Delete("/:id", h.Transaction.Delete)

	transfers := protected.Group("/transfers")
	transfers.Post("", h.Transfer.Create)
	transfers.Get("", h.Transfer.List)
	transfers.Get("/:id", h.Transfer.Get)
	transfers.Put("/:id", h.Transfer.Update)
	transfers.Delete("/:id", h.Transfer.Delete)

	goals := protected.Group("/goals")
	goals.Post("", h.Goal.Create)
	goals.Get("", h.Goal.List)
	goals.Get("/:id", h.Goal.Get)
	goals.Put("/:id", h.Goal.Update)
	goals.Delete("/:id", h.Goal.Delete)
	goals.Post("/:id/contributions", h.Goal.AddContribution)
	goals.Get("/:id/contributions", h.Goal.ListContributions)

	protected.Delete("/contributions/:id", h.Goal.RemoveContribution)

	categories := protected.Group("/categories")
	categories.Post("", h.Category.Create)
	categories.Get("", h.Category.List)
	categories.Delete("/:id", h.Category.Delete)

	protected.Get("/dashboard/summary", h.Dashboard.Summary)

	return app
}
