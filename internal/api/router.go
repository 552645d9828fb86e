package api

import (
	"prompt-insights/docs"
	"prompt-insights/internal/api/handlers"
	"prompt-insights/pkg/auth"
	"prompt-insights/pkg/config"
	"prompt-insights/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Handlers groups the route handlers. Feedback and Admin are nil when the
// feedback store is disabled; their routes are then not registered.
type Handlers struct {
	Chat     *handlers.ChatHandler
	Schema   *handlers.SchemaHandler
	Report   *handlers.ReportHandler
	Feedback *handlers.FeedbackHandler
	Admin    *handlers.AdminHandler
}

func SetupRouter(h Handlers, cfg *config.ServerConfig, jwtManager *auth.JWTManager, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "prompt-insights",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
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
	origins := cfg.AllowOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	if cfg.AccessLog {
		app.Use(logger.New())
	}

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", h.Schema.Health)

	app.Post("/chat", h.Chat.Chat)
	app.Post("/confirm", h.Chat.Confirm)
	app.Post("/refine", h.Chat.Refine)

	sessions := app.Group("/sessions")
	sessions.Post("/:id/fix", h.Chat.ApplyFix)
	sessions.Get("/:id/history", h.Chat.History)

	app.Post("/generate-report", h.Report.GenerateReport)

	schema := app.Group("/schema")
	schema.Post("/refresh", h.Schema.Refresh)
	schema.Get("/info", h.Schema.Info)

	if h.Feedback == nil || h.Admin == nil {
		appLogger.Warn("Feedback store disabled, feedback and admin routes not registered")
		return app
	}

	app.Post("/feedback", h.Feedback.Submit)

	admin := app.Group("/admin")
	admin.Post("/login", h.Admin.Login)

	protected := admin.Group("", middleware.AdminOnly(jwtManager, appLogger))
	protected.Get("/feedback", h.Admin.ListFeedback)
	protected.Get("/feedback/pending", h.Admin.PendingFeedback)
	protected.Post("/feedback", h.Admin.CreateFeedback)
	protected.Put("/feedback/:id", h.Admin.UpdateFeedback)
	protected.Delete("/feedback/:id", h.Admin.DeleteFeedback)
	protected.Post("/feedback/:id/approve", h.Admin.ApproveFeedback)
	protected.Post("/feedback/:id/reject", h.Admin.RejectFeedback)
	protected.Get("/training", h.Admin.ListTraining)
	protected.Post("/training", h.Admin.AddTraining)

	return app
}
