package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type AppConfig struct {
	Name        string
	BodyLimit   int
	AccessLog   bool
	ReadTimeout time.Duration
	// WriteTimeout must leave room for the model call.
	WriteTimeout time.Duration
}

type Handlers struct {
	Evaluate *EvaluationHandler
	Result   *ResultHandler
	Report   *ReportHandler
	Upload   *UploadHandler
}

// NewApp builds the Fiber application and registers every route.
func NewApp(cfg AppConfig, h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/evaluate", h.Evaluate.HandleEvaluate)
	if h.Result != nil {
		api.Get("/result/:id", h.Result.HandleGetResult)
		api.Get("/result/:id/similar", h.Result.HandleSimilar)
	}
	if h.Upload != nil {
		api.Post("/references", h.Upload.HandleUploadReference)
	}

	app.Post("/evaluate", h.Evaluate.HandleEvaluate)
	app.Get("/", HandleIndex)
	// Must stay last: it matches any single path segment.
	app.Get("/:filename", h.Report.HandleDownload)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
