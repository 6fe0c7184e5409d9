package middleware

import (
	"context"
	"time"

	"github.com/ngondo96v1/NDV26V/internal/config"
	"github.com/ngondo96v1/NDV26V/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Setup configures all middlewares for the application.
// storage backs the rate limiter; nil keeps the counters in memory.
func Setup(app *fiber.App, cfg *config.Config, storage fiber.Storage) {
	// Recover middleware - catches panics
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.IsDev(),
	}))

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// Bulk sync payloads compress well
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Security Headers middleware (Helmet)
	app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "SAMEORIGIN",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "cross-origin",
		PermissionPolicy:          "geolocation=(), microphone=(), camera=()",
	}))

	// CORS ahead of the limiter so 429 responses stay readable cross-origin
	origins := cfg.GetAllowedOrigins()
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		// Cannot be true with AllowOrigins: "*"
		AllowCredentials: origins != "*",
	}))

	if cfg.RateLimit.Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.Max,
			Expiration: 1 * time.Minute,
			Storage:    storage,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return response.TooManyRequests(c, "Too many requests")
			},
		}))
	}

	app.Use(RequestLogger())
}

// Connector is the lazy store handle the API group depends on
type Connector interface {
	EnsureConnected(ctx context.Context) error
}

// EnsureConnected attempts the store connection before every API request.
// A failed attempt does not short-circuit the request: the status endpoint
// must still answer, and store operations report their own failure.
func EnsureConnected(conn Connector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := conn.EnsureConnected(c.UserContext()); err != nil {
			logrus.WithError(err).WithField("path", c.Path()).Debug("Store unavailable for request")
		}
		return c.Next()
	}
}

// CustomErrorHandler handles errors globally
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	} else {
		logrus.WithError(err).WithField("path", c.Path()).Error("❌ Unhandled error")
	}

	return response.Error(c, code, message)
}
