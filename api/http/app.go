package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/VaibhavKawatra/copy-job-tracker/api/http/presenter"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/logging"
)

// AppOptions tune NewApp.
type AppOptions struct {
	// CORSOrigins is a comma-separated allow list, "*" for any.
	CORSOrigins string
	// BodyLimit caps request bodies in bytes; 0 keeps fiber's default.
	BodyLimit int
	// AccessLog enables fiber's per-request access log.
	AccessLog bool
}

// NewApp builds the Fiber app with the shared middleware stack. Any error
// escaping a handler becomes a JSON {"msg": ...} body and never a crash.
func NewApp(log logging.Logger, opts AppOptions) *fiber.App {
	cfg := fiber.Config{
		AppName:      "copy-job-tracker",
		ErrorHandler: errorHandler(log),
	}
	if opts.BodyLimit > 0 {
		cfg.BodyLimit = opts.BodyLimit
	}
	app := fiber.New(cfg)

	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	origins := strings.TrimSpace(opts.CORSOrigins)
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, x-auth-token",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	return app
}

func errorHandler(log logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			return presenter.Error(c, fe.Code, fe.Message)
		}
		log.Error(c.UserContext(), "unhandled request error",
			"err", err,
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
		)
		return presenter.Error(c, fiber.StatusInternalServerError, presenter.MsgServerError)
	}
}
