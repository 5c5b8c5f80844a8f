package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/VaibhavKawatra/copy-job-tracker/api/http/presenter"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/logging"
)

// serverError logs err with request context and answers with a generic 500.
func serverError(c *fiber.Ctx, log logging.Logger, op string, err error) error {
	log.Error(c.UserContext(), op+" failed",
		"err", err,
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.Locals("requestid"),
	)
	return presenter.Error(c, http.StatusInternalServerError, presenter.MsgServerError)
}
