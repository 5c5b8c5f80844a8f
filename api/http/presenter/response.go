package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Msg string `json:"msg"`
}

const MsgServerError = "Server error"

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Msg: message})
}

func Message(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, MessageResponse{Msg: message})
}
