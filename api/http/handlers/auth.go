package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/VaibhavKawatra/copy-job-tracker/api/http/presenter"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/auth"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/logging"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/security/jwt"
)

const (
	msgMissingCredentials = "Email and password are required"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgMissingPasswords   = "Current and new password are required"
	msgPasswordUpdated    = "Password updated successfully"
	msgInvalidBody        = "Invalid request body"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
	log     logging.Logger
}

func NewAuthHandler(useCase auth.AuthUseCase, log logging.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, log: log}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "registration payload"
// @Success 201 {object} auth.Identity
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidBody)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, msgMissingCredentials)
	}

	ident, err := h.useCase.Register(c.UserContext(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrUserAlreadyExists):
		return presenter.Error(c, http.StatusBadRequest, msgUserExists)
	case errors.Is(err, auth.ErrMissingFields):
		return presenter.Error(c, http.StatusBadRequest, msgMissingCredentials)
	default:
		return serverError(c, h.log, "register", err)
	}

	h.log.Info(c.UserContext(), "user registered", "user_id", ident.ID)
	return presenter.JSON(c, http.StatusCreated, ident)
}

// Login exchanges credentials for a bearer token.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "login payload"
// @Success 200 {object} tokenResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidBody)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, msgMissingCredentials)
	}

	result, err := h.useCase.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusBadRequest, msgInvalidCredentials)
		}
		return serverError(c, h.log, "login", err)
	}
	return presenter.JSON(c, http.StatusOK, tokenResponse{Token: result.Token})
}

// ChangePassword replaces the caller's password after re-checking the current one.
// @Summary  Change password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Security ApiKeyAuth
// @Param    input body changePasswordRequest true "current and new password"
// @Success  200 {object} presenter.MessageResponse
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  401 {object} presenter.ErrorResponse
// @Failure  500 {object} presenter.ErrorResponse
// @Router   /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := jwt.UserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, jwt.MsgInvalidToken)
	}
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, msgInvalidBody)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return presenter.Error(c, http.StatusBadRequest, msgMissingPasswords)
	}

	err := h.useCase.ChangePassword(c.UserContext(), userID, req.CurrentPassword, req.NewPassword)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidCredentials):
		return presenter.Error(c, http.StatusBadRequest, msgInvalidCredentials)
	case errors.Is(err, auth.ErrMissingFields):
		return presenter.Error(c, http.StatusBadRequest, msgMissingPasswords)
	default:
		return serverError(c, h.log, "change password", err)
	}

	h.log.Info(c.UserContext(), "password changed", "user_id", userID)
	return presenter.Message(c, http.StatusOK, msgPasswordUpdated)
}
