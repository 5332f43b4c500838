package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"newsletter-backend/domain/services"
	"newsletter-backend/pkg/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
// @Summary Register a new editor account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "Registration payload"
// @Success 201 {object} utils.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}

	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return utils.BadRequestResponse(c, "Registration failed", err)
	}

	return utils.CreatedResponse(c, "Account created", resp)
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Login payload"
// @Success 200 {object} utils.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}

	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return utils.UnauthorizedResponse(c, "Invalid credentials")
	}

	return utils.SuccessResponse(c, "Logged in", resp)
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} utils.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userCtx, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "Not authenticated")
	}

	user, err := h.authService.GetProfile(c.UserContext(), userCtx.ID)
	if err != nil {
		return utils.NotFoundResponse(c, "User not found")
	}

	return utils.SuccessResponse(c, "Profile retrieved", user)
}
