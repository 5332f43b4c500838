package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"newsletter-backend/domain/services"
	"newsletter-backend/pkg/utils"
)

// AiAppHandler administers the AI-tool directory
type AiAppHandler struct {
	apps services.AiAppService
}

func NewAiAppHandler(apps services.AiAppService) *AiAppHandler {
	return &AiAppHandler{
		apps: apps,
	}
}

// List godoc
// @Summary List AI-tool directory entries
// @Tags AiApps
// @Security BearerAuth
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(50)
// @Param active query bool false "Only active entries"
// @Success 200 {object} utils.Response
// @Router /ai-apps [get]
func (h *AiAppHandler) List(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	activeOnly := c.QueryBool("active", false)

	apps, total, err := h.apps.List(c.UserContext(), offset, limit, activeOnly)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list apps", err)
	}

	return utils.SuccessResponse(c, "Apps retrieved", fiber.Map{
		"apps":  apps,
		"total": total,
	})
}

// Get godoc
// @Summary Get one directory entry
// @Tags AiApps
// @Security BearerAuth
// @Produce json
// @Param appId path string true "App ID"
// @Success 200 {object} utils.Response
// @Router /ai-apps/{appId} [get]
func (h *AiAppHandler) Get(c *fiber.Ctx) error {
	appID, err := parseUUIDParam(c, "appId")
	if err != nil {
		return err
	}

	app, err := h.apps.GetByID(c.UserContext(), appID)
	if err != nil {
		return utils.NotFoundResponse(c, "App not found")
	}

	return utils.SuccessResponse(c, "App retrieved", app)
}

// Create godoc
// @Summary Add a directory entry
// @Tags AiApps
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.AiAppRequest true "App payload"
// @Success 201 {object} utils.Response
// @Router /ai-apps [post]
func (h *AiAppHandler) Create(c *fiber.Ctx) error {
	var req services.AiAppRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}
	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	app, err := h.apps.Create(c.UserContext(), &req)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create app", err)
	}

	return utils.CreatedResponse(c, "App created", app)
}

// Update godoc
// @Summary Update a directory entry
// @Tags AiApps
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param appId path string true "App ID"
// @Param request body services.AiAppRequest true "App payload"
// @Success 200 {object} utils.Response
// @Router /ai-apps/{appId} [put]
func (h *AiAppHandler) Update(c *fiber.Ctx) error {
	appID, err := parseUUIDParam(c, "appId")
	if err != nil {
		return err
	}

	var req services.AiAppRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}
	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	app, err := h.apps.Update(c.UserContext(), appID, &req)
	if err != nil {
		return utils.NotFoundResponse(c, "App not found")
	}

	return utils.SuccessResponse(c, "App updated", app)
}

// Delete godoc
// @Summary Delete a directory entry
// @Tags AiApps
// @Security BearerAuth
// @Param appId path string true "App ID"
// @Success 200 {object} utils.Response
// @Router /ai-apps/{appId} [delete]
func (h *AiAppHandler) Delete(c *fiber.Ctx) error {
	appID, err := parseUUIDParam(c, "appId")
	if err != nil {
		return err
	}

	if err := h.apps.Delete(c.UserContext(), appID); err != nil {
		return utils.NotFoundResponse(c, "App not found")
	}

	return utils.SuccessResponse(c, "App deleted", nil)
}

// Similar godoc
// @Summary Find entries similar to one app by embedding distance
// @Tags AiApps
// @Security BearerAuth
// @Produce json
// @Param appId path string true "App ID"
// @Param limit query int false "Max results" default(5)
// @Success 200 {object} utils.Response
// @Router /ai-apps/{appId}/similar [get]
func (h *AiAppHandler) Similar(c *fiber.Ctx) error {
	appID, err := parseUUIDParam(c, "appId")
	if err != nil {
		return err
	}

	apps, err := h.apps.FindSimilar(c.UserContext(), appID, c.QueryInt("limit", 5))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to find similar apps", err)
	}

	return utils.SuccessResponse(c, "Similar apps retrieved", apps)
}
