package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"newsletter-backend/domain/services"
	"newsletter-backend/pkg/utils"
)

// ModuleHandler administers the publication-level module catalog
type ModuleHandler struct {
	catalog services.ModuleCatalogService
}

func NewModuleHandler(catalog services.ModuleCatalogService) *ModuleHandler {
	return &ModuleHandler{
		catalog: catalog,
	}
}

// blockSaveResult pairs a saved block with its configuration warnings
type blockSaveResult struct {
	Block    interface{} `json:"block"`
	Warnings []string    `json:"warnings,omitempty"`
}

// ListActiveModules godoc
// @Summary List the active module catalog for a publication
// @Tags Modules
// @Security BearerAuth
// @Produce json
// @Param publicationId path string true "Publication ID"
// @Success 200 {object} utils.Response
// @Router /publications/{publicationId}/modules [get]
func (h *ModuleHandler) ListActiveModules(c *fiber.Ctx) error {
	publicationID, err := parseUUIDParam(c, "publicationId")
	if err != nil {
		return err
	}

	modules := h.catalog.GetActiveModules(c.UserContext(), publicationID)
	return utils.SuccessResponse(c, "Modules retrieved", modules)
}

// GetModule godoc
// @Summary Get one module with its blocks
// @Tags Modules
// @Security BearerAuth
// @Produce json
// @Param moduleId path string true "Module ID"
// @Success 200 {object} utils.Response
// @Router /modules/{moduleId} [get]
func (h *ModuleHandler) GetModule(c *fiber.Ctx) error {
	moduleID, err := parseUUIDParam(c, "moduleId")
	if err != nil {
		return err
	}

	module, err := h.catalog.GetModule(c.UserContext(), moduleID)
	if err != nil {
		return utils.NotFoundResponse(c, "Module not found")
	}

	return utils.SuccessResponse(c, "Module retrieved", module)
}

// CreateModule godoc
// @Summary Create a module
// @Tags Modules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.CreateModuleRequest true "Module payload"
// @Success 201 {object} utils.Response
// @Router /modules [post]
func (h *ModuleHandler) CreateModule(c *fiber.Ctx) error {
	var req services.CreateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}

	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	module, err := h.catalog.CreateModule(c.UserContext(), &req)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create module", err)
	}

	return utils.CreatedResponse(c, "Module created", module)
}

// UpdateModule godoc
// @Summary Update a module's name, order or active flag
// @Tags Modules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param moduleId path string true "Module ID"
// @Param request body services.UpdateModuleRequest true "Partial update"
// @Success 200 {object} utils.Response
// @Router /modules/{moduleId} [put]
func (h *ModuleHandler) UpdateModule(c *fiber.Ctx) error {
	moduleID, err := parseUUIDParam(c, "moduleId")
	if err != nil {
		return err
	}

	var req services.UpdateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}

	module, err := h.catalog.UpdateModule(c.UserContext(), moduleID, &req)
	if err != nil {
		return utils.NotFoundResponse(c, "Module not found")
	}

	return utils.SuccessResponse(c, "Module updated", module)
}

type reorderRequest struct {
	OrderedIDs []uuid.UUID `json:"ordered_ids" validate:"required,min=1"`
}

// ReorderModules godoc
// @Summary Reorder a publication's modules
// @Tags Modules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param publicationId path string true "Publication ID"
// @Param request body reorderRequest true "Ordered module IDs"
// @Success 200 {object} utils.Response
// @Router /publications/{publicationId}/modules/reorder [put]
func (h *ModuleHandler) ReorderModules(c *fiber.Ctx) error {
	publicationID, err := parseUUIDParam(c, "publicationId")
	if err != nil {
		return err
	}

	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}
	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	if err := h.catalog.ReorderModules(c.UserContext(), publicationID, req.OrderedIDs); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reorder modules", err)
	}

	return utils.SuccessResponse(c, "Modules reordered", nil)
}

// DeleteModule godoc
// @Summary Delete a module and its blocks
// @Tags Modules
// @Security BearerAuth
// @Param moduleId path string true "Module ID"
// @Success 200 {object} utils.Response
// @Router /modules/{moduleId} [delete]
func (h *ModuleHandler) DeleteModule(c *fiber.Ctx) error {
	moduleID, err := parseUUIDParam(c, "moduleId")
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteModule(c.UserContext(), moduleID); err != nil {
		return utils.NotFoundResponse(c, "Module not found")
	}

	return utils.SuccessResponse(c, "Module deleted", nil)
}

// CreateBlock godoc
// @Summary Add a block to a module
// @Description Saves the block and reports configuration warnings without rejecting the save.
// @Tags Modules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param moduleId path string true "Module ID"
// @Param request body services.BlockRequest true "Block payload"
// @Success 201 {object} utils.Response
// @Router /modules/{moduleId}/blocks [post]
func (h *ModuleHandler) CreateBlock(c *fiber.Ctx) error {
	moduleID, err := parseUUIDParam(c, "moduleId")
	if err != nil {
		return err
	}

	var req services.BlockRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}
	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	block, warnings, err := h.catalog.CreateBlock(c.UserContext(), moduleID, &req)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create block", err)
	}

	return utils.CreatedResponse(c, "Block created", blockSaveResult{Block: block, Warnings: warnings})
}

// UpdateBlock godoc
// @Summary Update a block's configuration
// @Tags Modules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param blockId path string true "Block ID"
// @Param request body services.BlockRequest true "Block payload"
// @Success 200 {object} utils.Response
// @Router /blocks/{blockId} [put]
func (h *ModuleHandler) UpdateBlock(c *fiber.Ctx) error {
	blockID, err := parseUUIDParam(c, "blockId")
	if err != nil {
		return err
	}

	var req services.BlockRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}
	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	block, warnings, err := h.catalog.UpdateBlock(c.UserContext(), blockID, &req)
	if err != nil {
		return utils.NotFoundResponse(c, "Block not found")
	}

	return utils.SuccessResponse(c, "Block updated", blockSaveResult{Block: block, Warnings: warnings})
}

// DeleteBlock godoc
// @Summary Delete a block
// @Tags Modules
// @Security BearerAuth
// @Param blockId path string true "Block ID"
// @Success 200 {object} utils.Response
// @Router /blocks/{blockId} [delete]
func (h *ModuleHandler) DeleteBlock(c *fiber.Ctx) error {
	blockID, err := parseUUIDParam(c, "blockId")
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteBlock(c.UserContext(), blockID); err != nil {
		return utils.NotFoundResponse(c, "Block not found")
	}

	return utils.SuccessResponse(c, "Block deleted", nil)
}
