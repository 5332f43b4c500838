package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"newsletter-backend/domain/services"
	"newsletter-backend/pkg/utils"
)

// IssueHandler manages the per-issue module snapshot and block state
type IssueHandler struct {
	selection services.IssueSelectionService
}

func NewIssueHandler(selection services.IssueSelectionService) *IssueHandler {
	return &IssueHandler{
		selection: selection,
	}
}

type initializeRequest struct {
	PublicationID uuid.UUID `json:"publication_id" validate:"required"`
}

// InitializeSelections godoc
// @Summary Snapshot the active module catalog into an issue
// @Description Idempotent: repeated calls on an initialized issue report zero created rows.
// @Tags Issues
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param issueId path string true "Issue ID"
// @Param request body initializeRequest true "Publication to snapshot from"
// @Success 200 {object} utils.Response
// @Router /issues/{issueId}/modules/initialize [post]
func (h *IssueHandler) InitializeSelections(c *fiber.Ctx) error {
	issueID, err := parseUUIDParam(c, "issueId")
	if err != nil {
		return err
	}

	var req initializeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}
	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	result, err := h.selection.InitializeForIssue(c.UserContext(), issueID, req.PublicationID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to initialize issue", err)
	}

	return utils.SuccessResponse(c, "Issue initialized", result)
}

// GetSelections godoc
// @Summary Get an issue's module selections with per-block state
// @Tags Issues
// @Security BearerAuth
// @Produce json
// @Param issueId path string true "Issue ID"
// @Success 200 {object} utils.Response
// @Router /issues/{issueId}/modules [get]
func (h *IssueHandler) GetSelections(c *fiber.Ctx) error {
	issueID, err := parseUUIDParam(c, "issueId")
	if err != nil {
		return err
	}

	selections, err := h.selection.GetIssueSelections(c.UserContext(), issueID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load selections", err)
	}

	return utils.SuccessResponse(c, "Selections retrieved", selections)
}

type overrideRequest struct {
	OverrideContent  *string `json:"override_content"`
	OverrideImageURL *string `json:"override_image_url"`
}

// SetOverride godoc
// @Summary Set or clear an operator override on an issue block
// @Description A non-null override moves the block to manual status; clearing both fields returns it to completed.
// @Tags Issues
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param issueId path string true "Issue ID"
// @Param blockId path string true "Block ID"
// @Param request body overrideRequest true "Override payload"
// @Success 200 {object} utils.Response
// @Router /issues/{issueId}/blocks/{blockId}/override [put]
func (h *IssueHandler) SetOverride(c *fiber.Ctx) error {
	issueID, err := parseUUIDParam(c, "issueId")
	if err != nil {
		return err
	}
	blockID, err := parseUUIDParam(c, "blockId")
	if err != nil {
		return err
	}

	var req overrideRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}

	block, err := h.selection.SetOverrideContent(c.UserContext(), issueID, blockID, req.OverrideContent, req.OverrideImageURL)
	if err != nil {
		return utils.NotFoundResponse(c, "Issue block not found")
	}

	return utils.SuccessResponse(c, "Override updated", block)
}

// RecordUsage godoc
// @Summary Mark an issue's modules as used
// @Description Sets used_at once per module; repeated calls touch nothing.
// @Tags Issues
// @Security BearerAuth
// @Produce json
// @Param issueId path string true "Issue ID"
// @Success 200 {object} utils.Response
// @Router /issues/{issueId}/modules/usage [post]
func (h *IssueHandler) RecordUsage(c *fiber.Ctx) error {
	issueID, err := parseUUIDParam(c, "issueId")
	if err != nil {
		return err
	}

	touched, err := h.selection.RecordUsage(c.UserContext(), issueID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record usage", err)
	}

	return utils.SuccessResponse(c, "Usage recorded", fiber.Map{"modules_touched": touched})
}

// ClearSelections godoc
// @Summary Delete an issue's module snapshot and block state
// @Tags Issues
// @Security BearerAuth
// @Param issueId path string true "Issue ID"
// @Success 200 {object} utils.Response
// @Router /issues/{issueId}/modules [delete]
func (h *IssueHandler) ClearSelections(c *fiber.Ctx) error {
	issueID, err := parseUUIDParam(c, "issueId")
	if err != nil {
		return err
	}

	if err := h.selection.ClearIssueData(c.UserContext(), issueID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to clear issue data", err)
	}

	return utils.SuccessResponse(c, "Issue data cleared", nil)
}
