package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/services"
	"newsletter-backend/pkg/utils"
)

// GenerationHandler drives the AI content pipeline for issues
type GenerationHandler struct {
	generation services.ContentGenerationService
}

func NewGenerationHandler(generation services.ContentGenerationService) *GenerationHandler {
	return &GenerationHandler{
		generation: generation,
	}
}

type generateRequest struct {
	Timing string `json:"timing" validate:"required,oneof=before_articles after_articles"`
}

// GenerateBlocks godoc
// @Summary Run a generation pass over an issue's pending blocks
// @Description Processes blocks sequentially; a failing block is counted and the batch continues.
// @Tags Generation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param issueId path string true "Issue ID"
// @Param request body generateRequest true "Generation phase"
// @Success 200 {object} utils.Response
// @Router /issues/{issueId}/generate [post]
func (h *GenerationHandler) GenerateBlocks(c *fiber.Ctx) error {
	issueID, err := parseUUIDParam(c, "issueId")
	if err != nil {
		return err
	}

	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}
	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	result, err := h.generation.GenerateBlocksWithTiming(c.UserContext(), issueID, models.GenerationTiming(req.Timing))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Generation failed", err)
	}

	return utils.SuccessResponse(c, "Generation finished", result)
}

// RegenerateBlock godoc
// @Summary Regenerate a single issue block
// @Description Re-runs generation for one block. Manually overridden blocks are rejected.
// @Tags Generation
// @Security BearerAuth
// @Produce json
// @Param issueId path string true "Issue ID"
// @Param blockId path string true "Block ID"
// @Success 200 {object} utils.Response
// @Router /issues/{issueId}/blocks/{blockId}/regenerate [post]
func (h *GenerationHandler) RegenerateBlock(c *fiber.Ctx) error {
	issueID, err := parseUUIDParam(c, "issueId")
	if err != nil {
		return err
	}
	blockID, err := parseUUIDParam(c, "blockId")
	if err != nil {
		return err
	}

	block, err := h.generation.RegenerateBlock(c.UserContext(), issueID, blockID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Regeneration failed", err)
	}

	return utils.SuccessResponse(c, "Block regenerated", block)
}

type testPromptRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Timing string `json:"timing" validate:"omitempty,oneof=before_articles after_articles"`
}

// TestPrompt godoc
// @Summary Test prompt text against the most recent sent issue
// @Tags Generation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param publicationId path string true "Publication ID"
// @Param request body testPromptRequest true "Prompt to test"
// @Success 200 {object} utils.Response
// @Router /publications/{publicationId}/test-prompt [post]
func (h *GenerationHandler) TestPrompt(c *fiber.Ctx) error {
	publicationID, err := parseUUIDParam(c, "publicationId")
	if err != nil {
		return err
	}

	var req testPromptRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}
	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	timing := models.TimingAfterArticles
	if req.Timing != "" {
		timing = models.GenerationTiming(req.Timing)
	}

	result, err := h.generation.TestPrompt(c.UserContext(), publicationID, req.Prompt, timing)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Prompt test failed", err)
	}

	return utils.SuccessResponse(c, "Prompt tested", result)
}
