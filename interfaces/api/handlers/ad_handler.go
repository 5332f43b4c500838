package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"newsletter-backend/domain/services"
	"newsletter-backend/pkg/utils"
)

// AdHandler administers advertisements and their per-issue slots
type AdHandler struct {
	ads services.AdService
}

func NewAdHandler(ads services.AdService) *AdHandler {
	return &AdHandler{
		ads: ads,
	}
}

// List godoc
// @Summary List advertisements
// @Tags Ads
// @Security BearerAuth
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(50)
// @Param active query bool false "Only active ads"
// @Success 200 {object} utils.Response
// @Router /ads [get]
func (h *AdHandler) List(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 50)
	activeOnly := c.QueryBool("active", false)

	ads, total, err := h.ads.List(c.UserContext(), offset, limit, activeOnly)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list ads", err)
	}

	return utils.SuccessResponse(c, "Ads retrieved", fiber.Map{
		"ads":   ads,
		"total": total,
	})
}

// Create godoc
// @Summary Create an advertisement
// @Tags Ads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.AdRequest true "Ad payload"
// @Success 201 {object} utils.Response
// @Router /ads [post]
func (h *AdHandler) Create(c *fiber.Ctx) error {
	var req services.AdRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}
	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	ad, err := h.ads.Create(c.UserContext(), &req)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create ad", err)
	}

	return utils.CreatedResponse(c, "Ad created", ad)
}

// Get godoc
// @Summary Get one advertisement
// @Tags Ads
// @Security BearerAuth
// @Produce json
// @Param adId path string true "Ad ID"
// @Success 200 {object} utils.Response
// @Router /ads/{adId} [get]
func (h *AdHandler) Get(c *fiber.Ctx) error {
	adID, err := parseUUIDParam(c, "adId")
	if err != nil {
		return err
	}

	ad, err := h.ads.GetByID(c.UserContext(), adID)
	if err != nil {
		return utils.NotFoundResponse(c, "Ad not found")
	}

	return utils.SuccessResponse(c, "Ad retrieved", ad)
}

// Update godoc
// @Summary Update an advertisement
// @Tags Ads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param adId path string true "Ad ID"
// @Param request body services.AdRequest true "Ad payload"
// @Success 200 {object} utils.Response
// @Router /ads/{adId} [put]
func (h *AdHandler) Update(c *fiber.Ctx) error {
	adID, err := parseUUIDParam(c, "adId")
	if err != nil {
		return err
	}

	var req services.AdRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}
	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	ad, err := h.ads.Update(c.UserContext(), adID, &req)
	if err != nil {
		return utils.NotFoundResponse(c, "Ad not found")
	}

	return utils.SuccessResponse(c, "Ad updated", ad)
}

// Delete godoc
// @Summary Delete an advertisement
// @Tags Ads
// @Security BearerAuth
// @Param adId path string true "Ad ID"
// @Success 200 {object} utils.Response
// @Router /ads/{adId} [delete]
func (h *AdHandler) Delete(c *fiber.Ctx) error {
	adID, err := parseUUIDParam(c, "adId")
	if err != nil {
		return err
	}

	if err := h.ads.Delete(c.UserContext(), adID); err != nil {
		return utils.NotFoundResponse(c, "Ad not found")
	}

	return utils.SuccessResponse(c, "Ad deleted", nil)
}

// ListSlots godoc
// @Summary List an issue's ad slots
// @Tags Ads
// @Security BearerAuth
// @Produce json
// @Param issueId path string true "Issue ID"
// @Success 200 {object} utils.Response
// @Router /issues/{issueId}/ads [get]
func (h *AdHandler) ListSlots(c *fiber.Ctx) error {
	issueID, err := parseUUIDParam(c, "issueId")
	if err != nil {
		return err
	}

	slots, err := h.ads.GetSlotsByIssue(c.UserContext(), issueID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list ad slots", err)
	}

	return utils.SuccessResponse(c, "Ad slots retrieved", slots)
}

type addSlotRequest struct {
	AdID     uuid.UUID `json:"ad_id" validate:"required"`
	Position int       `json:"position"`
}

// AddSlot godoc
// @Summary Lock an advertisement into an issue slot
// @Tags Ads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param issueId path string true "Issue ID"
// @Param request body addSlotRequest true "Slot payload"
// @Success 201 {object} utils.Response
// @Router /issues/{issueId}/ads [post]
func (h *AdHandler) AddSlot(c *fiber.Ctx) error {
	issueID, err := parseUUIDParam(c, "issueId")
	if err != nil {
		return err
	}

	var req addSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}
	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	slot, err := h.ads.AddSlot(c.UserContext(), issueID, req.AdID, req.Position)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to add ad slot", err)
	}

	return utils.CreatedResponse(c, "Ad slot added", slot)
}

// RemoveSlot godoc
// @Summary Remove an ad slot from an issue
// @Tags Ads
// @Security BearerAuth
// @Param issueId path string true "Issue ID"
// @Param slotId path string true "Slot ID"
// @Success 200 {object} utils.Response
// @Router /issues/{issueId}/ads/{slotId} [delete]
func (h *AdHandler) RemoveSlot(c *fiber.Ctx) error {
	if _, err := parseUUIDParam(c, "issueId"); err != nil {
		return err
	}
	slotID, err := parseUUIDParam(c, "slotId")
	if err != nil {
		return err
	}

	if err := h.ads.RemoveSlot(c.UserContext(), slotID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to remove ad slot", err)
	}

	return utils.SuccessResponse(c, "Ad slot removed", nil)
}

type reorderSlotsRequest struct {
	OrderedSlotIDs []uuid.UUID `json:"ordered_slot_ids" validate:"required,min=1"`
}

// ReorderSlots godoc
// @Summary Reorder an issue's ad slots
// @Tags Ads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param issueId path string true "Issue ID"
// @Param request body reorderSlotsRequest true "Ordered slot IDs"
// @Success 200 {object} utils.Response
// @Router /issues/{issueId}/ads/reorder [put]
func (h *AdHandler) ReorderSlots(c *fiber.Ctx) error {
	issueID, err := parseUUIDParam(c, "issueId")
	if err != nil {
		return err
	}

	var req reorderSlotsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body", err)
	}
	if messages := utils.ValidateStruct(&req); messages != nil {
		return utils.BadRequestResponse(c, strings.Join(messages, "; "), nil)
	}

	if err := h.ads.ReorderSlots(c.UserContext(), issueID, req.OrderedSlotIDs); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reorder ad slots", err)
	}

	return utils.SuccessResponse(c, "Ad slots reordered", nil)
}
