package serviceimpl

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/repositories"
	"newsletter-backend/domain/services"
)

type AdServiceImpl struct {
	adRepo repositories.AdRepository
}

func NewAdService(adRepo repositories.AdRepository) services.AdService {
	return &AdServiceImpl{adRepo: adRepo}
}

func (s *AdServiceImpl) Create(ctx context.Context, req *services.AdRequest) (*models.Advertisement, error) {
	ad := &models.Advertisement{
		Title:            req.Title,
		Body:             req.Body,
		LinkURL:          req.LinkURL,
		AdvertiserName:   req.AdvertiserName,
		RotationPosition: req.RotationPosition,
		IsActive:         true,
	}
	if req.IsActive != nil {
		ad.IsActive = *req.IsActive
	}

	if err := s.adRepo.Create(ctx, ad); err != nil {
		return nil, fmt.Errorf("failed to create advertisement: %w", err)
	}
	return ad, nil
}

func (s *AdServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Advertisement, error) {
	ad, err := s.adRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("advertisement not found: %w", err)
	}
	return ad, nil
}

func (s *AdServiceImpl) List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.Advertisement, int64, error) {
	return s.adRepo.List(ctx, offset, limit, activeOnly)
}

func (s *AdServiceImpl) Update(ctx context.Context, id uuid.UUID, req *services.AdRequest) (*models.Advertisement, error) {
	ad, err := s.adRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("advertisement not found: %w", err)
	}

	ad.Title = req.Title
	ad.Body = req.Body
	ad.LinkURL = req.LinkURL
	ad.AdvertiserName = req.AdvertiserName
	ad.RotationPosition = req.RotationPosition
	if req.IsActive != nil {
		ad.IsActive = *req.IsActive
	}

	if err := s.adRepo.Update(ctx, ad); err != nil {
		return nil, fmt.Errorf("failed to update advertisement: %w", err)
	}
	return ad, nil
}

func (s *AdServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.adRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("advertisement not found: %w", err)
	}
	return s.adRepo.Delete(ctx, id)
}

func (s *AdServiceImpl) GetSlotsByIssue(ctx context.Context, issueID uuid.UUID) ([]models.IssueAdSlot, error) {
	return s.adRepo.GetSlotsByIssue(ctx, issueID)
}

func (s *AdServiceImpl) AddSlot(ctx context.Context, issueID, adID uuid.UUID, position int) (*models.IssueAdSlot, error) {
	if _, err := s.adRepo.GetByID(ctx, adID); err != nil {
		return nil, fmt.Errorf("advertisement not found: %w", err)
	}

	slot := &models.IssueAdSlot{
		IssueID:  issueID,
		AdID:     adID,
		Position: position,
	}
	if err := s.adRepo.CreateSlot(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to create ad slot: %w", err)
	}
	return slot, nil
}

func (s *AdServiceImpl) RemoveSlot(ctx context.Context, slotID uuid.UUID) error {
	return s.adRepo.DeleteSlot(ctx, slotID)
}

func (s *AdServiceImpl) ReorderSlots(ctx context.Context, issueID uuid.UUID, orderedSlotIDs []uuid.UUID) error {
	return s.adRepo.ReorderSlots(ctx, issueID, orderedSlotIDs)
}
