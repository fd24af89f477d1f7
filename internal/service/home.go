// Package service implements the business operations behind the HTTP API.
package service

import (
	"context"
	"fmt"

	"homeboard/internal/domain"
)

// HomeService provides listing CRUD and inquiry operations. Operations that
// mutate or expose a realtor's listing enforce ownership after the caller's
// role has already been checked by the guard: the cheap, stateless role check
// runs first, the owner lookup (a persistence round trip) second.
type HomeService struct {
	homes    domain.HomeRepository
	messages domain.MessageRepository
	audit    domain.AuditRepository
}

// NewHomeService creates a new HomeService.
func NewHomeService(homes domain.HomeRepository, messages domain.MessageRepository, audit domain.AuditRepository) *HomeService {
	return &HomeService{homes: homes, messages: messages, audit: audit}
}

// Search returns listing summaries matching the filter. An empty result is a
// valid outcome, not an error.
func (s *HomeService) Search(ctx context.Context, filter domain.HomeFilter) ([]domain.HomeSummary, error) {
	return s.homes.List(ctx, filter)
}

// GetByID returns a single listing with its images.
func (s *HomeService) GetByID(ctx context.Context, id int64) (*domain.Home, error) {
	return s.homes.GetByID(ctx, id)
}

// Create validates and persists a new listing owned by the caller.
func (s *HomeService) Create(ctx context.Context, principal *domain.Principal, req *domain.CreateHomeRequest) (*domain.Home, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	home, err := s.homes.Create(ctx, principal.ID, req)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, principal, "CREATE_HOME", fmt.Sprintf("home %d", home.ID))
	return home, nil
}

// Update applies a partial update to a listing the caller owns.
func (s *HomeService) Update(ctx context.Context, principal *domain.Principal, id int64, req *domain.UpdateHomeRequest) (*domain.Home, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, id, principal); err != nil {
		return nil, err
	}
	home, err := s.homes.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, principal, "UPDATE_HOME", fmt.Sprintf("home %d", id))
	return home, nil
}

// Delete removes a listing the caller owns.
func (s *HomeService) Delete(ctx context.Context, principal *domain.Principal, id int64) error {
	if err := s.requireOwner(ctx, id, principal); err != nil {
		return err
	}
	if err := s.homes.Delete(ctx, id); err != nil {
		return err
	}
	s.logAudit(ctx, principal, "DELETE_HOME", fmt.Sprintf("home %d", id))
	return nil
}

// Inquire records a buyer's message on a listing, addressed to its owner.
func (s *HomeService) Inquire(ctx context.Context, principal *domain.Principal, req *domain.InquiryRequest) (*domain.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ownerID, err := s.homes.GetOwnerID(ctx, req.HomeID)
	if err != nil {
		return nil, err
	}
	msg, err := s.messages.Create(ctx, &domain.Message{
		HomeID:    req.HomeID,
		BuyerID:   principal.ID,
		RealtorID: ownerID,
		Body:      req.Body,
	})
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, principal, "INQUIRE", fmt.Sprintf("home %d", req.HomeID))
	return msg, nil
}

// ListInquiries returns the inquiries on a listing the caller owns.
func (s *HomeService) ListInquiries(ctx context.Context, principal *domain.Principal, homeID int64) ([]domain.MessageWithBuyer, error) {
	if err := s.requireOwner(ctx, homeID, principal); err != nil {
		return nil, err
	}
	return s.messages.ListByHome(ctx, homeID)
}

// requireOwner loads the listing's owner id and compares it to the caller by
// equality. A missing listing propagates as NotFound; a mismatch denies.
// Always invoked before the paired mutation or sensitive read.
func (s *HomeService) requireOwner(ctx context.Context, homeID int64, principal *domain.Principal) error {
	ownerID, err := s.homes.GetOwnerID(ctx, homeID)
	if err != nil {
		return err
	}
	if ownerID != principal.ID {
		return domain.ErrAccessDenied("home %d does not belong to principal %d", homeID, principal.ID)
	}
	return nil
}

func (s *HomeService) logAudit(ctx context.Context, principal *domain.Principal, action, detail string) {
	_ = s.audit.Insert(ctx, &domain.AuditEntry{
		PrincipalName: principal.Email,
		Action:        action,
		Detail:        detail,
	})
}
