package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
	"github.com/diagnosis/hotel-backoffice/internal/repository"
	"github.com/diagnosis/hotel-backoffice/internal/utils"
	"github.com/diagnosis/hotel-backoffice/pkg/logger"
)

type GuestInput struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            *string
	IdentityDocument *string
}

type GuestService interface {
	Get(ctx context.Context, id int64) (*domain.Guest, error)
	List(ctx context.Context, page domain.Page) ([]domain.Guest, int, error)
	Create(ctx context.Context, in GuestInput) (*domain.Guest, error)
	Update(ctx context.Context, id int64, in GuestInput) (*domain.Guest, error)
}

type guestService struct {
	guests repository.GuestRepository
}

func NewGuestService(guests repository.GuestRepository) GuestService {
	return &guestService{guests: guests}
}

func (s *guestService) Get(ctx context.Context, id int64) (*domain.Guest, error) {
	g, err := s.guests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	if g == nil {
		return nil, domain.ErrGuestNotFound(id)
	}
	return g, nil
}

func (s *guestService) List(ctx context.Context, page domain.Page) ([]domain.Guest, int, error) {
	items, total, err := s.guests.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list guests: %w", err)
	}
	return items, total, nil
}

func (s *guestService) Create(ctx context.Context, in GuestInput) (*domain.Guest, error) {
	in = normalizeGuestInput(in)
	if err := validateGuestInput(in); err != nil {
		return nil, err
	}

	g := &domain.Guest{
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		Phone:            in.Phone,
		IdentityDocument: in.IdentityDocument,
	}
	if err := s.guests.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}

	logger.InfoContext(ctx, "Guest created", "guest_id", g.ID)
	return g, nil
}

func (s *guestService) Update(ctx context.Context, id int64, in GuestInput) (*domain.Guest, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	in = normalizeGuestInput(in)
	if err := validateGuestInput(in); err != nil {
		return nil, err
	}

	current.FirstName = in.FirstName
	current.LastName = in.LastName
	current.Email = in.Email
	current.Phone = in.Phone
	current.IdentityDocument = in.IdentityDocument

	ok, err := s.guests.Update(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("failed to update guest: %w", err)
	}
	if !ok {
		return nil, domain.ErrGuestNotFound(id)
	}

	logger.InfoContext(ctx, "Guest updated", "guest_id", id)
	return current, nil
}

func normalizeGuestInput(in GuestInput) GuestInput {
	in.FirstName = utils.NormalizeString(in.FirstName)
	in.LastName = utils.NormalizeString(in.LastName)
	in.Email = utils.NormalizeString(in.Email)
	in.Phone = utils.OptionalString(in.Phone)
	in.IdentityDocument = utils.OptionalString(in.IdentityDocument)
	return in
}

func validateGuestInput(in GuestInput) error {
	switch {
	case in.FirstName == "":
		return domain.Validation(domain.CodeInvalidGuest, "FirstName is required")
	case in.LastName == "":
		return domain.Validation(domain.CodeInvalidGuest, "LastName is required")
	case in.Email == "":
		return domain.Validation(domain.CodeInvalidGuest, "Email is required")
	case !strings.Contains(in.Email, "@"):
		return domain.Validation(domain.CodeInvalidGuest, "Email is invalid")
	}
	return nil
}
