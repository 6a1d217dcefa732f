package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/repository"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

type Service struct {
	profileRepo   repository.ProfileRepository
	insuranceRepo repository.InsuranceRepository
}

func NewService(profileRepo repository.ProfileRepository, insuranceRepo repository.InsuranceRepository) *Service {
	return &Service{profileRepo: profileRepo, insuranceRepo: insuranceRepo}
}

// Get returns a profile. Non-admins may only read their own.
func (s *Service) Get(ctx context.Context, viewer model.Viewer, id uuid.UUID) (*model.Profile, error) {
	if !viewer.IsAdmin() && viewer.ProfileID != id {
		return nil, apperrors.AccessDenied("you may only view your own profile")
	}
	return s.profileRepo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, viewer model.Viewer) ([]*model.Profile, error) {
	if !viewer.IsAdmin() {
		return nil, apperrors.AccessDenied("only administrators may list profiles")
	}
	return s.profileRepo.List(ctx)
}

// Update applies partial changes. Assigning an insurance plan verifies
// the plan exists first.
func (s *Service) Update(ctx context.Context, viewer model.Viewer, id uuid.UUID, req *model.UpdateProfileRequest) (*model.Profile, error) {
	if !viewer.IsAdmin() && viewer.ProfileID != id {
		return nil, apperrors.AccessDenied("you may only update your own profile")
	}

	profile, err := s.profileRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.NationalID != nil {
		profile.NationalID = req.NationalID
	}
	if req.InsuranceID != nil {
		if _, err := s.insuranceRepo.Get(ctx, *req.InsuranceID); err != nil {
			return nil, apperrors.InvalidInput("insurance plan not found")
		}
		profile.InsuranceID = req.InsuranceID
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) Delete(ctx context.Context, viewer model.Viewer, id uuid.UUID) error {
	if !viewer.IsAdmin() {
		return apperrors.AccessDenied("only administrators may delete profiles")
	}
	return s.profileRepo.Delete(ctx, id)
}
