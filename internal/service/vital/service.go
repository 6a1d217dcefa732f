package vital

import (
	"context"

	"github.com/google/uuid"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/repository"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

type Service struct {
	vitalRepo   repository.VitalRepository
	nurseRepo   repository.NurseRepository
	profileRepo repository.ProfileRepository
}

func NewService(
	vitalRepo repository.VitalRepository,
	nurseRepo repository.NurseRepository,
	profileRepo repository.ProfileRepository,
) *Service {
	return &Service{
		vitalRepo:   vitalRepo,
		nurseRepo:   nurseRepo,
		profileRepo: profileRepo,
	}
}

// Create records a vitals reading. The nurse reference is always the
// caller's nurse record, never request-supplied.
func (s *Service) Create(ctx context.Context, viewer model.Viewer, req *model.CreateVitalRequest) (*model.Vital, error) {
	if viewer.Role != model.RoleNurse {
		return nil, apperrors.AccessDenied("only nurses may record vitals")
	}

	nurse, err := s.nurseRepo.GetByUser(ctx, viewer.ProfileID)
	if err != nil {
		return nil, apperrors.AccessDenied("no nurse record exists for your account")
	}

	patient, err := s.profileRepo.Get(ctx, req.PatientID)
	if err != nil {
		return nil, apperrors.InvalidInput("patient not found")
	}
	if patient.Role != model.RolePatient {
		return nil, apperrors.InvalidInput("vitals can only be recorded for patients")
	}

	vital := &model.Vital{
		Base:          model.Base{ID: uuid.New()},
		PatientID:     patient.ID,
		NurseID:       nurse.ID,
		BloodPressure: req.BloodPressure,
		HeartRate:     req.HeartRate,
		Temperature:   req.Temperature,
		Weight:        req.Weight,
		Height:        req.Height,
		Notes:         req.Notes,
	}
	if err := s.vitalRepo.Create(ctx, vital); err != nil {
		return nil, err
	}
	return vital, nil
}

// Update is allowed for the recording nurse and administrators.
func (s *Service) Update(ctx context.Context, viewer model.Viewer, id uuid.UUID, req *model.UpdateVitalRequest) (*model.Vital, error) {
	vital, err := s.vitalRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !viewer.IsAdmin() {
		nurse, err := s.nurseRepo.GetByUser(ctx, viewer.ProfileID)
		if err != nil || nurse.ID != vital.NurseID {
			return nil, apperrors.AccessDenied("you may only update vitals you recorded")
		}
	}

	if req.BloodPressure != nil {
		vital.BloodPressure = *req.BloodPressure
	}
	if req.HeartRate != nil {
		vital.HeartRate = *req.HeartRate
	}
	if req.Temperature != nil {
		vital.Temperature = *req.Temperature
	}
	if req.Weight != nil {
		vital.Weight = *req.Weight
	}
	if req.Height != nil {
		vital.Height = *req.Height
	}
	if req.Notes != nil {
		vital.Notes = *req.Notes
	}

	if err := s.vitalRepo.Update(ctx, vital); err != nil {
		return nil, err
	}
	return vital, nil
}

func (s *Service) Get(ctx context.Context, viewer model.Viewer, id uuid.UUID) (*model.Vital, error) {
	vital, err := s.vitalRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer.Role == model.RolePatient && vital.PatientID != viewer.ProfileID {
		return nil, apperrors.AccessDenied("you may only view your own vitals")
	}
	return vital, nil
}

// List scopes vitals: patients see their own, clinical staff and
// administrators see everything.
func (s *Service) List(ctx context.Context, viewer model.Viewer) ([]*model.VitalDetail, error) {
	filters := &model.VitalFilters{}

	switch viewer.Role {
	case model.RolePatient:
		id := viewer.ProfileID
		filters.PatientID = &id
	case model.RoleNurse, model.RoleDoctor, model.RoleAdmin:
	default:
		return nil, apperrors.AccessDenied("you may not list vitals")
	}

	return s.vitalRepo.List(ctx, filters)
}
