package staff

import (
	"context"

	"github.com/google/uuid"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/repository"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

// Service manages doctor and nurse records layered on top of profiles.
type Service struct {
	doctorRepo   repository.DoctorRepository
	nurseRepo    repository.NurseRepository
	profileRepo  repository.ProfileRepository
	hospitalRepo repository.HospitalRepository
	deptRepo     repository.DepartmentRepository
}

func NewService(
	doctorRepo repository.DoctorRepository,
	nurseRepo repository.NurseRepository,
	profileRepo repository.ProfileRepository,
	hospitalRepo repository.HospitalRepository,
	deptRepo repository.DepartmentRepository,
) *Service {
	return &Service{
		doctorRepo:   doctorRepo,
		nurseRepo:    nurseRepo,
		profileRepo:  profileRepo,
		hospitalRepo: hospitalRepo,
		deptRepo:     deptRepo,
	}
}

// CreateDoctor links a doctor-role profile to a hospital and
// department. One doctor record per user.
func (s *Service) CreateDoctor(ctx context.Context, viewer model.Viewer, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	if !viewer.IsAdmin() {
		return nil, apperrors.AccessDenied("only administrators may create doctor records")
	}

	profile, err := s.profileRepo.Get(ctx, req.UserID)
	if err != nil {
		return nil, apperrors.InvalidInput("profile not found")
	}
	if profile.Role != model.RoleDoctor {
		return nil, apperrors.InvalidInputf("profile %s does not have the doctor role", req.UserID)
	}
	if _, err := s.hospitalRepo.Get(ctx, req.HospitalID); err != nil {
		return nil, apperrors.InvalidInput("hospital not found")
	}
	if _, err := s.deptRepo.Get(ctx, req.DepartmentID); err != nil {
		return nil, apperrors.InvalidInput("department not found")
	}

	doctor := &model.Doctor{
		Base:            model.Base{ID: uuid.New()},
		UserID:          req.UserID,
		HospitalID:      req.HospitalID,
		DepartmentID:    req.DepartmentID,
		Specialization:  req.Specialization,
		LicenseNumber:   req.LicenseNumber,
		ConsultationFee: req.ConsultationFee,
		SignatureData:   req.SignatureData,
	}
	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*model.DoctorDetail, error) {
	return s.doctorRepo.GetDetail(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.DoctorDetail, error) {
	return s.doctorRepo.List(ctx)
}

// UpdateDoctor is allowed for administrators and for the doctor's own
// user account.
func (s *Service) UpdateDoctor(ctx context.Context, viewer model.Viewer, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.doctorRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.IsAdmin() && viewer.ProfileID != doctor.UserID {
		return nil, apperrors.AccessDenied("you may only update your own doctor record")
	}

	if req.HospitalID != nil {
		if _, err := s.hospitalRepo.Get(ctx, *req.HospitalID); err != nil {
			return nil, apperrors.InvalidInput("hospital not found")
		}
		doctor.HospitalID = *req.HospitalID
	}
	if req.DepartmentID != nil {
		if _, err := s.deptRepo.Get(ctx, *req.DepartmentID); err != nil {
			return nil, apperrors.InvalidInput("department not found")
		}
		doctor.DepartmentID = *req.DepartmentID
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}
	if req.SignatureData != nil {
		doctor.SignatureData = req.SignatureData
	}

	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, viewer model.Viewer, id uuid.UUID) error {
	if !viewer.IsAdmin() {
		return apperrors.AccessDenied("only administrators may delete doctor records")
	}
	return s.doctorRepo.Delete(ctx, id)
}

func (s *Service) CreateNurse(ctx context.Context, viewer model.Viewer, req *model.CreateNurseRequest) (*model.Nurse, error) {
	if !viewer.IsAdmin() {
		return nil, apperrors.AccessDenied("only administrators may create nurse records")
	}

	profile, err := s.profileRepo.Get(ctx, req.UserID)
	if err != nil {
		return nil, apperrors.InvalidInput("profile not found")
	}
	if profile.Role != model.RoleNurse {
		return nil, apperrors.InvalidInputf("profile %s does not have the nurse role", req.UserID)
	}

	nurse := &model.Nurse{
		Base:          model.Base{ID: uuid.New()},
		UserID:        req.UserID,
		LicenseNumber: req.LicenseNumber,
	}
	if err := s.nurseRepo.Create(ctx, nurse); err != nil {
		return nil, err
	}
	return nurse, nil
}

func (s *Service) GetNurse(ctx context.Context, id uuid.UUID) (*model.Nurse, error) {
	return s.nurseRepo.Get(ctx, id)
}

func (s *Service) ListNurses(ctx context.Context) ([]*model.NurseDetail, error) {
	return s.nurseRepo.List(ctx)
}

func (s *Service) DeleteNurse(ctx context.Context, viewer model.Viewer, id uuid.UUID) error {
	if !viewer.IsAdmin() {
		return apperrors.AccessDenied("only administrators may delete nurse records")
	}
	return s.nurseRepo.Delete(ctx, id)
}
