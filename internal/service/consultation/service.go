package consultation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/repository"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

type Service struct {
	consultRepo repository.ConsultationRepository
	apptRepo    repository.AppointmentRepository
	doctorRepo  repository.DoctorRepository
}

func NewService(
	consultRepo repository.ConsultationRepository,
	apptRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
) *Service {
	return &Service{
		consultRepo: consultRepo,
		apptRepo:    apptRepo,
		doctorRepo:  doctorRepo,
	}
}

// Create records the outcome of an appointment. Only the appointment's
// assigned doctor may write it; patient and doctor references are
// copied from the appointment. The insert and the appointment's move
// to completed happen in one transaction at the repository.
func (s *Service) Create(ctx context.Context, viewer model.Viewer, req *model.CreateConsultationRequest) (*model.Consultation, error) {
	if viewer.Role != model.RoleDoctor {
		return nil, apperrors.AccessDenied("only doctors may record consultations")
	}

	appointment, err := s.apptRepo.Get(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctorRepo.GetByUser(ctx, viewer.ProfileID)
	if err != nil || doctor.ID != appointment.DoctorID {
		return nil, apperrors.AccessDenied("only the assigned doctor may record this consultation")
	}

	consultation := &model.Consultation{
		Base:                 model.Base{ID: uuid.New()},
		AppointmentID:        appointment.ID,
		PatientID:            appointment.PatientID,
		DoctorID:             appointment.DoctorID,
		Diagnosis:            req.Diagnosis,
		Notes:                req.Notes,
		RequiresLabTest:      req.RequiresLabTest,
		RequiresPrescription: req.RequiresPrescription,
		ConsultationDate:     time.Now(),
	}

	if err := s.consultRepo.Create(ctx, consultation); err != nil {
		if apperrors.IsKind(err, apperrors.KindConflict) {
			return nil, apperrors.Conflict("a consultation already exists for this appointment", err)
		}
		return nil, err
	}
	return consultation, nil
}

func (s *Service) Get(ctx context.Context, viewer model.Viewer, id uuid.UUID) (*model.ConsultationDetail, error) {
	detail, err := s.consultRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canView(ctx, viewer, &detail.Consultation); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *Service) GetByAppointment(ctx context.Context, viewer model.Viewer, appointmentID uuid.UUID) (*model.Consultation, error) {
	consultation, err := s.consultRepo.GetByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := s.canView(ctx, viewer, consultation); err != nil {
		return nil, err
	}
	return consultation, nil
}

func (s *Service) canView(ctx context.Context, viewer model.Viewer, consultation *model.Consultation) error {
	switch viewer.Role {
	case model.RoleAdmin, model.RoleNurse:
		return nil
	case model.RolePatient:
		if consultation.PatientID == viewer.ProfileID {
			return nil
		}
	case model.RoleDoctor:
		if doctor, err := s.doctorRepo.GetByUser(ctx, viewer.ProfileID); err == nil && doctor.ID == consultation.DoctorID {
			return nil
		}
	}
	return apperrors.AccessDenied("you may not view this consultation")
}

// List scopes consultations: patients see their own, doctors their
// own, nurses and administrators everything.
func (s *Service) List(ctx context.Context, viewer model.Viewer) ([]*model.ConsultationDetail, error) {
	filters := &model.ConsultationFilters{}

	switch viewer.Role {
	case model.RolePatient:
		id := viewer.ProfileID
		filters.PatientID = &id
	case model.RoleDoctor:
		doctor, err := s.doctorRepo.GetByUser(ctx, viewer.ProfileID)
		if err != nil {
			return []*model.ConsultationDetail{}, nil
		}
		filters.DoctorID = &doctor.ID
	case model.RoleNurse, model.RoleAdmin:
	default:
		return nil, apperrors.AccessDenied("you may not list consultations")
	}

	return s.consultRepo.List(ctx, filters)
}
