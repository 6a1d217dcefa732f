package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/repository"
	apperrors "github.com/caresync/hms-api/pkg/errors"
	"github.com/caresync/hms-api/pkg/event"
)

const dateLayout = "2006-01-02"

type Service struct {
	apptRepo    repository.AppointmentRepository
	doctorRepo  repository.DoctorRepository
	profileRepo repository.ProfileRepository
	emitter     event.Emitter
}

func NewService(
	apptRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	profileRepo repository.ProfileRepository,
	emitter event.Emitter,
) *Service {
	return &Service{
		apptRepo:    apptRepo,
		doctorRepo:  doctorRepo,
		profileRepo: profileRepo,
		emitter:     emitter,
	}
}

// Create books a slot for the calling patient. The patient reference is
// always the caller; hospital and department come from the doctor
// record. Double-booking surfaces as a Conflict from the storage
// constraint, never from a pre-read.
func (s *Service) Create(ctx context.Context, viewer model.Viewer, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if viewer.Role != model.RolePatient {
		return nil, apperrors.AccessDenied("only patients may book appointments")
	}

	date, err := time.Parse(dateLayout, req.AppointmentDate)
	if err != nil {
		return nil, apperrors.InvalidInput("appointment_date must be formatted YYYY-MM-DD")
	}

	doctor, err := s.doctorRepo.Get(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	appointment := &model.Appointment{
		Base:            model.Base{ID: uuid.New()},
		PatientID:       viewer.ProfileID,
		DoctorID:        doctor.ID,
		HospitalID:      doctor.HospitalID,
		DepartmentID:    doctor.DepartmentID,
		AppointmentDate: date,
		AppointmentTime: req.AppointmentTime,
		Status:          model.AppointmentStatusPending,
		Reason:          req.Reason,
	}

	if err := s.apptRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	patientName := ""
	if patient, err := s.profileRepo.Get(ctx, viewer.ProfileID); err == nil {
		patientName = patient.FullName
	}

	s.emitter.Emit(ctx, event.TypeAppointmentCreated, event.AppointmentCreated{
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorUserID:  doctor.UserID,
		PatientName:   patientName,
		Date:          req.AppointmentDate,
		Time:          req.AppointmentTime,
	})

	return appointment, nil
}

// Decide approves or rejects a pending appointment. Allowed for the
// assigned doctor, any nurse, or an administrator. Rejection requires
// a reason.
func (s *Service) Decide(ctx context.Context, viewer model.Viewer, id uuid.UUID, req *model.DecideAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.apptRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.canDecide(ctx, viewer, appointment); err != nil {
		return nil, err
	}

	if appointment.Status != model.AppointmentStatusPending {
		return nil, apperrors.InvalidState("only pending appointments can be decided")
	}

	if req.Status == model.AppointmentStatusRejected {
		if req.RejectionReason == "" {
			return nil, apperrors.InvalidInput("rejection_reason is required when rejecting")
		}
		appointment.RejectionReason = &req.RejectionReason
	}
	appointment.Status = req.Status

	if err := s.apptRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	rejection := ""
	if appointment.RejectionReason != nil {
		rejection = *appointment.RejectionReason
	}
	s.emitter.Emit(ctx, event.TypeAppointmentDecided, event.AppointmentDecided{
		AppointmentID:   appointment.ID,
		PatientID:       appointment.PatientID,
		Status:          string(appointment.Status),
		RejectionReason: rejection,
		Date:            appointment.AppointmentDate.Format(dateLayout),
		Time:            appointment.AppointmentTime,
	})

	return appointment, nil
}

func (s *Service) canDecide(ctx context.Context, viewer model.Viewer, appointment *model.Appointment) error {
	switch viewer.Role {
	case model.RoleAdmin, model.RoleNurse:
		return nil
	case model.RoleDoctor:
		doctor, err := s.doctorRepo.GetByUser(ctx, viewer.ProfileID)
		if err != nil || doctor.ID != appointment.DoctorID {
			return apperrors.AccessDenied("only the assigned doctor may decide this appointment")
		}
		return nil
	default:
		return apperrors.AccessDenied("you may not decide appointments")
	}
}

// Cancel moves a pending or approved appointment to cancelled. Only the
// booking patient (or an administrator) may cancel.
func (s *Service) Cancel(ctx context.Context, viewer model.Viewer, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.apptRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !viewer.IsAdmin() && appointment.PatientID != viewer.ProfileID {
		return nil, apperrors.AccessDenied("you may only cancel your own appointments")
	}

	switch appointment.Status {
	case model.AppointmentStatusPending, model.AppointmentStatusApproved:
	default:
		return nil, apperrors.InvalidState("only pending or approved appointments can be cancelled")
	}

	appointment.Status = model.AppointmentStatusCancelled
	if err := s.apptRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Get returns the expanded appointment, gated by visibility.
func (s *Service) Get(ctx context.Context, viewer model.Viewer, id uuid.UUID) (*model.AppointmentDetail, error) {
	detail, err := s.apptRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canView(ctx, viewer, &detail.Appointment); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *Service) canView(ctx context.Context, viewer model.Viewer, appointment *model.Appointment) error {
	switch viewer.Role {
	case model.RoleAdmin, model.RoleNurse:
		return nil
	case model.RolePatient:
		if appointment.PatientID == viewer.ProfileID {
			return nil
		}
	case model.RoleDoctor:
		if doctor, err := s.doctorRepo.GetByUser(ctx, viewer.ProfileID); err == nil && doctor.ID == appointment.DoctorID {
			return nil
		}
	}
	return apperrors.AccessDenied("you may not view this appointment")
}

// List scopes appointments by the caller's role: patients see their
// own, doctors see their own schedule, nurses and administrators see
// everything.
func (s *Service) List(ctx context.Context, viewer model.Viewer, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	if filters == nil {
		filters = &model.AppointmentFilters{}
	}

	switch viewer.Role {
	case model.RolePatient:
		id := viewer.ProfileID
		filters.PatientID = &id
	case model.RoleDoctor:
		doctor, err := s.doctorRepo.GetByUser(ctx, viewer.ProfileID)
		if err != nil {
			return []*model.AppointmentDetail{}, nil
		}
		filters.DoctorID = &doctor.ID
	case model.RoleNurse, model.RoleAdmin:
	default:
		return nil, apperrors.AccessDenied("you may not list appointments")
	}

	return s.apptRepo.List(ctx, filters)
}

// AvailableSlots returns the bookable times for a doctor on a date:
// the full 10-minute grid minus slots held by pending or approved
// appointments. Rejected, cancelled and completed bookings free their
// slot.
func (s *Service) AvailableSlots(ctx context.Context, doctorID uuid.UUID, dateStr string) ([]string, error) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, apperrors.InvalidInput("date must be formatted YYYY-MM-DD")
	}

	if _, err := s.doctorRepo.Get(ctx, doctorID); err != nil {
		return nil, err
	}

	booked, err := s.apptRepo.ListBookedTimes(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	available := make([]string, 0, 60)
	for _, slot := range allSlots() {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}
	return available, nil
}
