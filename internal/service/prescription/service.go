package prescription

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/repository"
	apperrors "github.com/caresync/hms-api/pkg/errors"
	"github.com/caresync/hms-api/pkg/event"
)

type Service struct {
	prescRepo      repository.PrescriptionRepository
	consultRepo    repository.ConsultationRepository
	doctorRepo     repository.DoctorRepository
	medicationRepo repository.MedicationRepository
	pharmacyRepo   repository.PharmacyRepository
	emitter        event.Emitter
}

func NewService(
	prescRepo repository.PrescriptionRepository,
	consultRepo repository.ConsultationRepository,
	doctorRepo repository.DoctorRepository,
	medicationRepo repository.MedicationRepository,
	pharmacyRepo repository.PharmacyRepository,
	emitter event.Emitter,
) *Service {
	return &Service{
		prescRepo:      prescRepo,
		consultRepo:    consultRepo,
		doctorRepo:     doctorRepo,
		medicationRepo: medicationRepo,
		pharmacyRepo:   pharmacyRepo,
		emitter:        emitter,
	}
}

// CreateBatch fans one prescribe action out into one row per item.
// Every item is validated before any row is written, and the rows are
// inserted in a single transaction, so the batch is all-or-nothing.
func (s *Service) CreateBatch(ctx context.Context, viewer model.Viewer, req *model.CreatePrescriptionBatchRequest) (*model.PrescriptionBatchResponse, error) {
	if viewer.Role != model.RoleDoctor {
		return nil, apperrors.AccessDenied("only doctors may prescribe")
	}

	consultation, err := s.consultRepo.Get(ctx, req.ConsultationID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctorRepo.GetByUser(ctx, viewer.ProfileID)
	if err != nil || doctor.ID != consultation.DoctorID {
		return nil, apperrors.AccessDenied("only the consulting doctor may prescribe for this consultation")
	}

	if len(req.Items) == 0 {
		return nil, apperrors.InvalidInput("at least one prescription item is required")
	}

	medications := make([]*model.Medication, len(req.Items))
	for i, item := range req.Items {
		if item.MedicationID == uuid.Nil {
			return nil, apperrors.InvalidInputf("item %d: medication_id is required", i)
		}
		if item.Quantity < 1 {
			return nil, apperrors.InvalidInputf("item %d: quantity must be at least 1", i)
		}
		if strings.TrimSpace(item.Dosage) == "" {
			return nil, apperrors.InvalidInputf("item %d: dosage is required", i)
		}
		medication, err := s.medicationRepo.Get(ctx, item.MedicationID)
		if err != nil {
			return nil, apperrors.InvalidInputf("item %d: medication not found", i)
		}
		medications[i] = medication
	}

	prescriptions := make([]*model.Prescription, len(req.Items))
	for i, item := range req.Items {
		prescriptions[i] = &model.Prescription{
			Base:           model.Base{ID: uuid.New()},
			ConsultationID: consultation.ID,
			PatientID:      consultation.PatientID,
			DoctorID:       consultation.DoctorID,
			Status:         model.PrescriptionStatusPending,
			MedicationID:   item.MedicationID,
			Quantity:       item.Quantity,
			Dosage:         item.Dosage,
			UnitPrice:      medications[i].UnitPrice,
			TotalPrice:     medications[i].UnitPrice * float64(item.Quantity),
			Notes:          item.Notes,
			SignatureData:  req.SignatureData,
		}
	}

	if err := s.prescRepo.CreateBatch(ctx, prescriptions); err != nil {
		return nil, err
	}

	return &model.PrescriptionBatchResponse{
		Message:       "prescriptions created",
		Count:         len(prescriptions),
		Prescriptions: prescriptions,
	}, nil
}

func (s *Service) Get(ctx context.Context, viewer model.Viewer, id uuid.UUID) (*model.PrescriptionDetail, error) {
	detail, err := s.prescRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canView(ctx, viewer, &detail.Prescription); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *Service) canView(ctx context.Context, viewer model.Viewer, prescription *model.Prescription) error {
	switch viewer.Role {
	case model.RoleAdmin:
		return nil
	case model.RolePatient:
		if prescription.PatientID == viewer.ProfileID {
			return nil
		}
	case model.RoleDoctor:
		if doctor, err := s.doctorRepo.GetByUser(ctx, viewer.ProfileID); err == nil && doctor.ID == prescription.DoctorID {
			return nil
		}
	}
	return apperrors.AccessDenied("you may not view this prescription")
}

// List scopes prescriptions: patients their own, doctors their own,
// administrators everything.
func (s *Service) List(ctx context.Context, viewer model.Viewer, consultationID *uuid.UUID) ([]*model.PrescriptionDetail, error) {
	filters := &model.PrescriptionFilters{ConsultationID: consultationID}

	switch viewer.Role {
	case model.RolePatient:
		id := viewer.ProfileID
		filters.PatientID = &id
	case model.RoleDoctor:
		doctor, err := s.doctorRepo.GetByUser(ctx, viewer.ProfileID)
		if err != nil {
			return []*model.PrescriptionDetail{}, nil
		}
		filters.DoctorID = &doctor.ID
	case model.RoleAdmin:
	default:
		return nil, apperrors.AccessDenied("you may not list prescriptions")
	}

	return s.prescRepo.List(ctx, filters)
}

// Update applies status and note changes, and dispatches the
// prescription to a pharmacy when pharmacy_id is set. Dispatching a
// row with no medication is an invalid state; a repeat dispatch to the
// same pharmacy reuses the existing pharmacy request instead of
// creating another.
func (s *Service) Update(ctx context.Context, viewer model.Viewer, id uuid.UUID, req *model.UpdatePrescriptionRequest) (*model.Prescription, error) {
	prescription, err := s.prescRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.canUpdate(ctx, viewer, prescription); err != nil {
		return nil, err
	}

	if req.Status != nil {
		prescription.Status = *req.Status
	}
	if req.Notes != nil {
		prescription.Notes = *req.Notes
	}

	var dispatched *model.PharmacyRequest
	if req.PharmacyID != nil {
		if prescription.MedicationID == uuid.Nil {
			return nil, apperrors.InvalidState("prescription has no medication and cannot be sent to a pharmacy")
		}
		if _, err := s.pharmacyRepo.Get(ctx, *req.PharmacyID); err != nil {
			return nil, apperrors.InvalidInput("pharmacy not found")
		}
		prescription.PharmacyID = req.PharmacyID

		dispatched, err = s.ensurePharmacyRequest(ctx, prescription, *req.PharmacyID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.prescRepo.Update(ctx, prescription); err != nil {
		return nil, err
	}

	if dispatched != nil {
		s.emitter.Emit(ctx, event.TypePrescriptionDispatched, event.PrescriptionDispatched{
			PrescriptionID:    prescription.ID,
			PharmacyRequestID: dispatched.ID,
			PatientID:         prescription.PatientID,
			PharmacyID:        dispatched.PharmacyID,
		})
	}

	return prescription, nil
}

func (s *Service) canUpdate(ctx context.Context, viewer model.Viewer, prescription *model.Prescription) error {
	switch viewer.Role {
	case model.RoleAdmin:
		return nil
	case model.RolePatient:
		if prescription.PatientID == viewer.ProfileID {
			return nil
		}
	case model.RoleDoctor:
		if doctor, err := s.doctorRepo.GetByUser(ctx, viewer.ProfileID); err == nil && doctor.ID == prescription.DoctorID {
			return nil
		}
	}
	return apperrors.AccessDenied("you may not update this prescription")
}

// ensurePharmacyRequest returns the existing request for the pair or
// creates one. Only a freshly created request is a dispatch.
func (s *Service) ensurePharmacyRequest(ctx context.Context, prescription *model.Prescription, pharmacyID uuid.UUID) (*model.PharmacyRequest, error) {
	if existing, err := s.prescRepo.GetPharmacyRequestByPair(ctx, prescription.ID, pharmacyID); err == nil {
		return existing, nil
	} else if !apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, err
	}

	request := &model.PharmacyRequest{
		Base:           model.Base{ID: uuid.New()},
		PrescriptionID: prescription.ID,
		PatientID:      prescription.PatientID,
		PharmacyID:     pharmacyID,
		Status:         model.PharmacyRequestPending,
	}
	if err := s.prescRepo.CreatePharmacyRequest(ctx, request); err != nil {
		if apperrors.IsKind(err, apperrors.KindConflict) {
			return s.prescRepo.GetPharmacyRequestByPair(ctx, prescription.ID, pharmacyID)
		}
		return nil, err
	}
	return request, nil
}

// DecidePharmacyRequest lets the pharmacy's pharmacist (or an
// administrator) approve, reject or complete a fulfillment request.
// Rejection requires a reason.
func (s *Service) DecidePharmacyRequest(ctx context.Context, viewer model.Viewer, id uuid.UUID, req *model.DecidePharmacyRequestRequest) (*model.PharmacyRequest, error) {
	request, err := s.prescRepo.GetPharmacyRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if !viewer.IsAdmin() {
		if viewer.Role != model.RolePharmacist {
			return nil, apperrors.AccessDenied("only pharmacists may decide fulfillment requests")
		}
		pharmacy, err := s.pharmacyRepo.Get(ctx, request.PharmacyID)
		if err != nil {
			return nil, err
		}
		if pharmacy.PharmacistID == nil || *pharmacy.PharmacistID != viewer.ProfileID {
			return nil, apperrors.AccessDenied("this request belongs to another pharmacy")
		}
	}

	if req.Status == model.PharmacyRequestRejected {
		if req.RejectionReason == "" {
			return nil, apperrors.InvalidInput("rejection_reason is required when rejecting")
		}
		request.RejectionReason = &req.RejectionReason
	}
	request.Status = req.Status

	if err := s.prescRepo.UpdatePharmacyRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// ListPharmacyRequests scopes fulfillment requests: patients their
// own, pharmacists those of their pharmacies (none means an empty
// list), administrators everything.
func (s *Service) ListPharmacyRequests(ctx context.Context, viewer model.Viewer, status *model.PharmacyRequestStatus) ([]*model.PharmacyRequestDetail, error) {
	filters := &model.PharmacyRequestFilters{Status: status}

	switch viewer.Role {
	case model.RolePatient:
		id := viewer.ProfileID
		filters.PatientID = &id
	case model.RolePharmacist:
		pharmacies, err := s.pharmacyRepo.ListByPharmacist(ctx, viewer.ProfileID)
		if err != nil {
			return nil, err
		}
		if len(pharmacies) == 0 {
			return []*model.PharmacyRequestDetail{}, nil
		}
		ids := make([]uuid.UUID, len(pharmacies))
		for i, p := range pharmacies {
			ids[i] = p.ID
		}
		filters.PharmacyIDs = ids
	case model.RoleAdmin:
	default:
		return nil, apperrors.AccessDenied("you may not list pharmacy requests")
	}

	return s.prescRepo.ListPharmacyRequests(ctx, filters)
}
