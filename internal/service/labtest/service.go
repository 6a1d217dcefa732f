package labtest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/repository"
	apperrors "github.com/caresync/hms-api/pkg/errors"
	"github.com/caresync/hms-api/pkg/event"
)

type Service struct {
	labRepo      repository.LabTestRepository
	consultRepo  repository.ConsultationRepository
	apptRepo     repository.AppointmentRepository
	templateRepo repository.LabTestTemplateRepository
	hospitalRepo repository.HospitalRepository
	doctorRepo   repository.DoctorRepository
	emitter      event.Emitter
}

func NewService(
	labRepo repository.LabTestRepository,
	consultRepo repository.ConsultationRepository,
	apptRepo repository.AppointmentRepository,
	templateRepo repository.LabTestTemplateRepository,
	hospitalRepo repository.HospitalRepository,
	doctorRepo repository.DoctorRepository,
	emitter event.Emitter,
) *Service {
	return &Service{
		labRepo:      labRepo,
		consultRepo:  consultRepo,
		apptRepo:     apptRepo,
		templateRepo: templateRepo,
		hospitalRepo: hospitalRepo,
		doctorRepo:   doctorRepo,
		emitter:      emitter,
	}
}

// CreateRequest orders a lab test off a consultation. The price is
// snapshotted from the template. The hospital is resolved in order:
// explicit hospital_id, then the consultation's appointment, then the
// optional appointment_id fallback; a request may end up with no
// hospital at all.
func (s *Service) CreateRequest(ctx context.Context, viewer model.Viewer, req *model.CreateLabTestRequestRequest) (*model.LabTestRequest, error) {
	if viewer.Role != model.RoleDoctor && !viewer.IsAdmin() {
		return nil, apperrors.AccessDenied("only doctors may order lab tests")
	}

	consultation, err := s.consultRepo.Get(ctx, req.ConsultationID)
	if err != nil {
		return nil, err
	}

	if viewer.Role == model.RoleDoctor {
		doctor, err := s.doctorRepo.GetByUser(ctx, viewer.ProfileID)
		if err != nil || doctor.ID != consultation.DoctorID {
			return nil, apperrors.AccessDenied("only the consulting doctor may order tests for this consultation")
		}
	}

	template, err := s.templateRepo.Get(ctx, req.LabTestTemplateID)
	if err != nil {
		return nil, apperrors.InvalidInput("lab test template not found")
	}

	hospitalID, err := s.resolveHospital(ctx, req, consultation)
	if err != nil {
		return nil, err
	}

	status := model.LabTestStatusAwaitingPayment
	if req.Status != nil {
		status = *req.Status
	}

	request := &model.LabTestRequest{
		Base:              model.Base{ID: uuid.New()},
		ConsultationID:    consultation.ID,
		PatientID:         consultation.PatientID,
		DoctorID:          consultation.DoctorID,
		LabTestTemplateID: template.ID,
		HospitalID:        hospitalID,
		Status:            status,
		TotalPrice:        template.Price,
	}

	if err := s.labRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *Service) resolveHospital(ctx context.Context, req *model.CreateLabTestRequestRequest, consultation *model.Consultation) (*uuid.UUID, error) {
	if req.HospitalID != nil {
		if _, err := s.hospitalRepo.Get(ctx, *req.HospitalID); err != nil {
			return nil, apperrors.InvalidInput("hospital not found")
		}
		return req.HospitalID, nil
	}

	if appointment, err := s.apptRepo.Get(ctx, consultation.AppointmentID); err == nil {
		id := appointment.HospitalID
		return &id, nil
	}

	if req.AppointmentID != nil {
		if appointment, err := s.apptRepo.Get(ctx, *req.AppointmentID); err == nil {
			id := appointment.HospitalID
			return &id, nil
		}
	}

	return nil, nil
}

func (s *Service) GetRequest(ctx context.Context, viewer model.Viewer, id uuid.UUID) (*model.LabTestRequestDetail, error) {
	detail, err := s.labRepo.GetRequestDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canViewRequest(ctx, viewer, &detail.LabTestRequest); err != nil {
		return nil, err
	}
	return detail, nil
}

// UpdateRequestStatus moves a request along its lifecycle. Technicians
// may only touch requests routed to a hospital whose lab they run.
func (s *Service) UpdateRequestStatus(ctx context.Context, viewer model.Viewer, id uuid.UUID, req *model.UpdateLabTestRequestRequest) (*model.LabTestRequest, error) {
	request, err := s.labRepo.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	switch viewer.Role {
	case model.RoleAdmin, model.RoleDoctor:
	case model.RoleLabTechnician:
		ok, err := s.technicianOwnsRequest(ctx, viewer, request)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.AccessDenied("this request is not routed to your lab")
		}
	default:
		return nil, apperrors.AccessDenied("you may not update lab test requests")
	}

	if err := s.labRepo.UpdateRequestStatus(ctx, id, req.Status); err != nil {
		return nil, err
	}
	request.Status = req.Status
	return request, nil
}

func (s *Service) technicianOwnsRequest(ctx context.Context, viewer model.Viewer, request *model.LabTestRequest) (bool, error) {
	if request.HospitalID == nil {
		return false, nil
	}
	hospitals, err := s.hospitalRepo.ListByLabUser(ctx, viewer.ProfileID)
	if err != nil {
		return false, err
	}
	for _, h := range hospitals {
		if h.ID == *request.HospitalID {
			return true, nil
		}
	}
	return false, nil
}

// ListRequests scopes by role: patients and doctors see their own,
// technicians see requests routed to their hospitals (none means an
// empty list without querying), administrators see everything.
func (s *Service) ListRequests(ctx context.Context, viewer model.Viewer, status *model.LabTestStatus) ([]*model.LabTestRequestDetail, error) {
	filters := &model.LabTestRequestFilters{Status: status}

	switch viewer.Role {
	case model.RolePatient:
		id := viewer.ProfileID
		filters.PatientID = &id
	case model.RoleDoctor:
		doctor, err := s.doctorRepo.GetByUser(ctx, viewer.ProfileID)
		if err != nil {
			return []*model.LabTestRequestDetail{}, nil
		}
		filters.DoctorID = &doctor.ID
	case model.RoleLabTechnician:
		hospitals, err := s.hospitalRepo.ListByLabUser(ctx, viewer.ProfileID)
		if err != nil {
			return nil, err
		}
		if len(hospitals) == 0 {
			return []*model.LabTestRequestDetail{}, nil
		}
		ids := make([]uuid.UUID, len(hospitals))
		for i, h := range hospitals {
			ids[i] = h.ID
		}
		filters.HospitalIDs = ids
	case model.RoleAdmin:
	default:
		return nil, apperrors.AccessDenied("you may not list lab test requests")
	}

	return s.labRepo.ListRequests(ctx, filters)
}

// CreateResult records a technician's finding and completes the parent
// request in one transaction. A second result for the same request is
// a Conflict.
func (s *Service) CreateResult(ctx context.Context, viewer model.Viewer, req *model.CreateLabTestResultRequest) (*model.LabTestResult, error) {
	if viewer.Role != model.RoleLabTechnician {
		return nil, apperrors.AccessDenied("only lab technicians may record results")
	}

	request, err := s.labRepo.GetRequest(ctx, req.LabTestRequestID)
	if err != nil {
		return nil, err
	}
	if request.Status == model.LabTestStatusCompleted {
		return nil, apperrors.InvalidState("this request already has a result")
	}

	result := &model.LabTestResult{
		Base:             model.Base{ID: uuid.New()},
		LabTestRequestID: request.ID,
		TechnicianID:     viewer.ProfileID,
		ResultStatus:     req.ResultStatus,
		ResultData:       req.ResultData,
		Notes:            req.Notes,
		CompletedAt:      time.Now(),
	}

	if err := s.labRepo.CreateResult(ctx, result); err != nil {
		if apperrors.IsKind(err, apperrors.KindConflict) {
			return nil, apperrors.Conflict("a result already exists for this request", err)
		}
		return nil, err
	}

	testName := ""
	if template, err := s.templateRepo.Get(ctx, request.LabTestTemplateID); err == nil {
		testName = template.Name
	}
	s.emitter.Emit(ctx, event.TypeLabResultRecorded, event.LabResultRecorded{
		RequestID: request.ID,
		ResultID:  result.ID,
		PatientID: request.PatientID,
		TestName:  testName,
	})

	return result, nil
}

func (s *Service) GetResultByRequest(ctx context.Context, viewer model.Viewer, requestID uuid.UUID) (*model.LabTestResult, error) {
	request, err := s.labRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.canViewRequest(ctx, viewer, request); err != nil {
		return nil, err
	}
	return s.labRepo.GetResultByRequest(ctx, requestID)
}

func (s *Service) canViewRequest(ctx context.Context, viewer model.Viewer, request *model.LabTestRequest) error {
	switch viewer.Role {
	case model.RoleAdmin:
		return nil
	case model.RolePatient:
		if request.PatientID == viewer.ProfileID {
			return nil
		}
	case model.RoleDoctor:
		if doctor, err := s.doctorRepo.GetByUser(ctx, viewer.ProfileID); err == nil && doctor.ID == request.DoctorID {
			return nil
		}
	case model.RoleLabTechnician:
		if ok, err := s.technicianOwnsRequest(ctx, viewer, request); err == nil && ok {
			return nil
		}
	}
	return apperrors.AccessDenied("you may not view this lab test request")
}
