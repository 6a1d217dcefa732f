package labtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/hms-api/internal/model"
	apperrors "github.com/caresync/hms-api/pkg/errors"
	"github.com/caresync/hms-api/pkg/event"
)

type fakeLabRepo struct {
	requests map[uuid.UUID]*model.LabTestRequest
	results  map[uuid.UUID]*model.LabTestResult
	queried  bool
}

func newFakeLabRepo() *fakeLabRepo {
	return &fakeLabRepo{
		requests: make(map[uuid.UUID]*model.LabTestRequest),
		results:  make(map[uuid.UUID]*model.LabTestResult),
	}
}

func (r *fakeLabRepo) CreateRequest(_ context.Context, request *model.LabTestRequest) error {
	r.requests[request.ID] = request
	return nil
}

func (r *fakeLabRepo) GetRequest(_ context.Context, id uuid.UUID) (*model.LabTestRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, apperrors.NotFound("lab test request")
	}
	return request, nil
}

func (r *fakeLabRepo) GetRequestDetail(ctx context.Context, id uuid.UUID) (*model.LabTestRequestDetail, error) {
	request, err := r.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.LabTestRequestDetail{LabTestRequest: *request}, nil
}

func (r *fakeLabRepo) UpdateRequestStatus(_ context.Context, id uuid.UUID, status model.LabTestStatus) error {
	request, ok := r.requests[id]
	if !ok {
		return apperrors.NotFound("lab test request")
	}
	request.Status = status
	return nil
}

func (r *fakeLabRepo) ListRequests(_ context.Context, filters *model.LabTestRequestFilters) ([]*model.LabTestRequestDetail, error) {
	r.queried = true
	var out []*model.LabTestRequestDetail
	for _, request := range r.requests {
		if filters.PatientID != nil && request.PatientID != *filters.PatientID {
			continue
		}
		if filters.DoctorID != nil && request.DoctorID != *filters.DoctorID {
			continue
		}
		if len(filters.HospitalIDs) > 0 {
			found := false
			for _, id := range filters.HospitalIDs {
				if request.HospitalID != nil && *request.HospitalID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, &model.LabTestRequestDetail{LabTestRequest: *request})
	}
	return out, nil
}

func (r *fakeLabRepo) CreateResult(_ context.Context, result *model.LabTestResult) error {
	for _, existing := range r.results {
		if existing.LabTestRequestID == result.LabTestRequestID {
			return apperrors.Conflict("duplicate", nil)
		}
	}
	r.results[result.ID] = result
	if request, ok := r.requests[result.LabTestRequestID]; ok {
		request.Status = model.LabTestStatusCompleted
	}
	return nil
}

func (r *fakeLabRepo) GetResult(_ context.Context, id uuid.UUID) (*model.LabTestResult, error) {
	result, ok := r.results[id]
	if !ok {
		return nil, apperrors.NotFound("lab test result")
	}
	return result, nil
}

func (r *fakeLabRepo) GetResultByRequest(_ context.Context, requestID uuid.UUID) (*model.LabTestResult, error) {
	for _, result := range r.results {
		if result.LabTestRequestID == requestID {
			return result, nil
		}
	}
	return nil, apperrors.NotFound("lab test result")
}

type fakeConsultationRepo struct {
	consultations map[uuid.UUID]*model.Consultation
}

func (r *fakeConsultationRepo) Create(context.Context, *model.Consultation) error { return nil }

func (r *fakeConsultationRepo) Get(_ context.Context, id uuid.UUID) (*model.Consultation, error) {
	c, ok := r.consultations[id]
	if !ok {
		return nil, apperrors.NotFound("consultation")
	}
	return c, nil
}

func (r *fakeConsultationRepo) GetDetail(context.Context, uuid.UUID) (*model.ConsultationDetail, error) {
	return nil, apperrors.NotFound("consultation")
}

func (r *fakeConsultationRepo) GetByAppointment(context.Context, uuid.UUID) (*model.Consultation, error) {
	return nil, apperrors.NotFound("consultation")
}

func (r *fakeConsultationRepo) List(context.Context, *model.ConsultationFilters) ([]*model.ConsultationDetail, error) {
	return nil, nil
}

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func (r *fakeAppointmentRepo) Create(context.Context, *model.Appointment) error { return nil }

func (r *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment")
	}
	return a, nil
}

func (r *fakeAppointmentRepo) GetDetail(context.Context, uuid.UUID) (*model.AppointmentDetail, error) {
	return nil, apperrors.NotFound("appointment")
}

func (r *fakeAppointmentRepo) Update(context.Context, *model.Appointment) error { return nil }
func (r *fakeAppointmentRepo) Delete(context.Context, uuid.UUID) error          { return nil }

func (r *fakeAppointmentRepo) List(context.Context, *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) ListBookedTimes(context.Context, uuid.UUID, time.Time) ([]string, error) {
	return nil, nil
}

type fakeTemplateRepo struct {
	templates map[uuid.UUID]*model.LabTestTemplate
}

func (r *fakeTemplateRepo) Create(context.Context, *model.LabTestTemplate) error { return nil }

func (r *fakeTemplateRepo) Get(_ context.Context, id uuid.UUID) (*model.LabTestTemplate, error) {
	tmpl, ok := r.templates[id]
	if !ok {
		return nil, apperrors.NotFound("lab test template")
	}
	return tmpl, nil
}

func (r *fakeTemplateRepo) Update(context.Context, *model.LabTestTemplate) error { return nil }
func (r *fakeTemplateRepo) Delete(context.Context, uuid.UUID) error              { return nil }
func (r *fakeTemplateRepo) List(context.Context) ([]*model.LabTestTemplate, error) {
	return nil, nil
}

type fakeHospitalRepo struct {
	hospitals map[uuid.UUID]*model.Hospital
}

func (r *fakeHospitalRepo) Create(context.Context, *model.Hospital) error { return nil }

func (r *fakeHospitalRepo) Get(_ context.Context, id uuid.UUID) (*model.Hospital, error) {
	h, ok := r.hospitals[id]
	if !ok {
		return nil, apperrors.NotFound("hospital")
	}
	return h, nil
}

func (r *fakeHospitalRepo) Update(context.Context, *model.Hospital) error { return nil }
func (r *fakeHospitalRepo) Delete(context.Context, uuid.UUID) error       { return nil }
func (r *fakeHospitalRepo) List(context.Context) ([]*model.Hospital, error) {
	return nil, nil
}

func (r *fakeHospitalRepo) ListByLabUser(_ context.Context, labUserID uuid.UUID) ([]*model.Hospital, error) {
	var out []*model.Hospital
	for _, h := range r.hospitals {
		if h.LabUserID != nil && *h.LabUserID == labUserID {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeDoctorRepo struct {
	byUser map[uuid.UUID]*model.Doctor
}

func (r *fakeDoctorRepo) Create(context.Context, *model.Doctor) error { return nil }

func (r *fakeDoctorRepo) Get(context.Context, uuid.UUID) (*model.Doctor, error) {
	return nil, apperrors.NotFound("doctor")
}

func (r *fakeDoctorRepo) GetByUser(_ context.Context, userID uuid.UUID) (*model.Doctor, error) {
	d, ok := r.byUser[userID]
	if !ok {
		return nil, apperrors.NotFound("doctor")
	}
	return d, nil
}

func (r *fakeDoctorRepo) GetDetail(context.Context, uuid.UUID) (*model.DoctorDetail, error) {
	return nil, apperrors.NotFound("doctor")
}

func (r *fakeDoctorRepo) Update(context.Context, *model.Doctor) error         { return nil }
func (r *fakeDoctorRepo) Delete(context.Context, uuid.UUID) error             { return nil }
func (r *fakeDoctorRepo) List(context.Context) ([]*model.DoctorDetail, error) { return nil, nil }

type recordingEmitter struct {
	events []event.Event
}

func (e *recordingEmitter) Emit(_ context.Context, typ event.Type, payload interface{}) error {
	e.events = append(e.events, event.Event{Type: typ, Payload: payload})
	return nil
}

type fixture struct {
	svc      *Service
	labRepo  *fakeLabRepo
	emitter  *recordingEmitter
	doctor   *model.Doctor
	patient  uuid.UUID
	labUser  uuid.UUID
	hospital *model.Hospital
	appt     *model.Appointment
	consult  *model.Consultation
	template *model.LabTestTemplate
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	doctor := &model.Doctor{Base: model.Base{ID: uuid.New()}, UserID: uuid.New()}
	patient := uuid.New()
	labUser := uuid.New()
	hospital := &model.Hospital{
		Base:      model.Base{ID: uuid.New()},
		Name:      "General Hospital",
		LabUserID: &labUser,
	}
	appt := &model.Appointment{
		Base:       model.Base{ID: uuid.New()},
		PatientID:  patient,
		DoctorID:   doctor.ID,
		HospitalID: hospital.ID,
	}
	consult := &model.Consultation{
		Base:          model.Base{ID: uuid.New()},
		AppointmentID: appt.ID,
		PatientID:     patient,
		DoctorID:      doctor.ID,
	}
	template := &model.LabTestTemplate{
		Base:  model.Base{ID: uuid.New()},
		Name:  "Complete Blood Count",
		Price: 45,
	}

	labRepo := newFakeLabRepo()
	emitter := &recordingEmitter{}

	svc := NewService(
		labRepo,
		&fakeConsultationRepo{consultations: map[uuid.UUID]*model.Consultation{consult.ID: consult}},
		&fakeAppointmentRepo{appointments: map[uuid.UUID]*model.Appointment{appt.ID: appt}},
		&fakeTemplateRepo{templates: map[uuid.UUID]*model.LabTestTemplate{template.ID: template}},
		&fakeHospitalRepo{hospitals: map[uuid.UUID]*model.Hospital{hospital.ID: hospital}},
		&fakeDoctorRepo{byUser: map[uuid.UUID]*model.Doctor{doctor.UserID: doctor}},
		emitter,
	)

	return &fixture{
		svc:      svc,
		labRepo:  labRepo,
		emitter:  emitter,
		doctor:   doctor,
		patient:  patient,
		labUser:  labUser,
		hospital: hospital,
		appt:     appt,
		consult:  consult,
		template: template,
	}
}

func (f *fixture) doctorViewer() model.Viewer {
	return model.Viewer{ProfileID: f.doctor.UserID, Role: model.RoleDoctor}
}

func (f *fixture) technicianViewer() model.Viewer {
	return model.Viewer{ProfileID: f.labUser, Role: model.RoleLabTechnician}
}

func TestCreateRequest(t *testing.T) {
	f := newFixture(t)

	request, err := f.svc.CreateRequest(context.Background(), f.doctorViewer(), &model.CreateLabTestRequestRequest{
		ConsultationID:    f.consult.ID,
		LabTestTemplateID: f.template.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, f.patient, request.PatientID)
	assert.Equal(t, f.doctor.ID, request.DoctorID)
	assert.Equal(t, model.LabTestStatusAwaitingPayment, request.Status)
	assert.Equal(t, 45.0, request.TotalPrice)

	// hospital derived from the consultation's appointment
	require.NotNil(t, request.HospitalID)
	assert.Equal(t, f.hospital.ID, *request.HospitalID)
}

func TestCreateRequestExplicitHospital(t *testing.T) {
	f := newFixture(t)

	other := &model.Hospital{Base: model.Base{ID: uuid.New()}, Name: "Other"}
	f.svc.hospitalRepo.(*fakeHospitalRepo).hospitals[other.ID] = other

	request, err := f.svc.CreateRequest(context.Background(), f.doctorViewer(), &model.CreateLabTestRequestRequest{
		ConsultationID:    f.consult.ID,
		LabTestTemplateID: f.template.ID,
		HospitalID:        &other.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, request.HospitalID)
	assert.Equal(t, other.ID, *request.HospitalID)
}

func TestCreateRequestNoHospital(t *testing.T) {
	f := newFixture(t)
	// orphan the consultation from its appointment
	f.consult.AppointmentID = uuid.New()

	request, err := f.svc.CreateRequest(context.Background(), f.doctorViewer(), &model.CreateLabTestRequestRequest{
		ConsultationID:    f.consult.ID,
		LabTestTemplateID: f.template.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, request.HospitalID)
}

func TestCreateRequestWrongDoctor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateRequest(context.Background(), model.Viewer{ProfileID: uuid.New(), Role: model.RoleDoctor}, &model.CreateLabTestRequestRequest{
		ConsultationID:    f.consult.ID,
		LabTestTemplateID: f.template.ID,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))
}

func (f *fixture) seedRequest(t *testing.T, status model.LabTestStatus, hospitalID *uuid.UUID) *model.LabTestRequest {
	t.Helper()
	request := &model.LabTestRequest{
		Base:              model.Base{ID: uuid.New()},
		ConsultationID:    f.consult.ID,
		PatientID:         f.patient,
		DoctorID:          f.doctor.ID,
		LabTestTemplateID: f.template.ID,
		HospitalID:        hospitalID,
		Status:            status,
		TotalPrice:        45,
	}
	f.labRepo.requests[request.ID] = request
	return request
}

func TestUpdateRequestStatusTechnicianScope(t *testing.T) {
	f := newFixture(t)
	request := f.seedRequest(t, model.LabTestStatusPending, &f.hospital.ID)

	updated, err := f.svc.UpdateRequestStatus(context.Background(), f.technicianViewer(), request.ID, &model.UpdateLabTestRequestRequest{
		Status: model.LabTestStatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, model.LabTestStatusInProgress, updated.Status)

	// a technician from another lab is refused
	_, err = f.svc.UpdateRequestStatus(context.Background(), model.Viewer{ProfileID: uuid.New(), Role: model.RoleLabTechnician}, request.ID, &model.UpdateLabTestRequestRequest{
		Status: model.LabTestStatusCompleted,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))
}

func TestUpdateRequestStatusUnroutedDeniedToTechnician(t *testing.T) {
	f := newFixture(t)
	request := f.seedRequest(t, model.LabTestStatusPending, nil)

	_, err := f.svc.UpdateRequestStatus(context.Background(), f.technicianViewer(), request.ID, &model.UpdateLabTestRequestRequest{
		Status: model.LabTestStatusInProgress,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))
}

func TestListRequestsTechnicianWithoutHospitals(t *testing.T) {
	f := newFixture(t)
	f.seedRequest(t, model.LabTestStatusPending, &f.hospital.ID)

	out, err := f.svc.ListRequests(context.Background(), model.Viewer{ProfileID: uuid.New(), Role: model.RoleLabTechnician}, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.False(t, f.labRepo.queried)
}

func TestListRequestsScope(t *testing.T) {
	f := newFixture(t)
	f.seedRequest(t, model.LabTestStatusPending, &f.hospital.ID)
	other := f.seedRequest(t, model.LabTestStatusPending, nil)
	other.PatientID = uuid.New()

	mine, err := f.svc.ListRequests(context.Background(), model.Viewer{ProfileID: f.patient, Role: model.RolePatient}, nil)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	lab, err := f.svc.ListRequests(context.Background(), f.technicianViewer(), nil)
	require.NoError(t, err)
	assert.Len(t, lab, 1)

	all, err := f.svc.ListRequests(context.Background(), model.Viewer{ProfileID: uuid.New(), Role: model.RoleAdmin}, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreateResult(t *testing.T) {
	f := newFixture(t)
	request := f.seedRequest(t, model.LabTestStatusInProgress, &f.hospital.ID)

	result, err := f.svc.CreateResult(context.Background(), f.technicianViewer(), &model.CreateLabTestResultRequest{
		LabTestRequestID: request.ID,
		ResultStatus:     model.LabResultNegative,
		ResultData:       "within normal ranges",
	})
	require.NoError(t, err)

	assert.Equal(t, f.labUser, result.TechnicianID)
	assert.False(t, result.CompletedAt.IsZero())
	assert.Equal(t, model.LabTestStatusCompleted, request.Status)

	require.Len(t, f.emitter.events, 1)
	assert.Equal(t, event.TypeLabResultRecorded, f.emitter.events[0].Type)
	payload := f.emitter.events[0].Payload.(event.LabResultRecorded)
	assert.Equal(t, "Complete Blood Count", payload.TestName)
	assert.Equal(t, f.patient, payload.PatientID)
}

func TestCreateResultCompletedRequest(t *testing.T) {
	f := newFixture(t)
	request := f.seedRequest(t, model.LabTestStatusCompleted, &f.hospital.ID)

	_, err := f.svc.CreateResult(context.Background(), f.technicianViewer(), &model.CreateLabTestResultRequest{
		LabTestRequestID: request.ID,
		ResultStatus:     model.LabResultPositive,
		ResultData:       "x",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
}

func TestCreateResultNonTechnician(t *testing.T) {
	f := newFixture(t)
	request := f.seedRequest(t, model.LabTestStatusInProgress, &f.hospital.ID)

	_, err := f.svc.CreateResult(context.Background(), f.doctorViewer(), &model.CreateLabTestResultRequest{
		LabTestRequestID: request.ID,
		ResultStatus:     model.LabResultPositive,
		ResultData:       "x",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))
}

func TestGetResultByRequestPatientScope(t *testing.T) {
	f := newFixture(t)
	request := f.seedRequest(t, model.LabTestStatusInProgress, &f.hospital.ID)

	_, err := f.svc.CreateResult(context.Background(), f.technicianViewer(), &model.CreateLabTestResultRequest{
		LabTestRequestID: request.ID,
		ResultStatus:     model.LabResultNegative,
		ResultData:       "ok",
	})
	require.NoError(t, err)

	result, err := f.svc.GetResultByRequest(context.Background(), model.Viewer{ProfileID: f.patient, Role: model.RolePatient}, request.ID)
	require.NoError(t, err)
	assert.Equal(t, request.ID, result.LabTestRequestID)

	_, err = f.svc.GetResultByRequest(context.Background(), model.Viewer{ProfileID: uuid.New(), Role: model.RolePatient}, request.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))
}
