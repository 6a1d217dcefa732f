package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/hms-api/internal/model"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

type fakePaymentRepo struct {
	payments map[uuid.UUID]*model.Payment
}

func (r *fakePaymentRepo) Create(_ context.Context, p *model.Payment) error {
	r.payments[p.ID] = p
	return nil
}

func (r *fakePaymentRepo) Get(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, apperrors.NotFound("payment")
	}
	return p, nil
}

func (r *fakePaymentRepo) List(_ context.Context, filters *model.PaymentFilters) ([]*model.Payment, error) {
	var out []*model.Payment
	for _, p := range r.payments {
		if filters.PatientID != nil && p.PatientID != *filters.PatientID {
			continue
		}
		if filters.PaymentType != nil && p.PaymentType != *filters.PaymentType {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*model.Profile
}

func (r *fakeProfileRepo) Create(_ context.Context, p *model.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) Get(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, apperrors.NotFound("profile")
	}
	return p, nil
}

func (r *fakeProfileRepo) GetByEmail(context.Context, string) (*model.Profile, error) {
	return nil, apperrors.NotFound("profile")
}

func (r *fakeProfileRepo) Update(context.Context, *model.Profile) error { return nil }
func (r *fakeProfileRepo) Delete(context.Context, uuid.UUID) error      { return nil }
func (r *fakeProfileRepo) List(context.Context) ([]*model.Profile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) CountByRole(context.Context, model.Role) (int, error) { return 0, nil }

type fakeInsuranceRepo struct {
	insurances map[uuid.UUID]*model.Insurance
	gets       int
	getErr     error
}

func (r *fakeInsuranceRepo) Create(context.Context, *model.Insurance) error { return nil }

func (r *fakeInsuranceRepo) Get(_ context.Context, id uuid.UUID) (*model.Insurance, error) {
	r.gets++
	if r.getErr != nil {
		return nil, r.getErr
	}
	ins, ok := r.insurances[id]
	if !ok {
		return nil, apperrors.NotFound("insurance")
	}
	return ins, nil
}

func (r *fakeInsuranceRepo) Update(context.Context, *model.Insurance) error { return nil }
func (r *fakeInsuranceRepo) Delete(context.Context, uuid.UUID) error        { return nil }
func (r *fakeInsuranceRepo) List(context.Context) ([]*model.Insurance, error) {
	return nil, nil
}

type fakeLabRepo struct {
	requests map[uuid.UUID]*model.LabTestRequest
}

func (r *fakeLabRepo) CreateRequest(context.Context, *model.LabTestRequest) error { return nil }

func (r *fakeLabRepo) GetRequest(_ context.Context, id uuid.UUID) (*model.LabTestRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, apperrors.NotFound("lab test request")
	}
	return request, nil
}

func (r *fakeLabRepo) GetRequestDetail(context.Context, uuid.UUID) (*model.LabTestRequestDetail, error) {
	return nil, apperrors.NotFound("lab test request")
}

func (r *fakeLabRepo) UpdateRequestStatus(_ context.Context, id uuid.UUID, status model.LabTestStatus) error {
	if request, ok := r.requests[id]; ok {
		request.Status = status
	}
	return nil
}

func (r *fakeLabRepo) ListRequests(context.Context, *model.LabTestRequestFilters) ([]*model.LabTestRequestDetail, error) {
	return nil, nil
}

func (r *fakeLabRepo) CreateResult(context.Context, *model.LabTestResult) error { return nil }

func (r *fakeLabRepo) GetResult(context.Context, uuid.UUID) (*model.LabTestResult, error) {
	return nil, apperrors.NotFound("lab test result")
}

func (r *fakeLabRepo) GetResultByRequest(context.Context, uuid.UUID) (*model.LabTestResult, error) {
	return nil, apperrors.NotFound("lab test result")
}

type fixture struct {
	svc       *Service
	payments  *fakePaymentRepo
	insRepo   *fakeInsuranceRepo
	labRepo   *fakeLabRepo
	insurance *model.Insurance
	insured   *model.Profile
	uninsured *model.Profile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	insurance := &model.Insurance{
		Base:               model.Base{ID: uuid.New()},
		Name:               "GoldCare",
		CoveragePercentage: 30,
	}
	insured := &model.Profile{
		Base:        model.Base{ID: uuid.New()},
		Role:        model.RolePatient,
		InsuranceID: &insurance.ID,
	}
	uninsured := &model.Profile{
		Base: model.Base{ID: uuid.New()},
		Role: model.RolePatient,
	}

	payments := &fakePaymentRepo{payments: make(map[uuid.UUID]*model.Payment)}
	insRepo := &fakeInsuranceRepo{insurances: map[uuid.UUID]*model.Insurance{insurance.ID: insurance}}
	labRepo := &fakeLabRepo{requests: make(map[uuid.UUID]*model.LabTestRequest)}
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*model.Profile{
		insured.ID:   insured,
		uninsured.ID: uninsured,
	}}

	return &fixture{
		svc:       NewService(payments, profiles, insRepo, labRepo),
		payments:  payments,
		insRepo:   insRepo,
		labRepo:   labRepo,
		insurance: insurance,
		insured:   insured,
		uninsured: uninsured,
	}
}

func TestCreatePaymentWithCoverage(t *testing.T) {
	f := newFixture(t)

	payment, err := f.svc.Create(context.Background(), model.Viewer{ProfileID: f.insured.ID, Role: model.RolePatient}, &model.CreatePaymentRequest{
		PaymentType:   model.PaymentTypeConsultation,
		ReferenceID:   uuid.New(),
		Amount:        200,
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	assert.Equal(t, 60.0, payment.InsuranceCoverage)
	assert.Equal(t, 140.0, payment.PatientPays)
	assert.Equal(t, model.PaymentStatusCompleted, payment.Status)
	assert.NotEmpty(t, payment.TransactionID)
}

func TestCreatePaymentWithoutInsurance(t *testing.T) {
	f := newFixture(t)

	payment, err := f.svc.Create(context.Background(), model.Viewer{ProfileID: f.uninsured.ID, Role: model.RolePatient}, &model.CreatePaymentRequest{
		PaymentType: model.PaymentTypeConsultation,
		ReferenceID: uuid.New(),
		Amount:      200,
	})
	require.NoError(t, err)

	assert.Zero(t, payment.InsuranceCoverage)
	assert.Equal(t, 200.0, payment.PatientPays)
}

func TestCreatePaymentInsuranceLookupFailure(t *testing.T) {
	f := newFixture(t)
	f.insRepo.getErr = apperrors.Unexpected(errors.New("connection refused"))

	_, err := f.svc.Create(context.Background(), model.Viewer{ProfileID: f.insured.ID, Role: model.RolePatient}, &model.CreatePaymentRequest{
		PaymentType:   model.PaymentTypeConsultation,
		ReferenceID:   uuid.New(),
		Amount:        200,
		PaymentMethod: "card",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnexpected))

	// nothing may be recorded when coverage could not be resolved
	assert.Empty(t, f.payments.payments)
}

func TestCreatePaymentDanglingInsuranceReference(t *testing.T) {
	f := newFixture(t)
	delete(f.insRepo.insurances, f.insurance.ID)

	payment, err := f.svc.Create(context.Background(), model.Viewer{ProfileID: f.insured.ID, Role: model.RolePatient}, &model.CreatePaymentRequest{
		PaymentType: model.PaymentTypeConsultation,
		ReferenceID: uuid.New(),
		Amount:      200,
	})
	require.NoError(t, err)

	assert.Zero(t, payment.InsuranceCoverage)
	assert.Equal(t, 200.0, payment.PatientPays)
}

func TestCreatePaymentCachesInsurance(t *testing.T) {
	f := newFixture(t)
	viewer := model.Viewer{ProfileID: f.insured.ID, Role: model.RolePatient}

	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(context.Background(), viewer, &model.CreatePaymentRequest{
			PaymentType: model.PaymentTypeConsultation,
			ReferenceID: uuid.New(),
			Amount:      100,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, f.insRepo.gets)
}

func TestCreatePaymentNonPatientDenied(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), model.Viewer{ProfileID: uuid.New(), Role: model.RoleDoctor}, &model.CreatePaymentRequest{
		PaymentType: model.PaymentTypeConsultation,
		ReferenceID: uuid.New(),
		Amount:      100,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))
}

func TestLabTestPaymentReleasesRequest(t *testing.T) {
	f := newFixture(t)

	request := &model.LabTestRequest{
		Base:   model.Base{ID: uuid.New()},
		Status: model.LabTestStatusAwaitingPayment,
	}
	f.labRepo.requests[request.ID] = request

	_, err := f.svc.Create(context.Background(), model.Viewer{ProfileID: f.uninsured.ID, Role: model.RolePatient}, &model.CreatePaymentRequest{
		PaymentType: model.PaymentTypeLabTest,
		ReferenceID: request.ID,
		Amount:      45,
	})
	require.NoError(t, err)

	assert.Equal(t, model.LabTestStatusPending, request.Status)
}

func TestLabTestPaymentLeavesOtherStatusesAlone(t *testing.T) {
	f := newFixture(t)

	request := &model.LabTestRequest{
		Base:   model.Base{ID: uuid.New()},
		Status: model.LabTestStatusInProgress,
	}
	f.labRepo.requests[request.ID] = request

	_, err := f.svc.Create(context.Background(), model.Viewer{ProfileID: f.uninsured.ID, Role: model.RolePatient}, &model.CreatePaymentRequest{
		PaymentType: model.PaymentTypeLabTest,
		ReferenceID: request.ID,
		Amount:      45,
	})
	require.NoError(t, err)

	assert.Equal(t, model.LabTestStatusInProgress, request.Status)
}

func TestGetAndListScope(t *testing.T) {
	f := newFixture(t)
	viewer := model.Viewer{ProfileID: f.uninsured.ID, Role: model.RolePatient}

	payment, err := f.svc.Create(context.Background(), viewer, &model.CreatePaymentRequest{
		PaymentType: model.PaymentTypeMedication,
		ReferenceID: uuid.New(),
		Amount:      12,
	})
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), viewer, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, got.ID)

	_, err = f.svc.Get(context.Background(), model.Viewer{ProfileID: uuid.New(), Role: model.RolePatient}, payment.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))

	mine, err := f.svc.List(context.Background(), viewer, nil)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = f.svc.List(context.Background(), model.Viewer{ProfileID: uuid.New(), Role: model.RoleDoctor}, nil)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))
}
