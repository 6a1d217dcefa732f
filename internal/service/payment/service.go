package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/repository"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

const (
	insuranceCacheTTL     = 5 * time.Minute
	insuranceCacheCleanup = 10 * time.Minute
)

// Service records settlements. The amount is caller-supplied and the
// payment always completes; this is a recording operation, not a
// charge against a payment gateway. Insurance plans change rarely, so
// coverage lookups go through a short in-process cache.
type Service struct {
	paymentRepo    repository.PaymentRepository
	profileRepo    repository.ProfileRepository
	insuranceRepo  repository.InsuranceRepository
	labRepo        repository.LabTestRepository
	insuranceCache *gocache.Cache
}

func NewService(
	paymentRepo repository.PaymentRepository,
	profileRepo repository.ProfileRepository,
	insuranceRepo repository.InsuranceRepository,
	labRepo repository.LabTestRepository,
) *Service {
	return &Service{
		paymentRepo:    paymentRepo,
		profileRepo:    profileRepo,
		insuranceRepo:  insuranceRepo,
		labRepo:        labRepo,
		insuranceCache: gocache.New(insuranceCacheTTL, insuranceCacheCleanup),
	}
}

// Create records a payment by the calling patient. Coverage is the
// patient's insurance percentage applied to the amount, zero without a
// plan. Paying a lab test that is awaiting payment releases it to the
// lab queue.
func (s *Service) Create(ctx context.Context, viewer model.Viewer, req *model.CreatePaymentRequest) (*model.Payment, error) {
	if viewer.Role != model.RolePatient {
		return nil, apperrors.AccessDenied("only patients may record payments")
	}

	patient, err := s.profileRepo.Get(ctx, viewer.ProfileID)
	if err != nil {
		return nil, err
	}

	// A dangling insurance reference means no coverage; any other
	// lookup failure aborts the payment rather than silently billing
	// the patient in full.
	coverage := 0.0
	if patient.InsuranceID != nil {
		insurance, err := s.getInsurance(ctx, *patient.InsuranceID)
		switch {
		case err == nil:
			coverage = req.Amount * insurance.CoveragePercentage / 100
		case !apperrors.IsKind(err, apperrors.KindNotFound):
			return nil, err
		}
	}

	payment := &model.Payment{
		Base:              model.Base{ID: uuid.New()},
		PatientID:         viewer.ProfileID,
		PaymentType:       req.PaymentType,
		ReferenceID:       req.ReferenceID,
		Amount:            req.Amount,
		InsuranceCoverage: coverage,
		PatientPays:       req.Amount - coverage,
		Status:            model.PaymentStatusCompleted,
		PaymentMethod:     req.PaymentMethod,
		TransactionID:     uuid.New().String(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if req.PaymentType == model.PaymentTypeLabTest {
		s.releaseLabTest(ctx, req.ReferenceID)
	}

	return payment, nil
}

// releaseLabTest moves a paid lab test from awaiting_payment to
// pending. The payment itself already succeeded, so failures here are
// swallowed; the technician can still advance the request manually.
func (s *Service) releaseLabTest(ctx context.Context, requestID uuid.UUID) {
	request, err := s.labRepo.GetRequest(ctx, requestID)
	if err != nil || request.Status != model.LabTestStatusAwaitingPayment {
		return
	}
	s.labRepo.UpdateRequestStatus(ctx, requestID, model.LabTestStatusPending)
}

func (s *Service) getInsurance(ctx context.Context, id uuid.UUID) (*model.Insurance, error) {
	key := id.String()
	if cached, ok := s.insuranceCache.Get(key); ok {
		return cached.(*model.Insurance), nil
	}
	insurance, err := s.insuranceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.insuranceCache.Set(key, insurance, gocache.DefaultExpiration)
	return insurance, nil
}

func (s *Service) Get(ctx context.Context, viewer model.Viewer, id uuid.UUID) (*model.Payment, error) {
	payment, err := s.paymentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.IsAdmin() && payment.PatientID != viewer.ProfileID {
		return nil, apperrors.AccessDenied("you may not view this payment")
	}
	return payment, nil
}

// List scopes payments: patients see their own, administrators see
// everything.
func (s *Service) List(ctx context.Context, viewer model.Viewer, paymentType *model.PaymentType) ([]*model.Payment, error) {
	filters := &model.PaymentFilters{PaymentType: paymentType}

	switch viewer.Role {
	case model.RolePatient:
		id := viewer.ProfileID
		filters.PatientID = &id
	case model.RoleAdmin:
	default:
		return nil, apperrors.AccessDenied("you may not list payments")
	}

	return s.paymentRepo.List(ctx, filters)
}
