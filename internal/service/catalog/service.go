package catalog

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
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute

	cacheKeyInsurances = "insurances"
	cacheKeyTemplates  = "lab_test_templates"
)

// Service owns the reference catalogs: insurance plans, hospitals,
// departments, hospital-department links, medications, lab test
// templates and pharmacies. Reads are public to any authenticated
// user; writes are admin only. The two hottest read-only catalogs
// (insurance plans and lab test templates) are served through a short
// in-process cache that writes flush.
type Service struct {
	insuranceRepo  repository.InsuranceRepository
	hospitalRepo   repository.HospitalRepository
	deptRepo       repository.DepartmentRepository
	hospDeptRepo   repository.HospitalDepartmentRepository
	medicationRepo repository.MedicationRepository
	templateRepo   repository.LabTestTemplateRepository
	pharmacyRepo   repository.PharmacyRepository
	profileRepo    repository.ProfileRepository
	cache          *gocache.Cache
}

func NewService(
	insuranceRepo repository.InsuranceRepository,
	hospitalRepo repository.HospitalRepository,
	deptRepo repository.DepartmentRepository,
	hospDeptRepo repository.HospitalDepartmentRepository,
	medicationRepo repository.MedicationRepository,
	templateRepo repository.LabTestTemplateRepository,
	pharmacyRepo repository.PharmacyRepository,
	profileRepo repository.ProfileRepository,
) *Service {
	return &Service{
		insuranceRepo:  insuranceRepo,
		hospitalRepo:   hospitalRepo,
		deptRepo:       deptRepo,
		hospDeptRepo:   hospDeptRepo,
		medicationRepo: medicationRepo,
		templateRepo:   templateRepo,
		pharmacyRepo:   pharmacyRepo,
		profileRepo:    profileRepo,
		cache:          gocache.New(cacheTTL, cacheCleanup),
	}
}

func requireAdmin(viewer model.Viewer) error {
	if !viewer.IsAdmin() {
		return apperrors.AccessDenied("only administrators may manage catalog entries")
	}
	return nil
}

// requireRole checks that a referenced profile exists and carries the
// expected role, e.g. a hospital's lab user must be a lab technician.
func (s *Service) requireRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	profile, err := s.profileRepo.Get(ctx, id)
	if err != nil {
		return apperrors.InvalidInputf("profile %s not found", id)
	}
	if profile.Role != role {
		return apperrors.InvalidInputf("profile %s is not a %s", id, role)
	}
	return nil
}

// --- Insurance plans ---

func (s *Service) CreateInsurance(ctx context.Context, viewer model.Viewer, req *model.CreateInsuranceRequest) (*model.Insurance, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	insurance := &model.Insurance{
		Base:               model.Base{ID: uuid.New()},
		Name:               req.Name,
		CoveragePercentage: req.CoveragePercentage,
		Description:        req.Description,
	}
	if err := s.insuranceRepo.Create(ctx, insurance); err != nil {
		return nil, err
	}
	s.cache.Delete(cacheKeyInsurances)
	return insurance, nil
}

func (s *Service) GetInsurance(ctx context.Context, id uuid.UUID) (*model.Insurance, error) {
	return s.insuranceRepo.Get(ctx, id)
}

func (s *Service) ListInsurances(ctx context.Context) ([]*model.Insurance, error) {
	if cached, ok := s.cache.Get(cacheKeyInsurances); ok {
		return cached.([]*model.Insurance), nil
	}
	insurances, err := s.insuranceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKeyInsurances, insurances, gocache.DefaultExpiration)
	return insurances, nil
}

func (s *Service) UpdateInsurance(ctx context.Context, viewer model.Viewer, id uuid.UUID, req *model.CreateInsuranceRequest) (*model.Insurance, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	insurance, err := s.insuranceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	insurance.Name = req.Name
	insurance.CoveragePercentage = req.CoveragePercentage
	insurance.Description = req.Description
	if err := s.insuranceRepo.Update(ctx, insurance); err != nil {
		return nil, err
	}
	s.cache.Delete(cacheKeyInsurances)
	return insurance, nil
}

func (s *Service) DeleteInsurance(ctx context.Context, viewer model.Viewer, id uuid.UUID) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	if err := s.insuranceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(cacheKeyInsurances)
	return nil
}

// --- Hospitals ---

func (s *Service) CreateHospital(ctx context.Context, viewer model.Viewer, req *model.CreateHospitalRequest) (*model.Hospital, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	if req.LabUserID != nil {
		if err := s.requireRole(ctx, *req.LabUserID, model.RoleLabTechnician); err != nil {
			return nil, err
		}
	}
	hospital := &model.Hospital{
		Base:            model.Base{ID: uuid.New()},
		Name:            req.Name,
		Location:        req.Location,
		Phone:           req.Phone,
		Email:           req.Email,
		Description:     req.Description,
		ConsultationFee: req.ConsultationFee,
		LabUserID:       req.LabUserID,
	}
	if err := s.hospitalRepo.Create(ctx, hospital); err != nil {
		return nil, err
	}
	return hospital, nil
}

func (s *Service) GetHospital(ctx context.Context, id uuid.UUID) (*model.Hospital, error) {
	return s.hospitalRepo.Get(ctx, id)
}

func (s *Service) ListHospitals(ctx context.Context) ([]*model.Hospital, error) {
	return s.hospitalRepo.List(ctx)
}

func (s *Service) UpdateHospital(ctx context.Context, viewer model.Viewer, id uuid.UUID, req *model.UpdateHospitalRequest) (*model.Hospital, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	hospital, err := s.hospitalRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		hospital.Name = *req.Name
	}
	if req.Location != nil {
		hospital.Location = *req.Location
	}
	if req.Phone != nil {
		hospital.Phone = *req.Phone
	}
	if req.Email != nil {
		hospital.Email = *req.Email
	}
	if req.Description != nil {
		hospital.Description = *req.Description
	}
	if req.ConsultationFee != nil {
		hospital.ConsultationFee = *req.ConsultationFee
	}
	if req.LabUserID != nil {
		if err := s.requireRole(ctx, *req.LabUserID, model.RoleLabTechnician); err != nil {
			return nil, err
		}
		hospital.LabUserID = req.LabUserID
	}
	if err := s.hospitalRepo.Update(ctx, hospital); err != nil {
		return nil, err
	}
	return hospital, nil
}

func (s *Service) DeleteHospital(ctx context.Context, viewer model.Viewer, id uuid.UUID) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	return s.hospitalRepo.Delete(ctx, id)
}

// --- Departments ---

func (s *Service) CreateDepartment(ctx context.Context, viewer model.Viewer, req *model.CreateDepartmentRequest) (*model.Department, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	department := &model.Department{
		Base:        model.Base{ID: uuid.New()},
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.deptRepo.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *Service) GetDepartment(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	return s.deptRepo.Get(ctx, id)
}

func (s *Service) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	return s.deptRepo.List(ctx)
}

func (s *Service) UpdateDepartment(ctx context.Context, viewer model.Viewer, id uuid.UUID, req *model.CreateDepartmentRequest) (*model.Department, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	department, err := s.deptRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	department.Name = req.Name
	department.Description = req.Description
	if err := s.deptRepo.Update(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *Service) DeleteDepartment(ctx context.Context, viewer model.Viewer, id uuid.UUID) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	return s.deptRepo.Delete(ctx, id)
}

// --- Hospital departments ---

func (s *Service) CreateHospitalDepartment(ctx context.Context, viewer model.Viewer, req *model.CreateHospitalDepartmentRequest) (*model.HospitalDepartment, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	if _, err := s.hospitalRepo.Get(ctx, req.HospitalID); err != nil {
		return nil, apperrors.InvalidInput("hospital not found")
	}
	if _, err := s.deptRepo.Get(ctx, req.DepartmentID); err != nil {
		return nil, apperrors.InvalidInput("department not found")
	}
	hd := &model.HospitalDepartment{
		Base:            model.Base{ID: uuid.New()},
		HospitalID:      req.HospitalID,
		DepartmentID:    req.DepartmentID,
		ConsultationFee: req.ConsultationFee,
	}
	if err := s.hospDeptRepo.Create(ctx, hd); err != nil {
		return nil, err
	}
	return hd, nil
}

func (s *Service) ListHospitalDepartments(ctx context.Context, hospitalID uuid.UUID) ([]*model.HospitalDepartment, error) {
	return s.hospDeptRepo.ListByHospital(ctx, hospitalID)
}

func (s *Service) DeleteHospitalDepartment(ctx context.Context, viewer model.Viewer, id uuid.UUID) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	return s.hospDeptRepo.Delete(ctx, id)
}

// --- Medications ---

func (s *Service) CreateMedication(ctx context.Context, viewer model.Viewer, req *model.CreateMedicationRequest) (*model.Medication, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	medication := &model.Medication{
		Base:                 model.Base{ID: uuid.New()},
		Name:                 req.Name,
		Description:          req.Description,
		Category:             req.Category,
		UnitPrice:            req.UnitPrice,
		StockQuantity:        req.StockQuantity,
		RequiresPrescription: req.RequiresPrescription,
	}
	if err := s.medicationRepo.Create(ctx, medication); err != nil {
		return nil, err
	}
	return medication, nil
}

func (s *Service) GetMedication(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	return s.medicationRepo.Get(ctx, id)
}

func (s *Service) ListMedications(ctx context.Context) ([]*model.Medication, error) {
	return s.medicationRepo.List(ctx)
}

func (s *Service) UpdateMedication(ctx context.Context, viewer model.Viewer, id uuid.UUID, req *model.CreateMedicationRequest) (*model.Medication, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	medication, err := s.medicationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	medication.Name = req.Name
	medication.Description = req.Description
	medication.Category = req.Category
	medication.UnitPrice = req.UnitPrice
	medication.StockQuantity = req.StockQuantity
	medication.RequiresPrescription = req.RequiresPrescription
	if err := s.medicationRepo.Update(ctx, medication); err != nil {
		return nil, err
	}
	return medication, nil
}

func (s *Service) DeleteMedication(ctx context.Context, viewer model.Viewer, id uuid.UUID) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	return s.medicationRepo.Delete(ctx, id)
}

// --- Lab test templates ---

func (s *Service) CreateLabTestTemplate(ctx context.Context, viewer model.Viewer, req *model.CreateLabTestTemplateRequest) (*model.LabTestTemplate, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	template := &model.LabTestTemplate{
		Base:        model.Base{ID: uuid.New()},
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	}
	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, err
	}
	s.cache.Delete(cacheKeyTemplates)
	return template, nil
}

func (s *Service) GetLabTestTemplate(ctx context.Context, id uuid.UUID) (*model.LabTestTemplate, error) {
	return s.templateRepo.Get(ctx, id)
}

func (s *Service) ListLabTestTemplates(ctx context.Context) ([]*model.LabTestTemplate, error) {
	if cached, ok := s.cache.Get(cacheKeyTemplates); ok {
		return cached.([]*model.LabTestTemplate), nil
	}
	templates, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKeyTemplates, templates, gocache.DefaultExpiration)
	return templates, nil
}

func (s *Service) UpdateLabTestTemplate(ctx context.Context, viewer model.Viewer, id uuid.UUID, req *model.CreateLabTestTemplateRequest) (*model.LabTestTemplate, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	template, err := s.templateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	template.Name = req.Name
	template.Description = req.Description
	template.Price = req.Price
	template.Category = req.Category
	if err := s.templateRepo.Update(ctx, template); err != nil {
		return nil, err
	}
	s.cache.Delete(cacheKeyTemplates)
	return template, nil
}

func (s *Service) DeleteLabTestTemplate(ctx context.Context, viewer model.Viewer, id uuid.UUID) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(cacheKeyTemplates)
	return nil
}

// --- Pharmacies ---

func (s *Service) CreatePharmacy(ctx context.Context, viewer model.Viewer, req *model.CreatePharmacyRequest) (*model.Pharmacy, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	if req.PharmacistID != nil {
		if err := s.requireRole(ctx, *req.PharmacistID, model.RolePharmacist); err != nil {
			return nil, err
		}
	}
	pharmacy := &model.Pharmacy{
		Base:         model.Base{ID: uuid.New()},
		Name:         req.Name,
		Location:     req.Location,
		Phone:        req.Phone,
		Email:        req.Email,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		PharmacistID: req.PharmacistID,
	}
	if err := s.pharmacyRepo.Create(ctx, pharmacy); err != nil {
		return nil, err
	}
	return pharmacy, nil
}

func (s *Service) GetPharmacy(ctx context.Context, id uuid.UUID) (*model.Pharmacy, error) {
	return s.pharmacyRepo.Get(ctx, id)
}

func (s *Service) ListPharmacies(ctx context.Context) ([]*model.Pharmacy, error) {
	return s.pharmacyRepo.List(ctx)
}

func (s *Service) UpdatePharmacy(ctx context.Context, viewer model.Viewer, id uuid.UUID, req *model.CreatePharmacyRequest) (*model.Pharmacy, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	pharmacy, err := s.pharmacyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.PharmacistID != nil {
		if err := s.requireRole(ctx, *req.PharmacistID, model.RolePharmacist); err != nil {
			return nil, err
		}
	}
	pharmacy.Name = req.Name
	pharmacy.Location = req.Location
	pharmacy.Phone = req.Phone
	pharmacy.Email = req.Email
	pharmacy.Latitude = req.Latitude
	pharmacy.Longitude = req.Longitude
	pharmacy.PharmacistID = req.PharmacistID
	if err := s.pharmacyRepo.Update(ctx, pharmacy); err != nil {
		return nil, err
	}
	return pharmacy, nil
}

func (s *Service) DeletePharmacy(ctx context.Context, viewer model.Viewer, id uuid.UUID) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	return s.pharmacyRepo.Delete(ctx, id)
}
