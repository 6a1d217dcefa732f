package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/hms-api/internal/model"
	apperrors "github.com/caresync/hms-api/pkg/errors"
)

type fakeInsuranceRepo struct {
	insurances map[uuid.UUID]*model.Insurance
	lists      int
}

func (r *fakeInsuranceRepo) Create(_ context.Context, ins *model.Insurance) error {
	for _, existing := range r.insurances {
		if existing.Name == ins.Name {
			return apperrors.Conflict("an insurance with this name already exists", nil)
		}
	}
	r.insurances[ins.ID] = ins
	return nil
}

func (r *fakeInsuranceRepo) Get(_ context.Context, id uuid.UUID) (*model.Insurance, error) {
	ins, ok := r.insurances[id]
	if !ok {
		return nil, apperrors.NotFound("insurance")
	}
	return ins, nil
}

func (r *fakeInsuranceRepo) Update(_ context.Context, ins *model.Insurance) error {
	r.insurances[ins.ID] = ins
	return nil
}

func (r *fakeInsuranceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.insurances, id)
	return nil
}

func (r *fakeInsuranceRepo) List(context.Context) ([]*model.Insurance, error) {
	r.lists++
	out := make([]*model.Insurance, 0, len(r.insurances))
	for _, ins := range r.insurances {
		out = append(out, ins)
	}
	return out, nil
}

type fakeHospitalRepo struct {
	hospitals map[uuid.UUID]*model.Hospital
}

func (r *fakeHospitalRepo) Create(_ context.Context, h *model.Hospital) error {
	r.hospitals[h.ID] = h
	return nil
}

func (r *fakeHospitalRepo) Get(_ context.Context, id uuid.UUID) (*model.Hospital, error) {
	h, ok := r.hospitals[id]
	if !ok {
		return nil, apperrors.NotFound("hospital")
	}
	return h, nil
}

func (r *fakeHospitalRepo) Update(_ context.Context, h *model.Hospital) error {
	r.hospitals[h.ID] = h
	return nil
}

func (r *fakeHospitalRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.hospitals, id)
	return nil
}

func (r *fakeHospitalRepo) List(context.Context) ([]*model.Hospital, error) { return nil, nil }

func (r *fakeHospitalRepo) ListByLabUser(context.Context, uuid.UUID) ([]*model.Hospital, error) {
	return nil, nil
}

type fakeDepartmentRepo struct {
	departments map[uuid.UUID]*model.Department
}

func (r *fakeDepartmentRepo) Create(_ context.Context, d *model.Department) error {
	r.departments[d.ID] = d
	return nil
}

func (r *fakeDepartmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Department, error) {
	d, ok := r.departments[id]
	if !ok {
		return nil, apperrors.NotFound("department")
	}
	return d, nil
}

func (r *fakeDepartmentRepo) Update(_ context.Context, d *model.Department) error {
	r.departments[d.ID] = d
	return nil
}

func (r *fakeDepartmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.departments, id)
	return nil
}

func (r *fakeDepartmentRepo) List(context.Context) ([]*model.Department, error) { return nil, nil }

type fakeHospDeptRepo struct {
	links map[uuid.UUID]*model.HospitalDepartment
}

func (r *fakeHospDeptRepo) Create(_ context.Context, hd *model.HospitalDepartment) error {
	r.links[hd.ID] = hd
	return nil
}

func (r *fakeHospDeptRepo) Get(_ context.Context, id uuid.UUID) (*model.HospitalDepartment, error) {
	hd, ok := r.links[id]
	if !ok {
		return nil, apperrors.NotFound("hospital department")
	}
	return hd, nil
}

func (r *fakeHospDeptRepo) Update(_ context.Context, hd *model.HospitalDepartment) error {
	r.links[hd.ID] = hd
	return nil
}

func (r *fakeHospDeptRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.links, id)
	return nil
}

func (r *fakeHospDeptRepo) ListByHospital(context.Context, uuid.UUID) ([]*model.HospitalDepartment, error) {
	return nil, nil
}

type fakeMedicationRepo struct {
	medications map[uuid.UUID]*model.Medication
}

func (r *fakeMedicationRepo) Create(_ context.Context, m *model.Medication) error {
	for _, existing := range r.medications {
		if existing.Name == m.Name {
			return apperrors.Conflict("a medication with this name already exists", nil)
		}
	}
	r.medications[m.ID] = m
	return nil
}

func (r *fakeMedicationRepo) Get(_ context.Context, id uuid.UUID) (*model.Medication, error) {
	m, ok := r.medications[id]
	if !ok {
		return nil, apperrors.NotFound("medication")
	}
	return m, nil
}

func (r *fakeMedicationRepo) Update(context.Context, *model.Medication) error { return nil }
func (r *fakeMedicationRepo) Delete(context.Context, uuid.UUID) error         { return nil }
func (r *fakeMedicationRepo) List(context.Context) ([]*model.Medication, error) {
	return nil, nil
}

type fakeTemplateRepo struct {
	templates map[uuid.UUID]*model.LabTestTemplate
	lists     int
}

func (r *fakeTemplateRepo) Create(_ context.Context, tmpl *model.LabTestTemplate) error {
	for _, existing := range r.templates {
		if existing.Name == tmpl.Name {
			return apperrors.Conflict("a lab test template with this name already exists", nil)
		}
	}
	r.templates[tmpl.ID] = tmpl
	return nil
}

func (r *fakeTemplateRepo) Get(_ context.Context, id uuid.UUID) (*model.LabTestTemplate, error) {
	tmpl, ok := r.templates[id]
	if !ok {
		return nil, apperrors.NotFound("lab test template")
	}
	return tmpl, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, tmpl *model.LabTestTemplate) error {
	r.templates[tmpl.ID] = tmpl
	return nil
}

func (r *fakeTemplateRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.templates, id)
	return nil
}

func (r *fakeTemplateRepo) List(context.Context) ([]*model.LabTestTemplate, error) {
	r.lists++
	out := make([]*model.LabTestTemplate, 0, len(r.templates))
	for _, tmpl := range r.templates {
		out = append(out, tmpl)
	}
	return out, nil
}

type fakePharmacyRepo struct {
	pharmacies map[uuid.UUID]*model.Pharmacy
}

func (r *fakePharmacyRepo) Create(_ context.Context, p *model.Pharmacy) error {
	r.pharmacies[p.ID] = p
	return nil
}

func (r *fakePharmacyRepo) Get(_ context.Context, id uuid.UUID) (*model.Pharmacy, error) {
	p, ok := r.pharmacies[id]
	if !ok {
		return nil, apperrors.NotFound("pharmacy")
	}
	return p, nil
}

func (r *fakePharmacyRepo) Update(_ context.Context, p *model.Pharmacy) error {
	r.pharmacies[p.ID] = p
	return nil
}

func (r *fakePharmacyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.pharmacies, id)
	return nil
}

func (r *fakePharmacyRepo) List(context.Context) ([]*model.Pharmacy, error) { return nil, nil }

func (r *fakePharmacyRepo) ListByPharmacist(context.Context, uuid.UUID) ([]*model.Pharmacy, error) {
	return nil, nil
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

type fixture struct {
	svc       *Service
	insRepo   *fakeInsuranceRepo
	tmplRepo  *fakeTemplateRepo
	hospitals *fakeHospitalRepo
	depts     *fakeDepartmentRepo
	profiles  *fakeProfileRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	insRepo := &fakeInsuranceRepo{insurances: make(map[uuid.UUID]*model.Insurance)}
	tmplRepo := &fakeTemplateRepo{templates: make(map[uuid.UUID]*model.LabTestTemplate)}
	hospitals := &fakeHospitalRepo{hospitals: make(map[uuid.UUID]*model.Hospital)}
	depts := &fakeDepartmentRepo{departments: make(map[uuid.UUID]*model.Department)}
	profiles := &fakeProfileRepo{profiles: make(map[uuid.UUID]*model.Profile)}

	svc := NewService(
		insRepo,
		hospitals,
		depts,
		&fakeHospDeptRepo{links: make(map[uuid.UUID]*model.HospitalDepartment)},
		&fakeMedicationRepo{medications: make(map[uuid.UUID]*model.Medication)},
		tmplRepo,
		&fakePharmacyRepo{pharmacies: make(map[uuid.UUID]*model.Pharmacy)},
		profiles,
	)

	return &fixture{
		svc:       svc,
		insRepo:   insRepo,
		tmplRepo:  tmplRepo,
		hospitals: hospitals,
		depts:     depts,
		profiles:  profiles,
	}
}

func adminViewer() model.Viewer {
	return model.Viewer{ProfileID: uuid.New(), Role: model.RoleAdmin}
}

func patientViewer() model.Viewer {
	return model.Viewer{ProfileID: uuid.New(), Role: model.RolePatient}
}

func TestWritesRequireAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateInsurance(context.Background(), patientViewer(), &model.CreateInsuranceRequest{Name: "GoldCare"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))

	_, err = f.svc.CreateHospital(context.Background(), patientViewer(), &model.CreateHospitalRequest{Name: "General"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))

	err = f.svc.DeleteDepartment(context.Background(), patientViewer(), uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))
}

func TestInsuranceListCacheInvalidatedByWrites(t *testing.T) {
	f := newFixture(t)
	admin := adminViewer()

	_, err := f.svc.CreateInsurance(context.Background(), admin, &model.CreateInsuranceRequest{
		Name:               "GoldCare",
		CoveragePercentage: 30,
	})
	require.NoError(t, err)

	// two reads, one repository hit
	first, err := f.svc.ListInsurances(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 1)
	_, err = f.svc.ListInsurances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.insRepo.lists)

	// a write flushes the cache
	_, err = f.svc.CreateInsurance(context.Background(), admin, &model.CreateInsuranceRequest{Name: "SilverCare"})
	require.NoError(t, err)

	second, err := f.svc.ListInsurances(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Equal(t, 2, f.insRepo.lists)
}

func TestLabTestTemplateListCached(t *testing.T) {
	f := newFixture(t)
	admin := adminViewer()

	tmpl, err := f.svc.CreateLabTestTemplate(context.Background(), admin, &model.CreateLabTestTemplateRequest{
		Name:  "Complete Blood Count",
		Price: 45,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := f.svc.ListLabTestTemplates(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, f.tmplRepo.lists)

	require.NoError(t, f.svc.DeleteLabTestTemplate(context.Background(), admin, tmpl.ID))
	out, err := f.svc.ListLabTestTemplates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 2, f.tmplRepo.lists)
}

func TestDuplicateCatalogNamesConflict(t *testing.T) {
	f := newFixture(t)
	admin := adminViewer()

	_, err := f.svc.CreateMedication(context.Background(), admin, &model.CreateMedicationRequest{Name: "Aspirin", UnitPrice: 2.5})
	require.NoError(t, err)
	_, err = f.svc.CreateMedication(context.Background(), admin, &model.CreateMedicationRequest{Name: "Aspirin", UnitPrice: 3})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = f.svc.CreateLabTestTemplate(context.Background(), admin, &model.CreateLabTestTemplateRequest{Name: "Complete Blood Count", Price: 45})
	require.NoError(t, err)
	_, err = f.svc.CreateLabTestTemplate(context.Background(), admin, &model.CreateLabTestTemplateRequest{Name: "Complete Blood Count", Price: 50})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = f.svc.CreateInsurance(context.Background(), admin, &model.CreateInsuranceRequest{Name: "GoldCare"})
	require.NoError(t, err)
	_, err = f.svc.CreateInsurance(context.Background(), admin, &model.CreateInsuranceRequest{Name: "GoldCare"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestCreateHospitalValidatesLabUser(t *testing.T) {
	f := newFixture(t)
	admin := adminViewer()

	nonTech := &model.Profile{Base: model.Base{ID: uuid.New()}, Role: model.RoleNurse}
	tech := &model.Profile{Base: model.Base{ID: uuid.New()}, Role: model.RoleLabTechnician}
	f.profiles.profiles[nonTech.ID] = nonTech
	f.profiles.profiles[tech.ID] = tech

	_, err := f.svc.CreateHospital(context.Background(), admin, &model.CreateHospitalRequest{
		Name:      "General",
		LabUserID: &nonTech.ID,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))

	missing := uuid.New()
	_, err = f.svc.CreateHospital(context.Background(), admin, &model.CreateHospitalRequest{
		Name:      "General",
		LabUserID: &missing,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))

	hospital, err := f.svc.CreateHospital(context.Background(), admin, &model.CreateHospitalRequest{
		Name:      "General",
		LabUserID: &tech.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, hospital.LabUserID)
	assert.Equal(t, tech.ID, *hospital.LabUserID)
}

func TestCreatePharmacyValidatesPharmacist(t *testing.T) {
	f := newFixture(t)
	admin := adminViewer()

	doctor := &model.Profile{Base: model.Base{ID: uuid.New()}, Role: model.RoleDoctor}
	f.profiles.profiles[doctor.ID] = doctor

	_, err := f.svc.CreatePharmacy(context.Background(), admin, &model.CreatePharmacyRequest{
		Name:         "Central Pharmacy",
		PharmacistID: &doctor.ID,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}

func TestCreateHospitalDepartmentValidatesReferences(t *testing.T) {
	f := newFixture(t)
	admin := adminViewer()

	hospital := &model.Hospital{Base: model.Base{ID: uuid.New()}, Name: "General"}
	department := &model.Department{Base: model.Base{ID: uuid.New()}, Name: "Cardiology"}
	f.hospitals.hospitals[hospital.ID] = hospital
	f.depts.departments[department.ID] = department

	_, err := f.svc.CreateHospitalDepartment(context.Background(), admin, &model.CreateHospitalDepartmentRequest{
		HospitalID:   uuid.New(),
		DepartmentID: department.ID,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))

	_, err = f.svc.CreateHospitalDepartment(context.Background(), admin, &model.CreateHospitalDepartmentRequest{
		HospitalID:   hospital.ID,
		DepartmentID: uuid.New(),
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))

	hd, err := f.svc.CreateHospitalDepartment(context.Background(), admin, &model.CreateHospitalDepartmentRequest{
		HospitalID:   hospital.ID,
		DepartmentID: department.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, hospital.ID, hd.HospitalID)
	assert.Equal(t, department.ID, hd.DepartmentID)
}
