package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/hms-api/internal/model"
	apperrors "github.com/caresync/hms-api/pkg/errors"
	"github.com/caresync/hms-api/pkg/event"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	booked       []string
	createErr    error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *a
	r.appointments[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment")
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAppointmentRepo) GetDetail(ctx context.Context, id uuid.UUID) (*model.AppointmentDetail, error) {
	a, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.AppointmentDetail{Appointment: *a}, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, a *model.Appointment) error {
	if _, ok := r.appointments[a.ID]; !ok {
		return apperrors.NotFound("appointment")
	}
	cp := *a
	r.appointments[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	var out []*model.AppointmentDetail
	for _, a := range r.appointments {
		if filters.PatientID != nil && a.PatientID != *filters.PatientID {
			continue
		}
		if filters.DoctorID != nil && a.DoctorID != *filters.DoctorID {
			continue
		}
		cp := *a
		out = append(out, &model.AppointmentDetail{Appointment: cp})
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListBookedTimes(context.Context, uuid.UUID, time.Time) ([]string, error) {
	return r.booked, nil
}

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
	byUser  map[uuid.UUID]*model.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{
		doctors: make(map[uuid.UUID]*model.Doctor),
		byUser:  make(map[uuid.UUID]*model.Doctor),
	}
}

func (r *fakeDoctorRepo) add(d *model.Doctor) {
	r.doctors[d.ID] = d
	r.byUser[d.UserID] = d
}

func (r *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	r.add(d)
	return nil
}

func (r *fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("doctor")
	}
	return d, nil
}

func (r *fakeDoctorRepo) GetByUser(_ context.Context, userID uuid.UUID) (*model.Doctor, error) {
	d, ok := r.byUser[userID]
	if !ok {
		return nil, apperrors.NotFound("doctor")
	}
	return d, nil
}

func (r *fakeDoctorRepo) GetDetail(_ context.Context, id uuid.UUID) (*model.DoctorDetail, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("doctor")
	}
	return &model.DoctorDetail{Doctor: *d}, nil
}

func (r *fakeDoctorRepo) Update(_ context.Context, d *model.Doctor) error {
	r.add(d)
	return nil
}

func (r *fakeDoctorRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.doctors, id)
	return nil
}

func (r *fakeDoctorRepo) List(context.Context) ([]*model.DoctorDetail, error) {
	return nil, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*model.Profile)}
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

func (r *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	for _, p := range r.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("profile")
}

func (r *fakeProfileRepo) Update(_ context.Context, p *model.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.profiles, id)
	return nil
}

func (r *fakeProfileRepo) List(context.Context) ([]*model.Profile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) CountByRole(context.Context, model.Role) (int, error) {
	return 0, nil
}

type recordingEmitter struct {
	events []event.Event
}

func (e *recordingEmitter) Emit(_ context.Context, typ event.Type, payload interface{}) error {
	e.events = append(e.events, event.Event{ID: uuid.New(), Type: typ, Payload: payload})
	return nil
}
