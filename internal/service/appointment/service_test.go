package appointment

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

func TestAllSlots(t *testing.T) {
	slots := allSlots()

	assert.Len(t, slots, 60)
	assert.Equal(t, "08:00:00", slots[0])
	assert.Equal(t, "17:50:00", slots[len(slots)-1])
	assert.Contains(t, slots, "12:30:00")
}

func TestValidSlot(t *testing.T) {
	assert.True(t, ValidSlot("08:00:00"))
	assert.True(t, ValidSlot("17:50:00"))
	assert.False(t, ValidSlot("18:00:00"))
	assert.False(t, ValidSlot("07:50:00"))
	assert.False(t, ValidSlot("08:05:00"))
	assert.False(t, ValidSlot("08:00"))
}

type fixture struct {
	svc      *Service
	apptRepo *fakeAppointmentRepo
	docRepo  *fakeDoctorRepo
	profRepo *fakeProfileRepo
	emitter  *recordingEmitter

	doctor  *model.Doctor
	patient *model.Profile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	apptRepo := newFakeAppointmentRepo()
	docRepo := newFakeDoctorRepo()
	profRepo := newFakeProfileRepo()
	emitter := &recordingEmitter{}

	doctor := &model.Doctor{
		Base:         model.Base{ID: uuid.New()},
		UserID:       uuid.New(),
		HospitalID:   uuid.New(),
		DepartmentID: uuid.New(),
	}
	docRepo.add(doctor)

	patient := &model.Profile{
		Base:     model.Base{ID: uuid.New()},
		Email:    "pat@example.com",
		FullName: "Pat Doe",
		Role:     model.RolePatient,
	}
	profRepo.Create(context.Background(), patient)

	return &fixture{
		svc:      NewService(apptRepo, docRepo, profRepo, emitter),
		apptRepo: apptRepo,
		docRepo:  docRepo,
		profRepo: profRepo,
		emitter:  emitter,
		doctor:   doctor,
		patient:  patient,
	}
}

func (f *fixture) patientViewer() model.Viewer {
	return model.Viewer{ProfileID: f.patient.ID, Role: model.RolePatient}
}

func (f *fixture) doctorViewer() model.Viewer {
	return model.Viewer{ProfileID: f.doctor.UserID, Role: model.RoleDoctor}
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)

	appt, err := f.svc.Create(context.Background(), f.patientViewer(), &model.CreateAppointmentRequest{
		DoctorID:        f.doctor.ID,
		AppointmentDate: "2026-09-01",
		AppointmentTime: "09:30:00",
		Reason:          "checkup",
	})
	require.NoError(t, err)

	assert.Equal(t, f.patient.ID, appt.PatientID)
	assert.Equal(t, f.doctor.HospitalID, appt.HospitalID)
	assert.Equal(t, f.doctor.DepartmentID, appt.DepartmentID)
	assert.Equal(t, model.AppointmentStatusPending, appt.Status)

	require.Len(t, f.emitter.events, 1)
	assert.Equal(t, event.TypeAppointmentCreated, f.emitter.events[0].Type)
	payload := f.emitter.events[0].Payload.(event.AppointmentCreated)
	assert.Equal(t, f.doctor.UserID, payload.DoctorUserID)
	assert.Equal(t, "Pat Doe", payload.PatientName)
}

func TestCreateAppointmentNonPatientDenied(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.doctorViewer(), &model.CreateAppointmentRequest{
		DoctorID:        f.doctor.ID,
		AppointmentDate: "2026-09-01",
		AppointmentTime: "09:30:00",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))
}

func TestCreateAppointmentBadDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.patientViewer(), &model.CreateAppointmentRequest{
		DoctorID:        f.doctor.ID,
		AppointmentDate: "01-09-2026",
		AppointmentTime: "09:30:00",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}

func TestCreateAppointmentSlotConflict(t *testing.T) {
	f := newFixture(t)
	f.apptRepo.createErr = apperrors.Conflict("this time slot is already booked", nil)

	_, err := f.svc.Create(context.Background(), f.patientViewer(), &model.CreateAppointmentRequest{
		DoctorID:        f.doctor.ID,
		AppointmentDate: "2026-09-01",
		AppointmentTime: "09:30:00",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Empty(t, f.emitter.events)
}

func (f *fixture) seedAppointment(t *testing.T, status model.AppointmentStatus) *model.Appointment {
	t.Helper()
	appt := &model.Appointment{
		Base:            model.Base{ID: uuid.New()},
		PatientID:       f.patient.ID,
		DoctorID:        f.doctor.ID,
		HospitalID:      f.doctor.HospitalID,
		DepartmentID:    f.doctor.DepartmentID,
		AppointmentDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "09:30:00",
		Status:          status,
	}
	require.NoError(t, f.apptRepo.Create(context.Background(), appt))
	return appt
}

func TestDecideApprove(t *testing.T) {
	f := newFixture(t)
	appt := f.seedAppointment(t, model.AppointmentStatusPending)

	decided, err := f.svc.Decide(context.Background(), f.doctorViewer(), appt.ID, &model.DecideAppointmentRequest{
		Status: model.AppointmentStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusApproved, decided.Status)

	require.Len(t, f.emitter.events, 1)
	assert.Equal(t, event.TypeAppointmentDecided, f.emitter.events[0].Type)
}

func TestDecideRejectRequiresReason(t *testing.T) {
	f := newFixture(t)
	appt := f.seedAppointment(t, model.AppointmentStatusPending)

	_, err := f.svc.Decide(context.Background(), f.doctorViewer(), appt.ID, &model.DecideAppointmentRequest{
		Status: model.AppointmentStatusRejected,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))

	decided, err := f.svc.Decide(context.Background(), f.doctorViewer(), appt.ID, &model.DecideAppointmentRequest{
		Status:          model.AppointmentStatusRejected,
		RejectionReason: "fully booked",
	})
	require.NoError(t, err)
	require.NotNil(t, decided.RejectionReason)
	assert.Equal(t, "fully booked", *decided.RejectionReason)
}

func TestDecideOtherDoctorDenied(t *testing.T) {
	f := newFixture(t)
	appt := f.seedAppointment(t, model.AppointmentStatusPending)

	other := &model.Doctor{Base: model.Base{ID: uuid.New()}, UserID: uuid.New()}
	f.docRepo.add(other)

	_, err := f.svc.Decide(context.Background(), model.Viewer{ProfileID: other.UserID, Role: model.RoleDoctor}, appt.ID, &model.DecideAppointmentRequest{
		Status: model.AppointmentStatusApproved,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))
}

func TestDecideNonPendingInvalidState(t *testing.T) {
	f := newFixture(t)
	appt := f.seedAppointment(t, model.AppointmentStatusCompleted)

	_, err := f.svc.Decide(context.Background(), f.doctorViewer(), appt.ID, &model.DecideAppointmentRequest{
		Status: model.AppointmentStatusApproved,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
}

func TestCancel(t *testing.T) {
	f := newFixture(t)

	for _, status := range []model.AppointmentStatus{model.AppointmentStatusPending, model.AppointmentStatusApproved} {
		appt := f.seedAppointment(t, status)
		cancelled, err := f.svc.Cancel(context.Background(), f.patientViewer(), appt.ID)
		require.NoError(t, err)
		assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
	}
}

func TestCancelCompletedInvalidState(t *testing.T) {
	f := newFixture(t)
	appt := f.seedAppointment(t, model.AppointmentStatusCompleted)

	_, err := f.svc.Cancel(context.Background(), f.patientViewer(), appt.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
}

func TestCancelOtherPatientDenied(t *testing.T) {
	f := newFixture(t)
	appt := f.seedAppointment(t, model.AppointmentStatusPending)

	_, err := f.svc.Cancel(context.Background(), model.Viewer{ProfileID: uuid.New(), Role: model.RolePatient}, appt.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))
}

func TestAvailableSlots(t *testing.T) {
	f := newFixture(t)
	f.apptRepo.booked = []string{"08:00:00", "09:30:00"}

	slots, err := f.svc.AvailableSlots(context.Background(), f.doctor.ID, "2026-09-01")
	require.NoError(t, err)

	assert.Len(t, slots, 58)
	assert.NotContains(t, slots, "08:00:00")
	assert.NotContains(t, slots, "09:30:00")
	assert.Contains(t, slots, "08:10:00")
}

func TestAvailableSlotsUnknownDoctor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AvailableSlots(context.Background(), uuid.New(), "2026-09-01")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListScopedByRole(t *testing.T) {
	f := newFixture(t)
	f.seedAppointment(t, model.AppointmentStatusPending)

	otherPatient := uuid.New()
	other := &model.Appointment{
		Base:      model.Base{ID: uuid.New()},
		PatientID: otherPatient,
		DoctorID:  uuid.New(),
	}
	require.NoError(t, f.apptRepo.Create(context.Background(), other))

	mine, err := f.svc.List(context.Background(), f.patientViewer(), nil)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := f.svc.List(context.Background(), model.Viewer{ProfileID: uuid.New(), Role: model.RoleAdmin}, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// A doctor account with no doctor record sees an empty schedule.
	none, err := f.svc.List(context.Background(), model.Viewer{ProfileID: uuid.New(), Role: model.RoleDoctor}, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
