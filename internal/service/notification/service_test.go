package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/hms-api/internal/model"
	apperrors "github.com/caresync/hms-api/pkg/errors"
	"github.com/caresync/hms-api/pkg/event"
)

type fakeNotificationRepo struct {
	notifications map[uuid.UUID]*model.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uuid.UUID]*model.Notification)}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	r.notifications[n.ID] = n
	return nil
}

func (r *fakeNotificationRepo) Get(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return nil, apperrors.NotFound("notification")
	}
	return n, nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	var out []*model.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	n, ok := r.notifications[id]
	if !ok {
		return apperrors.NotFound("notification")
	}
	n.IsRead = true
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) only(t *testing.T) *model.Notification {
	t.Helper()
	require.Len(t, r.notifications, 1)
	for _, n := range r.notifications {
		return n
	}
	return nil
}

func TestHandleAppointmentCreated(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewService(repo)

	doctorUser := uuid.New()
	apptID := uuid.New()
	err := svc.HandleEvent(context.Background(), event.Event{
		Type: event.TypeAppointmentCreated,
		Payload: event.AppointmentCreated{
			AppointmentID: apptID,
			PatientID:     uuid.New(),
			DoctorUserID:  doctorUser,
			PatientName:   "Pat Doe",
			Date:          "2026-09-01",
			Time:          "09:30:00",
		},
	})
	require.NoError(t, err)

	n := repo.only(t)
	// the doctor, not the patient, is told about the new request
	assert.Equal(t, doctorUser, n.UserID)
	assert.Equal(t, "New appointment request", n.Title)
	assert.Contains(t, n.Message, "Pat Doe")
	require.NotNil(t, n.ReferenceID)
	assert.Equal(t, apptID, *n.ReferenceID)
}

func TestHandleAppointmentDecided(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewService(repo)

	patient := uuid.New()
	err := svc.HandleEvent(context.Background(), event.Event{
		Type: event.TypeAppointmentDecided,
		Payload: event.AppointmentDecided{
			AppointmentID:   uuid.New(),
			PatientID:       patient,
			Status:          "rejected",
			RejectionReason: "fully booked",
			Date:            "2026-09-01",
			Time:            "09:30:00",
		},
	})
	require.NoError(t, err)

	n := repo.only(t)
	assert.Equal(t, patient, n.UserID)
	assert.Contains(t, n.Message, "rejected")
	assert.Contains(t, n.Message, "fully booked")
}

func TestHandleLabResultRecorded(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewService(repo)

	patient := uuid.New()
	err := svc.HandleEvent(context.Background(), event.Event{
		Type: event.TypeLabResultRecorded,
		Payload: event.LabResultRecorded{
			RequestID: uuid.New(),
			ResultID:  uuid.New(),
			PatientID: patient,
			TestName:  "Complete Blood Count",
		},
	})
	require.NoError(t, err)

	n := repo.only(t)
	assert.Equal(t, patient, n.UserID)
	assert.Contains(t, n.Message, "Complete Blood Count")
}

func TestHandlePrescriptionDispatched(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewService(repo)

	patient := uuid.New()
	err := svc.HandleEvent(context.Background(), event.Event{
		Type: event.TypePrescriptionDispatched,
		Payload: event.PrescriptionDispatched{
			PrescriptionID:    uuid.New(),
			PharmacyRequestID: uuid.New(),
			PatientID:         patient,
			PharmacyID:        uuid.New(),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, patient, repo.only(t).UserID)
}

func TestMarkReadOwnershipOnly(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewService(repo)

	owner := uuid.New()
	n := &model.Notification{Base: model.Base{ID: uuid.New()}, UserID: owner, Title: "t"}
	require.NoError(t, repo.Create(context.Background(), n))

	// even an administrator cannot mark someone else's notification
	err := svc.MarkRead(context.Background(), model.Viewer{ProfileID: uuid.New(), Role: model.RoleAdmin}, n.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAccessDenied))

	require.NoError(t, svc.MarkRead(context.Background(), model.Viewer{ProfileID: owner, Role: model.RolePatient}, n.ID))
	assert.True(t, n.IsRead)
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewService(repo)

	owner := uuid.New()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(context.Background(), &model.Notification{
			Base:   model.Base{ID: uuid.New()},
			UserID: owner,
		}))
	}
	require.NoError(t, repo.Create(context.Background(), &model.Notification{
		Base:   model.Base{ID: uuid.New()},
		UserID: uuid.New(),
	}))

	viewer := model.Viewer{ProfileID: owner, Role: model.RolePatient}
	count, err := svc.UnreadCount(context.Background(), viewer)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, svc.MarkAllRead(context.Background(), viewer))
	count, err = svc.UnreadCount(context.Background(), viewer)
	require.NoError(t, err)
	assert.Zero(t, count)

	mine, err := svc.List(context.Background(), viewer)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}
