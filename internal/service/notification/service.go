package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/repository"
	apperrors "github.com/caresync/hms-api/pkg/errors"
	"github.com/caresync/hms-api/pkg/event"
)

// Service owns the notification inbox. Rows are written by the domain
// event handlers below and read back by their owning user; there is no
// push delivery.
type Service struct {
	notifRepo repository.NotificationRepository
}

func NewService(notifRepo repository.NotificationRepository) *Service {
	return &Service{notifRepo: notifRepo}
}

func (s *Service) List(ctx context.Context, viewer model.Viewer) ([]*model.Notification, error) {
	return s.notifRepo.ListByUser(ctx, viewer.ProfileID)
}

func (s *Service) UnreadCount(ctx context.Context, viewer model.Viewer) (int, error) {
	return s.notifRepo.CountUnread(ctx, viewer.ProfileID)
}

// MarkRead flips one notification. Users may only mark their own, with
// no administrator exception.
func (s *Service) MarkRead(ctx context.Context, viewer model.Viewer, id uuid.UUID) error {
	notification, err := s.notifRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if notification.UserID != viewer.ProfileID {
		return apperrors.AccessDenied("you may only mark your own notifications read")
	}
	return s.notifRepo.MarkRead(ctx, id)
}

func (s *Service) MarkAllRead(ctx context.Context, viewer model.Viewer) error {
	return s.notifRepo.MarkAllRead(ctx, viewer.ProfileID)
}

// HandleEvent turns a domain event into exactly one inbox row for the
// affected user. Registered with the dispatcher for all four event
// types.
func (s *Service) HandleEvent(ctx context.Context, evt event.Event) error {
	switch payload := evt.Payload.(type) {
	case event.AppointmentCreated:
		return s.create(ctx, payload.DoctorUserID, "New appointment request",
			fmt.Sprintf("%s requested an appointment on %s at %s", payload.PatientName, payload.Date, payload.Time),
			string(evt.Type), payload.AppointmentID)

	case event.AppointmentDecided:
		message := fmt.Sprintf("Your appointment on %s at %s was %s", payload.Date, payload.Time, payload.Status)
		if payload.RejectionReason != "" {
			message += ": " + payload.RejectionReason
		}
		return s.create(ctx, payload.PatientID, "Appointment "+payload.Status, message,
			string(evt.Type), payload.AppointmentID)

	case event.LabResultRecorded:
		return s.create(ctx, payload.PatientID, "Lab result ready",
			fmt.Sprintf("The result of your %s test is available", payload.TestName),
			string(evt.Type), payload.RequestID)

	case event.PrescriptionDispatched:
		return s.create(ctx, payload.PatientID, "Prescription sent to pharmacy",
			"Your prescription was sent to a pharmacy for fulfillment",
			string(evt.Type), payload.PrescriptionID)
	}
	return nil
}

func (s *Service) create(ctx context.Context, userID uuid.UUID, title, message, typ string, refID uuid.UUID) error {
	ref := refID
	return s.notifRepo.Create(ctx, &model.Notification{
		Base:        model.Base{ID: uuid.New()},
		UserID:      userID,
		Title:       title,
		Message:     message,
		Type:        typ,
		ReferenceID: &ref,
	})
}
