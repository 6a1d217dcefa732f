package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/hms-api/internal/model"
)

// All repository interfaces in one file
type (
	ProfileRepository interface {
		Create(ctx context.Context, profile *model.Profile) error
		Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
		GetByEmail(ctx context.Context, email string) (*model.Profile, error)
		Update(ctx context.Context, profile *model.Profile) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Profile, error)
		CountByRole(ctx context.Context, role model.Role) (int, error)
	}

	TokenRepository interface {
		StoreResetToken(ctx context.Context, profileID uuid.UUID, token string, expiry time.Time) error
		ValidateResetToken(ctx context.Context, token string) (uuid.UUID, error)
		InvalidateResetToken(ctx context.Context, token string) error
	}

	InsuranceRepository interface {
		Create(ctx context.Context, insurance *model.Insurance) error
		Get(ctx context.Context, id uuid.UUID) (*model.Insurance, error)
		Update(ctx context.Context, insurance *model.Insurance) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Insurance, error)
	}

	HospitalRepository interface {
		Create(ctx context.Context, hospital *model.Hospital) error
		Get(ctx context.Context, id uuid.UUID) (*model.Hospital, error)
		Update(ctx context.Context, hospital *model.Hospital) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Hospital, error)
		ListByLabUser(ctx context.Context, labUserID uuid.UUID) ([]*model.Hospital, error)
	}

	DepartmentRepository interface {
		Create(ctx context.Context, department *model.Department) error
		Get(ctx context.Context, id uuid.UUID) (*model.Department, error)
		Update(ctx context.Context, department *model.Department) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Department, error)
	}

	HospitalDepartmentRepository interface {
		Create(ctx context.Context, hd *model.HospitalDepartment) error
		Get(ctx context.Context, id uuid.UUID) (*model.HospitalDepartment, error)
		Update(ctx context.Context, hd *model.HospitalDepartment) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*model.HospitalDepartment, error)
	}

	MedicationRepository interface {
		Create(ctx context.Context, medication *model.Medication) error
		Get(ctx context.Context, id uuid.UUID) (*model.Medication, error)
		Update(ctx context.Context, medication *model.Medication) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Medication, error)
	}

	LabTestTemplateRepository interface {
		Create(ctx context.Context, template *model.LabTestTemplate) error
		Get(ctx context.Context, id uuid.UUID) (*model.LabTestTemplate, error)
		Update(ctx context.Context, template *model.LabTestTemplate) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.LabTestTemplate, error)
	}

	PharmacyRepository interface {
		Create(ctx context.Context, pharmacy *model.Pharmacy) error
		Get(ctx context.Context, id uuid.UUID) (*model.Pharmacy, error)
		Update(ctx context.Context, pharmacy *model.Pharmacy) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Pharmacy, error)
		ListByPharmacist(ctx context.Context, pharmacistID uuid.UUID) ([]*model.Pharmacy, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		GetByUser(ctx context.Context, userID uuid.UUID) (*model.Doctor, error)
		GetDetail(ctx context.Context, id uuid.UUID) (*model.DoctorDetail, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.DoctorDetail, error)
	}

	NurseRepository interface {
		Create(ctx context.Context, nurse *model.Nurse) error
		Get(ctx context.Context, id uuid.UUID) (*model.Nurse, error)
		GetByUser(ctx context.Context, userID uuid.UUID) (*model.Nurse, error)
		Update(ctx context.Context, nurse *model.Nurse) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.NurseDetail, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		GetDetail(ctx context.Context, id uuid.UUID) (*model.AppointmentDetail, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error)
		ListBookedTimes(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error)
	}

	ConsultationRepository interface {
		// Create inserts the consultation and marks the parent
		// appointment completed in one transaction.
		Create(ctx context.Context, consultation *model.Consultation) error
		Get(ctx context.Context, id uuid.UUID) (*model.Consultation, error)
		GetDetail(ctx context.Context, id uuid.UUID) (*model.ConsultationDetail, error)
		GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Consultation, error)
		List(ctx context.Context, filters *model.ConsultationFilters) ([]*model.ConsultationDetail, error)
	}

	LabTestRepository interface {
		CreateRequest(ctx context.Context, request *model.LabTestRequest) error
		GetRequest(ctx context.Context, id uuid.UUID) (*model.LabTestRequest, error)
		GetRequestDetail(ctx context.Context, id uuid.UUID) (*model.LabTestRequestDetail, error)
		UpdateRequestStatus(ctx context.Context, id uuid.UUID, status model.LabTestStatus) error
		ListRequests(ctx context.Context, filters *model.LabTestRequestFilters) ([]*model.LabTestRequestDetail, error)
		// CreateResult inserts the result and flips the parent request
		// to completed in one transaction.
		CreateResult(ctx context.Context, result *model.LabTestResult) error
		GetResult(ctx context.Context, id uuid.UUID) (*model.LabTestResult, error)
		GetResultByRequest(ctx context.Context, requestID uuid.UUID) (*model.LabTestResult, error)
	}

	PrescriptionRepository interface {
		// CreateBatch writes all rows in one transaction; a failing row
		// rolls back the whole batch.
		CreateBatch(ctx context.Context, prescriptions []*model.Prescription) error
		Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
		GetDetail(ctx context.Context, id uuid.UUID) (*model.PrescriptionDetail, error)
		Update(ctx context.Context, prescription *model.Prescription) error
		List(ctx context.Context, filters *model.PrescriptionFilters) ([]*model.PrescriptionDetail, error)
		CreatePharmacyRequest(ctx context.Context, request *model.PharmacyRequest) error
		GetPharmacyRequest(ctx context.Context, id uuid.UUID) (*model.PharmacyRequest, error)
		GetPharmacyRequestByPair(ctx context.Context, prescriptionID, pharmacyID uuid.UUID) (*model.PharmacyRequest, error)
		UpdatePharmacyRequest(ctx context.Context, request *model.PharmacyRequest) error
		ListPharmacyRequests(ctx context.Context, filters *model.PharmacyRequestFilters) ([]*model.PharmacyRequestDetail, error)
	}

	PaymentRepository interface {
		Create(ctx context.Context, payment *model.Payment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Payment, error)
		List(ctx context.Context, filters *model.PaymentFilters) ([]*model.Payment, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
		ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error)
		CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
		MarkRead(ctx context.Context, id uuid.UUID) error
		MarkAllRead(ctx context.Context, userID uuid.UUID) error
	}

	VitalRepository interface {
		Create(ctx context.Context, vital *model.Vital) error
		Get(ctx context.Context, id uuid.UUID) (*model.Vital, error)
		Update(ctx context.Context, vital *model.Vital) error
		List(ctx context.Context, filters *model.VitalFilters) ([]*model.VitalDetail, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		ListPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkPublished(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
		CountPending(ctx context.Context) (int, error)
	}
)
