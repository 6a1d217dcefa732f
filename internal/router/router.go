package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caresync/hms-api/internal/config"
	"github.com/caresync/hms-api/internal/handler"
	"github.com/caresync/hms-api/internal/middleware"
	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/service/auth"
	"github.com/caresync/hms-api/pkg/logger"
	"github.com/caresync/hms-api/pkg/metrics"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Catalog      *handler.CatalogHandler
	Staff        *handler.StaffHandler
	Appointment  *handler.AppointmentHandler
	Consultation *handler.ConsultationHandler
	LabTest      *handler.LabTestHandler
	Prescription *handler.PrescriptionHandler
	Payment      *handler.PaymentHandler
	Notification *handler.NotificationHandler
	Vital        *handler.VitalHandler
}

// New assembles the gin engine: global middleware, the public auth
// surface, and the authenticated API. Fine-grained role and ownership
// checks live in the services; RequireRoles only fences the admin
// write surface.
func New(
	cfg *config.Config,
	log *logger.Logger,
	m *metrics.Metrics,
	registry *prometheus.Registry,
	authSvc *auth.Service,
	h Handlers,
) *gin.Engine {
	handler.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := r.Group("/api/v1")

	// Public auth surface.
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/forgot-password", h.Auth.ForgotPassword)
	api.POST("/auth/reset-password", h.Auth.ResetPassword)

	authed := api.Group("")
	authed.Use(middleware.Authenticate(authSvc))

	// Profiles.
	authed.GET("/profiles/me", h.Profile.Me)
	authed.GET("/profiles", h.Profile.List)
	authed.GET("/profiles/:id", h.Profile.Get)
	authed.PATCH("/profiles/:id", h.Profile.Update)
	authed.DELETE("/profiles/:id", middleware.RequireRoles(model.RoleAdmin), h.Profile.Delete)

	// Catalogs: reads open, writes admin (enforced in the service; the
	// role middleware gives the cheap early 403).
	admin := middleware.RequireRoles(model.RoleAdmin)

	authed.GET("/insurances", h.Catalog.ListInsurances)
	authed.GET("/insurances/:id", h.Catalog.GetInsurance)
	authed.POST("/insurances", admin, h.Catalog.CreateInsurance)
	authed.PUT("/insurances/:id", admin, h.Catalog.UpdateInsurance)
	authed.DELETE("/insurances/:id", admin, h.Catalog.DeleteInsurance)

	authed.GET("/hospitals", h.Catalog.ListHospitals)
	authed.GET("/hospitals/:id", h.Catalog.GetHospital)
	authed.GET("/hospitals/:id/departments", h.Catalog.ListHospitalDepartments)
	authed.POST("/hospitals", admin, h.Catalog.CreateHospital)
	authed.PUT("/hospitals/:id", admin, h.Catalog.UpdateHospital)
	authed.DELETE("/hospitals/:id", admin, h.Catalog.DeleteHospital)

	authed.GET("/departments", h.Catalog.ListDepartments)
	authed.GET("/departments/:id", h.Catalog.GetDepartment)
	authed.POST("/departments", admin, h.Catalog.CreateDepartment)
	authed.PUT("/departments/:id", admin, h.Catalog.UpdateDepartment)
	authed.DELETE("/departments/:id", admin, h.Catalog.DeleteDepartment)

	authed.POST("/hospital-departments", admin, h.Catalog.CreateHospitalDepartment)
	authed.DELETE("/hospital-departments/:id", admin, h.Catalog.DeleteHospitalDepartment)

	authed.GET("/medications", h.Catalog.ListMedications)
	authed.GET("/medications/:id", h.Catalog.GetMedication)
	authed.POST("/medications", admin, h.Catalog.CreateMedication)
	authed.PUT("/medications/:id", admin, h.Catalog.UpdateMedication)
	authed.DELETE("/medications/:id", admin, h.Catalog.DeleteMedication)

	authed.GET("/lab-test-templates", h.Catalog.ListLabTestTemplates)
	authed.GET("/lab-test-templates/:id", h.Catalog.GetLabTestTemplate)
	authed.POST("/lab-test-templates", admin, h.Catalog.CreateLabTestTemplate)
	authed.PUT("/lab-test-templates/:id", admin, h.Catalog.UpdateLabTestTemplate)
	authed.DELETE("/lab-test-templates/:id", admin, h.Catalog.DeleteLabTestTemplate)

	authed.GET("/pharmacies", h.Catalog.ListPharmacies)
	authed.GET("/pharmacies/:id", h.Catalog.GetPharmacy)
	authed.POST("/pharmacies", admin, h.Catalog.CreatePharmacy)
	authed.PUT("/pharmacies/:id", admin, h.Catalog.UpdatePharmacy)
	authed.DELETE("/pharmacies/:id", admin, h.Catalog.DeletePharmacy)

	// Staff.
	authed.GET("/doctors", h.Staff.ListDoctors)
	authed.GET("/doctors/:id", h.Staff.GetDoctor)
	authed.GET("/doctors/:id/available-slots", h.Appointment.AvailableSlots)
	authed.POST("/doctors", admin, h.Staff.CreateDoctor)
	authed.PATCH("/doctors/:id", h.Staff.UpdateDoctor)
	authed.DELETE("/doctors/:id", admin, h.Staff.DeleteDoctor)

	authed.GET("/nurses", h.Staff.ListNurses)
	authed.GET("/nurses/:id", h.Staff.GetNurse)
	authed.POST("/nurses", admin, h.Staff.CreateNurse)
	authed.DELETE("/nurses/:id", admin, h.Staff.DeleteNurse)

	// Appointments.
	authed.POST("/appointments", h.Appointment.Create)
	authed.GET("/appointments", h.Appointment.List)
	authed.GET("/appointments/:id", h.Appointment.Get)
	authed.GET("/appointments/:id/consultation", h.Consultation.GetByAppointment)
	authed.PATCH("/appointments/:id/decision", h.Appointment.Decide)
	authed.PATCH("/appointments/:id/cancel", h.Appointment.Cancel)

	// Consultations.
	authed.POST("/consultations", h.Consultation.Create)
	authed.GET("/consultations", h.Consultation.List)
	authed.GET("/consultations/:id", h.Consultation.Get)

	// Lab tests.
	authed.POST("/lab-test-requests", h.LabTest.CreateRequest)
	authed.GET("/lab-test-requests", h.LabTest.ListRequests)
	authed.GET("/lab-test-requests/:id", h.LabTest.GetRequest)
	authed.GET("/lab-test-requests/:id/result", h.LabTest.GetResultByRequest)
	authed.PATCH("/lab-test-requests/:id/status", h.LabTest.UpdateRequestStatus)
	authed.POST("/lab-test-results", h.LabTest.CreateResult)

	// Prescriptions.
	authed.POST("/prescriptions", h.Prescription.CreateBatch)
	authed.GET("/prescriptions", h.Prescription.List)
	authed.GET("/prescriptions/:id", h.Prescription.Get)
	authed.PATCH("/prescriptions/:id", h.Prescription.Update)
	authed.GET("/pharmacy-requests", h.Prescription.ListPharmacyRequests)
	authed.PATCH("/pharmacy-requests/:id/decision", h.Prescription.DecidePharmacyRequest)

	// Payments.
	authed.POST("/payments", h.Payment.Create)
	authed.GET("/payments", h.Payment.List)
	authed.GET("/payments/:id", h.Payment.Get)

	// Notifications.
	authed.GET("/notifications", h.Notification.List)
	authed.GET("/notifications/unread-count", h.Notification.UnreadCount)
	authed.PATCH("/notifications/:id/read", h.Notification.MarkRead)
	authed.PATCH("/notifications/read-all", h.Notification.MarkAllRead)

	// Vitals.
	authed.POST("/vitals", h.Vital.Create)
	authed.GET("/vitals", h.Vital.List)
	authed.GET("/vitals/:id", h.Vital.Get)
	authed.PATCH("/vitals/:id", h.Vital.Update)

	return r
}
