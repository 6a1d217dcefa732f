package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/service/appointment"
	"github.com/caresync/hms-api/pkg/logger"
)

type AppointmentHandler struct {
	apptSvc *appointment.Service
	logger  *logger.Logger
}

func NewAppointmentHandler(apptSvc *appointment.Service, log *logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{apptSvc: apptSvc, logger: log}
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	appt, err := h.apptSvc.Create(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	appt, err := h.apptSvc.Get(c.Request.Context(), viewer(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	filters := &model.AppointmentFilters{}
	if s := c.Query("status"); s != "" {
		status := model.AppointmentStatus(s)
		filters.Status = &status
	}

	appts, err := h.apptSvc.List(c.Request.Context(), viewer(c), filters)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

func (h *AppointmentHandler) Decide(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.DecideAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	appt, err := h.apptSvc.Decide(c.Request.Context(), viewer(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	appt, err := h.apptSvc.Cancel(c.Request.Context(), viewer(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// AvailableSlots returns the open times for a doctor on a date, passed
// as the date query parameter in YYYY-MM-DD form.
func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	doctorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	slots, err := h.apptSvc.AvailableSlots(c.Request.Context(), doctorID, c.Query("date"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available_slots": slots})
}
