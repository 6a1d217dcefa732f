package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/service/consultation"
	"github.com/caresync/hms-api/pkg/logger"
)

type ConsultationHandler struct {
	consultSvc *consultation.Service
	logger     *logger.Logger
}

func NewConsultationHandler(consultSvc *consultation.Service, log *logger.Logger) *ConsultationHandler {
	return &ConsultationHandler{consultSvc: consultSvc, logger: log}
}

func (h *ConsultationHandler) Create(c *gin.Context) {
	var req model.CreateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	consult, err := h.consultSvc.Create(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, consult)
}

func (h *ConsultationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	consult, err := h.consultSvc.Get(c.Request.Context(), viewer(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, consult)
}

func (h *ConsultationHandler) GetByAppointment(c *gin.Context) {
	appointmentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	consult, err := h.consultSvc.GetByAppointment(c.Request.Context(), viewer(c), appointmentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, consult)
}

func (h *ConsultationHandler) List(c *gin.Context) {
	consults, err := h.consultSvc.List(c.Request.Context(), viewer(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, consults)
}
