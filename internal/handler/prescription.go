package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/service/prescription"
	"github.com/caresync/hms-api/pkg/logger"
)

type PrescriptionHandler struct {
	prescSvc *prescription.Service
	logger   *logger.Logger
}

func NewPrescriptionHandler(prescSvc *prescription.Service, log *logger.Logger) *PrescriptionHandler {
	return &PrescriptionHandler{prescSvc: prescSvc, logger: log}
}

func (h *PrescriptionHandler) CreateBatch(c *gin.Context) {
	var req model.CreatePrescriptionBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := h.prescSvc.CreateBatch(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PrescriptionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	presc, err := h.prescSvc.Get(c.Request.Context(), viewer(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, presc)
}

func (h *PrescriptionHandler) List(c *gin.Context) {
	var consultationID *uuid.UUID
	if s := c.Query("consultation_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "consultation_id must be a valid UUID"})
			return
		}
		consultationID = &id
	}

	prescs, err := h.prescSvc.List(c.Request.Context(), viewer(c), consultationID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, prescs)
}

func (h *PrescriptionHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	presc, err := h.prescSvc.Update(c.Request.Context(), viewer(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, presc)
}

func (h *PrescriptionHandler) ListPharmacyRequests(c *gin.Context) {
	var status *model.PharmacyRequestStatus
	if s := c.Query("status"); s != "" {
		v := model.PharmacyRequestStatus(s)
		status = &v
	}
	requests, err := h.prescSvc.ListPharmacyRequests(c.Request.Context(), viewer(c), status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *PrescriptionHandler) DecidePharmacyRequest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.DecidePharmacyRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	request, err := h.prescSvc.DecidePharmacyRequest(c.Request.Context(), viewer(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
