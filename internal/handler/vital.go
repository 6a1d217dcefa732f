package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/service/vital"
	"github.com/caresync/hms-api/pkg/logger"
)

type VitalHandler struct {
	vitalSvc *vital.Service
	logger   *logger.Logger
}

func NewVitalHandler(vitalSvc *vital.Service, log *logger.Logger) *VitalHandler {
	return &VitalHandler{vitalSvc: vitalSvc, logger: log}
}

func (h *VitalHandler) Create(c *gin.Context) {
	var req model.CreateVitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	v, err := h.vitalSvc.Create(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *VitalHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	v, err := h.vitalSvc.Get(c.Request.Context(), viewer(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *VitalHandler) List(c *gin.Context) {
	vitals, err := h.vitalSvc.List(c.Request.Context(), viewer(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, vitals)
}

func (h *VitalHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateVitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	v, err := h.vitalSvc.Update(c.Request.Context(), viewer(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
