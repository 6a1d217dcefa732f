package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/service/labtest"
	"github.com/caresync/hms-api/pkg/logger"
)

type LabTestHandler struct {
	labSvc *labtest.Service
	logger *logger.Logger
}

func NewLabTestHandler(labSvc *labtest.Service, log *logger.Logger) *LabTestHandler {
	return &LabTestHandler{labSvc: labSvc, logger: log}
}

func (h *LabTestHandler) CreateRequest(c *gin.Context) {
	var req model.CreateLabTestRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	request, err := h.labSvc.CreateRequest(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *LabTestHandler) GetRequest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	request, err := h.labSvc.GetRequest(c.Request.Context(), viewer(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *LabTestHandler) ListRequests(c *gin.Context) {
	var status *model.LabTestStatus
	if s := c.Query("status"); s != "" {
		v := model.LabTestStatus(s)
		status = &v
	}
	requests, err := h.labSvc.ListRequests(c.Request.Context(), viewer(c), status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *LabTestHandler) UpdateRequestStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateLabTestRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	request, err := h.labSvc.UpdateRequestStatus(c.Request.Context(), viewer(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *LabTestHandler) CreateResult(c *gin.Context) {
	var req model.CreateLabTestResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := h.labSvc.CreateResult(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *LabTestHandler) GetResultByRequest(c *gin.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.labSvc.GetResultByRequest(c.Request.Context(), viewer(c), requestID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
