package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/service/staff"
	"github.com/caresync/hms-api/pkg/logger"
)

type StaffHandler struct {
	staffSvc *staff.Service
	logger   *logger.Logger
}

func NewStaffHandler(staffSvc *staff.Service, log *logger.Logger) *StaffHandler {
	return &StaffHandler{staffSvc: staffSvc, logger: log}
}

func (h *StaffHandler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	doctor, err := h.staffSvc.CreateDoctor(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, doctor)
}

func (h *StaffHandler) GetDoctor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	doctor, err := h.staffSvc.GetDoctor(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *StaffHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.staffSvc.ListDoctors(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *StaffHandler) UpdateDoctor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	doctor, err := h.staffSvc.UpdateDoctor(c.Request.Context(), viewer(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *StaffHandler) DeleteDoctor(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.staffSvc.DeleteDoctor(c.Request.Context(), viewer(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "doctor deleted"})
}

func (h *StaffHandler) CreateNurse(c *gin.Context) {
	var req model.CreateNurseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	nurse, err := h.staffSvc.CreateNurse(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, nurse)
}

func (h *StaffHandler) GetNurse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	nurse, err := h.staffSvc.GetNurse(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, nurse)
}

func (h *StaffHandler) ListNurses(c *gin.Context) {
	nurses, err := h.staffSvc.ListNurses(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, nurses)
}

func (h *StaffHandler) DeleteNurse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.staffSvc.DeleteNurse(c.Request.Context(), viewer(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "nurse deleted"})
}
