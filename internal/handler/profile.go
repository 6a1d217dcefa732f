package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/service/profile"
	"github.com/caresync/hms-api/pkg/logger"
)

type ProfileHandler struct {
	profileSvc *profile.Service
	logger     *logger.Logger
}

func NewProfileHandler(profileSvc *profile.Service, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc, logger: log}
}

// Me returns the caller's own profile.
func (h *ProfileHandler) Me(c *gin.Context) {
	v := viewer(c)
	p, err := h.profileSvc.Get(c.Request.Context(), v, v.ProfileID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.profileSvc.Get(c.Request.Context(), viewer(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileSvc.List(c.Request.Context(), viewer(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	p, err := h.profileSvc.Update(c.Request.Context(), viewer(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.profileSvc.Delete(c.Request.Context(), viewer(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}
