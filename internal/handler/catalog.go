package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caresync/hms-api/internal/model"
	"github.com/caresync/hms-api/internal/service/catalog"
	"github.com/caresync/hms-api/pkg/logger"
)

// CatalogHandler serves the reference catalogs. Reads are open to any
// authenticated user; the service enforces the admin write gate.
type CatalogHandler struct {
	catalogSvc *catalog.Service
	logger     *logger.Logger
}

func NewCatalogHandler(catalogSvc *catalog.Service, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc, logger: log}
}

// --- Insurance plans ---

func (h *CatalogHandler) CreateInsurance(c *gin.Context) {
	var req model.CreateInsuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	insurance, err := h.catalogSvc.CreateInsurance(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, insurance)
}

func (h *CatalogHandler) GetInsurance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	insurance, err := h.catalogSvc.GetInsurance(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, insurance)
}

func (h *CatalogHandler) ListInsurances(c *gin.Context) {
	insurances, err := h.catalogSvc.ListInsurances(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, insurances)
}

func (h *CatalogHandler) UpdateInsurance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.CreateInsuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	insurance, err := h.catalogSvc.UpdateInsurance(c.Request.Context(), viewer(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, insurance)
}

func (h *CatalogHandler) DeleteInsurance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteInsurance(c.Request.Context(), viewer(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "insurance deleted"})
}

// --- Hospitals ---

func (h *CatalogHandler) CreateHospital(c *gin.Context) {
	var req model.CreateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	hospital, err := h.catalogSvc.CreateHospital(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, hospital)
}

func (h *CatalogHandler) GetHospital(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	hospital, err := h.catalogSvc.GetHospital(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, hospital)
}

func (h *CatalogHandler) ListHospitals(c *gin.Context) {
	hospitals, err := h.catalogSvc.ListHospitals(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, hospitals)
}

func (h *CatalogHandler) UpdateHospital(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.UpdateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	hospital, err := h.catalogSvc.UpdateHospital(c.Request.Context(), viewer(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, hospital)
}

func (h *CatalogHandler) DeleteHospital(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteHospital(c.Request.Context(), viewer(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hospital deleted"})
}

// --- Departments ---

func (h *CatalogHandler) CreateDepartment(c *gin.Context) {
	var req model.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	department, err := h.catalogSvc.CreateDepartment(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, department)
}

func (h *CatalogHandler) GetDepartment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	department, err := h.catalogSvc.GetDepartment(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, department)
}

func (h *CatalogHandler) ListDepartments(c *gin.Context) {
	departments, err := h.catalogSvc.ListDepartments(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, departments)
}

func (h *CatalogHandler) UpdateDepartment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	department, err := h.catalogSvc.UpdateDepartment(c.Request.Context(), viewer(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, department)
}

func (h *CatalogHandler) DeleteDepartment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteDepartment(c.Request.Context(), viewer(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "department deleted"})
}

// --- Hospital departments ---

func (h *CatalogHandler) CreateHospitalDepartment(c *gin.Context) {
	var req model.CreateHospitalDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	hd, err := h.catalogSvc.CreateHospitalDepartment(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, hd)
}

func (h *CatalogHandler) ListHospitalDepartments(c *gin.Context) {
	hospitalID, ok := pathID(c, "id")
	if !ok {
		return
	}
	departments, err := h.catalogSvc.ListHospitalDepartments(c.Request.Context(), hospitalID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, departments)
}

func (h *CatalogHandler) DeleteHospitalDepartment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteHospitalDepartment(c.Request.Context(), viewer(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hospital department deleted"})
}

// --- Medications ---

func (h *CatalogHandler) CreateMedication(c *gin.Context) {
	var req model.CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	medication, err := h.catalogSvc.CreateMedication(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, medication)
}

func (h *CatalogHandler) GetMedication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	medication, err := h.catalogSvc.GetMedication(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, medication)
}

func (h *CatalogHandler) ListMedications(c *gin.Context) {
	medications, err := h.catalogSvc.ListMedications(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, medications)
}

func (h *CatalogHandler) UpdateMedication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	medication, err := h.catalogSvc.UpdateMedication(c.Request.Context(), viewer(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, medication)
}

func (h *CatalogHandler) DeleteMedication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteMedication(c.Request.Context(), viewer(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "medication deleted"})
}

// --- Lab test templates ---

func (h *CatalogHandler) CreateLabTestTemplate(c *gin.Context) {
	var req model.CreateLabTestTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	template, err := h.catalogSvc.CreateLabTestTemplate(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *CatalogHandler) GetLabTestTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	template, err := h.catalogSvc.GetLabTestTemplate(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *CatalogHandler) ListLabTestTemplates(c *gin.Context) {
	templates, err := h.catalogSvc.ListLabTestTemplates(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *CatalogHandler) UpdateLabTestTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.CreateLabTestTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	template, err := h.catalogSvc.UpdateLabTestTemplate(c.Request.Context(), viewer(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *CatalogHandler) DeleteLabTestTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.DeleteLabTestTemplate(c.Request.Context(), viewer(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "lab test template deleted"})
}

// --- Pharmacies ---

func (h *CatalogHandler) CreatePharmacy(c *gin.Context) {
	var req model.CreatePharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	pharmacy, err := h.catalogSvc.CreatePharmacy(c.Request.Context(), viewer(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, pharmacy)
}

func (h *CatalogHandler) GetPharmacy(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pharmacy, err := h.catalogSvc.GetPharmacy(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pharmacy)
}

func (h *CatalogHandler) ListPharmacies(c *gin.Context) {
	pharmacies, err := h.catalogSvc.ListPharmacies(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pharmacies)
}

func (h *CatalogHandler) UpdatePharmacy(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.CreatePharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	pharmacy, err := h.catalogSvc.UpdatePharmacy(c.Request.Context(), viewer(c), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pharmacy)
}

func (h *CatalogHandler) DeletePharmacy(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogSvc.DeletePharmacy(c.Request.Context(), viewer(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pharmacy deleted"})
}
