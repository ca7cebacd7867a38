package handlers

import (
	"clinic-scheduling-server/internal/config"
	"clinic-scheduling-server/internal/models"
	"clinic-scheduling-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PatientHandler handles patient administration. The scheduling core
// consumes these records read-only through its repository; this handler
// is where they get created and inspected.
type PatientHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB, cfg *config.Config) *PatientHandler {
	return &PatientHandler{DB: db, Cfg: cfg}
}

// CreatePatientRequest represents the request body for registering a patient.
type CreatePatientRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}

// CreatePatient handles registering a new patient record.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient := models.Patient{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := h.DB.Create(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to create patient", h.details(err))
		return
	}

	utils.Success(c, patient)
}

// GetPatients handles listing patient records in enumeration order,
// the same order the phone resolver scans them in.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	var patients []models.Patient
	if err := h.DB.Order("created_at asc").Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients", h.details(err))
		return
	}

	utils.Success(c, patients)
}

// GetPatientByID handles fetching a single patient record.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error", h.details(err))
		}
		return
	}

	utils.Success(c, patient)
}

func (h *PatientHandler) details(err error) string {
	if h.Cfg.IsProduction() {
		return ""
	}
	return err.Error()
}
