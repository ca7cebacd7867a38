package handlers

import (
	"strconv"
	"time"

	"clinic-scheduling-server/internal/config"
	"clinic-scheduling-server/internal/middleware"
	"clinic-scheduling-server/internal/models"
	"clinic-scheduling-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AppointmentHandler handles appointment lifecycle requests: listing,
// lookup and status transitions. Creation goes through the scheduling
// endpoints instead, where conflict detection lives.
type AppointmentHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, cfg *config.Config) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Cfg: cfg}
}

// GetAppointmentsForDoctor handles fetching a doctor's appointments,
// optionally restricted to one calendar month via year/month query
// parameters.
func (h *AppointmentHandler) GetAppointmentsForDoctor(c *gin.Context) {
	doctorID := c.Query("doctorId")
	if doctorID == "" {
		// Doctors default to their own calendar.
		if role, ok := middleware.GetUserRoleFromContext(c); ok && role == models.RoleDoctor {
			doctorID, _ = middleware.GetUserIDFromContext(c)
		}
	}
	if doctorID == "" {
		utils.BadRequest(c, "doctorId is required")
		return
	}

	query := h.DB.Where("doctor_id = ?", doctorID).Order("date asc, time asc")

	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			utils.BadRequest(c, "year must be an integer")
			return
		}
		month, err := strconv.Atoi(c.DefaultQuery("month", "0"))
		if err != nil || month < 1 || month > 12 {
			utils.BadRequest(c, "month must be an integer between 1 and 12")
			return
		}
		monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		query = query.Where("date >= ? AND date < ?", monthStart, monthStart.AddDate(0, 1, 0))
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments", h.details(err))
		return
	}

	utils.Success(c, appointments)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error", h.details(err))
		}
		return
	}

	utils.Success(c, appointment)
}

// UpdateAppointmentStatusRequest represents the request body for updating an appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=completed cancelled no-show"`
	Notes  string                   `json:"notes"` // Optional notes for status change (e.g., cancellation reason)
}

// UpdateAppointmentStatus handles the terminal status transitions.
// Cancelling clears the slot key so the slot frees for rebooking and no
// longer counts as occupied.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error", h.details(err))
		}
		return
	}

	if appointment.Status != models.StatusScheduled {
		utils.BadRequest(c, "Only scheduled appointments can change status")
		return
	}

	appointment.Status = req.Status
	if req.Status == models.StatusCancelled {
		appointment.SlotKey = nil
	}
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status", h.details(err))
		return
	}

	utils.Success(c, appointment)
}

func (h *AppointmentHandler) details(err error) string {
	if h.Cfg.IsProduction() {
		return ""
	}
	return err.Error()
}
