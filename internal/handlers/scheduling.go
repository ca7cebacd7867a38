package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"clinic-scheduling-server/internal/config"
	"clinic-scheduling-server/internal/middleware"
	"clinic-scheduling-server/internal/scheduling"
	"clinic-scheduling-server/internal/utils"
)

// SchedulingHandler exposes the availability query and booking
// operations consumed by the UI and the automation agent.
type SchedulingHandler struct {
	Availability *scheduling.AvailabilityService
	Booking      *scheduling.BookingService
	Config       *config.Config
	Logger       zerolog.Logger
}

// NewSchedulingHandler creates a new SchedulingHandler.
func NewSchedulingHandler(availability *scheduling.AvailabilityService, booking *scheduling.BookingService, cfg *config.Config, logger zerolog.Logger) *SchedulingHandler {
	return &SchedulingHandler{
		Availability: availability,
		Booking:      booking,
		Config:       cfg,
		Logger:       logger,
	}
}

// CheckAvailabilityRequest represents the request body for an availability query.
type CheckAvailabilityRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Year     int    `json:"year" binding:"required"`
	Month    int    `json:"month" binding:"required"`
	Day      *int   `json:"day"`
}

// availabilityData is the data block of a successful availability response.
type availabilityData struct {
	Date                 *string                   `json:"date"`
	Month                string                    `json:"month"`
	TotalOccupied        int                       `json:"totalOccupied"`
	OccupiedSlots        []scheduling.OccupiedSlot `json:"occupiedSlots"`
	AvailableSuggestions interface{}               `json:"availableSuggestions"`
}

// CheckAvailability handles POST /scheduling/check-availability.
func (h *SchedulingHandler) CheckAvailability(c *gin.Context) {
	start := time.Now()

	var req CheckAvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result, err := h.Availability.QueryAvailability(c.Request.Context(), scheduling.AvailabilityQuery{
		DoctorID: req.DoctorID,
		Year:     req.Year,
		Month:    req.Month,
		Day:      req.Day,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	var suggestions interface{} = result.MonthSuggestions
	if result.QueryType == scheduling.QuerySingleDay {
		suggestions = result.DaySuggestions
	}

	meta := utils.NewMeta(c)
	meta.ProcessingTime = time.Since(start).String()
	meta.QueryType = result.QueryType
	utils.SuccessWithMeta(c, availabilityData{
		Date:                 result.Date,
		Month:                result.Month,
		TotalOccupied:        result.TotalOccupied,
		OccupiedSlots:        result.OccupiedSlots,
		AvailableSuggestions: suggestions,
	}, meta)
}

// CreateAppointmentRequest represents the request body for booking an
// appointment. consultationType accepts the Portuguese wire aliases
// (Presencial, Telemedicina) as well as the stored enum values.
type CreateAppointmentRequest struct {
	DoctorID             string `json:"doctorId" binding:"required"`
	PatientID            string `json:"patientId"`
	PatientPhone         string `json:"patientPhone"`
	PatientName          string `json:"patientName"`
	ConsultationDate     string `json:"consultationDate" binding:"required"`
	ConsultationTime     string `json:"consultationTime" binding:"required"`
	ConsultationDuration int    `json:"consultationDuration"`
	ConsultationType     string `json:"consultationType"`
	ReasonForVisit       string `json:"reasonForVisit"`
	Notes                string `json:"notes"`
}

// CreateAppointment handles POST /scheduling/appointments.
func (h *SchedulingHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	createdVia := "ui"
	if role, ok := middleware.GetUserRoleFromContext(c); ok {
		createdVia = string(role)
	}

	result, err := h.Booking.Book(c.Request.Context(), scheduling.BookingRequest{
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		PatientPhone:    req.PatientPhone,
		PatientName:     req.PatientName,
		Date:            req.ConsultationDate,
		Time:            req.ConsultationTime,
		DurationMinutes: req.ConsultationDuration,
		Type:            req.ConsultationType,
		ReasonForVisit:  req.ReasonForVisit,
		Notes:           req.Notes,
		CreatedVia:      createdVia,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, result)
}

// respondError maps the scheduling error taxonomy onto HTTP statuses:
// validation and unresolved patients are 400, conflicts are 409 with
// details, everything else is 500 with details only outside production.
func (h *SchedulingHandler) respondError(c *gin.Context, err error) {
	if ve := scheduling.AsValidationError(err); ve != nil {
		utils.BadRequest(c, ve.Reason)
		return
	}
	if errors.Is(err, scheduling.ErrPatientNotFound) {
		utils.BadRequest(c, "Patient could not be resolved from the provided identifiers")
		return
	}
	if ce := scheduling.AsConflictError(err); ce != nil {
		utils.Conflict(c, "The requested slot is already booked", ce)
		return
	}

	h.Logger.Error().
		Err(err).
		Str("request_id", c.GetString(utils.RequestIDKey)).
		Msg("scheduling request failed")
	details := ""
	if !h.Config.IsProduction() {
		details = err.Error()
	}
	utils.InternalServerError(c, "Internal server error", details)
}
