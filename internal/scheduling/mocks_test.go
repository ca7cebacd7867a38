package scheduling

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"clinic-scheduling-server/internal/models"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) AppointmentsForMonth(ctx context.Context, doctorID string, year, month int) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID, year, month)
	if apts := args.Get(0); apts != nil {
		return apts.([]models.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ActiveAppointmentAt(ctx context.Context, doctorID string, date time.Time, timeOfDay string) (*models.Appointment, error) {
	args := m.Called(ctx, doctorID, date, timeOfDay)
	if apt := args.Get(0); apt != nil {
		return apt.(*models.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) CreateAppointment(ctx context.Context, apt *models.Appointment) error {
	args := m.Called(ctx, apt)
	return args.Error(0)
}

func (m *MockRepository) ListPatients(ctx context.Context) ([]models.Patient, error) {
	args := m.Called(ctx)
	if patients := args.Get(0); patients != nil {
		return patients.([]models.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func mustDate(t string) time.Time {
	parsed, err := time.ParseInLocation(models.DateLayout, t, time.Local)
	if err != nil {
		panic(err)
	}
	return parsed
}
