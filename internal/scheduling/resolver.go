package scheduling

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// PatientRef is the resolved patient reference used by the booking
// operation. Name is a display value, never authoritative.
type PatientRef struct {
	ID   string `json:"patientId"`
	Name string `json:"patientName"`
}

// PatientResolver maps partial patient identification (explicit id,
// phone number, name hint) to a concrete patient reference.
type PatientResolver struct {
	repo   Repository
	logger zerolog.Logger
}

// NewPatientResolver creates a new PatientResolver.
func NewPatientResolver(repo Repository, logger zerolog.Logger) *PatientResolver {
	return &PatientResolver{repo: repo, logger: logger}
}

// Resolve resolves a patient for a booking on behalf of doctorID.
//
// An explicit patientID is used as-is; existence is enforced downstream
// by the store. Otherwise the phone number is matched against stored
// patients (see matchPhone); the first candidate in enumeration order
// wins and no disambiguation is attempted. With no identifier at all,
// ErrPatientNotFound is returned.
func (r *PatientResolver) Resolve(ctx context.Context, doctorID, patientID, patientPhone, nameHint string) (PatientRef, error) {
	if patientID != "" {
		return PatientRef{ID: patientID, Name: nameHint}, nil
	}

	if patientPhone == "" {
		return PatientRef{}, ErrPatientNotFound
	}

	patients, err := r.repo.ListPatients(ctx)
	if err != nil {
		return PatientRef{}, err
	}

	wanted := normalizePhone(patientPhone)
	for _, p := range patients {
		if matchPhone(wanted, normalizePhone(p.Phone)) {
			name := nameHint
			if name == "" {
				name = p.Name
			}
			r.logger.Debug().
				Str("doctor_id", doctorID).
				Str("patient_id", p.ID).
				Msg("resolved patient by phone")
			return PatientRef{ID: p.ID, Name: name}, nil
		}
	}

	r.logger.Debug().Str("doctor_id", doctorID).Msg("no patient matched phone")
	return PatientRef{}, ErrPatientNotFound
}

// normalizePhone strips every non-digit character.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// matchPhone reports whether two normalized numbers identify the same
// phone. One being a suffix of the other tolerates missing country
// codes or leading zeros; with short inputs it can also match unrelated
// numbers, which is accepted as a documented heuristic.
func matchPhone(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.HasSuffix(a, b) || strings.HasSuffix(b, a)
}
