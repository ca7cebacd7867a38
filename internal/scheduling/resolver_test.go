package scheduling

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clinic-scheduling-server/internal/models"
)

func newTestResolver(repo Repository) *PatientResolver {
	return NewPatientResolver(repo, zerolog.Nop())
}

func storedPatients() []models.Patient {
	return []models.Patient{
		{BaseModel: models.BaseModel{ID: "p1"}, Name: "Maria Souza", Phone: "11999998888"},
		{BaseModel: models.BaseModel{ID: "p2"}, Name: "Joao Lima", Phone: "(11) 98888-7777"},
	}
}

func TestResolveExplicitIDWins(t *testing.T) {
	repo := new(MockRepository)
	resolver := newTestResolver(repo)

	ref, err := resolver.Resolve(context.Background(), "d1", "p42", "11999998888", "Hinted Name")
	require.NoError(t, err)
	assert.Equal(t, "p42", ref.ID)
	assert.Equal(t, "Hinted Name", ref.Name)
	// No store lookup happens for explicit ids.
	repo.AssertNotCalled(t, "ListPatients")
}

func TestResolveByPhoneSuffixBothDirections(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListPatients", mock.Anything).Return(storedPatients(), nil)
	resolver := newTestResolver(repo)

	// Input with country code, stored without.
	ref, err := resolver.Resolve(context.Background(), "d1", "", "5511999998888", "")
	require.NoError(t, err)
	assert.Equal(t, "p1", ref.ID)
	assert.Equal(t, "Maria Souza", ref.Name)

	// Input without country code, stored value longer after normalization.
	ref, err = resolver.Resolve(context.Background(), "d1", "", "98888-7777", "")
	require.NoError(t, err)
	assert.Equal(t, "p2", ref.ID)
	assert.Equal(t, "Joao Lima", ref.Name)
}

func TestResolveShortNumberDoesNotSpuriouslyMatch(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListPatients", mock.Anything).Return(storedPatients(), nil)
	resolver := newTestResolver(repo)

	_, err := resolver.Resolve(context.Background(), "d1", "", "000", "")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestResolveFirstMatchWinsInEnumerationOrder(t *testing.T) {
	patients := []models.Patient{
		{BaseModel: models.BaseModel{ID: "older"}, Name: "First Stored", Phone: "11999998888"},
		{BaseModel: models.BaseModel{ID: "newer"}, Name: "Second Stored", Phone: "5511999998888"},
	}
	repo := new(MockRepository)
	repo.On("ListPatients", mock.Anything).Return(patients, nil)
	resolver := newTestResolver(repo)

	ref, err := resolver.Resolve(context.Background(), "d1", "", "11999998888", "")
	require.NoError(t, err)
	assert.Equal(t, "older", ref.ID)
}

func TestResolveNameHintOverridesStoredName(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListPatients", mock.Anything).Return(storedPatients(), nil)
	resolver := newTestResolver(repo)

	ref, err := resolver.Resolve(context.Background(), "d1", "", "11999998888", "Preferred Display")
	require.NoError(t, err)
	assert.Equal(t, "Preferred Display", ref.Name)
}

func TestResolveNoIdentifiers(t *testing.T) {
	repo := new(MockRepository)
	resolver := newTestResolver(repo)

	_, err := resolver.Resolve(context.Background(), "d1", "", "", "")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "11988887777", normalizePhone("(11) 98888-7777"))
	assert.Equal(t, "5511999998888", normalizePhone("+55 11 99999-8888"))
	assert.Equal(t, "", normalizePhone("n/a"))
}
