package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mascotacare/vetcli/internal/model"
)

func TestGroupBySpecies(t *testing.T) {
	patients := []model.Patient{
		{ID: 1, Name: "Rocky", Species: "Perro"},
		{ID: 2, Name: "Luna", Species: "Gato"},
		{ID: 3, Name: "Max", Species: "Perro"},
		{ID: 4, Name: "Kiwi", Species: ""},
	}

	groups := GroupBySpecies(patients)
	require.Len(t, groups, 3)

	assert.Equal(t, "Gato", groups[0].Species)
	assert.Equal(t, "Perro", groups[1].Species)
	assert.Equal(t, "Sin especie", groups[2].Species)

	// Patients sorted by name inside each species.
	assert.Equal(t, "Max", groups[1].Patients[0].Name)
	assert.Equal(t, "Rocky", groups[1].Patients[1].Name)
}

func TestPrintPatientListEmpty(t *testing.T) {
	var sb strings.Builder
	printPatientList(&sb, nil)
	assert.Contains(t, sb.String(), "No hay pacientes")
}

func TestPrintPatientShowsProgressAndNextDose(t *testing.T) {
	p := &model.Patient{
		ID: 1, Name: "Luna", Species: "Gato",
		Medications: []model.Medication{{
			ID: 10, Name: "Meloxicam", Dosage: "0.5mg/kg",
			Frequency: 24, DurationDays: 5,
			Status: model.MedicationStatusActive,
			Doses: []model.Dose{
				{ID: 1, Status: model.DoseStatusAdministered},
				{ID: 2, Status: model.DoseStatusPending},
			},
		}},
	}

	var sb strings.Builder
	printPatient(&sb, p)
	out := sb.String()

	assert.Contains(t, out, "Meloxicam")
	assert.Contains(t, out, "cada día")
	assert.Contains(t, out, "5 días")
	assert.Contains(t, out, "Progreso: 1/2 (50%)")
	assert.Contains(t, out, "Próxima dosis")
	assert.Contains(t, out, "Activo")
}
