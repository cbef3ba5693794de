package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mascotacare/vetcli/internal/api"
	"github.com/mascotacare/vetcli/internal/extract"
	"github.com/mascotacare/vetcli/internal/model"
	"github.com/mascotacare/vetcli/internal/session"
)

func newTestApp(t *testing.T, handler http.Handler) *App {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := session.New()
	sess.Set(&model.User{ID: 9, Username: "vet1", FullName: "Dra. Paz", Role: model.RoleVet}, "tok")

	client, err := api.New(api.Config{BaseURL: srv.URL}, sess, zerolog.Nop())
	require.NoError(t, err)

	return &App{Session: sess, API: client, Log: zerolog.Nop()}
}

func editableDraft() *extract.PatientDraft {
	return &extract.PatientDraft{
		Name:          "Luna",
		Species:       "Gato",
		AssistantName: "Sin Asistente",
		Medications: []extract.MedicationDraft{{
			Name:         "Meloxicam",
			Dosage:       "0.5mg/kg",
			Frequency:    24,
			DurationDays: 5,
			StartTime:    "2024-01-01 09:00:00",
		}},
	}
}

func TestIsEditCommand(t *testing.T) {
	assert.True(t, isEditCommand("editar nombre Rocky"))
	assert.True(t, isEditCommand("med agregar"))
	assert.True(t, isEditCommand("nota borrar 1"))
	assert.False(t, isEditCommand("un gato llamado Luna con meloxicam"))
	assert.False(t, isEditCommand(""))
}

func TestApplyEditPatientFields(t *testing.T) {
	d := editableDraft()

	applyEdit(d, "editar nombre Rocky")
	assert.Equal(t, "Rocky", d.Name)

	applyEdit(d, "editar especie Perro pequeño")
	assert.Equal(t, "Perro pequeño", d.Species)

	d.AssistantID = 3
	applyEdit(d, "editar asistente Carlos Ruiz")
	assert.Equal(t, "Carlos Ruiz", d.AssistantName)
	assert.Zero(t, d.AssistantID)

	reply := applyEdit(d, "editar color negro")
	assert.Equal(t, usageEditar, reply)
}

func TestApplyEditMedications(t *testing.T) {
	d := editableDraft()

	reply := applyEdit(d, "med agregar")
	require.Len(t, d.Medications, 2)
	assert.Contains(t, reply, "Medicamento 2")
	assert.Equal(t, 24, d.Medications[1].Frequency)
	assert.Equal(t, 7, d.Medications[1].DurationDays)
	assert.NotEmpty(t, d.Medications[1].StartTime)

	applyEdit(d, "med 2 nombre Amoxicilina suspensión")
	applyEdit(d, "med 2 dosis 250mg")
	applyEdit(d, "med 2 frecuencia 8")
	applyEdit(d, "med 2 dias 10")
	applyEdit(d, "med 2 notas con comida")
	m := d.Medications[1]
	assert.Equal(t, "Amoxicilina suspensión", m.Name)
	assert.Equal(t, "250mg", m.Dosage)
	assert.Equal(t, 8, m.Frequency)
	assert.Equal(t, 10, m.DurationDays)
	assert.Equal(t, "con comida", m.Notes)

	reply = applyEdit(d, "med 2 frecuencia cada rato")
	assert.Contains(t, reply, "frecuencia")
	assert.Equal(t, 8, d.Medications[1].Frequency)

	applyEdit(d, "med borrar 1")
	require.Len(t, d.Medications, 1)
	assert.Equal(t, "Amoxicilina suspensión", d.Medications[0].Name)

	reply = applyEdit(d, "med borrar 5")
	assert.Contains(t, reply, "No existe")
	assert.Len(t, d.Medications, 1)
}

func TestApplyEditNotes(t *testing.T) {
	d := editableDraft()

	applyEdit(d, "nota agregar controlar peso semanal")
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "controlar peso semanal", d.Notes[0].Content)

	applyEdit(d, "nota agregar ayuno antes de cirugía")
	applyEdit(d, "nota borrar 1")
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "ayuno antes de cirugía", d.Notes[0].Content)

	reply := applyEdit(d, "nota borrar 9")
	assert.Contains(t, reply, "No existe")
}

func TestResolveAssistantMatchesByName(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/assistants", r.URL.Path)
		json.NewEncoder(w).Encode([]model.User{
			{ID: 3, Username: "carlos", FullName: "Carlos Ruiz", Role: model.RoleAssistant},
			{ID: 4, Username: "maria", FullName: "María Sol", Role: model.RoleAssistant},
		})
	}))

	req := &model.CreatePatientRequest{Name: "Luna", Species: "Gato", AssistantName: "carlos ruiz"}
	app.resolveAssistant(context.Background(), req)
	assert.Equal(t, 3, req.AssistantID)
	assert.Equal(t, "Carlos Ruiz", req.AssistantName)

	// Partial matches work too.
	req = &model.CreatePatientRequest{Name: "Luna", Species: "Gato", AssistantName: "maría"}
	app.resolveAssistant(context.Background(), req)
	assert.Equal(t, 4, req.AssistantID)
}

func TestResolveAssistantFallsBackToCurrentUser(t *testing.T) {
	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.User{
			{ID: 3, Username: "carlos", FullName: "Carlos Ruiz", Role: model.RoleAssistant},
		})
	}))

	req := &model.CreatePatientRequest{Name: "Luna", Species: "Gato", AssistantName: "Sin Asistente"}
	app.resolveAssistant(context.Background(), req)
	assert.Equal(t, 9, req.AssistantID)
	assert.Equal(t, "Dra. Paz", req.AssistantName)
}

func TestCommitDraftCreatesPatientAndMedications(t *testing.T) {
	var gotPatient model.CreatePatientRequest
	var gotMeds []model.CreateMedicationRequest

	app := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/users/assistants":
			json.NewEncoder(w).Encode([]model.User{
				{ID: 3, Username: "carlos", FullName: "Carlos Ruiz", Role: model.RoleAssistant},
			})
		case r.URL.Path == "/patients/" && r.Method == http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPatient))
			json.NewEncoder(w).Encode(model.Patient{ID: 77, Name: gotPatient.Name})
		case r.URL.Path == "/patients/77/medications":
			var m model.CreateMedicationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
			gotMeds = append(gotMeds, m)
			json.NewEncoder(w).Encode(model.Medication{ID: 100, Name: m.Name})
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	d := editableDraft()
	d.AssistantName = "Carlos Ruiz"
	require.NoError(t, app.commitDraft(context.Background(), d))

	assert.Equal(t, "Luna", gotPatient.Name)
	assert.Equal(t, 3, gotPatient.AssistantID)
	assert.Equal(t, "Carlos Ruiz", gotPatient.AssistantName)

	require.Len(t, gotMeds, 1)
	assert.Equal(t, 77, gotMeds[0].PatientID)
	assert.Equal(t, "Meloxicam", gotMeds[0].Name)
}
