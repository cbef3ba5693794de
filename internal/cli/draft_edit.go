package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mascotacare/vetcli/internal/extract"
	"github.com/mascotacare/vetcli/internal/model"
)

const (
	usageEditar = "Uso: editar <nombre|especie|asistente> <valor>"
	usageNota   = "Uso: nota agregar <texto> | nota borrar <n>"
	usageMed    = "Uso: med agregar | med borrar <n> | med <n> <nombre|dosis|frecuencia|dias|inicio|notas> <valor>"
)

// isEditCommand reports whether a chat line is a draft-editing command
// rather than text for the extractor.
func isEditCommand(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToLower(fields[0]) {
	case "editar", "nota", "med":
		return true
	}
	return false
}

// applyEdit mutates the draft according to one edit command and returns
// the user-facing reply. Callers have already checked isEditCommand.
func applyEdit(d *extract.PatientDraft, line string) string {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "editar":
		return editPatientField(d, line)
	case "nota":
		return editNotes(d, line)
	case "med":
		return editMedications(d, line)
	}
	return ""
}

func editPatientField(d *extract.PatientDraft, line string) string {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 3 || strings.TrimSpace(parts[2]) == "" {
		return usageEditar
	}
	value := strings.TrimSpace(parts[2])

	switch strings.ToLower(parts[1]) {
	case "nombre":
		d.Name = value
		return "Nombre actualizado: " + value
	case "especie":
		d.Species = value
		return "Especie actualizada: " + value
	case "asistente":
		d.AssistantName = value
		d.AssistantID = 0 // resolved against the assistant list on save
		return "Asistente actualizado: " + value
	}
	return usageEditar
}

func editNotes(d *extract.PatientDraft, line string) string {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return usageNota
	}
	switch strings.ToLower(parts[1]) {
	case "agregar":
		if len(parts) < 3 || strings.TrimSpace(parts[2]) == "" {
			return usageNota
		}
		d.Notes = append(d.Notes, model.NoteContent{Content: strings.TrimSpace(parts[2])})
		return fmt.Sprintf("Nota %d agregada.", len(d.Notes))
	case "borrar":
		if len(parts) < 3 {
			return usageNota
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || n < 1 || n > len(d.Notes) {
			return fmt.Sprintf("No existe la nota %s.", strings.TrimSpace(parts[2]))
		}
		d.Notes = append(d.Notes[:n-1], d.Notes[n:]...)
		return fmt.Sprintf("Nota %d eliminada.", n)
	}
	return usageNota
}

func editMedications(d *extract.PatientDraft, line string) string {
	parts := strings.SplitN(line, " ", 4)
	if len(parts) < 2 {
		return usageMed
	}

	switch strings.ToLower(parts[1]) {
	case "agregar":
		d.Medications = append(d.Medications, extract.MedicationDraft{
			Frequency:    24,
			DurationDays: 7,
			StartTime:    extract.FormatLocal(time.Now()),
		})
		n := len(d.Medications)
		return fmt.Sprintf("Medicamento %d agregado; complétalo con 'med %d nombre ...' y 'med %d dosis ...'.", n, n, n)

	case "borrar":
		if len(parts) < 3 {
			return usageMed
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || n < 1 || n > len(d.Medications) {
			return fmt.Sprintf("No existe el medicamento %s.", strings.TrimSpace(parts[2]))
		}
		d.Medications = append(d.Medications[:n-1], d.Medications[n:]...)
		return fmt.Sprintf("Medicamento %d eliminado.", n)
	}

	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return usageMed
	}
	if n < 1 || n > len(d.Medications) {
		return fmt.Sprintf("No existe el medicamento %d.", n)
	}
	if len(parts) < 4 || strings.TrimSpace(parts[3]) == "" {
		return usageMed
	}
	return editMedicationField(&d.Medications[n-1], strings.ToLower(parts[2]), strings.TrimSpace(parts[3]))
}

func editMedicationField(m *extract.MedicationDraft, field, value string) string {
	switch field {
	case "nombre":
		m.Name = value
		return "Nombre del medicamento actualizado: " + value
	case "dosis":
		m.Dosage = value
		return "Dosis actualizada: " + value
	case "frecuencia":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return "La frecuencia debe ser un número de horas mayor que cero."
		}
		m.Frequency = n
		return "Frecuencia actualizada: " + value + " horas"
	case "dias", "días":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return "La duración debe ser un número de días mayor que cero."
		}
		m.DurationDays = n
		return "Duración actualizada: " + value + " días"
	case "inicio":
		// Accepts the same phrases the extractor does ("mañana a las 9").
		m.StartTime = extract.FormatLocal(extract.ResolveStartTime(value, time.Now()))
		return "Inicio actualizado: " + m.StartTime
	case "notas":
		m.Notes = value
		return "Notas actualizadas."
	}
	return usageMed
}
