package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mascotacare/vetcli/internal/model"
	"github.com/mascotacare/vetcli/internal/treatment"
)

// GroupBySpecies buckets patients by species for the list view,
// species sorted alphabetically and patients by name within each.
func GroupBySpecies(patients []model.Patient) []SpeciesGroup {
	byKey := map[string][]model.Patient{}
	for _, p := range patients {
		key := strings.TrimSpace(p.Species)
		if key == "" {
			key = "Sin especie"
		}
		byKey[key] = append(byKey[key], p)
	}

	groups := make([]SpeciesGroup, 0, len(byKey))
	for species, members := range byKey {
		sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
		groups = append(groups, SpeciesGroup{Species: species, Patients: members})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Species < groups[j].Species })
	return groups
}

type SpeciesGroup struct {
	Species  string
	Patients []model.Patient
}

func printPatientList(w io.Writer, patients []model.Patient) {
	if len(patients) == 0 {
		fmt.Fprintln(w, "No hay pacientes registrados")
		return
	}
	for _, g := range GroupBySpecies(patients) {
		fmt.Fprintf(w, "%s:\n", g.Species)
		for _, p := range g.Patients {
			assistant := p.AssistantName
			if assistant == "" {
				assistant = "Sin Asistente"
			}
			fmt.Fprintf(w, "  [%d] %s — asistente: %s, medicamentos: %d\n", p.ID, p.Name, assistant, len(p.Medications))
		}
	}
}

func printPatient(w io.Writer, p *model.Patient) {
	fmt.Fprintf(w, "[%d] %s (%s)\n", p.ID, p.Name, p.Species)
	if p.AssistantName != "" {
		fmt.Fprintf(w, "Asistente: %s\n", p.AssistantName)
	}
	if len(p.Notes) > 0 {
		fmt.Fprintln(w, "Notas:")
		for _, n := range p.Notes {
			fmt.Fprintf(w, "  - %s\n", n.Content)
		}
	}
	if len(p.Medications) == 0 {
		fmt.Fprintln(w, "Sin medicamentos")
		return
	}
	fmt.Fprintln(w, "Medicamentos:")
	for i := range p.Medications {
		printMedication(w, &p.Medications[i])
	}
}

func printMedication(w io.Writer, m *model.Medication) {
	fmt.Fprintf(w, "  [%d] %s %s, %s durante %s — %s\n",
		m.ID, m.Name, m.Dosage,
		treatment.FrequencyString(m.Frequency),
		treatment.DurationString(m.DurationDays),
		treatment.MedicationStatusLabel(m.Status))

	administered := 0
	for _, d := range m.Doses {
		if d.Status == model.DoseStatusAdministered {
			administered++
		}
	}
	fmt.Fprintf(w, "      Progreso: %d/%d (%.0f%%)\n", administered, len(m.Doses), treatment.Progress(*m)*100)
	if next := treatment.NextPendingDose(*m); next != nil {
		fmt.Fprintf(w, "      Próxima dosis: %s\n", next.ScheduledTime.String())
	}
}

func printMedicationSummary(w io.Writer, name, dosage string, frequency, durationDays int, startTime, notes string) {
	fmt.Fprintf(w, "  - %s %s, %s durante %s, desde %s\n",
		name, dosage,
		treatment.FrequencyString(frequency),
		treatment.DurationString(durationDays),
		startTime)
	if notes != "" {
		fmt.Fprintf(w, "    Notas: %s\n", notes)
	}
}
