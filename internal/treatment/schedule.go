// Package treatment derives presentation state from fetched medication
// records: administration eligibility, status labels, and course
// progress. Nothing here mutates anything; state changes go through the
// backend and callers refetch.
package treatment

import (
	"fmt"
	"time"

	"github.com/mascotacare/vetcli/internal/model"
)

// AdministerGrace is how early a pending dose may be given before its
// scheduled time.
const AdministerGrace = 5 * time.Minute

// CanAdminister reports whether a dose may be given right now. Only
// pending doses qualify, and only from the grace window onward.
func CanAdminister(d model.Dose, now time.Time) bool {
	if d.Status != model.DoseStatusPending {
		return false
	}
	scheduled := d.ScheduledTime.Time
	return !now.Before(scheduled) || scheduled.Sub(now) < AdministerGrace
}

// CanAdministerFor additionally checks the owning medication: once a
// course is cancelled or completed, no dose of it is administrable.
func CanAdministerFor(m model.Medication, d model.Dose, now time.Time) bool {
	if m.Status != model.MedicationStatusActive {
		return false
	}
	return CanAdminister(d, now)
}

// StatusLabel renders the state of a dose as shown next to it in lists.
func StatusLabel(d model.Dose, now time.Time) string {
	switch d.Status {
	case model.DoseStatusAdministered:
		return "Administrada"
	case model.DoseStatusMissed:
		return "Omitida"
	}

	if CanAdminister(d, now) {
		return "Pendiente - Lista para administrar"
	}
	return "Pendiente - Faltan " + remainingText(d.ScheduledTime.Sub(now))
}

// remainingText renders a countdown as minutes under an hour and as
// hours y minutos above, with singular and plural word forms.
func remainingText(remaining time.Duration) string {
	minutes := int(remaining.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%d %s", minutes, pluralize(minutes, "minuto", "minutos"))
	}

	hours := minutes / 60
	minutes = minutes % 60
	if minutes == 0 {
		return fmt.Sprintf("%d %s", hours, pluralize(hours, "hora", "horas"))
	}
	return fmt.Sprintf("%d %s y %d %s",
		hours, pluralize(hours, "hora", "horas"),
		minutes, pluralize(minutes, "minuto", "minutos"))
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// Progress returns the administered fraction of a course, in [0,1].
func Progress(m model.Medication) float64 {
	total := len(m.Doses)
	if total == 0 {
		return 0
	}

	administered := 0
	for _, d := range m.Doses {
		if d.Status == model.DoseStatusAdministered {
			administered++
		}
	}
	return float64(administered) / float64(total)
}

// NextPendingDose returns the first pending dose of a course, or nil.
func NextPendingDose(m model.Medication) *model.Dose {
	for i := range m.Doses {
		if m.Doses[i].Status == model.DoseStatusPending {
			return &m.Doses[i]
		}
	}
	return nil
}
