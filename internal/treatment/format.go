package treatment

import (
	"fmt"

	"github.com/mascotacare/vetcli/internal/model"
)

// FrequencyString renders dosing frequency the way vets phrase it.
func FrequencyString(hours int) string {
	switch hours {
	case 24:
		return "cada día"
	case 12:
		return "cada 12 horas"
	case 8:
		return "cada 8 horas"
	case 6:
		return "cada 6 horas"
	case 4:
		return "cada 4 horas"
	}
	return fmt.Sprintf("cada %d horas", hours)
}

// DurationString renders a course duration in days, weeks or months.
func DurationString(days int) string {
	switch {
	case days == 1:
		return "1 día"
	case days < 7:
		return fmt.Sprintf("%d días", days)
	case days == 7:
		return "1 semana"
	case days%7 == 0:
		return fmt.Sprintf("%d semanas", days/7)
	case days == 30:
		return "1 mes"
	case days%30 == 0:
		return fmt.Sprintf("%d meses", days/30)
	}
	return fmt.Sprintf("%d días", days)
}

// MedicationStatusLabel renders the course status badge text.
func MedicationStatusLabel(status model.MedicationStatus) string {
	switch status {
	case model.MedicationStatusActive:
		return "Activo"
	case model.MedicationStatusCompleted:
		return "Completado"
	case model.MedicationStatusCancelled:
		return "Cancelado"
	}
	return "Desconocido"
}
