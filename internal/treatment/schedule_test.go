package treatment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mascotacare/vetcli/internal/model"
)

var now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)

func doseAt(scheduled time.Time, status model.DoseStatus) model.Dose {
	return model.Dose{ScheduledTime: model.NewTime(scheduled), Status: status}
}

func TestCanAdminister(t *testing.T) {
	cases := []struct {
		name string
		dose model.Dose
		want bool
	}{
		{"pending and past due", doseAt(now.Add(-time.Hour), model.DoseStatusPending), true},
		{"pending exactly on time", doseAt(now, model.DoseStatusPending), true},
		{"pending inside grace window", doseAt(now.Add(4*time.Minute), model.DoseStatusPending), true},
		{"pending just inside grace edge", doseAt(now.Add(5*time.Minute-time.Second), model.DoseStatusPending), true},
		{"pending at grace edge", doseAt(now.Add(5*time.Minute), model.DoseStatusPending), false},
		{"pending far in the future", doseAt(now.Add(3*time.Hour), model.DoseStatusPending), false},
		{"administered never again", doseAt(now.Add(-time.Hour), model.DoseStatusAdministered), false},
		{"missed never", doseAt(now.Add(-time.Hour), model.DoseStatusMissed), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanAdminister(tc.dose, now))
		})
	}
}

func TestCanAdministerForBlocksInactiveCourses(t *testing.T) {
	due := doseAt(now.Add(-time.Minute), model.DoseStatusPending)

	for _, status := range []model.MedicationStatus{
		model.MedicationStatusCancelled,
		model.MedicationStatusCompleted,
	} {
		m := model.Medication{Status: status}
		assert.False(t, CanAdministerFor(m, due, now), string(status))
	}

	active := model.Medication{Status: model.MedicationStatusActive}
	assert.True(t, CanAdministerFor(active, due, now))
}

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		name string
		dose model.Dose
		want string
	}{
		{"administered", doseAt(now, model.DoseStatusAdministered), "Administrada"},
		{"missed", doseAt(now, model.DoseStatusMissed), "Omitida"},
		{"ready", doseAt(now.Add(-time.Minute), model.DoseStatusPending), "Pendiente - Lista para administrar"},
		{"minutes truncate", doseAt(now.Add(6*time.Minute+30*time.Second), model.DoseStatusPending), "Pendiente - Faltan 6 minutos"},
		{"just outside grace", doseAt(now.Add(5*time.Minute+30*time.Second), model.DoseStatusPending), "Pendiente - Faltan 5 minutos"},
		{"under an hour", doseAt(now.Add(45*time.Minute), model.DoseStatusPending), "Pendiente - Faltan 45 minutos"},
		{"exact hours", doseAt(now.Add(2*time.Hour), model.DoseStatusPending), "Pendiente - Faltan 2 horas"},
		{"singular hour", doseAt(now.Add(time.Hour), model.DoseStatusPending), "Pendiente - Faltan 1 hora"},
		{"hours and minutes", doseAt(now.Add(time.Hour+time.Minute), model.DoseStatusPending), "Pendiente - Faltan 1 hora y 1 minuto"},
		{"plural both", doseAt(now.Add(3*time.Hour+20*time.Minute), model.DoseStatusPending), "Pendiente - Faltan 3 horas y 20 minutos"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusLabel(tc.dose, now))
		})
	}
}

func TestProgress(t *testing.T) {
	m := model.Medication{Doses: []model.Dose{
		doseAt(now, model.DoseStatusAdministered),
		doseAt(now, model.DoseStatusAdministered),
		doseAt(now, model.DoseStatusMissed),
		doseAt(now, model.DoseStatusPending),
	}}
	assert.InDelta(t, 0.5, Progress(m), 1e-9)

	empty := model.Medication{}
	assert.Equal(t, 0.0, Progress(empty))

	all := model.Medication{Doses: []model.Dose{doseAt(now, model.DoseStatusAdministered)}}
	assert.Equal(t, 1.0, Progress(all))
}

func TestProgressStaysInUnitInterval(t *testing.T) {
	m := model.Medication{Doses: []model.Dose{
		doseAt(now, model.DoseStatusPending),
		doseAt(now, model.DoseStatusMissed),
	}}
	p := Progress(m)
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
}

func TestNextPendingDose(t *testing.T) {
	first := doseAt(now.Add(time.Hour), model.DoseStatusPending)
	m := model.Medication{Doses: []model.Dose{
		doseAt(now.Add(-time.Hour), model.DoseStatusAdministered),
		first,
		doseAt(now.Add(2*time.Hour), model.DoseStatusPending),
	}}

	got := NextPendingDose(m)
	if assert.NotNil(t, got) {
		assert.Equal(t, first.ScheduledTime.String(), got.ScheduledTime.String())
	}

	done := model.Medication{Doses: []model.Dose{doseAt(now, model.DoseStatusAdministered)}}
	assert.Nil(t, NextPendingDose(done))
}
