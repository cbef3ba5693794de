package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(n float64) RawField { return RawField{Number: &n} }
func txt(s string) RawField  { return RawField{Text: &s} }

func TestCoerceFrequency(t *testing.T) {
	cases := []struct {
		name string
		in   RawField
		want int
	}{
		{"number passes through", num(12), 12},
		{"digits win", txt("cada 8 horas"), 8},
		{"day word", txt("una vez al día"), 24},
		{"day word plain", txt("cada dia"), 24},
		{"week word", txt("una vez por semana"), 168},
		{"unrecognizable", txt("según necesidad"), 24},
		{"missing", RawField{}, 24},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CoerceFrequency(tc.in))
		})
	}
}

func TestCoerceDuration(t *testing.T) {
	cases := []struct {
		name string
		in   RawField
		want int
	}{
		{"number passes through", num(10), 10},
		{"plain days", txt("5 días"), 5},
		{"weeks multiply", txt("2 semanas"), 14},
		{"months multiply", txt("1 mes"), 30},
		{"english month", txt("2 months"), 60},
		{"no digits", txt("hasta terminar"), 7},
		{"missing", RawField{}, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CoerceDuration(tc.in))
		})
	}
}

func TestRawFieldUnmarshal(t *testing.T) {
	var f RawField
	require.NoError(t, json.Unmarshal([]byte(`8`), &f))
	require.NotNil(t, f.Number)
	assert.Equal(t, 8.0, *f.Number)

	f = RawField{}
	require.NoError(t, json.Unmarshal([]byte(`"cada 8 horas"`), &f))
	require.NotNil(t, f.Text)
	assert.Equal(t, "cada 8 horas", *f.Text)

	f = RawField{}
	require.NoError(t, json.Unmarshal([]byte(`null`), &f))
	assert.Nil(t, f.Number)
	assert.Nil(t, f.Text)

	f = RawField{}
	require.NoError(t, json.Unmarshal([]byte(`{"weird":true}`), &f))
	assert.Equal(t, "", f.AsText())
}

func TestCoerceNotes(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`"revisar en una semana"`),
		json.RawMessage(`{"content":"ya en formato"}`),
		json.RawMessage(`42`),
	}
	notes := coerceNotes(raws)
	require.Len(t, notes, 3)
	assert.Equal(t, "revisar en una semana", notes[0].Content)
	assert.Equal(t, "ya en formato", notes[1].Content)
	assert.Equal(t, "", notes[2].Content)
}
