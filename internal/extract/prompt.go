package extract

import (
	"fmt"
	"time"
)

const promptTemplate = `Actúa como un sistema de procesamiento de lenguaje natural que extrae información veterinaria.

# OBJETIVO
Analiza el siguiente texto y extrae la información estructurada sobre un paciente veterinario y sus medicamentos recetados.

# CONTEXTO IMPORTANTE
- Los medicamentos veterinarios pueden tener múltiples nombres, dosis, frecuencias y duraciones.
- La información puede estar incompleta o ambigua; usa tu mejor juicio para interpretarla.
- La fecha actual es %s.
- La hora actual es %s.

# TEXTO A PROCESAR
"""
%s
"""

# INSTRUCCIONES ESPECÍFICAS
- Identifica el NOMBRE del paciente (animal).
- Identifica la ESPECIE del paciente (perro, gato, etc.), no incluyas razas.
- Identifica el asistente asignado a la mascota; si no está claro o no se menciona, asigna "Sin Asistente".
- Para cada medicamento, identifica:
  - Nombre del medicamento
  - Dosis (cantidad + unidad, ej: 100mg, 20ml, 1000mcg, 0.5mg/kg, etc.)
  - Frecuencia (horas entre dosis, ej: cada 8 horas, cada 12 horas, dos veces al día, etc.)
  - Duración (ej: 5 días, 1 semana, 2 meses, etc.)
  - Fecha de inicio (usa formato ISO YYYY-MM-DD HH:MM:SS)
  - Notas adicionales (ej: se debe administrar antes de las comidas, etc.)

# FORMATO DE RESPUESTA
Responde ÚNICAMENTE con un objeto JSON con la siguiente estructura precisa:
{
  "name": "<nombre del paciente>",
  "species": "<especie del paciente>",
  "assistant_id": <id del asistente>,
  "assistant_name": "<nombre del asistente>",
  "notes": [
    {
      "content": "<notas del paciente>"
    }
  ],
  "medications": [
    {
      "name": "<nombre del medicamento>",
      "dosage": "<dosis del medicamento>",
      "frequency": <frecuencia en horas>,
      "duration_days": <duración en días>,
      "start_time": "<fecha y hora de inicio: YYYY-MM-DD HH:MM:SS>",
      "notes": "<notas adicionales>"
    }
  ]
}

# EJEMPLOS DE ASIGNACIÓN DE HORAS:
- Si el usuario menciona "hoy a las 12:30" -> "start_time": "2023-08-25 12:30:00"
- Si el usuario menciona "mañana a las 9" -> "start_time": "2023-08-26 09:00:00"
- Si el usuario menciona "12pm" -> "start_time": "2023-08-25 12:00:00"

# REGLAS IMPORTANTES
- PRIORIDAD MÁXIMA: si el usuario menciona una hora específica (ej: "12:30", "a las 15:00"), DEBES usar EXACTAMENTE esa hora.
- Si la fecha de inicio es "hoy", usa la fecha actual con la hora mencionada o la hora actual si no se especifica.
- Si se menciona "mañana", usa la fecha de mañana con la hora mencionada.
- Convierte cualquier frecuencia (como "cada 8 horas") a un número de horas.
- Convierte cualquier duración (como "5 días", "1 semana") a un número de días.
- Si no puedes determinar algún valor, usa valores por defecto razonables.
- NO INCLUYAS ningún texto explicativo o comentarios fuera del JSON.
- Asegúrate de que el JSON sea válido y esté correctamente formateado.
`

// BuildPrompt renders the extraction prompt with the current date and
// time so relative phrases like "hoy" have an anchor on the model side
// too, even though resolution happens locally afterwards.
func BuildPrompt(now time.Time, userMessage string) string {
	return fmt.Sprintf(promptTemplate, now.Format("2006-01-02"), now.Format("15:04:05"), userMessage)
}
