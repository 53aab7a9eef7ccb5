package plan

import "fmt"

// The two fallback variants intentionally produce slightly different canned
// content: SynthesizePrimary serves explicit mock-mode requests, while
// SynthesizeRecovery covers provider failures. Both are pure and total.

// SynthesizePrimary builds the deterministic blocks-shape plan returned when
// mock mode is explicitly requested.
func SynthesizePrimary(req PlanRequest) RawPlan {
	return RawPlan{
		"title":         fmt.Sprintf("Plan de estudio: %s (%s)", req.Objective, req.Level),
		"goal":          req.Objective,
		"level":         req.Level,
		"hoursPerWeek":  req.HoursPerWeek,
		"durationWeeks": float64(req.Weeks),
		"blocks": []interface{}{
			RawPlan{
				"title":   "Semana 1: Fundamentos",
				"bullets": []interface{}{"Conceptos básicos", "Configura tu entorno de trabajo", "Primeros ejercicios guiados"},
				"project": "Mini proyecto introductorio aplicando lo aprendido",
				"role":    "Estudiante",
			},
			RawPlan{
				"title":   "Semana 2: Práctica guiada",
				"bullets": []interface{}{"Ejercicios progresivos", "Revisión de errores comunes", "Construcción de un caso real"},
				"project": "Proyecto práctico con datos reales",
				"role":    "Estudiante",
			},
		},
		"rubric": []interface{}{
			RawPlan{"criterion": "Comprensión de fundamentos", "level": "Básico"},
			RawPlan{"criterion": "Aplicación práctica", "level": "Intermedio"},
		},
	}
}

// SynthesizeRecovery builds the blocks-shape plan used when the provider call
// fails and recovery conditions are met.
func SynthesizeRecovery(req PlanRequest) RawPlan {
	return RawPlan{
		"title":         fmt.Sprintf("Plan de respaldo: %s — %d semanas", req.Objective, req.Weeks),
		"goal":          req.Objective,
		"level":         req.Level,
		"hoursPerWeek":  req.HoursPerWeek,
		"durationWeeks": float64(req.Weeks),
		"blocks": []interface{}{
			RawPlan{
				"title":   "Semana 1: Punto de partida",
				"bullets": []interface{}{"Repasa los requisitos previos", "Define tu meta semanal"},
				"project": "Documento con tu plan personal de trabajo",
				"role":    "Estudiante",
			},
			RawPlan{
				"title":   "Semana 2: Avance autónomo",
				"bullets": []interface{}{"Material de estudio recomendado", "Autoevaluación de progreso"},
				"project": "Ejercicio integrador de la semana",
				"role":    "Estudiante",
			},
		},
		"rubric": []interface{}{
			RawPlan{"criterion": "Constancia semanal", "level": "Básico"},
			RawPlan{"criterion": "Entrega de proyectos", "level": "Intermedio"},
		},
	}
}
