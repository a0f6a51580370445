package analytics

import (
	"fmt"
)

// topicRecommendations maps an enriched topic aggregate to ordered guidance
// strings. Conditions are evaluated independently, in a fixed priority order;
// the fallback pair only applies when no earlier rule fired. Message texts are
// part of the report contract and must not be reworded.
func topicRecommendations(t TopicAggregate) []string {
	var recs []string

	if t.SuccessRate < 0.40 {
		if t.TotalAttempts < lowSampleAttempts {
			recs = append(recs, "Necesitas más práctica: genera al menos 5 ejercicios adicionales sobre este tema.")
		} else {
			recs = append(recs, "Revisa los conceptos fundamentales antes de continuar con ejercicios más complejos.")
		}
	}

	if t.AvgDifficulty > 4 {
		recs = append(recs, "Reduce temporalmente la dificultad: practica con ejercicios de nivel 2-3 antes de avanzar.")
	}

	switch t.TemporalTrend {
	case TrendWorsening:
		recs = append(recs, "⚠️ Atención: tu rendimiento está disminuyendo. Dedica tiempo extra a repasar este tema.")
	case TrendImproving:
		recs = append(recs, "✅ Buen progreso: mantén la práctica constante para consolidar el aprendizaje.")
	}

	if t.DifficultyRange > 2 {
		recs = append(recs, "Hay mucha variación en la dificultad: enfócate en un nivel específico antes de variar.")
	}

	if t.TotalAttempts > 20 && t.SuccessRate < 0.60 {
		recs = append(recs, "Considera usar el chat con tutor para aclarar dudas específicas sobre este tema.")
	}

	if len(recs) == 0 {
		if t.SuccessRate >= 0.80 {
			recs = append(recs, "Excelente dominio: puedes avanzar a temas más complejos o relacionarlos con otros.")
		} else {
			recs = append(recs, "Continúa practicando regularmente para mantener y mejorar tu nivel.")
		}
	}

	return recs
}

// maxCourseRecommendations caps the guidance shown per course; the most
// specific rules run first so the cap keeps the sharpest advice.
const maxCourseRecommendations = 3

// courseRecommendations builds the per-course guidance list. SuccessRate here
// is a percentage. Only courses with HasData get individual recommendations;
// unpracticed courses share the block from unpracticedCourseAdvice.
func courseRecommendations(c CourseAggregate) []string {
	var recs []string

	switch {
	case c.SuccessRate < 50:
		recs = append(recs, fmt.Sprintf("Tasa de éxito baja (%.1f%%): enfócate en repasar conceptos fundamentales antes de avanzar.", c.SuccessRate))
	case c.SuccessRate < 70:
		recs = append(recs, fmt.Sprintf("Tasa de éxito moderada (%.1f%%): continúa practicando para mejorar tu dominio.", c.SuccessRate))
	default:
		recs = append(recs, fmt.Sprintf("Excelente desempeño (%.1f%%): mantén este nivel y explora temas más avanzados.", c.SuccessRate))
	}

	switch {
	case c.AvgDifficulty > 4:
		recs = append(recs, "Dificultad muy alta: considera reducir el nivel temporalmente para consolidar bases.")
	case c.AvgDifficulty < 2:
		recs = append(recs, "Dificultad baja: puedes aumentar el nivel de desafío para maximizar el aprendizaje.")
	}

	if c.DaysSincePractice != nil {
		switch {
		case *c.DaysSincePractice > 14:
			recs = append(recs, fmt.Sprintf("⚠️ No has practicado este curso en %d días. Programa una sesión de repaso pronto.", *c.DaysSincePractice))
		case *c.DaysSincePractice > 7:
			recs = append(recs, fmt.Sprintf("Hace %d días que no practicas. Mantén la regularidad para no olvidar.", *c.DaysSincePractice))
		}
	}

	if c.UniqueTopics < 3 {
		recs = append(recs, fmt.Sprintf("Solo has practicado %d tema(s). Explora más temas del curso para un aprendizaje completo.", c.UniqueTopics))
	}

	if c.ExercisesCount > 0 {
		completion := float64(c.CompletedExercises) / float64(c.ExercisesCount) * 100
		if completion < 60 {
			recs = append(recs, fmt.Sprintf("Tienes %d ejercicios pendientes. Completarlos te ayudará a consolidar el aprendizaje.", c.ExercisesCount-c.CompletedExercises))
		}
	}

	if c.ChatSessions == 0 && c.SuccessRate < 70 {
		recs = append(recs, "No has usado el chat tutor para este curso. Considera hacer preguntas sobre temas difíciles.")
	}

	if len(recs) > maxCourseRecommendations {
		recs = recs[:maxCourseRecommendations]
	}
	return recs
}

// unpracticedCourseAdvice is the fixed starter plan shown once for all
// subscribed courses without any recorded activity.
func unpracticedCourseAdvice() []string {
	return []string{
		"Inicia tu aprendizaje: genera al menos 3-5 ejercicios para comenzar a construir tu base de conocimiento.",
		"Usa el chat tutor: haz preguntas sobre conceptos básicos para familiarizarte con el curso.",
		"Establece un plan: dedica tiempo específico cada semana para practicar estos cursos.",
		"Comienza con dificultad baja: empieza con ejercicios de nivel 1-2 para construir confianza.",
	}
}

// generalAdvice derives the closing study recommendations from habits and the
// risk/trend distribution across topics. A fixed fallback applies when no
// pattern fires.
func generalAdvice(habits StudyHabits, topics []TopicAggregate) []string {
	var recs []string

	if habits.Frequency == FrequencyLow {
		recs = append(recs, "Aumenta la frecuencia de estudio: intenta practicar al menos cada 2-3 días para mantener el ritmo.")
	}
	if habits.Consistency == ConsistencyIrregular {
		recs = append(recs, "Establece un horario fijo de estudio: la consistencia es clave para el aprendizaje efectivo.")
	}
	if habits.CurrentStreak < 3 {
		recs = append(recs, "Mantén tu racha de estudio: practica diariamente para construir hábitos sólidos.")
	}

	var highRisk, improving int
	for _, t := range topics {
		if t.Risk == RiskHigh {
			highRisk++
		}
		if t.TemporalTrend == TrendImproving {
			improving++
		}
	}
	if highRisk > 2 {
		recs = append(recs, fmt.Sprintf("Tienes %d temas de alta prioridad: enfócate en uno a la vez para evitar sobrecarga.", highRisk))
	}
	if improving > 0 {
		recs = append(recs, fmt.Sprintf("Excelente: %d tema(s) muestran mejora continua. Mantén este enfoque en los demás.", improving))
	}

	if len(recs) == 0 {
		recs = []string{
			"Continúa con tu rutina actual: estás en buen camino.",
			"Revisa semanalmente tus temas débiles para mantener el progreso.",
			"Usa ejercicios adaptativos para medir tu evolución.",
		}
	}
	return recs
}
