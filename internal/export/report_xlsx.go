package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yamboly/tutor-dashboard-service/internal/analytics"
)

// ReportWorkbook renders a practice report as an XLSX workbook with one sheet
// per report section.
func ReportWorkbook(report *analytics.Report, studentName string) ([]byte, error) {
	f := excelize.NewFile()

	if err := writeSummarySheet(f, report, studentName); err != nil {
		return nil, err
	}
	if err := writeTopicsSheet(f, report); err != nil {
		return nil, err
	}
	if err := writeCoursesSheet(f, report); err != nil {
		return nil, err
	}
	if err := writeAdviceSheet(f, report); err != nil {
		return nil, err
	}

	// Drop the default sheet excelize creates.
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, report *analytics.Report, studentName string) error {
	const sheetName = "Resumen"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	rows := [][]interface{}{
		{"Estudiante", studentName},
		{"Generado", report.GeneratedAt.Format("2006-01-02 15:04")},
		{"Datos suficientes", yesNo(report.HasSufficientData)},
	}

	if report.HasSufficientData {
		rows = append(rows,
			[]interface{}{"Sesiones de chat", report.Summary.TotalSessions},
			[]interface{}{"Ejercicios generados", report.Summary.TotalExercises},
			[]interface{}{"Ejercicios completados", report.Summary.CompletedExercises},
			[]interface{}{"Tasa de finalización", fmt.Sprintf("%.1f%%", report.Summary.CompletionRate)},
			[]interface{}{"Racha actual (días)", report.Habits.CurrentStreak},
			[]interface{}{"Frecuencia de estudio", report.Habits.Frequency},
			[]interface{}{"Consistencia", report.Habits.Consistency},
		)
	}

	for i, row := range rows {
		for j, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+j, i+1)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	return nil
}

func writeTopicsSheet(f *excelize.File, report *analytics.Report) error {
	const sheetName = "Temas"

	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []string{
		"Tema", "Intentos", "Aciertos", "Errores", "Tasa de éxito",
		"Dificultad media", "Tendencia", "Riesgo", "Recomendaciones",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, topic := range report.Topics {
		row := []interface{}{
			topic.Topic,
			topic.TotalAttempts,
			topic.TotalSuccess,
			topic.TotalErrors,
			fmt.Sprintf("%.1f%%", topic.SuccessRate*100),
			fmt.Sprintf("%.1f", topic.AvgDifficulty),
			string(topic.TemporalTrend),
			string(topic.Risk),
			strings.Join(topic.Recommendations, "\n"),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	return nil
}

func writeCoursesSheet(f *excelize.File, report *analytics.Report) error {
	const sheetName = "Cursos"

	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []string{
		"Curso", "Intentos", "Tasa de éxito", "Dificultad media",
		"Temas practicados", "Ejercicios", "Completados", "Sesiones de chat",
		"Días sin practicar", "Recomendaciones",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, course := range report.PracticedCourses {
		days := ""
		if course.DaysSincePractice != nil {
			days = fmt.Sprintf("%d", *course.DaysSincePractice)
		}
		row := []interface{}{
			course.CourseName,
			course.TotalAttempts,
			fmt.Sprintf("%.1f%%", course.SuccessRate),
			fmt.Sprintf("%.1f", course.AvgDifficulty),
			course.UniqueTopics,
			course.ExercisesCount,
			course.CompletedExercises,
			course.ChatSessions,
			days,
			strings.Join(course.Recommendations, "\n"),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Unstarted courses get listed below the practiced ones.
	offset := len(report.PracticedCourses) + 3
	if len(report.UnpracticedCourses) > 0 {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", offset), "Cursos sin práctica")
		for i, course := range report.UnpracticedCourses {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", offset+1+i), course.CourseName)
		}
	}

	return nil
}

func writeAdviceSheet(f *excelize.File, report *analytics.Report) error {
	const sheetName = "Consejos"

	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	f.SetCellValue(sheetName, "A1", "Consejos generales")
	row := 2
	for _, advice := range report.GeneralAdvice {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), advice)
		row++
	}

	if len(report.UnpracticedAdvice) > 0 {
		row++
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Para cursos sin iniciar")
		row++
		for _, advice := range report.UnpracticedAdvice {
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), advice)
			row++
		}
	}

	return nil
}

func yesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}
