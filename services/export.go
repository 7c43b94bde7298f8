package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"study-quiz-platform/models"
)

// BuildQuizResultsWorkbook renders a user's attempt history as an XLSX
// workbook with one summary sheet.
func BuildQuizResultsWorkbook(results []models.QuizResult) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Quiz History"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Completed At", "Source File", "Quiz Type", "Questions",
		"Total Score", "Max Score", "Percentage",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIdx, result := range results {
		row := rowIdx + 2

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), result.CompletedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), result.SourceFile)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), string(result.QuizType))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), len(result.Questions))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), result.TotalScore)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), result.MaxScore)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), result.Percentage)
	}

	// Widen the file name and timestamp columns for readability
	f.SetColWidth(sheetName, "A", "B", 24)

	return f, nil
}
