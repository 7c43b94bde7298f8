package pipeline

import (
	"strings"

	"study-quiz-platform/models"
)

// Score compares submitted answers to parsed questions. Multiple-choice
// answers match the correct option letter case-insensitively. Short and long
// answers score correct whenever non-empty; there is no semantic grading.
// Score per question is 0 or 1.
func Score(questions []models.GeneratedQuestion, answers map[int]string, questionType models.QuestionType) models.QuizScore {
	results := make([]models.QuestionResult, 0, len(questions))
	totalScore := 0

	for i, question := range questions {
		userAnswer := strings.TrimSpace(answers[i])

		var isCorrect bool
		correctAnswer := question.CorrectAnswer
		switch questionType {
		case models.QuestionTypeMultiple:
			isCorrect = userAnswer != "" && strings.EqualFold(userAnswer, question.CorrectAnswer)
		default:
			// Answered means correct for free-text types
			isCorrect = userAnswer != ""
			correctAnswer = question.ExpectedAnswer
		}

		score := 0
		if isCorrect {
			score = 1
			totalScore++
		}

		results = append(results, models.QuestionResult{
			Question:      question.Question,
			UserAnswer:    userAnswer,
			CorrectAnswer: correctAnswer,
			IsCorrect:     isCorrect,
			Score:         score,
		})
	}

	maxScore := len(questions)
	percentage := 0.0
	if maxScore > 0 {
		percentage = 100.0 * float64(totalScore) / float64(maxScore)
	}

	return models.QuizScore{
		TotalScore: totalScore,
		MaxScore:   maxScore,
		Percentage: percentage,
		Questions:  results,
	}
}
