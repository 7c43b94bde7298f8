package pipeline

import (
	"regexp"
	"strings"

	"study-quiz-platform/models"
)

var (
	questionMarker = regexp.MustCompile(`(?m)^\s*\d+\.`)
	optionMarker   = regexp.MustCompile(`^[A-D]\)\s*`)
	correctPattern = regexp.MustCompile(`Correct:\s*([A-Da-d])`)
)

// ParseQuestions converts a free-text model reply into structured questions.
// Parsing is best-effort string matching: malformed blocks produce partially
// populated records, and blocks yielding no usable fields are dropped as
// noise. An unknown question type returns an empty slice, not an error.
func ParseQuestions(reply string, questionType models.QuestionType) []models.GeneratedQuestion {
	switch questionType {
	case models.QuestionTypeMultiple:
		return parseMultiple(reply)
	case models.QuestionTypeShort:
		return parseShort(reply)
	case models.QuestionTypeLong:
		return parseLong(reply)
	}
	return nil
}

// splitBlocks splits the reply on leading "<number>." markers and drops
// empty fragments.
func splitBlocks(reply string) []string {
	parts := questionMarker.Split(reply, -1)
	blocks := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			blocks = append(blocks, trimmed)
		}
	}
	return blocks
}

func parseMultiple(reply string) []models.GeneratedQuestion {
	var questions []models.GeneratedQuestion
	for _, block := range splitBlocks(reply) {
		lines := strings.Split(block, "\n")
		question := strings.TrimSpace(lines[0])

		var options []string
		for _, line := range lines[1:] {
			if len(options) == 4 {
				break
			}
			line = strings.TrimSpace(line)
			if line == "" || correctPattern.MatchString(line) {
				continue
			}
			options = append(options, optionMarker.ReplaceAllString(line, ""))
		}

		correctAnswer := ""
		if match := correctPattern.FindStringSubmatch(block); match != nil {
			correctAnswer = strings.ToUpper(match[1])
		}

		if question == "" && len(options) == 0 {
			continue
		}
		questions = append(questions, models.GeneratedQuestion{
			Question:      question,
			Options:       options,
			CorrectAnswer: correctAnswer,
		})
	}
	return questions
}

func parseShort(reply string) []models.GeneratedQuestion {
	var questions []models.GeneratedQuestion
	for _, block := range splitBlocks(reply) {
		question, answer, _ := strings.Cut(block, "Answer:")
		question = strings.TrimSpace(question)
		answer = strings.TrimSpace(answer)

		if question == "" && answer == "" {
			continue
		}
		questions = append(questions, models.GeneratedQuestion{
			Question:       question,
			ExpectedAnswer: answer,
		})
	}
	return questions
}

func parseLong(reply string) []models.GeneratedQuestion {
	var questions []models.GeneratedQuestion
	for _, block := range splitBlocks(reply) {
		question, rest, _ := strings.Cut(block, "Key Points:")
		question = strings.TrimSpace(question)

		var keyPoints []string
		for _, line := range strings.Split(rest, "\n") {
			line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•"))
			if line != "" {
				keyPoints = append(keyPoints, line)
			}
		}

		if question == "" && len(keyPoints) == 0 {
			continue
		}
		questions = append(questions, models.GeneratedQuestion{
			Question:  question,
			KeyPoints: keyPoints,
		})
	}
	return questions
}
