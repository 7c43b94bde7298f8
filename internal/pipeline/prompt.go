package pipeline

import (
	"fmt"

	"study-quiz-platform/models"
)

// The literal labels below (numbered markers, "Correct:", "Answer:",
// "Key Points:") are a machine-parseable contract consumed by ParseQuestions.
// Changing a template requires updating the parser in lockstep.

const multiplePromptTemplate = `Generate 5 multiple-choice questions with 4 options (A-D) from this content: %s
For each question:
1. Make the correct answer clear and unambiguous
2. Label the correct answer as 'Correct: X' where X is A, B, C, or D
3. Ensure all options are plausible but only one is correct
4. Format each question EXACTLY as follows:

   1. [question text]
   A) [option A]
   B) [option B]
   C) [option C]
   D) [option D]
   Correct: [letter]

   (Make sure to include a blank line between questions and keep each question's content together)`

const shortPromptTemplate = `Generate 5 short answer questions from this content: %s
For each question:
1. Make the expected answer clear and concise
2. Format each question EXACTLY as follows:

   1. [question text]
   Answer: [expected answer]

   (Make sure to include a blank line between questions)`

const longPromptTemplate = `Generate 3 essay questions from this content: %s
For each question:
1. Provide clear key points that should be addressed
2. Format each question EXACTLY as follows:

   1. [question text]
   Key Points: [list of key points, one per line]

   (Make sure to include a blank line between questions)`

// BuildPrompt renders a generation prompt for one chunk and question type.
// Unknown types yield an empty string.
func BuildPrompt(chunk string, questionType models.QuestionType) string {
	switch questionType {
	case models.QuestionTypeMultiple:
		return fmt.Sprintf(multiplePromptTemplate, chunk)
	case models.QuestionTypeShort:
		return fmt.Sprintf(shortPromptTemplate, chunk)
	case models.QuestionTypeLong:
		return fmt.Sprintf(longPromptTemplate, chunk)
	}
	return ""
}

// SummarizePrompt renders the study-notes summarization prompt.
func SummarizePrompt(content string) string {
	return fmt.Sprintf("Summarize the following study material into concise, well-organized notes. Use short paragraphs and bullet points where helpful:\n\n%s", content)
}

// SolveProblemPrompt is sent alongside an uploaded problem image.
func SolveProblemPrompt() string {
	return "Solve the problem shown in this image. Explain each step of the solution clearly and state the final answer."
}

// FlashcardsPrompt asks for a strict JSON array so the reply can be
// unmarshalled directly.
func FlashcardsPrompt(content string) string {
	return fmt.Sprintf(`Generate 10 flashcards from this content: %s

Return ONLY a JSON array with no surrounding text or code fences, where each element has exactly two string fields "front" (a question or term) and "back" (the answer or definition). Example:
[{"front":"What is X?","back":"X is ..."}]`, content)
}
