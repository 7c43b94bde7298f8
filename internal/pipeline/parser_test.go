package pipeline

import (
	"reflect"
	"testing"

	"study-quiz-platform/models"
)

func TestParseQuestionsMultiple(t *testing.T) {
	reply := "1. Q?\nA) x\nB) y\nC) z\nD) w\nCorrect: B"

	questions := ParseQuestions(reply, models.QuestionTypeMultiple)
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}

	q := questions[0]
	if q.Question != "Q?" {
		t.Errorf("question: got %q, want %q", q.Question, "Q?")
	}
	if !reflect.DeepEqual(q.Options, []string{"x", "y", "z", "w"}) {
		t.Errorf("options: got %v, want [x y z w]", q.Options)
	}
	if q.CorrectAnswer != "B" {
		t.Errorf("correct answer: got %q, want %q", q.CorrectAnswer, "B")
	}
}

func TestParseQuestionsMultipleSeveralBlocks(t *testing.T) {
	reply := `1. What is the capital of France?
A) London
B) Paris
C) Berlin
D) Madrid
Correct: B

2. Which planet is largest?
A) Earth
B) Mars
C) Jupiter
D) Venus
Correct: C`

	questions := ParseQuestions(reply, models.QuestionTypeMultiple)
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0].CorrectAnswer != "B" || questions[1].CorrectAnswer != "C" {
		t.Errorf("correct answers: got %q/%q, want B/C",
			questions[0].CorrectAnswer, questions[1].CorrectAnswer)
	}
	if questions[1].Question != "Which planet is largest?" {
		t.Errorf("second question: got %q", questions[1].Question)
	}
}

func TestParseQuestionsMultipleMissingCorrectMarker(t *testing.T) {
	reply := "1. Q?\nA) x\nB) y\nC) z\nD) w"

	questions := ParseQuestions(reply, models.QuestionTypeMultiple)
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	if questions[0].CorrectAnswer != "" {
		t.Errorf("missing marker should yield empty correct answer, got %q", questions[0].CorrectAnswer)
	}
}

func TestParseQuestionsShort(t *testing.T) {
	reply := "1. Q?\nAnswer: 42"

	questions := ParseQuestions(reply, models.QuestionTypeShort)
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	if questions[0].Question != "Q?" {
		t.Errorf("question: got %q, want %q", questions[0].Question, "Q?")
	}
	if questions[0].ExpectedAnswer != "42" {
		t.Errorf("expected answer: got %q, want %q", questions[0].ExpectedAnswer, "42")
	}
}

func TestParseQuestionsLong(t *testing.T) {
	reply := `1. Discuss the causes of the French Revolution.
Key Points:
- Economic crisis
- Social inequality
- Enlightenment ideas`

	questions := ParseQuestions(reply, models.QuestionTypeLong)
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	if questions[0].Question != "Discuss the causes of the French Revolution." {
		t.Errorf("question: got %q", questions[0].Question)
	}
	want := []string{"Economic crisis", "Social inequality", "Enlightenment ideas"}
	if !reflect.DeepEqual(questions[0].KeyPoints, want) {
		t.Errorf("key points: got %v, want %v", questions[0].KeyPoints, want)
	}
}

func TestParseQuestionsUnknownType(t *testing.T) {
	questions := ParseQuestions("1. Q?\nAnswer: 42", models.QuestionType("essay"))
	if len(questions) != 0 {
		t.Errorf("unknown type: got %d questions, want 0", len(questions))
	}
}

func TestParseQuestionsNoiseDropped(t *testing.T) {
	questions := ParseQuestions("", models.QuestionTypeMultiple)
	if len(questions) != 0 {
		t.Errorf("empty reply: got %d questions, want 0", len(questions))
	}
}
