package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionType selects the prompt template and the parser variant. The two
// must stay in lockstep with the labels the templates ask the model to emit.
type QuestionType string

const (
	QuestionTypeMultiple QuestionType = "multiple"
	QuestionTypeShort    QuestionType = "short"
	QuestionTypeLong     QuestionType = "long"
)

// Valid reports whether t is one of the supported question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeMultiple, QuestionTypeShort, QuestionTypeLong:
		return true
	}
	return false
}

// GeneratedQuestion is one question parsed out of a model reply. Which fields
// are populated depends on the question type: multiple fills Options and
// CorrectAnswer, short fills ExpectedAnswer, long fills KeyPoints.
type GeneratedQuestion struct {
	Question       string   `json:"question"`
	Options        []string `json:"options,omitempty"`
	CorrectAnswer  string   `json:"correct_answer,omitempty"`
	ExpectedAnswer string   `json:"expected_answer,omitempty"`
	KeyPoints      []string `json:"key_points,omitempty"`
}

// QuestionResult is one scored question inside a persisted attempt.
type QuestionResult struct {
	Question      string `bson:"question" json:"question"`
	UserAnswer    string `bson:"user_answer" json:"user_answer"`
	CorrectAnswer string `bson:"correct_answer" json:"correct_answer"`
	IsCorrect     bool   `bson:"is_correct" json:"is_correct"`
	Score         int    `bson:"score" json:"score"`
}

// QuizScore is the scorer output before persistence.
type QuizScore struct {
	TotalScore int              `json:"total_score"`
	MaxScore   int              `json:"max_score"`
	Percentage float64          `json:"percentage"`
	Questions  []QuestionResult `json:"questions"`
}

// QuizResult is one completed attempt, append-only per user.
type QuizResult struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	QuizType    QuestionType       `bson:"quiz_type" json:"quiz_type"`
	SourceFile  string             `bson:"source_file" json:"source_file"`
	Questions   []QuestionResult   `bson:"questions" json:"questions"`
	TotalScore  int                `bson:"total_score" json:"total_score"`
	MaxScore    int                `bson:"max_score" json:"max_score"`
	Percentage  float64            `bson:"percentage" json:"percentage"`
	CompletedAt time.Time          `bson:"completed_at" json:"completed_at"`
}

type SaveQuizResultRequest struct {
	QuizType   QuestionType     `json:"quiz_type" binding:"required,oneof=multiple short long"`
	SourceFile string           `json:"source_file" binding:"required"`
	Questions  []QuestionResult `json:"questions" binding:"required"`
	TotalScore int              `json:"total_score"`
	MaxScore   int              `json:"max_score" binding:"required"`
	Percentage float64          `json:"percentage"`
}

type SubmitQuizRequest struct {
	QuizType   QuestionType        `json:"quiz_type" binding:"required,oneof=multiple short long"`
	SourceFile string              `json:"source_file" binding:"required"`
	Questions  []GeneratedQuestion `json:"questions" binding:"required,min=1"`
	Answers    map[int]string      `json:"answers" binding:"required"`
}

type RegenerateQuizRequest struct {
	DocumentID   string       `json:"document_id" binding:"required"`
	QuestionType QuestionType `json:"question_type" binding:"required,oneof=multiple short long"`
}

type GenerateQuizResponse struct {
	DocumentID string              `json:"document_id"`
	SourceFile string              `json:"source_file"`
	QuizType   QuestionType        `json:"quiz_type"`
	Questions  []GeneratedQuestion `json:"questions"`
	Chunks     int                 `json:"chunks"`
}

// QuizStats aggregates a user's attempt history for the dashboard.
type QuizStats struct {
	TotalQuizzes  int                  `json:"total_quizzes"`
	AverageScore  float64              `json:"average_score"`
	QuizTypeStats map[QuestionType]int `json:"quiz_type_stats"`
	RecentScores  []RecentScore        `json:"recent_scores"`
	Strengths     []QuestionType       `json:"strengths"`
	Weaknesses    []QuestionType       `json:"weaknesses"`
}

type RecentScore struct {
	Date       time.Time    `json:"date"`
	Score      float64      `json:"score"`
	Type       QuestionType `json:"type"`
	SourceFile string       `json:"source_file"`
}
