package services

import (
	"testing"
	"time"

	"study-quiz-platform/models"
)

func attempt(quizType models.QuestionType, percentage float64, daysAgo int) models.QuizResult {
	return models.QuizResult{
		QuizType:    quizType,
		SourceFile:  "notes.pdf",
		Percentage:  percentage,
		CompletedAt: time.Now().Add(-time.Duration(daysAgo) * 24 * time.Hour),
	}
}

func TestComputeStatsEmptyHistory(t *testing.T) {
	stats := ComputeStats(nil)

	if stats.TotalQuizzes != 0 {
		t.Errorf("total quizzes: got %d, want 0", stats.TotalQuizzes)
	}
	if stats.AverageScore != 0 {
		t.Errorf("average score: got %v, want 0", stats.AverageScore)
	}
	if stats.RecentScores == nil || stats.Strengths == nil || stats.Weaknesses == nil {
		t.Error("empty history must still yield non-nil slices")
	}
}

func TestComputeStatsAveragesAndCounts(t *testing.T) {
	results := []models.QuizResult{
		attempt(models.QuestionTypeMultiple, 80, 0),
		attempt(models.QuestionTypeMultiple, 60, 1),
		attempt(models.QuestionTypeShort, 100, 2),
	}

	stats := ComputeStats(results)

	if stats.TotalQuizzes != 3 {
		t.Errorf("total quizzes: got %d, want 3", stats.TotalQuizzes)
	}
	if stats.AverageScore != 80 {
		t.Errorf("average score: got %v, want 80", stats.AverageScore)
	}
	if stats.QuizTypeStats[models.QuestionTypeMultiple] != 2 {
		t.Errorf("multiple count: got %d, want 2", stats.QuizTypeStats[models.QuestionTypeMultiple])
	}
	if stats.QuizTypeStats[models.QuestionTypeShort] != 1 {
		t.Errorf("short count: got %d, want 1", stats.QuizTypeStats[models.QuestionTypeShort])
	}
}

func TestComputeStatsStrengthsAndWeaknesses(t *testing.T) {
	results := []models.QuizResult{
		attempt(models.QuestionTypeMultiple, 90, 0),
		attempt(models.QuestionTypeMultiple, 70, 1),
		attempt(models.QuestionTypeShort, 40, 2),
	}

	stats := ComputeStats(results)

	// multiple averages 80 (>= 70); short averages 40 and never-attempted
	// long averages 0, both below 70
	if len(stats.Strengths) != 1 || stats.Strengths[0] != models.QuestionTypeMultiple {
		t.Errorf("strengths: got %v, want [multiple]", stats.Strengths)
	}
	wantWeak := []models.QuestionType{models.QuestionTypeShort, models.QuestionTypeLong}
	if len(stats.Weaknesses) != len(wantWeak) {
		t.Fatalf("weaknesses: got %v, want %v", stats.Weaknesses, wantWeak)
	}
	for i, qt := range wantWeak {
		if stats.Weaknesses[i] != qt {
			t.Errorf("weaknesses[%d]: got %v, want %v", i, stats.Weaknesses[i], qt)
		}
	}
}

func TestComputeStatsNeverAttemptedTypeIsWeakness(t *testing.T) {
	results := []models.QuizResult{
		attempt(models.QuestionTypeMultiple, 95, 0),
	}

	stats := ComputeStats(results)

	if len(stats.Weaknesses) != 2 {
		t.Fatalf("weaknesses: got %v, want the two unattempted types", stats.Weaknesses)
	}
	for _, qt := range stats.Weaknesses {
		if qt == models.QuestionTypeMultiple {
			t.Errorf("attempted strong type must not appear in weaknesses: %v", stats.Weaknesses)
		}
	}
}

func TestComputeStatsRecentScoresCapped(t *testing.T) {
	var results []models.QuizResult
	for i := 0; i < 8; i++ {
		results = append(results, attempt(models.QuestionTypeMultiple, float64(50+i), i))
	}

	stats := ComputeStats(results)

	if len(stats.RecentScores) != 5 {
		t.Fatalf("recent scores: got %d, want 5", len(stats.RecentScores))
	}
	// Results arrive newest first; the first recent score is the newest attempt
	if stats.RecentScores[0].Score != 50 {
		t.Errorf("first recent score: got %v, want 50", stats.RecentScores[0].Score)
	}
}
