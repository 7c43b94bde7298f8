package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"study-quiz-platform/internal/ai"
	"study-quiz-platform/internal/config"
	"study-quiz-platform/internal/pipeline"
	"study-quiz-platform/models"
)

// QuizService runs the document-to-quiz pipeline and manages attempt history.
type QuizService struct {
	results   *mongo.Collection
	documents *DocumentStore
	aiClient  *ai.Client
	config    *config.Config
}

func NewQuizService(db *mongo.Database, documents *DocumentStore, aiClient *ai.Client, cfg *config.Config) *QuizService {
	return &QuizService{
		results:   db.Collection("quiz_results"),
		documents: documents,
		aiClient:  aiClient,
		config:    cfg,
	}
}

// GenerateQuiz extracts text from an uploaded file, caches it, and generates
// questions of the requested type.
func (s *QuizService) GenerateQuiz(ctx context.Context, userID, filename string, data []byte, mediaType string, questionType models.QuestionType) (*models.GenerateQuizResponse, error) {
	text, err := pipeline.Extract(data, mediaType)
	if err != nil {
		return nil, err
	}

	documentID, err := s.documents.Save(ctx, userID, filename, mediaType, text)
	if err != nil {
		return nil, err
	}

	questions, chunkCount, err := s.generateFromText(ctx, text, questionType)
	if err != nil {
		return nil, err
	}

	return &models.GenerateQuizResponse{
		DocumentID: documentID,
		SourceFile: filename,
		QuizType:   questionType,
		Questions:  questions,
		Chunks:     chunkCount,
	}, nil
}

// RegenerateQuiz reruns generation from cached document text, so a user can
// switch question type without re-uploading.
func (s *QuizService) RegenerateQuiz(ctx context.Context, userID, documentID string, questionType models.QuestionType) (*models.GenerateQuizResponse, error) {
	doc, text, err := s.documents.Load(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}

	questions, chunkCount, err := s.generateFromText(ctx, text, questionType)
	if err != nil {
		return nil, err
	}

	return &models.GenerateQuizResponse{
		DocumentID: doc.ID,
		SourceFile: doc.Filename,
		QuizType:   questionType,
		Questions:  questions,
		Chunks:     chunkCount,
	}, nil
}

// generateFromText chunks the text and asks the model for questions. Only the
// first MaxQuizChunks chunks are used; when more than one is allowed they are
// processed sequentially and the parsed questions merged in order.
func (s *QuizService) generateFromText(ctx context.Context, text string, questionType models.QuestionType) ([]models.GeneratedQuestion, int, error) {
	chunks := pipeline.SplitChunks(text, s.config.MaxChunkSize)
	if len(chunks) == 0 {
		return nil, 0, fmt.Errorf("document contains no extractable text")
	}

	limit := s.config.MaxQuizChunks
	if limit <= 0 || limit > len(chunks) {
		limit = len(chunks)
	}

	var questions []models.GeneratedQuestion
	for _, chunk := range chunks[:limit] {
		prompt := pipeline.BuildPrompt(chunk, questionType)
		reply, err := s.aiClient.GenerateText(ctx, prompt)
		if err != nil {
			return nil, 0, err
		}
		questions = append(questions, pipeline.ParseQuestions(reply, questionType)...)
	}

	if len(questions) == 0 {
		return nil, 0, fmt.Errorf("no questions could be parsed from the generated reply")
	}

	return questions, len(chunks), nil
}

// SubmitQuiz scores a completed quiz server-side and persists the attempt.
func (s *QuizService) SubmitQuiz(ctx context.Context, userID string, req models.SubmitQuizRequest) (*models.QuizResult, error) {
	score := pipeline.Score(req.Questions, req.Answers, req.QuizType)

	result := models.QuizResult{
		UserID:      userID,
		QuizType:    req.QuizType,
		SourceFile:  req.SourceFile,
		Questions:   score.Questions,
		TotalScore:  score.TotalScore,
		MaxScore:    score.MaxScore,
		Percentage:  score.Percentage,
		CompletedAt: time.Now(),
	}

	inserted, err := s.results.InsertOne(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}
	if oid, ok := inserted.InsertedID.(primitive.ObjectID); ok {
		result.ID = oid
	}

	return &result, nil
}

// SaveResult persists a pre-scored attempt submitted by the client.
func (s *QuizService) SaveResult(ctx context.Context, userID string, req models.SaveQuizResultRequest) (*models.QuizResult, error) {
	result := models.QuizResult{
		UserID:      userID,
		QuizType:    req.QuizType,
		SourceFile:  req.SourceFile,
		Questions:   req.Questions,
		TotalScore:  req.TotalScore,
		MaxScore:    req.MaxScore,
		Percentage:  req.Percentage,
		CompletedAt: time.Now(),
	}

	inserted, err := s.results.InsertOne(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}
	if oid, ok := inserted.InsertedID.(primitive.ObjectID); ok {
		result.ID = oid
	}

	return &result, nil
}

// ListResults returns the user's attempts, newest first.
func (s *QuizService) ListResults(ctx context.Context, userID string) ([]models.QuizResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}})
	cursor, err := s.results.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quiz results: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.QuizResult{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode quiz results: %w", err)
	}

	return results, nil
}

// GetStats aggregates a user's attempt history for the dashboard.
func (s *QuizService) GetStats(ctx context.Context, userID string) (*models.QuizStats, error) {
	results, err := s.ListResults(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ComputeStats(results), nil
}

// ComputeStats derives dashboard statistics from a list of attempts sorted
// newest first. A question type with average percentage of 70 or above is a
// strength; below 70 is a weakness.
func ComputeStats(results []models.QuizResult) *models.QuizStats {
	stats := &models.QuizStats{
		QuizTypeStats: map[models.QuestionType]int{},
		RecentScores:  []models.RecentScore{},
		Strengths:     []models.QuestionType{},
		Weaknesses:    []models.QuestionType{},
	}

	if len(results) == 0 {
		return stats
	}

	stats.TotalQuizzes = len(results)

	totalPct := 0.0
	typeTotals := map[models.QuestionType]float64{}
	for _, r := range results {
		totalPct += r.Percentage
		stats.QuizTypeStats[r.QuizType]++
		typeTotals[r.QuizType] += r.Percentage
	}
	stats.AverageScore = totalPct / float64(len(results))

	for i, r := range results {
		if i >= 5 {
			break
		}
		stats.RecentScores = append(stats.RecentScores, models.RecentScore{
			Date:       r.CompletedAt,
			Score:      r.Percentage,
			Type:       r.QuizType,
			SourceFile: r.SourceFile,
		})
	}

	// Every type is classified once any attempt exists; a never-attempted
	// type averages 0 and lands in weaknesses
	for _, qt := range []models.QuestionType{models.QuestionTypeMultiple, models.QuestionTypeShort, models.QuestionTypeLong} {
		avg := 0.0
		if count := stats.QuizTypeStats[qt]; count > 0 {
			avg = typeTotals[qt] / float64(count)
		}
		if avg >= 70 {
			stats.Strengths = append(stats.Strengths, qt)
		} else {
			stats.Weaknesses = append(stats.Weaknesses, qt)
		}
	}

	return stats
}
