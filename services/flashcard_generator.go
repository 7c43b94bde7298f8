package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"study-quiz-platform/internal/ai"
	"study-quiz-platform/internal/pipeline"
	"study-quiz-platform/models"
)

// GeneratedFlashcard is one card parsed out of the model's JSON reply.
type GeneratedFlashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// FlashcardGenerator turns study material into persisted flashcards via the
// generation service.
type FlashcardGenerator struct {
	collection *mongo.Collection
	aiClient   *ai.Client
}

func NewFlashcardGenerator(db *mongo.Database, aiClient *ai.Client) *FlashcardGenerator {
	return &FlashcardGenerator{
		collection: db.Collection("flashcards"),
		aiClient:   aiClient,
	}
}

// Generate asks the model for flashcards, parses the JSON reply, and persists
// the cards under the given title for the user.
func (g *FlashcardGenerator) Generate(ctx context.Context, userID, title, content string) ([]models.Flashcard, error) {
	reply, err := g.aiClient.GenerateText(ctx, pipeline.FlashcardsPrompt(content))
	if err != nil {
		return nil, err
	}

	generated, err := ParseFlashcardsReply(reply)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = "Generated flashcards"
	}

	now := time.Now()
	cards := make([]models.Flashcard, 0, len(generated))
	docs := make([]interface{}, 0, len(generated))
	for _, card := range generated {
		flashcard := models.Flashcard{
			UserID:    userID,
			Title:     title,
			Question:  card.Front,
			Answer:    card.Back,
			CreatedAt: now,
			UpdatedAt: now,
		}
		cards = append(cards, flashcard)
		docs = append(docs, flashcard)
	}

	if len(docs) > 0 {
		if _, err := g.collection.InsertMany(ctx, docs); err != nil {
			return nil, fmt.Errorf("failed to save flashcards: %w", err)
		}
	}

	return cards, nil
}

// ParseFlashcardsReply extracts the JSON card array from a model reply,
// tolerating markdown code fences and surrounding prose.
func ParseFlashcardsReply(reply string) ([]GeneratedFlashcard, error) {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	// Fall back to the outermost bracket pair when the model wrapped the
	// array in prose
	if !strings.HasPrefix(cleaned, "[") {
		start := strings.Index(cleaned, "[")
		end := strings.LastIndex(cleaned, "]")
		if start == -1 || end == -1 || end < start {
			return nil, fmt.Errorf("reply contains no JSON array")
		}
		cleaned = cleaned[start : end+1]
	}

	var cards []GeneratedFlashcard
	if err := json.Unmarshal([]byte(cleaned), &cards); err != nil {
		return nil, fmt.Errorf("failed to parse flashcards reply: %w", err)
	}

	usable := cards[:0]
	for _, card := range cards {
		if strings.TrimSpace(card.Front) != "" && strings.TrimSpace(card.Back) != "" {
			usable = append(usable, card)
		}
	}
	if len(usable) == 0 {
		return nil, fmt.Errorf("reply contained no usable flashcards")
	}

	return usable, nil
}
