package services

import (
	"context"
	"fmt"
	"strings"

	"study-quiz-platform/internal/ai"
	"study-quiz-platform/internal/pipeline"
)

// SummarizationService produces study-note summaries of pasted material.
type SummarizationService struct {
	aiClient *ai.Client
}

func NewSummarizationService(aiClient *ai.Client) *SummarizationService {
	return &SummarizationService{aiClient: aiClient}
}

func (s *SummarizationService) Summarize(ctx context.Context, content string) (string, error) {
	reply, err := s.aiClient.GenerateText(ctx, pipeline.SummarizePrompt(content))
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(reply)
	if summary == "" {
		return "", fmt.Errorf("empty summary returned")
	}

	return summary, nil
}

// SolveProblem sends a problem image to the model and returns the worked
// solution.
func (s *SummarizationService) SolveProblem(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	reply, err := s.aiClient.GenerateWithImage(ctx, pipeline.SolveProblemPrompt(), imageData, mimeType)
	if err != nil {
		return "", err
	}

	solution := strings.TrimSpace(reply)
	if solution == "" {
		return "", fmt.Errorf("empty solution returned")
	}

	return solution, nil
}
