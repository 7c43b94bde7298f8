package routes

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"study-quiz-platform/internal/ai"
	"study-quiz-platform/internal/config"
	"study-quiz-platform/middleware"
	"study-quiz-platform/models"
	"study-quiz-platform/services"
	"study-quiz-platform/utils"
)

type generateRequest struct {
	Prompt      string `json:"prompt" binding:"required"`
	FileContent string `json:"file_content"`
}

type summarizeRequest struct {
	Content string `json:"content" binding:"required"`
}

func SetupGenerateRoutes(
	router *gin.Engine,
	cfg *config.Config,
	aiClient *ai.Client,
	summarizer *services.SummarizationService,
	flashcards *services.FlashcardGenerator,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")
	api.Use(authMiddleware.RequireAuth())

	// Raw generation proxy. The prompt may reference the uploaded content
	// with a ${content} placeholder.
	api.POST("/generate", func(c *gin.Context) {
		var req generateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		prompt := req.Prompt
		if req.FileContent != "" {
			if strings.Contains(prompt, "${content}") {
				prompt = strings.ReplaceAll(prompt, "${content}", req.FileContent)
			} else {
				prompt = prompt + "\n\n" + req.FileContent
			}
		}

		response, err := aiClient.Generate(c.Request.Context(), ai.GeminiRequest{
			Contents: []ai.Content{{Parts: []ai.Part{{Text: prompt}}}},
		})
		if err != nil {
			respondPipelineError(c, err)
			return
		}

		// Clients consume the upstream response shape directly
		c.JSON(http.StatusOK, response)
	})

	api.POST("/summarize", func(c *gin.Context) {
		var req summarizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		summary, err := summarizer.Summarize(c.Request.Context(), req.Content)
		if err != nil {
			respondPipelineError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"summary": summary})
	})

	// Solve a problem captured as an image
	api.POST("/solve-problem", func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			utils.RespondWithBadRequest(c, "An image file is required", gin.H{"error": err.Error()})
			return
		}
		if fileHeader.Size > cfg.MaxImageSize {
			utils.RespondWithError(c, http.StatusRequestEntityTooLarge, "image_too_large",
				"Image exceeds the size limit", nil)
			return
		}

		mimeType := fileHeader.Header.Get("Content-Type")
		if !utils.IsValidImageType(mimeType) {
			utils.RespondWithError(c, http.StatusUnsupportedMediaType, "unsupported_media_type",
				"Only JPEG, PNG, GIF and WebP images are supported", nil)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to read uploaded image", nil)
			return
		}
		defer file.Close()

		imageData, err := io.ReadAll(file)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to read uploaded image", nil)
			return
		}

		solution, err := summarizer.SolveProblem(c.Request.Context(), imageData, mimeType)
		if err != nil {
			respondPipelineError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"solution": solution})
	})

	api.POST("/flashcards/generate", func(c *gin.Context) {
		var req models.GenerateFlashcardsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		userID := middleware.GetUserID(c)
		cards, err := flashcards.Generate(c.Request.Context(), userID, req.Title, req.Content)
		if err != nil {
			respondPipelineError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"flashcards": cards})
	})
}
