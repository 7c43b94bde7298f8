package routes

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"study-quiz-platform/internal/ai"
	"study-quiz-platform/internal/config"
	"study-quiz-platform/internal/pipeline"
	"study-quiz-platform/middleware"
	"study-quiz-platform/models"
	"study-quiz-platform/services"
	"study-quiz-platform/utils"
)

func SetupQuizRoutes(router *gin.Engine, cfg *config.Config, quizService *services.QuizService, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")
	api.Use(authMiddleware.RequireAuth())

	// Upload a document and generate a quiz from it
	api.POST("/quiz/generate", func(c *gin.Context) {
		questionType := models.QuestionType(c.PostForm("question_type"))
		if !questionType.Valid() {
			utils.RespondWithBadRequest(c, "question_type must be one of: multiple, short, long", nil)
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			utils.RespondWithBadRequest(c, "A document file is required", gin.H{"error": err.Error()})
			return
		}
		if fileHeader.Size > cfg.MaxFileSize {
			utils.RespondWithError(c, http.StatusRequestEntityTooLarge, "file_too_large",
				fmt.Sprintf("File exceeds the %d byte limit", cfg.MaxFileSize), nil)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to read uploaded file", nil)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to read uploaded file", nil)
			return
		}

		mediaType := fileHeader.Header.Get("Content-Type")
		userID := middleware.GetUserID(c)

		response, err := quizService.GenerateQuiz(c.Request.Context(), userID, fileHeader.Filename, data, mediaType, questionType)
		if err != nil {
			respondPipelineError(c, err)
			return
		}

		c.JSON(http.StatusOK, response)
	})

	// Regenerate from cached document text, e.g. to switch question type
	api.POST("/quiz/regenerate", func(c *gin.Context) {
		var req models.RegenerateQuizRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		userID := middleware.GetUserID(c)
		response, err := quizService.RegenerateQuiz(c.Request.Context(), userID, req.DocumentID, req.QuestionType)
		if err != nil {
			if errors.Is(err, services.ErrDocumentNotFound) {
				utils.RespondWithNotFound(c, "Document not found")
				return
			}
			respondPipelineError(c, err)
			return
		}

		c.JSON(http.StatusOK, response)
	})

	// Score a completed quiz server-side and persist the attempt
	api.POST("/quiz/submit", func(c *gin.Context) {
		var req models.SubmitQuizRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		userID := middleware.GetUserID(c)
		result, err := quizService.SubmitQuiz(c.Request.Context(), userID, req)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to save quiz result", nil)
			return
		}

		c.JSON(http.StatusCreated, result)
	})

	// Persist a pre-scored attempt
	api.POST("/quiz-results", func(c *gin.Context) {
		var req models.SaveQuizResultRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		userID := middleware.GetUserID(c)
		result, err := quizService.SaveResult(c.Request.Context(), userID, req)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to save quiz result", nil)
			return
		}

		c.JSON(http.StatusCreated, result)
	})

	// Attempt history, newest first
	api.GET("/quiz-results", func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		results, err := quizService.ListResults(c.Request.Context(), userID)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to fetch quiz results", nil)
			return
		}

		c.JSON(http.StatusOK, results)
	})

	// Dashboard statistics
	api.GET("/quiz-stats", func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		stats, err := quizService.GetStats(c.Request.Context(), userID)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to compute quiz stats", nil)
			return
		}

		c.JSON(http.StatusOK, stats)
	})

	// XLSX download of attempt history
	api.GET("/quiz-results/export", func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		results, err := quizService.ListResults(c.Request.Context(), userID)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to fetch quiz results", nil)
			return
		}

		workbook, err := services.BuildQuizResultsWorkbook(results)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to build export", nil)
			return
		}
		defer workbook.Close()

		filename := fmt.Sprintf("quiz-history-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if err := workbook.Write(c.Writer); err != nil {
			utils.RespondWithInternalError(c, "Failed to write export", nil)
			return
		}
	})
}

// respondPipelineError maps pipeline and remote-service failures onto the
// error envelope with appropriate status codes.
func respondPipelineError(c *gin.Context, err error) {
	if errors.Is(err, pipeline.ErrUnsupportedMediaType) {
		utils.RespondWithError(c, http.StatusUnsupportedMediaType, "unsupported_media_type",
			"Only PDF, DOCX and plain text documents are supported", nil)
		return
	}

	var remoteErr *ai.RemoteError
	if errors.As(err, &remoteErr) {
		switch remoteErr.Kind {
		case ai.ErrRateLimited:
			utils.RespondWithError(c, http.StatusTooManyRequests, "generation_rate_limited",
				"The generation service is rate limiting requests. Please try again shortly.", nil)
		case ai.ErrUnauthorized:
			utils.RespondWithError(c, http.StatusBadGateway, "generation_unauthorized",
				"The generation service rejected our credentials", nil)
		case ai.ErrInvalidResponseShape:
			utils.RespondWithError(c, http.StatusBadGateway, "generation_invalid_response",
				"The generation service returned an unexpected response", nil)
		default:
			utils.RespondWithError(c, http.StatusBadGateway, "generation_failed",
				"Failed to reach the generation service", gin.H{"error": remoteErr.Detail})
		}
		return
	}

	utils.RespondWithError(c, http.StatusUnprocessableEntity, "extraction_failed",
		err.Error(), nil)
}
