package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"study-quiz-platform/internal/config"
	"study-quiz-platform/middleware"
	"study-quiz-platform/models"
	"study-quiz-platform/utils"
)

func SetupStudyEventRoutes(router *gin.Engine, cfg *config.Config, mongoClient *mongo.Client, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")
	api.Use(authMiddleware.RequireAuth())

	eventsCollection := mongoClient.Database(cfg.DBName).Collection("study_events")

	// Events sorted by start date, soonest first
	api.GET("/study-events", func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
		cursor, err := eventsCollection.Find(context.Background(), bson.M{"user_id": userID}, opts)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to fetch study events", nil)
			return
		}
		defer cursor.Close(context.Background())

		events := []models.StudyEvent{}
		if err := cursor.All(context.Background(), &events); err != nil {
			utils.RespondWithInternalError(c, "Failed to decode study events", nil)
			return
		}

		c.JSON(http.StatusOK, events)
	})

	api.POST("/study-events", func(c *gin.Context) {
		var req models.StudyEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Title, subject and dates are required", gin.H{"error": err.Error()})
			return
		}
		if req.EndDate.Before(req.StartDate) {
			utils.RespondWithBadRequest(c, "end_date must not be before start_date", nil)
			return
		}

		event := models.StudyEvent{
			UserID:      middleware.GetUserID(c),
			Title:       req.Title,
			Subject:     req.Subject,
			Description: req.Description,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Notified:    false,
			CreatedAt:   time.Now(),
		}

		result, err := eventsCollection.InsertOne(context.Background(), event)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to create study event", nil)
			return
		}
		event.ID = result.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, event)
	})

	api.DELETE("/study-events/:id", func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondWithBadRequest(c, "Invalid study event id", nil)
			return
		}

		userID := middleware.GetUserID(c)

		var existing models.StudyEvent
		if err := eventsCollection.FindOne(context.Background(), bson.M{"_id": eventID}).Decode(&existing); err != nil {
			utils.RespondWithNotFound(c, "Study event not found")
			return
		}
		if existing.UserID != userID {
			utils.RespondWithForbidden(c, "You do not have access to this study event")
			return
		}

		if _, err := eventsCollection.DeleteOne(context.Background(), bson.M{"_id": eventID}); err != nil {
			utils.RespondWithInternalError(c, "Failed to delete study event", nil)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Study event deleted"})
	})
}
