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

func SetupFlashcardRoutes(router *gin.Engine, cfg *config.Config, mongoClient *mongo.Client, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")
	api.Use(authMiddleware.RequireAuth())

	flashcardsCollection := mongoClient.Database(cfg.DBName).Collection("flashcards")

	api.GET("/flashcards", func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		cursor, err := flashcardsCollection.Find(context.Background(), bson.M{"user_id": userID}, opts)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to fetch flashcards", nil)
			return
		}
		defer cursor.Close(context.Background())

		flashcards := []models.Flashcard{}
		if err := cursor.All(context.Background(), &flashcards); err != nil {
			utils.RespondWithInternalError(c, "Failed to decode flashcards", nil)
			return
		}

		c.JSON(http.StatusOK, flashcards)
	})

	api.POST("/flashcards", func(c *gin.Context) {
		var req models.FlashcardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Title, question and answer are required", gin.H{"error": err.Error()})
			return
		}

		flashcard := models.Flashcard{
			UserID:    middleware.GetUserID(c),
			Title:     req.Title,
			Question:  req.Question,
			Answer:    req.Answer,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		result, err := flashcardsCollection.InsertOne(context.Background(), flashcard)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to create flashcard", nil)
			return
		}
		flashcard.ID = result.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, flashcard)
	})

	api.PUT("/flashcards/:id", func(c *gin.Context) {
		cardID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondWithBadRequest(c, "Invalid flashcard id", nil)
			return
		}

		var req models.FlashcardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Title, question and answer are required", gin.H{"error": err.Error()})
			return
		}

		userID := middleware.GetUserID(c)

		var existing models.Flashcard
		if err := flashcardsCollection.FindOne(context.Background(), bson.M{"_id": cardID}).Decode(&existing); err != nil {
			utils.RespondWithNotFound(c, "Flashcard not found")
			return
		}
		if existing.UserID != userID {
			utils.RespondWithForbidden(c, "You do not have access to this flashcard")
			return
		}

		update := bson.M{"$set": bson.M{
			"title":      req.Title,
			"question":   req.Question,
			"answer":     req.Answer,
			"updated_at": time.Now(),
		}}
		if _, err := flashcardsCollection.UpdateOne(context.Background(), bson.M{"_id": cardID}, update); err != nil {
			utils.RespondWithInternalError(c, "Failed to update flashcard", nil)
			return
		}

		var updated models.Flashcard
		flashcardsCollection.FindOne(context.Background(), bson.M{"_id": cardID}).Decode(&updated)
		c.JSON(http.StatusOK, updated)
	})

	api.DELETE("/flashcards/:id", func(c *gin.Context) {
		cardID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondWithBadRequest(c, "Invalid flashcard id", nil)
			return
		}

		userID := middleware.GetUserID(c)

		var existing models.Flashcard
		if err := flashcardsCollection.FindOne(context.Background(), bson.M{"_id": cardID}).Decode(&existing); err != nil {
			utils.RespondWithNotFound(c, "Flashcard not found")
			return
		}
		if existing.UserID != userID {
			utils.RespondWithForbidden(c, "You do not have access to this flashcard")
			return
		}

		if _, err := flashcardsCollection.DeleteOne(context.Background(), bson.M{"_id": cardID}); err != nil {
			utils.RespondWithInternalError(c, "Failed to delete flashcard", nil)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Flashcard deleted"})
	})
}
