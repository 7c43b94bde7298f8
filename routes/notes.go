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

func SetupNoteRoutes(router *gin.Engine, cfg *config.Config, mongoClient *mongo.Client, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")
	api.Use(authMiddleware.RequireAuth())

	notesCollection := mongoClient.Database(cfg.DBName).Collection("notes")

	api.GET("/notes", func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
		cursor, err := notesCollection.Find(context.Background(), bson.M{"user_id": userID}, opts)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to fetch notes", nil)
			return
		}
		defer cursor.Close(context.Background())

		notes := []models.Note{}
		if err := cursor.All(context.Background(), &notes); err != nil {
			utils.RespondWithInternalError(c, "Failed to decode notes", nil)
			return
		}

		c.JSON(http.StatusOK, notes)
	})

	api.POST("/notes", func(c *gin.Context) {
		var req models.NoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Heading and content are required", gin.H{"error": err.Error()})
			return
		}

		note := models.Note{
			UserID:    middleware.GetUserID(c),
			Heading:   req.Heading,
			Content:   req.Content,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		result, err := notesCollection.InsertOne(context.Background(), note)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to create note", nil)
			return
		}
		note.ID = result.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, note)
	})

	api.PUT("/notes/:id", func(c *gin.Context) {
		noteID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondWithBadRequest(c, "Invalid note id", nil)
			return
		}

		var req models.NoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Heading and content are required", gin.H{"error": err.Error()})
			return
		}

		userID := middleware.GetUserID(c)

		var existing models.Note
		if err := notesCollection.FindOne(context.Background(), bson.M{"_id": noteID}).Decode(&existing); err != nil {
			utils.RespondWithNotFound(c, "Note not found")
			return
		}
		if existing.UserID != userID {
			utils.RespondWithForbidden(c, "You do not have access to this note")
			return
		}

		update := bson.M{"$set": bson.M{
			"heading":    req.Heading,
			"content":    req.Content,
			"updated_at": time.Now(),
		}}
		if _, err := notesCollection.UpdateOne(context.Background(), bson.M{"_id": noteID}, update); err != nil {
			utils.RespondWithInternalError(c, "Failed to update note", nil)
			return
		}

		var updated models.Note
		notesCollection.FindOne(context.Background(), bson.M{"_id": noteID}).Decode(&updated)
		c.JSON(http.StatusOK, updated)
	})

	api.DELETE("/notes/:id", func(c *gin.Context) {
		noteID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			utils.RespondWithBadRequest(c, "Invalid note id", nil)
			return
		}

		userID := middleware.GetUserID(c)

		var existing models.Note
		if err := notesCollection.FindOne(context.Background(), bson.M{"_id": noteID}).Decode(&existing); err != nil {
			utils.RespondWithNotFound(c, "Note not found")
			return
		}
		if existing.UserID != userID {
			utils.RespondWithForbidden(c, "You do not have access to this note")
			return
		}

		if _, err := notesCollection.DeleteOne(context.Background(), bson.M{"_id": noteID}); err != nil {
			utils.RespondWithInternalError(c, "Failed to delete note", nil)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
	})
}
