package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"study-quiz-platform/models"
	"study-quiz-platform/utils"
)

// ErrDocumentNotFound is returned when no cached document matches the id for
// the given user.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore caches extracted document text in MongoDB, compressed, so a
// quiz can be regenerated without re-uploading the file.
type DocumentStore struct {
	collection *mongo.Collection
}

func NewDocumentStore(db *mongo.Database) *DocumentStore {
	return &DocumentStore{collection: db.Collection("documents")}
}

// Save compresses and stores extracted text, returning the generated document id.
func (s *DocumentStore) Save(ctx context.Context, userID, filename, mediaType, text string) (string, error) {
	compressed, algorithm, err := utils.CompressText(text)
	if err != nil {
		return "", fmt.Errorf("failed to compress document text: %w", err)
	}

	doc := models.Document{
		ID:          uuid.New().String(),
		UserID:      userID,
		Filename:    filename,
		MediaType:   mediaType,
		Text:        compressed,
		Compression: string(algorithm),
		CharCount:   len(text),
		CreatedAt:   time.Now(),
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to store document: %w", err)
	}

	return doc.ID, nil
}

// Load returns the decompressed text of a cached document. Lookups are scoped
// to the owning user; another user's document id behaves as not found.
func (s *DocumentStore) Load(ctx context.Context, userID, documentID string) (*models.Document, string, error) {
	var doc models.Document
	err := s.collection.FindOne(ctx, bson.M{"_id": documentID, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrDocumentNotFound
		}
		return nil, "", fmt.Errorf("failed to load document: %w", err)
	}

	text, err := utils.DecompressText(doc.Text, utils.CompressionAlgorithm(doc.Compression))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress document text: %w", err)
	}

	return &doc, text, nil
}
