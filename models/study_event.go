package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StudyEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Title       string             `bson:"title" json:"title"`
	Subject     string             `bson:"subject" json:"subject"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	StartDate   time.Time          `bson:"start_date" json:"start_date"`
	EndDate     time.Time          `bson:"end_date" json:"end_date"`
	Notified    bool               `bson:"notified" json:"notified"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type StudyEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Subject     string    `json:"subject" binding:"required"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}
