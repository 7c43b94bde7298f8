package models

import "time"

// Document caches extracted text per user so a quiz can be regenerated with a
// different question type without re-uploading the file. Text is stored
// compressed; Compression names the algorithm used.
type Document struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Filename    string    `bson:"filename" json:"filename"`
	MediaType   string    `bson:"media_type" json:"media_type"`
	Text        []byte    `bson:"text" json:"-"`
	Compression string    `bson:"compression" json:"-"`
	CharCount   int       `bson:"char_count" json:"char_count"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
