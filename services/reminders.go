package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"study-quiz-platform/models"
)

// ReminderService periodically scans for study events starting within the
// next 24 hours and marks them notified. Notification delivery is a log line;
// the scan keeps each event's reminder from firing more than once.
type ReminderService struct {
	events    *mongo.Collection
	scheduler *gocron.Scheduler
	interval  time.Duration
}

func NewReminderService(db *mongo.Database, interval time.Duration) *ReminderService {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.TagsUnique()

	return &ReminderService{
		events:    db.Collection("study_events"),
		scheduler: scheduler,
		interval:  interval,
	}
}

// Start schedules the periodic scan and runs it in the background.
func (s *ReminderService) Start() error {
	_, err := s.scheduler.Every(s.interval).Tag("study-event-reminders").Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := s.Scan(ctx); err != nil {
			log.Printf("Study event reminder scan failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder scan: %w", err)
	}

	s.scheduler.StartAsync()
	log.Println("Study event reminder scheduler started")
	return nil
}

func (s *ReminderService) Stop() {
	s.scheduler.Stop()
}

// Scan finds unnotified events starting within the next 24 hours, logs a
// reminder for each, and marks them notified.
func (s *ReminderService) Scan(ctx context.Context) error {
	now := time.Now()
	filter := bson.M{
		"notified": false,
		"start_date": bson.M{
			"$gte": now,
			"$lte": now.Add(24 * time.Hour),
		},
	}

	cursor, err := s.events.Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to query upcoming events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.StudyEvent
	if err := cursor.All(ctx, &events); err != nil {
		return fmt.Errorf("failed to decode upcoming events: %w", err)
	}

	for _, event := range events {
		log.Printf("Reminder: %q (%s) starts at %s for user %s",
			event.Title, event.Subject, event.StartDate.Format(time.RFC3339), event.UserID)

		_, err := s.events.UpdateOne(ctx,
			bson.M{"_id": event.ID},
			bson.M{"$set": bson.M{"notified": true}},
		)
		if err != nil {
			return fmt.Errorf("failed to mark event notified: %w", err)
		}
	}

	return nil
}
