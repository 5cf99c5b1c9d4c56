package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tacovision/backend/internal/domain/models"
)

// GetSchedule fetches the schedule stored under the given week key.
func (r *MongoDBRepository) GetSchedule(ctx context.Context, weekKey string) (models.Schedule, error) {
	var schedule models.Schedule
	err := r.collection(schedulesColl).FindOne(ctx, bson.M{"_id": weekKey}).Decode(&schedule)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Schedule{}, ErrNotFound
	}
	if err != nil {
		return models.Schedule{}, fmt.Errorf("failed to get schedule %s: %w", weekKey, err)
	}
	return schedule, nil
}

// UpsertSchedule replaces the week's schedule wholesale. Re-uploading within
// the same week overwrites the previous document; there is no merge.
func (r *MongoDBRepository) UpsertSchedule(ctx context.Context, schedule models.Schedule) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection(schedulesColl).ReplaceOne(ctx, bson.M{"_id": schedule.ID}, schedule, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule %s: %w", schedule.ID, err)
	}
	return nil
}
