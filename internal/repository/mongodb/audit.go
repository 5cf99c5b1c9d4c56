package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tacovision/backend/internal/domain/models"
)

// AppendAuditLog stores an immutable audit record.
func (r *MongoDBRepository) AppendAuditLog(ctx context.Context, entry models.AuditLogEntry) error {
	if _, err := r.collection(auditColl).InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

// ListAuditLogs returns the most recent entries first.
func (r *MongoDBRepository) ListAuditLogs(ctx context.Context, limit int64) ([]models.AuditLogEntry, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(limit)
	cursor, err := r.collection(auditColl).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	var entries []models.AuditLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit logs: %w", err)
	}
	return entries, nil
}
