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

// budgetDocID addresses the single current budget snapshot.
const budgetDocID = "budget"

// GetBudget fetches the current budget snapshot.
func (r *MongoDBRepository) GetBudget(ctx context.Context) (models.BudgetSnapshot, error) {
	var snapshot models.BudgetSnapshot
	err := r.collection(settingsColl).FindOne(ctx, bson.M{"_id": budgetDocID}).Decode(&snapshot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.BudgetSnapshot{}, ErrNotFound
	}
	if err != nil {
		return models.BudgetSnapshot{}, fmt.Errorf("failed to get budget: %w", err)
	}
	return snapshot, nil
}

// SaveBudget overwrites the current budget snapshot.
func (r *MongoDBRepository) SaveBudget(ctx context.Context, snapshot models.BudgetSnapshot) error {
	doc := bson.M{
		"_id":                budgetDocID,
		"budget":             snapshot.Budget,
		"spent":              snapshot.Spent,
		"period":             snapshot.Period,
		"overstockThreshold": snapshot.OverstockThreshold,
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection(settingsColl).ReplaceOne(ctx, bson.M{"_id": budgetDocID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}
