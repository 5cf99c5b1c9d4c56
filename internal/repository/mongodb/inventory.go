package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tacovision/backend/internal/domain/models"
)

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// ListInventory returns every inventory item sorted by name.
func (r *MongoDBRepository) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	cursor, err := r.collection(inventoryColl).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	var items []models.InventoryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode inventory items: %w", err)
	}
	return items, nil
}

// GetInventoryItem fetches a single item by its document id.
func (r *MongoDBRepository) GetInventoryItem(ctx context.Context, id string) (models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.collection(inventoryColl).FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.InventoryItem{}, ErrNotFound
	}
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("failed to get inventory item %s: %w", id, err)
	}
	return item, nil
}

// InsertInventoryItem stores a new inventory item.
func (r *MongoDBRepository) InsertInventoryItem(ctx context.Context, item models.InventoryItem) error {
	if _, err := r.collection(inventoryColl).InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to insert inventory item: %w", err)
	}
	return nil
}

// UpdateInventoryStock sets the stock level of an existing item.
func (r *MongoDBRepository) UpdateInventoryStock(ctx context.Context, id string, stock int) error {
	result, err := r.collection(inventoryColl).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"stock": stock}})
	if err != nil {
		return fmt.Errorf("failed to update stock for %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
