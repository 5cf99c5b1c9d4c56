package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tacovision/backend/internal/domain/models"
)

// FindUserByID looks a user up by the public numeric id employees log in with.
func (r *MongoDBRepository) FindUserByID(ctx context.Context, publicID string) (models.User, error) {
	var user models.User
	err := r.collection(usersColl).FindOne(ctx, bson.M{"id": publicID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to find user %s: %w", publicID, err)
	}
	return user, nil
}

// ListUsers returns all users.
func (r *MongoDBRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection(usersColl).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// InsertUser stores a new user document.
func (r *MongoDBRepository) InsertUser(ctx context.Context, user models.User) error {
	if _, err := r.collection(usersColl).InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// DeleteUser removes a user by public id.
func (r *MongoDBRepository) DeleteUser(ctx context.Context, publicID string) error {
	result, err := r.collection(usersColl).DeleteOne(ctx, bson.M{"id": publicID})
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", publicID, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateUserLastLogin stamps the user's last login time.
func (r *MongoDBRepository) UpdateUserLastLogin(ctx context.Context, publicID string) error {
	_, err := r.collection(usersColl).UpdateOne(ctx,
		bson.M{"id": publicID},
		bson.M{"$set": bson.M{"lastLogin": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to update last login for %s: %w", publicID, err)
	}
	return nil
}

// UpdateUserPIN replaces the user's 4-digit credential.
func (r *MongoDBRepository) UpdateUserPIN(ctx context.Context, publicID, pin string) error {
	result, err := r.collection(usersColl).UpdateOne(ctx,
		bson.M{"id": publicID},
		bson.M{"$set": bson.M{"pin": pin}})
	if err != nil {
		return fmt.Errorf("failed to update pin for %s: %w", publicID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
