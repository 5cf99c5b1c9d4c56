package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tacovision/backend/internal/domain/models"
)

// Collection names.
const (
	inventoryColl = "inventory"
	usersColl     = "users"
	schedulesColl = "schedules"
	auditColl     = "audit_logs"
	settingsColl  = "settings"
)

// Repository defines the document store operations the services depend on.
type Repository interface {
	ListInventory(ctx context.Context) ([]models.InventoryItem, error)
	GetInventoryItem(ctx context.Context, id string) (models.InventoryItem, error)
	InsertInventoryItem(ctx context.Context, item models.InventoryItem) error
	UpdateInventoryStock(ctx context.Context, id string, stock int) error

	FindUserByID(ctx context.Context, publicID string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	InsertUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, publicID string) error
	UpdateUserLastLogin(ctx context.Context, publicID string) error
	UpdateUserPIN(ctx context.Context, publicID, pin string) error

	GetSchedule(ctx context.Context, weekKey string) (models.Schedule, error)
	UpsertSchedule(ctx context.Context, schedule models.Schedule) error

	AppendAuditLog(ctx context.Context, entry models.AuditLogEntry) error
	ListAuditLogs(ctx context.Context, limit int64) ([]models.AuditLogEntry, error)

	GetBudget(ctx context.Context) (models.BudgetSnapshot, error)
	SaveBudget(ctx context.Context, snapshot models.BudgetSnapshot) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
