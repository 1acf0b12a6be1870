package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

const collectionName = "session_results"

// MongoDBRepository stores finished sessions in MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	r := &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: collectionName,
	}

	_, err = r.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "profit", Value: -1}, {Key: "finished_at", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create profit index: %w", err)
	}

	return r, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveSessionResult saves a finished session to the database.
func (r *MongoDBRepository) SaveSessionResult(ctx context.Context, result models.SessionResult) error {
	if _, err := r.collection().InsertOne(ctx, result); err != nil {
		return fmt.Errorf("failed to insert session result: %w", err)
	}
	return nil
}

// TopSessionResults returns up to limit results, most profitable first.
func (r *MongoDBRepository) TopSessionResults(ctx context.Context, limit int) ([]models.SessionResult, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "profit", Value: -1}, {Key: "finished_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query session results: %w", err)
	}
	defer cursor.Close(ctx)

	results := make([]models.SessionResult, 0, limit)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode session results: %w", err)
	}
	return results, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
