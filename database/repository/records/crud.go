package recordsRepo

import (
	"context"
	"fmt"
	"time"

	"handimatch/database"
	"handimatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRecordsRepo implements RecordsRepository using MongoDB.
type MongoRecordsRepo struct {
	subs     *mongo.Collection
	training *mongo.Collection
}

// NewMongoRecordsRepo creates a new instance of RecordsRepository using MongoDB.
func NewMongoRecordsRepo() RecordsRepository {
	db := database.DB()
	repo := &MongoRecordsRepo{
		subs:     db.Collection("subscriptions"),
		training: db.Collection("training"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRecordsRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	_, err := r.subs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "active", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription indexes: %w", err)
	}

	_, err = r.training.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create training indexes: %w", err)
	}
	return nil
}

// CreateSubscription inserts a subscription record.
func (r *MongoRecordsRepo) CreateSubscription(sub *models.Subscription) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if _, err := r.subs.InsertOne(ctx, sub); err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// ActiveSubscription returns a user's active subscription.
func (r *MongoRecordsRepo) ActiveSubscription(userID string) (*models.Subscription, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var sub models.Subscription
	err := r.subs.FindOne(ctx, bson.M{"userId": userID, "active": true}).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch subscription for user %s: %w", userID, err)
	}
	return &sub, nil
}

// DeactivateSubscriptions marks every subscription of a user inactive.
func (r *MongoRecordsRepo) DeactivateSubscriptions(userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.subs.UpdateMany(ctx,
		bson.M{"userId": userID, "active": true},
		bson.M{"$set": bson.M{"active": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate subscriptions for user %s: %w", userID, err)
	}
	return nil
}

// CreateTraining inserts a training record.
func (r *MongoRecordsRepo) CreateTraining(rec *models.TrainingRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	rec.CreatedAt = time.Now()
	if _, err := r.training.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to create training record: %w", err)
	}
	return nil
}

// ListTraining returns a user's training records.
func (r *MongoRecordsRepo) ListTraining(userID string) ([]models.TrainingRecord, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.training.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list training records for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var records []models.TrainingRecord
	for cursor.Next(ctx) {
		var rec models.TrainingRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode training record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
