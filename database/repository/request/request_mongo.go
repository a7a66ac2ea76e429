package requestRepo

import (
	"context"
	"fmt"
	"time"

	"handimatch/database"
	"handimatch/models"
	"handimatch/services/workflow"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRequestRepo implements RequestRepository using MongoDB.
type MongoRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoRequestRepo creates a new instance of RequestRepository using MongoDB.
func NewMongoRequestRepo() RequestRepository {
	coll := database.DB().Collection("requests")
	repo := &MongoRequestRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoRequestRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "artisanId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "profession", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// InsertRequest inserts a new request document.
func (r *MongoRequestRepo) InsertRequest(req *models.ServiceRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to insert request: %w", err)
	}
	return nil
}

// FetchRequest retrieves a request by its unique ID; nil if not found.
func (r *MongoRequestRepo) FetchRequest(id string) (*models.ServiceRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.ServiceRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch request with id %s: %w", id, err)
	}
	return &req, nil
}

// ApplyDecision runs the decision's patch as one conditional UpdateOne.
// Every guard becomes part of the match filter, so a transition decided
// on a stale snapshot matches zero documents instead of overwriting a
// concurrent one.
func (r *MongoRequestRepo) ApplyDecision(id string, d *workflow.Decision) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	for _, g := range d.Guards {
		if g.Exclude {
			filter[g.Field] = bson.M{"$ne": g.Value}
		} else {
			filter[g.Field] = g.Value
		}
	}

	update := bson.M{}
	if len(d.Patch.Set) > 0 {
		update["$set"] = bson.M(d.Patch.Set)
	}
	if d.Patch.PushApplication != nil {
		update["$push"] = bson.M{"applications": d.Patch.PushApplication}
	}
	if len(update) == 0 {
		return false, fmt.Errorf("decision for request %s carries an empty patch", id)
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to apply %s to request %s: %w", d.Action, id, err)
	}
	return result.MatchedCount > 0, nil
}

// ListByClient returns a client's own requests, newest first.
func (r *MongoRequestRepo) ListByClient(clientID string) ([]models.ServiceRequest, error) {
	return r.list(bson.M{"clientId": clientID}, 0)
}

// ListOpen returns requests artisans can browse, newest first.
func (r *MongoRequestRepo) ListOpen(f ListFilter) ([]models.ServiceRequest, error) {
	query := bson.M{"status": bson.M{"$in": bson.A{
		models.StatusPending, models.StatusInProgress, models.StatusCompleted,
	}}}
	if f.Profession != "" {
		query["profession"] = f.Profession
	}
	if f.Location != "" {
		query["location"] = bson.M{"$regex": f.Location, "$options": "i"}
	}
	return r.list(query, 0)
}

// ListRecentForUser returns the latest requests involving the user as
// client or assigned artisan.
func (r *MongoRequestRepo) ListRecentForUser(userID string, limit int64) ([]models.ServiceRequest, error) {
	query := bson.M{"$or": bson.A{
		bson.M{"clientId": userID},
		bson.M{"artisanId": userID},
	}}
	return r.list(query, limit)
}

// CountCompletedByArtisan counts completed requests assigned to an artisan.
func (r *MongoRequestRepo) CountCompletedByArtisan(artisanID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{
		"artisanId": artisanID,
		"status":    models.StatusCompleted,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count completed requests for artisan %s: %w", artisanID, err)
	}
	return count, nil
}

func (r *MongoRequestRepo) list(query bson.M, limit int64) ([]models.ServiceRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.ServiceRequest
	for cursor.Next(ctx) {
		var req models.ServiceRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}
