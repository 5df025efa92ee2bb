package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bberrors "github.com/branchboard/branchboard/pkg/errors"
)

const planCollection = "plans"

// MongoStore persists records in a MongoDB collection, one document per
// plan with the record id as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// short ping before returning.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, bberrors.Wrap(bberrors.ErrCodeStore, err, "connect mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, bberrors.Wrap(bberrors.ErrCodeStore, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(planCollection),
	}, nil
}

// Put inserts or replaces a record via upsert on _id.
func (s *MongoStore) Put(ctx context.Context, rec Record) (Record, error) {
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	existing, err := s.Get(ctx, rec.ID)
	switch {
	case err == nil:
		rec.CreatedAt = existing.CreatedAt
	case bberrors.Is(err, bberrors.ErrCodePlanNotFound):
		rec.CreatedAt = now
	default:
		return Record{}, err
	}
	rec.UpdatedAt = now

	_, err = s.coll.ReplaceOne(ctx,
		bson.M{"_id": rec.ID},
		rec,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return Record{}, bberrors.Wrap(bberrors.ErrCodeStore, err, "save plan %s", rec.ID)
	}
	return rec, nil
}

// Get returns the record with the given id.
func (s *MongoStore) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, bberrors.New(bberrors.ErrCodePlanNotFound, "plan not found: %s", id)
	}
	if err != nil {
		return Record{}, bberrors.Wrap(bberrors.ErrCodeStore, err, "load plan %s", id)
	}
	return rec, nil
}

// List returns all records ordered by name.
func (s *MongoStore) List(ctx context.Context) ([]Record, error) {
	cursor, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, bberrors.Wrap(bberrors.ErrCodeStore, err, "list plans")
	}
	defer cursor.Close(ctx)

	var out []Record
	if err := cursor.All(ctx, &out); err != nil {
		return nil, bberrors.Wrap(bberrors.ErrCodeStore, err, "decode plans")
	}
	return out, nil
}

// Delete removes a record.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return bberrors.Wrap(bberrors.ErrCodeStore, err, "delete plan %s", id)
	}
	if res.DeletedCount == 0 {
		return bberrors.New(bberrors.ErrCodePlanNotFound, "plan not found: %s", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
