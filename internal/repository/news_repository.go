package repository

import (
	"context"
	"errors"

	"skill-dashboard/internal/domain/news"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNewsStoreUnavailable = errors.New("news store unavailable")

type NewsRepository interface {
	Connected() bool
	Latest(ctx context.Context, limit int) ([]news.Item, error)
	ReplaceAll(ctx context.Context, items []news.Item) error
}

// connState is satisfied by the mongo client wrapper.
type connState interface {
	Connected() bool
}

type MongoNewsRepository struct {
	coll  *mongo.Collection
	state connState
}

func NewMongoNewsRepository(coll *mongo.Collection, state connState) *MongoNewsRepository {
	return &MongoNewsRepository{coll: coll, state: state}
}

func (r *MongoNewsRepository) Connected() bool {
	if r == nil || r.coll == nil {
		return false
	}
	if r.state == nil {
		return true
	}
	return r.state.Connected()
}

// Latest returns up to limit items, most recently inserted first. ObjectIDs
// lead with their creation second, so sorting on _id is insertion order.
func (r *MongoNewsRepository) Latest(ctx context.Context, limit int) ([]news.Item, error) {
	if r == nil || r.coll == nil {
		return nil, ErrNewsStoreUnavailable
	}
	if limit <= 0 || limit > news.MaxLatest {
		limit = news.MaxLatest
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]news.Item, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceAll clears the collection and inserts items. An empty batch
// leaves the collection untouched.
func (r *MongoNewsRepository) ReplaceAll(ctx context.Context, items []news.Item) error {
	if r == nil || r.coll == nil {
		return ErrNewsStoreUnavailable
	}
	if len(items) == 0 {
		return nil
	}

	if _, err := r.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return err
	}

	docs := make([]interface{}, 0, len(items))
	for _, it := range items {
		docs = append(docs, it)
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

var _ NewsRepository = (*MongoNewsRepository)(nil)
