package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mutual/loanlifecycle/internal/service/interfaces"
)

type MongoRepository[T any] struct {
	collection interfaces.MongoRepositoryInterface
}

func NewMongoRepository[T any](collection interfaces.MongoRepositoryInterface) *MongoRepository[T] {
	return &MongoRepository[T]{collection: collection}
}

func (r *MongoRepository[T]) Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {

	if result, err := r.collection.InsertOne(ctx, document); err != nil {
		return nil, err
	} else {
		return result, nil
	}
}

// CreateMany inserts a batch in order; an ordered insert stops at the first
// failing document. The partial result is returned alongside the error so
// the caller can compensate for what did get in.
func (r *MongoRepository[T]) CreateMany(ctx context.Context, documents []interface{}) (*mongo.InsertManyResult, error) {

	opts := options.InsertMany().SetOrdered(true)
	result, err := r.collection.InsertMany(ctx, documents, opts)
	return result, err
}

// FindOne reads a document by filter
func (r *MongoRepository[T]) FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (T, error) {

	var result T

	if err := r.collection.FindOne(ctx, filter, opt).Decode(&result); err != nil {
		return result, err
	}

	return result, nil
}

// FindOneAndUpdate performs an atomic compare-and-swap guarded by the filter
// and returns the post-update document. mongo.ErrNoDocuments means the guard
// did not match.
func (r *MongoRepository[T]) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}) (T, error) {

	var result T

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return result, err
	}

	return result, nil
}

// UpdateOne updates a single document
func (r *MongoRepository[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {

	if updateResult, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": update}); err != nil {
		return err
	} else {
		_ = updateResult
		return nil
	}
}

// Delete removes a single document
func (r *MongoRepository[T]) Delete(ctx context.Context, filter interface{}) error {

	if deleteResult, err := r.collection.DeleteOne(ctx, filter); err != nil {
		return err
	} else {
		_ = deleteResult
		return nil
	}
}

// DeleteMany removes every document matching the filter
func (r *MongoRepository[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {

	if deleteResult, err := r.collection.DeleteMany(ctx, filter); err != nil {
		return 0, err
	} else {
		return deleteResult.DeletedCount, nil
	}
}

func (r *MongoRepository[T]) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error) {

	if cursor, err := r.collection.Find(ctx, filter, opts...); err != nil {
		return nil, err
	} else {
		defer func() {
			if err := cursor.Close(ctx); err != nil {
				_ = err
			}
		}()

		var results []T
		for cursor.Next(ctx) {
			var entity T
			if err := cursor.Decode(&entity); err != nil {
				return nil, err
			}
			results = append(results, entity)
		}
		return results, nil
	}
}

func (r *MongoRepository[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {

	if count, err := r.collection.CountDocuments(ctx, filter); err != nil {
		return 0, err
	} else {
		return count, nil
	}
}

func (r *MongoRepository[T]) AggregateAll(ctx context.Context, pipeline interface{}, result interface{}) error {

	if cursor, err := r.collection.Aggregate(ctx, pipeline); err != nil {
		return err
	} else {
		defer func() {
			if err := cursor.Close(ctx); err != nil {
				_ = err
			}
		}()

		return cursor.All(ctx, result)
	}
}
