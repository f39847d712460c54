package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/yukikurage/list-task-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used in MongoDB.
const (
	MongoUsersCollection = "users"
	MongoListsCollection = "lists"
	MongoTasksCollection = "tasks"
)

// MongoCollection is a MongoDB implementation of Collection
type MongoCollection[T any, PT recordPtr[T]] struct {
	coll *mongo.Collection
}

// NewMongoStore creates a Store backed by db. Call EnsureIndexes once before
// serving so uniqueness is enforced.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Users: &MongoCollection[models.User, *models.User]{coll: db.Collection(MongoUsersCollection)},
		Lists: &MongoCollection[models.List, *models.List]{coll: db.Collection(MongoListsCollection)},
		Tasks: &MongoCollection[models.Task, *models.Task]{coll: db.Collection(MongoTasksCollection)},
	}
}

// EnsureIndexes creates the unique and lookup indexes the services rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{MongoUsersCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: models.ColumnUsername, Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{MongoTasksCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: models.ColumnTaskID, Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{MongoTasksCollection, mongo.IndexModel{
			Keys: bson.D{{Key: models.ColumnList, Value: 1}},
		}},
		{MongoListsCollection, mongo.IndexModel{
			Keys: bson.D{{Key: models.ColumnName, Value: 1}, {Key: models.ColumnCreator, Value: 1}},
		}},
	}

	for _, idx := range indexes {
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.collection, err)
		}
	}
	return nil
}

func (c *MongoCollection[T, PT]) Insert(ctx context.Context, rec *T) error {
	PT(rec).SetID(NewID())
	if _, err := c.coll.InsertOne(ctx, rec); err != nil {
		return translateMongoError(err)
	}
	return nil
}

func (c *MongoCollection[T, PT]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var rec T
	if err := c.coll.FindOne(ctx, toBSON(filter)).Decode(&rec); err != nil {
		return nil, translateMongoError(err)
	}
	return &rec, nil
}

func (c *MongoCollection[T, PT]) FindMany(ctx context.Context, filter Filter) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		cursor, err := c.coll.Find(ctx, toBSON(filter))
		if err != nil {
			yield(nil, translateMongoError(err))
			return
		}
		defer cursor.Close(ctx)

		for cursor.Next(ctx) {
			var rec T
			if err := cursor.Decode(&rec); err != nil {
				yield(nil, fmt.Errorf("failed to decode document: %w", err))
				return
			}
			if !yield(&rec, nil) {
				return
			}
		}
		if err := cursor.Err(); err != nil {
			yield(nil, translateMongoError(err))
		}
	}
}

func (c *MongoCollection[T, PT]) Update(ctx context.Context, filter Filter, patch Patch) (*T, error) {
	if err := checkPatch[T, PT](patch); err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": toBSON(Filter(patch))}

	var rec T
	if err := c.coll.FindOneAndUpdate(ctx, toBSON(filter), update, opts).Decode(&rec); err != nil {
		return nil, translateMongoError(err)
	}
	return &rec, nil
}

func (c *MongoCollection[T, PT]) DeleteOne(ctx context.Context, filter Filter) (int64, error) {
	result, err := c.coll.DeleteOne(ctx, toBSON(filter))
	if err != nil {
		return 0, translateMongoError(err)
	}
	return result.DeletedCount, nil
}

func (c *MongoCollection[T, PT]) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	result, err := c.coll.DeleteMany(ctx, toBSON(filter))
	if err != nil {
		return 0, translateMongoError(err)
	}
	return result.DeletedCount, nil
}

// toBSON converts a filter to a document, mapping the id column to _id.
func toBSON(filter Filter) bson.M {
	doc := make(bson.M, len(filter))
	for column, value := range filter {
		if column == models.ColumnID {
			column = "_id"
		}
		doc[column] = value
	}
	return doc
}

func translateMongoError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	default:
		return err
	}
}
