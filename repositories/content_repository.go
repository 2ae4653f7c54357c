package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no document matches an id or query.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)

// Filter narrows and orders a listing.
type Filter interface {
	Query() bson.M
	Sort() bson.D
}

// ContentRepository stores one content collection of T documents.
type ContentRepository[T any] struct {
	collection *mongo.Collection
}

func NewContentRepository[T any](db *mongo.Database, collection string) *ContentRepository[T] {
	return &ContentRepository[T]{collection: db.Collection(collection)}
}

func (r *ContentRepository[T]) List(ctx context.Context, filter Filter) ([]T, error) {
	opts := options.Find().SetSort(filter.Sort())
	cursor, err := r.collection.Find(ctx, filter.Query(), opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.collection.Name(), err)
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.collection.Name(), err)
	}
	return items, nil
}

// FindByID treats malformed ids as missing documents.
func (r *ContentRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc T
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s %s: %w", r.collection.Name(), id, err)
	}
	return &doc, nil
}

func (r *ContentRepository[T]) Create(ctx context.Context, doc *T) error {
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", r.collection.Name(), err)
	}
	return nil
}

// Replace overwrites the stored document. Concurrent edits are last-write-wins.
func (r *ContentRepository[T]) Replace(ctx context.Context, id string, doc *T) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objID}, doc)
	if err != nil {
		return fmt.Errorf("replace %s %s: %w", r.collection.Name(), id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContentRepository[T]) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", r.collection.Name(), id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll empties the collection and reports how many documents were removed.
func (r *ContentRepository[T]) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", r.collection.Name(), err)
	}
	return res.DeletedCount, nil
}
