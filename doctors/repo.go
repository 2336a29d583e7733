package doctors

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medportal-org/portal/store"
)

const (
	doctorsCollectionName = "doctors"
)

type Repository interface {
	Service
}

func NewRepository(db *mongo.Database) (Repository, error) {
	return &repository{
		collection: db.Collection(doctorsCollectionName),
	}, nil
}

type repository struct {
	collection *mongo.Collection
}

func (r *repository) Get(ctx context.Context, id string) (*Doctor, error) {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid doctor id %q", ErrNotFound, id)
	}

	doctor := &Doctor{}
	err = r.collection.FindOne(ctx, bson.M{"_id": objId}).Decode(doctor)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return doctor, nil
}

func (r *repository) List(ctx context.Context, pagination store.Pagination) ([]*Doctor, error) {
	sort := store.Sort{Attribute: "name.last", Ascending: true}
	opts := options.Find().
		SetLimit(int64(pagination.Limit)).
		SetSkip(int64(pagination.Offset)).
		SetSort(bson.D{{Key: sort.Attribute, Value: sort.Order()}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing doctors: %w", err)
	}

	var doctors []*Doctor
	if err = cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("error decoding doctors list: %w", err)
	}

	return doctors, nil
}
