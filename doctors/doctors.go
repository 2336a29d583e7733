package doctors

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medportal-org/portal/store"
)

var ErrNotFound = errors.New("doctor not found")

type Service interface {
	Get(ctx context.Context, id string) (*Doctor, error)
	List(ctx context.Context, pagination store.Pagination) ([]*Doctor, error)
}

type Doctor struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        *Name               `bson:"name,omitempty" json:"name,omitempty"`
	Specialty   *string             `bson:"specialty,omitempty" json:"specialty,omitempty"`
	PhoneNumber *string             `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
	Email       *string             `bson:"email,omitempty" json:"email,omitempty"`
}

type Name struct {
	First string `bson:"first" json:"first"`
	Last  string `bson:"last" json:"last"`
}
