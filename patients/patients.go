package patients

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medportal-org/portal/flexdate"
	"github.com/medportal-org/portal/store"
)

var ErrNotFound = errors.New("patient not found")
var ErrDuplicate = errors.New("patient with the same email already exists")

type Service interface {
	Get(ctx context.Context, id string) (*Patient, error)
	GetByEmail(ctx context.Context, email string) (*Patient, error)
	List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Patient, error)
	Create(ctx context.Context, patient Patient) (*Patient, error)
}

type Patient struct {
	Id               *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name             *Name               `bson:"name,omitempty" json:"name,omitempty"`
	Email            *string             `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber      *string             `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
	Age              *int                `bson:"age,omitempty" json:"age,omitempty"`
	Gender           *string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Address          *Address            `bson:"address,omitempty" json:"address,omitempty"`
	EmergencyContact *EmergencyContact   `bson:"emergency_contact,omitempty" json:"emergencyContact,omitempty"`
	RegistrationDate flexdate.Date       `bson:"registration_date,omitempty" json:"registrationDate,omitempty"`
	DateOfBirth      flexdate.Date       `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
}

type Name struct {
	First  string `bson:"first" json:"first"`
	Middle string `bson:"middle,omitempty" json:"middle,omitempty"`
	Last   string `bson:"last" json:"last"`
}

type Address struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Zip     string `bson:"zip,omitempty" json:"zip,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

type EmergencyContact struct {
	Name         string `bson:"name,omitempty" json:"name,omitempty"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Relationship string `bson:"relationship,omitempty" json:"relationship,omitempty"`
}

type Filter struct {
	Email  *string
	Search *string
}
