package records

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const (
	recordsCollectionName  = "medical_records"
	contentsCollectionName = "report_contents"
)

type Repository interface {
	Get(ctx context.Context, patientId string) (*MedicalRecord, error)
	Create(ctx context.Context, record MedicalRecord) (*MedicalRecord, error)
	Update(ctx context.Context, record MedicalRecord) (*MedicalRecord, error)
	AppendReport(ctx context.Context, patientId string, report Report) error

	GetContent(ctx context.Context, contentId string) (*ReportContent, error)
	InsertContent(ctx context.Context, content string) (string, error)
	UpdateContent(ctx context.Context, contentId string, content string) error
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		records:  db.Collection(recordsCollectionName),
		contents: db.Collection(contentsCollectionName),
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type repository struct {
	records  *mongo.Collection
	contents *mongo.Collection
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.records.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "patient_id", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("UniquePatientRecord"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, patientId string) (*MedicalRecord, error) {
	record := &MedicalRecord{}
	err := r.records.FindOne(ctx, bson.M{"patient_id": patientId}).Decode(record)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return record, nil
}

func (r *repository) Create(ctx context.Context, record MedicalRecord) (*MedicalRecord, error) {
	_, err := r.records.InsertOne(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("error creating medical record: %w", err)
	}

	return r.Get(ctx, record.PatientId)
}

func (r *repository) Update(ctx context.Context, record MedicalRecord) (*MedicalRecord, error) {
	selector := bson.M{"patient_id": record.PatientId}
	res, err := r.records.ReplaceOne(ctx, selector, record)
	if err != nil {
		return nil, fmt.Errorf("error updating medical record: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return r.Get(ctx, record.PatientId)
}

func (r *repository) AppendReport(ctx context.Context, patientId string, report Report) error {
	selector := bson.M{"patient_id": patientId}
	update := bson.M{
		"$push": bson.M{
			"reports": report,
		},
	}

	res, err := r.records.UpdateOne(ctx, selector, update)
	if err != nil {
		return fmt.Errorf("error appending report: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) GetContent(ctx context.Context, contentId string) (*ReportContent, error) {
	objId, err := primitive.ObjectIDFromHex(contentId)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid content id %q", ErrContentNotFound, contentId)
	}

	content := &ReportContent{}
	err = r.contents.FindOne(ctx, bson.M{"_id": objId}).Decode(content)
	if err == mongo.ErrNoDocuments {
		return nil, ErrContentNotFound
	} else if err != nil {
		return nil, err
	}

	return content, nil
}

func (r *repository) InsertContent(ctx context.Context, content string) (string, error) {
	doc := ReportContent{
		Content:   content,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now().UTC()),
	}

	res, err := r.contents.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("error inserting report content: %w", err)
	}

	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *repository) UpdateContent(ctx context.Context, contentId string, content string) error {
	objId, err := primitive.ObjectIDFromHex(contentId)
	if err != nil {
		return fmt.Errorf("%w: invalid content id %q", ErrContentNotFound, contentId)
	}

	update := bson.M{
		"$set": bson.M{
			"content":      content,
			"last_updated": primitive.NewDateTimeFromTime(time.Now().UTC()),
		},
	}

	res, err := r.contents.UpdateOne(ctx, bson.M{"_id": objId}, update)
	if err != nil {
		return fmt.Errorf("error updating report content: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrContentNotFound
	}

	return nil
}
