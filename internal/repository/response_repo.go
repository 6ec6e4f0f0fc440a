package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formforge/internal/model"
)

// ResponseQuery narrows a form's response listing. Zero Limit means no
// limit; empty Fields means full documents.
type ResponseQuery struct {
	FormID string
	Limit  int64
	Fields []string
}

// ResponseRepo handles MongoDB operations for submitted responses
type ResponseRepo interface {
	Create(ctx context.Context, response *model.ResponseRecord) (string, error)
	GetByID(ctx context.Context, id string) (*model.ResponseRecord, error)
	ListByFormID(ctx context.Context, q ResponseQuery) ([]*model.ResponseRecord, error)
	AttachAnalysis(ctx context.Context, id string, analysis *model.AnalysisResult) error
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepo) Create(ctx context.Context, response *model.ResponseRecord) (string, error) {
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, response)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	response.ID = oid.Hex()
	return response.ID, nil
}

func (r *responseRepo) GetByID(ctx context.Context, id string) (*model.ResponseRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var response model.ResponseRecord
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	response.ID = id
	return &response, nil
}

func (r *responseRepo) ListByFormID(ctx context.Context, q ResponseQuery) ([]*model.ResponseRecord, error) {
	opts := options.Find()
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	if len(q.Fields) > 0 {
		projection := bson.M{}
		for _, f := range q.Fields {
			projection[f] = 1
		}
		opts.SetProjection(projection)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"formId": q.FormID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.ResponseRecord
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

// AttachAnalysis writes the analysis into the response document. The filter
// requires the analysis slot to still be empty, so a result is attached at
// most once.
func (r *responseRepo) AttachAnalysis(ctx context.Context, id string, analysis *model.AnalysisResult) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": oid, "analysis": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"analysis": analysis}}
	_, err = r.collection.UpdateOne(ctx, filter, update)
	return err
}
