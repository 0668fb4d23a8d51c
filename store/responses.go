package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"samasya-be/apperrors"
	"samasya-be/config"
	"samasya-be/models"
)

func responseCollection() *mongo.Collection {
	return config.GetCollection("responses")
}

// AppendResponse records one audit entry for a status change. Append-only;
// nothing ever updates or deletes individual records.
func AppendResponse(ctx context.Context, r *models.Response) error {
	_, err := responseCollection().InsertOne(ctx, r)
	if err != nil {
		return apperrors.NewInternalError("Failed to record response", err.Error())
	}
	return nil
}

// ListResponses returns the audit trail of an issue, newest first.
func ListResponses(ctx context.Context, postID primitive.ObjectID) ([]models.Response, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := responseCollection().Find(ctx, bson.M{"post": postID}, findOptions)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to retrieve responses", err.Error())
	}
	defer cursor.Close(ctx)

	responses := []models.Response{}
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, apperrors.NewInternalError("Failed to decode responses", err.Error())
	}
	return responses, nil
}
