package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"samasya-be/apperrors"
	"samasya-be/config"
	"samasya-be/models"
)

func userCollection() *mongo.Collection {
	return config.GetCollection("users")
}

// GetUser fetches one user by id.
func GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := userCollection().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, apperrors.NewInternalError("Failed to retrieve user", err.Error())
	}
	return &user, nil
}

// SetArea replaces an authority's coverage configuration and returns the
// updated profile. Validation happens in the routing package before this is
// called.
func SetArea(ctx context.Context, id primitive.ObjectID, area models.Area) (*models.User, error) {
	result, err := userCollection().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"area": area, "updatedAt": time.Now()}},
	)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to save area", err.Error())
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	return GetUser(ctx, id)
}

// IncTotalResolved bumps an authority's resolution counter after a
// completing transition has committed on the issue document.
func IncTotalResolved(ctx context.Context, id primitive.ObjectID) error {
	_, err := userCollection().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"totalResolved": 1}},
	)
	if err != nil {
		return apperrors.NewInternalError("Failed to update resolution counter", err.Error())
	}
	return nil
}
