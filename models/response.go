package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Response is an append-only audit record of an authority acting on an
// issue: the message it attached and the status change that accompanied it.
// Records are never mutated or deleted while their issue exists; deleting
// an issue cascade-removes them.
type Response struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Post         primitive.ObjectID `bson:"post" json:"post"`
	Authority    primitive.ObjectID `bson:"authority" json:"authority"`
	Message      string             `bson:"message" json:"message"`
	StatusUpdate IssueStatus        `bson:"statusUpdate" json:"statusUpdate"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// EnsureResponseIndex creates the (post, createdAt) index the audit-trail
// reads depend on
func EnsureResponseIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "post", Value: 1}, {Key: "createdAt", Value: -1}},
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
