// Package store wraps the MongoDB collections behind operations the
// controllers call. All single-issue writes are atomic at the document
// level; the transition path additionally serializes racers with a
// conditional update on the current status.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"samasya-be/apperrors"
	"samasya-be/config"
	"samasya-be/models"
)

func issueCollection() *mongo.Collection {
	return config.GetCollection("issues")
}

// CreateIssue persists a new issue. The caller is responsible for having
// validated fields and computed status/deadline/timestamps.
func CreateIssue(ctx context.Context, issue *models.Issue) error {
	_, err := issueCollection().InsertOne(ctx, issue)
	if err != nil {
		return apperrors.NewInternalError("Failed to create issue", err.Error())
	}
	return nil
}

// GetIssue fetches one issue by id.
func GetIssue(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	var issue models.Issue
	err := issueCollection().FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("Issue not found")
		}
		return nil, apperrors.NewInternalError("Failed to retrieve issue", err.Error())
	}
	return &issue, nil
}

// QueryIssues returns issues matching the filter, newest first. A limit of
// 0 means no limit.
func QueryIssues(ctx context.Context, f IssueFilter, skip, limit int64) ([]models.Issue, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if skip > 0 {
		findOptions.SetSkip(skip)
	}
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := issueCollection().Find(ctx, buildIssueFilter(f), findOptions)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to retrieve issues", err.Error())
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, apperrors.NewInternalError("Failed to decode issues", err.Error())
	}
	return issues, nil
}

// CountIssues counts issues matching the filter.
func CountIssues(ctx context.Context, f IssueFilter) (int64, error) {
	count, err := issueCollection().CountDocuments(ctx, buildIssueFilter(f))
	if err != nil {
		return 0, apperrors.NewInternalError("Failed to count issues", err.Error())
	}
	return count, nil
}

// UpdateIssueFields applies an author's content edits. Status, deadline and
// response fields never pass through here.
func UpdateIssueFields(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now()
	result, err := issueCollection().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return apperrors.NewInternalError("Failed to update issue", err.Error())
	}
	if result.MatchedCount == 0 {
		return apperrors.NewNotFoundError("Issue not found")
	}
	return nil
}

// ApplyTransition commits a status change only if the issue is still in the
// expected state, returning the updated document. When two transitions race
// on the same issue, exactly one matches; the loser re-reads the issue and
// reports conflict with fresh state, or not-found if it vanished.
func ApplyTransition(ctx context.Context, id primitive.ObjectID, expected models.IssueStatus, set bson.M) (*models.Issue, error) {
	set["updatedAt"] = time.Now()

	var updated models.Issue
	err := issueCollection().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "samasyaStatus": expected},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NewInternalError("Failed to update issue status", err.Error())
	}

	current, getErr := GetIssue(ctx, id)
	return nil, resolveTransitionMiss(current, getErr)
}

// resolveTransitionMiss classifies a conditional transition that matched no
// document. If the issue is gone the caller chased a stale reference; if it
// still exists its status moved underneath the caller, who lost the race
// and may retry once with fresh state.
func resolveTransitionMiss(current *models.Issue, getErr error) error {
	if getErr != nil {
		return getErr
	}
	return apperrors.NewConflictError("Issue was updated concurrently",
		"issue is now "+string(current.Status)+"; refresh and retry the status change")
}

// ToggleSetMember adds the user to the named membership set (likes or
// volunteers) if absent, otherwise removes them. Returns the updated issue
// and whether the user is now a member.
func ToggleSetMember(ctx context.Context, id primitive.ObjectID, field string, userID primitive.ObjectID) (*models.Issue, bool, error) {
	issue, err := GetIssue(ctx, id)
	if err != nil {
		return nil, false, err
	}

	members := issue.Likes
	if field == "volunteers" {
		members = issue.Volunteers
	}
	isMember := false
	for _, m := range members {
		if m == userID {
			isMember = true
			break
		}
	}

	update := bson.M{"$addToSet": bson.M{field: userID}}
	if isMember {
		update = bson.M{"$pull": bson.M{field: userID}}
	}

	var updated models.Issue
	err = issueCollection().FindOneAndUpdate(ctx,
		bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, apperrors.NewNotFoundError("Issue not found")
		}
		return nil, false, apperrors.NewInternalError("Failed to update issue", err.Error())
	}
	return &updated, !isMember, nil
}

// DeleteIssue removes an issue and cascade-deletes its Response audit
// records. Administrative action; authorization happens in the caller.
func DeleteIssue(ctx context.Context, id primitive.ObjectID) error {
	result, err := issueCollection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperrors.NewInternalError("Failed to delete issue", err.Error())
	}
	if result.DeletedCount == 0 {
		return apperrors.NewNotFoundError("Issue not found")
	}

	// Audit rows have no reader once the issue is gone.
	_, _ = responseCollection().DeleteMany(ctx, bson.M{"post": id})
	return nil
}
