package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"samasya-be/models"
)

// IssueFilter describes a query over the issues collection. Zero values
// mean "no constraint".
type IssueFilter struct {
	Author     *primitive.ObjectID
	Status     models.IssueStatus
	Category   models.IssueCategory
	Categories []models.IssueCategory
	District   string
	Target     []models.TargetGroup
	Search     string
	Geotagged  bool
}

// buildIssueFilter translates an IssueFilter into the mongo query document.
// Kept pure so query shapes are testable without a database.
func buildIssueFilter(f IssueFilter) bson.M {
	filter := bson.M{}

	if f.Author != nil {
		filter["author"] = *f.Author
	}
	if f.Status != "" {
		filter["samasyaStatus"] = f.Status
	}
	if f.Category != "" {
		filter["category"] = f.Category
	} else if len(f.Categories) > 0 {
		filter["category"] = bson.M{"$in": f.Categories}
	}
	if f.District != "" {
		filter["district"] = f.District
	}
	if len(f.Target) > 0 {
		filter["targetGroup"] = bson.M{"$in": f.Target}
	}
	if f.Search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": f.Search, "$options": "i"}},
			{"description": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	if f.Geotagged {
		filter["location.lat"] = bson.M{"$exists": true, "$ne": nil}
		filter["location.lng"] = bson.M{"$exists": true, "$ne": nil}
	}

	return filter
}

// AuthorityFilter builds the filter that scopes the issues collection to an
// authority's coverage area, optionally narrowed to one status. Callers
// must check area.Configured() first; an unconfigured area must never reach
// the database.
func AuthorityFilter(area models.Area, status models.IssueStatus) IssueFilter {
	return IssueFilter{
		Categories: area.Categories,
		District:   area.District,
		Status:     status,
		Target:     []models.TargetGroup{models.TargetAuthority, models.TargetBoth},
	}
}
