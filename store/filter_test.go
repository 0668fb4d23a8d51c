package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"samasya-be/models"
)

func TestBuildIssueFilter(t *testing.T) {
	author := primitive.NewObjectID()

	tests := []struct {
		name   string
		filter IssueFilter
		want   bson.M
	}{
		{
			"empty filter matches everything",
			IssueFilter{},
			bson.M{},
		},
		{
			"author scope",
			IssueFilter{Author: &author},
			bson.M{"author": author},
		},
		{
			"status and single category",
			IssueFilter{Status: models.StatusPending, Category: models.CategoryWater},
			bson.M{"samasyaStatus": models.StatusPending, "category": models.CategoryWater},
		},
		{
			"category set wins only without single category",
			IssueFilter{Category: models.CategoryRoad, Categories: []models.IssueCategory{models.CategoryWater}},
			bson.M{"category": models.CategoryRoad},
		},
		{
			"search matches title or description",
			IssueFilter{Search: "pipe"},
			bson.M{"$or": []bson.M{
				{"title": bson.M{"$regex": "pipe", "$options": "i"}},
				{"description": bson.M{"$regex": "pipe", "$options": "i"}},
			}},
		},
		{
			"geotagged requires both coordinates",
			IssueFilter{Geotagged: true},
			bson.M{
				"location.lat": bson.M{"$exists": true, "$ne": nil},
				"location.lng": bson.M{"$exists": true, "$ne": nil},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildIssueFilter(tt.filter))
		})
	}
}

func TestAuthorityFilter(t *testing.T) {
	area := models.Area{
		Categories: []models.IssueCategory{models.CategoryWater, models.CategoryGarbage},
		District:   "Lalitpur",
	}

	got := buildIssueFilter(AuthorityFilter(area, models.StatusPending))

	assert.Equal(t, bson.M{
		"district":      "Lalitpur",
		"category":      bson.M{"$in": area.Categories},
		"samasyaStatus": models.StatusPending,
		"targetGroup":   bson.M{"$in": []models.TargetGroup{models.TargetAuthority, models.TargetBoth}},
	}, got)
}

func TestAuthorityFilterAllStatuses(t *testing.T) {
	area := models.Area{
		Categories: []models.IssueCategory{models.CategoryRoad},
		District:   "Kathmandu",
	}

	got := buildIssueFilter(AuthorityFilter(area, ""))

	_, hasStatus := got["samasyaStatus"]
	assert.False(t, hasStatus)
	assert.Equal(t, "Kathmandu", got["district"])
}
