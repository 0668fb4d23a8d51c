package models

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"samasya-be/apperrors"
)

// IssueCategory enum
type IssueCategory string

const (
	CategoryRoad        IssueCategory = "road"
	CategoryWater       IssueCategory = "water"
	CategoryElectricity IssueCategory = "electricity"
	CategoryGarbage     IssueCategory = "garbage"
	CategorySafety      IssueCategory = "safety"
	CategoryOther       IssueCategory = "other"
)

// Categories lists every valid issue category.
var Categories = []IssueCategory{
	CategoryRoad, CategoryWater, CategoryElectricity,
	CategoryGarbage, CategorySafety, CategoryOther,
}

// IssueStatus enum
type IssueStatus string

const (
	StatusPending    IssueStatus = "pending"
	StatusInProgress IssueStatus = "in_progress"
	StatusCompleted  IssueStatus = "completed"
)

// TargetGroup determines who an issue is routed to.
type TargetGroup string

const (
	TargetAuthority TargetGroup = "authority"
	TargetVolunteer TargetGroup = "volunteer"
	TargetBoth      TargetGroup = "both"
)

// Districts is the fixed list an issue or authority area may belong to.
var Districts = []string{
	"Kathmandu", "Lalitpur", "Bhaktapur", "Pokhara", "Chitwan",
	"Butwal", "Biratnagar", "Birgunj", "Dharan", "Nepalgunj",
}

// ValidDistrict reports whether d is one of the enumerated districts.
func ValidDistrict(d string) bool {
	for _, v := range Districts {
		if d == v {
			return true
		}
	}
	return false
}

// Location is an optional address plus an optional coordinate pair.
type Location struct {
	Address string   `bson:"address,omitempty" json:"address,omitempty"`
	Lat     *float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng     *float64 `bson:"lng,omitempty" json:"lng,omitempty"`
}

// Issue represents a civic problem reported by a citizen. Author and
// createdAt are set at creation and never change; status only moves forward
// through the lifecycle package; deadline, once set, is immutable.
type Issue struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Author            primitive.ObjectID   `bson:"author" json:"author"`
	Title             string               `bson:"title" json:"title"`
	Description       string               `bson:"description" json:"description"`
	Photo             string               `bson:"photo,omitempty" json:"photo,omitempty"`
	Location          Location             `bson:"location,omitempty" json:"location,omitempty"`
	District          string               `bson:"district" json:"district"`
	Category          IssueCategory        `bson:"category" json:"category"`
	Status            IssueStatus          `bson:"samasyaStatus" json:"samasyaStatus"`
	TargetGroup       TargetGroup          `bson:"targetGroup" json:"targetGroup"`
	Likes             []primitive.ObjectID `bson:"likes,omitempty" json:"likes,omitempty"`
	Volunteers        []primitive.ObjectID `bson:"volunteers,omitempty" json:"volunteers,omitempty"`
	AuthorityResponse string               `bson:"authorityResponse,omitempty" json:"authorityResponse,omitempty"`
	RespondedBy       *primitive.ObjectID  `bson:"respondedBy,omitempty" json:"respondedBy,omitempty"`
	RespondedAt       *time.Time           `bson:"respondedAt,omitempty" json:"respondedAt,omitempty"`
	Deadline          *time.Time           `bson:"deadline,omitempty" json:"deadline,omitempty"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// EnsureIssueIndex creates the compound (district, category, samasyaStatus)
// index that backs area routing and dashboard filtering.
func EnsureIssueIndex(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "district", Value: 1},
			{Key: "category", Value: 1},
			{Key: "samasyaStatus", Value: 1},
		},
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}

// ValidCategory reports whether c is one of the enumerated categories.
func ValidCategory(c IssueCategory) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the enumerated statuses.
func ValidStatus(s IssueStatus) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// ValidTargetGroup reports whether t is one of the enumerated target groups.
func ValidTargetGroup(t TargetGroup) bool {
	return t == TargetAuthority || t == TargetVolunteer || t == TargetBoth
}

// Validate checks the fields a citizen must supply at creation.
func (i *Issue) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return apperrors.NewValidationError("Title is required")
	}
	if strings.TrimSpace(i.Description) == "" {
		return apperrors.NewValidationError("Description is required")
	}
	if !ValidCategory(i.Category) {
		return apperrors.NewValidationError("Invalid category", string(i.Category))
	}
	if !ValidTargetGroup(i.TargetGroup) {
		return apperrors.NewValidationError("Invalid target group", string(i.TargetGroup))
	}
	if !ValidDistrict(i.District) {
		return apperrors.NewValidationError("Invalid district", i.District)
	}
	return nil
}
