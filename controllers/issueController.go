package controllers

import (
	"net/http"
	"strconv"
	"time"

	"samasya-be/apperrors"
	"samasya-be/lifecycle"
	"samasya-be/models"
	"samasya-be/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateIssue handles a citizen reporting a new issue. Status starts at
// pending; the deadline is assigned here, once, and never changes.
func CreateIssue(c *gin.Context) {
	authorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"required,max=200"`
		Description string   `json:"description" binding:"required,max=1000"`
		Category    string   `json:"category" binding:"required"`
		TargetGroup string   `json:"targetGroup" binding:"required"`
		District    string   `json:"district" binding:"required"`
		Address     string   `json:"address,omitempty"`
		Photo       string   `json:"photo,omitempty"`
		Lat         *float64 `json:"lat,omitempty"`
		Lng         *float64 `json:"lng,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	issue := models.Issue{
		ID:          primitive.NewObjectID(),
		Author:      authorID,
		Title:       input.Title,
		Description: input.Description,
		Photo:       input.Photo,
		Location: models.Location{
			Address: input.Address,
			Lat:     input.Lat,
			Lng:     input.Lng,
		},
		District:    input.District,
		Category:    models.IssueCategory(input.Category),
		Status:      models.StatusPending,
		TargetGroup: models.TargetGroup(input.TargetGroup),
		Deadline:    nil,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	issue.Deadline = lifecycle.ComputeDeadline(issue.TargetGroup, now)

	if err := issue.Validate(); err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := store.CreateIssue(ctx, &issue); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// GetAllIssues handles the public feed with filtering, search and
// pagination, newest first.
func GetAllIssues(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	category := c.Query("category")
	status := c.Query("status")
	district := c.Query("district")
	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := store.IssueFilter{Search: search, District: district}
	if category != "" && category != "all" {
		filter.Category = models.IssueCategory(category)
	}
	if status != "" && status != "all" {
		filter.Status = models.IssueStatus(status)
	}

	totalCount, err := store.CountIssues(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	skip := int64((page - 1) * limit)
	issues, err := store.QueryIssues(ctx, filter, skip, int64(limit))
	if err != nil {
		respondError(c, err)
		return
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, gin.H{
		"issues":      decorateIssues(issues, time.Now()),
		"totalIssues": totalCount,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// GetIssue retrieves one issue by id
func GetIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	issue, err := store.GetIssue(ctx, issueID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, decorateIssue(*issue, time.Now()))
}

// GetIssueResponses returns the append-only audit trail of an issue.
func GetIssueResponses(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if _, err := store.GetIssue(ctx, issueID); err != nil {
		respondError(c, err)
		return
	}

	responses, err := store.ListResponses(ctx, issueID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// GetIssuesByUser retrieves all issues created by the authenticated user
func GetIssuesByUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	issues, err := store.QueryIssues(ctx, store.IssueFilter{Author: &userID}, 0, 0)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, decorateIssues(issues, time.Now()))
}

// UpdateIssue allows the author to edit an issue's content. Status,
// deadline and the response fields are off limits here; those belong to
// the lifecycle transitions.
func UpdateIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       *string  `json:"title,omitempty"`
		Description *string  `json:"description,omitempty"`
		Category    *string  `json:"category,omitempty"`
		District    *string  `json:"district,omitempty"`
		Address     *string  `json:"address,omitempty"`
		Photo       *string  `json:"photo,omitempty"`
		Lat         *float64 `json:"lat,omitempty"`
		Lng         *float64 `json:"lng,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	issue, err := store.GetIssue(ctx, issueID)
	if err != nil {
		respondError(c, err)
		return
	}

	if issue.Author != userID {
		respondError(c, apperrors.NewPermissionError("You are not authorized to update this issue"))
		return
	}

	update := bson.M{}
	if input.Title != nil {
		update["title"] = *input.Title
	}
	if input.Description != nil {
		update["description"] = *input.Description
	}
	if input.Category != nil {
		if !models.ValidCategory(models.IssueCategory(*input.Category)) {
			respondError(c, apperrors.NewValidationError("Invalid category", *input.Category))
			return
		}
		update["category"] = *input.Category
	}
	if input.District != nil {
		if !models.ValidDistrict(*input.District) {
			respondError(c, apperrors.NewValidationError("Invalid district", *input.District))
			return
		}
		update["district"] = *input.District
	}
	if input.Address != nil {
		update["location.address"] = *input.Address
	}
	if input.Photo != nil {
		update["photo"] = *input.Photo
	}
	if input.Lat != nil {
		update["location.lat"] = *input.Lat
	}
	if input.Lng != nil {
		update["location.lng"] = *input.Lng
	}

	if err := store.UpdateIssueFields(ctx, issueID, update); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue updated successfully"})
}

// DeleteIssue removes an issue and its audit trail. Only the author or an
// admin may delete.
func DeleteIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	issue, err := store.GetIssue(ctx, issueID)
	if err != nil {
		respondError(c, err)
		return
	}

	if issue.Author != userID {
		user, err := store.GetUser(ctx, userID)
		if err != nil || user.Role != models.RoleAdmin {
			respondError(c, apperrors.NewPermissionError("You are not authorized to delete this issue"))
			return
		}
	}

	if err := store.DeleteIssue(ctx, issueID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted successfully"})
}

// HandleLikeIssue toggles the user's like on an issue
func HandleLikeIssue(c *gin.Context) {
	toggleMembership(c, "likes", "like")
}

// HandleVolunteerIssue toggles the user's volunteer opt-in on an issue
func HandleVolunteerIssue(c *gin.Context) {
	toggleMembership(c, "volunteers", "volunteer")
}

func toggleMembership(c *gin.Context, field, label string) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	issue, member, err := store.ToggleSetMember(ctx, issueID, field, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	count := len(issue.Likes)
	if field == "volunteers" {
		count = len(issue.Volunteers)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": label + " toggled",
		"active":  member,
		"count":   count,
	})
}

// RecentIssues returns the most recent issues that carry coordinates, for
// the map view.
func RecentIssues(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	issues, err := store.QueryIssues(ctx, store.IssueFilter{Geotagged: true}, 0, 19)
	if err != nil {
		respondError(c, err)
		return
	}

	type pin struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Lat       float64   `json:"lat"`
		Lng       float64   `json:"lng"`
		Address   string    `json:"address,omitempty"`
		District  string    `json:"district"`
		Category  string    `json:"category"`
		CreatedAt time.Time `json:"createdAt"`
	}

	pins := []pin{}
	for _, issue := range issues {
		if issue.Location.Lat == nil || issue.Location.Lng == nil {
			continue
		}
		pins = append(pins, pin{
			ID:        issue.ID.Hex(),
			Title:     issue.Title,
			Lat:       *issue.Location.Lat,
			Lng:       *issue.Location.Lng,
			Address:   issue.Location.Address,
			District:  issue.District,
			Category:  string(issue.Category),
			CreatedAt: issue.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, pins)
}

// decoratedIssue is an Issue plus the read-time derived fields.
type decoratedIssue struct {
	models.Issue
	Overdue    bool `json:"overdue"`
	Likes      int  `json:"likes"`
	Volunteers int  `json:"volunteers"`
}

func decorateIssue(issue models.Issue, now time.Time) decoratedIssue {
	return decoratedIssue{
		Issue:      issue,
		Overdue:    lifecycle.IsOverdue(issue.Status, issue.Deadline, now),
		Likes:      len(issue.Likes),
		Volunteers: len(issue.Volunteers),
	}
}

func decorateIssues(issues []models.Issue, now time.Time) []decoratedIssue {
	decorated := make([]decoratedIssue, 0, len(issues))
	for _, issue := range issues {
		decorated = append(decorated, decorateIssue(issue, now))
	}
	return decorated
}
