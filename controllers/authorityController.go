package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"samasya-be/apperrors"
	"samasya-be/lifecycle"
	"samasya-be/models"
	"samasya-be/routing"
	"samasya-be/stats"
	"samasya-be/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetAuthorityArea saves the acting authority's coverage configuration:
// which categories it handles and in which district.
func SetAuthorityArea(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Categories []models.IssueCategory `json:"categories" binding:"required"`
		District   string                 `json:"district" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := routing.ValidateArea(input.Categories, input.District); err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := store.GetUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !user.IsAuthority() {
		respondError(c, apperrors.NewPermissionError("Only authorities can configure an area"))
		return
	}

	updated, err := store.SetArea(ctx, userID, models.Area{
		Categories: input.Categories,
		District:   input.District,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Area saved",
		"authority": authorityProfile(updated),
	})
}

// AuthorityDashboard serves the triage view: the issues routed to the
// acting authority (optionally narrowed by status) plus statistics and the
// 7-day trend over everything in coverage. Visibility is re-derived from
// the stored area on every call, so a reconfiguration takes effect on the
// next refresh.
func AuthorityDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	statusFilter := c.DefaultQuery("status", "all")
	switch statusFilter {
	case "all", string(models.StatusPending), string(models.StatusInProgress), string(models.StatusCompleted):
	default:
		respondError(c, apperrors.NewValidationError("Invalid status filter", statusFilter))
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := store.GetUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !user.IsAuthority() {
		respondError(c, apperrors.NewPermissionError("Only authorities can view the dashboard"))
		return
	}

	now := time.Now()

	// An unconfigured authority sees nothing: no posts, zero stats, a
	// zero trend. The database is never consulted.
	if !user.Area.Configured() {
		c.JSON(http.StatusOK, gin.H{
			"authority": authorityProfile(user),
			"posts":     []decoratedIssue{},
			"stats":     stats.Compute(nil, now),
		})
		return
	}

	visible, err := store.QueryIssues(ctx, store.AuthorityFilter(user.Area, ""), 0, 0)
	if err != nil {
		respondError(c, err)
		return
	}

	posts := visible
	if statusFilter != "all" {
		posts = make([]models.Issue, 0, len(visible))
		for _, issue := range visible {
			if issue.Status == models.IssueStatus(statusFilter) {
				posts = append(posts, issue)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"authority": authorityProfile(user),
		"posts":     decorateIssues(posts, now),
		"stats":     stats.Compute(visible, now),
	})
}

// TransitionStatus applies an authority's status change to an issue,
// recording the response and timestamps atomically with the status via a
// conditional update. Concurrent transitions on the same issue serialize;
// the loser gets a conflict.
func TransitionStatus(c *gin.Context) {
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
		Status   string `json:"status" binding:"required"`
		Response string `json:"response,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := store.GetUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	issue, err := store.GetIssue(ctx, issueID)
	if err != nil {
		respondError(c, err)
		return
	}

	newStatus := models.IssueStatus(input.Status)
	if err := lifecycle.ValidateTransition(user, issue, newStatus); err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	set := bson.M{"samasyaStatus": newStatus}
	switch newStatus {
	case models.StatusCompleted:
		// respondedAt/respondedBy/authorityResponse change together,
		// only here.
		set["authorityResponse"] = input.Response
		set["respondedBy"] = userID
		set["respondedAt"] = now
	case models.StatusInProgress:
		if input.Response != "" {
			// Mirror the latest message inline; the audit record below
			// keeps the history.
			set["authorityResponse"] = input.Response
		}
	}

	updated, err := store.ApplyTransition(ctx, issueID, issue.Status, set)
	if err != nil {
		respondError(c, err)
		return
	}

	if newStatus == models.StatusCompleted {
		if err := store.IncTotalResolved(ctx, userID); err != nil {
			slog.Warn("resolution counter increment failed", "authority", userID.Hex(), "error", err)
		}
	}

	if newStatus == models.StatusCompleted || input.Response != "" {
		audit := models.Response{
			ID:           primitive.NewObjectID(),
			Post:         issueID,
			Authority:    userID,
			Message:      input.Response,
			StatusUpdate: newStatus,
			CreatedAt:    now,
		}
		if err := store.AppendResponse(ctx, &audit); err != nil {
			slog.Warn("audit response insert failed", "issue", issueID.Hex(), "error", err)
		}
	}

	c.JSON(http.StatusOK, decorateIssue(*updated, now))
}

// AmendResponse rewrites the inline response text of an already completed
// issue. Not a transition: status, respondedAt and counters stay put, and
// no audit record is appended.
func AmendResponse(c *gin.Context) {
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
		Response string `json:"response" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := store.GetUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	issue, err := store.GetIssue(ctx, issueID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := lifecycle.ValidateAmend(user, issue); err != nil {
		respondError(c, err)
		return
	}

	updated, err := store.ApplyTransition(ctx, issueID, models.StatusCompleted, bson.M{
		"samasyaStatus":     models.StatusCompleted,
		"authorityResponse": input.Response,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, decorateIssue(*updated, time.Now()))
}

// authorityProfile projects the public fields of an authority account.
func authorityProfile(u *models.User) gin.H {
	return gin.H{
		"id":            u.ID,
		"name":          u.Name,
		"department":    u.Department,
		"rating":        u.Rating,
		"totalResolved": u.TotalResolved,
		"totalIgnored":  u.TotalIgnored,
		"area":          u.Area,
	}
}
