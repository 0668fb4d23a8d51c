package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"samasya-be/apperrors"
	"samasya-be/models"
)

func TestComputeDeadline(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target models.TargetGroup
		want   *time.Time
	}{
		{"authority gets 24h deadline", models.TargetAuthority, ptr(createdAt.Add(24 * time.Hour))},
		{"both gets 24h deadline", models.TargetBoth, ptr(createdAt.Add(24 * time.Hour))},
		{"volunteer gets no deadline", models.TargetVolunteer, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDeadline(tt.target, createdAt)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(*tt.want))
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		status   models.IssueStatus
		deadline *time.Time
		want     bool
	}{
		{"pending past deadline", models.StatusPending, &past, true},
		{"in_progress past deadline", models.StatusInProgress, &past, true},
		{"pending before deadline", models.StatusPending, &future, false},
		{"no deadline never overdue", models.StatusPending, nil, false},
		{"completed never overdue even past deadline", models.StatusCompleted, &past, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverdue(tt.status, tt.deadline, now))
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.IssueStatus
		want     bool
	}{
		{models.StatusPending, models.StatusInProgress, true},
		{models.StatusPending, models.StatusCompleted, true},
		{models.StatusInProgress, models.StatusCompleted, true},
		{models.StatusInProgress, models.StatusPending, false},
		{models.StatusCompleted, models.StatusPending, false},
		{models.StatusCompleted, models.StatusInProgress, false},
		{models.StatusCompleted, models.StatusCompleted, false},
		{models.StatusPending, models.StatusPending, false},
		{models.StatusInProgress, models.StatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestActionable(t *testing.T) {
	assert.True(t, Actionable(models.StatusPending))
	assert.True(t, Actionable(models.StatusInProgress))
	assert.False(t, Actionable(models.StatusCompleted))
}

func waterAuthority(district string) *models.User {
	return &models.User{
		ID:   primitive.NewObjectID(),
		Role: models.RoleAuthority,
		Area: models.Area{
			Categories: []models.IssueCategory{models.CategoryWater},
			District:   district,
		},
	}
}

func waterIssue(district string, status models.IssueStatus) *models.Issue {
	return &models.Issue{
		ID:          primitive.NewObjectID(),
		Category:    models.CategoryWater,
		District:    district,
		Status:      status,
		TargetGroup: models.TargetAuthority,
	}
}

func TestValidateTransition(t *testing.T) {
	t.Run("matching authority may start progress", func(t *testing.T) {
		err := ValidateTransition(waterAuthority("Kathmandu"), waterIssue("Kathmandu", models.StatusPending), models.StatusInProgress)
		assert.NoError(t, err)
	})

	t.Run("matching authority may complete directly", func(t *testing.T) {
		err := ValidateTransition(waterAuthority("Kathmandu"), waterIssue("Kathmandu", models.StatusPending), models.StatusCompleted)
		assert.NoError(t, err)
	})

	t.Run("wrong district is out of coverage", func(t *testing.T) {
		err := ValidateTransition(waterAuthority("Kathmandu"), waterIssue("Pokhara", models.StatusPending), models.StatusInProgress)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePermission))
	})

	t.Run("wrong category is out of coverage", func(t *testing.T) {
		issue := waterIssue("Kathmandu", models.StatusPending)
		issue.Category = models.CategoryRoad
		err := ValidateTransition(waterAuthority("Kathmandu"), issue, models.StatusInProgress)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePermission))
	})

	t.Run("unconfigured area is rejected", func(t *testing.T) {
		authority := waterAuthority("Kathmandu")
		authority.Area = models.Area{}
		err := ValidateTransition(authority, waterIssue("Kathmandu", models.StatusPending), models.StatusInProgress)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePermission))
	})

	t.Run("citizen cannot transition", func(t *testing.T) {
		authority := waterAuthority("Kathmandu")
		authority.Role = models.RoleCitizen
		err := ValidateTransition(authority, waterIssue("Kathmandu", models.StatusPending), models.StatusInProgress)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePermission))
	})

	t.Run("backward transition is invalid", func(t *testing.T) {
		err := ValidateTransition(waterAuthority("Kathmandu"), waterIssue("Kathmandu", models.StatusInProgress), models.StatusPending)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidTransition))
	})

	t.Run("completed is terminal", func(t *testing.T) {
		err := ValidateTransition(waterAuthority("Kathmandu"), waterIssue("Kathmandu", models.StatusCompleted), models.StatusInProgress)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidTransition))
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		err := ValidateTransition(waterAuthority("Kathmandu"), waterIssue("Kathmandu", models.StatusPending), models.IssueStatus("resolved"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestValidateAmend(t *testing.T) {
	t.Run("completed issue may be amended", func(t *testing.T) {
		err := ValidateAmend(waterAuthority("Kathmandu"), waterIssue("Kathmandu", models.StatusCompleted))
		assert.NoError(t, err)
	})

	t.Run("pending issue may not be amended", func(t *testing.T) {
		err := ValidateAmend(waterAuthority("Kathmandu"), waterIssue("Kathmandu", models.StatusPending))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidTransition))
	})

	t.Run("out of coverage may not amend", func(t *testing.T) {
		err := ValidateAmend(waterAuthority("Kathmandu"), waterIssue("Pokhara", models.StatusCompleted))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePermission))
	})
}

func ptr(t time.Time) *time.Time { return &t }
