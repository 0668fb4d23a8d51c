package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samasya-be/apperrors"
	"samasya-be/models"
)

// Two transitions racing on one issue: the conditional update matches for
// exactly one of them. The loser re-reads and must see a conflict while the
// issue exists, and not-found once it is gone.
func TestResolveTransitionMiss(t *testing.T) {
	tests := []struct {
		name     string
		current  *models.Issue
		getErr   error
		wantType apperrors.ErrorType
	}{
		{
			"issue moved on: loser gets conflict",
			&models.Issue{Status: models.StatusInProgress},
			nil,
			apperrors.ErrorTypeConflict,
		},
		{
			"issue already completed by the winner",
			&models.Issue{Status: models.StatusCompleted},
			nil,
			apperrors.ErrorTypeConflict,
		},
		{
			"issue deleted underneath the transition",
			nil,
			apperrors.NewNotFoundError("Issue not found"),
			apperrors.ErrorTypeNotFound,
		},
		{
			"re-read failed outright",
			nil,
			apperrors.NewInternalError("Failed to retrieve issue"),
			apperrors.ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := resolveTransitionMiss(tt.current, tt.getErr)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.wantType))
		})
	}
}

// The conflict carries the fresh status so the caller can retry without
// another read.
func TestResolveTransitionMissReportsFreshState(t *testing.T) {
	err := resolveTransitionMiss(&models.Issue{Status: models.StatusCompleted}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), string(models.StatusCompleted))
}
