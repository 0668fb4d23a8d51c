// Package lifecycle is the single source of truth for issue status rules:
// which transitions are legal, when a deadline is assigned, and when an
// issue counts as overdue. It has no storage or session dependencies; the
// acting authority and the clock are always passed in explicitly.
package lifecycle

import (
	"fmt"
	"time"

	"samasya-be/apperrors"
	"samasya-be/models"
	"samasya-be/routing"
)

// DeadlineSLA is the fixed window an authority has to complete an issue
// routed to it, measured from creation.
const DeadlineSLA = 24 * time.Hour

// ComputeDeadline returns the deadline for a new issue, or nil when the
// issue is not targeted at authorities.
func ComputeDeadline(target models.TargetGroup, createdAt time.Time) *time.Time {
	if target != models.TargetAuthority && target != models.TargetBoth {
		return nil
	}
	d := createdAt.Add(DeadlineSLA)
	return &d
}

// IsOverdue reports whether an issue is past its deadline. Completed issues
// are never overdue. Derived on every read, never stored.
func IsOverdue(status models.IssueStatus, deadline *time.Time, now time.Time) bool {
	return status != models.StatusCompleted && deadline != nil && deadline.Before(now)
}

// CanTransition reports whether the status may move from one value to the
// next. Statuses only move forward; pending may jump straight to completed.
func CanTransition(from, to models.IssueStatus) bool {
	switch from {
	case models.StatusPending:
		return to == models.StatusInProgress || to == models.StatusCompleted
	case models.StatusInProgress:
		return to == models.StatusCompleted
	default:
		return false
	}
}

// Actionable reports whether an authority still has work to do on a status.
// UI consumers must call this rather than compare status strings.
func Actionable(status models.IssueStatus) bool {
	return status != models.StatusCompleted
}

// AuthorizeTransition checks that the acting authority may change the
// issue's status at all: it must hold the authority role, have a fully
// configured area, and the issue must fall inside that area.
func AuthorizeTransition(authority *models.User, issue *models.Issue) error {
	if !authority.IsAuthority() {
		return apperrors.NewPermissionError("Only authorities can update issue status")
	}
	if !authority.Area.Configured() {
		return apperrors.NewPermissionError("area not configured",
			"select your coverage categories and district first")
	}
	if !routing.Visible(authority.Area, issue) {
		return apperrors.NewPermissionError("out of coverage",
			fmt.Sprintf("issue is %s in %s", issue.Category, issue.District))
	}
	return nil
}

// ValidateTransition combines authorization with the state machine check
// for a requested status change.
func ValidateTransition(authority *models.User, issue *models.Issue, to models.IssueStatus) error {
	if err := AuthorizeTransition(authority, issue); err != nil {
		return err
	}
	if !models.ValidStatus(to) {
		return apperrors.NewValidationError("Invalid status", string(to))
	}
	if !CanTransition(issue.Status, to) {
		return apperrors.NewInvalidTransitionError(
			fmt.Sprintf("cannot move issue from %s to %s", issue.Status, to))
	}
	return nil
}

// ValidateAmend authorizes the response-only edit of an already completed
// issue. It is not a status transition: respondedAt and resolution counters
// stay untouched.
func ValidateAmend(authority *models.User, issue *models.Issue) error {
	if err := AuthorizeTransition(authority, issue); err != nil {
		return err
	}
	if issue.Status != models.StatusCompleted {
		return apperrors.NewInvalidTransitionError(
			"response can only be amended on a completed issue")
	}
	return nil
}
