// Package routing decides which issues surface on which authority's
// dashboard. The predicate is pure and must be re-evaluated on every query;
// caching it across an area reconfiguration would leak stale visibility.
package routing

import (
	"samasya-be/apperrors"
	"samasya-be/models"
)

// Visible reports whether an issue belongs on the dashboard of an authority
// with the given area: the issue's category must be covered, the district
// must match, and the issue must be targeted at authorities at all. An
// unconfigured area sees nothing.
func Visible(area models.Area, issue *models.Issue) bool {
	if !area.Configured() {
		return false
	}
	if issue.TargetGroup != models.TargetAuthority && issue.TargetGroup != models.TargetBoth {
		return false
	}
	if issue.District != area.District {
		return false
	}
	for _, c := range area.Categories {
		if issue.Category == c {
			return true
		}
	}
	return false
}

// Filter returns the subset of issues visible to the given area, preserving
// order.
func Filter(area models.Area, issues []models.Issue) []models.Issue {
	visible := make([]models.Issue, 0, len(issues))
	for i := range issues {
		if Visible(area, &issues[i]) {
			visible = append(visible, issues[i])
		}
	}
	return visible
}

// ValidateArea checks a requested area configuration: every category must
// come from the enumerated set (no duplicates) and the district from the
// fixed district list.
func ValidateArea(categories []models.IssueCategory, district string) error {
	if len(categories) == 0 {
		return apperrors.NewValidationError("Select at least one category")
	}
	seen := make(map[models.IssueCategory]bool, len(categories))
	for _, c := range categories {
		if !models.ValidCategory(c) {
			return apperrors.NewValidationError("Invalid category", string(c))
		}
		if seen[c] {
			return apperrors.NewValidationError("Duplicate category", string(c))
		}
		seen[c] = true
	}
	if !models.ValidDistrict(district) {
		return apperrors.NewValidationError("Invalid district", district)
	}
	return nil
}
