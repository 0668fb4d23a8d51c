// Package stats computes the read-only dashboard numbers from a snapshot of
// issues that has already been scoped by routing. Everything here is
// re-derived per request; nothing is cached or stored.
package stats

import (
	"time"

	"samasya-be/lifecycle"
	"samasya-be/models"
)

// TrendDays is the size of the reported/resolved trend window.
const TrendDays = 7

// Summary is the dashboard statistics payload. Overdue overlaps with the
// pending and in-progress counts; it is not a fourth status.
type Summary struct {
	Total             int                          `json:"total"`
	Pending           int                          `json:"pending"`
	InProgress        int                          `json:"inProgress"`
	Completed         int                          `json:"completed"`
	Overdue           int                          `json:"overdue"`
	CategoryBreakdown map[models.IssueCategory]int `json:"categoryBreakdown"`
	Trend             []TrendPoint                 `json:"trend"`
}

// TrendPoint is one calendar day of the trend, oldest first.
type TrendPoint struct {
	Date     string `json:"date"`
	Reported int    `json:"reported"`
	Resolved int    `json:"resolved"`
}

// Compute derives the full dashboard summary from a snapshot of visible
// issues at the given instant. Deterministic for a fixed now.
func Compute(issues []models.Issue, now time.Time) Summary {
	s := Summary{
		Total:             len(issues),
		CategoryBreakdown: make(map[models.IssueCategory]int),
		Trend:             Trend(issues, now),
	}
	for i := range issues {
		issue := &issues[i]
		switch issue.Status {
		case models.StatusPending:
			s.Pending++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusCompleted:
			s.Completed++
		}
		if lifecycle.IsOverdue(issue.Status, issue.Deadline, now) {
			s.Overdue++
		}
		s.CategoryBreakdown[issue.Category]++
	}
	return s
}

// Trend buckets the last TrendDays calendar days, oldest to newest, counting
// issues created on each day and issues completed (by respondedAt) on each
// day. Always returns exactly TrendDays entries; suppressing an all-zero
// trend is the presentation layer's call.
func Trend(issues []models.Issue, now time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, TrendDays)
	for i := TrendDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1)

		point := TrendPoint{Date: start.Format("2006-01-02")}
		for j := range issues {
			issue := &issues[j]
			if withinDay(issue.CreatedAt, start, end) {
				point.Reported++
			}
			if issue.Status == models.StatusCompleted && issue.RespondedAt != nil &&
				withinDay(*issue.RespondedAt, start, end) {
				point.Resolved++
			}
		}
		points = append(points, point)
	}
	return points
}

func withinDay(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
