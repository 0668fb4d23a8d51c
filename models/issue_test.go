package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validIssue() *Issue {
	return &Issue{
		Title:       "Burst pipe on main road",
		Description: "Water flooding the intersection since morning",
		Category:    CategoryWater,
		District:    "Kathmandu",
		TargetGroup: TargetAuthority,
	}
}

func TestIssueValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Issue)
		wantErr bool
	}{
		{"valid issue", func(i *Issue) {}, false},
		{"empty title", func(i *Issue) { i.Title = "" }, true},
		{"whitespace title", func(i *Issue) { i.Title = "   " }, true},
		{"empty description", func(i *Issue) { i.Description = "" }, true},
		{"unknown category", func(i *Issue) { i.Category = "potholes" }, true},
		{"unknown target group", func(i *Issue) { i.TargetGroup = "everyone" }, true},
		{"unknown district", func(i *Issue) { i.District = "Atlantis" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := validIssue()
			tt.mutate(issue)
			err := issue.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnums(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("noise"))

	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusInProgress))
	assert.True(t, ValidStatus(StatusCompleted))
	assert.False(t, ValidStatus("resolved"))

	assert.True(t, ValidTargetGroup(TargetBoth))
	assert.False(t, ValidTargetGroup(""))
}

func TestAreaConfigured(t *testing.T) {
	assert.False(t, Area{}.Configured())
	assert.False(t, Area{District: "Kathmandu"}.Configured())
	assert.False(t, Area{Categories: []IssueCategory{CategoryWater}}.Configured())
	assert.True(t, Area{
		Categories: []IssueCategory{CategoryWater},
		District:   "Kathmandu",
	}.Configured())
}
