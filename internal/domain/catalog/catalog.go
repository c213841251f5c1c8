// internal/domain/catalog/catalog.go

// Package catalog holds the static task catalog: the recognized tasks
// and their point values. The list is reference data agreed with the
// team; changing a value here does not rewrite history, because entries
// store only the task ID and points are resolved at aggregation time.
package catalog

import "github.com/quangoinc/qscore/internal/domain/models"

var tasks = []models.Task{
	{ID: "1", Name: "Found a new lead", Points: 1},
	{ID: "2", Name: "Made a new post", Points: 11},
	{ID: "3", Name: "Sent media used in a post", Points: 10},
	{ID: "4", Name: "Wrote caption used in a post", Points: 5},
	{ID: "5", Name: "Gave someone a business card", Points: 3},
	{ID: "6", Name: "Made a site mockup", Points: 10},
	{ID: "7", Name: "Published a site", Points: 35},
}

// Tasks returns the catalog in display order. The returned slice is a
// copy; callers may reorder it freely.
func Tasks() []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}

// Lookup returns the task with the given ID, or ok=false for unknown IDs
// (including the "custom" sentinel, which has no catalog row).
func Lookup(id string) (models.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}
