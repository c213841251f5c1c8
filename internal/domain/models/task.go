// internal/domain/models/task.go
package models

// Task is one recognized point-earning activity. Tasks are static
// reference data (see internal/domain/catalog) and immutable at runtime.
type Task struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// CustomTaskID is the sentinel task ID for one-off tasks that are not in
// the catalog. Entries carrying it must supply CustomTaskName and
// CustomTaskPoints.
const CustomTaskID = "custom"
