// Package timeouts centralizes the context timeouts used around store
// operations in HTTP handlers.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and writes
//   - Medium: list queries and multi-step reads (reload + aggregate)
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for simple single-document operations.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and reload-and-recompute
// reads.
func Medium() time.Duration { return medium }
