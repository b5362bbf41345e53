package task

import (
	"time"

	"github.com/google/uuid"

	"github.com/ordino/ordino/internal/ids"
)

// GenerateID creates a unique 8-character alphanumeric task ID from a title
// and timestamp. The ID is derived from a SHA-256 hash of the title
// concatenated with the timestamp.
func GenerateID(title string, timestamp time.Time) string {
	return ids.GenerateWithTimestamp(title, timestamp, ids.DefaultLength)
}

// GenerateEdgeID creates a unique identifier for a dependency edge record.
func GenerateEdgeID() string {
	return uuid.NewString()
}
