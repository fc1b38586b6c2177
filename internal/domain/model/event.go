package model

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// Field paths for the common event fields every event must carry.
const (
	FieldType      = "type"
	FieldRepoName  = "repo.name"
	FieldCreatedAt = "created_at"

	// FieldPayload marks a payload that could not be decoded at all. It
	// covers every "payload." path.
	FieldPayload = "payload"
)

// Event is one entry of a user's public GitHub event feed.
type Event struct {
	ID        string
	Type      EventType
	Repo      string // "owner/name"
	Actor     string
	CreatedAt time.Time // UTC, second precision as supplied by the API.
	Payload   Payload

	// Missing lists the JSON field paths (e.g. "payload.issue.title") that the
	// rendering rule for Type needs but the server did not supply.
	Missing []string
}

// IsMissing reports whether the field at path was absent from the source event,
// either by itself or because an enclosing path such as "payload" was.
func (e Event) IsMissing(path string) bool {
	return slices.ContainsFunc(e.Missing, func(m string) bool {
		return path == m || strings.HasPrefix(path, m+".")
	})
}

// IsIncomplete returns true if any required field was absent.
func (e Event) IsIncomplete() bool {
	return len(e.Missing) > 0
}

// CommitFieldPath returns the Missing path for a field of the i-th push commit,
// e.g. "payload.commits[1].author.name".
func CommitFieldPath(i int, field string) string {
	return "payload.commits[" + strconv.Itoa(i) + "]." + field
}
