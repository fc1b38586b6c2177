package model

import (
	"fmt"
	"strings"
)

// EventType is the GitHub event type tag carried in an event's "type" field.
type EventType string

const (
	EventTypePush         EventType = "PushEvent"
	EventTypeCreate       EventType = "CreateEvent"
	EventTypeIssues       EventType = "IssuesEvent"
	EventTypePullRequest  EventType = "PullRequestEvent"
	EventTypeWatch        EventType = "WatchEvent"
	EventTypeFork         EventType = "ForkEvent"
	EventTypeIssueComment EventType = "IssueCommentEvent"
	EventTypeRelease      EventType = "ReleaseEvent"
)

// KnownEventTypes returns the event types that have a dedicated rendering
// rule, in display order. Only these are accepted as a filter.
func KnownEventTypes() []EventType {
	return []EventType{
		EventTypePush,
		EventTypeCreate,
		EventTypeIssues,
		EventTypePullRequest,
		EventTypeWatch,
		EventTypeFork,
		EventTypeIssueComment,
		EventTypeRelease,
	}
}

// IsKnown reports whether t is one of KnownEventTypes.
func (t EventType) IsKnown() bool {
	for _, known := range KnownEventTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// ParseEventType validates s against the known tag set. Matching is exact.
func ParseEventType(s string) (EventType, error) {
	t := EventType(s)
	if !t.IsKnown() {
		names := make([]string, 0, len(KnownEventTypes()))
		for _, known := range KnownEventTypes() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("invalid event type %q: choose from %s", s, strings.Join(names, ", "))
	}
	return t, nil
}
