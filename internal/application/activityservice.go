// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/ghactivity/internal/domain/model"
	"github.com/ericfisherdev/ghactivity/internal/domain/port/driven"
)

// ErrMissingUsername is returned when a query has no username.
var ErrMissingUsername = errors.New("username is required")

// Outcome classifies a successful activity run.
type Outcome int

const (
	// OutcomeRendered means at least one event was rendered.
	OutcomeRendered Outcome = iota
	// OutcomeNoActivity means the feed itself was empty.
	OutcomeNoActivity
	// OutcomeNoMatches means the feed had events but none matched the filter.
	OutcomeNoMatches
)

// ActivityQuery describes one fetch-and-render run. It is built from the
// parsed command line and configuration and passed in explicitly.
type ActivityQuery struct {
	Username string
	Type     model.EventType // Empty means no filter.
	Pages    int
}

// ActivityReport is the result of a successful run.
type ActivityReport struct {
	Outcome    Outcome
	Entries    []string // Rendered events in feed order.
	Fetched    int
	Incomplete int // Rendered events that had missing fields.
}

// ActivityService runs the fetch, filter and format pipeline.
type ActivityService struct {
	source driven.EventSource
	logger *slog.Logger
}

// NewActivityService creates an ActivityService reading from source.
func NewActivityService(source driven.EventSource, logger *slog.Logger) *ActivityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityService{source: source, logger: logger}
}

// Run fetches the user's events, applies the type filter and renders what
// remains in the order the API returned it. A fetch failure aborts the run;
// an incomplete event is rendered with placeholders and logged.
func (s *ActivityService) Run(ctx context.Context, q ActivityQuery) (*ActivityReport, error) {
	if q.Username == "" {
		return nil, ErrMissingUsername
	}
	if q.Type != "" {
		if _, err := model.ParseEventType(string(q.Type)); err != nil {
			return nil, err
		}
	}

	events, err := s.source.FetchUserEvents(ctx, q.Username, q.Pages)
	if err != nil {
		return nil, fmt.Errorf("fetching events for %s: %w", q.Username, err)
	}

	s.logger.Info("events fetched", "username", q.Username, "count", len(events))

	report := &ActivityReport{Fetched: len(events)}
	if len(events) == 0 {
		report.Outcome = OutcomeNoActivity
		return report, nil
	}

	for _, e := range FilterByType(events, q.Type) {
		if e.IsIncomplete() {
			report.Incomplete++
			s.logger.Warn("event has missing fields, rendering placeholders",
				"event_id", e.ID,
				"type", e.Type,
				"missing", e.Missing,
			)
		}
		report.Entries = append(report.Entries, Format(e))
	}

	if len(report.Entries) == 0 {
		report.Outcome = OutcomeNoMatches
		return report, nil
	}

	report.Outcome = OutcomeRendered
	return report, nil
}

// FilterByType keeps the events whose Type equals t, preserving order.
// An empty t keeps everything.
func FilterByType(events []model.Event, t model.EventType) []model.Event {
	if t == "" {
		return events
	}

	filtered := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.Type == t {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
