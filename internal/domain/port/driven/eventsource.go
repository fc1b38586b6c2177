package driven

import (
	"context"

	"github.com/ericfisherdev/ghactivity/internal/domain/model"
)

// EventSource defines the driven port for reading a user's public event feed.
type EventSource interface {
	// FetchUserEvents returns up to pages pages of the user's events in the
	// order the API supplies them (newest first). Failures are reported as
	// *model.UserNotFoundError, *model.HTTPError or *model.ConnectionError.
	FetchUserEvents(ctx context.Context, username string, pages int) ([]model.Event, error)
}
