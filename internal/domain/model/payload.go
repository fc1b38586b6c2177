package model

// Payload is the type-specific part of an Event. The set of implementations is
// closed: one variant per known event type plus UnknownPayload.
type Payload interface {
	payloadType() EventType
}

// Commit is a single commit carried by a push.
type Commit struct {
	Message    string // May span several lines.
	AuthorName string
}

// Issue is the issue referenced by an issues or issue comment event.
type Issue struct {
	Number int
	Title  string
	URL    string
}

// PullRequest is the pull request referenced by a pull request event.
type PullRequest struct {
	Number    int
	Title     string
	Additions int
	Deletions int
	URL       string
}

// Release is the release referenced by a release event.
type Release struct {
	TagName string
	Name    string
	URL     string
}

// PushPayload is the payload of a PushEvent.
type PushPayload struct {
	Ref     string // Full ref, e.g. "refs/heads/main".
	Commits []Commit
}

// CreatePayload is the payload of a CreateEvent (branch, tag or repository).
type CreatePayload struct {
	RefType string
	Ref     string // Empty when a repository is created.
}

// IssuesPayload is the payload of an IssuesEvent.
type IssuesPayload struct {
	Action string
	Issue  Issue
}

// PullRequestPayload is the payload of a PullRequestEvent.
type PullRequestPayload struct {
	Action      string
	PullRequest PullRequest
}

// WatchPayload is the payload of a WatchEvent. Nothing in it is rendered.
type WatchPayload struct{}

// ForkPayload is the payload of a ForkEvent.
type ForkPayload struct {
	ForkFullName string
}

// IssueCommentPayload is the payload of an IssueCommentEvent.
type IssueCommentPayload struct {
	IssueNumber int
	CommentBody string
}

// ReleasePayload is the payload of a ReleaseEvent.
type ReleasePayload struct {
	Release Release
}

// UnknownPayload stands in for any event type without a dedicated rule.
type UnknownPayload struct{}

func (PushPayload) payloadType() EventType         { return EventTypePush }
func (CreatePayload) payloadType() EventType       { return EventTypeCreate }
func (IssuesPayload) payloadType() EventType       { return EventTypeIssues }
func (PullRequestPayload) payloadType() EventType  { return EventTypePullRequest }
func (WatchPayload) payloadType() EventType        { return EventTypeWatch }
func (ForkPayload) payloadType() EventType         { return EventTypeFork }
func (IssueCommentPayload) payloadType() EventType { return EventTypeIssueComment }
func (ReleasePayload) payloadType() EventType      { return EventTypeRelease }
func (UnknownPayload) payloadType() EventType      { return "" }
