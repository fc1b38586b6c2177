package github

import (
	"encoding/json"
	"slices"
	"time"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/ghactivity/internal/domain/model"
)

// missingFields collects the JSON paths of required fields the API omitted or
// sent in a form that does not decode.
type missingFields []string

func (m *missingFields) check(present bool, path string) {
	if !present && !slices.Contains(*m, path) {
		*m = append(*m, path)
	}
}

// decodeEvent unmarshals one element of the events array. When the element as
// a whole does not decode, each common field is decoded on its own and a
// field that fails is left nil, so mapEvent reports it as missing instead of
// the page failing.
func decodeEvent(raw json.RawMessage) *gh.Event {
	var e gh.Event
	if err := json.Unmarshal(raw, &e); err == nil {
		return &e
	}

	e = gh.Event{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return &e
	}

	decodeField(fields, "id", &e.ID)
	decodeField(fields, "type", &e.Type)
	decodeField(fields, "repo", &e.Repo)
	decodeField(fields, "actor", &e.Actor)
	decodeField(fields, "created_at", &e.CreatedAt)
	decodeField(fields, "payload", &e.RawPayload)

	return &e
}

// decodeField decodes fields[key] into *dst, resetting *dst to nil on failure.
func decodeField[T any](fields map[string]json.RawMessage, key string, dst **T) {
	v, ok := fields[key]
	if !ok {
		return
	}
	if err := json.Unmarshal(v, dst); err != nil {
		*dst = nil
	}
}

// mapEvent converts a go-github Event to a domain model Event. It never fails:
// absent fields are left zero and their paths recorded in Missing.
func mapEvent(e *gh.Event) model.Event {
	var missing missingFields

	missing.check(e.Type != nil, model.FieldType)
	missing.check(e.Repo != nil && e.Repo.Name != nil, model.FieldRepoName)
	missing.check(e.CreatedAt != nil, model.FieldCreatedAt)

	var createdAt time.Time
	if e.CreatedAt != nil {
		createdAt = e.GetCreatedAt().UTC()
	}

	var raw json.RawMessage
	if e.RawPayload != nil {
		raw = *e.RawPayload
	}

	eventType := model.EventType(e.GetType())

	return model.Event{
		ID:        e.GetID(),
		Type:      eventType,
		Repo:      e.GetRepo().GetName(),
		Actor:     e.GetActor().GetLogin(),
		CreatedAt: createdAt,
		Payload:   mapPayload(eventType, raw, &missing),
		Missing:   missing,
	}
}

// mapPayload decodes raw into the go-github payload type for eventType and
// converts it to the matching domain variant.
func mapPayload(eventType model.EventType, raw json.RawMessage, missing *missingFields) model.Payload {
	switch eventType {
	case model.EventTypePush:
		p := decodePayload[gh.PushEvent](raw, missing)
		return mapPush(&p, missing)
	case model.EventTypeCreate:
		p := decodePayload[gh.CreateEvent](raw, missing)
		missing.check(p.RefType != nil, "payload.ref_type")
		return model.CreatePayload{RefType: p.GetRefType(), Ref: p.GetRef()}
	case model.EventTypeIssues:
		p := decodePayload[gh.IssuesEvent](raw, missing)
		missing.check(p.Action != nil, "payload.action")
		return model.IssuesPayload{Action: p.GetAction(), Issue: mapIssue(p.Issue, missing)}
	case model.EventTypePullRequest:
		p := decodePayload[gh.PullRequestEvent](raw, missing)
		missing.check(p.Action != nil, "payload.action")
		return model.PullRequestPayload{Action: p.GetAction(), PullRequest: mapPullRequest(p.PullRequest, missing)}
	case model.EventTypeWatch:
		return model.WatchPayload{}
	case model.EventTypeFork:
		p := decodePayload[gh.ForkEvent](raw, missing)
		missing.check(p.Forkee != nil && p.Forkee.FullName != nil, "payload.forkee.full_name")
		return model.ForkPayload{ForkFullName: p.GetForkee().GetFullName()}
	case model.EventTypeIssueComment:
		p := decodePayload[gh.IssueCommentEvent](raw, missing)
		missing.check(p.Issue != nil && p.Issue.Number != nil, "payload.issue.number")
		missing.check(p.Comment != nil && p.Comment.Body != nil, "payload.comment.body")
		return model.IssueCommentPayload{
			IssueNumber: p.GetIssue().GetNumber(),
			CommentBody: p.GetComment().GetBody(),
		}
	case model.EventTypeRelease:
		p := decodePayload[gh.ReleaseEvent](raw, missing)
		return model.ReleasePayload{Release: mapRelease(p.Release, missing)}
	default:
		return model.UnknownPayload{}
	}
}

// decodePayload unmarshals raw into a T. A type mismatch leaves the offending
// pointer set to a zero value, so on any error the whole payload is recorded
// as missing and a zero T is returned.
func decodePayload[T any](raw json.RawMessage, missing *missingFields) T {
	var p T
	if err := decodeInto(raw, &p); err != nil {
		missing.check(false, model.FieldPayload)
		var zero T
		return zero
	}
	return p
}

// decodeInto unmarshals raw into dst. Absent input leaves dst zero and is not
// an error; the required-field checks then report what is missing.
func decodeInto(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// mapPush converts a push payload. An absent commits list means zero commits.
func mapPush(p *gh.PushEvent, missing *missingFields) model.PushPayload {
	missing.check(p.Ref != nil, "payload.ref")

	commits := make([]model.Commit, 0, len(p.Commits))
	for i, c := range p.Commits {
		if c == nil {
			c = &gh.HeadCommit{}
		}
		missing.check(c.Message != nil, model.CommitFieldPath(i, "message"))
		missing.check(c.Author != nil && c.Author.Name != nil, model.CommitFieldPath(i, "author.name"))
		commits = append(commits, model.Commit{
			Message:    c.GetMessage(),
			AuthorName: c.GetAuthor().GetName(),
		})
	}

	return model.PushPayload{Ref: p.GetRef(), Commits: commits}
}

func mapIssue(i *gh.Issue, missing *missingFields) model.Issue {
	if i == nil {
		i = &gh.Issue{}
	}

	missing.check(i.Number != nil, "payload.issue.number")
	missing.check(i.Title != nil, "payload.issue.title")
	missing.check(i.HTMLURL != nil, "payload.issue.html_url")

	return model.Issue{
		Number: i.GetNumber(),
		Title:  i.GetTitle(),
		URL:    i.GetHTMLURL(),
	}
}

func mapPullRequest(pr *gh.PullRequest, missing *missingFields) model.PullRequest {
	if pr == nil {
		pr = &gh.PullRequest{}
	}

	missing.check(pr.Number != nil, "payload.pull_request.number")
	missing.check(pr.Title != nil, "payload.pull_request.title")
	missing.check(pr.Additions != nil, "payload.pull_request.additions")
	missing.check(pr.Deletions != nil, "payload.pull_request.deletions")
	missing.check(pr.HTMLURL != nil, "payload.pull_request.html_url")

	return model.PullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Additions: pr.GetAdditions(),
		Deletions: pr.GetDeletions(),
		URL:       pr.GetHTMLURL(),
	}
}

func mapRelease(r *gh.RepositoryRelease, missing *missingFields) model.Release {
	if r == nil {
		r = &gh.RepositoryRelease{}
	}

	missing.check(r.TagName != nil, "payload.release.tag_name")
	missing.check(r.Name != nil, "payload.release.name")
	missing.check(r.HTMLURL != nil, "payload.release.html_url")

	return model.Release{
		TagName: r.GetTagName(),
		Name:    r.GetName(),
		URL:     r.GetHTMLURL(),
	}
}
