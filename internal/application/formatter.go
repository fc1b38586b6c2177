package application

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ericfisherdev/ghactivity/internal/domain/model"
)

const (
	// MissingPlaceholder replaces any value the source event did not supply.
	MissingPlaceholder = "<missing>"

	// CommentPreviewLength is the number of characters of a comment body shown.
	CommentPreviewLength = 100

	timestampLayout = "2006-01-02 15:04:05"
	detailIndent    = "\n      "
	commitIndent    = "\n     - "
)

// Format renders one event as display text. It is pure: the same event always
// yields the same string. Fields listed in e.Missing render as
// MissingPlaceholder instead of aborting.
func Format(e model.Event) string {
	f := fields{e}
	prefix := "- [" + f.timestamp() + "] "
	repo := f.str(model.FieldRepoName, e.Repo)

	switch p := e.Payload.(type) {
	case model.PushPayload:
		var b strings.Builder
		fmt.Fprintf(&b, "%sPushed %s commits to %s on branch '%s'",
			prefix, f.num("payload.commits", len(p.Commits)), repo, f.str("payload.ref", branchName(p.Ref)))
		for i, c := range p.Commits {
			b.WriteString(commitIndent)
			b.WriteString(f.str(model.CommitFieldPath(i, "author.name"), c.AuthorName))
			b.WriteString(": ")
			b.WriteString(f.str(model.CommitFieldPath(i, "message"), firstLine(c.Message)))
		}
		return b.String()

	case model.CreatePayload:
		named := ""
		if p.Ref != "" {
			named = " named '" + p.Ref + "'"
		}
		return fmt.Sprintf("%sCreated %s%s in %s", prefix, f.str("payload.ref_type", p.RefType), named, repo)

	case model.IssuesPayload:
		return prefix + fmt.Sprintf("%s issue #%s in %s", f.str("payload.action", capitalize(p.Action)),
			f.num("payload.issue.number", p.Issue.Number), repo) +
			detailIndent + "Title: " + f.str("payload.issue.title", p.Issue.Title) +
			detailIndent + "URL: " + f.str("payload.issue.html_url", p.Issue.URL)

	case model.PullRequestPayload:
		pr := p.PullRequest
		return prefix + fmt.Sprintf("%s pull request #%s in %s", f.str("payload.action", capitalize(p.Action)),
			f.num("payload.pull_request.number", pr.Number), repo) +
			detailIndent + "Title: " + f.str("payload.pull_request.title", pr.Title) +
			detailIndent + "Changes: +" + f.num("payload.pull_request.additions", pr.Additions) +
			", -" + f.num("payload.pull_request.deletions", pr.Deletions) +
			detailIndent + "URL: " + f.str("payload.pull_request.html_url", pr.URL)

	case model.WatchPayload:
		return prefix + "Starred " + repo

	case model.ForkPayload:
		return prefix + "Forked " + repo +
			detailIndent + "Fork: " + f.str("payload.forkee.full_name", p.ForkFullName)

	case model.IssueCommentPayload:
		return prefix + "Commented on issue #" + f.num("payload.issue.number", p.IssueNumber) + " in " + repo +
			detailIndent + "Comment preview: " + f.str("payload.comment.body", CommentPreview(p.CommentBody))

	case model.ReleasePayload:
		r := p.Release
		return prefix + "Published release " + f.str("payload.release.tag_name", r.TagName) + " in " + repo +
			detailIndent + "Title: " + f.str("payload.release.name", r.Name) +
			detailIndent + "URL: " + f.str("payload.release.html_url", r.URL)

	default:
		return prefix + f.str(model.FieldType, string(e.Type)) + " on " + repo
	}
}

// CommentPreview truncates body to CommentPreviewLength characters, appending
// "..." only when something was cut.
func CommentPreview(body string) string {
	if utf8.RuneCountInString(body) <= CommentPreviewLength {
		return body
	}
	runes := []rune(body)
	return string(runes[:CommentPreviewLength]) + "..."
}

// fields resolves display values, substituting the placeholder for absent ones.
type fields struct {
	event model.Event
}

func (f fields) str(path, value string) string {
	if f.event.IsMissing(path) {
		return MissingPlaceholder
	}
	return value
}

func (f fields) num(path string, value int) string {
	return f.str(path, strconv.Itoa(value))
}

func (f fields) timestamp() string {
	return f.str(model.FieldCreatedAt, f.event.CreatedAt.UTC().Format(timestampLayout))
}

// branchName returns the last "/"-separated segment of a ref.
func branchName(ref string) string {
	return ref[strings.LastIndex(ref, "/")+1:]
}

// firstLine returns text up to the first newline.
func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// capitalize upper-cases the first character and lower-cases the rest,
// so "opened" and "OPENED" both become "Opened".
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
