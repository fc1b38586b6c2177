package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/ghactivity/internal/config"
	"github.com/ericfisherdev/ghactivity/internal/domain/model"
	"github.com/ericfisherdev/ghactivity/internal/domain/port/driven"
)

// fakeSource is a canned EventSource that records how it was called.
type fakeSource struct {
	events   []model.Event
	err      error
	username string
	pages    int
}

func (f *fakeSource) FetchUserEvents(_ context.Context, username string, pages int) ([]model.Event, error) {
	f.username = username
	f.pages = pages
	return f.events, f.err
}

// runResult captures one command invocation.
type runResult struct {
	stdout    string
	stderr    string
	exitCode  int
	factories int
	cfg       *config.Config
}

func runCommand(t *testing.T, src *fakeSource, args ...string) runResult {
	t.Helper()
	for _, key := range []string{
		"GHACTIVITY_API_URL", "GHACTIVITY_USER_AGENT", "GHACTIVITY_PAGES",
		"GHACTIVITY_WAIT_ON_RATE_LIMIT", "GHACTIVITY_LOG_LEVEL", "GHACTIVITY_NO_COLOR",
	} {
		t.Setenv(key, "")
	}

	var res runResult
	factory := func(cfg *config.Config, _ *slog.Logger) (driven.EventSource, error) {
		res.factories++
		res.cfg = cfg
		return src, nil
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(factory)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	res.stdout = stdout.String()
	res.stderr = stderr.String()
	res.exitCode = ExitCode(err)
	return res
}

var separator = strings.Repeat("-", 60)

func watchEvent() model.Event {
	return model.Event{
		ID:        "1",
		Type:      model.EventTypeWatch,
		Repo:      "octocat/hello-world",
		CreatedAt: time.Date(2026, 3, 1, 12, 34, 56, 0, time.UTC),
		Payload:   model.WatchPayload{},
	}
}

func TestRootCommand_RendersEvents(t *testing.T) {
	src := &fakeSource{events: []model.Event{watchEvent()}}

	res := runCommand(t, src, "octocat")

	assert.Equal(t, ExitOK, res.exitCode)
	assert.Equal(t,
		"Fetching recent GitHub activity for user: octocat\n"+
			separator+"\n"+
			"- [2026-03-01 12:34:56] Starred octocat/hello-world\n\n",
		res.stdout)
	assert.Equal(t, "octocat", src.username)
	assert.Equal(t, 1, src.pages)
}

func TestRootCommand_FilterWithoutMatches(t *testing.T) {
	push := watchEvent()
	push.Type = model.EventTypePush
	push.Payload = model.PushPayload{Ref: "refs/heads/main"}
	src := &fakeSource{events: []model.Event{push}}

	res := runCommand(t, src, "octocat", "--type", "WatchEvent")

	assert.Equal(t, ExitOK, res.exitCode)
	assert.Equal(t,
		"Fetching recent GitHub activity for user: octocat\n"+
			"Filtering for event type: WatchEvent\n"+
			separator+"\n"+
			"No events found matching type: WatchEvent\n",
		res.stdout)
}

func TestRootCommand_EmptyFeed(t *testing.T) {
	res := runCommand(t, &fakeSource{events: []model.Event{}}, "quiet")

	assert.Equal(t, ExitOK, res.exitCode)
	assert.True(t, strings.HasSuffix(res.stdout, "No recent activity found.\n"), res.stdout)
}

func TestRootCommand_UserNotFound(t *testing.T) {
	src := &fakeSource{err: &model.UserNotFoundError{Username: "doesnotexist123456"}}

	res := runCommand(t, src, "doesnotexist123456")

	assert.Equal(t, ExitFailure, res.exitCode)
	assert.Contains(t, res.stdout, `Error: user "doesnotexist123456" not found`)
	assert.NotContains(t, res.stdout, "Usage:")
	assert.Empty(t, res.stderr)
}

func TestRootCommand_FetchFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "http error",
			err:  &model.HTTPError{StatusCode: 500, Reason: "Internal Server Error"},
			want: "Error: HTTP 500 - Internal Server Error\n",
		},
		{
			name: "connection error",
			err:  &model.ConnectionError{Err: errors.New("connection refused")},
			want: "Error: failed to connect to GitHub API - connection refused\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := runCommand(t, &fakeSource{err: tc.err}, "octocat")

			assert.Equal(t, ExitFailure, res.exitCode)
			assert.True(t, strings.HasSuffix(res.stdout, tc.want), res.stdout)
		})
	}
}

func TestRootCommand_ListTypes(t *testing.T) {
	res := runCommand(t, &fakeSource{}, "--list-types")

	assert.Equal(t, ExitOK, res.exitCode)
	assert.Zero(t, res.factories, "listing types must not build a source")
	assert.Equal(t,
		"Supported event types:\n"+
			"  - PushEvent\n"+
			"  - CreateEvent\n"+
			"  - IssuesEvent\n"+
			"  - PullRequestEvent\n"+
			"  - WatchEvent\n"+
			"  - ForkEvent\n"+
			"  - IssueCommentEvent\n"+
			"  - ReleaseEvent\n",
		res.stdout)
}

func TestRootCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing username", args: nil, want: "requires a username argument"},
		{name: "unknown type", args: []string{"octocat", "--type", "MemberEvent"}, want: "invalid event type"},
		{name: "too many arguments", args: []string{"a", "b"}, want: "accepts at most 1 arg"},
		{name: "unknown flag", args: []string{"octocat", "--bogus"}, want: "unknown flag"},
		{name: "pages out of range", args: []string{"octocat", "--pages", "11"}, want: "must be between 1 and 10"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := runCommand(t, &fakeSource{}, tc.args...)

			assert.Equal(t, ExitUsage, res.exitCode)
			assert.Zero(t, res.factories, "no fetch on usage errors")
			assert.Contains(t, res.stderr, tc.want)
		})
	}
}

func TestRootCommand_PassesConfig(t *testing.T) {
	src := &fakeSource{events: []model.Event{}}

	res := runCommand(t, src, "octocat", "--pages", "4", "--api-url", "http://localhost:9999/")

	assert.Equal(t, ExitOK, res.exitCode)
	require.NotNil(t, res.cfg)
	assert.Equal(t, "http://localhost:9999/", res.cfg.APIURL)
	assert.Equal(t, 4, res.cfg.Pages)
	assert.Equal(t, 4, src.pages)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitUsage, ExitCode(errors.New("bad flag")))
	assert.Equal(t, ExitFailure, ExitCode(&exitError{code: ExitFailure, err: errors.New("boom")}))
}
