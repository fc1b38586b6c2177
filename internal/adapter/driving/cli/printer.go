package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/ericfisherdev/ghactivity/internal/domain/model"
)

const separatorWidth = 60

// printer writes the human-readable report. Colors only decorate the framing
// lines; rendered events are written verbatim.
type printer struct {
	w       io.Writer
	heading *color.Color
	faint   *color.Color
	notice  *color.Color
	failure *color.Color
}

func newPrinter(w io.Writer, colored bool) *printer {
	p := &printer{
		w:       w,
		heading: color.New(color.FgCyan),
		faint:   color.New(color.Faint),
		notice:  color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.heading, p.faint, p.notice, p.failure} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// useColor reports whether output to w should be colored. fatih/color already
// turns itself off for NO_COLOR and non-terminal stdout.
func useColor(w io.Writer, noColor bool) bool {
	f, ok := w.(*os.File)
	return !noColor && !color.NoColor && ok && f == os.Stdout
}

func (p *printer) header(username string, filter model.EventType) {
	p.heading.Fprintf(p.w, "Fetching recent GitHub activity for user: %s\n", username)
	if filter != "" {
		p.heading.Fprintf(p.w, "Filtering for event type: %s\n", filter)
	}
	p.faint.Fprintln(p.w, strings.Repeat("-", separatorWidth))
}

func (p *printer) entry(text string) {
	fmt.Fprintf(p.w, "%s\n\n", text)
}

func (p *printer) noActivity() {
	p.notice.Fprintln(p.w, "No recent activity found.")
}

func (p *printer) noMatches(filter model.EventType) {
	p.notice.Fprintf(p.w, "No events found matching type: %s\n", filter)
}

func (p *printer) failed(err error) {
	p.failure.Fprintf(p.w, "Error: %s\n", failureReason(err))
}

func (p *printer) eventTypes(types []model.EventType) {
	fmt.Fprintln(p.w, "Supported event types:")
	for _, t := range types {
		fmt.Fprintf(p.w, "  - %s\n", t)
	}
}

// failureReason strips wrapping context down to the domain error the user
// should see.
func failureReason(err error) string {
	var notFound *model.UserNotFoundError
	if errors.As(err, &notFound) {
		return notFound.Error()
	}
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}
	var connErr *model.ConnectionError
	if errors.As(err, &connErr) {
		return connErr.Error()
	}
	return err.Error()
}
