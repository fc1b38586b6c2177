// Package cli is the command-line driving adapter: it parses arguments,
// loads configuration and prints the activity report.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/ghactivity/internal/application"
	"github.com/ericfisherdev/ghactivity/internal/config"
	"github.com/ericfisherdev/ghactivity/internal/domain/model"
	"github.com/ericfisherdev/ghactivity/internal/domain/port/driven"
)

// SourceFactory builds the event source once configuration is known.
type SourceFactory func(cfg *config.Config, logger *slog.Logger) (driven.EventSource, error)

// NewRootCommand builds the ghactivity command. newSource is only called when
// a fetch is actually needed, so --list-types never touches the network.
func NewRootCommand(newSource SourceFactory) *cobra.Command {
	v := config.New()

	var (
		typeFlag  string
		listTypes bool
	)

	cmd := &cobra.Command{
		Use:   "ghactivity <username>",
		Short: "Show a GitHub user's recent public activity",
		Long: `ghactivity fetches the public event feed of a GitHub user and prints it
as readable text, newest first. Use --type to show a single event type.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if listTypes {
				newPrinter(out, false).eventTypes(model.KnownEventTypes())
				return nil
			}

			if len(args) == 0 || args[0] == "" {
				return fmt.Errorf("requires a username argument")
			}
			username := args[0]

			var filter model.EventType
			if typeFlag != "" {
				t, err := model.ParseEventType(typeFlag)
				if err != nil {
					return err
				}
				filter = t
			}

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			// Arguments are valid from here on; failures are reported by us.
			cmd.SilenceUsage = true

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
			p := newPrinter(out, useColor(out, cfg.NoColor))

			p.header(username, filter)

			source, err := newSource(cfg, logger)
			if err != nil {
				return fail(cmd, p, err)
			}

			svc := application.NewActivityService(source, logger)
			report, err := svc.Run(cmd.Context(), application.ActivityQuery{
				Username: username,
				Type:     filter,
				Pages:    cfg.Pages,
			})
			if err != nil {
				return fail(cmd, p, err)
			}

			switch report.Outcome {
			case application.OutcomeNoActivity:
				p.noActivity()
			case application.OutcomeNoMatches:
				p.noMatches(filter)
			default:
				for _, entry := range report.Entries {
					p.entry(entry)
				}
			}

			logger.Debug("activity rendered",
				"username", username,
				"fetched", report.Fetched,
				"rendered", len(report.Entries),
				"incomplete", report.Incomplete,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "only show events of this type (see --list-types)")
	cmd.Flags().BoolVar(&listTypes, "list-types", false, "list supported event types and exit")
	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(model.KnownEventTypes()))
		for _, t := range model.KnownEventTypes() {
			names = append(names, string(t))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	if err := config.RegisterFlags(v, cmd.Flags()); err != nil {
		panic(err)
	}

	return cmd
}

// fail prints the failure reason on the report stream and returns an error
// carrying ExitFailure without letting cobra print it a second time.
func fail(cmd *cobra.Command, p *printer, err error) error {
	p.failed(err)
	cmd.SilenceErrors = true
	return &exitError{code: ExitFailure, err: err}
}
