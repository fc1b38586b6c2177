package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/ericfisherdev/ghactivity/internal/adapter/driven/github"
	"github.com/ericfisherdev/ghactivity/internal/adapter/driving/cli"
	"github.com/ericfisherdev/ghactivity/internal/config"
	"github.com/ericfisherdev/ghactivity/internal/domain/port/driven"
)

func main() {
	// The command has already reported err; only the exit code is left.
	if err := run(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}

func run() error {
	// Cancel an in-flight fetch on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCommand(newEventSource).ExecuteContext(ctx)
}

// newEventSource wires the go-github adapter from the loaded configuration.
func newEventSource(cfg *config.Config, logger *slog.Logger) (driven.EventSource, error) {
	client, err := githubadapter.NewClient(cfg.APIURL, cfg.UserAgent, cfg.WaitOnRateLimit, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("github client created",
		"api_url", cfg.APIURL,
		"user_agent", cfg.UserAgent,
		"wait_on_rate_limit", cfg.WaitOnRateLimit,
	)
	return client, nil
}
