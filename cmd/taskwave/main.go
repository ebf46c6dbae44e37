// Package main is the entry point for the taskwave CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskwave/internal/backend/restapi"
	"taskwave/internal/cli"
	"taskwave/internal/commands"
	"taskwave/internal/config"
	"taskwave/internal/service"
	"taskwave/internal/session"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config, sess *session.Manager) (service.Service, error) {
		client, err := restapi.New(cfg.APIURL, sess, restapi.WithTimeout(cfg.Timeout))
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
