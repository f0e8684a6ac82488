// Copyright 2025-2026 Contentloop

// Command strapi-content-source runs the Strapi content-source adapter: it
// syncs the CMS schema and documents into the in-memory cache and serves the
// admin refresh API until interrupted.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mau.fi/util/exerrors"
	"gopkg.in/yaml.v3"

	"github.com/contentloop/strapi-content-source/pkg/connector"
)

// These are filled at build time with -ldflags.
var (
	Tag       = "unknown"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	debug := flag.Bool("debug", false, "enable debug and trace logging")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
	if !*debug {
		log = log.Level(zerolog.InfoLevel)
	}

	var cfg connector.Config
	raw := exerrors.Must(os.ReadFile(*configPath))
	exerrors.PanicIfNotNil(yaml.Unmarshal(raw, &cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc := connector.NewConnector(cfg, log)
	if err := sc.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start connector")
	}
	log.Info().
		Str("version", Tag).
		Str("commit", Commit).
		Str("built_at", BuildTime).
		Msg("Content source running")

	<-ctx.Done()
	log.Info().Msg("Shutting down")
}
