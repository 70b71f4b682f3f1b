package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"git.tdpain.net/codemicro/articleBoard/board"
	"git.tdpain.net/codemicro/articleBoard/cmd/articleboardd/internal/config"
	"git.tdpain.net/codemicro/articleBoard/cmd/articleboardd/internal/http"
	"git.tdpain.net/codemicro/articleBoard/cmd/articleboardd/internal/metrics"
	"git.tdpain.net/codemicro/articleBoard/cmd/articleboardd/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		slog.Error("unhandled error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	conf, err := config.Get()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: conf.LogLevel})))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	opts := []board.Option{
		board.WithCategories(board.NewVocabulary(conf.Categories...)),
		board.WithTags(board.NewVocabulary(conf.Tags...)),
		board.WithRequiredFields(conf.RequiredFields...),
	}
	sessions := session.NewStore(func() *board.Board {
		return board.New(m.Hooks(), opts...)
	})
	m.ObserveSessions(reg, sessions.Len)

	slog.Debug("board configuration", "categories", conf.Categories, "tags", conf.Tags, "requiredFields", conf.RequiredFields)

	session.RunReaper(context.Background(), sessions, conf.SessionIdle)
	return http.Listen(conf, sessions, reg)
}
