package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"git.tdpain.net/codemicro/articleBoard/board"
	"git.tdpain.net/codemicro/articleBoard/models"
	"go.akpain.net/cfger"
)

type Config struct {
	HTTPAddress    string
	SiteTitle      string
	Categories     []string
	Tags           []string
	RequiredFields []models.Field
	SessionIdle    time.Duration
	LogLevel       slog.Level
}

func Get() (*Config, error) {
	cl := cfger.New()

	var conf = &Config{
		HTTPAddress: cl.GetEnv("ARTICLEBOARD_HTTP_ADDR").WithDefault(":9233").AsString(),
		SiteTitle:   cl.GetEnv("ARTICLEBOARD_SITE_TITLE").WithDefault("Articles").AsString(),
		Categories:  splitList(cl.GetEnv("ARTICLEBOARD_CATEGORIES").WithDefault("HTML,CSS,Express.JS,React").AsString()),
	}

	// "none" turns the tag checkboxes off entirely
	if tags := cl.GetEnv("ARTICLEBOARD_TAGS").WithDefault("HTML,CSS,Express.Js,React").AsString(); tags != "none" {
		conf.Tags = splitList(tags)
	}

	// title and author are always required, the variable only adds to them
	conf.RequiredFields = slices.Clone(board.DefaultRequiredFields)
	for _, name := range splitList(cl.GetEnv("ARTICLEBOARD_REQUIRED_FIELDS").WithDefault("title,author").AsString()) {
		field, ok := models.ParseField(name)
		if !ok {
			return nil, fmt.Errorf("ARTICLEBOARD_REQUIRED_FIELDS: unknown field %q", name)
		}
		if !slices.Contains(conf.RequiredFields, field) {
			conf.RequiredFields = append(conf.RequiredFields, field)
		}
	}

	idle, err := time.ParseDuration(cl.GetEnv("ARTICLEBOARD_SESSION_IDLE").WithDefault("12h").AsString())
	if err != nil {
		return nil, fmt.Errorf("ARTICLEBOARD_SESSION_IDLE: %w", err)
	}
	if idle <= 0 {
		return nil, fmt.Errorf("ARTICLEBOARD_SESSION_IDLE: must be positive, got %s", idle)
	}
	conf.SessionIdle = idle

	if err := conf.LogLevel.UnmarshalText([]byte(cl.GetEnv("ARTICLEBOARD_LOG_LEVEL").WithDefault("info").AsString())); err != nil {
		return nil, fmt.Errorf("ARTICLEBOARD_LOG_LEVEL: %w", err)
	}

	return conf, nil
}

func splitList(s string) []string {
	var o []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			o = append(o, part)
		}
	}
	return o
}
