package config

import (
	"log/slog"
	"testing"
	"time"

	"git.tdpain.net/codemicro/articleBoard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Defaults(t *testing.T) {
	conf, err := Get()
	require.NoError(t, err)

	assert.Equal(t, ":9233", conf.HTTPAddress)
	assert.Equal(t, "Articles", conf.SiteTitle)
	assert.Equal(t, []string{"HTML", "CSS", "Express.JS", "React"}, conf.Categories)
	assert.Equal(t, []string{"HTML", "CSS", "Express.Js", "React"}, conf.Tags)
	assert.Equal(t, []models.Field{models.FieldTitle, models.FieldAuthor}, conf.RequiredFields)
	assert.Equal(t, 12*time.Hour, conf.SessionIdle)
	assert.Equal(t, slog.LevelInfo, conf.LogLevel)
}

func TestGet_Overrides(t *testing.T) {
	t.Setenv("ARTICLEBOARD_HTTP_ADDR", "127.0.0.1:8080")
	t.Setenv("ARTICLEBOARD_CATEGORIES", " Go , Rust,,Zig ")
	t.Setenv("ARTICLEBOARD_TAGS", "none")
	t.Setenv("ARTICLEBOARD_REQUIRED_FIELDS", "title,author,content,category")
	t.Setenv("ARTICLEBOARD_SESSION_IDLE", "30m")
	t.Setenv("ARTICLEBOARD_LOG_LEVEL", "debug")

	conf, err := Get()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", conf.HTTPAddress)
	assert.Equal(t, []string{"Go", "Rust", "Zig"}, conf.Categories)
	assert.Empty(t, conf.Tags)
	assert.Equal(t, []models.Field{
		models.FieldTitle, models.FieldAuthor, models.FieldContent, models.FieldCategory,
	}, conf.RequiredFields)
	assert.Equal(t, 30*time.Minute, conf.SessionIdle)
	assert.Equal(t, slog.LevelDebug, conf.LogLevel)
}

func TestGet_RequiredFieldsAlwaysIncludeTitleAndAuthor(t *testing.T) {
	t.Setenv("ARTICLEBOARD_REQUIRED_FIELDS", "content")

	conf, err := Get()
	require.NoError(t, err)
	assert.Equal(t, []models.Field{
		models.FieldTitle, models.FieldAuthor, models.FieldContent,
	}, conf.RequiredFields)
}

func TestGet_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"ARTICLEBOARD_REQUIRED_FIELDS", "title,published"},
		{"ARTICLEBOARD_SESSION_IDLE", "soon"},
		{"ARTICLEBOARD_SESSION_IDLE", "-1h"},
		{"ARTICLEBOARD_LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Get()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
