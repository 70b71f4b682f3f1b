package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"git.tdpain.net/codemicro/articleBoard/board"
	"git.tdpain.net/codemicro/articleBoard/client"
	"git.tdpain.net/codemicro/articleBoard/models"
	"go.akpain.net/cfger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("unhandled error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cl := cfger.New()
	var conf = struct {
		DaemonAddress string
		InputJSON     string
	}{
		DaemonAddress: cl.GetEnv("ARTICLEPOST_ARTICLEBOARDD_ADDR").WithDefault("localhost:9233").AsString(),
		InputJSON:     cl.GetEnv("ARTICLEPOST_INPUT_JSON").AsString(),
	}

	if conf.InputJSON == "" {
		return errors.New("ARTICLEPOST_INPUT_JSON not set")
	}

	draft := new(models.Draft)
	if err := json.Unmarshal([]byte(conf.InputJSON), draft); err != nil {
		return fmt.Errorf("parse ARTICLEPOST_INPUT_JSON: %w", err)
	}

	c, err := client.New(conf.DaemonAddress)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	article, err := c.Post(ctx, *draft)
	if err != nil {
		var verr *board.ValidationError
		if errors.As(err, &verr) {
			fields := make([]string, len(verr.Violations))
			for i, v := range verr.Violations {
				fields[i] = v.String()
			}
			return fmt.Errorf("article rejected: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("post article: %w", err)
	}

	slog.Info("article posted", "id", article.ID, "title", article.Title)
	fmt.Println(article.ID)
	return nil
}
