package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"git.tdpain.net/codemicro/articleBoard/board"
	"git.tdpain.net/codemicro/articleBoard/cmd/articleboardd/internal/config"
	"git.tdpain.net/codemicro/articleBoard/cmd/articleboardd/internal/session"
	"git.tdpain.net/codemicro/articleBoard/transport"
	"github.com/google/uuid"
	g "github.com/maragudk/gomponents"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const sessionCookieName = "articleboard_session"

// maxBodySize caps form and JSON request bodies.
const maxBodySize = 1 << 20

func Listen(conf *config.Config, sessions *session.Store, gatherer prometheus.Gatherer) error {
	slog.Info("starting HTTP server", "address", conf.HTTPAddress)
	return http.ListenAndServe(conf.HTTPAddress, NewMux(conf, sessions, gatherer))
}

func NewMux(conf *config.Config, sessions *session.Store, gatherer prometheus.Gatherer) *http.ServeMux {
	e := &endpoints{Config: conf, Sessions: sessions, now: time.Now}

	mux := http.NewServeMux()

	mux.Handle("GET /{$}", handle("index", e.index))
	mux.Handle("POST /{$}", handle("postDraft", e.postDraft))
	mux.Handle("POST /articles/{id}/delete", handle("deleteArticle", e.deleteArticle))
	mux.Handle("GET /export", handle("export", e.export))

	mux.Handle("GET /api/draft", handle("apiDraft", e.apiDraft))
	mux.Handle("POST /api/draft/fields", handle("apiUpdateField", e.apiUpdateField))
	mux.Handle("POST /api/draft/tags", handle("apiToggleTag", e.apiToggleTag))
	mux.Handle("POST /api/draft/published", handle("apiTogglePublished", e.apiTogglePublished))
	mux.Handle("POST /api/draft/submit", handle("apiSubmit", e.apiSubmit))
	mux.Handle("POST /api/draft/reset", handle("apiReset", e.apiReset))
	mux.Handle("GET /api/articles", handle("apiListArticles", e.apiListArticles))
	mux.Handle("DELETE /api/articles/{id}", handle("apiDeleteArticle", e.apiDeleteArticle))
	mux.Handle("GET /api/vocabulary", handle("apiVocabulary", e.apiVocabulary))

	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.Handle("GET /healthz", http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusNoContent)
	}))

	return mux
}

func handle(name string, f func(rw http.ResponseWriter, req *http.Request) error) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		if err := f(rw, req); err != nil {
			slog.Error("error in "+name+" HTTP handler", "error", err, "method", req.Method, "path", req.URL.Path)
			rw.WriteHeader(http.StatusInternalServerError)
		}
	})
}

type endpoints struct {
	Config   *config.Config
	Sessions *session.Store
	now      func() time.Time
}

// session returns the caller's session token, issuing a cookie for a new
// session when the request did not carry a live one.
func (e endpoints) session(rw http.ResponseWriter, req *http.Request) string {
	var token string
	if cookie, err := req.Cookie(sessionCookieName); err == nil {
		token = cookie.Value
	}

	token, created := e.Sessions.Resolve(token)
	if created {
		http.SetCookie(rw, &http.Cookie{
			Name:     sessionCookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return token
}

func (e endpoints) snapshot(token string) (board.View, error) {
	var view board.View
	err := e.Sessions.With(token, func(b *board.Board) error {
		view = b.Snapshot()
		return nil
	})
	return view, err
}

func (e endpoints) index(rw http.ResponseWriter, req *http.Request) error {
	token := e.session(rw, req)

	view, err := e.snapshot(token)
	if err != nil {
		return fmt.Errorf("snapshot board: %w", err)
	}

	rw.Header().Set("Content-Type", "text/html")
	return indexPage(e.Config.SiteTitle, view, nil).Render(rw)
}

// postDraft receives the draft form. Depending on the button pressed the
// draft is only updated, submitted or cleared.
func (e endpoints) postDraft(rw http.ResponseWriter, req *http.Request) error {
	token := e.session(rw, req)
	rw.Header().Set("Content-Type", "text/html")

	req.Body = http.MaxBytesReader(rw, req.Body, maxBodySize)
	if err := req.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rw.WriteHeader(http.StatusRequestEntityTooLarge)
		} else {
			rw.WriteHeader(http.StatusBadRequest)
		}
		return basePage("Bad request", g.Text("Bad request"), g.Text(": "+err.Error())).Render(rw)
	}

	form := transport.ParseDraftForm(req.PostForm)
	if err := form.Validate(); err != nil {
		rw.WriteHeader(http.StatusBadRequest)
		return basePage("Bad request", g.Text("Bad request"), unorderedList(strings.Split(err.Error(), "\n"))).Render(rw)
	}

	var (
		view     board.View
		rejected *board.ValidationError
		badInput error
	)
	err := e.Sessions.With(token, func(b *board.Board) error {
		if err := form.Apply(b); err != nil {
			if errors.Is(err, board.ErrUnknownField) || errors.Is(err, board.ErrUnknownTag) {
				badInput = err
				return nil
			}
			return err
		}

		switch form.Action {
		case transport.ActionSubmit:
			if _, err := b.Submit(); err != nil {
				if !errors.As(err, &rejected) {
					return err
				}
			}
		case transport.ActionReset:
			b.Reset()
		}

		view = b.Snapshot()
		return nil
	})
	if err != nil {
		return fmt.Errorf("apply draft form: %w", err)
	}

	if badInput != nil {
		rw.WriteHeader(http.StatusBadRequest)
		return basePage("Bad request", g.Text("Bad request: "+badInput.Error())).Render(rw)
	}

	if rejected != nil {
		rw.WriteHeader(http.StatusUnprocessableEntity)
		return indexPage(e.Config.SiteTitle, view, rejected.Violations).Render(rw)
	}

	if form.Action != transport.ActionUpdate {
		http.Redirect(rw, req, "/", http.StatusSeeOther)
		return nil
	}

	return indexPage(e.Config.SiteTitle, view, nil).Render(rw)
}

func (e endpoints) deleteArticle(rw http.ResponseWriter, req *http.Request) error {
	token := e.session(rw, req)

	id, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		rw.Header().Set("Content-Type", "text/html")
		rw.WriteHeader(http.StatusBadRequest)
		return basePage("Bad request", g.Text("Bad request: invalid article ID")).Render(rw)
	}

	if err := e.Sessions.With(token, func(b *board.Board) error {
		b.Remove(id)
		return nil
	}); err != nil {
		return fmt.Errorf("remove article %s: %w", id, err)
	}

	http.Redirect(rw, req, "/", http.StatusSeeOther)
	return nil
}

func (e endpoints) export(rw http.ResponseWriter, req *http.Request) error {
	token := e.session(rw, req)

	view, err := e.snapshot(token)
	if err != nil {
		return fmt.Errorf("snapshot board: %w", err)
	}

	page, err := renderExportPage(e.Config.SiteTitle, view.Articles, e.now())
	if err != nil {
		return fmt.Errorf("render export page: %w", err)
	}

	rw.Header().Set("Content-Type", "text/html")
	rw.Header().Set("Content-Disposition", `attachment; filename="articles.html"`)
	_, _ = rw.Write(page)
	return nil
}
