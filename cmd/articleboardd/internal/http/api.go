package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"git.tdpain.net/codemicro/articleBoard/board"
	"git.tdpain.net/codemicro/articleBoard/models"
	"git.tdpain.net/codemicro/articleBoard/transport"
	"github.com/google/uuid"
)

type draftResponse struct {
	Draft     models.Draft `json:"draft"`
	Advisory  string       `json:"advisory"`
	CanSubmit bool         `json:"canSubmit"`
}

func newDraftResponse(b *board.Board) draftResponse {
	return draftResponse{
		Draft:     b.Draft(),
		Advisory:  b.Advisory(),
		CanSubmit: b.CanSubmit(),
	}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Errors []board.Violation `json:"errors,omitempty"`
}

func writeJSON(rw http.ResponseWriter, status int, v any) error {
	res, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_, _ = rw.Write(res)
	return nil
}

func badRequest(rw http.ResponseWriter, err error) error {
	return writeJSON(rw, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// readJSON decodes the request body into v. A false return means a 400 or
// 413 has already been written.
func readJSON(rw http.ResponseWriter, req *http.Request, v interface{ Validate() error }) (bool, error) {
	req.Body = http.MaxBytesReader(rw, req.Body, maxBodySize)
	rawBodyData, err := io.ReadAll(req.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return false, writeJSON(rw, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
		}
		return false, fmt.Errorf("read request body: %w", err)
	}

	if err := json.Unmarshal(rawBodyData, v); err != nil {
		return false, badRequest(rw, err)
	}

	if err := v.Validate(); err != nil {
		return false, badRequest(rw, err)
	}

	return true, nil
}

// withDraft runs f on the caller's board and answers with the resulting
// draft state. Input errors from f are reported as 400s.
func (e endpoints) withDraft(rw http.ResponseWriter, req *http.Request, f func(b *board.Board) error) error {
	token := e.session(rw, req)

	var (
		res      draftResponse
		badInput error
	)
	err := e.Sessions.With(token, func(b *board.Board) error {
		if err := f(b); err != nil {
			if errors.Is(err, board.ErrUnknownField) || errors.Is(err, board.ErrUnknownTag) {
				badInput = err
				return nil
			}
			return err
		}
		res = newDraftResponse(b)
		return nil
	})
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}

	if badInput != nil {
		return badRequest(rw, badInput)
	}
	return writeJSON(rw, http.StatusOK, res)
}

func (e endpoints) apiDraft(rw http.ResponseWriter, req *http.Request) error {
	return e.withDraft(rw, req, func(*board.Board) error { return nil })
}

func (e endpoints) apiUpdateField(rw http.ResponseWriter, req *http.Request) error {
	requestData := new(transport.FieldChange)
	if ok, err := readJSON(rw, req, requestData); !ok {
		return err
	}

	field, ok := models.ParseField(requestData.Field)
	if !ok {
		return badRequest(rw, fmt.Errorf("%w: %q", board.ErrUnknownField, requestData.Field))
	}

	return e.withDraft(rw, req, func(b *board.Board) error {
		return b.UpdateField(field, requestData.Value)
	})
}

func (e endpoints) apiToggleTag(rw http.ResponseWriter, req *http.Request) error {
	requestData := new(transport.TagChange)
	if ok, err := readJSON(rw, req, requestData); !ok {
		return err
	}

	return e.withDraft(rw, req, func(b *board.Board) error {
		return b.ToggleTag(requestData.Tag, requestData.Selected)
	})
}

func (e endpoints) apiTogglePublished(rw http.ResponseWriter, req *http.Request) error {
	return e.withDraft(rw, req, func(b *board.Board) error {
		b.TogglePublished()
		return nil
	})
}

func (e endpoints) apiReset(rw http.ResponseWriter, req *http.Request) error {
	return e.withDraft(rw, req, func(b *board.Board) error {
		b.Reset()
		return nil
	})
}

func (e endpoints) apiSubmit(rw http.ResponseWriter, req *http.Request) error {
	token := e.session(rw, req)

	var (
		article  models.Article
		rejected *board.ValidationError
	)
	err := e.Sessions.With(token, func(b *board.Board) error {
		var err error
		article, err = b.Submit()
		if err != nil && errors.As(err, &rejected) {
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}

	if rejected != nil {
		return writeJSON(rw, http.StatusUnprocessableEntity, errorResponse{
			Error:  rejected.Error(),
			Errors: rejected.Violations,
		})
	}

	return writeJSON(rw, http.StatusCreated, article)
}

func (e endpoints) apiListArticles(rw http.ResponseWriter, req *http.Request) error {
	view, err := e.snapshot(e.session(rw, req))
	if err != nil {
		return fmt.Errorf("snapshot board: %w", err)
	}
	return writeJSON(rw, http.StatusOK, view.Articles)
}

// apiDeleteArticle answers 204 whether or not the article existed.
func (e endpoints) apiDeleteArticle(rw http.ResponseWriter, req *http.Request) error {
	token := e.session(rw, req)

	id, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		return badRequest(rw, fmt.Errorf("invalid article ID: %w", err))
	}

	if err := e.Sessions.With(token, func(b *board.Board) error {
		b.Remove(id)
		return nil
	}); err != nil {
		return fmt.Errorf("remove article %s: %w", id, err)
	}

	rw.WriteHeader(http.StatusNoContent)
	return nil
}

func (e endpoints) apiVocabulary(rw http.ResponseWriter, req *http.Request) error {
	view, err := e.snapshot(e.session(rw, req))
	if err != nil {
		return fmt.Errorf("snapshot board: %w", err)
	}
	return writeJSON(rw, http.StatusOK, struct {
		Categories     []string       `json:"categories"`
		Tags           []string       `json:"tags"`
		RequiredFields []models.Field `json:"requiredFields"`
	}{view.Categories, view.Tags, view.Required})
}
