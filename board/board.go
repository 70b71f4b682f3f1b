// Package board holds the state behind the article form: the draft being
// composed, the list of submitted articles and the values derived from them.
package board

import (
	"errors"
	"fmt"

	"git.tdpain.net/codemicro/articleBoard/models"
	"github.com/google/uuid"
)

// Board connects a draft Manager to the Collection its submissions land in.
// The manager is only reachable through Board so that every accepted
// submission is appended.
type Board struct {
	manager  *Manager
	articles Collection
	hooks    Hooks
}

// Hooks receive notifications about board events. Any of them may be nil.
type Hooks struct {
	Submitted func(models.Article)
	Rejected  func(*ValidationError)
	Removed   func(id uuid.UUID, found bool)
}

func New(hooks Hooks, opts ...Option) *Board {
	return &Board{
		manager: NewManager(opts...),
		hooks:   hooks,
	}
}

func (b *Board) Draft() models.Draft { return b.manager.Draft() }
func (b *Board) Advisory() string { return b.manager.Advisory() }
func (b *Board) Tags() Vocabulary { return b.manager.Tags() }
func (b *Board) Categories() Vocabulary { return b.manager.Categories() }
func (b *Board) RequiredFields() []models.Field { return b.manager.RequiredFields() }
func (b *Board) CanSubmit() bool { return b.manager.CanSubmit() }
func (b *Board) Validate() error { return b.manager.Validate() }
func (b *Board) TogglePublished() { b.manager.TogglePublished() }
func (b *Board) Reset() { b.manager.Reset() }

func (b *Board) UpdateField(field models.Field, value string) error {
	return b.manager.UpdateField(field, value)
}

func (b *Board) ToggleTag(tag string, selected bool) error {
	return b.manager.ToggleTag(tag, selected)
}

func (b *Board) OnPublishedChange(f func(published bool, advisory string)) {
	b.manager.OnPublishedChange(f)
}

// Submit validates and finalises the draft, then appends the resulting
// article to the collection.
func (b *Board) Submit() (models.Article, error) {
	article, err := b.manager.Submit()
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) && b.hooks.Rejected != nil {
			b.hooks.Rejected(verr)
		}
		return models.Article{}, fmt.Errorf("submit draft: %w", err)
	}
	b.articles.Append(article)
	if b.hooks.Submitted != nil {
		b.hooks.Submitted(article)
	}
	return article, nil
}

func (b *Board) Remove(id uuid.UUID) bool {
	found := b.articles.RemoveByID(id)
	if b.hooks.Removed != nil {
		b.hooks.Removed(id, found)
	}
	return found
}

func (b *Board) Articles() []models.Article {
	return b.articles.List()
}

func (b *Board) Article(id uuid.UUID) (models.Article, bool) {
	return b.articles.Get(id)
}

// View is everything the presentation layer needs to draw the page.
type View struct {
	Draft      models.Draft     `json:"draft"`
	Articles   []models.Article `json:"articles"`
	Advisory   string           `json:"advisory"`
	CanSubmit  bool             `json:"canSubmit"`
	Required   []models.Field   `json:"requiredFields"`
	Tags       []string         `json:"tags"`
	Categories []string         `json:"categories"`
}

func (b *Board) Snapshot() View {
	return View{
		Draft:      b.Draft(),
		Articles:   b.Articles(),
		Advisory:   b.Advisory(),
		CanSubmit:  b.CanSubmit(),
		Required:   b.RequiredFields(),
		Tags:       b.Tags().Values(),
		Categories: b.Categories().Values(),
	}
}
