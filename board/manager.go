package board

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"git.tdpain.net/codemicro/articleBoard/models"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
)

var validate = validator.New()

// DefaultRequiredFields must always be filled in before a draft can be
// submitted. WithRequiredFields can only add to them.
var DefaultRequiredFields = []models.Field{models.FieldTitle, models.FieldAuthor}

// Manager owns the single live draft. It is not safe for concurrent use;
// callers serialise access (see the session package).
type Manager struct {
	draft    models.Draft
	advisory string

	tags       Vocabulary
	categories Vocabulary
	required   []models.Field

	newID func() (uuid.UUID, error)
	now   func() time.Time

	observers []func(published bool, advisory string)
}

type Option func(*Manager)

// WithTags sets the tag vocabulary. An empty vocabulary disables tagging.
func WithTags(v Vocabulary) Option {
	return func(m *Manager) { m.tags = v }
}

func WithCategories(v Vocabulary) Option {
	return func(m *Manager) { m.categories = v }
}

// WithRequiredFields makes fields mandatory in addition to
// DefaultRequiredFields. The same set drives CanSubmit.
func WithRequiredFields(fields ...models.Field) Option {
	return func(m *Manager) {
		m.required = slices.Clone(DefaultRequiredFields)
		for _, field := range fields {
			if !slices.Contains(m.required, field) {
				m.required = append(m.required, field)
			}
		}
	}
}

func WithIDGenerator(f func() (uuid.UUID, error)) Option {
	return func(m *Manager) { m.newID = f }
}

func WithClock(f func() time.Time) Option {
	return func(m *Manager) { m.now = f }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		draft:      emptyDraft(),
		advisory:   Advisory(false),
		tags:       DefaultTags,
		categories: DefaultCategories,
		required:   slices.Clone(DefaultRequiredFields),
		newID:      uuid.NewV7,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func emptyDraft() models.Draft {
	return models.Draft{Tags: []string{}}
}

// Draft returns a copy of the current draft.
func (m *Manager) Draft() models.Draft {
	return m.draft.Clone()
}

// Advisory returns the message derived from the draft's published flag.
func (m *Manager) Advisory() string {
	return m.advisory
}

func (m *Manager) Tags() Vocabulary {
	return m.tags
}

func (m *Manager) Categories() Vocabulary {
	return m.categories
}

func (m *Manager) RequiredFields() []models.Field {
	return slices.Clone(m.required)
}

// OnPublishedChange registers f to be called every time the published flag
// transitions. It is not called for edits to any other field.
func (m *Manager) OnPublishedChange(f func(published bool, advisory string)) {
	m.observers = append(m.observers, f)
}

// UpdateField replaces the value of a single field. Values are not
// validated here.
func (m *Manager) UpdateField(field models.Field, value string) error {
	switch field {
	case models.FieldTitle:
		m.draft.Title = value
	case models.FieldAuthor:
		m.draft.Author = value
	case models.FieldImageURL:
		m.draft.ImageURL = value
	case models.FieldContent:
		m.draft.Content = value
	case models.FieldCategory:
		m.draft.Category = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// ToggleTag adds tag to the draft when selected is true and removes it
// otherwise. Adding a present tag or removing an absent one does nothing.
func (m *Manager) ToggleTag(tag string, selected bool) error {
	if !m.tags.Contains(tag) {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}

	present := slices.Contains(m.draft.Tags, tag)
	switch {
	case selected && !present:
		m.draft.Tags = append(m.draft.Tags, tag)
		// keep vocabulary order so the rendered list does not depend on click order
		slices.SortFunc(m.draft.Tags, func(a, b string) int {
			return m.tags.index(a) - m.tags.index(b)
		})
	case !selected && present:
		m.draft.Tags = slices.DeleteFunc(m.draft.Tags, func(t string) bool { return t == tag })
	}
	return nil
}

func (m *Manager) TogglePublished() {
	m.draft.Published = !m.draft.Published
	m.publishedChanged()
}

func (m *Manager) publishedChanged() {
	m.advisory = Advisory(m.draft.Published)
	for _, f := range m.observers {
		f(m.draft.Published, m.advisory)
	}
}

// Reset restores the empty draft.
func (m *Manager) Reset() {
	wasPublished := m.draft.Published
	m.draft = emptyDraft()
	if wasPublished {
		m.publishedChanged()
	}
}

// Validate checks the draft against the required field set without
// changing anything. A failure is always a *ValidationError.
func (m *Manager) Validate() error {
	var violations []Violation
	for _, field := range models.Fields {
		if !slices.Contains(m.required, field) {
			continue
		}
		err := validate.Var(m.draft.Get(field), "required")
		if err == nil {
			continue
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate %s: %w", field, err)
		}
		for _, fe := range fieldErrs {
			violations = append(violations, Violation{Field: field, Rule: fe.Tag()})
		}
	}
	if len(violations) != 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// CanSubmit reports whether Submit would accept the current draft.
func (m *Manager) CanSubmit() bool {
	return m.Validate() == nil
}

// Submit turns the draft into an Article and resets the draft. If the draft
// is invalid nothing changes and the error describes every violation.
func (m *Manager) Submit() (models.Article, error) {
	if err := m.Validate(); err != nil {
		return models.Article{}, err
	}

	id, err := m.newID()
	if err != nil {
		return models.Article{}, fmt.Errorf("generate article id: %w", err)
	}

	article := models.Article{
		Draft:     m.draft.Clone(),
		ID:        id,
		CreatedAt: m.now().UTC(),
	}

	m.Reset()
	return article, nil
}
