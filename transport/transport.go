package transport

import (
	"fmt"
	"net/url"
	"slices"

	"git.tdpain.net/codemicro/articleBoard/board"
	"git.tdpain.net/codemicro/articleBoard/models"
	"github.com/go-playground/validator"
)

var validate = validator.New()

// FieldChange is sent whenever a single text field of the draft is edited.
type FieldChange struct {
	Field string `json:"field" validate:"required,oneof=title author imageUrl image content category"`
	Value string `json:"value"`
}

func (i *FieldChange) Validate() error {
	return validate.Struct(i)
}

// TagChange is sent when a tag checkbox changes state.
type TagChange struct {
	Tag      string `json:"tag" validate:"required"`
	Selected bool   `json:"selected"`
}

func (i *TagChange) Validate() error {
	return validate.Struct(i)
}

const (
	ActionUpdate = "update"
	ActionSubmit = "submit"
	ActionReset  = "reset"
)

// DraftForm is a full post of the HTML draft form. Browsers send every
// control at once, so applying it is translated into the same discrete
// edits the JSON API performs one at a time.
type DraftForm struct {
	Fields    map[models.Field]string
	Tags      []string
	Published bool
	Action    string `validate:"required,oneof=update submit reset"`
}

func ParseDraftForm(form url.Values) *DraftForm {
	o := &DraftForm{
		Fields:    make(map[models.Field]string),
		Tags:      form["tags"],
		Published: form.Get("published") != "",
		Action:    form.Get("action"),
	}
	if o.Action == "" {
		o.Action = ActionUpdate
	}
	for key, values := range form {
		field, ok := models.ParseField(key)
		if !ok || len(values) == 0 {
			continue
		}
		o.Fields[field] = values[0]
	}
	return o
}

func (i *DraftForm) Validate() error {
	return validate.Struct(i)
}

// DraftEditor is the part of a board a form is applied to.
type DraftEditor interface {
	UpdateField(field models.Field, value string) error
	ToggleTag(tag string, selected bool) error
	TogglePublished()
	Draft() models.Draft
	Tags() board.Vocabulary
}

// Apply copies the form state onto the draft. Fields missing from the form
// are left untouched. A form naming a tag outside the vocabulary is rejected
// before anything is changed.
func (i *DraftForm) Apply(ed DraftEditor) error {
	vocabulary := ed.Tags()
	for _, tag := range i.Tags {
		if !vocabulary.Contains(tag) {
			return fmt.Errorf("select tag: %w: %q", board.ErrUnknownTag, tag)
		}
	}

	for _, field := range models.Fields {
		value, ok := i.Fields[field]
		if !ok {
			continue
		}
		if err := ed.UpdateField(field, value); err != nil {
			return fmt.Errorf("update field %s: %w", field, err)
		}
	}

	for _, tag := range i.Tags {
		if err := ed.ToggleTag(tag, true); err != nil {
			return fmt.Errorf("select tag: %w", err)
		}
	}
	for _, tag := range vocabulary.Values() {
		if slices.Contains(i.Tags, tag) {
			continue
		}
		if err := ed.ToggleTag(tag, false); err != nil {
			return fmt.Errorf("deselect tag: %w", err)
		}
	}

	if ed.Draft().Published != i.Published {
		ed.TogglePublished()
	}

	return nil
}
