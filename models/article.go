package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Field names a single text attribute of a Draft.
type Field string

const (
	FieldTitle    Field = "title"
	FieldAuthor   Field = "author"
	FieldImageURL Field = "imageUrl"
	FieldContent  Field = "content"
	FieldCategory Field = "category"
)

// Fields lists every text field in form order.
var Fields = []Field{FieldTitle, FieldAuthor, FieldImageURL, FieldContent, FieldCategory}

// ParseField maps a field name to a Field. The old form name "image" is
// accepted as an alias for imageUrl.
func ParseField(name string) (Field, bool) {
	if name == "image" {
		return FieldImageURL, true
	}
	f := Field(name)
	if slices.Contains(Fields, f) {
		return f, true
	}
	return "", false
}

// Draft is the article currently being composed.
type Draft struct {
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	ImageURL  string   `json:"imageUrl"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

// Get returns the value of a text field.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldTitle:
		return d.Title
	case FieldAuthor:
		return d.Author
	case FieldImageURL:
		return d.ImageURL
	case FieldContent:
		return d.Content
	case FieldCategory:
		return d.Category
	}
	return ""
}

// Clone returns a copy that shares no memory with d.
func (d Draft) Clone() Draft {
	d.Tags = append([]string{}, d.Tags...)
	return d
}

type Article struct {
	Draft
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a Article) Clone() Article {
	a.Draft = a.Draft.Clone()
	return a
}
