package board

import "slices"

// Vocabulary is an ordered set of permitted values, used for both article
// categories and tags. An empty Vocabulary disables the feature it backs.
type Vocabulary struct {
	values []string
}

// NewVocabulary builds a Vocabulary from values, dropping empty strings and
// duplicates while preserving the order of first appearance.
func NewVocabulary(values ...string) Vocabulary {
	var v Vocabulary
	for _, value := range values {
		if value == "" || slices.Contains(v.values, value) {
			continue
		}
		v.values = append(v.values, value)
	}
	return v
}

func (v Vocabulary) Contains(value string) bool {
	return slices.Contains(v.values, value)
}

func (v Vocabulary) Values() []string {
	return append([]string{}, v.values...)
}

func (v Vocabulary) Len() int {
	return len(v.values)
}

func (v Vocabulary) Enabled() bool {
	return len(v.values) != 0
}

// index returns the position of value, or -1.
func (v Vocabulary) index(value string) int {
	return slices.Index(v.values, value)
}

var (
	DefaultCategories = NewVocabulary("HTML", "CSS", "Express.JS", "React")
	DefaultTags       = NewVocabulary("HTML", "CSS", "Express.Js", "React")
)
