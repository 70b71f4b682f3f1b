package board

import (
	"errors"
	"fmt"
	"strings"

	"git.tdpain.net/codemicro/articleBoard/models"
)

var (
	ErrUnknownField = errors.New("unknown draft field")
	ErrUnknownTag   = errors.New("tag not in vocabulary")
)

// Violation is a single failed validation rule.
type Violation struct {
	Field models.Field `json:"field"`
	Rule  string       `json:"rule"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s is %s", v.Field, v.Rule)
}

// ValidationError is returned when a draft cannot be submitted. It lists
// every violated rule, in form order.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "invalid draft: " + strings.Join(parts, ", ")
}

// Fields returns the names of the fields that failed validation.
func (e *ValidationError) Fields() []models.Field {
	o := make([]models.Field, len(e.Violations))
	for i, v := range e.Violations {
		o[i] = v.Field
	}
	return o
}
