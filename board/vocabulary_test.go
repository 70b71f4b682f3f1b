package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVocabulary(t *testing.T) {
	v := NewVocabulary("b", "", "a", "b", "c")
	assert.Equal(t, []string{"b", "a", "c"}, v.Values())
	assert.Equal(t, 3, v.Len())
	assert.True(t, v.Enabled())
	assert.True(t, v.Contains("a"))
	assert.False(t, v.Contains(""))

	empty := NewVocabulary()
	assert.False(t, empty.Enabled())
	assert.Equal(t, []string{}, empty.Values())
	assert.False(t, empty.Contains("HTML"))
}
