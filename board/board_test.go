package board

import (
	"testing"

	"git.tdpain.net/codemicro/articleBoard/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_SubmitScenario(t *testing.T) {
	b := New(Hooks{})

	require.NoError(t, b.UpdateField(models.FieldTitle, "A"))
	require.NoError(t, b.UpdateField(models.FieldAuthor, "B"))
	require.NoError(t, b.UpdateField(models.FieldContent, "C"))
	require.NoError(t, b.UpdateField(models.FieldCategory, "HTML"))

	_, err := b.Submit()
	require.NoError(t, err)

	articles := b.Articles()
	require.Len(t, articles, 1)
	got := articles[0]
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "B", got.Author)
	assert.Equal(t, "C", got.Content)
	assert.Equal(t, "HTML", got.Category)
	assert.Equal(t, "", got.ImageURL)
	assert.Empty(t, got.Tags)
	assert.False(t, got.Published)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.NotEmpty(t, got.ID.String())

	assert.Equal(t, emptyDraft(), b.Draft())
}

func TestBoard_InvalidSubmitLeavesEverythingUnchanged(t *testing.T) {
	var rejected int
	b := New(Hooks{Rejected: func(*ValidationError) { rejected++ }})

	require.NoError(t, b.UpdateField(models.FieldTitle, "only a title"))
	before := b.Snapshot()

	_, err := b.Submit()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []models.Field{models.FieldAuthor}, verr.Fields())

	assert.Equal(t, before, b.Snapshot())
	assert.Equal(t, 1, rejected)
}

func TestBoard_EveryAcceptedSubmissionIsListed(t *testing.T) {
	var published []bool
	b := New(Hooks{})
	b.OnPublishedChange(func(p bool, _ string) { published = append(published, p) })

	b.TogglePublished()
	require.NoError(t, b.UpdateField(models.FieldTitle, "A"))
	require.NoError(t, b.UpdateField(models.FieldAuthor, "B"))
	require.NoError(t, b.ToggleTag("HTML", true))
	require.NoError(t, b.Validate())

	article, err := b.Submit()
	require.NoError(t, err)

	got, ok := b.Article(article.ID)
	require.True(t, ok)
	assert.Equal(t, article, got)
	assert.Equal(t, []string{"HTML"}, got.Tags)
	assert.True(t, got.Published)
	assert.Equal(t, []bool{true, false}, published)
	assert.Equal(t, AdvisoryNonePublished, b.Advisory())
}

func TestBoard_TwoSubmissions(t *testing.T) {
	var submitted []models.Article
	b := New(Hooks{Submitted: func(a models.Article) { submitted = append(submitted, a) }})

	for _, title := range []string{"first", "second"} {
		require.NoError(t, b.UpdateField(models.FieldTitle, title))
		require.NoError(t, b.UpdateField(models.FieldAuthor, "me"))
		_, err := b.Submit()
		require.NoError(t, err)
	}

	articles := b.Articles()
	require.Len(t, articles, 2)
	assert.Equal(t, "first", articles[0].Title)
	assert.Equal(t, "second", articles[1].Title)
	assert.NotEqual(t, articles[0].ID, articles[1].ID)
	assert.Equal(t, articles, submitted)
}

func TestBoard_Remove(t *testing.T) {
	type removal struct {
		id    uuid.UUID
		found bool
	}
	var removals []removal
	b := New(Hooks{Removed: func(id uuid.UUID, found bool) { removals = append(removals, removal{id, found}) }})

	require.NoError(t, b.UpdateField(models.FieldTitle, "A"))
	require.NoError(t, b.UpdateField(models.FieldAuthor, "B"))
	article, err := b.Submit()
	require.NoError(t, err)

	missing := uuid.New()
	assert.False(t, b.Remove(missing))
	assert.Len(t, b.Articles(), 1)

	got, ok := b.Article(article.ID)
	assert.True(t, ok)
	assert.Equal(t, article, got)

	assert.True(t, b.Remove(article.ID))
	assert.Empty(t, b.Articles())

	assert.Equal(t, []removal{{missing, false}, {article.ID, true}}, removals)
}

func TestBoard_Snapshot(t *testing.T) {
	b := New(Hooks{}, WithTags(NewVocabulary()), WithCategories(NewVocabulary("Go", "Rust")))

	view := b.Snapshot()
	assert.Equal(t, []string{}, view.Tags)
	assert.Equal(t, []string{"Go", "Rust"}, view.Categories)
	assert.Equal(t, AdvisoryNonePublished, view.Advisory)
	assert.False(t, view.CanSubmit)
	assert.Equal(t, DefaultRequiredFields, view.Required)
	assert.Empty(t, view.Articles)

	b.TogglePublished()
	require.NoError(t, b.UpdateField(models.FieldTitle, "A"))
	require.NoError(t, b.UpdateField(models.FieldAuthor, "B"))

	view = b.Snapshot()
	assert.Equal(t, AdvisoryPublishing, view.Advisory)
	assert.True(t, view.CanSubmit)
}
