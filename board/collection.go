package board

import (
	"slices"

	"git.tdpain.net/codemicro/articleBoard/models"
	"github.com/google/uuid"
)

// Collection is the ordered list of submitted articles. Insertion order is
// display order. The zero value is an empty collection.
type Collection struct {
	articles []models.Article
}

func (c *Collection) Append(article models.Article) {
	c.articles = append(c.articles, article.Clone())
}

// RemoveByID deletes the first article with the given ID. It reports
// whether anything was removed; a miss is not an error.
func (c *Collection) RemoveByID(id uuid.UUID) bool {
	i := slices.IndexFunc(c.articles, func(a models.Article) bool { return a.ID == id })
	if i == -1 {
		return false
	}
	c.articles = slices.Delete(c.articles, i, i+1)
	return true
}

func (c *Collection) Get(id uuid.UUID) (models.Article, bool) {
	i := slices.IndexFunc(c.articles, func(a models.Article) bool { return a.ID == id })
	if i == -1 {
		return models.Article{}, false
	}
	return c.articles[i].Clone(), true
}

// List returns a copy of every article in display order.
func (c *Collection) List() []models.Article {
	o := make([]models.Article, len(c.articles))
	for i, a := range c.articles {
		o[i] = a.Clone()
	}
	return o
}

func (c *Collection) Len() int {
	return len(c.articles)
}
