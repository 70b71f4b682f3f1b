package http

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"time"

	"git.tdpain.net/codemicro/articleBoard/board"
	"git.tdpain.net/codemicro/articleBoard/models"
	g "github.com/maragudk/gomponents"
	c "github.com/maragudk/gomponents/components"
	. "github.com/maragudk/gomponents/html"
)

const dateFormat = "2006-01-02"

const pageStyles = `body {
	font-family: sans-serif;
	font-size: 1.1rem;
	padding: 1em;
}
.container { max-width: 60em; margin: 0 auto; }
.cards { display: grid; grid-template-columns: repeat(2, 1fr); gap: 1em; }
.card { border: 1px solid #ccc; border-radius: 4px; padding: 1em; }
.card img { max-width: 100%; }
.field { margin-bottom: 0.75em; }
.field input[type=text], .field textarea, .field select { display: block; width: 100%; }
.tag { display: inline-block; margin-right: 10px; }
.errors { background-color: #fadbd8; padding: 0.5em 1em; }
.secondary { color: #666; }
`

// enables the submit button as soon as every required control has a value
const submitGateScript = `document.querySelectorAll("form.draft").forEach(function (f) {
	var b = f.querySelector("button[value=submit]");
	var r = f.querySelectorAll("[data-required]");
	function u() { b.disabled = Array.prototype.some.call(r, function (e) { return e.value === ""; }); }
	f.addEventListener("input", u);
	f.addEventListener("change", u);
});`

func basePage(title string, content ...g.Node) g.Node {
	return HTML(
		Head(
			Meta(g.Attr("name", "viewport"), g.Attr("content", "width=device-width, initial-scale=1")),
			TitleEl(g.Text(title)),
			StyleEl(g.Raw(pageStyles)),
		),
		Body(content...),
	)
}

func unorderedList(x []string) g.Node {
	return Ul(g.Map(x, func(s string) g.Node {
		return Li(g.Text(s))
	})...)
}

func indexPage(title string, view board.View, violations []board.Violation) g.Node {
	return basePage(title,
		Div(g.Attr("class", "container"),
			H1(g.Text(title)),
			articlesSection(view.Articles),
			draftSection(view, violations),
			P(g.Attr("class", "secondary"), A(g.Attr("href", "/export"), g.Text("Export articles"))),
		),
		Script(g.Raw(submitGateScript)),
	)
}

func articlesSection(articles []models.Article) g.Node {
	return Section(
		H2(g.Text("New articles")),
		g.If(len(articles) == 0, P(g.Text("No articles"))),
		g.If(len(articles) != 0, Div(g.Attr("class", "cards"), g.Group(g.Map(articles, articleCard)))),
	)
}

func articleCard(article models.Article) g.Node {
	return Div(g.Attr("class", "card"),
		g.If(article.ImageURL != "", Img(g.Attr("src", article.ImageURL), g.Attr("alt", article.Title))),
		H4(g.Text(article.Title)),
		P(g.Text("Author: "+article.Author)),
		P(g.Text("Category: "+article.Category)),
		P(g.Text("Tags: "+strings.Join(article.Tags, ", "))),
		P(g.Text(article.Content)),
		g.El("form",
			g.Attr("method", "post"),
			g.Attr("action", "/articles/"+article.ID.String()+"/delete"),
			Button(g.Attr("type", "submit"), g.Text("Delete")),
		),
	)
}

func draftSection(view board.View, violations []board.Violation) g.Node {
	draft := view.Draft

	required := func(f models.Field) g.Node {
		return g.If(slices.Contains(view.Required, f), g.Attr("data-required"))
	}

	textField := func(id, label string, field models.Field, placeholder string) g.Node {
		return Div(g.Attr("class", "field"),
			g.El("label", g.Attr("for", id), g.Text(label)),
			Input(
				g.Attr("id", id),
				g.Attr("type", "text"),
				g.Attr("name", string(field)),
				g.Attr("value", draft.Get(field)),
				g.Attr("placeholder", placeholder),
				required(field),
			),
		)
	}

	return Section(
		H3(g.Text("Add a new article")),
		g.If(len(violations) != 0, Div(g.Attr("class", "errors"),
			P(g.Text("The article could not be submitted:")),
			unorderedList(violationMessages(violations)),
		)),
		g.El("form",
			g.Attr("class", "draft"),
			g.Attr("method", "post"),
			g.Attr("action", "/"),

			textField("articleTitle", "Article title", models.FieldTitle, "Enter the article title"),
			textField("articleAuthor", "Author", models.FieldAuthor, "Enter the author"),
			textField("articleImage", "Article image", models.FieldImageURL, "Enter the article image URL"),

			Div(g.Attr("class", "field"),
				g.El("label", g.Attr("for", "articleContent"), g.Text("Article content")),
				Textarea(
					g.Attr("id", "articleContent"),
					g.Attr("name", string(models.FieldContent)),
					g.Attr("placeholder", "Enter the article content"),
					required(models.FieldContent),
					g.Text(draft.Content),
				),
			),

			Div(g.Attr("class", "field"),
				g.El("label", g.Attr("for", "articleCategory"), g.Text("Article category")),
				Select(
					g.Attr("id", "articleCategory"),
					g.Attr("name", string(models.FieldCategory)),
					required(models.FieldCategory),
					Option(g.Attr("value", ""), g.Attr("disabled"), g.If(draft.Category == "", g.Attr("selected")), g.Text("Select a category")),
					g.Group(g.Map(view.Categories, func(category string) g.Node {
						return Option(g.Attr("value", category), g.If(category == draft.Category, g.Attr("selected")), g.Text(category))
					})),
				),
			),

			g.If(len(view.Tags) != 0, tagCheckboxes(view.Tags, draft.Tags)),

			Div(g.Attr("class", "field"),
				g.El("label", g.Attr("for", "articlePublished"), g.Text("Published")),
				Input(
					g.Attr("id", "articlePublished"),
					g.Attr("type", "checkbox"),
					g.Attr("name", "published"),
					g.Attr("value", "on"),
					g.Attr("onchange", "this.form.submit()"),
					g.If(draft.Published, g.Attr("checked")),
				),
				Div(g.Attr("id", "advisory"), g.Text(view.Advisory)),
			),

			Button(g.Attr("type", "submit"), g.Attr("name", "action"), g.Attr("value", "update"), g.Text("Update")),
			g.Text(" "),
			Button(
				g.Attr("type", "submit"),
				g.Attr("name", "action"),
				g.Attr("value", "submit"),
				g.If(!view.CanSubmit, g.Attr("disabled")),
				g.Text("Submit"),
			),
			g.Text(" "),
			Button(g.Attr("type", "submit"), g.Attr("name", "action"), g.Attr("value", "reset"), g.Text("Clear")),
		),
	)
}

func tagCheckboxes(vocabulary, selected []string) g.Node {
	return Div(g.Attr("class", "field"),
		P(g.Text("Select tags:")),
		g.Group(g.Map(vocabulary, func(tag string) g.Node {
			id := "tag-" + tag
			return Span(g.Attr("class", "tag"),
				Input(
					g.Attr("id", id),
					g.Attr("type", "checkbox"),
					g.Attr("name", "tags"),
					g.Attr("value", tag),
					g.If(slices.Contains(selected, tag), g.Attr("checked")),
				),
				g.El("label", g.Attr("for", id), g.Text(tag)),
			)
		})),
	)
}

func violationMessages(violations []board.Violation) []string {
	o := make([]string, len(violations))
	for i, v := range violations {
		o[i] = v.String()
	}
	return o
}

// renderExportPage renders a complete, standalone HTML page listing every
// article, stamped with exportedAt.
func renderExportPage(title string, articles []models.Article, exportedAt time.Time) ([]byte, error) {
	head := Div(
		H1(g.Text(title)),
		P(g.Textf("There are currently %d articles in the list", len(articles)), Br(), g.Textf("Exported %s", exportedAt.Format(dateFormat))),
	)

	b := new(bytes.Buffer)
	err := c.HTML5(c.HTML5Props{
		Title:    title,
		Language: "en-GB",
		Head:     []g.Node{StyleEl(g.Raw(pageStyles))},
		Body:     []g.Node{Div(g.Attr("class", "container"), head, Hr(), Ul(g.Map(articles, articleListItem)...))},
	}).Render(b)
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return b.Bytes(), nil
}

func articleListItem(article models.Article) g.Node {
	return Li(
		g.Text(article.Title),
		g.Text(" - "+article.Author),
		g.Text(" - "+article.CreatedAt.Format(dateFormat)),
		g.If(article.Category != "", Span(g.Attr("class", "secondary"), g.Text(" - "+article.Category))),
		g.If(len(article.Tags) != 0, Span(g.Attr("class", "secondary"), g.Text(" ["+strings.Join(article.Tags, ", ")+"]"))),
		g.If(article.Content != "", P(g.Text(article.Content))),
	)
}
