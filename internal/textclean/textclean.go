// Package textclean normalizes scraped review text before it is tokenized or
// handed to a sentiment model.
package textclean

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// renderer leaves smartypants off so apostrophes stay plain text.
func renderer() *blackfriday.HTMLRenderer {
	return blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.UseXHTML,
	})
}

// PlainText renders markdown to HTML, drops the tags and links, then collapses
// whitespace.
func PlainText(input string) string {
	if input == "" {
		return ""
	}
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions(), blackfriday.WithRenderer(renderer()))
	stripped := RemoveLinks(unescape(tagPattern.ReplaceAllString(string(output), " ")))

	return strings.Join(strings.Fields(stripped), " ")
}

// Lower folds text to lower case. cases.Caser keeps state, so one is built per call.
func Lower(input string) string {
	return cases.Lower(language.Und).String(input)
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

func unescape(s string) string {
	return entityReplacer.Replace(s)
}
