package parsing

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockSelectors are elements whose boundaries separate words in rendered text
const blockSelectors = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr, td, th, section, article, header, footer"

const markupTags = `p|div|span|br|hr|li|ul|ol|dl|dt|dd|h[1-6]|b|i|u|strong|em|a|img|code|pre|blockquote|` +
	`table|thead|tbody|tr|td|th|section|article|header|footer|nav|main|html|head|body|script|style|noscript`

// markupRe matches a closing tag, or an opening tag whose attributes are all quoted,
// so bracketed plain text such as "<Python, AWS>" or "a<b and c>d" is not markup.
var markupRe = regexp.MustCompile(`(?i)<!doctype\s|<!--|</(?:` + markupTags + `)\s*>|` +
	`<(?:` + markupTags + `)(?:\s+[a-z][a-z0-9-]*\s*=\s*(?:"[^"]*"|'[^']*'))*\s*/?>`)

var entityRe = regexp.MustCompile(`(?i)&(?:[a-z][a-z0-9]*|#[0-9]+|#x[0-9a-f]+);`)

// LooksLikeHTML reports whether text contains a recognizable HTML element
func LooksLikeHTML(text string) bool {
	return markupRe.MatchString(text)
}

// StripHTML returns the visible text of an HTML fragment, with script and style
// content removed and whitespace collapsed. Plain text is returned unchanged
// apart from decoding character references.
func StripHTML(text string) (string, error) {
	if !LooksLikeHTML(text) {
		if entityRe.MatchString(text) {
			return html.UnescapeString(text), nil
		}
		return text, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", &MarkupError{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find(blockSelectors).AfterHtml(" ")

	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
