// Package goquery implements soask.Normalizer by walking the HTML document
// parsed with goquery and rendering its visible text.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/soask"
	"golang.org/x/net/html"
)

// Ensure Normalizer implements soask.Normalizer at compile time.
var _ soask.Normalizer = (*Normalizer)(nil)

// Normalizer renders answer HTML as plain text.
//
// Block elements start new lines, paragraphs are separated by blank lines,
// and <pre> blocks are emitted verbatim inside ``` fences tagged with the
// highlighting language when the markup names one.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize converts an HTML fragment into plain text.
func (n *Normalizer) Normalize(body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", soask.Errorf(soask.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", soask.Errorf(soask.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find("script, style, noscript, template").Remove()

	var w textWriter
	for _, node := range doc.Find("body").Nodes {
		w.walkChildren(node)
	}

	return strings.TrimSpace(w.String()), nil
}

// Elements rendered as their own paragraph.
var paragraphElements = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "dl": true, "blockquote": true, "table": true,
	"figure": true, "details": true,
}

// Elements that start and end a line.
var lineElements = map[string]bool{
	"div": true, "li": true, "tr": true, "dt": true, "dd": true,
	"section": true, "article": true, "header": true, "footer": true,
	"summary": true, "figcaption": true, "caption": true, "thead": true,
	"tbody": true, "tfoot": true, "aside": true, "nav": true, "main": true,
}

// textWriter accumulates visible text, collapsing whitespace the way a
// browser would outside of preformatted blocks.
type textWriter struct {
	sb       strings.Builder
	newlines int  // consecutive newlines at the end of the output
	space    bool // a space is owed before the next word
}

func (w *textWriter) String() string {
	return w.sb.String()
}

func (w *textWriter) walkChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.writeText(n.Data)
		return
	case html.ElementNode:
	default:
		w.walkChildren(n)
		return
	}

	switch {
	case n.Data == "br":
		w.lineBreak()
	case n.Data == "hr":
		w.breakLines(2)
	case n.Data == "pre":
		w.writeCodeBlock(n)
	case n.Data == "td" || n.Data == "th":
		w.space = true
		w.walkChildren(n)
		w.space = true
	case paragraphElements[n.Data]:
		w.breakLines(2)
		w.walkChildren(n)
		w.breakLines(2)
	case lineElements[n.Data]:
		w.breakLines(1)
		w.walkChildren(n)
		w.breakLines(1)
	default:
		w.walkChildren(n)
	}
}

// writeText writes prose, collapsing whitespace runs to single spaces.
func (w *textWriter) writeText(s string) {
	if s == "" {
		return
	}
	if isSpace(s[0]) {
		w.space = true
	}
	fields := strings.Fields(s)
	for i, f := range fields {
		if i > 0 {
			w.space = true
		}
		w.writeWord(f)
	}
	if len(fields) > 0 && isSpace(s[len(s)-1]) {
		w.space = true
	}
}

func (w *textWriter) writeWord(word string) {
	if w.space && w.sb.Len() > 0 && w.newlines == 0 {
		w.sb.WriteByte(' ')
	}
	w.space = false
	w.sb.WriteString(word)
	w.newlines = 0
}

func (w *textWriter) lineBreak() {
	w.sb.WriteByte('\n')
	w.newlines++
	w.space = false
}

// breakLines ends the current line and ensures at least n newlines follow
// the last written text. It never writes leading newlines.
func (w *textWriter) breakLines(n int) {
	w.space = false
	if w.sb.Len() == 0 {
		return
	}
	for w.newlines < n {
		w.lineBreak()
	}
}

// writeCodeBlock emits a <pre> element verbatim inside a fenced block.
func (w *textWriter) writeCodeBlock(n *html.Node) {
	sel := goquery.NewDocumentFromNode(n).Selection
	code := strings.TrimRight(sel.Text(), "\n")

	w.breakLines(2)
	w.sb.WriteString("```")
	w.sb.WriteString(codeLanguage(sel))
	w.sb.WriteByte('\n')
	w.sb.WriteString(code)
	w.sb.WriteString("\n```")
	w.newlines = 0
	w.breakLines(2)
}

// codeLanguage reads the highlighting hint Stack Overflow puts on code blocks:
// "lang-xxx" on the <pre> element or "language-xxx" on its <code> child.
func codeLanguage(pre *goquery.Selection) string {
	if lang := classWithPrefix(pre, "lang-"); lang != "" && lang != "none" {
		return lang
	}
	if lang := classWithPrefix(pre.Find("code").First(), "language-"); lang != "" {
		return lang
	}
	return ""
}

func classWithPrefix(sel *goquery.Selection, prefix string) string {
	class, ok := sel.Attr("class")
	if !ok {
		return ""
	}
	for _, c := range strings.Fields(class) {
		if lang, found := strings.CutPrefix(c, prefix); found {
			return lang
		}
	}
	return ""
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
