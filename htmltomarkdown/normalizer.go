// Package htmltomarkdown implements soask.Normalizer by converting answer
// HTML to Markdown, keeping emphasis, links and fenced code.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/soask"
)

// DefaultDomain resolves relative links in Stack Overflow answers.
const DefaultDomain = "https://stackoverflow.com"

// Ensure Normalizer implements soask.Normalizer at compile time.
var _ soask.Normalizer = (*Normalizer)(nil)

// Normalizer renders answer bodies as Markdown.
//
// Relative links such as "/questions/123" are made absolute against the
// site the answer came from, and code blocks carry the highlighting hint
// Stack Overflow puts on them unless it is "lang-none".
type Normalizer struct {
	conv   *converter.Converter
	domain string
	tables bool
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithDomain sets the site URL relative links are resolved against.
// Defaults to DefaultDomain.
func WithDomain(domain string) Option {
	return func(n *Normalizer) {
		n.domain = domain
	}
}

// WithTables controls whether HTML tables become Markdown tables. When
// disabled, table cells are rendered as plain text. Enabled by default.
func WithTables(enabled bool) Option {
	return func(n *Normalizer) {
		n.tables = enabled
	}
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		domain: DefaultDomain,
		tables: true,
	}
	for _, opt := range opts {
		opt(n)
	}

	plugins := []converter.Plugin{
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	}
	if n.tables {
		// Answer tables often lack <th> rows and put <br> inside cells.
		plugins = append(plugins, table.NewTablePlugin(
			table.WithHeaderPromotion(true),
			table.WithNewlineBehavior(table.NewlineBehaviorPreserve),
			table.WithSkipEmptyRows(true),
		))
	}
	n.conv = converter.NewConverter(converter.WithPlugins(plugins...))

	return n
}

// Normalize transforms an HTML answer body into Markdown.
func (n *Normalizer) Normalize(body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", soask.Errorf(soask.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", soask.Errorf(soask.EINVALID, "failed to parse HTML: %v", err)
	}
	// "lang-none" marks a block Stack Overflow deliberately leaves unhighlighted.
	doc.Find("pre.lang-none").RemoveClass("lang-none")

	var opts []converter.ConvertOptionFunc
	if n.domain != "" {
		opts = append(opts, converter.WithDomain(n.domain))
	}

	result, err := n.conv.ConvertNode(doc.Nodes[0], opts...)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(result)), nil
}
