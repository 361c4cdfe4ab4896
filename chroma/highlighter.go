// Package chroma implements soask.CodeHighlighter with the chroma syntax
// highlighter, producing ANSI-coloured output for terminals.
package chroma

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fwojciec/soask"
)

const (
	// DefaultStyle is the colour scheme used when none is configured.
	DefaultStyle = "monokai"

	// DefaultFormatter renders 256-colour ANSI escapes.
	DefaultFormatter = "terminal256"
)

// Ensure Highlighter implements soask.CodeHighlighter at compile time.
var _ soask.CodeHighlighter = (*Highlighter)(nil)

// Highlighter colours code blocks by language.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithStyle selects a chroma style by name. Unknown names fall back to
// chroma's default style.
func WithStyle(name string) Option {
	return func(h *Highlighter) {
		h.style = styles.Get(name)
	}
}

// WithFormatter selects a chroma formatter by name, such as "terminal16m"
// for true-colour terminals.
func WithFormatter(name string) Option {
	return func(h *Highlighter) {
		h.formatter = formatters.Get(name)
	}
}

// NewHighlighter creates a new Highlighter.
func NewHighlighter(opts ...Option) *Highlighter {
	h := &Highlighter{
		style:     styles.Get(DefaultStyle),
		formatter: formatters.Get(DefaultFormatter),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Highlight returns source coloured for the named language. Unknown or
// generic languages are analysed from the source and fall back to plain
// text.
func (h *Highlighter) Highlight(language, source string) (string, error) {
	it, err := chroma.Coalesce(h.lexer(language, source)).Tokenise(nil, source)
	if err != nil {
		return "", soask.Errorf(soask.EINTERNAL, "failed to tokenise %s code: %v", language, err)
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, it); err != nil {
		return "", soask.Errorf(soask.EINTERNAL, "failed to format %s code: %v", language, err)
	}
	return sb.String(), nil
}

func (h *Highlighter) lexer(language, source string) chroma.Lexer {
	if language != "" && language != soask.DefaultCodeLanguage {
		if l := lexers.Get(language); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(source); l != nil {
		return l
	}
	return lexers.Fallback
}
