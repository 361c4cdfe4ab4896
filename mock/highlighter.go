package mock

import "github.com/fwojciec/soask"

var _ soask.CodeHighlighter = (*CodeHighlighter)(nil)

// CodeHighlighter is a mock implementation of soask.CodeHighlighter.
type CodeHighlighter struct {
	HighlightFn func(language, source string) (string, error)
}

func (h *CodeHighlighter) Highlight(language, source string) (string, error) {
	return h.HighlightFn(language, source)
}
