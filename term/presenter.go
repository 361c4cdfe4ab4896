// Package term implements soask.Presenter for terminals.
//
// Output is styled with lipgloss. When writing to a terminal, code blocks
// are highlighted and the synthesis is redrawn in place as it streams; any
// other writer receives plain text where the streamed synthesis is written
// as a sequence of appended suffixes.
package term

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/soask"
	"github.com/muesli/termenv"
	xterm "golang.org/x/term"
)

// defaultWidth is assumed when the terminal size cannot be read.
const defaultWidth = 80

// Ensure Presenter implements soask.Presenter at compile time.
var _ soask.Presenter = (*Presenter)(nil)

// Presenter writes pipeline progress to a terminal or plain writer.
type Presenter struct {
	w           io.Writer
	out         *termenv.Output
	renderer    *lipgloss.Renderer
	highlighter soask.CodeHighlighter
	tty         bool
	width       int

	header  lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style

	// Synthesis progress: the text written so far and, on a terminal, the
	// number of screen rows it occupies.
	synthesizing bool
	shown        string
	rows         int
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithHighlighter sets the highlighter used for code blocks on terminals.
func WithHighlighter(h soask.CodeHighlighter) Option {
	return func(p *Presenter) {
		p.highlighter = h
	}
}

// WithTTY overrides terminal detection.
func WithTTY(tty bool) Option {
	return func(p *Presenter) {
		p.tty = tty
	}
}

// WithWidth overrides the terminal width used to track redrawn rows.
func WithWidth(width int) Option {
	return func(p *Presenter) {
		p.width = width
	}
}

// NewPresenter creates a Presenter writing to w.
func NewPresenter(w io.Writer, opts ...Option) *Presenter {
	p := &Presenter{
		w:        w,
		out:      termenv.NewOutput(w),
		renderer: lipgloss.NewRenderer(w),
		width:    defaultWidth,
	}
	if f, ok := w.(*os.File); ok {
		fd := int(f.Fd())
		p.tty = xterm.IsTerminal(fd)
		if width, _, err := xterm.GetSize(fd); err == nil && width > 0 {
			p.width = width
		}
	}
	for _, opt := range opts {
		opt(p)
	}

	p.header = p.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	p.label = p.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))
	p.muted = p.renderer.NewStyle().Faint(true)
	p.success = p.renderer.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	return p
}

// ShowQuestion prints the question being asked.
func (p *Presenter) ShowQuestion(question string) {
	fmt.Fprintf(p.w, "%s %s\n", p.header.Render("Question:"), question)
}

// ShowMatch prints the identifiers of the matched questions.
func (p *Presenter) ShowMatch(questionIDs []int64) {
	fmt.Fprintf(p.w, "%s %s\n\n", p.label.Render("Stack Overflow Question ID:"), FormatIDs(questionIDs))
}

// ShowAnswers prints each answer once, in order.
func (p *Presenter) ShowAnswers(answers soask.AnswerSet) {
	for i, a := range answers {
		title := fmt.Sprintf("Answer %d (Votes: %d):", i+1, a.Score)
		if a.IsAccepted {
			title += " " + p.success.Render("accepted")
		}
		fmt.Fprintln(p.w, p.label.Render(title))
		p.writeText(a.CleanedText)
		fmt.Fprint(p.w, "\n\n")
	}
}

// ShowSynthesis updates the synthesis with the text accumulated so far.
func (p *Presenter) ShowSynthesis(accumulated string) {
	p.startSynthesis()

	if !p.tty {
		p.appendSuffix(accumulated)
		return
	}

	p.clearSynthesis()
	fmt.Fprint(p.w, accumulated)
	p.shown = accumulated
	p.rows = p.countRows(accumulated)
}

// EndSynthesis prints the final synthesis, highlighted on terminals.
func (p *Presenter) EndSynthesis(final string) {
	p.startSynthesis()

	if p.tty {
		p.clearSynthesis()
		p.writeText(final)
	} else {
		p.appendSuffix(final)
	}
	fmt.Fprintln(p.w)

	p.synthesizing = false
	p.shown = ""
	p.rows = 0
}

// ShowSaved reports where the transcript was written.
func (p *Presenter) ShowSaved(path string) {
	fmt.Fprintf(p.w, "\n%s\n", p.muted.Render("Saved to "+path))
}

func (p *Presenter) startSynthesis() {
	if p.synthesizing {
		return
	}
	p.synthesizing = true
	fmt.Fprintln(p.w, p.header.Render("LLM Simplified Answer:"))
}

// appendSuffix writes the part of text not yet written. Text that does not
// extend what was shown is written in full on a new line.
func (p *Presenter) appendSuffix(text string) {
	if rest, ok := strings.CutPrefix(text, p.shown); ok {
		fmt.Fprint(p.w, rest)
	} else {
		fmt.Fprint(p.w, "\n"+text)
	}
	p.shown = text
}

// clearSynthesis erases the rows of the partially drawn synthesis.
func (p *Presenter) clearSynthesis() {
	if p.shown == "" {
		return
	}
	p.out.ClearLines(p.rows - 1)
	fmt.Fprint(p.w, "\r")
}

// countRows returns the number of screen rows text occupies once wrapped.
func (p *Presenter) countRows(text string) int {
	rows := 0
	for _, line := range strings.Split(text, "\n") {
		w := lipgloss.Width(line)
		if w == 0 {
			rows++
			continue
		}
		rows += (w + p.width - 1) / p.width
	}
	return rows
}

// writeText writes prose and code. On terminals code blocks are passed
// through the highlighter; elsewhere text is written unchanged.
func (p *Presenter) writeText(text string) {
	if !p.tty || p.highlighter == nil {
		fmt.Fprint(p.w, text)
		return
	}

	for _, seg := range soask.SplitCodeBlocks(text) {
		if !seg.IsCode() {
			fmt.Fprint(p.w, seg.Text)
			continue
		}
		fmt.Fprintln(p.w, p.muted.Render(seg.Language))
		highlighted, err := p.highlighter.Highlight(seg.Language, seg.Text)
		if err != nil {
			highlighted = seg.Text
		}
		fmt.Fprint(p.w, highlighted)
	}
}

// FormatIDs joins question identifiers with ", ".
func FormatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
