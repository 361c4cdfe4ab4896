// Package fs provides file-based storage for transcripts.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/soask"
)

// FormatTranscript renders a transcript as the plain text file format:
// the question, the matched question identifiers, each answer with its
// votes, and the synthesized answer.
func FormatTranscript(t *soask.Transcript) string {
	ids := make([]string, len(t.QuestionIDs))
	for i, id := range t.QuestionIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}

	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(t.Question)
	b.WriteString("\nStack Overflow Question ID: ")
	b.WriteString(strings.Join(ids, ", "))
	b.WriteString("\n\n")
	for i, a := range t.Answers {
		fmt.Fprintf(&b, "Answer %d (Votes: %d):\n", i+1, a.Score)
		b.WriteString(a.CleanedText)
		b.WriteString("\n\n")
	}
	b.WriteString("LLM Simplified Answer:\n")
	b.WriteString(t.Synthesis)
	b.WriteString("\n")
	return b.String()
}

// Ensure TranscriptWriter implements soask.TranscriptWriter at compile time.
var _ soask.TranscriptWriter = (*TranscriptWriter)(nil)

// TranscriptWriter writes each transcript to the same file, replacing the
// previous run. The file is written beside its destination and renamed into
// place so readers never see a partial transcript.
type TranscriptWriter struct {
	path string
}

// NewTranscriptWriter creates a new TranscriptWriter for path.
// An empty path selects soask.DefaultTranscriptPath.
func NewTranscriptWriter(path string) *TranscriptWriter {
	if path == "" {
		path = soask.DefaultTranscriptPath
	}
	return &TranscriptWriter{path: path}
}

// Path returns the file transcripts are written to.
func (w *TranscriptWriter) Path() string {
	return w.path
}

// WriteTranscript replaces the transcript file with t.
func (w *TranscriptWriter) WriteTranscript(ctx context.Context, t *soask.Transcript) error {
	if err := t.Validate(); err != nil {
		return err
	}

	// Create parent directories
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(FormatTranscript(t)), 0644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, w.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
