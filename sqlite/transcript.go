package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/soask"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ soask.TranscriptService = (*TranscriptService)(nil)

// TranscriptService implements soask.TranscriptService using SQLite.
// Every write appends a new run; nothing is updated in place.
type TranscriptService struct {
	db *DB
}

// NewTranscriptService creates a new TranscriptService.
func NewTranscriptService(db *DB) *TranscriptService {
	return &TranscriptService{db: db}
}

// hashQuestion returns the hex xxHash of a question with surrounding
// whitespace removed. It keys the question lookup index.
func hashQuestion(question string) string {
	var b [8]byte
	h := xxhash.Sum64String(strings.TrimSpace(question))
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

// WriteTranscript archives t with its answers. An empty ID is replaced with
// a generated one and a zero CreatedAt with the current time.
func (s *TranscriptService) WriteTranscript(ctx context.Context, t *soask.Transcript) error {
	if err := t.Validate(); err != nil {
		return err
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transcripts (id, question, question_hash, question_ids, synthesis, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Question, hashQuestion(t.Question), joinIDs(t.QuestionIDs), t.Synthesis,
		t.CreatedAt.UTC().Format(timestampFormat))
	if err != nil {
		return err
	}

	for i, a := range t.Answers {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO transcript_answers (transcript_id, position, answer_id, question_id, score, is_accepted, raw_body, cleaned_text)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, t.ID, i, a.ID, a.QuestionID, a.Score, a.IsAccepted, a.RawBody, a.CleanedText)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindTranscriptByID retrieves a transcript and its answers by ID.
func (s *TranscriptService) FindTranscriptByID(ctx context.Context, id string) (*soask.Transcript, error) {
	t, err := scanTranscript(s.db.QueryRowContext(ctx, `
		SELECT id, question, question_ids, synthesis, created_at
		FROM transcripts
		WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, soask.Errorf(soask.ENOTFOUND, "transcript not found")
	}
	if err != nil {
		return nil, err
	}

	if t.Answers, err = s.findAnswers(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// FindTranscripts retrieves transcripts matching the filter, newest first.
func (s *TranscriptService) FindTranscripts(ctx context.Context, filter soask.TranscriptFilter) ([]*soask.Transcript, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, question, question_ids, synthesis, created_at FROM transcripts WHERE 1=1")

	if filter.Question != nil {
		query.WriteString(" AND question_hash = ? AND trim(question) = ?")
		args = append(args, hashQuestion(*filter.Question), strings.TrimSpace(*filter.Question))
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transcripts []*soask.Transcript
	for rows.Next() {
		t, err := scanTranscript(rows)
		if err != nil {
			return nil, err
		}
		transcripts = append(transcripts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range transcripts {
		if t.Answers, err = s.findAnswers(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	return transcripts, nil
}

func (s *TranscriptService) findAnswers(ctx context.Context, transcriptID string) (soask.AnswerSet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT answer_id, question_id, score, is_accepted, raw_body, cleaned_text
		FROM transcript_answers
		WHERE transcript_id = ?
		ORDER BY position ASC
	`, transcriptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers soask.AnswerSet
	for rows.Next() {
		var a soask.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Score, &a.IsAccepted, &a.RawBody, &a.CleanedText); err != nil {
			return nil, err
		}
		answers = append(answers, &a)
	}
	return answers, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTranscript(row scanner) (*soask.Transcript, error) {
	var t soask.Transcript
	var ids, createdAt string

	if err := row.Scan(&t.ID, &t.Question, &ids, &t.Synthesis, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if t.QuestionIDs, err = splitIDs(ids); err != nil {
		return nil, fmt.Errorf("failed to parse question_ids: %w", err)
	}
	if t.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &t, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func splitIDs(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, len(parts))
	for i, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
