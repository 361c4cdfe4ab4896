// Package openai implements soask.Synthesizer against an OpenAI-compatible
// chat completions endpoint, decoding the streamed response as it arrives.
package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/soask"
)

const (
	// DefaultEndpoint is the chat completions endpoint used by default.
	DefaultEndpoint = "https://llmfoundry.straive.com/openai/v1/chat/completions"

	// DefaultModel is the model requested by default.
	DefaultModel = "gpt-4o-mini"

	// DefaultProject is the project tag appended to the bearer token.
	DefaultProject = "soask"

	// DefaultTimeout bounds a whole request including the streamed body.
	DefaultTimeout = 5 * time.Minute
)

// maxLineSize is the longest stream line accepted.
const maxLineSize = 1024 * 1024

// maxErrorBody caps how much of an error response is kept in the message.
const maxErrorBody = 4096

// Ensure Synthesizer implements soask.Synthesizer at compile time.
var _ soask.Synthesizer = (*Synthesizer)(nil)

// Synthesizer sends the synthesis prompt as a single user message and
// accumulates the streamed reply.
type Synthesizer struct {
	client   *http.Client
	endpoint string
	model    string
	token    string
	project  string
	stream   bool
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithEndpoint sets the chat completions URL.
func WithEndpoint(u string) Option {
	return func(s *Synthesizer) {
		s.endpoint = u
	}
}

// WithModel sets the model identifier.
func WithModel(model string) Option {
	return func(s *Synthesizer) {
		s.model = model
	}
}

// WithProject sets the project tag sent with the bearer token.
// An empty tag sends the token alone.
func WithProject(project string) Option {
	return func(s *Synthesizer) {
		s.project = project
	}
}

// WithStream toggles streaming. Streaming is on by default; when off the
// complete answer is delivered in a single callback.
func WithStream(stream bool) Option {
	return func(s *Synthesizer) {
		s.stream = stream
	}
}

// WithTimeout sets the timeout for the whole request.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Synthesizer) {
		s.timeout = d
	}
}

// WithLogger sets the logger that receives stream warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		s.logger = logger
	}
}

// NewSynthesizer creates a new Synthesizer authenticating with token.
// An empty token is sent as-is and left for the endpoint to reject.
func NewSynthesizer(token string, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		endpoint: DefaultEndpoint,
		model:    DefaultModel,
		token:    token,
		project:  DefaultProject,
		stream:   true,
		timeout:  DefaultTimeout,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Timeout: s.timeout,
	}

	return s
}

// Synthesize posts the prompt and returns the accumulated answer once the
// response body closes. fn, if not nil, receives the accumulated text after
// every non-empty delta. A non-2xx response returns EUPSTREAM with the
// status and response body.
func (s *Synthesizer) Synthesize(ctx context.Context, req *soask.SynthesisRequest, fn soask.SynthesisFunc) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	payload, err := json.Marshal(chatRequest{
		Model:    s.model,
		Messages: []message{{Role: "user", Content: req.Prompt()}},
		Stream:   s.stream,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.credentials())
	if s.stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", soask.Errorf(soask.EUPSTREAM, "HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if !s.stream {
		return s.readCompletion(resp.Body, fn)
	}
	return s.readStream(resp.Body, fn)
}

func (s *Synthesizer) credentials() string {
	if s.project == "" {
		return s.token
	}
	return s.token + ":" + s.project
}

// readStream accumulates deltas line by line until the body ends.
// Undecodable lines are logged and skipped.
func (s *Synthesizer) readStream(r io.Reader, fn soask.SynthesisFunc) (string, error) {
	var answer strings.Builder

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		delta, err := DecodeLine(line)
		if err != nil {
			if soask.ErrorCode(err) == soask.EUPSTREAM {
				s.logger.Warn("upstream stream error", "err", soask.ErrorMessage(err))
			} else {
				s.logger.Warn("malformed stream chunk", "line", truncate(line, 200), "err", soask.ErrorMessage(err))
			}
			continue
		}
		if delta == "" {
			continue
		}

		answer.WriteString(delta)
		if fn != nil {
			fn(answer.String())
		}
	}
	if err := scanner.Err(); err != nil {
		return answer.String(), fmt.Errorf("stream interrupted: %w", err)
	}

	return answer.String(), nil
}

func (s *Synthesizer) readCompletion(r io.Reader, fn soask.SynthesisFunc) (string, error) {
	var c completion
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return "", soask.Errorf(soask.EMALFORMED, "invalid completion payload: %v", err)
	}
	if c.Error != nil {
		return "", soask.Errorf(soask.EUPSTREAM, "%s", c.Error.Message)
	}

	answer := c.content()
	if answer != "" && fn != nil {
		fn(answer)
	}
	return answer, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
