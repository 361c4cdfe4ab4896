package openai

import (
	"encoding/json"
	"strings"

	"github.com/fwojciec/soask"
)

// doneSentinel marks the end of a stream. It carries no content.
const doneSentinel = "[DONE]"

// DecodeLine decodes one line of a streamed chat completion into the text
// delta it carries. Blank lines, SSE comments and the [DONE] sentinel yield
// an empty delta. A line that is not valid JSON returns EMALFORMED; callers
// are expected to skip it and keep reading.
func DecodeLine(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, ":") {
		return "", nil
	}

	data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
	if data == "" || data == doneSentinel {
		return "", nil
	}

	var chunk streamChunk
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return "", soask.Errorf(soask.EMALFORMED, "invalid JSON: %v", err)
	}
	if chunk.Error != nil {
		return "", soask.Errorf(soask.EUPSTREAM, "stream error: %s", chunk.Error.Message)
	}

	return chunk.content(), nil
}

// streamChunk is one server-sent event of a streamed chat completion.
type streamChunk struct {
	Choices []struct {
		Delta *struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

func (c *streamChunk) content() string {
	if len(c.Choices) == 0 || c.Choices[0].Delta == nil {
		return ""
	}
	return c.Choices[0].Delta.Content
}

// completion is the body of a non-streamed chat completion.
type completion struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

func (c *completion) content() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Message.Content
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
