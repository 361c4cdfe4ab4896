package soask

import (
	"fmt"
	"strings"
)

const promptTemplate = `You are an expert in simplifying technical content while maintaining accuracy. Given a technical question and answers extracted from Stack Overflow, combine and present them in a clear, easy-to-understand manner without altering their core meaning.

Instructions:
- Summarize key insights from all answers into a single, well-structured response.
- Ensure clarity by avoiding unnecessary jargon while preserving technical accuracy.
- If the answers contain code, format it neatly in fenced code blocks and add brief explanations if needed.
- If multiple solutions exist, present them logically and indicate any differences or trade-offs.
- Keep the response concise but informative.

Input:
Question: %s
Extracted Answers:
%s
`

// FormatAnswers formats answers for display or LLM context.
// Answers are numbered by rank and separated by blank lines.
func FormatAnswers(answers AnswerSet) string {
	if len(answers) == 0 {
		return ""
	}

	parts := make([]string, 0, len(answers))
	for i, a := range answers {
		parts = append(parts, fmt.Sprintf("Answer %d (Votes: %d):\n%s", i+1, a.Score, a.CleanedText))
	}

	return strings.Join(parts, "\n\n")
}

// BuildPrompt builds the instruction prompt for synthesizing one answer
// from the question and its source answers.
func BuildPrompt(question string, answers AnswerSet) string {
	return fmt.Sprintf(promptTemplate, question, FormatAnswers(answers))
}
