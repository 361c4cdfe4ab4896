package soask

// Presenter renders pipeline results as they become available.
//
// Answers are always shown before synthesis begins. ShowSynthesis receives
// successively longer prefixes of the final text; EndSynthesis is called once
// with the complete text.
type Presenter interface {
	ShowQuestion(question string)
	ShowMatch(questionIDs []int64)
	ShowAnswers(answers AnswerSet)
	ShowSynthesis(accumulated string)
	EndSynthesis(final string)
	ShowSaved(path string)
}
