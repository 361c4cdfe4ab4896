package mock

import "github.com/fwojciec/soask"

var _ soask.Presenter = (*Presenter)(nil)

// Presenter is a mock implementation of soask.Presenter.
// Nil function fields are skipped.
type Presenter struct {
	ShowQuestionFn  func(question string)
	ShowMatchFn     func(questionIDs []int64)
	ShowAnswersFn   func(answers soask.AnswerSet)
	ShowSynthesisFn func(accumulated string)
	EndSynthesisFn  func(final string)
	ShowSavedFn     func(path string)
}

func (p *Presenter) ShowQuestion(question string) {
	if p.ShowQuestionFn != nil {
		p.ShowQuestionFn(question)
	}
}

func (p *Presenter) ShowMatch(questionIDs []int64) {
	if p.ShowMatchFn != nil {
		p.ShowMatchFn(questionIDs)
	}
}

func (p *Presenter) ShowAnswers(answers soask.AnswerSet) {
	if p.ShowAnswersFn != nil {
		p.ShowAnswersFn(answers)
	}
}

func (p *Presenter) ShowSynthesis(accumulated string) {
	if p.ShowSynthesisFn != nil {
		p.ShowSynthesisFn(accumulated)
	}
}

func (p *Presenter) EndSynthesis(final string) {
	if p.EndSynthesisFn != nil {
		p.EndSynthesisFn(final)
	}
}

func (p *Presenter) ShowSaved(path string) {
	if p.ShowSavedFn != nil {
		p.ShowSavedFn(path)
	}
}
