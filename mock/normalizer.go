package mock

import "github.com/fwojciec/soask"

var _ soask.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of soask.Normalizer.
type Normalizer struct {
	NormalizeFn func(html string) (string, error)
}

func (n *Normalizer) Normalize(html string) (string, error) {
	return n.NormalizeFn(html)
}
