package soask

// Normalizer converts an HTML answer body into readable text.
type Normalizer interface {
	// Normalize renders only the visible content of html. Tags and
	// attributes are removed; block boundaries become line breaks and code
	// blocks are kept as fenced regions.
	Normalize(html string) (string, error)
}
