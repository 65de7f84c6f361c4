package domain

// MetricStatus tells whether metrics were computed or zeroed.
type MetricStatus string

const (
	MetricStatusOK       MetricStatus = "ok"
	MetricStatusFallback MetricStatus = "fallback"
)

// Metrics holds the individual lexical measurements.
type Metrics struct {
	LexicalDiversity float64 `json:"lexical_diversity"`
	RepetitionRatio  float64 `json:"repetition_ratio"`
	LengthScore      float64 `json:"length_score"`
	WordCount        int     `json:"word_count"`
}

// MetricReport is the deterministic scoring of a document. It is never
// mutated once built.
type MetricReport struct {
	CompositeScore float64      `json:"composite_score"`
	Metrics        Metrics      `json:"metrics"`
	DomainKeywords string       `json:"domain_keywords"`
	Reasoning      string       `json:"reasoning"`
	Status         MetricStatus `json:"status"`

	// FallbackKind says why a fallback report was produced.
	FallbackKind ErrorKind `json:"-"`
}

// Fallback reports whether the metrics were zeroed.
func (r MetricReport) Fallback() bool {
	return r.Status == MetricStatusFallback
}
