// Package metrics scores documents with deterministic lexical statistics.
package metrics

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"DocLens/internal/domain"
)

const (
	diversityWeight  = 0.4
	repetitionWeight = 0.3
	lengthWeight     = 0.3

	// log10 of the word count at which the length score saturates (999 words).
	lengthSaturation = 3.0

	noContentReason = "No content to evaluate."
)

// Word characters are Unicode letters and numbers plus underscore.
var wordExpr = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Compute scores document text. It never fails: missing text or an internal
// fault yields the zero-valued fallback report.
func Compute(text *string, keywords string) domain.MetricReport {
	return guard(keywords, func() domain.MetricReport {
		if text == nil {
			return fallback(domain.KindEmptyContent, noContentReason, keywords)
		}
		content := strings.TrimFunc(*text, isBlank)
		if content == "" {
			return fallback(domain.KindEmptyContent, noContentReason, keywords)
		}

		diversity := Diversity(content)
		repetition := Repetition(content)
		length, words := LengthScore(content)

		composite := diversityWeight*diversity + repetitionWeight*(1-repetition) + lengthWeight*length

		return domain.MetricReport{
			CompositeScore: round(composite, 2),
			Metrics: domain.Metrics{
				LexicalDiversity: round(diversity, 3),
				RepetitionRatio:  round(repetition, 3),
				LengthScore:      round(length, 3),
				WordCount:        words,
			},
			DomainKeywords: keywords,
			Reasoning: fmt.Sprintf("Diversity=%.2f, Repetition=%.2f, LengthScore=%.2f, Words=%d",
				diversity, repetition, length, words),
			Status: domain.MetricStatusOK,
		}
	})
}

// Diversity is distinct lowercase tokens over total lowercase tokens.
func Diversity(text string) float64 {
	tokens := foldedTokens(text)
	if len(tokens) == 0 {
		return 0
	}
	return float64(len(frequencies(tokens))) / float64(len(tokens))
}

// Repetition maps the mean occurrences per distinct token onto [0,1]:
// 0 when every token is unique, 1 at eleven or more repeats on average.
func Repetition(text string) float64 {
	tokens := foldedTokens(text)
	if len(tokens) == 0 {
		return 0
	}
	freq := frequencies(tokens)
	sum := 0
	for _, n := range freq {
		sum += n
	}
	avgReps := float64(sum) / float64(len(freq))
	return math.Min((avgReps-1)/10, 1.0)
}

// LengthScore grades word count on a log scale and returns the count too.
// Words are counted on the case-preserved text.
func LengthScore(text string) (float64, int) {
	words := len(wordExpr.FindAllString(text, -1))
	return math.Min(math.Log10(float64(words)+1)/lengthSaturation, 1.0), words
}

func foldedTokens(text string) []string {
	return wordExpr.FindAllString(lower(text), -1)
}

// isBlank also treats the ASCII information separators as whitespace.
func isBlank(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// lower applies full Unicode lowercasing. Unlike strings.ToLower it expands
// U+0130 to "i" plus a combining dot and maps a word-final capital sigma
// to the final form.
func lower(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i, r := range runes {
		switch {
		case r == '\u0130':
			b.WriteString("i\u0307")
		case r == 'Σ' && finalSigma(runes, i):
			b.WriteRune('ς')
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// finalSigma reports whether the sigma at i ends a word: a cased letter
// comes before it and none follows, skipping case-ignorable runes.
func finalSigma(runes []rune, i int) bool {
	before := false
	for j := i - 1; j >= 0; j-- {
		if caseIgnorable(runes[j]) {
			continue
		}
		before = cased(runes[j])
		break
	}
	if !before {
		return false
	}
	for j := i + 1; j < len(runes); j++ {
		if caseIgnorable(runes[j]) {
			continue
		}
		return !cased(runes[j])
	}
	return true
}

func cased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

func caseIgnorable(r rune) bool {
	switch r {
	case '\'', '.', ':', '\u00b7', '\u2019':
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf, unicode.Lm, unicode.Sk)
}

func frequencies(tokens []string) map[string]int {
	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}
	return freq
}

func guard(keywords string, compute func() domain.MetricReport) (report domain.MetricReport) {
	defer func() {
		if r := recover(); r != nil {
			report = fallback(domain.KindMetricComputation, fmt.Sprintf("Error: %v", r), keywords)
		}
	}()
	return compute()
}

func fallback(kind domain.ErrorKind, reason, keywords string) domain.MetricReport {
	return domain.MetricReport{
		DomainKeywords: keywords,
		Reasoning:      reason,
		Status:         domain.MetricStatusFallback,
		FallbackKind:   kind,
	}
}

// round rounds to the given decimal places, ties to even on the exact
// binary value.
func round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
