// Package judgment builds the evaluator prompt and validates what comes back.
package judgment

import (
	"fmt"
	"strings"

	"DocLens/internal/domain"
)

const responseShape = `{
  "originality": {
    "originality_score": float,
    "verdict": "original" | "possibly AI-generated" | "copied",
    "reasoning": str
  },
  "risk_dna": {
    "structure_score": float,
    "risk_level": "low" | "medium" | "high",
    "issues": [str],
    "recommendations": [str]
  }
}`

// BuildPrompt renders the dual originality / structure analysis request.
// document is the text actually sent, which may be a truncated copy of the input.
func BuildPrompt(input domain.JudgeInput, document string) string {
	var b strings.Builder

	b.WriteString("You are an expert in both linguistic originality detection and blockchain governance analysis.\n\n")

	b.WriteString("### Domain Keywords:\n")
	b.WriteString(input.DomainKeywords)
	b.WriteString("\n\n")

	if input.Preview != nil && !input.Preview.Empty() {
		b.WriteString("### Document Title:\n")
		b.WriteString(input.Preview.Title)
		if input.Preview.Description != "" {
			b.WriteString("\n")
			b.WriteString(input.Preview.Description)
		}
		b.WriteString("\n\n")
	}

	if input.FetchError != "" {
		fmt.Fprintf(&b, "### Retrieval Problem:\nThe document could not be retrieved (%s). "+
			"Judge with what is available and reflect the missing content in your scores.\n\n", input.FetchError)
	}

	b.WriteString("### Document Text:\n")
	b.WriteString(document)
	b.WriteString("\n\n")

	m := input.Metrics
	fmt.Fprintf(&b, "### Linguistic Metrics (supporting evidence, status=%s):\n", m.Status)
	fmt.Fprintf(&b, "- composite_score: %.2f\n- lexical_diversity: %.3f\n- repetition_ratio: %.3f\n- length_score: %.3f\n- word_count: %d\n- note: %s\n\n",
		m.CompositeScore, m.Metrics.LexicalDiversity, m.Metrics.RepetitionRatio, m.Metrics.LengthScore, m.Metrics.WordCount, m.Reasoning)

	b.WriteString(`Perform a dual analysis:

1. **Originality Evaluation**
   - Estimate originality_score (0-1, 1 = very original)
   - Classify verdict: 'original', 'possibly AI-generated', or 'copied'
   - Summarize reasoning (e.g., repetition, tone, style clues)

2. **Structure & Risk Evaluation**
   - structure_score (0-1, 1 = well-organized and logically consistent)
   - risk_level: "low" | "medium" | "high"
   - issues: list of specific detected weaknesses
   - recommendations: list of concrete improvements

Output a **single JSON object** with this structure and no other text:

`)
	b.WriteString(responseShape)
	b.WriteString("\n")

	return b.String()
}
