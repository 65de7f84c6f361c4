package domain

import (
	"fmt"
	"strings"
)

// Verdict classifies the likely provenance of a document.
type Verdict string

const (
	VerdictOriginal   Verdict = "original"
	VerdictPossiblyAI Verdict = "possibly AI-generated"
	VerdictCopied     Verdict = "copied"
)

// RiskLevel grades structural risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

var verdicts = []Verdict{VerdictOriginal, VerdictPossiblyAI, VerdictCopied}

var riskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// ParseVerdict matches a verdict case-insensitively and returns its canonical form.
func ParseVerdict(raw string) (Verdict, error) {
	value := strings.TrimSpace(raw)
	for _, v := range verdicts {
		if strings.EqualFold(value, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown verdict %q", raw)
}

// ParseRiskLevel matches a risk level case-insensitively.
func ParseRiskLevel(raw string) (RiskLevel, error) {
	value := strings.TrimSpace(raw)
	for _, l := range riskLevels {
		if strings.EqualFold(value, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown risk level %q", raw)
}

// Originality is the authorship half of the judgment.
type Originality struct {
	OriginalityScore float64 `json:"originality_score"`
	Verdict          Verdict `json:"verdict"`
	Reasoning        string  `json:"reasoning"`
}

// RiskDNA is the structure and risk half of the judgment.
type RiskDNA struct {
	StructureScore  float64   `json:"structure_score"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Issues          []string  `json:"issues"`
	Recommendations []string  `json:"recommendations"`
}

// EvaluationReport is the judgment step's wire contract.
type EvaluationReport struct {
	Originality Originality `json:"originality"`
	RiskDNA     RiskDNA     `json:"risk_dna"`
}

// Validate checks enums and score ranges.
func (r EvaluationReport) Validate() error {
	if err := checkUnit("originality_score", r.Originality.OriginalityScore); err != nil {
		return err
	}
	if _, err := ParseVerdict(string(r.Originality.Verdict)); err != nil {
		return err
	}
	if err := checkUnit("structure_score", r.RiskDNA.StructureScore); err != nil {
		return err
	}
	if _, err := ParseRiskLevel(string(r.RiskDNA.RiskLevel)); err != nil {
		return err
	}
	if r.RiskDNA.Issues == nil {
		return fmt.Errorf("issues must be a list")
	}
	if r.RiskDNA.Recommendations == nil {
		return fmt.Errorf("recommendations must be a list")
	}
	return nil
}

func checkUnit(name string, v float64) error {
	// NaN fails both comparisons, so test the accepted range positively.
	if v >= 0 && v <= 1 {
		return nil
	}
	return fmt.Errorf("%s %v outside [0,1]", name, v)
}
