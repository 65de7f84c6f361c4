package judgment

import (
	"encoding/json"
	"errors"
	"strings"

	json5 "github.com/yosuke-furukawa/json5/encoding/json5"

	"DocLens/internal/domain"
)

type wireOriginality struct {
	OriginalityScore *float64 `json:"originality_score"`
	Verdict          *string  `json:"verdict"`
	Reasoning        *string  `json:"reasoning"`
}

type wireRiskDNA struct {
	StructureScore  *float64 `json:"structure_score"`
	RiskLevel       *string  `json:"risk_level"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

type wireReport struct {
	Originality *wireOriginality `json:"originality"`
	RiskDNA     *wireRiskDNA     `json:"risk_dna"`
}

// ParseEvaluation decodes model output into a validated EvaluationReport.
// Surrounding prose and Markdown fences are ignored; strict JSON is tried
// first, then JSON5. Any failure is a judgment_format_error.
func ParseEvaluation(raw string) (domain.EvaluationReport, error) {
	payload, ok := extractObject(raw)
	if !ok {
		return domain.EvaluationReport{}, domain.Errorf(domain.KindJudgmentFormat, "no JSON object in judge output")
	}

	var wire wireReport
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		wire = wireReport{}
		if err5 := json5.Unmarshal([]byte(payload), &wire); err5 != nil {
			return domain.EvaluationReport{}, domain.NewError(domain.KindJudgmentFormat, errors.Join(err, err5))
		}
	}

	report, err := wire.toReport()
	if err != nil {
		return domain.EvaluationReport{}, domain.NewError(domain.KindJudgmentFormat, err)
	}
	if err := report.Validate(); err != nil {
		return domain.EvaluationReport{}, domain.NewError(domain.KindJudgmentFormat, err)
	}
	return report, nil
}

func (w wireReport) toReport() (domain.EvaluationReport, error) {
	if w.Originality == nil {
		return domain.EvaluationReport{}, errors.New("missing originality section")
	}
	if w.RiskDNA == nil {
		return domain.EvaluationReport{}, errors.New("missing risk_dna section")
	}

	o, r := w.Originality, w.RiskDNA
	switch {
	case o.OriginalityScore == nil:
		return domain.EvaluationReport{}, errors.New("missing originality_score")
	case o.Verdict == nil:
		return domain.EvaluationReport{}, errors.New("missing verdict")
	case o.Reasoning == nil:
		return domain.EvaluationReport{}, errors.New("missing reasoning")
	case r.StructureScore == nil:
		return domain.EvaluationReport{}, errors.New("missing structure_score")
	case r.RiskLevel == nil:
		return domain.EvaluationReport{}, errors.New("missing risk_level")
	}

	verdict, err := domain.ParseVerdict(*o.Verdict)
	if err != nil {
		return domain.EvaluationReport{}, err
	}
	level, err := domain.ParseRiskLevel(*r.RiskLevel)
	if err != nil {
		return domain.EvaluationReport{}, err
	}

	return domain.EvaluationReport{
		Originality: domain.Originality{
			OriginalityScore: *o.OriginalityScore,
			Verdict:          verdict,
			Reasoning:        *o.Reasoning,
		},
		RiskDNA: domain.RiskDNA{
			StructureScore:  *r.StructureScore,
			RiskLevel:       level,
			Issues:          r.Issues,
			Recommendations: r.Recommendations,
		},
	}, nil
}

// extractObject returns the outermost {...} span of raw.
func extractObject(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return trimmed[start : end+1], true
}
