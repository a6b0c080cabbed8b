package usecase

import (
	"strings"
)

// EvalCase is one labelled query: the answer a correct retrieval returns.
type EvalCase struct {
	Query    string
	Expected string
}

// EvalOutcome records how one case was answered.
type EvalOutcome struct {
	Case     EvalCase
	Rank     int // 1-based rank of the expected answer, 0 when not retrieved
	TopScore float64
	Found    bool
	Err      string
}

// EvalReport aggregates outcomes over a labelled set.
type EvalReport struct {
	Cases     int
	TopK      int
	Threshold float64
	HitAt1    float64
	HitAtK    float64
	MRR       float64
	Coverage  float64 // share of queries with a best answer above threshold
	Outcomes  []EvalOutcome
}

// Evaluate asks every case against e and scores the rankings.
func Evaluate(e *Engine, cases []EvalCase, topK int, threshold float64) (*EvalReport, error) {
	if err := ValidateParams(topK, threshold); err != nil {
		return nil, err
	}
	if err := e.ensureIndex(); err != nil {
		return nil, err
	}

	report := &EvalReport{
		Cases:     len(cases),
		TopK:      topK,
		Threshold: threshold,
		Outcomes:  make([]EvalOutcome, 0, len(cases)),
	}
	if len(cases) == 0 {
		return report, nil
	}

	var hit1, hitK, rr, covered float64
	for _, c := range cases {
		outcome := EvalOutcome{Case: c}

		answer, err := e.Ask(c.Query, topK, threshold)
		if err != nil {
			outcome.Err = err.Error()
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}

		retrieved := make([]string, len(answer.Candidates))
		for i, cand := range answer.Candidates {
			retrieved[i] = cand.Answer
		}
		expected := strings.TrimSpace(c.Expected)

		recip := ReciprocalRank(retrieved, expected)
		if recip > 0 {
			outcome.Rank = int(1/recip + 0.5)
			hitK++
		}
		if outcome.Rank == 1 {
			hit1++
		}
		rr += recip

		outcome.TopScore = answer.TopScore()
		outcome.Found = answer.Found()
		if outcome.Found {
			covered++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	n := float64(len(cases))
	report.HitAt1 = hit1 / n
	report.HitAtK = hitK / n
	report.MRR = rr / n
	report.Coverage = covered / n
	return report, nil
}

// ReciprocalRank returns 1/rank of relevant in retrieved, 0 when absent.
func ReciprocalRank(retrieved []string, relevant string) float64 {
	for i, r := range retrieved {
		if r == relevant {
			return 1.0 / float64(i+1)
		}
	}
	return 0
}
