package usecase

import (
	"errors"
	"testing"

	"faq/internal/domain"
)

func TestReciprocalRank(t *testing.T) {
	cases := []struct {
		name      string
		retrieved []string
		relevant  string
		want      float64
	}{
		{"first", []string{"a", "b", "c"}, "a", 1.0},
		{"second", []string{"x", "a", "c"}, "a", 0.5},
		{"third", []string{"x", "y", "a"}, "a", 0.333},
		{"missing", []string{"x", "y", "z"}, "a", 0.0},
		{"empty", nil, "a", 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ReciprocalRank(tc.retrieved, tc.relevant)
			if diff := got - tc.want; diff > 0.01 || diff < -0.01 {
				t.Errorf("reciprocal rank = %.3f, want %.3f", got, tc.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	e := newTestEngine(t)
	kb := domain.DefaultKnowledgeBase()

	cases := []EvalCase{
		{Query: "營業時間", Expected: kb[0].Answer},
		{Query: "如何申請退貨？", Expected: kb[1].Answer},
		{Query: "zzzz", Expected: kb[3].Answer},
	}

	report, err := Evaluate(e, cases, 2, 0.3)
	if err != nil {
		t.Fatal(err)
	}

	if report.Cases != 3 || len(report.Outcomes) != 3 {
		t.Fatalf("unexpected report size: %+v", report)
	}
	if report.Outcomes[0].Rank != 1 || report.Outcomes[1].Rank != 1 {
		t.Errorf("expected first two cases at rank 1, got %+v", report.Outcomes)
	}
	if report.Outcomes[2].Rank != 0 || report.Outcomes[2].Found {
		t.Errorf("expected unknown query to miss, got %+v", report.Outcomes[2])
	}

	want := 2.0 / 3.0
	for name, got := range map[string]float64{
		"hit@1":    report.HitAt1,
		"hit@k":    report.HitAtK,
		"mrr":      report.MRR,
		"coverage": report.Coverage,
	} {
		if diff := got - want; diff > 0.01 || diff < -0.01 {
			t.Errorf("%s = %.3f, want %.3f", name, got, want)
		}
	}
}

func TestEvaluate_Errors(t *testing.T) {
	e := newTestEngine(t)

	if _, err := Evaluate(e, nil, 0, 0.3); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}

	report, err := Evaluate(e, []EvalCase{{Query: " ", Expected: "x"}}, 2, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if report.Outcomes[0].Err == "" || report.HitAtK != 0 {
		t.Errorf("expected blank query to be recorded as failed, got %+v", report.Outcomes[0])
	}

	e.Load(nil)
	if _, err := Evaluate(e, []EvalCase{{Query: "發票", Expected: "x"}}, 2, 0.3); !errors.Is(err, domain.ErrEmptyKnowledgeBase) {
		t.Errorf("expected ErrEmptyKnowledgeBase, got %v", err)
	}
}
