package vectorizer

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"faq/internal/adapter/analyzer"
)

type fieldsTokenizer struct{}

func (fieldsTokenizer) Tokenize(text string) []string { return strings.Fields(text) }
func (fieldsTokenizer) Name() string                  { return "fields" }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestFit_SmoothedIDF(t *testing.T) {
	v := New(fieldsTokenizer{})

	vocab, matrix, err := v.Fit([]string{"a b", "a c"})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(vocab.Terms(), []string{"a", "b", "c"}) {
		t.Fatalf("expected sorted vocabulary, got %v", vocab.Terms())
	}

	idxA, _ := vocab.Lookup("a")
	idxB, _ := vocab.Lookup("b")
	if !almostEqual(vocab.IDF(idxA), 1.0) {
		t.Errorf("expected idf(a)=1, got %f", vocab.IDF(idxA))
	}
	wantIDF := math.Log(3.0/2.0) + 1
	if !almostEqual(vocab.IDF(idxB), wantIDF) {
		t.Errorf("expected idf(b)=%f, got %f", wantIDF, vocab.IDF(idxB))
	}

	row := matrix.Rows[0].Dense(matrix.Dim)
	norm := math.Sqrt(1 + wantIDF*wantIDF)
	if !almostEqual(row[idxA], 1/norm) || !almostEqual(row[idxB], wantIDF/norm) {
		t.Errorf("unexpected row weights: %v", row)
	}
	if row[2] != 0 {
		t.Errorf("expected zero weight for absent term, got %f", row[2])
	}
}

func TestFit_RowsAreNormalized(t *testing.T) {
	v := New(analyzer.NewBigramTokenizer())

	_, matrix, err := v.Fit([]string{
		"你們的營業時間是？ 我們的客服時間為週一至週五",
		"如何申請退貨？ 請於到貨 7 天內申請退貨",
		"運費如何計算？ 單筆訂單滿 NT$ 1000 免運",
	})
	if err != nil {
		t.Fatal(err)
	}

	if matrix.NumRows() != 3 {
		t.Fatalf("expected 3 rows, got %d", matrix.NumRows())
	}
	for i, row := range matrix.Rows {
		if !almostEqual(row.Norm(), 1.0) {
			t.Errorf("row %d: expected unit norm, got %f", i, row.Norm())
		}
		for _, x := range row.Values {
			if x <= 0 {
				t.Errorf("row %d: expected positive weights, got %f", i, x)
			}
		}
	}
}

func TestFit_Deterministic(t *testing.T) {
	v := New(analyzer.NewBigramTokenizer())
	docs := []string{"如何申請退貨？", "運費如何計算？", "可以開立發票嗎？"}

	vocab1, m1, err := v.Fit(docs)
	if err != nil {
		t.Fatal(err)
	}
	vocab2, m2, err := v.Fit(docs)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(vocab1.Terms(), vocab2.Terms()) {
		t.Error("vocabulary differs between fits")
	}
	if !reflect.DeepEqual(m1, m2) {
		t.Error("document matrix differs between fits")
	}
}

func TestFit_Errors(t *testing.T) {
	v := New(fieldsTokenizer{})

	if _, _, err := v.Fit(nil); !errors.Is(err, ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
	if _, _, err := v.Fit([]string{"   ", ""}); !errors.Is(err, ErrEmptyVocabulary) {
		t.Errorf("expected ErrEmptyVocabulary, got %v", err)
	}
}

func TestFit_Progress(t *testing.T) {
	var calls []int
	v := New(fieldsTokenizer{}).WithProgress(func(done, total int) {
		if total != 3 {
			t.Errorf("expected total 3, got %d", total)
		}
		calls = append(calls, done)
	})

	if _, _, err := v.Fit([]string{"a", "b", "c"}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(calls, []int{1, 2, 3}) {
		t.Errorf("unexpected progress calls: %v", calls)
	}
}

func TestTransform(t *testing.T) {
	v := New(fieldsTokenizer{})
	vocab, matrix, err := v.Fit([]string{"a b", "a c"})
	if err != nil {
		t.Fatal(err)
	}

	q := v.Transform("b b unknown", vocab)
	if q.Len() != 1 {
		t.Fatalf("expected one in-vocabulary entry, got %d", q.Len())
	}
	if !almostEqual(q.Norm(), 1.0) {
		t.Errorf("expected unit norm, got %f", q.Norm())
	}
	if q.Dot(matrix.Rows[0]) <= q.Dot(matrix.Rows[1]) {
		t.Error("expected query to be closer to the first document")
	}

	oov := v.Transform("x y z", vocab)
	if !oov.IsZero() {
		t.Errorf("expected zero vector for out-of-vocabulary text, got %+v", oov)
	}
	if oov.Dot(matrix.Rows[0]) != 0 {
		t.Error("expected zero similarity for zero vector")
	}
}

func TestSparseVector_Dot(t *testing.T) {
	a := SparseVector{Indices: []int{0, 2, 5}, Values: []float64{1, 2, 3}}
	b := SparseVector{Indices: []int{2, 3, 5}, Values: []float64{4, 1, 2}}

	if got := a.Dot(b); !almostEqual(got, 14) {
		t.Errorf("expected 14, got %f", got)
	}
	if got := a.Dot(SparseVector{}); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}
