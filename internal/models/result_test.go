package models

import (
	"encoding/json"
	"testing"
)

func TestBreakdownMarshalKeepsDeclarationOrder(t *testing.T) {
	b := Breakdown{
		{Criterion: "Clarity", Contribution: 16.625},
		{Criterion: "Accuracy", Contribution: 12.6},
		{Criterion: "Use of Evidence", Contribution: 6.75},
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"Clarity":16.625,"Accuracy":12.6,"Use of Evidence":6.75}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}
}

func TestBreakdownMarshalEmpty(t *testing.T) {
	data, err := json.Marshal(Breakdown{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("got %s, want {}", data)
	}
}

func TestEvaluationResultNullGrade(t *testing.T) {
	data, err := json.Marshal(EvaluationResult{ID: "x", Breakdown: Breakdown{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := decoded["grade"]; !ok || v != nil {
		t.Fatalf("grade should be present and null, got %v (present=%v)", v, ok)
	}
}
