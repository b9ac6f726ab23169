package services

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRubricLevelOrder(t *testing.T) {
	want := []struct {
		name string
		min  float64
	}{
		{"Excellent", 90}, {"Good", 75}, {"Satisfactory", 55}, {"Fair", 40}, {"Poor", 0},
	}

	levels := DefaultRubric().Levels()
	if len(levels) != len(want) {
		t.Fatalf("got %d levels, want %d", len(levels), len(want))
	}
	for i, w := range want {
		if levels[i].Name != w.name || levels[i].MinScore != w.min {
			t.Fatalf("level %d = %s(%v), want %s(%v)", i, levels[i].Name, levels[i].MinScore, w.name, w.min)
		}
	}
}

// Every level currently carries the same weights. A change here means the
// grade-independent weighting in the evaluator needs revisiting.
func TestDefaultRubricWeightsIdenticalAcrossLevels(t *testing.T) {
	levels := DefaultRubric().Levels()
	ref := levels[0].Criteria
	if len(ref) != 9 {
		t.Fatalf("got %d criteria, want 9", len(ref))
	}
	for _, l := range levels[1:] {
		if len(l.Criteria) != len(ref) {
			t.Fatalf("level %s has %d criteria, want %d", l.Name, len(l.Criteria), len(ref))
		}
		for i, c := range l.Criteria {
			if c.Name != ref[i].Name || c.Weight != ref[i].Weight {
				t.Fatalf("level %s criterion %d = %s/%v, want %s/%v", l.Name, i, c.Name, c.Weight, ref[i].Name, ref[i].Weight)
			}
		}
	}
}

func TestDefaultRubricCriteriaOrder(t *testing.T) {
	want := []string{"Accuracy", "Completeness", "Relevance", "Clarity", "Depth", "Organization", "Use of Evidence", "Grammar and Spelling", "Sentiment"}
	level, ok := DefaultRubric().Level("Excellent")
	if !ok {
		t.Fatalf("Excellent level missing")
	}
	for i, name := range want {
		if level.Criteria[i].Name != name {
			t.Fatalf("criterion %d = %s, want %s", i, level.Criteria[i].Name, name)
		}
	}
}

// The shipped weights do not sum to 1. The value is pinned so that any change
// to the table is deliberate.
func TestDefaultRubricWeightSumIsNotNormalised(t *testing.T) {
	for _, l := range DefaultRubric().Levels() {
		if sum := l.WeightSum(); math.Abs(sum-1.025) > 1e-9 {
			t.Fatalf("level %s weight sum = %v, want 1.025", l.Name, sum)
		}
	}
}

func TestResolveGrade(t *testing.T) {
	r := DefaultRubric()
	tests := []struct {
		score float64
		grade string
		ok    bool
	}{
		{100, "Excellent", true},
		{90, "Excellent", true},
		{89.999, "Good", true},
		{86.15, "Good", true},
		{75, "Good", true},
		{74.99, "Satisfactory", true},
		{55, "Satisfactory", true},
		{40, "Fair", true},
		{39.5, "Poor", true},
		{0, "Poor", true},
		{-0.01, "", false},
		{-50, "", false},
	}

	for _, tt := range tests {
		grade, ok := r.ResolveGrade(tt.score)
		if grade != tt.grade || ok != tt.ok {
			t.Errorf("ResolveGrade(%v) = %q,%v want %q,%v", tt.score, grade, ok, tt.grade, tt.ok)
		}
	}
}

func TestResolveGradeMonotonic(t *testing.T) {
	r := DefaultRubric()
	rank := map[string]int{"Poor": 0, "Fair": 1, "Satisfactory": 2, "Good": 3, "Excellent": 4}

	prev := -1
	for s := 0.0; s <= 100.0; s += 0.25 {
		grade, ok := r.ResolveGrade(s)
		if !ok {
			t.Fatalf("score %v has no grade", s)
		}
		if rank[grade] < prev {
			t.Fatalf("grade dropped to %s at score %v", grade, s)
		}
		prev = rank[grade]
	}
}

func TestRubricIsNotMutatedThroughAccessors(t *testing.T) {
	r := DefaultRubric()
	level, _ := r.Level("Good")
	level.Criteria[0].Weight = 0.9
	levels := r.Levels()
	levels[0].MinScore = 10

	again, _ := r.Level("Good")
	if again.Criteria[0].Weight != 0.14 {
		t.Fatalf("rubric weight was mutated: %v", again.Criteria[0].Weight)
	}
	if g, _ := r.ResolveGrade(50); g != "Fair" {
		t.Fatalf("rubric thresholds were mutated, 50 resolved to %s", g)
	}
}

func TestNewRubricValidation(t *testing.T) {
	crit := []Criterion{{Name: "Accuracy", Weight: 0.5}}
	tests := []struct {
		name   string
		levels []RubricLevel
	}{
		{"empty", nil},
		{"unnamed level", []RubricLevel{{MinScore: 0, Criteria: crit}}},
		{"duplicate level", []RubricLevel{{Name: "A", Criteria: crit}, {Name: "A", Criteria: crit}}},
		{"threshold above 100", []RubricLevel{{Name: "A", MinScore: 101, Criteria: crit}}},
		{"no criteria", []RubricLevel{{Name: "A"}}},
		{"weight above 1", []RubricLevel{{Name: "A", Criteria: []Criterion{{Name: "X", Weight: 1.5}}}}},
		{"duplicate criterion", []RubricLevel{{Name: "A", Criteria: []Criterion{{Name: "X", Weight: 0.1}, {Name: "X", Weight: 0.1}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRubric(tt.levels); !errors.Is(err, ErrInvalidRubric) {
				t.Fatalf("expected ErrInvalidRubric, got %v", err)
			}
		})
	}
}

func TestLoadRubric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	content := `levels:
  - name: Pass
    min_score: 50
    criteria:
      - {name: Accuracy, weight: 0.6}
      - {name: Clarity, weight: 0.4}
  - name: Fail
    min_score: 0
    criteria:
      - {name: Accuracy, weight: 0.6}
      - {name: Clarity, weight: 0.4}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rubric: %v", err)
	}

	r, err := LoadRubric(path)
	if err != nil {
		t.Fatalf("LoadRubric: %v", err)
	}
	level, ok := r.Level("Pass")
	if !ok || len(level.Criteria) != 2 || level.Criteria[1].Name != "Clarity" {
		t.Fatalf("unexpected level: %+v", level)
	}
	if math.Abs(level.WeightSum()-1) > 1e-9 {
		t.Fatalf("weight sum = %v", level.WeightSum())
	}
	if g, _ := r.ResolveGrade(49.9); g != "Fail" {
		t.Fatalf("49.9 resolved to %s", g)
	}
}

func TestLoadRubricRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	if err := os.WriteFile(path, []byte("levels: []\n"), 0o644); err != nil {
		t.Fatalf("write rubric: %v", err)
	}
	if _, err := LoadRubric(path); !errors.Is(err, ErrInvalidRubric) {
		t.Fatalf("expected ErrInvalidRubric, got %v", err)
	}
	if _, err := LoadRubric(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
