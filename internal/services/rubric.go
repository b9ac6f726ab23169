package services

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidRubric = errors.New("invalid rubric")

type Criterion struct {
	Name        string  `yaml:"name"`
	Weight      float64 `yaml:"weight"`
	Description string  `yaml:"description,omitempty"`
}

type RubricLevel struct {
	Name     string      `yaml:"name"`
	MinScore float64     `yaml:"min_score"`
	Criteria []Criterion `yaml:"criteria"`
}

// WeightSum is not required to be 1; the default table sums to 1.025.
func (l RubricLevel) WeightSum() float64 {
	var sum float64
	for _, c := range l.Criteria {
		sum += c.Weight
	}
	return sum
}

// Rubric is an ordered list of grade levels. Levels are checked in declaration
// order when resolving a grade, so they are expected to be authored from the
// highest threshold to the lowest. A Rubric is never mutated after construction.
type Rubric struct {
	levels []RubricLevel
}

func NewRubric(levels []RubricLevel) (*Rubric, error) {
	cp := make([]RubricLevel, len(levels))
	for i, l := range levels {
		cp[i] = RubricLevel{
			Name:     l.Name,
			MinScore: l.MinScore,
			Criteria: append([]Criterion(nil), l.Criteria...),
		}
	}
	r := &Rubric{levels: cp}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rubric) Validate() error {
	if len(r.levels) == 0 {
		return fmt.Errorf("%w: no levels", ErrInvalidRubric)
	}
	seen := make(map[string]bool, len(r.levels))
	for _, l := range r.levels {
		if l.Name == "" {
			return fmt.Errorf("%w: level without a name", ErrInvalidRubric)
		}
		if seen[l.Name] {
			return fmt.Errorf("%w: duplicate level %q", ErrInvalidRubric, l.Name)
		}
		seen[l.Name] = true
		if l.MinScore < 0 || l.MinScore > 100 {
			return fmt.Errorf("%w: level %q min_score %.2f outside 0-100", ErrInvalidRubric, l.Name, l.MinScore)
		}
		if len(l.Criteria) == 0 {
			return fmt.Errorf("%w: level %q has no criteria", ErrInvalidRubric, l.Name)
		}
		names := make(map[string]bool, len(l.Criteria))
		for _, c := range l.Criteria {
			if c.Name == "" || names[c.Name] {
				return fmt.Errorf("%w: level %q has an empty or duplicate criterion %q", ErrInvalidRubric, l.Name, c.Name)
			}
			names[c.Name] = true
			if c.Weight < 0 || c.Weight > 1 || math.IsNaN(c.Weight) {
				return fmt.Errorf("%w: criterion %q weight %v outside 0-1", ErrInvalidRubric, c.Name, c.Weight)
			}
		}
	}
	return nil
}

// Levels returns a copy of the levels in declaration order.
func (r *Rubric) Levels() []RubricLevel {
	out := make([]RubricLevel, len(r.levels))
	for i, l := range r.levels {
		out[i] = RubricLevel{Name: l.Name, MinScore: l.MinScore, Criteria: append([]Criterion(nil), l.Criteria...)}
	}
	return out
}

func (r *Rubric) Level(name string) (RubricLevel, bool) {
	for _, l := range r.levels {
		if l.Name == name {
			return RubricLevel{Name: l.Name, MinScore: l.MinScore, Criteria: append([]Criterion(nil), l.Criteria...)}, true
		}
	}
	return RubricLevel{}, false
}

// ResolveGrade returns the first level whose threshold is satisfied by score.
// A score below every threshold (only possible for negative scores with the
// default table) resolves to no grade.
func (r *Rubric) ResolveGrade(score float64) (string, bool) {
	for _, l := range r.levels {
		if score >= l.MinScore {
			return l.Name, true
		}
	}
	return "", false
}

// LoadRubric reads a YAML rubric file of the form
//
//	levels:
//	  - name: Excellent
//	    min_score: 90
//	    criteria:
//	      - {name: Accuracy, weight: 0.14}
func LoadRubric(path string) (*Rubric, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rubric file: %w", err)
	}
	var doc struct {
		Levels []RubricLevel `yaml:"levels"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rubric file: %w", err)
	}
	return NewRubric(doc.Levels)
}

var defaultCriteria = []Criterion{
	{Name: "Accuracy", Weight: 0.14, Description: "We need to ensure that the response is factually correct and aligns with industry best practices. It should demonstrate a solid understanding of the subject matter without any major errors."},
	{Name: "Completeness", Weight: 0.175, Description: "The response should cover all essential aspects of the question, providing relevant details and considering various nuances. It's important to strike a balance between being concise and comprehensive."},
	{Name: "Relevance", Weight: 0.08, Description: "Is the response directly focused on the question asked, without getting sidetracked by irrelevant information? It should also show an understanding of the requirements of the role."},
	{Name: "Clarity", Weight: 0.175, Description: "We're looking for a response that is clear, concise, and easy to understand. The candidate should use language that's appropriate for a professional setting and avoid any ambiguity."},
	{Name: "Depth", Weight: 0.09, Description: "Does the response demonstrate a deep understanding of the topic, going beyond surface-level explanations? This is particularly important for complex questions that require insightful analysis."},
	{Name: "Organization", Weight: 0.1, Description: "The response should be well-organized, with a logical flow of ideas and clear transitions between points. This demonstrates effective communication skills."},
	{Name: "Use of Evidence", Weight: 0.09, Description: "Where appropriate, the response should provide evidence to support its claims, whether it's statistics, research findings, case studies, or personal experiences."},
	{Name: "Grammar and Spelling", Weight: 0.1, Description: "We'll also assess the response for grammatical accuracy and spelling errors. A polished response enhances readability and professionalism."},
	{Name: "Sentiment", Weight: 0.075, Description: "Finally, we'll consider the overall tone and emotion conveyed in the response. We're looking for professionalism, confidence, and positivity."},
}

// DefaultRubric returns the built-in five level table. Every level carries the
// same nine weights.
func DefaultRubric() *Rubric {
	thresholds := []struct {
		name string
		min  float64
	}{
		{"Excellent", 90},
		{"Good", 75},
		{"Satisfactory", 55},
		{"Fair", 40},
		{"Poor", 0},
	}

	levels := make([]RubricLevel, 0, len(thresholds))
	for _, t := range thresholds {
		levels = append(levels, RubricLevel{Name: t.name, MinScore: t.min, Criteria: defaultCriteria})
	}

	r, err := NewRubric(levels)
	if err != nil {
		panic(fmt.Sprintf("default rubric: %v", err))
	}
	return r
}
