package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type ScoreParseMode string

const (
	// ParseStrict requires one labeled score line per criterion.
	ParseStrict ScoreParseMode = "strict"
	// ParseLenient pairs every number found in the reply with the criteria by position.
	ParseLenient ScoreParseMode = "lenient"
)

var ErrScoreShape = errors.New("model reply does not contain the expected scores")

// ScoreShapeError reports which criteria could not be read from a model reply.
type ScoreShapeError struct {
	Missing    []string
	OutOfRange []string
}

func (e *ScoreShapeError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.OutOfRange) > 0 {
		parts = append(parts, "out of range "+strings.Join(e.OutOfRange, ", "))
	}
	return fmt.Sprintf("%s: %s", ErrScoreShape.Error(), strings.Join(parts, "; "))
}

func (e *ScoreShapeError) Is(target error) bool {
	return target == ErrScoreShape
}

var (
	numberPattern       = regexp.MustCompile(`-?\d+`)
	scoresHeaderPattern = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(ScoresHeader))
)

// ExtractScores returns every integer literal in text, in order of appearance.
// Numbers inside prose, headers or percentages are included. A literal too
// large for a float64 keeps its position as +Inf or -Inf.
func ExtractScores(text string) []float64 {
	matches := numberPattern.FindAllString(text, -1)
	scores := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			continue
		}
		scores = append(scores, v)
	}
	return scores
}

func labeledScorePattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t>*_#-]*(?:\d+[.)][ \t]*)?[*_]*` +
		regexp.QuoteMeta(name) +
		`[*_]*[ \t]*(?:\([^)\n]*\))?[ \t]*[*_]*[ \t]*[:=][ \t]*[*_]*[ \t]*(-?\d+(?:\.\d+)?)`)
}

// ParseLabeledScores reads "Name: N" lines for each criterion and returns the
// scores in criteria order. Only the text after the last SCORES: header is
// considered when the header is present.
func ParseLabeledScores(text string, criteria []Criterion) ([]float64, error) {
	if headers := scoresHeaderPattern.FindAllStringIndex(text, -1); len(headers) > 0 {
		text = text[headers[len(headers)-1][1]:]
	}

	shapeErr := &ScoreShapeError{}
	scores := make([]float64, 0, len(criteria))
	for _, c := range criteria {
		m := labeledScorePattern(c.Name).FindStringSubmatch(text)
		if m == nil {
			shapeErr.Missing = append(shapeErr.Missing, c.Name)
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			shapeErr.Missing = append(shapeErr.Missing, c.Name)
			continue
		}
		if v < 0 || v > 100 {
			shapeErr.OutOfRange = append(shapeErr.OutOfRange, c.Name)
			continue
		}
		scores = append(scores, v)
	}

	if len(shapeErr.Missing) > 0 || len(shapeErr.OutOfRange) > 0 {
		return nil, shapeErr
	}
	return scores, nil
}

type ScoreExtractor struct {
	mode ScoreParseMode
}

func NewScoreExtractor(mode string) (*ScoreExtractor, error) {
	switch ScoreParseMode(mode) {
	case ParseStrict, ParseLenient:
		return &ScoreExtractor{mode: ScoreParseMode(mode)}, nil
	case "":
		return &ScoreExtractor{mode: ParseStrict}, nil
	default:
		return nil, fmt.Errorf("unknown score parse mode %q", mode)
	}
}

func (e *ScoreExtractor) Mode() ScoreParseMode {
	return e.mode
}

// Extract returns the scores to pair with criteria. In lenient mode the
// result may be shorter or longer than criteria and never fails.
func (e *ScoreExtractor) Extract(text string, criteria []Criterion) ([]float64, error) {
	if e.mode == ParseLenient {
		return ExtractScores(text), nil
	}
	return ParseLabeledScores(text, criteria)
}
