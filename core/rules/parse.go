// Package rules parses and evaluates the declarative conditions of the content rule set.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidCondition is returned for conditions that cannot be parsed.
var ErrInvalidCondition = errors.New("invalid condition")

// Operator is a comparison operator.
type Operator string

// Supported operators.
const (
	OpGTE Operator = ">="
	OpLTE Operator = "<="
	OpEQ  Operator = "=="
	OpNEQ Operator = "!="
	OpGT  Operator = ">"
	OpLT  Operator = "<"
)

// Combinator joins the comparisons of a condition.
type Combinator int

const (
	// Single is a lone comparison.
	Single Combinator = iota
	// AllOf requires every comparison (AND).
	AllOf
	// AnyOf requires at least one comparison (OR).
	AnyOf
)

// OperandKind tells how the right side of a comparison is resolved.
type OperandKind int

// Operand kinds in resolution priority order.
const (
	ThresholdOperand OperandKind = iota
	LiteralOperand
	PathOperand
)

// Operand is the right side of a comparison.
type Operand struct {
	Kind      OperandKind
	Threshold string // name after "thresholds."
	Literal   any    // string, bool or float64
	Path      string
}

// Comparison is an atomic LEFT OP RIGHT test.
type Comparison struct {
	Left  string
	Op    Operator
	Right Operand
}

// Condition is a parsed rule condition.
type Condition struct {
	Source      string
	Combinator  Combinator
	Comparisons []Comparison
}

var (
	comparisonPattern = regexp.MustCompile(`^(.+?)\s*(>=|<=|==|!=|>|<)\s*(.+)$`)
	pathPattern       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z0-9_]+)*$`)
)

const thresholdPrefix = "thresholds."

// Parse parses a condition. A condition containing " AND " is a conjunction,
// otherwise one containing " OR " is a disjunction; the parts are always atomic.
func Parse(s string) (*Condition, error) {
	src := strings.TrimSpace(s)
	if src == "" {
		return nil, fmt.Errorf("%w: empty condition", ErrInvalidCondition)
	}

	c := &Condition{Source: src, Combinator: Single}
	parts := []string{src}
	switch {
	case strings.Contains(src, " AND "):
		c.Combinator = AllOf
		parts = strings.Split(src, " AND ")
	case strings.Contains(src, " OR "):
		c.Combinator = AnyOf
		parts = strings.Split(src, " OR ")
	}

	for _, part := range parts {
		cmp, err := parseComparison(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		c.Comparisons = append(c.Comparisons, cmp)
	}
	return c, nil
}

// parseComparison parses one LEFT OP RIGHT clause.
func parseComparison(s string) (Comparison, error) {
	m := comparisonPattern.FindStringSubmatch(s)
	if m == nil {
		return Comparison{}, fmt.Errorf("%w: %q has no comparison operator", ErrInvalidCondition, s)
	}

	left := strings.TrimSpace(m[1])
	if !pathPattern.MatchString(left) {
		return Comparison{}, fmt.Errorf("%w: left side %q is not a dotted path", ErrInvalidCondition, left)
	}

	right, err := parseOperand(strings.TrimSpace(m[3]))
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{Left: left, Op: Operator(m[2]), Right: right}, nil
}

// parseOperand resolves the right side in priority order: threshold reference,
// quoted string, boolean, number, dotted path.
func parseOperand(s string) (Operand, error) {
	if name, ok := strings.CutPrefix(s, thresholdPrefix); ok {
		if name == "" {
			return Operand{}, fmt.Errorf("%w: empty threshold name", ErrInvalidCondition)
		}
		return Operand{Kind: ThresholdOperand, Threshold: name}, nil
	}

	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return Operand{Kind: LiteralOperand, Literal: s[1 : len(s)-1]}, nil
	}

	switch s {
	case "true":
		return Operand{Kind: LiteralOperand, Literal: true}, nil
	case "false":
		return Operand{Kind: LiteralOperand, Literal: false}, nil
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Operand{Kind: LiteralOperand, Literal: f}, nil
	}

	if pathPattern.MatchString(s) {
		return Operand{Kind: PathOperand, Path: s}, nil
	}
	return Operand{}, fmt.Errorf("%w: cannot read right side %q", ErrInvalidCondition, s)
}
