package rules

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/hpmalabs/hpma/internal/contract"
	"github.com/hpmalabs/hpma/schema"
)

// Context is the read-only nested mapping conditions are evaluated against.
// Leaves are float64, bool, string or []string.
type Context map[string]any

// Lookup resolves a dotted path. The second result is false when any segment is missing.
func (c Context) Lookup(path string) (any, bool) {
	var current any = map[string]any(c)
	for part := range strings.SplitSeq(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Context:
		return m, true
	}
	return nil, false
}

// WarnFunc reports a condition that could not be parsed.
type WarnFunc func(msg string, err error)

// Evaluator evaluates conditions against named thresholds. Parsed conditions are cached,
// so each distinct condition string is parsed once.
type Evaluator struct {
	thresholds map[string]float64
	warn       WarnFunc

	mu     sync.Mutex
	parsed map[string]parseResult
}

type parseResult struct {
	cond *Condition
	err  error
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithWarn replaces the default stderr warning.
func WithWarn(fn WarnFunc) Option {
	return func(e *Evaluator) {
		if fn != nil {
			e.warn = fn
		}
	}
}

// NewEvaluator creates an evaluator over the given thresholds.
func NewEvaluator(thresholds map[string]float64, opts ...Option) *Evaluator {
	e := &Evaluator{
		thresholds: thresholds,
		warn:       contract.LogWarn,
		parsed:     make(map[string]parseResult),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// parse returns the cached parse of a condition string.
func (e *Evaluator) parse(s string) (*Condition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if r, ok := e.parsed[s]; ok {
		return r.cond, r.err
	}
	cond, err := Parse(s)
	e.parsed[s] = parseResult{cond: cond, err: err}
	return cond, err
}

// EvaluateCondition parses and evaluates a condition. Unparseable conditions
// are reported through the warn func and evaluate to false.
func (e *Evaluator) EvaluateCondition(s string, ctx Context) bool {
	cond, err := e.parse(s)
	if err != nil {
		e.warn(fmt.Sprintf("Ignoring rule condition %q", s), err)
		return false
	}
	return e.Eval(cond, ctx)
}

// Eval evaluates a parsed condition.
func (e *Evaluator) Eval(c *Condition, ctx Context) bool {
	if c == nil || len(c.Comparisons) == 0 {
		return false
	}
	switch c.Combinator {
	case AnyOf:
		for _, cmp := range c.Comparisons {
			if e.compare(cmp, ctx) {
				return true
			}
		}
		return false
	default:
		for _, cmp := range c.Comparisons {
			if !e.compare(cmp, ctx) {
				return false
			}
		}
		return true
	}
}

// resolve returns the value of an operand, or false when it is missing.
func (e *Evaluator) resolve(o Operand, ctx Context) (any, bool) {
	switch o.Kind {
	case ThresholdOperand:
		v, ok := e.thresholds[o.Threshold]
		return v, ok
	case LiteralOperand:
		return o.Literal, true
	default:
		return ctx.Lookup(o.Path)
	}
}

// compare applies one comparison. A missing left side only matches "== <missing>".
func (e *Evaluator) compare(cmp Comparison, ctx Context) bool {
	left, leftOK := ctx.Lookup(cmp.Left)
	right, rightOK := e.resolve(cmp.Right, ctx)

	if !leftOK {
		return cmp.Op == OpEQ && !rightOK
	}

	switch cmp.Op {
	case OpEQ:
		return rightOK && equal(left, right)
	case OpNEQ:
		return !rightOK || !equal(left, right)
	}

	if !rightOK {
		return false
	}
	l, r := toNumber(left), toNumber(right)
	switch cmp.Op {
	case OpGTE:
		return l >= r
	case OpLTE:
		return l <= r
	case OpGT:
		return l > r
	case OpLT:
		return l < r
	}
	return false
}

// toNumber coerces an ordering operand: booleans become 0 or 1, numeric strings
// are parsed, and anything else is NaN so that every ordering is false.
func toNumber(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
	return math.NaN()
}

// equal is strict equality of scalar leaves. Lists never compare equal.
func equal(a, b any) bool {
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}
	return false
}

// EvaluateAll returns the matches of every rule whose condition holds, in rule order.
func (e *Evaluator) EvaluateAll(rules []schema.Rule, ctx Context) []schema.RuleMatch {
	var matches []schema.RuleMatch
	for _, rule := range rules {
		if !e.EvaluateCondition(rule.When, ctx) {
			continue
		}
		snippets := make(map[string][]string, len(rule.AddSnippets))
		for path, lines := range rule.AddSnippets {
			snippets[path] = slices.Clone(lines)
		}
		matches = append(matches, schema.RuleMatch{
			RuleID:   rule.ID,
			Flags:    slices.Clone(rule.AddFlags),
			Snippets: snippets,
		})
	}
	return matches
}

// CollectFlags returns the distinct flags of all matches in first-seen order.
func CollectFlags(matches []schema.RuleMatch) []string {
	seen := make(map[string]struct{})
	flags := []string{}
	for _, m := range matches {
		for _, f := range m.Flags {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			flags = append(flags, f)
		}
	}
	return flags
}

// SnippetPaths returns the distinct snippet paths of all matches in first-seen order.
// Paths within one match are taken in sorted order.
func SnippetPaths(matches []schema.RuleMatch) []string {
	seen := make(map[string]struct{})
	var paths []string
	for _, m := range matches {
		keys := make([]string, 0, len(m.Snippets))
		for k := range m.Snippets {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			paths = append(paths, k)
		}
	}
	return paths
}

// MergeSnippets concatenates the snippets of all matches per path, never overwriting.
func MergeSnippets(matches []schema.RuleMatch) map[string][]string {
	merged := make(map[string][]string)
	for _, m := range matches {
		for path, lines := range m.Snippets {
			merged[path] = append(merged[path], lines...)
		}
	}
	return merged
}
