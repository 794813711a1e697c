package prefs

import (
	"fmt"
	"time"
)

// Handler adjusts entries of container after source changed. A handler must
// not notify dependents of the entries it touches: propagation is one hop.
type Handler func(source *Entry, container *Container) error

// Rule is one row of the dependency table, keyed by the source it listens to.
type Rule interface {
	SourceKey() Key
}

// BoundRule recomputes the bounds of Target from the integer value of Source.
// Minimum and Maximum are expressions; an empty expression leaves that bound
// unchanged. Expressions see `source` (the source value) and the target's
// current `minimum` and `maximum`. When the target value falls outside a
// recomputed bound it is reset to its default instead of being clamped.
type BoundRule struct {
	Source  Key
	Target  Key
	Minimum string
	Maximum string
}

// SourceKey implements Rule.
func (r BoundRule) SourceKey() Key { return r.Source }

func (r BoundRule) String() string {
	return r.Source.String() + "->" + r.Target.String()
}

// HandlerRule runs a Go handler when Source changes.
type HandlerRule struct {
	Source  Key
	Name    string
	Handler Handler
}

// SourceKey implements Rule.
func (r HandlerRule) SourceKey() Key { return r.Source }

// defaultRules is the built-in dependency table.
var defaultRules = []Rule{
	BoundRule{
		Source:  KeyNumberOfSlices,
		Target:  KeyFirstSliceIndex,
		Maximum: "source - 1",
	},
}

// DefaultRules returns a copy of the built-in dependency table.
func DefaultRules() []Rule {
	return append([]Rule(nil), defaultRules...)
}

// boundRuleBindings are the variables bound rule expressions may read: the
// source value and the target's current bounds.
var boundRuleBindings = []string{"source", "minimum", "maximum"}

type boundHandler struct {
	rule    BoundRule
	label   string
	engine  string
	minimum CompiledRule
	maximum CompiledRule
	owner   *Engine
}

func compileBoundRule(owner *Engine, evaluator Evaluator, rule BoundRule) (*boundHandler, error) {
	if !rule.Source.Defined() || !rule.Target.Defined() {
		return nil, fmt.Errorf("prefs: rule %s: source and target must be defined keys", rule)
	}
	if rule.Minimum == "" && rule.Maximum == "" {
		return nil, fmt.Errorf("prefs: rule %s: minimum or maximum expression required", rule)
	}
	if evaluator == nil {
		return nil, ErrNoEvaluator
	}
	h := &boundHandler{
		rule:   rule,
		label:  rule.String(),
		engine: evaluatorEngineName(evaluator),
		owner:  owner,
	}
	var err error
	if rule.Minimum != "" {
		if h.minimum, err = evaluator.Compile(rule.Minimum, CompileWithBindings(boundRuleBindings...)); err != nil {
			return nil, wrapEvaluationError(h.engine, rule.Minimum, h.label, err)
		}
	}
	if rule.Maximum != "" {
		if h.maximum, err = evaluator.Compile(rule.Maximum, CompileWithBindings(boundRuleBindings...)); err != nil {
			return nil, wrapEvaluationError(h.engine, rule.Maximum, h.label, err)
		}
	}
	return h, nil
}

func (h *boundHandler) handle(source *Entry, container *Container) error {
	start := time.Now()
	event := UpdateLogEvent{
		Rule:   h.label,
		Source: source.Name(),
		Target: h.rule.Target.String(),
	}
	applied, err := h.apply(source, container, &event)
	if !applied && err == nil {
		return nil
	}
	if err != nil {
		err = fmt.Errorf("prefs: rule %s: %w", h.label, err)
	}
	event.Duration = time.Since(start)
	event.Err = err
	if err == nil {
		event.HookErr = h.owner.emit(event)
	}
	h.owner.logger.LogUpdate(event)
	return err
}

func (h *boundHandler) apply(source *Entry, container *Container, event *UpdateLogEvent) (bool, error) {
	n, err := source.Int()
	if err != nil {
		return false, err
	}
	target, ok := container.Lookup(h.rule.Target)
	if !ok {
		return false, nil
	}

	minimum, maximum, _ := target.Bounds()
	ctx := RuleContext{
		Rule: h.label,
		Bindings: map[string]any{
			"source":  n,
			"minimum": minimum,
			"maximum": maximum,
		},
	}
	if h.minimum != nil {
		if minimum, err = h.evaluate(h.minimum, h.rule.Minimum, ctx); err != nil {
			return true, err
		}
	}
	if h.maximum != nil {
		if maximum, err = h.evaluate(h.maximum, h.rule.Maximum, ctx); err != nil {
			return true, err
		}
	}
	if err := target.SetBounds(minimum, maximum); err != nil {
		return true, err
	}
	minimum, maximum, _ = target.Bounds()
	event.Minimum = minimum
	event.Maximum = maximum
	event.Previous = target.Value()
	event.Value = target.Value()

	current, err := numericValue(target)
	if err != nil {
		return true, err
	}
	if (h.maximum != nil && current > maximum) || (h.minimum != nil && current < minimum) {
		target.SetValue(resetValue(h.owner.defaults, h.rule.Target, target))
		event.Value = target.Value()
		event.Reset = true
	}
	return true, nil
}

func (h *boundHandler) evaluate(rule CompiledRule, expr string, ctx RuleContext) (float64, error) {
	result, err := rule.Evaluate(ctx)
	if err != nil {
		return 0, wrapEvaluationError(h.engine, expr, h.label, err)
	}
	value, err := numericResult(result)
	if err != nil {
		return 0, wrapEvaluationError(h.engine, expr, h.label, err)
	}
	return value, nil
}

// numericValue reads float entries as floats and every other kind as an
// integer.
func numericValue(entry *Entry) (float64, error) {
	if entry.Kind() == KindFloat {
		return entry.Float()
	}
	n, err := entry.Int()
	return float64(n), err
}
