package prefs

import (
	"fmt"
	"slices"
)

// RuleContext carries the values bound into a rule expression.
type RuleContext struct {
	Bindings map[string]any
	Metadata map[string]any
	// Rule labels the rule being evaluated in errors and logs.
	Rule string
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Bindings == nil {
		ctx.Bindings = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) ruleLabel() string {
	if ctx.Rule != "" {
		return ctx.Rule
	}
	return "unknown"
}

// Evaluator executes rule expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures how an evaluator compiles an expression.
type CompileOption func(*compileConfig)

type compileConfig struct {
	bindings []string
}

// CompileWithBindings declares the variable names the compiled rule will be
// evaluated with. Evaluators that type-check ahead of time, such as CEL, use
// them to report unknown names and syntax errors at compile time instead of
// on first evaluation.
func CompileWithBindings(names ...string) CompileOption {
	return func(cfg *compileConfig) {
		cfg.bindings = append(cfg.bindings, names...)
	}
}

func applyCompileOptions(opts []CompileOption) compileConfig {
	cfg := compileConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.bindings = variableNames(cfg.bindings)
	return cfg
}

// variableNames sorts and dedupes binding names. metadata is always declared
// by the evaluators and is skipped.
func variableNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || name == "metadata" {
			continue
		}
		out = append(out, name)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func bindingNames(bindings map[string]any) []string {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	return variableNames(names)
}

func evaluatorEngineName(e Evaluator) string {
	switch e.(type) {
	case nil:
		return "unknown"
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	default:
		if name := fmt.Sprintf("%T", e); name == "*prefs.jsEvaluator" {
			return "js"
		}
		return "custom"
	}
}

// numericResult converts an expression result into a bound value.
func numericResult(value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("expression result %v (%T) is not numeric", value, value)
	}
}
