package prefs

import (
	"fmt"
	"strings"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*evaluatorDeps)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(d *evaluatorDeps) {
		d.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL evaluator.
// Registered functions are reachable through call(name, ...) with up to two
// arguments.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(d *evaluatorDeps) {
		d.registry = registry
	}
}

type celEvaluator struct {
	evaluatorDeps
}

// NewCELEvaluator constructs an Evaluator backed by cel-go.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	return &celEvaluator{evaluatorDeps: applyEvaluatorOptions(opts)}
}

func (e *celEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaultMaps()
	program, err := e.loadOrCompile(expression, bindingNames(ctx.Bindings))
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, ctx.ruleLabel(), err)
	}
	return e.run(ctx, expression, program)
}

// Compile type-checks expression against the declared bindings. Without
// CompileWithBindings only the syntax is checked here, since CEL needs every
// variable declared before it can build a program.
func (e *celEvaluator) Compile(expression string, opts ...CompileOption) (CompiledRule, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	cfg := applyCompileOptions(opts)
	rule := &celCompiledRule{evaluator: e, expression: expression}
	if len(cfg.bindings) == 0 {
		env, err := e.buildEnv(nil)
		if err != nil {
			return nil, wrapEvaluatorError("cel", err)
		}
		if _, issues := env.Parse(expression); issues != nil && issues.Err() != nil {
			return nil, wrapEvaluationError("cel", expression, "", issues.Err())
		}
		return rule, nil
	}
	program, err := e.loadOrCompile(expression, cfg.bindings)
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, "", err)
	}
	rule.program = program
	return rule, nil
}

// loadOrCompile caches per expression and variable names, since CEL declares
// variables up front.
func (e *celEvaluator) loadOrCompile(expression string, names []string) (celgo.Program, error) {
	cacheKey := expression + "|" + strings.Join(names, ",")
	if cached, ok := e.cachedProgram("cel", cacheKey); ok {
		if program, ok := cached.(celgo.Program); ok {
			return program, nil
		}
	}

	env, err := e.buildEnv(names)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	e.storeProgram("cel", cacheKey, program)
	return program, nil
}

func (e *celEvaluator) buildEnv(names []string) (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("metadata", celgo.DynType),
	}
	if e.registry != nil {
		binding := celgo.FunctionBinding(e.callBinding())
		opts = append(opts, celgo.Function("call",
			celgo.Overload("call_string", []*celgo.Type{celgo.StringType}, celgo.DynType, binding),
			celgo.Overload("call_string_dyn", []*celgo.Type{celgo.StringType, celgo.DynType}, celgo.DynType, binding),
			celgo.Overload("call_string_dyn_dyn", []*celgo.Type{celgo.StringType, celgo.DynType, celgo.DynType}, celgo.DynType, binding),
		))
	}
	for _, name := range names {
		opts = append(opts, celgo.Variable(name, celgo.DynType))
	}
	return celgo.NewEnv(opts...)
}

func (e *celEvaluator) run(ctx RuleContext, expression string, program celgo.Program) (any, error) {
	activation := map[string]any{
		"metadata": ctx.Metadata,
	}
	for key, value := range ctx.Bindings {
		activation[key] = value
	}
	out, _, err := program.Eval(activation)
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, ctx.ruleLabel(), err)
	}
	return out.Value(), nil
}

type celCompiledRule struct {
	evaluator  *celEvaluator
	expression string
	// program is nil when the rule was compiled without declared bindings.
	program celgo.Program
}

func (r *celCompiledRule) Evaluate(ctx RuleContext) (any, error) {
	if r.evaluator == nil {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("compiled rule missing evaluator"))
	}
	if r.program == nil {
		return r.evaluator.Evaluate(ctx, r.expression)
	}
	return r.evaluator.run(ctx.withDefaultMaps(), r.expression, r.program)
}

func (e *celEvaluator) callBinding() func(values ...ref.Val) ref.Val {
	return func(values ...ref.Val) ref.Val {
		if len(values) == 0 {
			return types.NewErr("prefs: call requires function name")
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("prefs: call name must be string")
		}
		args := make([]any, 0, len(values)-1)
		for _, val := range values[1:] {
			args = append(args, val.Value())
		}
		result, err := e.callFunction(name, args...)
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
