package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-preferences/pkg/activity"
)

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	rules        []Rule
	evaluator    Evaluator
	cache        ProgramCache
	registry     *FunctionRegistry
	logger       UpdateLogger
	hooks        activity.Hooks
	activityCfg  activity.Config
	registryErrs []error
}

// WithRules appends rules to the built-in dependency table.
func WithRules(rules ...Rule) EngineOption {
	return func(cfg *engineConfig) {
		cfg.rules = append(cfg.rules, rules...)
	}
}

// WithRuleSet replaces the built-in dependency table.
func WithRuleSet(rules ...Rule) EngineOption {
	return func(cfg *engineConfig) {
		cfg.rules = append([]Rule(nil), rules...)
	}
}

// WithEvaluator overrides the evaluator used for bound rule expressions.
func WithEvaluator(evaluator Evaluator) EngineOption {
	return func(cfg *engineConfig) {
		cfg.evaluator = evaluator
	}
}

// WithProgramCache sets the cache handed to the default expr evaluator.
func WithProgramCache(cache ProgramCache) EngineOption {
	return func(cfg *engineConfig) {
		cfg.cache = cache
	}
}

// WithFunctionRegistry exposes registry functions to the default evaluator.
func WithFunctionRegistry(registry *FunctionRegistry) EngineOption {
	return func(cfg *engineConfig) {
		if registry == nil {
			return
		}
		cfg.registry = registry.Clone()
	}
}

// WithCustomFunction registers a single function for rule expressions. A
// registration failure is reported by NewEngine.
func WithCustomFunction(name string, fn Function) EngineOption {
	return func(cfg *engineConfig) {
		if cfg.registry == nil {
			cfg.registry = NewFunctionRegistry()
		}
		if err := cfg.registry.Register(name, fn); err != nil {
			cfg.registryErrs = append(cfg.registryErrs, err)
		}
	}
}

// WithLogger records every rule application.
func WithLogger(logger UpdateLogger) EngineOption {
	return func(cfg *engineConfig) {
		cfg.logger = logger
	}
}

// WithActivityHooks emits bounds and reset events to hooks.
func WithActivityHooks(hooks activity.Hooks, cfg activity.Config) EngineOption {
	return func(c *engineConfig) {
		c.hooks = append(c.hooks, hooks...)
		c.activityCfg = cfg
	}
}

// Engine keeps dependent entries consistent after a source entry changes. It
// holds no per-container state: one engine can serve any number of
// containers and is safe to share once constructed.
type Engine struct {
	defaults DefaultsProvider
	handlers map[Key][]Handler
	logger   UpdateLogger
	emitter  *activity.Emitter
}

// NewEngine compiles the dependency table. defaults may be nil, in which case
// resets fall back to each entry's descriptor default.
func NewEngine(defaults DefaultsProvider, opts ...EngineOption) (*Engine, error) {
	cfg := engineConfig{rules: DefaultRules()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if len(cfg.registryErrs) > 0 {
		return nil, errors.Join(cfg.registryErrs...)
	}

	engine := &Engine{
		defaults: defaults,
		handlers: map[Key][]Handler{},
		logger:   cfg.logger,
		emitter:  activity.NewEmitter(cfg.hooks, cfg.activityCfg),
	}
	if engine.logger == nil {
		engine.logger = noopUpdateLogger{}
	}

	evaluator := cfg.evaluator
	for _, rule := range cfg.rules {
		var handler Handler
		switch r := rule.(type) {
		case BoundRule:
			if evaluator == nil {
				var err error
				if evaluator, err = defaultEvaluator(cfg); err != nil {
					return nil, err
				}
			}
			compiled, err := compileBoundRule(engine, evaluator, r)
			if err != nil {
				return nil, err
			}
			handler = compiled.handle
		case HandlerRule:
			if !r.Source.Defined() {
				return nil, fmt.Errorf("prefs: rule %s: source must be a defined key", handlerLabel(r))
			}
			if r.Handler == nil {
				return nil, fmt.Errorf("prefs: rule %s: handler is nil", handlerLabel(r))
			}
			handler = wrapHandler(handlerLabel(r), r.Handler)
		case nil:
			continue
		default:
			return nil, fmt.Errorf("prefs: unsupported rule type %T", rule)
		}
		key := rule.SourceKey()
		engine.handlers[key] = append(engine.handlers[key], handler)
	}
	return engine, nil
}

func defaultEvaluator(cfg engineConfig) (Evaluator, error) {
	cache := cfg.cache
	if cache == nil {
		var err error
		if cache, err = NewLRUProgramCache(DefaultProgramCacheSize); err != nil {
			return nil, err
		}
	}
	return NewExprEvaluator(
		ExprWithProgramCache(cache),
		ExprWithFunctionRegistry(cfg.registry),
	), nil
}

func handlerLabel(rule HandlerRule) string {
	if rule.Name != "" {
		return rule.Name
	}
	return rule.Source.String() + "->handler"
}

func wrapHandler(label string, handler Handler) Handler {
	return func(source *Entry, container *Container) error {
		if err := handler(source, container); err != nil {
			return fmt.Errorf("prefs: rule %s: %w", label, err)
		}
		return nil
	}
}

// NotifyChanged applies the rules registered for source's key to the entries
// of source's container. A nil engine, a nil source, a detached source and a
// source without rules are no-ops. The first rule error aborts the pass;
// changes made by earlier rules are kept. Dependents are never re-notified.
func (e *Engine) NotifyChanged(source *Entry) error {
	if e == nil || source == nil {
		return nil
	}
	container := source.Container()
	if container == nil {
		return nil
	}
	for _, handler := range e.handlers[source.Key()] {
		if err := handler(source, container); err != nil {
			return err
		}
	}
	return nil
}

// Sources lists the keys that have at least one rule.
func (e *Engine) Sources() []Key {
	if e == nil {
		return nil
	}
	var keys []Key
	for _, key := range Keys() {
		if len(e.handlers[key]) > 0 {
			keys = append(keys, key)
		}
	}
	return keys
}

func (e *Engine) emit(event UpdateLogEvent) error {
	if !e.emitter.Enabled() {
		return nil
	}
	input := activity.PreferenceEventInput{
		Rule:     event.Rule,
		Source:   event.Source,
		Target:   event.Target,
		Minimum:  event.Minimum,
		Maximum:  event.Maximum,
		Previous: event.Previous,
		Value:    event.Value,
	}
	ctx := context.Background()
	err := e.emitter.Emit(ctx, activity.BuildBoundsUpdatedEvent(input))
	if event.Reset {
		err = errors.Join(err, e.emitter.Emit(ctx, activity.BuildValueResetEvent(input)))
	}
	return err
}
