package prefs

// evaluatorDeps holds the collaborators every evaluator shares: an optional
// program cache and an optional function registry.
type evaluatorDeps struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

type evaluatorOption interface {
	~func(*evaluatorDeps)
}

func applyEvaluatorOptions[O evaluatorOption](opts []O) evaluatorDeps {
	deps := evaluatorDeps{}
	for _, opt := range opts {
		if apply := (func(*evaluatorDeps))(opt); apply != nil {
			apply(&deps)
		}
	}
	return deps
}

// cachedProgram namespaces cache keys per engine so evaluators can share one
// cache without reading each other's programs.
func (d evaluatorDeps) cachedProgram(engine, key string) (any, bool) {
	if d.cache == nil {
		return nil, false
	}
	return d.cache.Get(engine + ":" + key)
}

func (d evaluatorDeps) storeProgram(engine, key string, program any) {
	if d.cache == nil {
		return
	}
	d.cache.Set(engine+":"+key, program)
}

func (d evaluatorDeps) functionNames() []string {
	return d.registry.Names()
}

func (d evaluatorDeps) callFunction(name string, args ...any) (any, error) {
	return d.registry.Call(name, args...)
}

// JSEvaluatorOption configures the JS evaluator.
type JSEvaluatorOption func(*evaluatorDeps)

// JSWithProgramCache applies a ProgramCache to the JS evaluator.
func JSWithProgramCache(cache ProgramCache) JSEvaluatorOption {
	return func(d *evaluatorDeps) {
		d.cache = cache
	}
}

// JSWithFunctionRegistry exposes registry functions to JS expressions by name
// and through call(name, ...).
func JSWithFunctionRegistry(registry *FunctionRegistry) JSEvaluatorOption {
	return func(d *evaluatorDeps) {
		d.registry = registry
	}
}
